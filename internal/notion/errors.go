package notion

import (
	"errors"
	"fmt"
)

var (
	ErrMissingAPIKey = errors.New("notion api key not configured")
	ErrInvalidPageID = errors.New("invalid notion page id")
)

// APIError is the error object Notion returns with non-2xx responses.
type APIError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("notion: %d %s: %s", e.Status, e.Code, e.Message)
}
