// Package notion is a minimal client for the Notion page update endpoint.
package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-06-28"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient returns a client using an http.Client with no timeout unless one
// is supplied with WithHTTPClient.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ClearRichText sets a rich_text property on a page to an empty list.
func (c *Client) ClearRichText(ctx context.Context, pageID, property string) (*Response, error) {
	update := PageUpdate{
		Properties: map[string]PropertyValue{
			property: {RichText: []RichText{}},
		},
	}
	return c.UpdatePage(ctx, pageID, update)
}

// UpdatePage sends PATCH /pages/{pageID} with the given property values.
func (c *Client) UpdatePage(ctx context.Context, pageID string, update PageUpdate) (*Response, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	if _, err := uuid.Parse(pageID); err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPageID, pageID, err)
	}

	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/pages/%s", c.baseURL, pageID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

// DecodeError extracts Notion's error object from a failed response. It
// returns nil when the body is not one.
func DecodeError(resp *Response) *APIError {
	if resp == nil || resp.OK() {
		return nil
	}
	var apiErr APIError
	if err := json.Unmarshal(resp.Body, &apiErr); err != nil || apiErr.Code == "" {
		return nil
	}
	if apiErr.Status == 0 {
		apiErr.Status = resp.StatusCode
	}
	return &apiErr
}
