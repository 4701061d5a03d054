package envfile

import "errors"

var (
	ErrEmptyKey = errors.New("empty key")
)
