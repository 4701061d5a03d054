package notion

import "net/http"

// Request types
type PageUpdate struct {
	Properties map[string]PropertyValue `json:"properties"`
}

type PropertyValue struct {
	RichText []RichText `json:"rich_text"`
}

// RichText is a rich_text item. Only empty lists are sent, which clears the
// property.
type RichText struct{}

// Response is the raw result of a page update. Any HTTP status is a
// Response; only transport failures are errors.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}
