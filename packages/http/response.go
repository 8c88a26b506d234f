package http

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Response is a fully read HTTP response. The body is buffered so it can be
// logged verbatim and inspected afterwards.
type Response struct {
	StatusCode int
	Status     string
	Headers    map[string]string
	Body       []byte
	Duration   time.Duration
}

// BodyString returns the body exactly as received.
func (r *Response) BodyString() string {
	return string(r.Body)
}

// Header looks a header up case-insensitively.
func (r *Response) Header(key string) string {
	if v, ok := r.Headers[key]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

func (r *Response) ContentType() string {
	return r.Header(HeaderContentType)
}

func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType()), "application/json")
}

// IsSuccess reports a 2xx status. Other statuses are still valid responses.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("decode %d response: empty body", r.StatusCode)
	}
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("decode %d response: %w", r.StatusCode, err)
	}
	return nil
}

func (r *Response) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
