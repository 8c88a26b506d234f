package http

import (
	"encoding/json"
	"fmt"
)

const (
	// HeaderContentType is the header name used to declare a JSON body
	HeaderContentType = "Content-type"
	// ContentTypeJSON is the content type sent with every JSON body
	ContentTypeJSON = "application/json; charset=UTF-8"
)

// Request describes an HTTP request before it is dispatched. Path is always
// relative to the client's base URL. Body holds a JSON-serializable payload and
// is nil for requests without one.
type Request struct {
	Method      string
	Path        string
	Headers     map[string]string
	QueryParams map[string]string
	Body        any
}

func NewRequest(method, path string) *Request {
	return &Request{
		Method:      method,
		Path:        path,
		Headers:     make(map[string]string),
		QueryParams: make(map[string]string),
	}
}

func (r *Request) SetHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

func (r *Request) SetQueryParam(key, value string) *Request {
	r.QueryParams[key] = value
	return r
}

// SetJSONBody attaches payload as the request body and declares the JSON
// content type.
func (r *Request) SetJSONBody(payload any) *Request {
	r.Body = payload
	return r.SetHeader(HeaderContentType, ContentTypeJSON)
}

func (r *Request) HasBody() bool {
	return r.Body != nil
}

// EncodeBody serializes the payload. Struct payloads keep their field order.
func (r *Request) EncodeBody() ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	data, err := json.Marshal(r.Body)
	if err != nil {
		return nil, fmt.Errorf("encoding %s %s body: %w", r.Method, r.Path, err)
	}
	return data, nil
}

// String renders the request line, e.g. "PATCH posts/1".
func (r *Request) String() string {
	return r.Method + " " + r.Path
}
