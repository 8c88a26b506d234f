package capture

import (
	"testing"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/http"
	"github.com/stretchr/testify/assert"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: 201,
		Headers:    map[string]string{"Content-Type": "application/json; charset=utf-8", "X-Request-Id": "abc"},
		Body:       []byte(body),
		Duration:   25 * time.Millisecond,
	}
}

func TestExtractor_Body(t *testing.T) {
	e := NewExtractor(jsonResponse(`{"id":101,"title":"foo","tags":["a","b"]}`))

	v, ok := e.Extract(Capture{Source: SourceBody, Path: "id"})
	assert.True(t, ok)
	assert.Equal(t, float64(101), v)

	v, ok = e.Extract(Capture{Source: SourceBody, Path: "tags.1"})
	assert.True(t, ok)
	assert.Equal(t, "b", v)

	_, ok = e.Extract(Capture{Source: SourceBody, Path: "missing"})
	assert.False(t, ok)
}

func TestExtractor_NonJSONBody(t *testing.T) {
	resp := &http.Response{Body: []byte(`not json`)}
	e := NewExtractor(resp)

	v, ok := e.Extract(Capture{Source: SourceBody})
	assert.True(t, ok)
	assert.Equal(t, "not json", v)

	_, ok = e.Extract(Capture{Source: SourceBody, Path: "id"})
	assert.False(t, ok)
}

func TestExtractor_Metadata(t *testing.T) {
	e := NewExtractor(jsonResponse(`{}`))

	v, ok := e.Extract(Capture{Source: SourceHeader, Path: "x-request-id"})
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	v, _ = e.Extract(Capture{Source: SourceStatus})
	assert.Equal(t, 201, v)

	v, _ = e.Extract(Capture{Source: SourceDuration})
	assert.Equal(t, int64(25), v)

	_, ok = e.Extract(Capture{Source: Source("cookie")})
	assert.False(t, ok)
}

func TestExtractAll_DefaultCaptures(t *testing.T) {
	assert.Equal(t, map[string]any{"id": float64(101)}, ExtractAll(jsonResponse(`{"id":101}`), DefaultCaptures))
	assert.Empty(t, ExtractAll(jsonResponse(`[{"id":1}]`), DefaultCaptures))
	assert.Empty(t, ExtractAll(jsonResponse(`{}`), DefaultCaptures))
}
