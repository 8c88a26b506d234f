package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_SetJSONBody(t *testing.T) {
	req := NewRequest("PUT", "posts/1").SetJSONBody(map[string]int{"id": 1})

	assert.True(t, req.HasBody())
	assert.Equal(t, ContentTypeJSON, req.Headers[HeaderContentType])

	data, err := req.EncodeBody()
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 1}`, string(data))
}

func TestRequest_NoBody(t *testing.T) {
	req := NewRequest("GET", "posts")

	assert.False(t, req.HasBody())
	assert.Empty(t, req.Headers)

	data, err := req.EncodeBody()
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestRequest_String(t *testing.T) {
	assert.Equal(t, "DELETE posts/1", NewRequest("DELETE", "posts/1").String())
}
