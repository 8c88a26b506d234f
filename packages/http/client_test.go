package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestNewClient(t *testing.T) {
	t.Run("valid base URL", func(t *testing.T) {
		c, err := NewClient("https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", c.BaseURL())
		assert.Equal(t, DefaultTimeout, c.Timeout())
	})

	t.Run("rejects unsupported scheme", func(t *testing.T) {
		_, err := NewClient("ftp://example.com")
		assert.Error(t, err)
	})

	t.Run("rejects missing host", func(t *testing.T) {
		_, err := NewClient("http://")
		assert.Error(t, err)
	})

	t.Run("with timeout", func(t *testing.T) {
		c, err := NewClient("https://example.com", WithTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, c.Timeout())
	})
}

func TestClient_ResolveURL(t *testing.T) {
	tests := []struct {
		name    string
		baseURL string
		path    string
		query   map[string]string
		want    string
	}{
		{"collection", "https://example.com", "posts", nil, "https://example.com/posts"},
		{"item", "https://example.com", "posts/1", nil, "https://example.com/posts/1"},
		{"sub-resource", "https://example.com", "posts/7/comments", nil, "https://example.com/posts/7/comments"},
		{"base with path", "https://example.com/api/", "posts/1", nil, "https://example.com/api/posts/1"},
		{"query", "https://example.com", "posts", map[string]string{"userId": "1"}, "https://example.com/posts?userId=1"},
		{"query in path", "http://x.test/api", "posts?userId=3", nil, "http://x.test/api/posts?userId=3"},
		{"query in path and params", "http://x.test", "posts?userId=3&_limit=2", map[string]string{"userId": "4"}, "http://x.test/posts?_limit=2&userId=4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClient(tt.baseURL)
			require.NoError(t, err)

			req := NewRequest("GET", tt.path)
			for k, v := range tt.query {
				req.SetQueryParam(k, v)
			}

			got, err := c.ResolveURL(req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_ResolveURL_RejectsAbsolute(t *testing.T) {
	c, err := NewClient("https://example.com")
	require.NoError(t, err)

	for _, path := range []string{"https://other.example.com/posts", "//other.example.com/posts"} {
		_, err := c.ResolveURL(NewRequest("GET", path))
		assert.ErrorIs(t, err, ErrAbsoluteURL, path)
	}
}

func TestClient_Do_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/posts", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("userId"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`[{"id": 1}]`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), NewRequest("GET", "posts").SetQueryParam("userId", "1"))

	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.True(t, resp.IsJSON())
	assert.True(t, resp.IsSuccess())
	assert.Equal(t, `[{"id": 1}]`, resp.BodyString())
}

func TestClient_Do_JSONBody(t *testing.T) {
	type payload struct {
		Title  string `json:"title"`
		UserID int    `json:"userId"`
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, ContentTypeJSON, r.Header.Get("Content-Type"))
		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, `{"title":"foo","userId":1}`, string(body))
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 101}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	req := NewRequest("POST", "posts").SetJSONBody(payload{Title: "foo", UserID: 1})
	resp, err := client.Do(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	assert.Contains(t, resp.BodyString(), "101")
}

func TestClient_Do_ServerErrorIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "boom"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), NewRequest("DELETE", "posts/1"))

	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
	assert.False(t, resp.IsSuccess())
	assert.Equal(t, `{"error": "boom"}`, resp.BodyString())
}

func TestClient_Do_UnencodableBody(t *testing.T) {
	client, err := NewClient("https://example.com")
	require.NoError(t, err)

	req := NewRequest("POST", "posts").SetJSONBody(make(chan int))
	_, err = client.Do(context.Background(), req)
	assert.Error(t, err)
}

func TestClient_WithTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = client.Do(context.Background(), NewRequest("GET", "posts"))
	assert.Error(t, err)
}

func TestClient_WithDefaultHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "postprobe-test", r.Header.Get("User-Agent"))
		assert.Equal(t, "en", r.Header.Get("Accept-Language"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, WithDefaultHeaders(map[string]string{
		"User-Agent": "postprobe-test",
	}), WithDefaultHeader("Accept-Language", "en"))
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), NewRequest("GET", "posts"))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestClient_WithTransport(t *testing.T) {
	var seen string
	rt := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Method + " " + r.URL.String()
		return &http.Response{
			StatusCode: http.StatusOK,
			Status:     "200 OK",
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(`{}`)),
		}, nil
	})

	client, err := NewClient("https://example.com", WithTransport(rt))
	require.NoError(t, err)

	resp, err := client.Do(context.Background(), NewRequest("PATCH", "posts/1"))
	require.NoError(t, err)
	assert.Equal(t, "PATCH https://example.com/posts/1", seen)
	assert.Equal(t, "{}", resp.BodyString())
}

func TestClient_DoAsync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`ok`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL)
	require.NoError(t, err)

	ch := client.DoAsync(context.Background(), NewRequest("GET", "posts"))
	res := <-ch
	require.NoError(t, res.Err)
	assert.Equal(t, "ok", res.Response.BodyString())

	_, open := <-ch
	assert.False(t, open)
}

func TestClient_DoAsync_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client, err := NewClient(url)
	require.NoError(t, err)

	res := <-client.DoAsync(context.Background(), NewRequest("GET", "posts"))
	assert.Error(t, res.Err)
	assert.Nil(t, res.Response)
}
