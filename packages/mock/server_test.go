package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/postprobe/packages/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(NewServer(opts...).Handler())
	t.Cleanup(server.Close)
	return server
}

func do(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(data)
}

func TestServer_ListPosts(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "GET", server.URL+"/posts", "")
	require.Equal(t, 200, status)

	var list []posts.Post
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list, DefaultPostCount)
	assert.Equal(t, 1, list[0].ID)
}

func TestServer_ListPostsByUser(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "GET", server.URL+"/posts?userId=2", "")
	require.Equal(t, 200, status)

	var list []posts.Post
	require.NoError(t, json.Unmarshal([]byte(body), &list))
	assert.Len(t, list, PostsPerUser)
	for _, p := range list {
		assert.Equal(t, 2, p.UserID)
	}

	_, body = do(t, "GET", server.URL+"/posts?userId=abc", "")
	assert.Equal(t, "[]", body)
}

func TestServer_CreatePost(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "POST", server.URL+"/posts", `{"title":"foo","body":"bar","userId":1}`)

	assert.Equal(t, 201, status)
	assert.Contains(t, body, `"id":101`)
	assert.Contains(t, body, `"title":"foo"`)
}

func TestServer_CreatePost_InvalidJSON(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "POST", server.URL+"/posts", `{not json`)

	assert.Equal(t, 400, status)
	assert.Contains(t, body, "invalid JSON body")
}

func TestServer_GetPost(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "GET", server.URL+"/posts/3", "")
	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"id":3,"title":"post 3","body":"body of post 3","userId":1}`, body)

	status, body = do(t, "GET", server.URL+"/posts/999", "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "{}", body)
}

func TestServer_ReplacePost(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "PUT", server.URL+"/posts/1", `{"id":1,"title":"foo","body":"bar","userId":1}`)

	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"id":1,"title":"foo","body":"bar","userId":1}`, body)
}

func TestServer_PatchPost(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "PATCH", server.URL+"/posts/1", `{"title":"foo"}`)

	assert.Equal(t, 200, status)
	assert.JSONEq(t, `{"id":1,"title":"foo","body":"body of post 1","userId":1}`, body)
}

func TestServer_WritesAreNotPersisted(t *testing.T) {
	server := newTestServer(t)

	do(t, "PATCH", server.URL+"/posts/1", `{"title":"changed"}`)
	do(t, "DELETE", server.URL+"/posts/1", "")

	status, body := do(t, "GET", server.URL+"/posts/1", "")
	assert.Equal(t, 200, status)
	assert.Contains(t, body, `"title":"post 1"`)
}

func TestServer_DeletePost(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "DELETE", server.URL+"/posts/1", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "{}", body)

	status, _ = do(t, "DELETE", server.URL+"/posts/-1", "")
	assert.Equal(t, 404, status)
}

func TestServer_ListComments(t *testing.T) {
	server := newTestServer(t)

	status, body := do(t, "GET", server.URL+"/posts/2/comments", "")
	require.Equal(t, 200, status)

	var comments []posts.Comment
	require.NoError(t, json.Unmarshal([]byte(body), &comments))
	assert.Len(t, comments, CommentsPerPost)
	for _, c := range comments {
		assert.Equal(t, 2, c.PostID)
	}
}

func TestServer_UnknownRoute(t *testing.T) {
	server := newTestServer(t)

	status, _ := do(t, "GET", server.URL+"/users", "")
	assert.Equal(t, 404, status)

	status, _ = do(t, "PATCH", server.URL+"/posts", `{}`)
	assert.Equal(t, 404, status)
}

func TestServer_WithPostCount(t *testing.T) {
	server := newTestServer(t, WithPostCount(3))

	_, body := do(t, "POST", server.URL+"/posts", `{"title":"x"}`)
	assert.Contains(t, body, `"id":4`)
}

func TestServer_GetRoutes(t *testing.T) {
	routes := NewServer().GetRoutes()
	require.Len(t, routes, 7)

	var names []string
	for _, r := range routes {
		names = append(names, r.Method+" "+r.PathPattern)
	}
	assert.Contains(t, names, "POST /posts")
	assert.Contains(t, names, "GET /posts/{id}/comments")
}

func TestRouter_Match(t *testing.T) {
	r := NewRouter()
	noop := func(http.ResponseWriter, *http.Request, map[string]string) {}
	r.Handle("GET", "/posts", "list", noop)
	r.Handle("GET", "/posts/{id}", "get", noop)
	r.Handle("GET", "/posts/{id}/comments", "comments", noop)

	tests := []struct {
		method string
		path   string
		name   string
		params map[string]string
	}{
		{"GET", "/posts", "list", map[string]string{}},
		{"get", "posts/", "list", map[string]string{}},
		{"GET", "/posts/12", "get", map[string]string{"id": "12"}},
		{"GET", "/posts/12/comments", "comments", map[string]string{"id": "12"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			route, params := r.Match(tt.method, tt.path)
			require.NotNil(t, route)
			assert.Equal(t, tt.name, route.Name)
			assert.Equal(t, tt.params, params)
		})
	}

	route, _ := r.Match("GET", "/posts/abc")
	assert.Nil(t, route)
	route, _ = r.Match("POST", "/posts/1")
	assert.Nil(t, route)
}
