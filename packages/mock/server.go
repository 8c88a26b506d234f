// Package mock provides an in-memory posts service for local runs and tests.
//
// It mirrors the public posts API: reads are served from a seeded data set,
// writes are validated and echoed back but never persisted, so every suite run
// against the same server observes the same data.
package mock

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/abdul-hamid-achik/postprobe/packages/posts"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultPort is the port the mock server listens on
	DefaultPort = 3000
	// DefaultPostCount is the number of seeded posts
	DefaultPostCount = 100
	// PostsPerUser controls how seeded posts are spread over users
	PostsPerUser = 10
	// CommentsPerPost is the number of seeded comments on each post
	CommentsPerPost = 5
)

// Server is a mock posts service
type Server struct {
	router    *Router
	port      int
	delay     time.Duration
	verbose   bool
	log       *logrus.Logger
	postCount int
	posts     map[int]posts.Post
	comments  map[int][]posts.Comment
}

// Option is a functional option for Server
type Option func(*Server)

// WithPort sets the server port
func WithPort(port int) Option {
	return func(s *Server) {
		s.port = port
	}
}

// WithDelay adds a delay to all responses
func WithDelay(delay time.Duration) Option {
	return func(s *Server) {
		s.delay = delay
	}
}

// WithVerbose enables per-request logging
func WithVerbose(verbose bool) Option {
	return func(s *Server) {
		s.verbose = verbose
	}
}

func WithLogger(logger *logrus.Logger) Option {
	return func(s *Server) {
		s.log = logger
	}
}

// WithPostCount sets how many posts are seeded
func WithPostCount(n int) Option {
	return func(s *Server) {
		s.postCount = n
	}
}

// NewServer creates a new mock server
func NewServer(opts ...Option) *Server {
	s := &Server{
		router:    NewRouter(),
		port:      DefaultPort,
		log:       logrus.StandardLogger(),
		postCount: DefaultPostCount,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.seed()
	s.routes()
	return s
}

func (s *Server) seed() {
	s.posts = make(map[int]posts.Post, s.postCount)
	s.comments = make(map[int][]posts.Comment, s.postCount)
	for id := 1; id <= s.postCount; id++ {
		s.posts[id] = posts.Post{
			ID:     id,
			Title:  fmt.Sprintf("post %d", id),
			Body:   fmt.Sprintf("body of post %d", id),
			UserID: (id-1)/PostsPerUser + 1,
		}
		comments := make([]posts.Comment, CommentsPerPost)
		for i := range comments {
			commentID := (id-1)*CommentsPerPost + i + 1
			comments[i] = posts.Comment{
				ID:     commentID,
				PostID: id,
				Name:   fmt.Sprintf("comment %d", commentID),
				Email:  fmt.Sprintf("user%d@example.com", commentID),
				Body:   fmt.Sprintf("comment %d on post %d", commentID, id),
			}
		}
		s.comments[id] = comments
	}
}

func (s *Server) routes() {
	s.router.Handle(http.MethodGet, "/posts", "listPosts", s.listPosts)
	s.router.Handle(http.MethodPost, "/posts", "createPost", s.createPost)
	s.router.Handle(http.MethodGet, "/posts/{id}", "getPost", s.getPost)
	s.router.Handle(http.MethodPut, "/posts/{id}", "replacePost", s.replacePost)
	s.router.Handle(http.MethodPatch, "/posts/{id}", "patchPost", s.patchPost)
	s.router.Handle(http.MethodDelete, "/posts/{id}", "deletePost", s.deletePost)
	s.router.Handle(http.MethodGet, "/posts/{id}/comments", "listComments", s.listComments)
}

// GetRoutes returns all registered routes
func (s *Server) GetRoutes() []*Route {
	return s.router.Routes()
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handleRequest)
}

// StartWithContext serves until ctx is cancelled
func (s *Server) StartWithContext(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.port))
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	s.log.Infof("Mock server listening on http://%s", ln.Addr())
	if s.verbose {
		for _, route := range s.GetRoutes() {
			s.log.Infof("  %s %s (%s)", route.Method, route.PathPattern, route.Name)
		}
	}

	if err := server.Serve(ln); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	// Apply delay if configured
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	route, params := s.router.Match(r.Method, r.URL.Path)
	if route == nil {
		writeJSON(w, http.StatusNotFound, struct{}{})
		s.logRequest(r, http.StatusNotFound, start)
		return
	}

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	route.Handler(rec, r, params)
	s.logRequest(r, rec.status, start)
}

func (s *Server) logRequest(r *http.Request, status int, start time.Time) {
	if !s.verbose {
		return
	}
	s.log.WithFields(logrus.Fields{
		"method":   r.Method,
		"path":     r.URL.RequestURI(),
		"status":   status,
		"duration": time.Since(start).String(),
	}).Info("mock request")
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	filter := r.URL.Query().Get(posts.UserIDParam)
	userID, filterErr := strconv.Atoi(filter)

	result := make([]posts.Post, 0, len(s.posts))
	for id := 1; id <= s.postCount; id++ {
		p := s.posts[id]
		if filter != "" && (filterErr != nil || p.UserID != userID) {
			continue
		}
		result = append(result, p)
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	var p posts.Post
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p.ID = s.postCount + 1
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request, params map[string]string) {
	p, ok := s.lookup(params)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) replacePost(w http.ResponseWriter, r *http.Request, params map[string]string) {
	existing, ok := s.lookup(params)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	var p posts.Post
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p.ID = existing.ID
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) patchPost(w http.ResponseWriter, r *http.Request, params map[string]string) {
	p, ok := s.lookup(params)
	if !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	id := p.ID
	// Fields absent from the body keep their stored values
	if err := decodeBody(r, &p); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	p.ID = id
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request, params map[string]string) {
	if _, ok := s.lookup(params); !ok {
		writeJSON(w, http.StatusNotFound, struct{}{})
		return
	}
	writeJSON(w, http.StatusOK, struct{}{})
}

func (s *Server) listComments(w http.ResponseWriter, r *http.Request, params map[string]string) {
	id, _ := strconv.Atoi(params["id"])
	comments, ok := s.comments[id]
	if !ok {
		comments = []posts.Comment{}
	}
	writeJSON(w, http.StatusOK, comments)
}

func (s *Server) lookup(params map[string]string) (posts.Post, bool) {
	id, err := strconv.Atoi(params["id"])
	if err != nil {
		return posts.Post{}, false
	}
	p, ok := s.posts[id]
	return p, ok
}

func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
