package runner

import (
	"github.com/abdul-hamid-achik/postprobe/packages/http"
	"github.com/abdul-hamid-achik/postprobe/packages/posts"
)

// Operation tags, shared by both execution modes
const (
	TagGetAllPosts       = "GetAllPosts"
	TagCreatePost        = "CreatePost"
	TagUpdatePost        = "UpdatePost"
	TagPartialUpdatePost = "PartialUpdatePost"
	TagDeletePost        = "DeletePost"
	TagGetPostsByUser    = "GetPostsByUser"
	TagGetPostComments   = "GetPostComments"
)

// SuiteArgs are the arguments passed to the suite operations.
type SuiteArgs struct {
	PostID int    `json:"postId" yaml:"postId"`
	UserID int    `json:"userId" yaml:"userId"`
	Title  string `json:"title" yaml:"title"`
	Body   string `json:"body" yaml:"body"`
}

func DefaultSuiteArgs() SuiteArgs {
	return SuiteArgs{
		PostID: 1,
		UserID: 1,
		Title:  "foo",
		Body:   "bar",
	}
}

// Step is one suite operation. Build is called right before dispatch so every
// run gets fresh descriptors.
type Step struct {
	Tag   string
	Build func() *http.Request
}

// Suite returns the ordered list of operations.
func Suite(args SuiteArgs) []Step {
	return []Step{
		{TagGetAllPosts, posts.ListAll},
		{TagCreatePost, func() *http.Request { return posts.Create(args.Title, args.Body, args.UserID) }},
		{TagUpdatePost, func() *http.Request { return posts.Replace(args.PostID, args.Title, args.Body, args.UserID) }},
		{TagPartialUpdatePost, func() *http.Request { return posts.Patch(args.PostID, args.Title) }},
		{TagDeletePost, func() *http.Request { return posts.Remove(args.PostID) }},
		{TagGetPostsByUser, func() *http.Request { return posts.ListByUser(args.UserID) }},
		{TagGetPostComments, func() *http.Request { return posts.ListComments(args.PostID) }},
	}
}

// Tags returns the suite tags in order.
func Tags() []string {
	steps := Suite(DefaultSuiteArgs())
	tags := make([]string, len(steps))
	for i, s := range steps {
		tags[i] = s.Tag
	}
	return tags
}
