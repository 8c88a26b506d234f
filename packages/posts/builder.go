package posts

import (
	"net/http"
	"strconv"

	httpclient "github.com/abdul-hamid-achik/postprobe/packages/http"
)

const (
	// CollectionPath is the posts collection, relative to the base URL
	CollectionPath = "posts"
	// UserIDParam filters the collection by author
	UserIDParam = "userId"
)

// ItemPath returns the path of a single post.
func ItemPath(id int) string {
	return CollectionPath + "/" + strconv.Itoa(id)
}

// CommentsPath returns the path of a post's comments.
func CommentsPath(id int) string {
	return ItemPath(id) + "/comments"
}

func ListAll() *httpclient.Request {
	return httpclient.NewRequest(http.MethodGet, CollectionPath)
}

func Create(title, body string, userID int) *httpclient.Request {
	return httpclient.NewRequest(http.MethodPost, CollectionPath).
		SetJSONBody(CreatePayload{Title: title, Body: body, UserID: userID})
}

func Replace(id int, title, body string, userID int) *httpclient.Request {
	return httpclient.NewRequest(http.MethodPut, ItemPath(id)).
		SetJSONBody(ReplacePayload{ID: id, Title: title, Body: body, UserID: userID})
}

func Patch(id int, title string) *httpclient.Request {
	return httpclient.NewRequest(http.MethodPatch, ItemPath(id)).
		SetJSONBody(PatchPayload{Title: title})
}

func Remove(id int) *httpclient.Request {
	return httpclient.NewRequest(http.MethodDelete, ItemPath(id))
}

func ListByUser(userID int) *httpclient.Request {
	return httpclient.NewRequest(http.MethodGet, CollectionPath).
		SetQueryParam(UserIDParam, strconv.Itoa(userID))
}

func ListComments(id int) *httpclient.Request {
	return httpclient.NewRequest(http.MethodGet, CommentsPath(id))
}
