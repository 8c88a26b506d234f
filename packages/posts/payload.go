package posts

// Post is the full resource shape returned by the service.
type Post struct {
	ID     int    `json:"id,omitempty"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// Comment belongs to a post.
type Comment struct {
	ID     int    `json:"id"`
	PostID int    `json:"postId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Body   string `json:"body"`
}

// CreatePayload is the body of a POST to the collection.
type CreatePayload struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// ReplacePayload is the body of a PUT that replaces a whole post.
type ReplacePayload struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	UserID int    `json:"userId"`
}

// PatchPayload is the body of a PATCH that only changes the title.
type PatchPayload struct {
	Title string `json:"title"`
}
