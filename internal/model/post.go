package model

import "time"

// Post is a task owned by a user. OwnerLogin is filled from a join on the
// user table; the stored reference is OwnerID.
type Post struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostedAt    time.Time `json:"posted_at"`
	OwnerID     int64     `json:"owner_id"`
	OwnerLogin  string    `json:"owner_login"`
}

// CreatePostForm holds the fields submitted to /list.
type CreatePostForm struct {
	Title       string `validate:"max=100"`
	Description string
	Login       string
}
