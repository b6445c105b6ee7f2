package models

import "time"

// Post carries only the author id; usernames are resolved at read time
// through the identity authority and never stored here.
type Post struct {
	ID        int64
	Title     string
	Content   string
	ImageKey  *string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID        int64
	PostID    int64
	Content   string
	AuthorID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
