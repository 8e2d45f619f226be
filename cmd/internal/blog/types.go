// Package blog implements PostHub's post and comment services.
//
// These are plain data-mapping services: they raise NotFound-class failures
// when an entity id does not resolve and leave all response formatting to
// the request pipeline.
package blog

import "time"

// Post is a published article.
type Post struct {
	ID        string
	AuthorID  string
	Title     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is attached to exactly one post.
type Comment struct {
	ID        string
	PostID    string
	AuthorID  string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreatePostInput describes a new post.
type CreatePostInput struct {
	AuthorID string
	Title    string
	Body     string
	Now      time.Time
}

// EditPostInput carries the mutable post fields.
type EditPostInput struct {
	Title string
	Body  string
	Now   time.Time
}

// CreateCommentInput describes a new comment under a post.
type CreateCommentInput struct {
	PostID   string
	AuthorID string
	Content  string
	Now      time.Time
}

// EditCommentInput carries the mutable comment fields.
type EditCommentInput struct {
	Content string
	Now     time.Time
}
