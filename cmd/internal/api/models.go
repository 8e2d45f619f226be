package api

import (
	"strings"
	"time"

	"posthub/cmd/internal/blog"
	"posthub/cmd/internal/fault"
)

const (
	maxTitleLen   = 100
	maxBodyLen    = 10_000
	maxContentLen = 2_000
)

type registerRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (r registerRequest) validate() error {
	const op = "api.register.validate"
	switch {
	case strings.TrimSpace(r.Email) == "":
		return fault.New(op, fault.ErrInvalidInput, "Email is required.")
	case !strings.Contains(r.Email, "@"):
		return fault.New(op, fault.ErrInvalidInput, "Email is not valid.")
	case strings.TrimSpace(r.Username) == "":
		return fault.New(op, fault.ErrInvalidInput, "Username is required.")
	case r.Password == "":
		return fault.New(op, fault.ErrInvalidInput, "Password is required.")
	case r.ConfirmPassword == "":
		return fault.New(op, fault.ErrInvalidInput, "ConfirmPassword is required.")
	}
	return nil
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r loginRequest) validate() error {
	const op = "api.login.validate"
	switch {
	case strings.TrimSpace(r.Username) == "":
		return fault.New(op, fault.ErrInvalidInput, "Username is required.")
	case r.Password == "":
		return fault.New(op, fault.ErrInvalidInput, "Password is required.")
	}
	return nil
}

type tokenResponse struct {
	Token string `json:"token"`
}

type postRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (r postRequest) validate() error {
	const op = "api.post.validate"
	switch {
	case strings.TrimSpace(r.Title) == "":
		return fault.New(op, fault.ErrInvalidInput, "Title is required.")
	case len(r.Title) > maxTitleLen:
		return fault.New(op, fault.ErrInvalidInput, "Title must be at most 100 characters.")
	case strings.TrimSpace(r.Body) == "":
		return fault.New(op, fault.ErrInvalidInput, "Body is required.")
	case len(r.Body) > maxBodyLen:
		return fault.New(op, fault.ErrInvalidInput, "Body is too long.")
	}
	return nil
}

type commentRequest struct {
	Content string `json:"content"`
}

func (r commentRequest) validate() error {
	const op = "api.comment.validate"
	switch {
	case strings.TrimSpace(r.Content) == "":
		return fault.New(op, fault.ErrInvalidInput, "Content is required.")
	case len(r.Content) > maxContentLen:
		return fault.New(op, fault.ErrInvalidInput, "Content is too long.")
	}
	return nil
}

type postResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPostResponse(p blog.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		AuthorID:  p.AuthorID,
		Title:     p.Title,
		Body:      p.Body,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPostResponses(posts []blog.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

type commentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCommentResponse(c blog.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		PostID:    c.PostID,
		AuthorID:  c.AuthorID,
		Content:   c.Content,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toCommentResponses(comments []blog.Comment) []commentResponse {
	out := make([]commentResponse, 0, len(comments))
	for _, c := range comments {
		out = append(out, toCommentResponse(c))
	}
	return out
}
