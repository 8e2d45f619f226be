// Package api wires PostHub's HTTP surface: DTO decoding and shape checks,
// route registration and the mapping from verbs to identity and blog
// services. Handlers report failures as typed errors; HTTP status and body
// formatting belong to the request pipeline.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"posthub/cmd/internal/auth"
	"posthub/cmd/internal/blog"
	"posthub/cmd/internal/fault"
	"posthub/cmd/internal/pipeline"
)

// Handler wires HTTP endpoints to the identity core and blog services.
type Handler struct {
	log *slog.Logger

	auth     *auth.Service
	tokens   auth.TokenManager
	posts    *blog.PostService
	comments *blog.CommentService

	maxBodyBytes int64
}

// NewHandler constructs the API handler.
func NewHandler(log *slog.Logger, authSvc *auth.Service, tokens auth.TokenManager, posts *blog.PostService, comments *blog.CommentService) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{
		log:          log,
		auth:         authSvc,
		tokens:       tokens,
		posts:        posts,
		comments:     comments,
		maxBodyBytes: defaultMaxBodyBytes,
	}
}

// Register wires the API routes onto the provided mux. Reads are public;
// mutations sit behind the bearer-auth boundary.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}

	open := func(fn pipeline.HandlerFunc) http.Handler {
		return pipeline.Translate(h.log, fn)
	}
	protected := func(fn pipeline.HandlerFunc) http.Handler {
		return auth.RequireAuth(pipeline.Translate(h.log, fn), h.tokens)
	}

	mux.Handle("POST /api/users/register", open(h.handleRegister))
	mux.Handle("POST /api/users/login", open(h.handleLogin))

	mux.Handle("GET /api/posts", open(h.handleListPosts))
	mux.Handle("GET /api/posts/{id}", open(h.handleGetPost))
	mux.Handle("POST /api/posts", protected(h.handleCreatePost))
	mux.Handle("PUT /api/posts/{id}", protected(h.handleEditPost))
	mux.Handle("DELETE /api/posts/{id}", protected(h.handleDeletePost))

	mux.Handle("GET /api/posts/{id}/comments", open(h.handleListComments))
	mux.Handle("POST /api/posts/{id}/comments", protected(h.handleCreateComment))
	mux.Handle("GET /api/comments/{id}", open(h.handleGetComment))
	mux.Handle("PUT /api/comments/{id}", protected(h.handleEditComment))
	mux.Handle("DELETE /api/comments/{id}", protected(h.handleDeleteComment))
}

// ---- users ----

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) error {
	var req registerRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	token, err := h.auth.Register(r.Context(), auth.RegisterInput{
		Email:           req.Email,
		Username:        req.Username,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	return nil
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	token, err := h.auth.Login(r.Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
	return nil
}

// ---- posts ----

func (h *Handler) handleListPosts(w http.ResponseWriter, r *http.Request) error {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toPostResponses(posts))
	return nil
}

func (h *Handler) handleGetPost(w http.ResponseWriter, r *http.Request) error {
	p, err := h.posts.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toPostResponse(p))
	return nil
}

func (h *Handler) handleCreatePost(w http.ResponseWriter, r *http.Request) error {
	claims, err := requireClaims(r)
	if err != nil {
		return err
	}

	var req postRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	p, err := h.posts.Create(r.Context(), blog.CreatePostInput{
		AuthorID: claims.UserID,
		Title:    req.Title,
		Body:     req.Body,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, toPostResponse(p))
	return nil
}

func (h *Handler) handleEditPost(w http.ResponseWriter, r *http.Request) error {
	var req postRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	p, err := h.posts.Edit(r.Context(), r.PathValue("id"), blog.EditPostInput{
		Title: req.Title,
		Body:  req.Body,
		Now:   time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, toPostResponse(p))
	return nil
}

func (h *Handler) handleDeletePost(w http.ResponseWriter, r *http.Request) error {
	if err := h.posts.Delete(r.Context(), r.PathValue("id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ---- comments ----

func (h *Handler) handleListComments(w http.ResponseWriter, r *http.Request) error {
	comments, err := h.comments.ListByPost(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toCommentResponses(comments))
	return nil
}

func (h *Handler) handleGetComment(w http.ResponseWriter, r *http.Request) error {
	c, err := h.comments.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		return err
	}
	writeJSON(w, http.StatusOK, toCommentResponse(c))
	return nil
}

func (h *Handler) handleCreateComment(w http.ResponseWriter, r *http.Request) error {
	claims, err := requireClaims(r)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	c, err := h.comments.Create(r.Context(), blog.CreateCommentInput{
		PostID:   r.PathValue("id"),
		AuthorID: claims.UserID,
		Content:  req.Content,
		Now:      time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusCreated, toCommentResponse(c))
	return nil
}

func (h *Handler) handleEditComment(w http.ResponseWriter, r *http.Request) error {
	var req commentRequest
	if err := decodeJSON(w, r, h.maxBodyBytes, &req); err != nil {
		return err
	}
	if err := req.validate(); err != nil {
		return err
	}

	c, err := h.comments.Edit(r.Context(), r.PathValue("id"), blog.EditCommentInput{
		Content: req.Content,
		Now:     time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, toCommentResponse(c))
	return nil
}

func (h *Handler) handleDeleteComment(w http.ResponseWriter, r *http.Request) error {
	if err := h.comments.Delete(r.Context(), r.PathValue("id")); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// requireClaims reads the verified token claims placed in the context by the
// bearer-auth boundary. Missing claims on a protected route means the route
// was mounted without RequireAuth, which is a wiring bug, not a client error.
func requireClaims(r *http.Request) (auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return auth.Claims{}, fault.New("api.requireClaims", fault.ErrInternal, "auth claims missing")
	}
	return claims, nil
}
