package blog

import (
	"context"
	"log/slog"

	"posthub/cmd/internal/fault"
)

// PostService exposes post CRUD over a Store.
type PostService struct {
	store Store
	log   *slog.Logger
}

// NewPostService constructs a PostService.
func NewPostService(store Store, log *slog.Logger) *PostService {
	if log == nil {
		log = slog.Default()
	}
	return &PostService{store: store, log: log}
}

func (s *PostService) Get(ctx context.Context, id string) (Post, error) {
	return s.store.GetPost(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]Post, error) {
	return s.store.ListPosts(ctx)
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput) (Post, error) {
	p, err := s.store.CreatePost(ctx, in)
	if err != nil {
		return Post{}, err
	}
	s.log.Info("blog.post.created", "post_id", p.ID, "author_id", p.AuthorID)
	return p, nil
}

func (s *PostService) Edit(ctx context.Context, id string, in EditPostInput) (Post, error) {
	return s.store.EditPost(ctx, id, in)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeletePost(ctx, id); err != nil {
		return err
	}
	s.log.Info("blog.post.deleted", "post_id", id)
	return nil
}

// CommentService exposes comment CRUD over a Store.
type CommentService struct {
	store Store
	log   *slog.Logger
}

// NewCommentService constructs a CommentService.
func NewCommentService(store Store, log *slog.Logger) *CommentService {
	if log == nil {
		log = slog.Default()
	}
	return &CommentService{store: store, log: log}
}

func (s *CommentService) Get(ctx context.Context, id string) (Comment, error) {
	return s.store.GetComment(ctx, id)
}

func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]Comment, error) {
	// Listing comments of a missing post is NotFound, not an empty list.
	if _, err := s.store.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.store.ListCommentsByPost(ctx, postID)
}

// Create verifies the parent post exists before inserting the comment, then
// re-reads the stored row. A vanished row after insert is an invalid
// internal state, not a client error.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (Comment, error) {
	const op = "blog.CreateComment"

	if _, err := s.store.GetPost(ctx, in.PostID); err != nil {
		return Comment{}, err
	}

	created, err := s.store.CreateComment(ctx, in)
	if err != nil {
		return Comment{}, err
	}

	stored, err := s.store.GetComment(ctx, created.ID)
	if err != nil {
		if fault.IsNotFound(err) {
			return Comment{}, fault.New(op, fault.ErrInternal, "comment was not persisted")
		}
		return Comment{}, err
	}

	s.log.Info("blog.comment.created", "comment_id", stored.ID, "post_id", stored.PostID)
	return stored, nil
}

func (s *CommentService) Edit(ctx context.Context, id string, in EditCommentInput) (Comment, error) {
	return s.store.EditComment(ctx, id, in)
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteComment(ctx, id); err != nil {
		return err
	}
	s.log.Info("blog.comment.deleted", "comment_id", id)
	return nil
}
