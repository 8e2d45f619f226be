package blog

import "context"

// Messages for missing entities. The pipeline echoes these to clients, so
// they are part of the API surface.
const (
	msgPostNotFound    = "Post not found!"
	msgCommentNotFound = "Comment not found!"
)

// Store is the post/comment persistence boundary. Missing ids surface as
// fault.ErrNotFound kinds carrying the exact user-facing message.
type Store interface {
	GetPost(ctx context.Context, id string) (Post, error)
	ListPosts(ctx context.Context) ([]Post, error)
	CreatePost(ctx context.Context, in CreatePostInput) (Post, error)
	EditPost(ctx context.Context, id string, in EditPostInput) (Post, error)
	DeletePost(ctx context.Context, id string) error

	GetComment(ctx context.Context, id string) (Comment, error)
	ListCommentsByPost(ctx context.Context, postID string) ([]Comment, error)
	CreateComment(ctx context.Context, in CreateCommentInput) (Comment, error)
	EditComment(ctx context.Context, id string, in EditCommentInput) (Comment, error)
	DeleteComment(ctx context.Context, id string) error
}
