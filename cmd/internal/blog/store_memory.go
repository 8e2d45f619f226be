package blog

import (
	"context"
	"sort"
	"sync"
	"time"

	"posthub/cmd/identity"
	"posthub/cmd/internal/fault"
)

// MemoryStore is a process-local Store used by tests and DB-less dev mode.
type MemoryStore struct {
	mu       sync.Mutex
	posts    map[string]Post
	comments map[string]Comment
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		posts:    make(map[string]Post),
		comments: make(map[string]Comment),
	}
}

// GetPost returns the post for id, or a fault.ErrNotFound kind.
func (s *MemoryStore) GetPost(ctx context.Context, id string) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return Post{}, fault.New("blog.GetPost", fault.ErrNotFound, msgPostNotFound)
	}
	return p, nil
}

// ListPosts returns all posts in creation order (ULIDs sort by time).
func (s *MemoryStore) ListPosts(ctx context.Context) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreatePost inserts a new post.
func (s *MemoryStore) CreatePost(ctx context.Context, in CreatePostInput) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := identity.NewULID(now)
	if err != nil {
		return Post{}, err
	}

	p := Post{
		ID:        id,
		AuthorID:  in.AuthorID,
		Title:     in.Title,
		Body:      in.Body,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts[p.ID] = p
	return p, nil
}

// EditPost updates title/body, or reports fault.ErrNotFound.
func (s *MemoryStore) EditPost(ctx context.Context, id string, in EditPostInput) (Post, error) {
	if err := ctx.Err(); err != nil {
		return Post{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return Post{}, fault.New("blog.EditPost", fault.ErrNotFound, msgPostNotFound)
	}
	p.Title = in.Title
	p.Body = in.Body
	p.UpdatedAt = now
	s.posts[id] = p
	return p, nil
}

// DeletePost removes the post and its comments, or reports fault.ErrNotFound.
func (s *MemoryStore) DeletePost(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return fault.New("blog.DeletePost", fault.ErrNotFound, msgPostNotFound)
	}
	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

// GetComment returns the comment for id, or a fault.ErrNotFound kind.
func (s *MemoryStore) GetComment(ctx context.Context, id string) (Comment, error) {
	if err := ctx.Err(); err != nil {
		return Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, fault.New("blog.GetComment", fault.ErrNotFound, msgCommentNotFound)
	}
	return c, nil
}

// ListCommentsByPost returns the post's comments in creation order.
func (s *MemoryStore) ListCommentsByPost(ctx context.Context, postID string) ([]Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Comment, 0, 8)
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// CreateComment inserts a comment; the referenced post must exist.
func (s *MemoryStore) CreateComment(ctx context.Context, in CreateCommentInput) (Comment, error) {
	if err := ctx.Err(); err != nil {
		return Comment{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := identity.NewULID(now)
	if err != nil {
		return Comment{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[in.PostID]; !ok {
		return Comment{}, fault.New("blog.CreateComment", fault.ErrNotFound, msgPostNotFound)
	}

	c := Comment{
		ID:        id,
		PostID:    in.PostID,
		AuthorID:  in.AuthorID,
		Content:   in.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.comments[c.ID] = c
	return c, nil
}

// EditComment updates the content, or reports fault.ErrNotFound.
func (s *MemoryStore) EditComment(ctx context.Context, id string, in EditCommentInput) (Comment, error) {
	if err := ctx.Err(); err != nil {
		return Comment{}, err
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return Comment{}, fault.New("blog.EditComment", fault.ErrNotFound, msgCommentNotFound)
	}
	c.Content = in.Content
	c.UpdatedAt = now
	s.comments[id] = c
	return c, nil
}

// DeleteComment removes the comment, or reports fault.ErrNotFound.
func (s *MemoryStore) DeleteComment(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return fault.New("blog.DeleteComment", fault.ErrNotFound, msgCommentNotFound)
	}
	delete(s.comments, id)
	return nil
}
