package blog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"posthub/cmd/identity"
	"posthub/cmd/internal/fault"
)

// PostgresStore implements post/comment persistence over PostgreSQL.
//
// The pgx pool is owned by the caller. Expected tables (schema managed
// externally):
//
//	posts(id, author_id, title, body, created_at, updated_at)
//	comments(id, post_id, author_id, content, created_at, updated_at)
//	with comments.post_id referencing posts(id) ON DELETE CASCADE.
type PostgresStore struct {
	pool   *pgxpool.Pool
	schema string
}

// NewPostgresStore constructs a PostgresStore (default schema "posthub").
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("blog: nil pool")
	}
	return &PostgresStore{pool: pool, schema: "posthub"}, nil
}

const (
	postColumns    = "id, author_id, title, body, created_at, updated_at"
	commentColumns = "id, post_id, author_id, content, created_at, updated_at"
)

func (s *PostgresStore) table(name string) string {
	return pgx.Identifier{s.schema, name}.Sanitize()
}

// GetPost returns the post for id, or a fault.ErrNotFound kind.
func (s *PostgresStore) GetPost(ctx context.Context, id string) (Post, error) {
	var p Post
	err := s.pool.QueryRow(ctx,
		`SELECT `+postColumns+` FROM `+s.table("posts")+` WHERE id = $1`, id,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, fault.New("blog.GetPost", fault.ErrNotFound, msgPostNotFound)
		}
		return Post{}, err
	}
	return p, nil
}

// ListPosts returns all posts in creation order.
func (s *PostgresStore) ListPosts(ctx context.Context) ([]Post, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+postColumns+` FROM `+s.table("posts")+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Post, 0, 32)
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CreatePost inserts a new post.
func (s *PostgresStore) CreatePost(ctx context.Context, in CreatePostInput) (Post, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := identity.NewULID(now)
	if err != nil {
		return Post{}, err
	}

	p := Post{ID: id, AuthorID: in.AuthorID, Title: in.Title, Body: in.Body, CreatedAt: now, UpdatedAt: now}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table("posts")+` (`+postColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.AuthorID, p.Title, p.Body, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return Post{}, err
	}
	return p, nil
}

// EditPost updates title/body, or reports fault.ErrNotFound.
func (s *PostgresStore) EditPost(ctx context.Context, id string, in EditPostInput) (Post, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var p Post
	err := s.pool.QueryRow(ctx,
		`UPDATE `+s.table("posts")+` SET title = $2, body = $3, updated_at = $4
		 WHERE id = $1 RETURNING `+postColumns,
		id, in.Title, in.Body, now,
	).Scan(&p.ID, &p.AuthorID, &p.Title, &p.Body, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Post{}, fault.New("blog.EditPost", fault.ErrNotFound, msgPostNotFound)
		}
		return Post{}, err
	}
	return p, nil
}

// DeletePost removes the post (comments cascade), or reports fault.ErrNotFound.
func (s *PostgresStore) DeletePost(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM `+s.table("posts")+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fault.New("blog.DeletePost", fault.ErrNotFound, msgPostNotFound)
	}
	return nil
}

// GetComment returns the comment for id, or a fault.ErrNotFound kind.
func (s *PostgresStore) GetComment(ctx context.Context, id string) (Comment, error) {
	var c Comment
	err := s.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM `+s.table("comments")+` WHERE id = $1`, id,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, fault.New("blog.GetComment", fault.ErrNotFound, msgCommentNotFound)
		}
		return Comment{}, err
	}
	return c, nil
}

// ListCommentsByPost returns the post's comments in creation order.
func (s *PostgresStore) ListCommentsByPost(ctx context.Context, postID string) ([]Comment, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+commentColumns+` FROM `+s.table("comments")+` WHERE post_id = $1 ORDER BY id`, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Comment, 0, 8)
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateComment inserts a comment. A foreign-key violation on post_id means
// the post does not exist and maps to the same NotFound the pre-check uses.
func (s *PostgresStore) CreateComment(ctx context.Context, in CreateCommentInput) (Comment, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	id, err := identity.NewULID(now)
	if err != nil {
		return Comment{}, err
	}

	c := Comment{ID: id, PostID: in.PostID, AuthorID: in.AuthorID, Content: in.Content, CreatedAt: now, UpdatedAt: now}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO `+s.table("comments")+` (`+commentColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.PostID, c.AuthorID, c.Content, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if pgIsForeignKeyViolation(err) {
			return Comment{}, fault.New("blog.CreateComment", fault.ErrNotFound, msgPostNotFound)
		}
		return Comment{}, err
	}
	return c, nil
}

// EditComment updates the content, or reports fault.ErrNotFound.
func (s *PostgresStore) EditComment(ctx context.Context, id string, in EditCommentInput) (Comment, error) {
	now := in.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var c Comment
	err := s.pool.QueryRow(ctx,
		`UPDATE `+s.table("comments")+` SET content = $2, updated_at = $3
		 WHERE id = $1 RETURNING `+commentColumns,
		id, in.Content, now,
	).Scan(&c.ID, &c.PostID, &c.AuthorID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Comment{}, fault.New("blog.EditComment", fault.ErrNotFound, msgCommentNotFound)
		}
		return Comment{}, err
	}
	return c, nil
}

// DeleteComment removes the comment, or reports fault.ErrNotFound.
func (s *PostgresStore) DeleteComment(ctx context.Context, id string) error {
	ct, err := s.pool.Exec(ctx, `DELETE FROM `+s.table("comments")+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return fault.New("blog.DeleteComment", fault.ErrNotFound, msgCommentNotFound)
	}
	return nil
}

func pgIsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "23503" // foreign_key_violation
}
