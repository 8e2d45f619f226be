package blog

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"posthub/cmd/internal/fault"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServices(t *testing.T) (*PostService, *CommentService, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	return NewPostService(store, discardLogger()), NewCommentService(store, discardLogger()), store
}

func mustCreatePost(t *testing.T, posts *PostService) Post {
	t.Helper()
	p, err := posts.Create(context.Background(), CreatePostInput{
		AuthorID: "author-1",
		Title:    "First",
		Body:     "Hello",
		Now:      time.Now(),
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	return p
}

func TestPostServiceRoundTrip(t *testing.T) {
	posts, _, _ := newTestServices(t)
	ctx := context.Background()

	created := mustCreatePost(t, posts)
	if created.ID == "" {
		t.Fatal("expected a generated post id")
	}

	got, err := posts.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "First" || got.AuthorID != "author-1" {
		t.Fatalf("unexpected post: %+v", got)
	}

	edited, err := posts.Edit(ctx, created.ID, EditPostInput{Title: "Second", Body: "Bye", Now: time.Now()})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Title != "Second" || edited.Body != "Bye" {
		t.Fatalf("edit did not apply: %+v", edited)
	}
	if edited.CreatedAt != created.CreatedAt {
		t.Fatal("edit must not change CreatedAt")
	}

	all, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 post, got %d", len(all))
	}

	if err := posts.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := posts.Get(ctx, created.ID); !fault.IsNotFound(err) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestPostServiceMissingPostMessage(t *testing.T) {
	posts, _, _ := newTestServices(t)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := posts.Get(ctx, "missing"); return err }},
		{"edit", func() error { _, err := posts.Edit(ctx, "missing", EditPostInput{Title: "x"}); return err }},
		{"delete", func() error { return posts.Delete(ctx, "missing") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if !fault.IsNotFound(err) {
				t.Fatalf("expected NotFound, got %v", err)
			}
			if msg := fault.Message(err); msg != "Post not found!" {
				t.Fatalf("message = %q", msg)
			}
		})
	}
}

func TestCommentServiceRoundTrip(t *testing.T) {
	posts, comments, _ := newTestServices(t)
	ctx := context.Background()

	post := mustCreatePost(t, posts)

	created, err := comments.Create(ctx, CreateCommentInput{
		PostID:   post.ID,
		AuthorID: "author-2",
		Content:  "Nice",
		Now:      time.Now(),
	})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	got, err := comments.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.PostID != post.ID || got.Content != "Nice" {
		t.Fatalf("unexpected comment: %+v", got)
	}

	edited, err := comments.Edit(ctx, created.ID, EditCommentInput{Content: "Better", Now: time.Now()})
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if edited.Content != "Better" {
		t.Fatalf("edit did not apply: %+v", edited)
	}

	list, err := comments.ListByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(list))
	}

	if err := comments.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := comments.Get(ctx, created.ID); !fault.IsNotFound(err) {
		t.Fatalf("expected NotFound after delete, got %v", err)
	}
}

func TestCommentServiceMissingParentPost(t *testing.T) {
	_, comments, _ := newTestServices(t)
	ctx := context.Background()

	_, err := comments.Create(ctx, CreateCommentInput{PostID: "missing", AuthorID: "a", Content: "x"})
	if !fault.IsNotFound(err) {
		t.Fatalf("expected NotFound, got %v", err)
	}
	if msg := fault.Message(err); msg != "Post not found!" {
		t.Fatalf("message = %q", msg)
	}

	if _, err := comments.ListByPost(ctx, "missing"); !fault.IsNotFound(err) {
		t.Fatalf("expected NotFound listing comments of a missing post, got %v", err)
	}
}

func TestCommentServiceMissingCommentMessage(t *testing.T) {
	_, comments, _ := newTestServices(t)
	ctx := context.Background()

	cases := []struct {
		name string
		call func() error
	}{
		{"get", func() error { _, err := comments.Get(ctx, "missing"); return err }},
		{"edit", func() error { _, err := comments.Edit(ctx, "missing", EditCommentInput{Content: "x"}); return err }},
		{"delete", func() error { return comments.Delete(ctx, "missing") }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if !fault.IsNotFound(err) {
				t.Fatalf("expected NotFound, got %v", err)
			}
			if msg := fault.Message(err); msg != "Comment not found!" {
				t.Fatalf("message = %q", msg)
			}
		})
	}
}

func TestDeletePostCascadesComments(t *testing.T) {
	posts, comments, _ := newTestServices(t)
	ctx := context.Background()

	post := mustCreatePost(t, posts)
	c, err := comments.Create(ctx, CreateCommentInput{PostID: post.ID, AuthorID: "a", Content: "x", Now: time.Now()})
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if err := posts.Delete(ctx, post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}
	if _, err := comments.Get(ctx, c.ID); !fault.IsNotFound(err) {
		t.Fatalf("expected comment removed with its post, got %v", err)
	}
}

func TestListPostsOrderedByCreation(t *testing.T) {
	posts, _, _ := newTestServices(t)
	ctx := context.Background()

	// Distinct timestamps: ULIDs only order by creation time across
	// different milliseconds.
	base := time.Now()
	var ids []string
	for i := range 3 {
		p, err := posts.Create(ctx, CreatePostInput{
			AuthorID: "author-1",
			Title:    "Post",
			Body:     "Body",
			Now:      base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("create post: %v", err)
		}
		ids = append(ids, p.ID)
	}

	all, err := posts.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != len(ids) {
		t.Fatalf("expected %d posts, got %d", len(ids), len(all))
	}
	for i, p := range all {
		if p.ID != ids[i] {
			t.Fatalf("position %d: expected %s, got %s", i, ids[i], p.ID)
		}
	}
}
