package service

import (
	"context"
	"strings"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc := NewCommentService(noopCommentRepo(), publishedPostRepo(3))
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateCommentInput
	}{
		{
			name:  "empty name",
			input: CreateCommentInput{PostSlug: "p", Email: "a@b.com", Body: "hi"},
		},
		{
			name:  "name too long",
			input: CreateCommentInput{PostSlug: "p", Name: strings.Repeat("x", 101), Email: "a@b.com", Body: "hi"},
		},
		{
			name:  "invalid email",
			input: CreateCommentInput{PostSlug: "p", Name: "Ada", Email: "not-an-email", Body: "hi"},
		},
		{
			name:  "empty body",
			input: CreateCommentInput{PostSlug: "p", Name: "Ada", Email: "a@b.com"},
		},
		{
			name:  "body too long",
			input: CreateCommentInput{PostSlug: "p", Name: "Ada", Email: "a@b.com", Body: strings.Repeat("x", 5001)},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Create(ctx, tc.input)
			assertValidationError(t, err)
		})
	}
}

func TestCommentService_Create_ApprovedImmediately(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	var created *models.Comment
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 11
		created = c
		return nil
	}
	svc := NewCommentService(comments, publishedPostRepo(3))

	comment, err := svc.Create(context.Background(), CreateCommentInput{
		PostSlug: "hello",
		Name:     "  Ada  ",
		Email:    "ada@example.com",
		Body:     "Nice post!",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(3), comment.PostID)
	assert.Equal(t, "Ada", comment.Name)
	assert.True(t, comment.IsApproved)
}

func TestCommentService_Create_HoldForReview(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	svc := NewCommentService(comments, publishedPostRepo(3))

	comment, err := svc.Create(context.Background(), CreateCommentInput{
		PostSlug:      "hello",
		Name:          "Ada",
		Email:         "ada@example.com",
		Body:          "Nice post!",
		HoldForReview: true,
	})
	require.NoError(t, err)
	assert.False(t, comment.IsApproved)
}

func TestCommentService_Create_UnknownPost(t *testing.T) {
	t.Parallel()

	posts := noopPostRepo()
	posts.getBySlugFn = func(_ context.Context, slug string, _ bool, _ repository.Viewer) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", slug)
	}
	svc := NewCommentService(noopCommentRepo(), posts)

	_, err := svc.Create(context.Background(), CreateCommentInput{
		PostSlug: "missing",
		Name:     "Ada",
		Email:    "ada@example.com",
		Body:     "hi",
	})
	assertErrorCode(t, err, "NOT_FOUND")
}

func TestCommentService_ListForPost_Visibility(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	var gotApprovedOnly bool
	comments.listByPostFn = func(_ context.Context, _ uint, approvedOnly bool) ([]*models.Comment, error) {
		gotApprovedOnly = approvedOnly
		return nil, nil
	}
	posts := noopPostRepo()
	posts.getBySlugFn = func(_ context.Context, slug string, _ bool, _ repository.Viewer) (*models.Post, error) {
		return &models.Post{ID: 3, Slug: slug}, nil
	}
	svc := NewCommentService(comments, posts)
	ctx := context.Background()

	_, err := svc.ListForPost(ctx, "p", false)
	require.NoError(t, err)
	assert.True(t, gotApprovedOnly, "public listing must be approved only")

	_, err = svc.ListForPost(ctx, "p", true)
	require.NoError(t, err)
	assert.False(t, gotApprovedOnly, "staff see hidden comments")
}

func TestCommentService_SetApproval(t *testing.T) {
	t.Parallel()

	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, IsApproved: true}, nil
	}
	var updated *models.Comment
	comments.updateFn = func(_ context.Context, c *models.Comment) error {
		updated = c
		return nil
	}
	svc := NewCommentService(comments, noopPostRepo())

	comment, err := svc.SetApproval(context.Background(), 11, false)
	require.NoError(t, err)
	assert.False(t, comment.IsApproved)
	require.NotNil(t, updated)
	assert.False(t, updated.IsApproved)
}
