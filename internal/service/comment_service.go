package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const maxCommentNameLen = 100

// CommentService handles reader comments and their moderation.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// CreateCommentInput captures an unauthenticated comment submission.
// HoldForReview stores the comment hidden so staff approve it first.
type CreateCommentInput struct {
	PostSlug      string
	Name          string
	Email         string
	Body          string
	HoldForReview bool
}

// Create validates and stores a comment on a published post. Comments
// are visible immediately unless held; staff can hide them afterwards.
func (s *CommentService) Create(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxCommentNameLen {
		return nil, models.NewValidationError("Name too long (max 100 characters)")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateCommentBody(in.Body); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post, err := s.postRepo.GetBySlug(ctx, in.PostSlug, true, repository.Viewer{})
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:     post.ID,
		Name:       name,
		Email:      strings.TrimSpace(in.Email),
		Body:       strings.TrimSpace(in.Body),
		IsApproved: !in.HoldForReview,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// ListForPost returns a post's comments, oldest first. Staff see hidden
// comments too.
func (s *CommentService) ListForPost(ctx context.Context, slugVal string, staff bool) ([]*models.Comment, error) {
	post, err := s.postRepo.GetBySlug(ctx, slugVal, !staff, repository.Viewer{Staff: staff})
	if err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, post.ID, !staff)
}

// SetApproval shows or hides a comment.
func (s *CommentService) SetApproval(ctx context.Context, id uint, approved bool) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comment.IsApproved = approved
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment permanently.
func (s *CommentService) Delete(ctx context.Context, id uint) error {
	return s.commentRepo.Delete(ctx, id)
}
