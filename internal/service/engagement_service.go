package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

// SavedPageSize is the page size for a reader's saved-posts listing.
const SavedPageSize = 10

// EngagementService handles likes and saved posts.
type EngagementService struct {
	engagementRepo repository.EngagementRepository
	postRepo       repository.PostRepository
}

// NewEngagementService creates a new engagement service.
func NewEngagementService(engagementRepo repository.EngagementRepository, postRepo repository.PostRepository) *EngagementService {
	return &EngagementService{
		engagementRepo: engagementRepo,
		postRepo:       postRepo,
	}
}

// LikeResult reports the post's like state after a toggle.
type LikeResult struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// SaveResult reports the post's saved state after a toggle.
type SaveResult struct {
	Saved bool `json:"saved"`
}

// ToggleLike flips the like state of a published post for a session and
// returns the resulting state with a fresh count.
func (s *EngagementService) ToggleLike(ctx context.Context, slugVal, sessionToken string) (*LikeResult, error) {
	if sessionToken == "" {
		return nil, models.NewValidationError("Missing session token")
	}

	post, err := s.postRepo.GetBySlug(ctx, slugVal, true, repository.Viewer{SessionToken: sessionToken})
	if err != nil {
		return nil, err
	}

	liked, err := s.engagementRepo.IsLiked(ctx, post.ID, sessionToken)
	if err != nil {
		return nil, err
	}

	if liked {
		err = s.engagementRepo.Unlike(ctx, post.ID, sessionToken)
	} else {
		err = s.engagementRepo.Like(ctx, post.ID, sessionToken)
	}
	if err != nil {
		return nil, err
	}

	count, err := s.engagementRepo.CountLikes(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Liked: !liked, LikeCount: count}, nil
}

// ToggleSave flips the saved state of a published post for a signed-in
// reader.
func (s *EngagementService) ToggleSave(ctx context.Context, slugVal string, userID uint) (*SaveResult, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Sign in to save posts")
	}

	post, err := s.postRepo.GetBySlug(ctx, slugVal, true, repository.Viewer{UserID: userID})
	if err != nil {
		return nil, err
	}

	saved, err := s.engagementRepo.IsSaved(ctx, userID, post.ID)
	if err != nil {
		return nil, err
	}

	if saved {
		err = s.engagementRepo.Unsave(ctx, userID, post.ID)
	} else {
		err = s.engagementRepo.Save(ctx, userID, post.ID)
	}
	if err != nil {
		return nil, err
	}

	return &SaveResult{Saved: !saved}, nil
}

// SavedPage is one page of a reader's saved posts.
type SavedPage struct {
	Saved      []*models.SavedPost `json:"saved"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalSaved int64               `json:"total_saved"`
	TotalPages int                 `json:"total_pages"`
}

// ListSaved returns one page of the reader's bookmarks, newest first.
func (s *EngagementService) ListSaved(ctx context.Context, userID uint, page int) (*SavedPage, error) {
	if userID == 0 {
		return nil, models.NewUnauthorizedError("Sign in to view saved posts")
	}

	total, err := s.engagementRepo.CountSaved(ctx, userID)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, SavedPageSize)
	page = clampPage(page, totalPages)

	saved, err := s.engagementRepo.ListSaved(ctx, userID, SavedPageSize, (page-1)*SavedPageSize)
	if err != nil {
		return nil, err
	}

	return &SavedPage{
		Saved:      saved,
		Page:       page,
		PageSize:   SavedPageSize,
		TotalSaved: total,
		TotalPages: totalPages,
	}, nil
}
