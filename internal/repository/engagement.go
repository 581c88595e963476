package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EngagementRepository persists likes and saved posts. Both are
// existence-only rows: created, hard-deleted, never updated.
type EngagementRepository interface {
	IsLiked(ctx context.Context, postID uint, sessionToken string) (bool, error)
	Like(ctx context.Context, postID uint, sessionToken string) error
	Unlike(ctx context.Context, postID uint, sessionToken string) error
	CountLikes(ctx context.Context, postID uint) (int64, error)

	IsSaved(ctx context.Context, userID, postID uint) (bool, error)
	Save(ctx context.Context, userID, postID uint) error
	Unsave(ctx context.Context, userID, postID uint) error
	ListSaved(ctx context.Context, userID uint, limit, offset int) ([]*models.SavedPost, error)
	CountSaved(ctx context.Context, userID uint) (int64, error)
}

type engagementRepository struct {
	db *gorm.DB
}

// NewEngagementRepository creates a new EngagementRepository.
func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

func (r *engagementRepository) IsLiked(ctx context.Context, postID uint, sessionToken string) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ? AND session_token = ?", postID, sessionToken).
		Count(&count).Error
	return count > 0, err
}

// Like inserts the row if absent. ON CONFLICT DO NOTHING makes concurrent
// double-taps idempotent instead of erroring on the unique index.
func (r *engagementRepository) Like(ctx context.Context, postID uint, sessionToken string) error {
	like := models.Like{PostID: postID, SessionToken: sessionToken}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
	if err == nil {
		r.invalidatePost(ctx, postID)
	}
	return err
}

func (r *engagementRepository) Unlike(ctx context.Context, postID uint, sessionToken string) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND session_token = ?", postID, sessionToken).
		Delete(&models.Like{}).Error
	if err == nil {
		r.invalidatePost(ctx, postID)
	}
	return err
}

func (r *engagementRepository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Like{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *engagementRepository) IsSaved(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) Save(ctx context.Context, userID, postID uint) error {
	saved := models.SavedPost{UserID: userID, PostID: postID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&saved).Error
}

func (r *engagementRepository) Unsave(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.SavedPost{}).Error
}

func (r *engagementRepository) ListSaved(ctx context.Context, userID uint, limit, offset int) ([]*models.SavedPost, error) {
	var saved []*models.SavedPost
	err := readDB(r.db).WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Preload("Post.Category").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&saved).Error
	return saved, err
}

func (r *engagementRepository) CountSaved(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.SavedPost{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}

// invalidatePost drops the cached detail after an engagement write; the
// like count is baked into the cached row.
func (r *engagementRepository) invalidatePost(ctx context.Context, postID uint) {
	var slug string
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Pluck("slug", &slug).Error; err != nil || slug == "" {
		return
	}
	cache.InvalidatePost(ctx, slug)
	cache.InvalidateStats(ctx)
}
