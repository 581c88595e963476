package repository

import (
	"context"
	"errors"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines interface for comment operations
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	GetByID(ctx context.Context, id uint) (*models.Comment, error)
	ListByPost(ctx context.Context, postID uint, approvedOnly bool) ([]*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
	CountApproved(ctx context.Context, postID uint) (int64, error)
	CountAll(ctx context.Context, postID uint) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a new CommentRepository
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Create(comment).Error
	if err == nil {
		r.invalidatePost(ctx, comment.PostID)
	}
	return err
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := readDB(r.db).WithContext(ctx).First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListByPost(ctx context.Context, postID uint, approvedOnly bool) ([]*models.Comment, error) {
	var comments []*models.Comment
	q := readDB(r.db).WithContext(ctx).Where("post_id = ?", postID)
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	err := q.Order("created_at DESC").Find(&comments).Error
	return comments, err
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	err := r.db.WithContext(ctx).Save(comment).Error
	if err == nil {
		r.invalidatePost(ctx, comment.PostID)
	}
	return err
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Select("id", "post_id").First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", id)
		}
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Comment{}, id).Error; err != nil {
		return err
	}
	r.invalidatePost(ctx, comment.PostID)
	return nil
}

func (r *commentRepository) CountApproved(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ? AND is_approved = ?", postID, true).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) CountAll(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).
		Model(&models.Comment{}).
		Where("post_id = ?", postID).
		Count(&count).Error
	return count, err
}

func (r *commentRepository) invalidatePost(ctx context.Context, postID uint) {
	var slug string
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", postID).Pluck("slug", &slug).Error; err != nil || slug == "" {
		return
	}
	cache.InvalidatePost(ctx, slug)
	cache.InvalidateStats(ctx)
}
