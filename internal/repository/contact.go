package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ContactRepository is the staff inbox for contact form submissions.
type ContactRepository interface {
	Create(ctx context.Context, message *models.ContactMessage) error
	List(ctx context.Context, limit, offset int) ([]*models.ContactMessage, error)
	Count(ctx context.Context) (int64, error)
	MarkRead(ctx context.Context, id uint) error
}

type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, message *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *contactRepository) List(ctx context.Context, limit, offset int) ([]*models.ContactMessage, error) {
	var messages []*models.ContactMessage
	err := readDB(r.db).WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	return messages, err
}

func (r *contactRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := readDB(r.db).WithContext(ctx).Model(&models.ContactMessage{}).Count(&count).Error
	return count, err
}

func (r *contactRepository) MarkRead(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("ContactMessage", id)
	}
	return nil
}
