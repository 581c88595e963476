package repository

import (
	"context"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"gorm.io/gorm"
)

// PageRepository resolves the singleton About and Contact page records.
// Reads are lookup-or-create on the well-known key, so a fresh database
// serves defaults without any seeding step.
type PageRepository interface {
	GetAboutPage(ctx context.Context) (*models.AboutPage, error)
	UpdateAboutPage(ctx context.Context, page *models.AboutPage) error
	GetContactPage(ctx context.Context) (*models.ContactPage, error)
	UpdateContactPage(ctx context.Context, page *models.ContactPage) error
}

type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new PageRepository.
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) GetAboutPage(ctx context.Context) (*models.AboutPage, error) {
	var page models.AboutPage
	err := cache.Aside(ctx, cache.AboutPageKey, &page, cache.PageTTL, func() error {
		return r.db.WithContext(ctx).
			Where(models.AboutPage{Key: models.AboutPageKey}).
			FirstOrCreate(&page).Error
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) UpdateAboutPage(ctx context.Context, page *models.AboutPage) error {
	current, err := r.GetAboutPage(ctx)
	if err != nil {
		return err
	}
	page.ID = current.ID
	page.Key = models.AboutPageKey
	if err := r.db.WithContext(ctx).Save(page).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.AboutPageKey)
	return nil
}

func (r *pageRepository) GetContactPage(ctx context.Context) (*models.ContactPage, error) {
	var page models.ContactPage
	err := cache.Aside(ctx, cache.ContactPageKey, &page, cache.PageTTL, func() error {
		return r.db.WithContext(ctx).
			Where(models.ContactPage{Key: models.ContactPageKey}).
			FirstOrCreate(&page).Error
	})
	if err != nil {
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) UpdateContactPage(ctx context.Context, page *models.ContactPage) error {
	current, err := r.GetContactPage(ctx)
	if err != nil {
		return err
	}
	page.ID = current.ID
	page.Key = models.ContactPageKey
	if err := r.db.WithContext(ctx).Save(page).Error; err != nil {
		return err
	}
	cache.Invalidate(ctx, cache.ContactPageKey)
	return nil
}
