package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
)

const (
	maxTaxonomyNameLen = 50
	// TagListLimit caps the public tag listing to the most used tags.
	TagListLimit = 20
)

// TaxonomyService manages categories and tags.
type TaxonomyService struct {
	taxonomyRepo repository.TaxonomyRepository
}

// NewTaxonomyService creates a new taxonomy service.
func NewTaxonomyService(taxonomyRepo repository.TaxonomyRepository) *TaxonomyService {
	return &TaxonomyService{taxonomyRepo: taxonomyRepo}
}

// ListCategories returns all categories that have at least one published
// post, with live counts.
func (s *TaxonomyService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.taxonomyRepo.ListCategoriesWithCounts(ctx)
}

// CreateCategoryInput captures a new category.
type CreateCategoryInput struct {
	Name        string
	Description string
}

// CreateCategory validates and stores a category.
func (s *TaxonomyService) CreateCategory(ctx context.Context, in CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxTaxonomyNameLen {
		return nil, models.NewValidationError("Name too long (max 50 characters)")
	}

	category := &models.Category{Name: name, Description: strings.TrimSpace(in.Description)}
	if err := s.taxonomyRepo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes a category. Its posts are detached, not deleted.
func (s *TaxonomyService) DeleteCategory(ctx context.Context, id uint) error {
	return s.taxonomyRepo.DeleteCategory(ctx, id)
}

// ListTags returns the most used tags with live counts.
func (s *TaxonomyService) ListTags(ctx context.Context) ([]*models.Tag, error) {
	return s.taxonomyRepo.ListTagsWithCounts(ctx, TagListLimit)
}

// CreateTag validates and stores a tag.
func (s *TaxonomyService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxTaxonomyNameLen {
		return nil, models.NewValidationError("Name too long (max 50 characters)")
	}

	tag := &models.Tag{Name: name}
	if err := s.taxonomyRepo.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and its post associations.
func (s *TaxonomyService) DeleteTag(ctx context.Context, id uint) error {
	return s.taxonomyRepo.DeleteTag(ctx, id)
}
