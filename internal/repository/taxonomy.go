package repository

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// TaxonomyRepository manages categories and tags. Listing methods compute
// live post counts over published posts only and exclude empty entries.
type TaxonomyRepository interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	GetCategoryBySlug(ctx context.Context, slugVal string) (*models.Category, error)
	ListCategoriesWithCounts(ctx context.Context) ([]*models.Category, error)
	DeleteCategory(ctx context.Context, id uint) error

	CreateTag(ctx context.Context, tag *models.Tag) error
	GetTagBySlug(ctx context.Context, slugVal string) (*models.Tag, error)
	// FindOrCreateTags resolves tag names to rows, creating missing ones.
	FindOrCreateTags(ctx context.Context, names []string) ([]models.Tag, error)
	ListTagsWithCounts(ctx context.Context, limit int) ([]*models.Tag, error)
	DeleteTag(ctx context.Context, id uint) error
}

type taxonomyRepository struct {
	db *gorm.DB
}

// NewTaxonomyRepository creates a new TaxonomyRepository.
func NewTaxonomyRepository(db *gorm.DB) TaxonomyRepository {
	return &taxonomyRepository{db: db}
}

// slugBase slugifies name, falling back when the name has no sluggable
// characters at all.
func slugBase(name, fallback string) string {
	base := slug.Make(name)
	if base == "" {
		base = fallback
	}
	return base
}

// freeSlug returns base, or base-N for the first free N, for the given
// model's slug column. Distinct names that slugify identically get a
// numeric suffix instead of a unique violation.
func freeSlug(tx *gorm.DB, model any, base string) (string, error) {
	candidate := base
	for suffix := 1; ; suffix++ {
		var count int64
		if err := tx.Model(model).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, suffix)
	}
}

func (r *taxonomyRepository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if category.Slug == "" {
			free, slugErr := freeSlug(tx, &models.Category{}, slugBase(category.Name, "category"))
			if slugErr != nil {
				return slugErr
			}
			category.Slug = free
		}
		return tx.Create(category).Error
	})
	if err == nil {
		cache.InvalidateTaxonomy(ctx)
	}
	return err
}

func (r *taxonomyRepository) GetCategoryBySlug(ctx context.Context, slugVal string) (*models.Category, error) {
	var category models.Category
	if err := readDB(r.db).WithContext(ctx).Where("slug = ?", slugVal).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Category", slugVal)
		}
		return nil, err
	}
	return &category, nil
}

func (r *taxonomyRepository) ListCategoriesWithCounts(ctx context.Context) ([]*models.Category, error) {
	var categories []*models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.TaxonomyTTL, func() error {
		return readDB(r.db).WithContext(ctx).
			Model(&models.Category{}).
			Select("categories.*, COUNT(posts.id) as post_count").
			Joins("JOIN posts ON posts.category_id = categories.id AND posts.is_published = ?", true).
			Group("categories.id").
			Having("COUNT(posts.id) > 0").
			Order("categories.name ASC").
			Find(&categories).Error
	})
	return categories, err
}

func (r *taxonomyRepository) DeleteCategory(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Delete(&models.Category{}, id).Error
	if err == nil {
		cache.InvalidateTaxonomy(ctx)
		cache.InvalidatePostLists(ctx)
	}
	return err
}

func (r *taxonomyRepository) CreateTag(ctx context.Context, tag *models.Tag) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tag.Slug == "" {
			free, slugErr := freeSlug(tx, &models.Tag{}, slugBase(tag.Name, "tag"))
			if slugErr != nil {
				return slugErr
			}
			tag.Slug = free
		}
		return tx.Create(tag).Error
	})
	if err == nil {
		cache.InvalidateTaxonomy(ctx)
	}
	return err
}

func (r *taxonomyRepository) GetTagBySlug(ctx context.Context, slugVal string) (*models.Tag, error) {
	var tag models.Tag
	if err := readDB(r.db).WithContext(ctx).Where("slug = ?", slugVal).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Tag", slugVal)
		}
		return nil, err
	}
	return &tag, nil
}

func (r *taxonomyRepository) FindOrCreateTags(ctx context.Context, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := map[string]struct{}{}

	for _, name := range names {
		slugVal := slug.Make(name)
		if slugVal == "" {
			continue
		}
		if _, dup := seen[slugVal]; dup {
			continue
		}
		seen[slugVal] = struct{}{}

		var tag models.Tag
		err := r.db.WithContext(ctx).
			Where(models.Tag{Slug: slugVal}).
			Attrs(models.Tag{Name: name}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, fmt.Errorf("find or create tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}

	if len(tags) > 0 {
		cache.InvalidateTaxonomy(ctx)
	}
	return tags, nil
}

func (r *taxonomyRepository) ListTagsWithCounts(ctx context.Context, limit int) ([]*models.Tag, error) {
	if limit <= 0 {
		limit = 20
	}
	var tags []*models.Tag
	err := cache.Aside(ctx, cache.TagsKey, &tags, cache.TaxonomyTTL, func() error {
		return readDB(r.db).WithContext(ctx).
			Model(&models.Tag{}).
			Select("tags.*, COUNT(posts.id) as post_count").
			Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
			Joins("JOIN posts ON posts.id = post_tags.post_id AND posts.is_published = ?", true).
			Group("tags.id").
			Having("COUNT(posts.id) > 0").
			Order("post_count DESC, tags.name ASC").
			Limit(limit).
			Find(&tags).Error
	})
	return tags, err
}

func (r *taxonomyRepository) DeleteTag(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM post_tags WHERE tag_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tag{}, id).Error
	})
	if err == nil {
		cache.InvalidateTaxonomy(ctx)
		cache.InvalidatePostLists(ctx)
	}
	return err
}
