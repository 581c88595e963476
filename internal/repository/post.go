// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Viewer carries the identity context a read runs under. SessionToken
// resolves the Liked flag, UserID the Saved flag. Staff switches the
// comment count from approved-only to all comments.
type Viewer struct {
	SessionToken string
	UserID       uint
	Staff        bool
}

// PostFilter is parsed once at the HTTP boundary and passed down whole.
// Filters AND-compose; zero values mean "no filter".
type PostFilter struct {
	Search       string
	CategorySlug string
	TagSlug      string
	// DateRange is one of "", "today", "week", "month".
	DateRange string
	Featured  *bool
	Page      int
	PageSize  int
}

// AdminFilter drives the staff post listing, which sees drafts too.
type AdminFilter struct {
	// Status is one of "", "published", "draft".
	Status   string
	Search   string
	Page     int
	PageSize int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string, publishedOnly bool, viewer Viewer) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, viewer Viewer) ([]*models.Post, error)
	CountByFilter(ctx context.Context, filter PostFilter) (int64, error)
	ListAdmin(ctx context.Context, filter AdminFilter) ([]*models.Post, error)
	CountAdmin(ctx context.Context, filter AdminFilter) (int64, error)
	Related(ctx context.Context, post *models.Post, limit int) ([]*models.Post, error)
	Popular(ctx context.Context, limit int) ([]*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementViews(ctx context.Context, id uint) error
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
	// now is the clock used for relative date filters. Tests pin it.
	now func() time.Time
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db, now: time.Now}
}

func (r *postRepository) read(ctx context.Context) *gorm.DB {
	return readDB(r.db).WithContext(ctx)
}

// Create inserts the post with a slug derived from its title. Uniqueness
// collisions get an increasing numeric suffix; the insert retries inside
// the transaction when a concurrent writer claims the same slug.
func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		base := slugBase(post.Title, "post")

		candidate, err := freeSlug(tx, &models.Post{}, base)
		if err != nil {
			return err
		}
		post.Slug = candidate

		if err := tx.Create(post).Error; err != nil {
			if isUniqueViolation(err) {
				// Lost the race for the slug; pick the next free suffix.
				for suffix := 1; suffix <= 100; suffix++ {
					post.Slug = fmt.Sprintf("%s-%d", base, suffix)
					retryErr := tx.Create(post).Error
					if retryErr == nil {
						return nil
					}
					if !isUniqueViolation(retryErr) {
						return retryErr
					}
				}
				return fmt.Errorf("could not find a free slug for %q", base)
			}
			return err
		}
		return nil
	})
	if err == nil {
		cache.InvalidatePostLists(ctx)
		cache.InvalidateTaxonomy(ctx)
		cache.InvalidateStats(ctx)
	}
	return err
}

// isUniqueViolation reports whether err is a unique-constraint failure on
// either the postgres runtime driver or the sqlite test driver.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.read(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slugVal string, publishedOnly bool, viewer Viewer) (*models.Post, error) {
	var post models.Post

	fetch := func(v Viewer) func() error {
		return func() error {
			q := r.applyPostDetails(r.read(ctx), v).
				Preload("Author").
				Preload("Category").
				Preload("Tags").
				Where("posts.slug = ?", slugVal)
			if publishedOnly {
				q = q.Where("posts.is_published = ?", true)
			}
			if err := q.First(&post).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return models.NewNotFoundError("Post", slugVal)
				}
				return err
			}
			return nil
		}
	}

	if publishedOnly && viewer.UserID == 0 && !viewer.Staff {
		// Anonymous detail reads are the hot path worth caching. All
		// anonymous viewers share one cached copy; the liked flag is the
		// only session-dependent field, so it is resolved on the side.
		if err := cache.Aside(ctx, cache.PostKey(slugVal), &post, cache.PostTTL, fetch(Viewer{})); err != nil {
			return nil, err
		}
		if viewer.SessionToken != "" {
			var liked int64
			if err := r.read(ctx).Model(&models.Like{}).
				Where("post_id = ? AND session_token = ?", post.ID, viewer.SessionToken).
				Count(&liked).Error; err != nil {
				return nil, err
			}
			post.Liked = liked > 0
		}
		return &post, nil
	}

	if err := fetch(viewer)(); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, viewer Viewer) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyFilter(r.applyPostDetails(r.read(ctx), viewer), filter).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order("posts.created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize)
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountByFilter(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	q := r.applyFilter(r.read(ctx).Model(&models.Post{}), filter)
	if filter.Search != "" {
		q = q.Distinct("posts.id")
	}
	err := q.Count(&count).Error
	return count, err
}

// applyFilter AND-composes the public listing filters onto q. Published
// only; search spans title, content and tag names.
func (r *postRepository) applyFilter(q *gorm.DB, filter PostFilter) *gorm.DB {
	q = q.Where("posts.is_published = ?", true)

	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.
			Joins("LEFT JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("LEFT JOIN tags ON tags.id = post_tags.tag_id").
			Where("LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ? OR LOWER(tags.name) LIKE ?", like, like, like).
			Distinct()
	}

	if filter.CategorySlug != "" {
		q = q.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.slug = ?", filter.CategorySlug)
	}

	if filter.TagSlug != "" {
		q = q.Where("posts.id IN (SELECT post_id FROM post_tags JOIN tags t ON t.id = post_tags.tag_id WHERE t.slug = ?)", filter.TagSlug)
	}

	if filter.DateRange != "" {
		if since, ok := r.dateRangeStart(filter.DateRange); ok {
			q = q.Where("posts.created_at >= ?", since)
		}
	}

	if filter.Featured != nil {
		q = q.Where("posts.is_featured = ?", *filter.Featured)
	}

	return q
}

// dateRangeStart resolves a relative range name against the repository
// clock. Unknown names are ignored rather than erroring.
func (r *postRepository) dateRangeStart(name string) (time.Time, bool) {
	now := r.now()
	switch name {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.AddDate(0, 0, -7), true
	case "month":
		return now.AddDate(0, 0, -30), true
	default:
		return time.Time{}, false
	}
}

func (r *postRepository) ListAdmin(ctx context.Context, filter AdminFilter) ([]*models.Post, error) {
	var posts []*models.Post
	q := r.applyAdminFilter(r.applyPostDetails(r.read(ctx), Viewer{Staff: true}), filter).
		Preload("Author").
		Preload("Category").
		Preload("Tags").
		Order("posts.created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize)
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *postRepository) CountAdmin(ctx context.Context, filter AdminFilter) (int64, error) {
	var count int64
	err := r.applyAdminFilter(r.read(ctx).Model(&models.Post{}), filter).Count(&count).Error
	return count, err
}

func (r *postRepository) applyAdminFilter(q *gorm.DB, filter AdminFilter) *gorm.DB {
	switch filter.Status {
	case "published":
		q = q.Where("posts.is_published = ?", true)
	case "draft":
		q = q.Where("posts.is_published = ?", false)
	}
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		q = q.Where("LOWER(posts.title) LIKE ? OR LOWER(posts.content) LIKE ?", like, like)
	}
	return q
}

// Popular returns the most viewed published posts.
func (r *postRepository) Popular(ctx context.Context, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 5
	}
	var posts []*models.Post
	q := r.applyPostDetails(r.read(ctx), Viewer{Staff: true}).
		Where("posts.is_published = ?", true).
		Preload("Author").
		Preload("Category").
		Order("posts.view_count DESC, posts.created_at DESC").
		Limit(limit)
	if err := q.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Related returns up to limit published posts sharing the category or a
// tag with post, newest first, excluding the post itself.
func (r *postRepository) Related(ctx context.Context, post *models.Post, limit int) ([]*models.Post, error) {
	if limit <= 0 {
		limit = 3
	}

	q := r.read(ctx).Model(&models.Post{}).
		Where("posts.is_published = ?", true).
		Where("posts.id <> ?", post.ID)

	shared := "posts.id IN (SELECT post_id FROM post_tags WHERE tag_id IN (SELECT tag_id FROM post_tags WHERE post_id = ?))"
	if post.CategoryID != nil {
		q = q.Where("posts.category_id = ? OR "+shared, *post.CategoryID, post.ID)
	} else {
		q = q.Where(shared, post.ID)
	}

	var posts []*models.Post
	err := q.
		Preload("Author").
		Preload("Category").
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

// applyPostDetails adds subqueries to fetch counts and the viewer's liked
// and saved flags in a single query. Staff viewers see the count of all
// comments; everyone else sees approved only.
func (r *postRepository) applyPostDetails(db *gorm.DB, viewer Viewer) *gorm.DB {
	commentCount := "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.is_approved = true) as comment_count"
	if viewer.Staff {
		commentCount = "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comment_count"
	}

	selectQuery := "posts.*, " +
		commentCount + ", " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as like_count"

	args := []interface{}{}
	if viewer.SessionToken != "" {
		selectQuery += ", EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.session_token = ?) as liked"
		args = append(args, viewer.SessionToken)
	} else {
		selectQuery += ", false as liked"
	}
	if viewer.UserID != 0 {
		selectQuery += ", EXISTS(SELECT 1 FROM saved_posts WHERE saved_posts.post_id = posts.id AND saved_posts.user_id = ?) as saved"
		args = append(args, viewer.UserID)
	} else {
		selectQuery += ", false as saved"
	}

	return db.Select(selectQuery, args...)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(post).Association("Tags").Replace(post.Tags); err != nil {
			return err
		}
		return tx.Save(post).Error
	})
	if err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.Slug)
	cache.InvalidatePostLists(ctx)
	cache.InvalidateTaxonomy(ctx)
	cache.InvalidateStats(ctx)
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	var post models.Post
	if err := r.db.WithContext(ctx).Select("id", "slug").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", id)
		}
		return err
	}
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return err
	}
	cache.InvalidatePost(ctx, post.Slug)
	cache.InvalidatePostLists(ctx)
	cache.InvalidateTaxonomy(ctx)
	cache.InvalidateStats(ctx)
	return nil
}

// IncrementViews bumps the view counter as a single UPDATE expression so
// concurrent reads never lose increments.
func (r *postRepository) IncrementViews(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
}
