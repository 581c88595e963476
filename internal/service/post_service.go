// Package service contains the business logic layer, sitting between
// HTTP handlers and repositories.
package service

import (
	"context"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

const (
	// PublicPageSize is the default page size for the public post listing.
	PublicPageSize = 9
	// MaxPageSize caps a caller-supplied page_size override.
	MaxPageSize = 100
	// AdminPageSize is the page size for the staff post listing.
	AdminPageSize = 15

	relatedPostsLimit = 3
	maxTitleLen       = 255
)

// PostService handles post business logic.
type PostService struct {
	postRepo     repository.PostRepository
	taxonomyRepo repository.TaxonomyRepository
	userRepo     repository.UserRepository
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository, taxonomyRepo repository.TaxonomyRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo:     postRepo,
		taxonomyRepo: taxonomyRepo,
		userRepo:     userRepo,
	}
}

// ListPostsInput captures the public listing filters.
type ListPostsInput struct {
	Search   string
	Category string
	Tag      string
	// Date is one of "", "today", "week", "month".
	Date     string
	Featured *bool
	Page     int
	// PageSize overrides the default page size when positive, capped at
	// MaxPageSize.
	PageSize int
}

// PostPage is one page of a post listing plus its pagination envelope.
type PostPage struct {
	Posts      []*models.Post `json:"posts"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPosts int64          `json:"total_posts"`
	TotalPages int            `json:"total_pages"`
}

// ListPublished returns one page of published posts. An out-of-range page
// is clamped to the nearest valid page rather than returning an error or
// an empty list.
func (s *PostService) ListPublished(ctx context.Context, in ListPostsInput, viewer repository.Viewer) (*PostPage, error) {
	switch in.Date {
	case "", "today", "week", "month":
	default:
		return nil, models.NewValidationError("Invalid date filter (use today, week or month)")
	}

	pageSize := in.PageSize
	if pageSize <= 0 {
		pageSize = PublicPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	filter := repository.PostFilter{
		Search:       strings.TrimSpace(in.Search),
		CategorySlug: in.Category,
		TagSlug:      in.Tag,
		DateRange:    in.Date,
		Featured:     in.Featured,
		PageSize:     pageSize,
	}

	total, err := s.postRepo.CountByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, filter.PageSize)
	filter.Page = clampPage(in.Page, totalPages)

	posts, err := s.postRepo.List(ctx, filter, viewer)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPosts: total,
		TotalPages: totalPages,
	}, nil
}

// GetBySlug fetches a single post. Staff can fetch drafts; everyone else
// only sees published posts. Each non-staff fetch counts as a view.
func (s *PostService) GetBySlug(ctx context.Context, slugVal string, viewer repository.Viewer) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, slugVal, !viewer.Staff, viewer)
	if err != nil {
		return nil, err
	}

	if !viewer.Staff {
		if err := s.postRepo.IncrementViews(ctx, post.ID); err != nil {
			return nil, err
		}
		post.ViewCount++
		observability.PostViews.Inc()
	}

	return post, nil
}

// Related returns posts sharing the category or a tag with post.
func (s *PostService) Related(ctx context.Context, post *models.Post) ([]*models.Post, error) {
	return s.postRepo.Related(ctx, post, relatedPostsLimit)
}

// CreatePostInput captures data needed to create a post.
type CreatePostInput struct {
	AuthorID      uint
	Title         string
	Content       string
	CoverImageURL string
	CategoryID    *uint
	Tags          []string
	IsPublished   bool
	IsFeatured    bool
}

// Create validates and persists a new post on behalf of a staff author.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	author, err := s.userRepo.GetByID(ctx, in.AuthorID)
	if err != nil {
		return nil, err
	}
	if !author.IsStaff {
		return nil, models.NewForbiddenError("Only staff can create posts")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 255 characters)")
	}
	if strings.TrimSpace(in.Content) == "" {
		return nil, models.NewValidationError("Content is required")
	}

	tags, err := s.taxonomyRepo.FindOrCreateTags(ctx, in.Tags)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:         title,
		Content:       in.Content,
		CoverImageURL: in.CoverImageURL,
		AuthorID:      in.AuthorID,
		CategoryID:    in.CategoryID,
		Tags:          tags,
		IsPublished:   in.IsPublished,
		IsFeatured:    in.IsFeatured,
	}
	if in.IsPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePostInput captures a partial post update. Nil fields are left
// unchanged.
type UpdatePostInput struct {
	UserID        uint
	PostID        uint
	Title         *string
	Content       *string
	CoverImageURL *string
	CategoryID    *uint
	ClearCategory bool
	Tags          *[]string
	IsPublished   *bool
	IsFeatured    *bool
}

// Update applies a partial edit. Only the author or a superuser may edit
// a post. PublishedAt is stamped the first time the post is published and
// survives later unpublish/republish cycles.
func (s *PostService) Update(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.authorizePostEdit(ctx, in.UserID, in.PostID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 255 characters)")
		}
		post.Title = title
	}
	if in.Content != nil {
		if strings.TrimSpace(*in.Content) == "" {
			return nil, models.NewValidationError("Content is required")
		}
		post.Content = *in.Content
	}
	if in.CoverImageURL != nil {
		post.CoverImageURL = *in.CoverImageURL
	}
	if in.ClearCategory {
		post.CategoryID = nil
		post.Category = nil
	} else if in.CategoryID != nil {
		post.CategoryID = in.CategoryID
	}
	if in.Tags != nil {
		tags, err := s.taxonomyRepo.FindOrCreateTags(ctx, *in.Tags)
		if err != nil {
			return nil, err
		}
		post.Tags = tags
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
		if *in.IsPublished && post.PublishedAt == nil {
			now := time.Now()
			post.PublishedAt = &now
		}
	}
	if in.IsFeatured != nil {
		post.IsFeatured = *in.IsFeatured
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// Delete removes a post. Only the author or a superuser may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	if _, err := s.authorizePostEdit(ctx, userID, postID); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

// AdminListInput captures the staff listing filters.
type AdminListInput struct {
	// Status is one of "", "published", "draft".
	Status string
	Search string
	Page   int
}

// ListAdmin returns one page of the staff listing, drafts included.
func (s *PostService) ListAdmin(ctx context.Context, in AdminListInput) (*PostPage, error) {
	switch in.Status {
	case "", "published", "draft":
	default:
		return nil, models.NewValidationError("Invalid status filter (use published or draft)")
	}

	filter := repository.AdminFilter{
		Status:   in.Status,
		Search:   strings.TrimSpace(in.Search),
		PageSize: AdminPageSize,
	}

	total, err := s.postRepo.CountAdmin(ctx, filter)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, filter.PageSize)
	filter.Page = clampPage(in.Page, totalPages)

	posts, err := s.postRepo.ListAdmin(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      posts,
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalPosts: total,
		TotalPages: totalPages,
	}, nil
}

// authorizePostEdit loads the post and enforces the author-or-superuser
// rule for mutations.
func (s *PostService) authorizePostEdit(ctx context.Context, userID, postID uint) (*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsStaff {
		return nil, models.NewForbiddenError("Only staff can manage posts")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != user.ID && !user.IsSuperuser {
		return nil, models.NewForbiddenError("You can only edit your own posts")
	}
	return post, nil
}

// pageCount never returns less than 1 so that an empty result set still
// has a valid page to land on.
func pageCount(total int64, pageSize int) int {
	if total <= 0 {
		return 1
	}
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		return 1
	}
	return pages
}

func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
