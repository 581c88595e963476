package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
//
// Query parameters: page, page_size, search, category, tag,
// date (today|week|month), featured (true|false).
func (s *Server) GetPosts(c *fiber.Ctx) error {
	in := service.ListPostsInput{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Date:     c.Query("date"),
		Page:     parsePage(c),
		PageSize: c.QueryInt("page_size", 0),
	}
	if raw := c.Query("featured"); raw != "" {
		featured := raw == "true" || raw == "1"
		in.Featured = &featured
	}

	page, err := s.postService.ListPublished(c.Context(), in, s.viewer(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetPost handles GET /api/posts/:slug
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetBySlug(c.Context(), c.Params("slug"), s.viewer(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// GetRelatedPosts handles GET /api/posts/:slug/related
func (s *Server) GetRelatedPosts(c *fiber.Ctx) error {
	post, err := s.postRepo.GetBySlug(c.Context(), c.Params("slug"), true, s.viewer(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	related, err := s.postService.Related(c.Context(), post)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(related)
}

// GetDashboardPosts handles GET /api/dashboard/posts
//
// Query parameters: page, status (published|draft), search.
func (s *Server) GetDashboardPosts(c *fiber.Ctx) error {
	page, err := s.postService.ListAdmin(c.Context(), service.AdminListInput{
		Status: c.Query("status"),
		Search: c.Query("search"),
		Page:   parsePage(c),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

type postRequest struct {
	Title         string   `json:"title"`
	Content       string   `json:"content"`
	CoverImageURL string   `json:"cover_image_url"`
	CategoryID    *uint    `json:"category_id"`
	Tags          []string `json:"tags"`
	IsPublished   bool     `json:"is_published"`
	IsFeatured    bool     `json:"is_featured"`
}

// CreatePost handles POST /api/dashboard/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), service.CreatePostInput{
		AuthorID:      userID,
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		CategoryID:    req.CategoryID,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PUT /api/dashboard/posts/:id
//
// Absent fields are left unchanged; category_id explicitly set to null
// clears the category.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title         *string   `json:"title"`
		Content       *string   `json:"content"`
		CoverImageURL *string   `json:"cover_image_url"`
		CategoryID    *uint     `json:"category_id"`
		ClearCategory bool      `json:"clear_category"`
		Tags          *[]string `json:"tags"`
		IsPublished   *bool     `json:"is_published"`
		IsFeatured    *bool     `json:"is_featured"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, updateErr := s.postService.Update(c.Context(), service.UpdatePostInput{
		UserID:        userID,
		PostID:        postID,
		Title:         req.Title,
		Content:       req.Content,
		CoverImageURL: req.CoverImageURL,
		CategoryID:    req.CategoryID,
		ClearCategory: req.ClearCategory,
		Tags:          req.Tags,
		IsPublished:   req.IsPublished,
		IsFeatured:    req.IsFeatured,
	})
	if updateErr != nil {
		return models.RespondWithAppError(c, updateErr)
	}
	return c.JSON(post)
}

// DeletePost handles DELETE /api/dashboard/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.Context(), userID, postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
