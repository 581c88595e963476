package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// ToggleLike handles POST /api/posts/:slug/like. Likes are anonymous,
// keyed by session token; calling again removes the like.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	result, err := s.engagementService.ToggleLike(c.Context(), c.Params("slug"), s.sessionToken(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}

// ToggleSave handles POST /api/posts/:slug/save
func (s *Server) ToggleSave(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	result, err := s.engagementService.ToggleSave(c.Context(), c.Params("slug"), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(result)
}

// GetSavedPosts handles GET /api/me/saved
func (s *Server) GetSavedPosts(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	page, err := s.engagementService.ListSaved(c.Context(), userID, parsePage(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}
