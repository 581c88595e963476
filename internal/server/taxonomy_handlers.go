package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetCategories handles GET /api/categories. Only categories with at
// least one published post appear, with live counts.
func (s *Server) GetCategories(c *fiber.Ctx) error {
	categories, err := s.taxonomyService.ListCategories(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if categories == nil {
		categories = []*models.Category{}
	}
	return c.JSON(categories)
}

// GetTags handles GET /api/tags
func (s *Server) GetTags(c *fiber.Ctx) error {
	tags, err := s.taxonomyService.ListTags(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	if tags == nil {
		tags = []*models.Tag{}
	}
	return c.JSON(tags)
}

// CreateCategory handles POST /api/dashboard/categories
func (s *Server) CreateCategory(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	category, err := s.taxonomyService.CreateCategory(c.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

// DeleteCategory handles DELETE /api/dashboard/categories/:id
func (s *Server) DeleteCategory(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteCategory(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateTag handles POST /api/dashboard/tags
func (s *Server) CreateTag(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	tag, err := s.taxonomyService.CreateTag(c.Context(), req.Name)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tag)
}

// DeleteTag handles DELETE /api/dashboard/tags/:id
func (s *Server) DeleteTag(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.taxonomyService.DeleteTag(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
