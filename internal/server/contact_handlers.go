package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// SubmitContact handles POST /api/contact
func (s *Server) SubmitContact(c *fiber.Ctx) error {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Subject string `json:"subject"`
		Message string `json:"message"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.contactService.Submit(c.Context(), service.SubmitContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetContactMessages handles GET /api/dashboard/messages
func (s *Server) GetContactMessages(c *fiber.Ctx) error {
	page, err := s.contactService.Inbox(c.Context(), parsePage(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// MarkContactMessageRead handles POST /api/dashboard/messages/:id/read
func (s *Server) MarkContactMessageRead(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.contactService.MarkRead(c.Context(), id); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Marked as read"})
}
