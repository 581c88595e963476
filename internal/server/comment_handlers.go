package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetComments handles GET /api/posts/:slug/comments. Staff see hidden
// comments too.
func (s *Server) GetComments(c *fiber.Ctx) error {
	staff := false
	if userID, ok := s.optionalUserID(c); ok {
		if isStaff, err := s.isStaffByUserID(c.Context(), userID); err == nil {
			staff = isStaff
		}
	}

	comments, err := s.commentService.ListForPost(c.Context(), c.Params("slug"), staff)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(comments)
}

// CreateComment handles POST /api/posts/:slug/comments. No account is
// required; commenters identify themselves with a name and email.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		Body  string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, err := s.commentService.Create(c.Context(), service.CreateCommentInput{
		PostSlug:      c.Params("slug"),
		Name:          req.Name,
		Email:         req.Email,
		Body:          req.Body,
		HoldForReview: s.flags.Enabled("comment_hold", 0),
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// SetCommentApproval handles PUT /api/dashboard/comments/:id/approval
func (s *Server) SetCommentApproval(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Approved bool `json:"approved"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	comment, setErr := s.commentService.SetApproval(c.Context(), commentID, req.Approved)
	if setErr != nil {
		return models.RespondWithAppError(c, setErr)
	}
	return c.JSON(comment)
}

// DeleteComment handles DELETE /api/dashboard/comments/:id
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.commentService.Delete(c.Context(), commentID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
