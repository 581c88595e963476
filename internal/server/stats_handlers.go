package server

import (
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/stats, the public site-wide counters.
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.statsService.Global(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// GetDashboard handles GET /api/dashboard
func (s *Server) GetDashboard(c *fiber.Ctx) error {
	overview, err := s.statsService.Dashboard(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(overview)
}
