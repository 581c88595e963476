package server

import (
	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetAboutPage handles GET /api/pages/about
func (s *Server) GetAboutPage(c *fiber.Ctx) error {
	page, err := s.pageService.About(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// UpdateAboutPage handles PUT /api/dashboard/pages/about
func (s *Server) UpdateAboutPage(c *fiber.Ctx) error {
	var req struct {
		Title        string   `json:"title"`
		Subtitle     string   `json:"subtitle"`
		Name         string   `json:"name"`
		Bio          string   `json:"bio"`
		ProfileImage string   `json:"profile_image"`
		Topics       []string `json:"topics"`
		GitHubURL    string   `json:"github_url"`
		LinkedInURL  string   `json:"linkedin_url"`
		TwitterURL   string   `json:"twitter_url"`
		Email        string   `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	page, err := s.pageService.UpdateAbout(c.Context(), service.UpdateAboutInput{
		Title:        req.Title,
		Subtitle:     req.Subtitle,
		Name:         req.Name,
		Bio:          req.Bio,
		ProfileImage: req.ProfileImage,
		Topics:       req.Topics,
		GitHubURL:    req.GitHubURL,
		LinkedInURL:  req.LinkedInURL,
		TwitterURL:   req.TwitterURL,
		Email:        req.Email,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// GetContactPage handles GET /api/pages/contact
func (s *Server) GetContactPage(c *fiber.Ctx) error {
	page, err := s.pageService.Contact(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}

// UpdateContactPage handles PUT /api/dashboard/pages/contact
func (s *Server) UpdateContactPage(c *fiber.Ctx) error {
	var req struct {
		Title         string `json:"title"`
		Subtitle      string `json:"subtitle"`
		EmailLabel    string `json:"email_label"`
		EmailValue    string `json:"email_value"`
		GitHubLabel   string `json:"github_label"`
		GitHubURL     string `json:"github_url"`
		GitHubValue   string `json:"github_value"`
		LinkedInLabel string `json:"linkedin_label"`
		LinkedInURL   string `json:"linkedin_url"`
		LinkedInValue string `json:"linkedin_value"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	page, err := s.pageService.UpdateContact(c.Context(), service.UpdateContactInput{
		Title:         req.Title,
		Subtitle:      req.Subtitle,
		EmailLabel:    req.EmailLabel,
		EmailValue:    req.EmailValue,
		GitHubLabel:   req.GitHubLabel,
		GitHubURL:     req.GitHubURL,
		GitHubValue:   req.GitHubValue,
		LinkedInLabel: req.LinkedInLabel,
		LinkedInURL:   req.LinkedInURL,
		LinkedInValue: req.LinkedInValue,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(page)
}
