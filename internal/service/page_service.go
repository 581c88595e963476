package service

import (
	"context"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// PageService serves and edits the About and Contact singleton pages.
type PageService struct {
	pageRepo repository.PageRepository
}

// NewPageService creates a new page service.
func NewPageService(pageRepo repository.PageRepository) *PageService {
	return &PageService{pageRepo: pageRepo}
}

// AboutView is the About page with its topics split into a list. The
// stored record keeps them newline separated.
type AboutView struct {
	models.AboutPage
	Topics []string `json:"topics"`
}

// About returns the About page, creating the default record on first
// access.
func (s *PageService) About(ctx context.Context) (*AboutView, error) {
	page, err := s.pageRepo.GetAboutPage(ctx)
	if err != nil {
		return nil, err
	}
	return &AboutView{AboutPage: *page, Topics: splitTopics(page.Topics)}, nil
}

// UpdateAboutInput captures an About page edit. All fields are replaced
// wholesale; the dashboard form always posts the full page.
type UpdateAboutInput struct {
	Title        string
	Subtitle     string
	Name         string
	Bio          string
	ProfileImage string
	Topics       []string
	GitHubURL    string
	LinkedInURL  string
	TwitterURL   string
	Email        string
}

// UpdateAbout replaces the About page content.
func (s *PageService) UpdateAbout(ctx context.Context, in UpdateAboutInput) (*AboutView, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.Email != "" {
		if err := validateOptionalEmail(in.Email); err != nil {
			return nil, err
		}
	}

	page := &models.AboutPage{
		Title:        strings.TrimSpace(in.Title),
		Subtitle:     in.Subtitle,
		Name:         in.Name,
		Bio:          in.Bio,
		ProfileImage: in.ProfileImage,
		Topics:       joinTopics(in.Topics),
		GitHubURL:    in.GitHubURL,
		LinkedInURL:  in.LinkedInURL,
		TwitterURL:   in.TwitterURL,
		Email:        strings.TrimSpace(in.Email),
	}
	if err := s.pageRepo.UpdateAboutPage(ctx, page); err != nil {
		return nil, err
	}
	return &AboutView{AboutPage: *page, Topics: splitTopics(page.Topics)}, nil
}

// Contact returns the Contact page, creating the default record on
// first access.
func (s *PageService) Contact(ctx context.Context) (*models.ContactPage, error) {
	return s.pageRepo.GetContactPage(ctx)
}

// UpdateContactInput captures a Contact page edit.
type UpdateContactInput struct {
	Title         string
	Subtitle      string
	EmailLabel    string
	EmailValue    string
	GitHubLabel   string
	GitHubURL     string
	GitHubValue   string
	LinkedInLabel string
	LinkedInURL   string
	LinkedInValue string
}

// UpdateContact replaces the Contact page content.
func (s *PageService) UpdateContact(ctx context.Context, in UpdateContactInput) (*models.ContactPage, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if in.EmailValue != "" {
		if err := validateOptionalEmail(in.EmailValue); err != nil {
			return nil, err
		}
	}

	page := &models.ContactPage{
		Title:         strings.TrimSpace(in.Title),
		Subtitle:      in.Subtitle,
		EmailLabel:    in.EmailLabel,
		EmailValue:    strings.TrimSpace(in.EmailValue),
		GitHubLabel:   in.GitHubLabel,
		GitHubURL:     in.GitHubURL,
		GitHubValue:   in.GitHubValue,
		LinkedInLabel: in.LinkedInLabel,
		LinkedInURL:   in.LinkedInURL,
		LinkedInValue: in.LinkedInValue,
	}
	if err := s.pageRepo.UpdateContactPage(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

func validateOptionalEmail(email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return models.NewValidationError(err.Error())
	}
	return nil
}

func splitTopics(raw string) []string {
	topics := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			topics = append(topics, t)
		}
	}
	return topics
}

func joinTopics(topics []string) string {
	clean := make([]string, 0, len(topics))
	for _, t := range topics {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, "\n")
}
