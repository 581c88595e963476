package service

import (
	"context"
	"fmt"
	"strings"

	"inkwell/internal/mailer"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

const (
	maxContactNameLen = 100
	// InboxPageSize is the page size for the staff contact inbox.
	InboxPageSize = 20
)

// ContactService handles contact form submissions and the staff inbox.
type ContactService struct {
	contactRepo repository.ContactRepository
	mailer      mailer.Mailer
	// notifyAddr receives a copy of each submission. Empty disables
	// notification entirely.
	notifyAddr string
}

// NewContactService creates a new contact service.
func NewContactService(contactRepo repository.ContactRepository, m mailer.Mailer, notifyAddr string) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
		mailer:      m,
		notifyAddr:  notifyAddr,
	}
}

// SubmitContactInput captures a public contact form submission.
type SubmitContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit validates and stores a contact message, then sends a
// notification email. The email is best effort: a send failure is logged
// and counted but never surfaces to the submitter, whose message is
// already safely stored.
func (s *ContactService) Submit(ctx context.Context, in SubmitContactInput) (*models.ContactMessage, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, models.NewValidationError("Name is required")
	}
	if len(name) > maxContactNameLen {
		return nil, models.NewValidationError("Name too long (max 100 characters)")
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateContactMessage(in.Subject, in.Message); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	message := &models.ContactMessage{
		Name:    name,
		Email:   strings.TrimSpace(in.Email),
		Subject: strings.TrimSpace(in.Subject),
		Message: strings.TrimSpace(in.Message),
	}
	if err := s.contactRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	observability.ContactMessagesReceived.Inc()

	if s.notifyAddr != "" {
		body := fmt.Sprintf("From: %s <%s>\n\n%s", message.Name, message.Email, message.Message)
		if err := s.mailer.Send(s.notifyAddr, "[Inkwell contact] "+message.Subject, body); err != nil {
			observability.EmailSendFailures.Inc()
			observability.GlobalLogger.Warn("contact notification email failed",
				"message_id", message.ID,
				"error", err.Error(),
			)
		}
	}

	return message, nil
}

// InboxPage is one page of the staff contact inbox.
type InboxPage struct {
	Messages   []*models.ContactMessage `json:"messages"`
	Page       int                      `json:"page"`
	PageSize   int                      `json:"page_size"`
	Total      int64                    `json:"total"`
	TotalPages int                      `json:"total_pages"`
}

// Inbox returns one page of contact messages, newest first.
func (s *ContactService) Inbox(ctx context.Context, page int) (*InboxPage, error) {
	total, err := s.contactRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	totalPages := pageCount(total, InboxPageSize)
	page = clampPage(page, totalPages)

	messages, err := s.contactRepo.List(ctx, InboxPageSize, (page-1)*InboxPageSize)
	if err != nil {
		return nil, err
	}

	return &InboxPage{
		Messages:   messages,
		Page:       page,
		PageSize:   InboxPageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// MarkRead flags an inbox message as handled.
func (s *ContactService) MarkRead(ctx context.Context, id uint) error {
	return s.contactRepo.MarkRead(ctx, id)
}
