package server

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper.  Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

const (
	// sessionCookie carries the anonymous session token used to key likes.
	sessionCookie       = "ink_session"
	sessionTokenHeader  = "X-Session-Token"
	sessionCookieMaxAge = 365 * 24 * time.Hour
)

// parsePage extracts the page query parameter, defaulting to 1. The
// service layer clamps it to the valid range.
func parsePage(c *fiber.Ctx) int {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return page
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "commentId" -> "comment ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		words := splitCamel(prefix)
		return strings.ToLower(strings.Join(words, " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// sessionToken returns the caller's anonymous session token. It prefers
// the X-Session-Token header, falls back to the session cookie, and mints
// a fresh token (set as a cookie on the response) when neither is present.
func (s *Server) sessionToken(c *fiber.Ctx) string {
	if token := c.Get(sessionTokenHeader); token != "" {
		return token
	}
	if token := c.Cookies(sessionCookie); token != "" {
		return token
	}

	token := uuid.New().String()
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Expires:  time.Now().Add(sessionCookieMaxAge),
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return token
}

// viewer assembles the request's identity for computed post fields.
func (s *Server) viewer(c *fiber.Ctx) repository.Viewer {
	v := repository.Viewer{SessionToken: s.sessionToken(c)}
	if userID, ok := s.optionalUserID(c); ok {
		v.UserID = userID
		if staff, err := s.isStaffByUserID(c.Context(), userID); err == nil {
			v.Staff = staff
		}
	}
	return v
}

func (s *Server) isStaffByUserID(ctx context.Context, userID uint) (bool, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Select("is_staff").First(&user, userID).Error; err != nil {
		return false, err
	}
	return user.IsStaff, nil
}
