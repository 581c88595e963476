package server

import (
	"fmt"
	"strconv"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenLifetime = 7 * 24 * time.Hour

// Register handles POST /api/auth/register. The signups_closed flag
// turns new account creation off without a redeploy.
func (s *Server) Register(c *fiber.Ctx) error {
	if s.flags.Enabled("signups_closed", 0) {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Registration is currently closed"))
	}

	var req struct {
		Username    string `json:"username"`
		Email       string `json:"email"`
		Password    string `json:"password"`
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}
	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	if _, err := s.userRepo.GetByEmail(c.Context(), req.Email); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("An account with this email already exists"))
	}
	if _, err := s.userRepo.GetByUsername(c.Context(), req.Username); err == nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("Username is taken"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashedPassword),
		DisplayName: req.DisplayName,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithAppError(c, createErr)
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		// Not-found and lookup failures both read as bad credentials so
		// login never confirms which emails exist.
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. The presented token's JTI goes on
// the Redis blacklist until it would have expired anyway.
func (s *Server) Logout(c *fiber.Ctx) error {
	if s.redis == nil {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	authHeader := c.Get("Authorization")
	tokenString := ""
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenString = authHeader[7:]
	}
	if tokenString == "" {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return c.JSON(fiber.Map{"message": "Logged out"})
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok {
		if jti, exists := claims["jti"].(string); exists && jti != "" {
			ttl := tokenLifetime
			if exp, expOk := claims["exp"].(float64); expOk {
				if remaining := time.Until(time.Unix(int64(exp), 0)); remaining > 0 {
					ttl = remaining
				}
			}
			s.redis.Set(c.Context(), "blacklist:"+jti, "1", ttl)
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// Refresh handles POST /api/auth/refresh. It exchanges a still-valid token
// for a fresh one so clients can stay signed in past the token lifetime.
func (s *Server) Refresh(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid or expired token"))
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// GetMyProfile handles GET /api/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetUserByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)

	var req struct {
		DisplayName string `json:"display_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID:      userID,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// generateToken creates a JWT token for the given user ID and username
func (s *Server) generateToken(userID uint, username string) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      strconv.FormatUint(uint64(userID), 10),
		"username": username,
		"iss":      "inkwell-api",
		"aud":      "inkwell-client",
		"exp":      now.Add(tokenLifetime).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
		"jti":      s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID so individual tokens can be revoked.
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
