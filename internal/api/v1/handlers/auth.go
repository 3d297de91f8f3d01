package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"todo-calendar/internal/config"
	"todo-calendar/internal/models"
	"todo-calendar/internal/repository"
	"todo-calendar/pkg/logger"
)

const (
	msgDuplicateUsername = "A user with that username already exists."
	msgDuplicateEmail    = "A user with this email already exist"
	msgBadCredentials    = "No active account found with the given credentials"
)

// trimAll memotong spasi di semua string yang tidak nil.
func trimAll(fields ...*string) {
	for _, f := range fields {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}

// Register membuat user baru. Email disimpan lowercase dan password di-hash.
func Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Username *string `json:"username" validate:"required,notblank,max=150,username"`
		Email    *string `json:"email" validate:"required,notblank,max=254,email"`
		Password *string `json:"password" validate:"required,notblank"`
	}

	var req RegisterRequest
	if err := parseBody(c, &req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return bodyError(c, err)
	}
	trimAll(req.Username, req.Email)

	ctx := c.UserContext()
	errs := validateFields(req)
	if ferr, ok := errs["non_field_errors"]; ok {
		return fieldError(c, ferr.Field, ferr.Message)
	}

	// Tiap field dicek format lalu unik sebelum pindah ke field berikutnya
	if ferr, ok := errs["username"]; ok {
		logger.AuditLogger.Warn("Validation error during register", zap.String("field", ferr.Field))
		return fieldError(c, ferr.Field, ferr.Message)
	}
	username := *req.Username
	exists, err := config.Users.UsernameExists(ctx, username)
	if err != nil {
		logger.ErrorLogger.Error("Error checking username", zap.Error(err))
		return serverError(c)
	}
	if exists {
		logger.SecurityLogger.Warn("Duplicate username", zap.String("username", username))
		return fieldError(c, "username", msgDuplicateUsername)
	}

	if ferr, ok := errs["email"]; ok {
		logger.AuditLogger.Warn("Validation error during register", zap.String("field", ferr.Field))
		return fieldError(c, ferr.Field, ferr.Message)
	}
	email := strings.ToLower(*req.Email)
	exists, err = config.Users.EmailExists(ctx, email)
	if err != nil {
		logger.ErrorLogger.Error("Error checking email", zap.Error(err))
		return serverError(c)
	}
	if exists {
		logger.SecurityLogger.Warn("Duplicate email", zap.String("username", username))
		return fieldError(c, "email", msgDuplicateEmail)
	}

	if ferr, ok := errs["password"]; ok {
		logger.AuditLogger.Warn("Validation error during register", zap.String("field", ferr.Field))
		return fieldError(c, ferr.Field, ferr.Message)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), config.BcryptCost)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return serverError(c)
	}

	user := models.User{Username: username, Email: email, PasswordHash: string(hashedPassword)}
	if err := config.Users.Create(ctx, &user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return fieldError(c, "username", msgDuplicateUsername)
		case errors.Is(err, repository.ErrDuplicateEmail):
			return fieldError(c, "email", msgDuplicateEmail)
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return serverError(c)
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login menukar username dan password dengan pasangan access/refresh token.
func Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Username *string `json:"username" validate:"required,notblank"`
		Password *string `json:"password" validate:"required,notblank"`
	}

	var req LoginRequest
	if err := parseBody(c, &req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return bodyError(c, err)
	}
	trimAll(req.Username)

	if ferr := validateRequest(req); ferr != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.String("field", ferr.Field))
		return fieldError(c, ferr.Field, ferr.Message)
	}

	user, err := config.Users.GetByUsername(c.UserContext(), *req.Username)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			logger.ErrorLogger.Error("Error loading user", zap.Error(err))
			return serverError(c)
		}
		logger.SecurityLogger.Warn("User not found", zap.String("username", *req.Username))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": msgBadCredentials})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(*req.Password)); err != nil {
		logger.SecurityLogger.Warn("Invalid password", zap.String("username", user.Username))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": msgBadCredentials})
	}

	pair, err := config.Tokens.IssuePair(user.ID)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return serverError(c)
	}

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID))
	return c.JSON(pair)
}

// RefreshToken mengembalikan access token baru dari refresh token.
func RefreshToken(c *fiber.Ctx) error {
	type RefreshRequest struct {
		Refresh *string `json:"refresh" validate:"required,notblank"`
	}

	var req RefreshRequest
	if err := parseBody(c, &req); err != nil {
		return bodyError(c, err)
	}
	if ferr := validateRequest(req); ferr != nil {
		return fieldError(c, ferr.Field, ferr.Message)
	}

	access, err := config.Tokens.Refresh(*req.Refresh)
	if err != nil {
		logger.SecurityLogger.Warn("Refresh rejected", zap.Error(err))
		return tokenNotValid(c)
	}
	return c.JSON(fiber.Map{"access": access})
}

// VerifyToken menjawab 200 dengan body kosong jika token valid.
func VerifyToken(c *fiber.Ctx) error {
	type VerifyRequest struct {
		Token *string `json:"token" validate:"required,notblank"`
	}

	var req VerifyRequest
	if err := parseBody(c, &req); err != nil {
		return bodyError(c, err)
	}
	if ferr := validateRequest(req); ferr != nil {
		return fieldError(c, ferr.Field, ferr.Message)
	}

	if _, err := config.Tokens.Verify(*req.Token); err != nil {
		logger.SecurityLogger.Warn("Verify rejected", zap.Error(err))
		return tokenNotValid(c)
	}
	return c.JSON(fiber.Map{})
}
