package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"todo-calendar/internal/auth"
	"todo-calendar/internal/config"
	"todo-calendar/internal/repository"
	"todo-calendar/pkg/logger"
)

// LocalUserID adalah key c.Locals untuk id principal request ini.
const LocalUserID = "userID"

func unauthorized(c *fiber.Ctx, detail, code string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"detail": detail, "code": code})
}

// UseToken mewajibkan header "Authorization: Bearer <access token>".
// Header kosong atau skema selain Bearer dianggap tanpa kredensial.
func UseToken(c *fiber.Ctx) error {
	parts := strings.Fields(c.Get(fiber.HeaderAuthorization))
	if len(parts) == 0 || parts[0] != "Bearer" {
		return unauthorized(c, "Authentication credentials were not provided.", "not_authenticated")
	}
	if len(parts) != 2 {
		logger.SecurityLogger.Warn("Malformed authorization header", zap.String("ip", c.IP()))
		return unauthorized(c, "Authorization header must contain two space-delimited values", "bad_authorization_header")
	}
	return authenticate(c, parts[1])
}

// UseQueryToken membaca access token dari query "token", untuk upgrade
// websocket yang tidak bisa mengirim header.
func UseQueryToken(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return unauthorized(c, "Authentication credentials were not provided.", "not_authenticated")
	}
	return authenticate(c, token)
}

func authenticate(c *fiber.Ctx, token string) error {
	claims, err := config.Tokens.Parse(token, auth.AccessToken)
	if err != nil {
		logger.SecurityLogger.Warn("Rejected token", zap.String("ip", c.IP()), zap.Error(err))
		return unauthorized(c, "Given token not valid for any token type", "token_not_valid")
	}

	// Token hanya berlaku selama user-nya masih ada
	if _, err := config.Users.GetByID(c.UserContext(), claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logger.SecurityLogger.Warn("Token for unknown user", zap.Int("user_id", claims.UserID))
			return unauthorized(c, "User not found", "user_not_found")
		}
		logger.ErrorLogger.Error("Error loading token user", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"detail": "A server error occurred."})
	}

	logger.ContextLogger.Debug("Request principal",
		zap.Int("user_id", claims.UserID),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
	)
	c.Locals(LocalUserID, claims.UserID)
	return c.Next()
}
