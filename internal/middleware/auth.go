package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stockward/backend/internal/auth"
	"github.com/stockward/backend/internal/config"
	"github.com/stockward/backend/internal/services"
	"go.uber.org/zap"
)

const CtxClaims = "claims"

// AuthMiddleware verifies the bearer token and stores the claims for the
// handlers. Actor identity always comes from here, never from request
// headers or bodies.
func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxClaims, claims)

		return c.Next()
	}
}

func GetClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(CtxClaims).(*auth.Claims)
	return claims
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	if claims := GetClaims(c); claims != nil {
		return claims.UserID
	}
	return uuid.Nil
}

// GetActor resolves the verified principal for audit attribution.
func GetActor(c *fiber.Ctx) services.Actor {
	claims := GetClaims(c)
	if claims == nil {
		return services.System()
	}
	id := claims.UserID
	return services.Actor{ID: &id, Name: claims.Name}
}

// RequireRole allows the request through only when the authenticated user
// holds one of the given roles.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication required"})
		}
		for _, role := range roles {
			if claims.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "insufficient permissions"})
	}
}
