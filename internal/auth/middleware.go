package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
)

// JWTMiddleware validates bearer tokens, rejects blacklisted ones and
// stores user_id in locals.
func JWTMiddleware(secret string, rdb *redis.Client) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
			return secretBytes, nil
		})
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		claims, ok := parsed.Claims.(*Claims)
		if !ok || !parsed.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "token invalid")
		}

		if rdb != nil && blacklistedFn(c.Context(), rdb, token) {
			return fiber.NewError(fiber.StatusUnauthorized, "token blacklisted")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("access_token", token)
		return c.Next()
	}
}

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

var blacklistedFn = func(ctx context.Context, rdb *redis.Client, token string) bool {
	n, err := rdb.Exists(ctx, blacklistKey(token)).Result()
	return err == nil && n > 0
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
