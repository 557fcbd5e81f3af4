package middleware

import (
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

const (
	tokenLocal    = "user"
	callerIDClaim = "user_id"
)

// Protected rejects requests without a valid HS256 bearer token signed with
// secret.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ContextKey:   tokenLocal,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if err.Error() == "Missing or malformed JWT" {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

// CallerID returns the user_id claim of the token Protected accepted.
func CallerID(c *fiber.Ctx) (string, bool) {
	token, ok := c.Locals(tokenLocal).(*jwt.Token)
	if !ok || token == nil {
		return "", false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	id, ok := claims[callerIDClaim].(string)
	return id, ok && id != ""
}

// RequireCaller answers 401 when the token carries no user_id claim.
func RequireCaller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CallerID(c); !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"status":  "error",
				"message": "Token has no user_id claim",
				"data":    nil,
			})
		}
		return c.Next()
	}
}
