package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

var parseMiddlewareClaimsFn = jwt.ParseWithClaims

// ClientMiddleware validates bearer tokens and stores client_id in locals.
func ClientMiddleware(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}

		clientID, err := validateWithSecret(token, secretBytes)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		c.Locals("client_id", clientID)
		return c.Next()
	}
}

// OptionalClient resolves client_id when a valid token is present but lets
// anonymous requests through. Invalid tokens are treated as anonymous rather
// than rejected, so a stale shared link still renders the plan.
func OptionalClient(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		if token := bearerFromHeader(c.Get("Authorization")); token != "" {
			if clientID, err := validateWithSecret(token, secretBytes); err == nil {
				c.Locals("client_id", clientID)
			}
		}
		return c.Next()
	}
}

func validateWithSecret(token string, secret []byte) (string, error) {
	parsed, err := parseMiddlewareClaimsFn(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid || claims.ClientID == "" {
		return "", errTokenInvalid
	}
	return claims.ClientID, nil
}

var errTokenInvalid = errors.New("token invalid")

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
