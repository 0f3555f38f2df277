package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func protectedApp(secret string) *fiber.App {
	app := fiber.New()
	app.Get("/protected", ClientMiddleware(secret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"client_id": c.Locals("client_id")})
	})
	app.Get("/open", OptionalClient(secret), func(c *fiber.Ctx) error {
		clientID, _ := c.Locals("client_id").(string)
		return c.JSON(fiber.Map{"client_id": clientID})
	})
	return app
}

func TestClientMiddlewareMissingToken(t *testing.T) {
	app := protectedApp("secret")
	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/protected", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestClientMiddlewareBadToken(t *testing.T) {
	app := protectedApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, _ := app.Test(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestClientMiddlewareValidToken(t *testing.T) {
	resp, err := NewService("secret").IssueClientToken()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	app := protectedApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+resp.Token)
	res, err := app.Test(req)
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %v %d", err, res.StatusCode)
	}
}

func TestOptionalClientAnonymous(t *testing.T) {
	app := protectedApp("secret")
	res, err := app.Test(httptest.NewRequest(http.MethodGet, "/open", nil))
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("anonymous request must pass: %v %d", err, res.StatusCode)
	}
}

func TestOptionalClientInvalidTokenIsAnonymous(t *testing.T) {
	app := protectedApp("secret")
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	res, err := app.Test(req)
	if err != nil || res.StatusCode != http.StatusOK {
		t.Fatalf("invalid token must degrade to anonymous: %v %d", err, res.StatusCode)
	}
}

func TestBearerFromHeader(t *testing.T) {
	if bearerFromHeader("Bearer abc") != "abc" {
		t.Fatalf("expected token extracted")
	}
	if bearerFromHeader("Basic abc") != "" {
		t.Fatalf("expected empty for non-bearer scheme")
	}
	if bearerFromHeader("") != "" {
		t.Fatalf("expected empty for missing header")
	}
}
