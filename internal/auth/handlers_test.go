package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func TestClientTokenHandlerFlow(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret"))

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/auth/client", nil))
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("client status: %v %d", err, resp.StatusCode)
	}

	var issued TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&issued); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if issued.Token == "" || issued.ClientID == "" {
		t.Fatalf("unexpected response: %+v", issued)
	}

	req := httptest.NewRequest(http.MethodGet, "/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+issued.Token)
	resp, err = app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("verify status: %v %d", err, resp.StatusCode)
	}

	var verified struct {
		ClientID string `json:"client_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&verified); err != nil {
		t.Fatalf("decode verify: %v", err)
	}
	if verified.ClientID != issued.ClientID {
		t.Fatalf("client id mismatch")
	}
}

func TestVerifyMissingToken(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/auth"), NewService("secret"))

	resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/auth/verify", nil))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}
