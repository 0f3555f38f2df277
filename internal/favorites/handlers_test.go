package favorites

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func clientStub(c *fiber.Ctx) error {
	c.Locals("client_id", "client-1")
	return c.Next()
}

func TestFavoritesHandlers(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	app := fiber.New()
	RegisterRoutes(app.Group("/api/favorites"), NewService(mock), clientStub)

	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("client-1", 7).
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec(`INSERT INTO favorites`).WithArgs("client-1", 7).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/api/favorites/7", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("toggle status: %v", err)
	}
	var toggled struct {
		ID       int  `json:"id"`
		Favorite bool `json:"favorite"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&toggled); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if toggled.ID != 7 || !toggled.Favorite {
		t.Fatalf("unexpected toggle result: %+v", toggled)
	}

	mock.ExpectQuery(`SELECT training_id FROM favorites`).WithArgs("client-1").
		WillReturnRows(pgxmock.NewRows([]string{"training_id"}).AddRow(7))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/favorites/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
	var listed struct {
		Favorites []int `json:"favorites"`
		Count     int   `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if listed.Count != 1 || listed.Favorites[0] != 7 {
		t.Fatalf("unexpected list: %+v", listed)
	}

	mock.ExpectExec(`DELETE FROM favorites WHERE client_id=\$1`).WithArgs("client-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	resp, err = app.Test(httptest.NewRequest(http.MethodDelete, "/api/favorites/", nil))
	if err != nil || resp.StatusCode != http.StatusNoContent {
		t.Fatalf("clear status: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFavoritesHandlersBadID(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app.Group("/api/favorites"), NewService(nil), clientStub)

	resp, _ := app.Test(httptest.NewRequest(http.MethodPut, "/api/favorites/abc", nil))
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request for non-numeric id, got %d", resp.StatusCode)
	}
}

func TestFavoritesHandlersEmptyList(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT training_id FROM favorites`).WithArgs("client-1").
		WillReturnRows(pgxmock.NewRows([]string{"training_id"}))

	app := fiber.New()
	RegisterRoutes(app.Group("/api/favorites"), NewService(mock), clientStub)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/favorites/", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("list status: %v", err)
	}
	var listed struct {
		Favorites []int `json:"favorites"`
		Count     int   `json:"count"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if listed.Count != 0 || listed.Favorites == nil {
		t.Fatalf("expected empty array, got %+v", listed)
	}
}
