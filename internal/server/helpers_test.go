package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestHumanizeParam(t *testing.T) {
	tests := []struct {
		param    string
		expected string
	}{
		{"id", "ID"},
		{"userId", "user ID"},
		{"requestId", "request ID"},
		{"feedbackId", "feedback ID"},
		{"targetUserId", "target user ID"},
		{"something", "something"},
	}
	for _, tt := range tests {
		t.Run(tt.param, func(t *testing.T) {
			assert.Equal(t, tt.expected, humanizeParam(tt.param))
		})
	}
}

func paginationApp(defaultLimit int) *fiber.App {
	app := fiber.New()
	app.Get("/items", func(c *fiber.Ctx) error {
		p := parsePagination(c, defaultLimit)
		return c.JSON(fiber.Map{"limit": p.Limit, "offset": p.Offset})
	})
	return app
}

func getPagination(t *testing.T, app *fiber.App, path string) map[string]float64 {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var body map[string]float64
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestParsePagination(t *testing.T) {
	app := paginationApp(20)

	body := getPagination(t, app, "/items")
	assert.Equal(t, float64(20), body["limit"])
	assert.Equal(t, float64(0), body["offset"])

	body = getPagination(t, app, "/items?limit=10&offset=30")
	assert.Equal(t, float64(10), body["limit"])
	assert.Equal(t, float64(30), body["offset"])

	// oversized limits are capped, negatives fall back to defaults
	body = getPagination(t, app, "/items?limit=5000&offset=-3")
	assert.Equal(t, float64(100), body["limit"])
	assert.Equal(t, float64(0), body["offset"])

	body = getPagination(t, app, "/items?limit=-1")
	assert.Equal(t, float64(20), body["limit"])
}

func TestParseID(t *testing.T) {
	s := &Server{}

	tests := []struct {
		name       string
		param      string
		value      string
		wantStatus int
		wantErrMsg string
	}{
		{"Valid", "id", "42", http.StatusOK, ""},
		{"NonNumeric", "id", "abc", http.StatusBadRequest, "Invalid ID"},
		{"Zero", "id", "0", http.StatusBadRequest, "Invalid ID"},
		{"UserParam", "userId", "abc", http.StatusBadRequest, "Invalid user ID"},
		{"RequestParam", "requestId", "abc", http.StatusBadRequest, "Invalid request ID"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/items/:"+tt.param, func(c *fiber.Ctx) error {
				id, err := s.parseID(c, tt.param)
				if err != nil {
					return nil
				}
				return c.JSON(fiber.Map{"id": id})
			})

			req := httptest.NewRequest(http.MethodGet, "/items/"+tt.value, nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantErrMsg != "" {
				var body map[string]string
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantErrMsg, body["error"])
			}
		})
	}
}

func TestIsAdmin(t *testing.T) {
	tests := []struct {
		name   string
		userID uint
		rows   *sqlmock.Rows
		want   bool
	}{
		{"Admin", 1, sqlmock.NewRows([]string{"is_admin"}).AddRow(true), true},
		{"Regular", 2, sqlmock.NewRows([]string{"is_admin"}).AddRow(false), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gormDB, mock := setupMockDB(t)
			s := &Server{db: gormDB}

			mock.ExpectQuery(regexp.QuoteMeta(`SELECT "is_admin" FROM "users"`)).
				WithArgs(tt.userID, 1).
				WillReturnRows(tt.rows)

			app := fiber.New()
			app.Get("/check", func(c *fiber.Ctx) error {
				admin, err := s.isAdmin(c, tt.userID)
				if err != nil {
					return c.SendStatus(fiber.StatusInternalServerError)
				}
				return c.JSON(fiber.Map{"admin": admin})
			})

			req := httptest.NewRequest(http.MethodGet, "/check", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			var body map[string]bool
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body["admin"])
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIsAdmin_UserNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	s := &Server{db: gormDB}

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "is_admin" FROM "users"`)).
		WithArgs(uint(999), 1).
		WillReturnRows(sqlmock.NewRows([]string{"is_admin"}))

	app := fiber.New()
	app.Get("/check", func(c *fiber.Ctx) error {
		_, err := s.isAdmin(c, 999)
		if err != nil {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/check", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}
