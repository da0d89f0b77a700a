package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/models"
	"skillswap/internal/repository"
	"skillswap/internal/service"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires a Server against an in-memory sqlite database.
// Prometheus middleware is left out so repeated setups do not re-register
// collectors.
func newTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	cfg := &config.Config{
		JWTSecret: "test-secret-key-12345678901234567890123456789012",
		Env:       "test",
	}

	userRepo := repository.NewUserRepository(db)
	swapRepo := repository.NewSwapRepository(db)
	feedbackRepo := repository.NewFeedbackRepository(db)
	activityRepo := repository.NewActivityRepository(db)

	s := &Server{
		config:       cfg,
		db:           db,
		userRepo:     userRepo,
		swapRepo:     swapRepo,
		feedbackRepo: feedbackRepo,
		activityRepo: activityRepo,
	}
	s.activityService = service.NewActivityService(activityRepo)
	s.userService = service.NewUserService(userRepo)
	s.swapService = service.NewSwapService(swapRepo, userRepo, s.activityService)
	s.feedbackService = service.NewFeedbackService(feedbackRepo, swapRepo)
	s.adminService = service.NewAdminService(userRepo, swapRepo, feedbackRepo, s.activityService)
	return s
}

// authedApp returns a Fiber app that pretends the given user is logged in.
func authedApp(userID uint) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", userID)
		return c.Next()
	})
	return app
}

func createTestUser(t *testing.T, db *gorm.DB, email string, mods ...func(*models.User)) *models.User {
	t.Helper()
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &models.User{
		Name:          "Test User",
		Email:         email,
		Password:      string(hashed),
		Location:      "Berlin",
		SkillsOffered: []string{"Guitar"},
		SkillsWanted:  []string{"Spanish"},
		IsPublic:      true,
	}
	for _, mod := range mods {
		mod(user)
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func newAuthedRequest(t *testing.T, method, path, token string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp, decoded
}
