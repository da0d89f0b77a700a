package server

import (
	"fmt"
	"net/http"
	"testing"

	"skillswap/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerAdminRoutes(app *fiber.App, s *Server) {
	admin := app.Group("/api/admin", s.AdminRequired())
	admin.Get("/stats", s.GetPlatformStats)
	admin.Get("/users", s.GetAllUsers)
	admin.Get("/swaps", s.GetAllSwaps)
	admin.Get("/feedback", s.GetAllFeedback)
	admin.Get("/activity-logs", s.GetActivityLogs)
	admin.Get("/recent-activity", s.GetRecentActivity)
	admin.Get("/user-report/:userId", s.GetUserReport)
	admin.Post("/ban/:userId", s.BanUser)
	admin.Post("/unban/:userId", s.UnbanUser)
	admin.Post("/message", s.SendPlatformMessage)
}

func TestAdminRequired(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	regular := createTestUser(t, s.db, "regular@example.com")

	app := authedApp(regular.ID)
	registerAdminRoutes(app, s)

	resp, decoded := doJSON(t, app, http.MethodGet, "/api/admin/stats", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Admin access required", decoded["error"])
}

func TestBanAndUnbanUser(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := createTestUser(t, s.db, "admin-b@example.com", func(u *models.User) { u.IsAdmin = true })
	target := createTestUser(t, s.db, "target-b@example.com")

	app := authedApp(admin.ID)
	registerAdminRoutes(app, s)

	// admins cannot ban themselves
	resp, decoded := doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/ban/%d", admin.ID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Cannot ban yourself", decoded["error"])

	resp, decoded = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/ban/%d", target.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, decoded["user"].(map[string]interface{})["is_banned"])

	// banning twice is rejected
	resp, _ = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/ban/%d", target.ID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, decoded = doJSON(t, app, http.MethodPost, fmt.Sprintf("/api/admin/unban/%d", target.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, decoded["user"].(map[string]interface{})["is_banned"])

	// both actions land in the audit trail
	var actions []string
	require.NoError(t, s.db.Model(&models.ActivityLog{}).Order("id").Pluck("action", &actions).Error)
	assert.Equal(t, []string{models.ActionUserBanned, models.ActionUserUnbanned}, actions)
}

func TestGetPlatformStats(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := createTestUser(t, s.db, "admin-s@example.com", func(u *models.User) { u.IsAdmin = true })
	alice := createTestUser(t, s.db, "alice-s@example.com")
	bob := createTestUser(t, s.db, "bob-s@example.com", func(u *models.User) { u.IsBanned = true })

	createSwapRow(t, s.db, alice.ID, bob.ID, models.SwapStatusAccepted)
	createSwapRow(t, s.db, alice.ID, bob.ID, models.SwapStatusPending)

	app := authedApp(admin.ID)
	registerAdminRoutes(app, s)

	resp, decoded := doJSON(t, app, http.MethodGet, "/api/admin/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := decoded["stats"].(map[string]interface{})
	users := stats["users"].(map[string]interface{})
	assert.Equal(t, float64(3), users["total"])
	assert.Equal(t, float64(1), users["banned"])

	swaps := stats["swaps"].(map[string]interface{})
	assert.Equal(t, float64(2), swaps["total"])
	assert.Equal(t, float64(1), swaps["pending"])
	assert.Equal(t, float64(1), swaps["accepted"])
}

func TestGetActivityLogs(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := createTestUser(t, s.db, "admin-al@example.com", func(u *models.User) { u.IsAdmin = true })
	alice := createTestUser(t, s.db, "alice-al@example.com")

	for i := 0; i < 5; i++ {
		require.NoError(t, s.db.Create(&models.ActivityLog{
			UserID: alice.ID, Action: models.ActionSwapCreated,
		}).Error)
	}
	require.NoError(t, s.db.Create(&models.ActivityLog{
		UserID: admin.ID, Action: models.ActionUserBanned, TargetUserID: &alice.ID,
	}).Error)

	app := authedApp(admin.ID)
	registerAdminRoutes(app, s)

	_, decoded := doJSON(t, app, http.MethodGet, "/api/admin/activity-logs?limit=2", nil)
	assert.Len(t, decoded["logs"], 2)
	assert.Equal(t, float64(6), decoded["total"])
	assert.Equal(t, float64(3), decoded["total_pages"])

	// filter narrows the total as well
	_, decoded = doJSON(t, app, http.MethodGet, "/api/admin/activity-logs?action=user_banned", nil)
	assert.Len(t, decoded["logs"], 1)
	assert.Equal(t, float64(1), decoded["total"])

	_, decoded = doJSON(t, app, http.MethodGet, "/api/admin/recent-activity?limit=3", nil)
	assert.Len(t, decoded["activity"], 3)
}

func TestGetUserReport(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := createTestUser(t, s.db, "admin-r@example.com", func(u *models.User) { u.IsAdmin = true })
	alice := createTestUser(t, s.db, "alice-r@example.com")
	bob := createTestUser(t, s.db, "bob-r@example.com")

	swap := createSwapRow(t, s.db, alice.ID, bob.ID, models.SwapStatusAccepted)
	createSwapRow(t, s.db, bob.ID, alice.ID, models.SwapStatusRejected)
	require.NoError(t, s.db.Create(&models.Feedback{
		SwapID: swap.ID, FromUserID: bob.ID, ToUserID: alice.ID, Rating: 4,
	}).Error)

	app := authedApp(admin.ID)
	registerAdminRoutes(app, s)

	resp, decoded := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/admin/user-report/%d", alice.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	report := decoded["report"].(map[string]interface{})
	swaps := report["swaps"].(map[string]interface{})
	assert.Equal(t, float64(1), swaps["sent"])
	assert.Equal(t, float64(1), swaps["received"])
	assert.Equal(t, float64(1), swaps["accepted"])
	assert.Equal(t, float64(1), swaps["rejected"])
	assert.Equal(t, float64(1), report["feedback_count"])
	assert.InDelta(t, 4.0, report["avg_rating"].(float64), 0.001)

	// unknown users yield a 404
	resp, _ = doJSON(t, app, http.MethodGet, "/api/admin/user-report/9999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSendPlatformMessage(t *testing.T) {
	t.Parallel()
	s := newTestServer(t)
	admin := createTestUser(t, s.db, "admin-m@example.com", func(u *models.User) { u.IsAdmin = true })

	app := authedApp(admin.ID)
	registerAdminRoutes(app, s)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/admin/message", map[string]interface{}{
		"title": "", "message": "no title",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/admin/message", map[string]interface{}{
		"title": "Maintenance", "message": "Back at noon",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var entry models.ActivityLog
	require.NoError(t, s.db.Where("action = ?", models.ActionPlatformMessage).First(&entry).Error)
	assert.Equal(t, "Maintenance: Back at noon", entry.Details)
	assert.Equal(t, admin.ID, entry.UserID)
}
