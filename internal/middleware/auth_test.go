package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"skillswap/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type tokenOverrides map[string]interface{}

func signToken(t *testing.T, userID uint, overrides tokenOverrides) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"iss": TokenIssuer,
		"aud": TokenAudience,
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"jti": "jti-" + strconv.FormatUint(uint64(userID), 10),
	}
	for k, v := range overrides {
		if v == nil {
			delete(claims, k)
		} else {
			claims[k] = v
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func authTestApp(rdb *redis.Client) *fiber.App {
	app := fiber.New()
	cfg := &config.Config{JWTSecret: testSecret}
	app.Get("/test", AuthRequired(cfg, rdb), func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"userID": c.Locals("userID")})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	app := authTestApp(nil)

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
		expectedUserID uint
	}{
		{
			name:           "Happy Path",
			authHeader:     "Bearer " + signToken(t, 123, nil),
			expectedStatus: http.StatusOK,
			expectedUserID: 123,
		},
		{
			name:           "Missing Header",
			authHeader:     "",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Format",
			authHeader:     "Basic dXNlcjpwYXNz",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Malformed Token",
			authHeader:     "Bearer malformed.token.here",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Expired Token",
			authHeader:     "Bearer " + signToken(t, 123, tokenOverrides{"exp": time.Now().Add(-time.Hour).Unix()}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Issuer",
			authHeader:     "Bearer " + signToken(t, 123, tokenOverrides{"iss": "someone-else"}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Issuer",
			authHeader:     "Bearer " + signToken(t, 123, tokenOverrides{"iss": nil}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Wrong Audience",
			authHeader:     "Bearer " + signToken(t, 123, tokenOverrides{"aud": "other-client"}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing Subject",
			authHeader:     "Bearer " + signToken(t, 123, tokenOverrides{"sub": nil}),
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Non-numeric Subject",
			authHeader:     "Bearer " + signToken(t, 123, tokenOverrides{"sub": "not-a-number"}),
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		tt := tt // capture range variable
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			resp, err := app.Test(req)
			defer func() { _ = resp.Body.Close() }()
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var body map[string]interface{}
				if err := json.NewDecoder(resp.Body).Decode(&body); err == nil {
					assert.Equal(t, float64(tt.expectedUserID), body["userID"])
				}
			}
		})
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	app := authTestApp(rdb)

	doRequest := func(token string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		return resp.StatusCode
	}

	token := signToken(t, 7, tokenOverrides{"jti": "revocable-7"})
	assert.Equal(t, http.StatusOK, doRequest(token))

	require.NoError(t, mr.Set("blacklist:revocable-7", "1"))
	assert.Equal(t, http.StatusUnauthorized, doRequest(token))

	// other tokens are unaffected
	assert.Equal(t, http.StatusOK, doRequest(signToken(t, 8, nil)))
}
