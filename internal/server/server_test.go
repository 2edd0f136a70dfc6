package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"socialsync/internal/config"
	"socialsync/internal/database"
	"socialsync/internal/session"
	"socialsync/internal/uploads"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer builds a server against an in-memory SQLite database
// with in-memory sessions and a throwaway uploads directory.
func newTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	uploadStore, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	cfg := &config.Config{
		Port:          "0",
		DBPath:        ":memory:",
		SessionSecret: "test-secret",
		UploadsDir:    uploadStore.Dir(),
		Env:           "test",
		TrendCacheTTL: 900,
	}

	srv, err := NewServerWithDeps(cfg, db, nil, uploadStore)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

func itoa(id int) string {
	return strconv.Itoa(id)
}

// doJSON performs a request with a JSON body and optional session cookie.
func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}, cookie *http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals the response body into a generic map.
func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// signupAndLogin registers an account and returns its session cookie
// and user ID.
func signupAndLogin(t *testing.T, app *fiber.App, username, email string) (*http.Cookie, uint) {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/auth/signup", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	user := body["user"].(map[string]interface{})
	userID := uint(user["id"].(float64))

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": "secret123",
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionCookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	_ = resp.Body.Close()
	require.NotNil(t, sessionCookie, "login should set the session cookie")
	require.NotEmpty(t, sessionCookie.Value)

	return sessionCookie, userID
}
