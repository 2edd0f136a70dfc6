package server

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountInfo(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodGet, "/api/account/info", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "alice", body["username"])
		assert.Equal(t, "alice@example.com", body["email"])
		assert.Equal(t, "alice", body["handle"])
	})

	t.Run("updates username and email", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPut, "/api/account/info", map[string]string{
			"username": "alice2",
			"email":    "alice2@example.com",
		}, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "alice2", body["username"])
		assert.Equal(t, "alice2", body["handle"])
	})

	t.Run("rejects an email already in use", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")
		signupAndLogin(t, app, "bob", "bob@example.com")

		resp := doJSON(t, app, http.MethodPut, "/api/account/info", map[string]string{
			"username": "alice",
			"email":    "bob@example.com",
		}, cookie)
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestChangePassword(t *testing.T) {
	t.Run("requires the current password", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/account/password", map[string]string{
			"current_password": "wrong-password",
			"new_password":     "newsecret1",
			"confirm_password": "newsecret1",
		}, cookie)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("rejects mismatched confirmation", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/account/password", map[string]string{
			"current_password": "secret123",
			"new_password":     "newsecret1",
			"confirm_password": "different1",
		}, cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("new password works for login", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/account/password", map[string]string{
			"current_password": "secret123",
			"new_password":     "newsecret1",
			"confirm_password": "newsecret1",
		}, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "newsecret1",
		}, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestProfilePhoto(t *testing.T) {
	t.Run("stores the upload and returns its path", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("photo", "avatar.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("not-really-a-png"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/account/profile-photo", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.AddCookie(cookie)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.NotEmpty(t, body["profile_image"])
	})

	t.Run("rejects a disallowed extension", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		var buf bytes.Buffer
		w := multipart.NewWriter(&buf)
		part, err := w.CreateFormFile("photo", "payload.exe")
		require.NoError(t, err)
		_, err = part.Write([]byte("nope"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/account/profile-photo", &buf)
		req.Header.Set("Content-Type", w.FormDataContentType())
		req.AddCookie(cookie)

		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestDeactivateAccount(t *testing.T) {
	t.Run("locks the account and ends the session", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/account/deactivate", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/api/tasks/", nil, cookie)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "secret123",
		}, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
		_ = resp.Body.Close()
	})
}

func TestDeleteAccount(t *testing.T) {
	t.Run("removes the account and everything it owns", func(t *testing.T) {
		srv, app := newTestServer(t)
		cookie, userID := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/tasks/", map[string]string{
			"title": "Soon to be gone",
		}, cookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodDelete, "/api/account/delete", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		_, err := srv.userRepo.GetByID(context.Background(), userID)
		assert.Error(t, err)

		tasks, err := srv.taskRepo.ListByUser(context.Background(), userID)
		require.NoError(t, err)
		assert.Empty(t, tasks)

		resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "secret123",
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
