package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postForm submits a multipart form to the given path. fields maps form
// names to values; fileField/fileName, when set, attach a file part.
func postForm(t *testing.T, app *fiber.App, path string, fields map[string]string, fileField, fileName string, cookie *http.Cookie) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write([]byte("image-bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestPosts(t *testing.T) {
	t.Run("create and list", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := postForm(t, app, "/api/posts/", map[string]string{
			"caption":   "Behind the scenes of the new studio",
			"platforms": "YouTube, Instagram",
			"status":    "published",
		}, "image", "studio.jpg", cookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeBody(t, resp)
		assert.Equal(t, "published", created["status"])
		assert.NotEmpty(t, created["image_path"])
		assert.Equal(t, []interface{}{"YouTube", "Instagram"}, created["platforms"])

		resp = doJSON(t, app, http.MethodGet, "/api/posts/", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var posts []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
		_ = resp.Body.Close()
		assert.Len(t, posts, 1)
	})

	t.Run("defaults to draft without an image", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := postForm(t, app, "/api/posts/", map[string]string{
			"caption": "Draft idea",
		}, "", "", cookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeBody(t, resp)
		assert.Equal(t, "draft", created["status"])
		assert.Empty(t, created["image_path"])
	})

	t.Run("rejects an empty caption", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := postForm(t, app, "/api/posts/", map[string]string{
			"caption": "  ",
		}, "", "", cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := postForm(t, app, "/api/posts/", map[string]string{
			"caption": "Bad status",
			"status":  "archived",
		}, "", "", cookie)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("delete is owner-scoped", func(t *testing.T) {
		_, app := newTestServer(t)
		aliceCookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")
		bobCookie, _ := signupAndLogin(t, app, "bob", "bob@example.com")

		resp := postForm(t, app, "/api/posts/", map[string]string{
			"caption": "Alice's post",
		}, "", "", aliceCookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		created := decodeBody(t, resp)
		id := int(created["id"].(float64))

		resp = doJSON(t, app, http.MethodDelete, "/api/posts/"+itoa(id), nil, bobCookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodDelete, "/api/posts/"+itoa(id), nil, aliceCookie)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
