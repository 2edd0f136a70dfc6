package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLive(t *testing.T) {
	t.Run("toggle flips the state", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/live/toggle", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["live"])

		resp = doJSON(t, app, http.MethodPost, "/api/live/toggle", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		assert.Equal(t, false, body["live"])
	})

	t.Run("summary counts sessions and the open one", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		// One finished session plus one still open.
		for i := 0; i < 3; i++ {
			resp := doJSON(t, app, http.MethodPost, "/api/live/toggle", nil, cookie)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			_ = resp.Body.Close()
		}

		resp := doJSON(t, app, http.MethodGet, "/api/live/summary", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["live"])
		assert.Equal(t, float64(2), body["sessions"])
		assert.GreaterOrEqual(t, body["total_seconds"].(float64), float64(0))
	})

	t.Run("creators lists other broadcasters only", func(t *testing.T) {
		_, app := newTestServer(t)
		aliceCookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")
		bobCookie, _ := signupAndLogin(t, app, "bob", "bob@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/live/toggle", nil, bobCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
		resp = doJSON(t, app, http.MethodPost, "/api/live/toggle", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/api/live/creators", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var creators []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&creators))
		_ = resp.Body.Close()
		require.Len(t, creators, 1)
		assert.Equal(t, "bob", creators[0]["username"])
	})

	t.Run("blocked broadcasters are hidden", func(t *testing.T) {
		_, app := newTestServer(t)
		aliceCookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")
		bobCookie, bobID := signupAndLogin(t, app, "bob", "bob@example.com")

		resp := doJSON(t, app, http.MethodPost, "/api/live/toggle", nil, bobCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodPost, "/api/privacy/blocked/", map[string]uint{
			"user_id": bobID,
		}, aliceCookie)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()

		resp = doJSON(t, app, http.MethodGet, "/api/live/creators", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var creators []map[string]interface{}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&creators))
		_ = resp.Body.Close()
		assert.Empty(t, creators)
	})
}
