package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalytics(t *testing.T) {
	t.Run("returns a seven day series", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodGet, "/api/analytics/youtube", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "youtube", body["platform"])

		series := body["series"].([]interface{})
		require.Len(t, series, 7)
		first := series[0].(map[string]interface{})
		assert.NotEmpty(t, first["date"])
		assert.Greater(t, first["views"].(float64), float64(0))
	})

	t.Run("repeated requests return identical numbers", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodGet, "/api/analytics/twitter", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		first := decodeBody(t, resp)

		resp = doJSON(t, app, http.MethodGet, "/api/analytics/twitter", nil, cookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		second := decodeBody(t, resp)

		assert.Equal(t, first, second)
	})

	t.Run("different users get different numbers", func(t *testing.T) {
		_, app := newTestServer(t)
		aliceCookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")
		bobCookie, _ := signupAndLogin(t, app, "bob", "bob@example.com")

		resp := doJSON(t, app, http.MethodGet, "/api/analytics/facebook", nil, aliceCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		alice := decodeBody(t, resp)

		resp = doJSON(t, app, http.MethodGet, "/api/analytics/facebook", nil, bobCookie)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		bob := decodeBody(t, resp)

		assert.NotEqual(t, alice["series"], bob["series"])
	})

	t.Run("unknown platform is not found", func(t *testing.T) {
		_, app := newTestServer(t)
		cookie, _ := signupAndLogin(t, app, "alice", "alice@example.com")

		resp := doJSON(t, app, http.MethodGet, "/api/analytics/myspace", nil, cookie)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		_ = resp.Body.Close()
	})
}
