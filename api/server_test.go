package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticGuilds []GuildInfo

func (g staticGuilds) Guilds() []GuildInfo { return g }

func TestServer_Alive(t *testing.T) {
	srv := New(":0", nil)

	for _, method := range []string{http.MethodGet, http.MethodHead} {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(method, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code, method)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "Bot is alive!", rec.Body.String())
}

func TestServer_Health(t *testing.T) {
	rec := httptest.NewRecorder()
	New(":0", nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func TestServer_Guilds(t *testing.T) {
	srv := New(":0", staticGuilds{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/guilds", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body struct {
		Success bool        `json:"success"`
		Data    []GuildInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, []GuildInfo{{ID: "1", Name: "one"}, {ID: "2", Name: "two"}}, body.Data)
}

func TestServer_GuildsUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	New(":0", nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/guilds", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	New(":0", nil).Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
