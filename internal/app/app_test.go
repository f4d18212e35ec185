package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cellar-club/tasting/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver string) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Env = "production"
	cfg.Store.Driver = driver
	cfg.Paths.Data = t.TempDir()
	cfg.Paths.Logs = filepath.Join(t.TempDir(), "logs")
	cfg.AllowedOrigins = []string{"*.cellar.club"}
	return &cfg
}

func newTestApp(t *testing.T, driver string) *App {
	t.Helper()
	a, err := New(context.Background(), nil, testConfig(t, driver))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Shutdown() })
	return a
}

func TestHealthz(t *testing.T) {
	a := newTestApp(t, config.StoreDriverMemory)

	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":1,"store":"memory"}`, w.Body.String())
	assert.Equal(t, ":8501", a.Addr())
}

func TestSubmitThenViewThroughWorkbook(t *testing.T) {
	a := newTestApp(t, config.StoreDriverXLSX)
	h := a.Router()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions",
		strings.NewReader(`{"name":"Ann","wine":"Riesling","rating":7,"notes":"Citrus"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/view?wine=Riesling&category=Taste", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"taste":"Citrus"`)
	assert.NotEmpty(t, w.Result().Cookies())
}

func TestUnknownRoute(t *testing.T) {
	a := newTestApp(t, config.StoreDriverMemory)
	w := httptest.NewRecorder()
	a.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORSOriginPatterns(t *testing.T) {
	a := newTestApp(t, config.StoreDriverMemory)

	for origin, allowed := range map[string]bool{
		"https://tasting.cellar.club": true,
		"https://evil.example":        false,
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/wines", nil)
		req.Header.Set("Origin", origin)
		w := httptest.NewRecorder()
		a.Router().ServeHTTP(w, req)
		if allowed {
			assert.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"))
		} else {
			assert.Equal(t, http.StatusForbidden, w.Code)
		}
	}
}

func TestMatchOriginPattern(t *testing.T) {
	assert.True(t, matchOriginPattern("cellar.club", "cellar.club"))
	assert.True(t, matchOriginPattern("*.cellar.club", "a.cellar.club"))
	assert.True(t, matchOriginPattern("localhost:*", "localhost:5173"))
	assert.False(t, matchOriginPattern("*.cellar.club", "cellar.club.evil"))
	assert.Equal(t, "localhost:5173", extractOriginHost("http://localhost:5173"))
}

func TestParseTimezoneLocation(t *testing.T) {
	loc, err := parseTimezoneLocation("+02:00")
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 2*3600, offset)

	loc, err = parseTimezoneLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = parseTimezoneLocation("Mars/Olympus")
	assert.Error(t, err)
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := testConfig(t, config.StoreDriverMemory)
	cfg.Store.Driver = "csv"
	_, err := New(context.Background(), nil, cfg)
	assert.Error(t, err)

	_, err = New(context.Background(), nil, nil)
	assert.Error(t, err)
}
