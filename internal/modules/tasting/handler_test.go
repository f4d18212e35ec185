package tasting

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cellar-club/tasting/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(svc *Service) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Session(middleware.SessionOptions{CookieName: "tasting_sid"}))
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHandlerWines(t *testing.T) {
	w := do(newRouter(newFixture(t).svc), http.MethodGet, "/api/v1/wines", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":["Pinot Gris","Riesling","Dolcetto"]}`, w.Body.String())
}

func TestHandlerSubmitAndRecords(t *testing.T) {
	r := newRouter(newFixture(t).svc)

	w := do(r, http.MethodPost, "/api/v1/submissions", `{"name":"Ann","wine":"Riesling","rating":6,"notes":"Lime\nHoney"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Thank you, Ann! Your inputs for Riesling have been recorded. 🍷", body["message"])
	assert.Len(t, body["records"], 3)

	w = do(r, http.MethodGet, "/api/v1/records", "")
	require.Equal(t, http.StatusOK, w.Code)
	records := decode(t, w)["data"].([]interface{})
	require.Len(t, records, 3)
	first := records[0].(map[string]interface{})
	assert.Equal(t, float64(6), first["rating"])
	assert.Equal(t, "Rating", first["category"])
}

func TestHandlerSubmitRejectsBlankName(t *testing.T) {
	f := newFixture(t)
	r := newRouter(f.svc)

	w := do(r, http.MethodPost, "/api/v1/submissions", `{"name":"   ","wine":"Riesling"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["ok"])
	assert.Equal(t, ErrNameRequired.Error(), body["message"])

	w = do(r, http.MethodPost, "/api/v1/submissions", `{"name":"Ann","wine":"Riesling","rating":"ten"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerSubmitFormBlankRatingUsesDefault(t *testing.T) {
	r := newRouter(newFixture(t).svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/submissions", strings.NewReader("name=Ann&wine=Riesling&rating=&notes=Lime"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	records := decode(t, w)["records"].([]interface{})
	require.Len(t, records, 2)
	assert.Equal(t, float64(DefaultRating), records[0].(map[string]interface{})["rating"])
}

func TestHandlerView(t *testing.T) {
	f := newFixture(t)
	seed(t, f)
	r := newRouter(f.svc)

	w := do(r, http.MethodGet, "/api/v1/view?user=A&wine=Riesling&category=Rating", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	rating := body["rating"].(map[string]interface{})
	assert.NotNil(t, rating["chart"])
	assert.NotNil(t, rating["comparison"])
	assert.NotNil(t, rating["read"])

	w = do(r, http.MethodGet, "/api/v1/view?category=Bouquet", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandlerRegenerate(t *testing.T) {
	f := newFixture(t)
	seed(t, f)
	r := newRouter(f.svc)

	w := do(r, http.MethodPost, "/api/v1/view/regenerate", `{"wine":"Riesling"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Riesling", body["selection"].(map[string]interface{})["wine"])
	assert.Equal(t, 1, f.sum.calls())
}

func TestHandlerStoreFailure(t *testing.T) {
	svc := NewService(failingStore{err: errors.New("quota exhausted")}, nil, testWines, nil)
	w := do(newRouter(svc), http.MethodGet, "/api/v1/records", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "quota exhausted", decode(t, w)["message"])
}
