package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe_backend/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	auth := r.Group("/", JWTAuthMiddleware(testSecret))
	auth.GET("/me", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id})
	})
	auth.DELETE("/user/:id", SelfOnlyMiddleware("id"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newTestRouter()
	token, err := utils.GenerateJWT(7, testSecret)
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/me", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(r, http.MethodGet, "/me", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestSelfOnlyMiddleware(t *testing.T) {
	r := newTestRouter()
	token, err := utils.GenerateJWT(7, testSecret)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, doRequest(r, http.MethodDelete, "/user/7", token).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodDelete, "/user/8", token).Code)
	assert.Equal(t, http.StatusBadRequest, doRequest(r, http.MethodDelete, "/user/abc", token).Code)
}

func TestRequestLoggerKeepsIncomingID(t *testing.T) {
	r := newTestRouter()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	r := gin.New()
	r.Use(m.Handler())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	doRequest(r, http.MethodGet, "/ping/1", "")
	doRequest(r, http.MethodGet, "/ping/2", "")
	doRequest(r, http.MethodGet, "/nowhere", "")

	families, err := reg.Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, mf := range families {
		if mf.GetName() != "recetas_http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			var route string
			for _, l := range metric.GetLabel() {
				if l.GetName() == "route" {
					route = l.GetValue()
				}
			}
			counts[route] += metric.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 2.0, counts["/ping/:id"])
	assert.Equal(t, 1.0, counts["unmatched"])
}
