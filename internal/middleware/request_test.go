package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"project-gallery-backend/internal/middleware"
)

func newRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": c.GetString(middleware.RequestIDKey)})
	})
	router.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
	})
	return router
}

func TestRequestID_Generated(t *testing.T) {
	router := newRouter(zap.NewNop())

	req, _ := http.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	requestID := w.Header().Get(middleware.RequestIDHeader)
	assert.NotEmpty(t, requestID)
	assert.Contains(t, w.Body.String(), requestID)
}

func TestRequestID_Propagated(t *testing.T) {
	router := newRouter(zap.NewNop())

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}

func TestCORS_AllowsAnyOrigin(t *testing.T) {
	router := newRouter(zap.NewNop())

	req, _ := http.NewRequest("GET", "/test", nil)
	req.Header.Set("Origin", "https://example.org")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_Preflight(t *testing.T) {
	router := newRouter(zap.NewNop())

	req, _ := http.NewRequest("OPTIONS", "/test", nil)
	req.Header.Set("Origin", "https://example.org")
	req.Header.Set("Access-Control-Request-Method", "DELETE")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestLogger_LevelByStatus(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	router := newRouter(zap.New(core))

	for _, path := range []string{"/test", "/boom"} {
		req, _ := http.NewRequest("GET", path, nil)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "http request", entries[0].Message)
		assert.Equal(t, "http server error", entries[1].Message)
		assert.Equal(t, int64(http.StatusInternalServerError), entries[1].ContextMap()["status"])
	}
}
