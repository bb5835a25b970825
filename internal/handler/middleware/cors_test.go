//go:build unit

package middleware_test

import (
	"io"
	"log/slog"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"

	"booking-pricing/internal/handler/middleware"
	"booking-pricing/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsEngine(cfg config.CORSConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(middleware.NewCORSMiddleware(cfg, slog.New(slog.NewTextHandler(io.Discard, nil))))
	engine.POST("/api/booking-pricing", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func TestNewCORSMiddleware(t *testing.T) {
	t.Run("listed origin gets credentials and the request id exposed", func(t *testing.T) {
		cfg := config.NewTestConfig().CORS
		cfg.AllowCredentials = true

		req := nethttptest.NewRequest(http.MethodPost, "/api/booking-pricing", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := nethttptest.NewRecorder()
		corsEngine(cfg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
		assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), strings.ToLower(middleware.RequestIDHeader))
	})

	t.Run("unlisted origin is forbidden", func(t *testing.T) {
		req := nethttptest.NewRequest(http.MethodPost, "/api/booking-pricing", nil)
		req.Header.Set("Origin", "http://evil.example")
		rec := nethttptest.NewRecorder()
		corsEngine(config.NewTestConfig().CORS).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("wildcard allows any origin without credentials", func(t *testing.T) {
		cfg := config.NewTestConfig().CORS
		cfg.AllowOrigins = []string{"*"}
		cfg.AllowCredentials = true

		req := nethttptest.NewRequest(http.MethodPost, "/api/booking-pricing", nil)
		req.Header.Set("Origin", "http://partner.example")
		rec := nethttptest.NewRecorder()
		corsEngine(cfg).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"))
	})
}
