package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"resumeiq-backend/internal/session"
	"resumeiq-backend/internal/shared/config"
	"resumeiq-backend/internal/shared/metrics"
	"resumeiq-backend/internal/shared/server/middleware"
	"resumeiq-backend/internal/shared/server/respond"
)

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(cfg config.Config, svc *session.Service) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.OK(c, gin.H{"ok": true})
	})

	session.NewHandler(svc).RegisterRoutes(api)

	if cfg.StaticDir != "" {
		registerStatic(r, cfg.StaticDir)
	}

	return r
}

// registerStatic serves the SPA bundle: real files directly, everything
// else falls back to index.html so client-side routing works.
func registerStatic(r *gin.Engine, dir string) {
	r.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}
		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if fileExists(path) {
			c.File(path)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
