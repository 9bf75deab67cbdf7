package gateway

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/auth"
	"github.com/tektai/ar-viewer/internal/logging"
	"github.com/tektai/ar-viewer/internal/models"
)

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Logger *zap.Logger
	// StaticDir holds the built viewer; client routes serve its index.html.
	StaticDir string
	// Ready is consulted by /ready. Nil means always ready.
	Ready ReadinessCheck
}

// clientRoutes are the viewer's own pages.
var clientRoutes = []string{"/", "/models", "/render", "/render/:modelId", "/share", "/share/:modelId"}

// NewRouter wires every route of the server.
func NewRouter(h *Handler, stream *SessionStream, opts RouterOptions) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(logging.Recovery(logger), logging.Middleware(logger), cors())

	router.GET("/health", h.Health)
	router.GET("/ready", readyHandler(opts.Ready))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api")
	api.GET("/health", h.Health)

	api.POST("/actions", h.InterpretActions)

	api.GET("/models", h.ListModels)
	if h.share != nil {
		api.GET("/models/:id", auth.OptionalShare(h.share, "id", logger), h.GetModel)
	} else {
		api.GET("/models/:id", h.GetModel)
	}
	api.PATCH("/models/:id", h.UpdateModel)
	api.DELETE("/models/:id", h.DeleteModel)

	api.GET("/share/resolve", h.ResolveShare)
	api.GET("/share/:modelId", h.CreateShare)
	api.GET("/share/:modelId/qr.png", h.ShareQRCode)

	sessions := api.Group("/sessions")
	sessions.POST("", h.CreateSession)
	sessions.GET("/:id", h.GetSession)
	sessions.DELETE("/:id", h.DeleteSession)
	sessions.POST("/:id/placement/hit-test", h.HitTest)
	sessions.POST("/:id/placement/select", h.SelectPlacement)
	sessions.POST("/:id/drag/start", h.BeginDrag)
	sessions.POST("/:id/drag", h.Drag)
	sessions.POST("/:id/drag/end", h.EndDrag)
	sessions.POST("/:id/nudge", h.Nudge)
	sessions.POST("/:id/reset", h.ResetSession)
	sessions.POST("/:id/recenter", h.Recenter)
	sessions.PUT("/:id/mode", h.SetMode)
	sessions.PUT("/:id/info", h.SetInfo)
	sessions.POST("/:id/ar/enter", h.EnterAR)
	sessions.POST("/:id/ar/exit", h.ExitAR)
	sessions.POST("/:id/chat", h.Chat)
	sessions.GET("/:id/transcript", h.Transcript)

	api.GET("/ws/sessions/:id", stream.Stream)

	if opts.StaticDir != "" {
		registerClient(router, opts.StaticDir)
	}
	router.NoRoute(notFound(opts.StaticDir))
	return router
}

func readyHandler(check ReadinessCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		if check != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}

// registerClient serves the single page app: known client routes return
// index.html.
func registerClient(router *gin.Engine, dir string) {
	index := filepath.Join(dir, "index.html")
	serveIndex := func(c *gin.Context) {
		c.File(index)
	}
	for _, route := range clientRoutes {
		router.GET(route, serveIndex)
	}
}

// notFound answers unmatched routes with a JSON 404. When dir is set, GET
// requests outside /api are first looked up as files in dir.
func notFound(dir string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if dir != "" && c.Request.Method == http.MethodGet && !strings.HasPrefix(c.Request.URL.Path, "/api/") {
			name := filepath.Join(dir, filepath.FromSlash(filepath.Clean("/"+c.Request.URL.Path)))
			if info, err := os.Stat(name); err == nil && !info.IsDir() {
				c.File(name)
				return
			}
		}
		respondError(c, http.StatusNotFound, models.ErrCodeNotFound, "Not found")
	}
}

// cors allows the viewer to call the API from its dev server.
func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, traceparent")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
