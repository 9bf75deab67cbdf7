package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/auth"
	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/chat"
	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/session"
)

// Handler handles HTTP requests for the gateway layer
type Handler struct {
	commands chat.Interpreter
	store    catalog.Store
	sessions *session.Manager
	share    *auth.ShareManager
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewHandler creates a new gateway handler. share may be nil, in which
// case share routes answer 503.
func NewHandler(commands chat.Interpreter, store catalog.Store, sessions *session.Manager, share *auth.ShareManager, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		commands: commands,
		store:    store,
		sessions: sessions,
		share:    share,
		logger:   logger,
		tracer:   otel.Tracer("gateway"),
	}
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{Error: message, Code: code})
}

// classifyError maps sentinel errors of the lower layers to an HTTP status
// and API error. Unknown errors are internal.
func classifyError(err error) (int, models.ErrorResponse) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, session.ErrClosed),
		errors.Is(err, chat.ErrClosed):
		return http.StatusNotFound, models.ErrorResponse{Error: "Session not found", Code: models.ErrCodeSessionNotFound}
	case errors.Is(err, catalog.ErrModelNotFound):
		return http.StatusNotFound, models.ErrorResponse{Error: "Model not found", Code: models.ErrCodeModelNotFound}
	case errors.Is(err, catalog.ErrInvalidPatch):
		return http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeValidationFailed}
	case errors.Is(err, session.ErrCapabilityPending):
		return http.StatusConflict, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeCapabilityPending}
	case errors.Is(err, session.ErrARUnsupported):
		return http.StatusConflict, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeARUnsupported}
	case errors.Is(err, scene.ErrNotAttached),
		errors.Is(err, scene.ErrNotDragging),
		errors.Is(err, scene.ErrNotSearching),
		errors.Is(err, scene.ErrNoHitTest):
		return http.StatusConflict, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeInvalidSceneAction}
	case errors.Is(err, chat.ErrEmptyMessage):
		return http.StatusBadRequest, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeInvalidRequest}
	case errors.Is(err, chat.ErrBusy):
		return http.StatusConflict, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeBusy}
	}
	return http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error", Code: models.ErrCodeInternalError}
}

func (h *Handler) respondDomainError(c *gin.Context, err error) {
	status, resp := classifyError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.Error(err), zap.String("path", c.FullPath()))
	}
	c.JSON(status, resp)
}

// Health godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
