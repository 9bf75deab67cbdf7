package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/tektai/ar-viewer/internal/auth"
	"github.com/tektai/ar-viewer/internal/models"
)

// ResolveShareResponse is the answer of GET /api/share/resolve
type ResolveShareResponse struct {
	ModelID string `json:"model_id"`
}

func (h *Handler) shareEnabled(c *gin.Context) bool {
	if h.share == nil {
		respondError(c, http.StatusServiceUnavailable, models.ErrCodeInternalError, "Sharing is not configured")
		return false
	}
	return true
}

// issueShare checks that the model exists and signs a link for it.
func (h *Handler) issueShare(c *gin.Context) (*auth.Share, bool) {
	if !h.shareEnabled(c) {
		return nil, false
	}
	ctx, span := h.tracer.Start(c.Request.Context(), "gateway.issue_share")
	defer span.End()

	modelID := c.Param("modelId")
	span.SetAttributes(attribute.String("model.id", modelID))

	if _, err := h.store.Get(ctx, modelID); err != nil {
		span.RecordError(err)
		h.respondDomainError(c, err)
		return nil, false
	}

	share, err := h.share.Issue(ctx, modelID)
	if err != nil {
		span.RecordError(err)
		h.respondDomainError(c, err)
		return nil, false
	}
	return share, true
}

// CreateShare godoc
// @Summary Create share link
// @Description Sign a share link that opens the viewer on a model
// @Tags share
// @Produce json
// @Param modelId path string true "Model ID"
// @Success 200 {object} auth.Share
// @Failure 404 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /share/{modelId} [get]
func (h *Handler) CreateShare(c *gin.Context) {
	share, ok := h.issueShare(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, share)
}

// ShareQRCode godoc
// @Summary Share link QR code
// @Description PNG QR code of a freshly signed share link
// @Tags share
// @Produce png
// @Param modelId path string true "Model ID"
// @Param size query int false "Edge length in pixels"
// @Success 200 {file} binary
// @Failure 404 {object} models.ErrorResponse
// @Router /share/{modelId}/qr.png [get]
func (h *Handler) ShareQRCode(c *gin.Context) {
	var q struct {
		Size int `form:"size" binding:"omitempty,min=64,max=1024"`
	}
	if err := c.ShouldBindQuery(&q); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "size must be between 64 and 1024")
		return
	}

	share, ok := h.issueShare(c)
	if !ok {
		return
	}

	png, err := auth.QRCode(share.URL, q.Size)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// ResolveShare godoc
// @Summary Resolve share token
// @Tags share
// @Produce json
// @Param token query string true "Share token"
// @Success 200 {object} ResolveShareResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /share/resolve [get]
func (h *Handler) ResolveShare(c *gin.Context) {
	if !h.shareEnabled(c) {
		return
	}
	token := c.Query("token")
	if token == "" {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "token is required")
		return
	}

	claims, err := h.share.Validate(c.Request.Context(), token)
	if err != nil {
		respondError(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, "Invalid or expired share link")
		return
	}
	c.JSON(http.StatusOK, ResolveShareResponse{ModelID: claims.ModelID})
}
