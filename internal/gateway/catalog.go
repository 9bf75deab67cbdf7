package gateway

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/auth"
	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/models"
)

// ListModels godoc
// @Summary List models
// @Description List every model of the gallery in display order
// @Tags models
// @Produce json
// @Success 200 {array} catalog.Model
// @Failure 500 {object} models.ErrorResponse
// @Router /models [get]
func (h *Handler) ListModels(c *gin.Context) {
	list, err := h.store.List(c.Request.Context())
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// GetModel godoc
// @Summary Get model
// @Description Get one model. A share token in the query must match the model.
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Param share query string false "Share token"
// @Success 200 {object} catalog.Model
// @Failure 401 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /models/{id} [get]
func (h *Handler) GetModel(c *gin.Context) {
	m, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	if modelID, shared := auth.SharedModelID(c); shared {
		// Shared views carry a bearer token in the URL.
		c.Header("Cache-Control", "private, no-store")
		h.logger.Info("model opened through share link", zap.String("model_id", modelID))
	}
	c.JSON(http.StatusOK, m)
}

// UpdateModel godoc
// @Summary Update model
// @Description Overwrite the given fields of a model
// @Tags models
// @Accept json
// @Produce json
// @Param id path string true "Model ID"
// @Param request body catalog.Patch true "Fields to update"
// @Success 200 {object} catalog.Model
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /models/{id} [patch]
func (h *Handler) UpdateModel(c *gin.Context) {
	var patch catalog.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}

	m, err := h.store.Update(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

// DeleteModel godoc
// @Summary Delete model
// @Tags models
// @Param id path string true "Model ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /models/{id} [delete]
func (h *Handler) DeleteModel(c *gin.Context) {
	if err := h.store.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
