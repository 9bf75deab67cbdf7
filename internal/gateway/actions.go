package gateway

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/transform"
)

// InterpretActions godoc
// @Summary Interpret a chat command
// @Description Translate a free-text message into transform actions. Every status returns {reply, actions}.
// @Tags commands
// @Accept json
// @Produce json
// @Param request body models.CommandRequest true "Chat message"
// @Success 200 {object} models.CommandResponse
// @Failure 400 {object} models.CommandResponse
// @Failure 500 {object} models.CommandResponse
// @Router /actions [post]
func (h *Handler) InterpretActions(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "gateway.interpret_actions")
	defer span.End()

	// A body that is not {"message": string} is treated as an empty message.
	var req models.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Message = ""
	}

	resp, err := h.commands.Interpret(ctx, req.Message)
	if err != nil {
		span.RecordError(err)
		var cmdErr *models.CommandError
		if errors.As(err, &cmdErr) {
			span.SetAttributes(attribute.Int("http.status_code", cmdErr.Status))
			c.JSON(cmdErr.Status, cmdErr.Response())
			return
		}
		h.logger.Error("command interpretation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.CommandResponse{
			Reply:   models.ReplyServiceFailed,
			Actions: transform.Actions{},
		})
		return
	}

	span.SetAttributes(attribute.Int("actions.count", len(resp.Actions)))
	c.JSON(http.StatusOK, resp)
}
