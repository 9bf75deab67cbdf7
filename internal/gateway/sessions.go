package gateway

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/chat"
	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/session"
	"github.com/tektai/ar-viewer/internal/transform"
)

// CreateSessionRequest opens a viewer session. ImmersiveAR is the client's
// answer to the AR capability probe.
type CreateSessionRequest struct {
	ModelID     string `json:"model_id"`
	ImmersiveAR bool   `json:"immersive_ar"`
}

// CreateSessionResponse is the answer of POST /api/sessions
type CreateSessionResponse struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Snapshot  session.Snapshot `json:"snapshot"`
}

// HitTestRequest reports the current surface hit, or null when none.
type HitTestRequest struct {
	Point *transform.Vec3 `json:"point"`
}

// TransformRequest carries a full transform from a gizmo or nudge.
type TransformRequest struct {
	Transform *transform.State `json:"transform" binding:"required"`
}

// ModeRequest selects the transform tool.
type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

// InfoRequest opens or closes the info panel.
type InfoRequest struct {
	Open bool `json:"open"`
}

// ChatRequest is one chat submission.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the outcome of a chat submission.
type ChatResponse struct {
	Result   chat.Result      `json:"result"`
	Snapshot session.Snapshot `json:"snapshot"`
}

// TranscriptResponse lists the chat history of a session.
type TranscriptResponse struct {
	Messages []chat.Message `json:"messages"`
	Sending  bool           `json:"sending"`
}

// lookupSession resolves :id or writes a 404.
func (h *Handler) lookupSession(c *gin.Context) (*session.Session, bool) {
	s, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.respondDomainError(c, err)
		return nil, false
	}
	return s, true
}

// sessionOp runs op against the session controller and answers with the
// resulting snapshot.
func (h *Handler) sessionOp(c *gin.Context, name string, op func(ctx context.Context, ctrl *session.Controller) error) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "gateway.session."+name)
	defer span.End()
	span.SetAttributes(attribute.String("session.id", s.ID))

	if err := op(ctx, s.Controller); err != nil {
		span.RecordError(err)
		h.respondDomainError(c, err)
		return
	}
	h.respondSnapshot(ctx, c, s.Controller)
}

func (h *Handler) respondSnapshot(ctx context.Context, c *gin.Context, ctrl *session.Controller) {
	snap, err := ctrl.Snapshot(ctx)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// CreateSession godoc
// @Summary Open a viewer session
// @Description Open a session for a model. The AR scene is only available when immersive_ar is true.
// @Tags sessions
// @Accept json
// @Produce json
// @Param request body CreateSessionRequest false "Session options"
// @Success 201 {object} CreateSessionResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions [post]
func (h *Handler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
			return
		}
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "gateway.session.create")
	defer span.End()

	s, err := h.sessions.Create(ctx, session.CreateParams{
		ModelID: req.ModelID,
		Probe:   session.StaticProbe(req.ImmersiveAR),
	})
	if err != nil {
		span.RecordError(err)
		h.respondDomainError(c, err)
		return
	}
	span.SetAttributes(attribute.String("session.id", s.ID))

	if err := s.Controller.WaitReady(ctx); err != nil {
		h.respondDomainError(c, err)
		return
	}
	snap, err := s.Controller.Snapshot(ctx)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, CreateSessionResponse{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		Snapshot:  snap,
	})
}

// GetSession godoc
// @Summary Get session snapshot
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id} [get]
func (h *Handler) GetSession(c *gin.Context) {
	h.sessionOp(c, "get", func(context.Context, *session.Controller) error { return nil })
}

// DeleteSession godoc
// @Summary Close a session
// @Description Close a session and abort its in-flight chat request
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *Handler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// HitTest godoc
// @Summary Report AR surface hit
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body HitTestRequest true "Hit point, null when no surface"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/placement/hit-test [post]
func (h *Handler) HitTest(c *gin.Context) {
	var req HitTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}
	h.sessionOp(c, "hit_test", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.HitTest(ctx, req.Point)
	})
}

// SelectPlacement godoc
// @Summary Place the object at the current hit
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/placement/select [post]
func (h *Handler) SelectPlacement(c *gin.Context) {
	h.sessionOp(c, "select", func(ctx context.Context, ctrl *session.Controller) error {
		_, err := ctrl.Select(ctx)
		return err
	})
}

// BeginDrag godoc
// @Summary Start a gizmo drag
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/drag/start [post]
func (h *Handler) BeginDrag(c *gin.Context) {
	h.sessionOp(c, "drag_start", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.BeginDrag(ctx)
	})
}

// Drag godoc
// @Summary Move the gizmo
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body TransformRequest true "Gizmo target"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/drag [post]
func (h *Handler) Drag(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}
	h.sessionOp(c, "drag", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Drag(ctx, *req.Transform)
	})
}

// EndDrag godoc
// @Summary Finish a gizmo drag and commit the transform
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/drag/end [post]
func (h *Handler) EndDrag(c *gin.Context) {
	h.sessionOp(c, "drag_end", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.EndDrag(ctx)
	})
}

// Nudge godoc
// @Summary Change the object outside a drag
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body TransformRequest true "New transform"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/nudge [post]
func (h *Handler) Nudge(c *gin.Context) {
	var req TransformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}
	h.sessionOp(c, "nudge", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Nudge(ctx, *req.Transform)
	})
}

// ResetSession godoc
// @Summary Reset the object
// @Description Restore the default transform and clear the placement
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Router /sessions/{id}/reset [post]
func (h *Handler) ResetSession(c *gin.Context) {
	h.sessionOp(c, "reset", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Reset(ctx)
	})
}

// Recenter godoc
// @Summary Recenter the object
// @Description Restore the transform captured at placement
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Router /sessions/{id}/recenter [post]
func (h *Handler) Recenter(c *gin.Context) {
	h.sessionOp(c, "recenter", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.Recenter(ctx)
	})
}

// SetMode godoc
// @Summary Select the transform tool
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ModeRequest true "translate, rotate or scale"
// @Success 200 {object} session.Snapshot
// @Failure 400 {object} models.ErrorResponse
// @Router /sessions/{id}/mode [put]
func (h *Handler) SetMode(c *gin.Context) {
	var req ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}
	mode, err := scene.ParseMode(req.Mode)
	if err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeValidationFailed, err.Error())
		return
	}
	h.sessionOp(c, "mode", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.SetMode(ctx, mode)
	})
}

// SetInfo godoc
// @Summary Open or close the info panel
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body InfoRequest true "Panel state"
// @Success 200 {object} session.Snapshot
// @Router /sessions/{id}/info [put]
func (h *Handler) SetInfo(c *gin.Context) {
	var req InfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}
	h.sessionOp(c, "info", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.SetInfoOpen(ctx, req.Open)
	})
}

// EnterAR godoc
// @Summary Enter the AR scene
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/ar/enter [post]
func (h *Handler) EnterAR(c *gin.Context) {
	h.sessionOp(c, "ar_enter", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.EnterAR(ctx)
	})
}

// ExitAR godoc
// @Summary Leave the AR scene
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} session.Snapshot
// @Router /sessions/{id}/ar/exit [post]
func (h *Handler) ExitAR(c *gin.Context) {
	h.sessionOp(c, "ar_exit", func(ctx context.Context, ctrl *session.Controller) error {
		return ctrl.ExitAR(ctx)
	})
}

// Chat godoc
// @Summary Send a chat command
// @Description Interpret a message and apply the resulting actions to the session
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body ChatRequest true "Message"
// @Success 200 {object} ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /sessions/{id}/chat [post]
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, models.ErrCodeInvalidRequest, "Invalid request")
		return
	}
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "gateway.session.chat")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", s.ID))

	result, err := s.Chat.Submit(ctx, req.Message)
	if err != nil {
		span.RecordError(err)
		h.respondDomainError(c, err)
		return
	}
	span.SetAttributes(attribute.Int("actions.count", len(result.Actions)))
	if result.Reply != nil && result.Reply.IsError {
		h.logger.Warn("chat reply is an error", zap.String("session_id", s.ID), zap.String("reply", result.Reply.Text))
	}

	snap, err := s.Controller.Snapshot(ctx)
	if err != nil {
		h.respondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ChatResponse{Result: result, Snapshot: snap})
}

// Transcript godoc
// @Summary Chat transcript
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} TranscriptResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /sessions/{id}/transcript [get]
func (h *Handler) Transcript(c *gin.Context) {
	s, ok := h.lookupSession(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, TranscriptResponse{
		Messages: s.Chat.Transcript(),
		Sending:  s.Chat.Sending(),
	})
}
