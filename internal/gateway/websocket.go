package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/session"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

var errInvalidEvent = errors.New("invalid event")

// SessionStream serves the WebSocket view of a session: the server pushes a
// snapshot after every change and the client drives the scene with events.
type SessionStream struct {
	sessions *session.Manager
	logger   *zap.Logger
	tracer   trace.Tracer
	upgrader websocket.Upgrader
}

// NewSessionStream creates a new session stream handler
func NewSessionStream(sessions *session.Manager, logger *zap.Logger) *SessionStream {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStream{
		sessions: sessions,
		logger:   logger,
		tracer:   otel.Tracer("session-stream"),
		upgrader: websocket.Upgrader{
			// TODO: restrict to the configured public URL once the viewer is served from a fixed origin
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			HandshakeTimeout: 10 * time.Second,
		},
	}
}

// Stream handles WebSocket /api/ws/sessions/:id
// @Summary Stream session snapshots
// @Description WebSocket endpoint. The server sends {type:"snapshot",data} after every change and {type:"error",error} when a client event fails. Clients send {type, point?, transform?, mode?}.
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 101 "Switching Protocols"
// @Failure 404 {object} models.ErrorResponse
// @Router /ws/sessions/{id} [get]
func (s *SessionStream) Stream(c *gin.Context) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		status, resp := classifyError(err)
		c.JSON(status, resp)
		return
	}

	ctx, span := s.tracer.Start(c.Request.Context(), "session_stream.stream")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", sess.ID))

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		span.RecordError(err)
		s.logger.Warn("failed to upgrade connection", zap.Error(err), zap.String("session_id", sess.ID))
		return
	}
	defer conn.Close()

	// The request context is not cancelled by the hijacked connection, so
	// the reader goroutine owns cancellation.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, unsubscribe, err := sess.Controller.Subscribe(ctx)
	if err != nil {
		span.RecordError(err)
		_, resp := classifyError(err)
		s.writeEvent(conn, models.ServerEvent{Type: models.EventTypeError, Error: &resp})
		return
	}
	defer unsubscribe()

	s.logger.Info("session stream opened", zap.String("session_id", sess.ID))

	failures := make(chan models.ErrorResponse, 8)
	go s.readLoop(ctx, cancel, conn, sess.Controller, failures)

	s.writeLoop(ctx, conn, updates, failures)
	s.logger.Info("session stream closed", zap.String("session_id", sess.ID))
}

func (s *SessionStream) readLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, ctrl *session.Controller, failures chan<- models.ErrorResponse) {
	defer cancel()

	conn.SetReadLimit(maxMessageSize)
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("session stream read error", zap.Error(err))
			}
			return
		}

		var event models.ClientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			s.fail(failures, models.ErrorResponse{Error: "malformed event", Code: models.ErrCodeInvalidRequest})
			continue
		}

		if err := dispatch(ctx, ctrl, event); err != nil {
			if errors.Is(err, errInvalidEvent) {
				s.fail(failures, models.ErrorResponse{Error: err.Error(), Code: models.ErrCodeInvalidRequest})
				continue
			}
			_, resp := classifyError(err)
			if resp.Code == models.ErrCodeSessionNotFound {
				return
			}
			s.fail(failures, resp)
		}
	}
}

// fail queues an error event, dropping it if the writer is behind.
func (s *SessionStream) fail(failures chan<- models.ErrorResponse, resp models.ErrorResponse) {
	select {
	case failures <- resp:
	default:
	}
}

func (s *SessionStream) writeLoop(ctx context.Context, conn *websocket.Conn, updates <-chan session.Snapshot, failures <-chan models.ErrorResponse) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"))
				return
			}
			data, err := json.Marshal(snap)
			if err != nil {
				s.logger.Error("failed to encode snapshot", zap.Error(err))
				continue
			}
			if err := s.writeEvent(conn, models.ServerEvent{Type: models.EventTypeSnapshot, Data: data}); err != nil {
				return
			}
		case resp := <-failures:
			if err := s.writeEvent(conn, models.ServerEvent{Type: models.EventTypeError, Error: &resp}); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-ctx.Done():
			return
		}
	}
}

func (s *SessionStream) writeEvent(conn *websocket.Conn, event models.ServerEvent) error {
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(event); err != nil {
		s.logger.Debug("session stream write failed", zap.Error(err))
		return err
	}
	return nil
}

// dispatch applies one client event to the controller.
func dispatch(ctx context.Context, ctrl *session.Controller, event models.ClientEvent) error {
	switch event.Type {
	case models.EventTypeHitTest:
		return ctrl.HitTest(ctx, event.Point)
	case models.EventTypeSelect:
		_, err := ctrl.Select(ctx)
		return err
	case models.EventTypeDragStart:
		return ctrl.BeginDrag(ctx)
	case models.EventTypeDrag:
		if event.Transform == nil {
			return fmt.Errorf("%w: %s requires a transform", errInvalidEvent, event.Type)
		}
		return ctrl.Drag(ctx, *event.Transform)
	case models.EventTypeDragEnd:
		return ctrl.EndDrag(ctx)
	case models.EventTypeNudge:
		if event.Transform == nil {
			return fmt.Errorf("%w: %s requires a transform", errInvalidEvent, event.Type)
		}
		return ctrl.Nudge(ctx, *event.Transform)
	case models.EventTypeMode:
		mode, err := scene.ParseMode(event.Mode)
		if err != nil {
			return fmt.Errorf("%w: %v", errInvalidEvent, err)
		}
		return ctrl.SetMode(ctx, mode)
	case models.EventTypeReset:
		return ctrl.Reset(ctx)
	case models.EventTypeRecenter:
		return ctrl.Recenter(ctx)
	}
	return fmt.Errorf("%w: unknown type %q", errInvalidEvent, event.Type)
}
