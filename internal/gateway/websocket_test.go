package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/session"
	"github.com/tektai/ar-viewer/internal/transform"
)

func dialSession(t *testing.T, server *httptest.Server, id string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/api/ws/sessions/" + id
	return websocket.DefaultDialer.Dial(url, nil)
}

func readEvent(t *testing.T, conn *websocket.Conn) models.ServerEvent {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var event models.ServerEvent
	require.NoError(t, conn.ReadJSON(&event))
	return event
}

func readSnapshot(t *testing.T, conn *websocket.Conn) session.Snapshot {
	t.Helper()
	event := readEvent(t, conn)
	require.Equal(t, models.EventTypeSnapshot, event.Type)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(event.Data, &snap))
	return snap
}

func TestSessionStream(t *testing.T) {
	s := newTestServer(t, false)
	server := httptest.NewServer(s.router)
	defer server.Close()

	id := createSession(t, s, CreateSessionRequest{ModelID: "1"}).ID

	conn, _, err := dialSession(t, server, id)
	require.NoError(t, err)
	defer conn.Close()

	first := readSnapshot(t, conn)
	assert.Equal(t, id, first.ID)
	assert.Equal(t, transform.Default(), first.State)

	t.Run("reset", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(models.ClientEvent{Type: models.EventTypeReset}))
		snap := readSnapshot(t, conn)
		assert.Equal(t, uint64(1), snap.ResetCount)
	})

	t.Run("mode", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(models.ClientEvent{Type: models.EventTypeMode, Mode: "scale"}))
		snap := readSnapshot(t, conn)
		assert.Equal(t, scene.ModeScale, snap.Mode)
	})

	t.Run("unknown event", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"spin"}`)))
		event := readEvent(t, conn)
		assert.Equal(t, models.EventTypeError, event.Type)
		require.NotNil(t, event.Error)
		assert.Equal(t, models.ErrCodeInvalidRequest, event.Error.Code)
	})

	t.Run("malformed event", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"type":`)))
		event := readEvent(t, conn)
		assert.Equal(t, models.EventTypeError, event.Type)
		require.NotNil(t, event.Error)
		assert.Equal(t, "malformed event", event.Error.Error)
	})

	t.Run("scene error", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(models.ClientEvent{Type: models.EventTypeDragEnd}))
		event := readEvent(t, conn)
		assert.Equal(t, models.EventTypeError, event.Type)
		require.NotNil(t, event.Error)
		assert.Equal(t, models.ErrCodeInvalidSceneAction, event.Error.Code)
	})

	t.Run("changes from the REST API are pushed", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/sessions/"+id+"/nudge", TransformRequest{Transform: &transform.State{
			Position: transform.Vec3{0, 1, 0},
			Scale:    transform.Vec3{1, 1, 1},
		}})
		require.Equal(t, http.StatusOK, w.Code)
		snap := readSnapshot(t, conn)
		assert.Equal(t, transform.Vec3{0, 1, 0}, snap.State.Position)
	})

	t.Run("session deleted", func(t *testing.T) {
		require.NoError(t, s.sessions.Delete(context.Background(), id))
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		for {
			_, _, err := conn.ReadMessage()
			if err != nil {
				assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), err.Error())
				return
			}
		}
	})
}

func TestSessionStream_UnknownSession(t *testing.T) {
	s := newTestServer(t, false)
	server := httptest.NewServer(s.router)
	defer server.Close()

	_, resp, err := dialSession(t, server, "missing")
	require.ErrorIs(t, err, websocket.ErrBadHandshake)
	require.NotNil(t, resp)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
