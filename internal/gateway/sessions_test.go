package gateway

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tektai/ar-viewer/internal/chat"
	"github.com/tektai/ar-viewer/internal/models"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/session"
	"github.com/tektai/ar-viewer/internal/transform"
)

func createSession(t *testing.T, s *testServer, req CreateSessionRequest) CreateSessionResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/sessions", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[CreateSessionResponse](t, w)
}

func TestSessions_CreateDesktop(t *testing.T) {
	s := newTestServer(t, false)

	created := createSession(t, s, CreateSessionRequest{ModelID: "1"})

	snap := created.Snapshot
	assert.Equal(t, created.ID, snap.ID)
	assert.Equal(t, "1", snap.ModelID)
	assert.Equal(t, session.ARUnsupported, snap.ARStatus)
	assert.Equal(t, transform.Default(), snap.State)
	assert.True(t, snap.RecenterEnabled)
	require.NotNil(t, snap.Scene)
	assert.Equal(t, scene.Desktop, snap.Scene.Variant)
	assert.Equal(t, scene.PhaseAttached, snap.Scene.Phase)

	w := s.do(t, http.MethodGet, "/api/sessions/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, created.ID, decode[session.Snapshot](t, w).ID)
}

func TestSessions_CreateErrors(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/sessions", CreateSessionRequest{ModelID: "99"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, models.ErrCodeModelNotFound, decode[models.ErrorResponse](t, w).Code)

	w = s.do(t, http.MethodPost, "/api/sessions", `{"model_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/sessions", nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestSessions_DesktopEditing(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s, CreateSessionRequest{}).ID
	base := "/api/sessions/" + id

	target := transform.State{
		Position: transform.Vec3{1, 2, 3},
		Rotation: transform.Vec3{0, 0.5, 0},
		Scale:    transform.Vec3{2, 2, 2},
	}

	w := s.do(t, http.MethodPost, base+"/nudge", TransformRequest{Transform: &target})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, target, decode[session.Snapshot](t, w).State)

	w = s.do(t, http.MethodPut, base+"/mode", ModeRequest{Mode: "rotate"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, scene.ModeRotate, decode[session.Snapshot](t, w).Mode)

	w = s.do(t, http.MethodPost, base+"/drag/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, scene.PhaseDragging, decode[session.Snapshot](t, w).Scene.Phase)

	dragged := target
	dragged.Rotation = transform.Vec3{0, 1.5, 0}
	w = s.do(t, http.MethodPost, base+"/drag", TransformRequest{Transform: &dragged})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, target, decode[session.Snapshot](t, w).State)

	w = s.do(t, http.MethodPost, base+"/drag/end", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, dragged, decode[session.Snapshot](t, w).State)

	w = s.do(t, http.MethodPost, base+"/reset", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[session.Snapshot](t, w)
	assert.Equal(t, transform.Default(), snap.State)
	assert.Equal(t, uint64(1), snap.ResetCount)

	w = s.do(t, http.MethodPost, base+"/recenter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, transform.Default(), decode[session.Snapshot](t, w).State)
}

func TestSessions_BadRequests(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s, CreateSessionRequest{}).ID
	base := "/api/sessions/" + id

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"unknown mode", http.MethodPut, base + "/mode", ModeRequest{Mode: "shear"}, http.StatusBadRequest, models.ErrCodeValidationFailed},
		{"drag without transform", http.MethodPost, base + "/drag", `{}`, http.StatusBadRequest, models.ErrCodeInvalidRequest},
		{"drag end without drag", http.MethodPost, base + "/drag/end", nil, http.StatusConflict, models.ErrCodeInvalidSceneAction},
		{"AR unsupported", http.MethodPost, base + "/ar/enter", nil, http.StatusConflict, models.ErrCodeARUnsupported},
		{"empty chat", http.MethodPost, base + "/chat", ChatRequest{Message: "  "}, http.StatusBadRequest, models.ErrCodeInvalidRequest},
		{"unknown session", http.MethodPost, "/api/sessions/nope/reset", nil, http.StatusNotFound, models.ErrCodeSessionNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			assert.Equal(t, tt.wantCode, decode[models.ErrorResponse](t, w).Code)
		})
	}
}

func TestSessions_ARPlacement(t *testing.T) {
	s := newTestServer(t, false)
	created := createSession(t, s, CreateSessionRequest{ModelID: "2", ImmersiveAR: true})
	base := "/api/sessions/" + created.ID

	assert.Equal(t, session.ARSupported, created.Snapshot.ARStatus)
	assert.False(t, created.Snapshot.RecenterEnabled)

	w := s.do(t, http.MethodPost, base+"/ar/enter", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[session.Snapshot](t, w)
	assert.True(t, snap.Presenting)
	assert.Equal(t, scene.AR, snap.Scene.Variant)
	assert.Equal(t, scene.PhaseSearching, snap.Scene.Phase)

	w = s.do(t, http.MethodPost, base+"/placement/select", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(t, http.MethodPost, base+"/placement/hit-test", HitTestRequest{Point: &transform.Vec3{0.5, 0, -1}})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, base+"/placement/select", nil)
	require.Equal(t, http.StatusOK, w.Code)
	snap = decode[session.Snapshot](t, w)
	assert.True(t, snap.HasPlaced)
	assert.True(t, snap.RecenterEnabled)
	assert.Equal(t, transform.Vec3{0.5, 0, -1}, snap.State.Position)
	assert.Equal(t, snap.State, snap.Initial)

	w = s.do(t, http.MethodPost, base+"/ar/exit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[session.Snapshot](t, w).Presenting)
}

func TestSessions_ChatAndTranscript(t *testing.T) {
	s := newTestServer(t, false)
	s.commands.resp = &models.CommandResponse{
		Reply:   "Dobrando o tamanho.",
		Actions: transform.Actions{transform.Scale{Factor: 2}},
	}
	id := createSession(t, s, CreateSessionRequest{}).ID
	base := "/api/sessions/" + id

	w := s.do(t, http.MethodPost, base+"/chat", ChatRequest{Message: "double its size"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decode[ChatResponse](t, w)
	assert.Equal(t, transform.Vec3{2, 2, 2}, resp.Snapshot.State.Scale)
	require.NotNil(t, resp.Result.Reply)
	assert.Equal(t, "Dobrando o tamanho.", resp.Result.Reply.Text)

	w = s.do(t, http.MethodGet, base+"/transcript", nil)
	require.Equal(t, http.StatusOK, w.Code)
	transcript := decode[TranscriptResponse](t, w)
	require.Len(t, transcript.Messages, 3)
	assert.Equal(t, chat.IntroText, transcript.Messages[0].Text)
	assert.Equal(t, chat.RoleUser, transcript.Messages[1].Role)
	assert.Equal(t, "double its size", transcript.Messages[1].Text)
	assert.False(t, transcript.Sending)
}

func TestSessions_ChatError(t *testing.T) {
	s := newTestServer(t, false)
	s.commands.resp = nil
	s.commands.err = &models.CommandError{Status: http.StatusBadRequest, Reply: models.ReplyMissingMessage}
	id := createSession(t, s, CreateSessionRequest{}).ID

	w := s.do(t, http.MethodPost, "/api/sessions/"+id+"/chat", ChatRequest{Message: "hmm"})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode[ChatResponse](t, w)
	require.NotNil(t, resp.Result.Reply)
	assert.True(t, resp.Result.Reply.IsError)
	assert.Equal(t, models.ReplyMissingMessage, resp.Result.Reply.Text)
	assert.Equal(t, transform.Default(), resp.Snapshot.State)
}

func TestSessions_Delete(t *testing.T) {
	s := newTestServer(t, false)
	id := createSession(t, s, CreateSessionRequest{}).ID

	w := s.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
