package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/chat"
)

// Session pairs a controller with its chat pipeline.
type Session struct {
	ID         string
	CreatedAt  time.Time
	Controller *Controller
	Chat       *chat.Pipeline
}

// CreateParams describes a new session.
type CreateParams struct {
	ModelID string
	Probe   Prober
}

// Manager is the registry of open sessions.
type Manager struct {
	store       catalog.Store
	interpreter chat.Interpreter
	opts        []Option
	o           options

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session registry. interpreter backs every chat pipeline.
func NewManager(store catalog.Store, interpreter chat.Interpreter, opts ...Option) *Manager {
	o := newOptions(opts)
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	return &Manager{
		store:       store,
		interpreter: interpreter,
		opts:        opts,
		o:           o,
		sessions:    make(map[string]*Session),
	}
}

// Create opens a session for the given model. An empty model id opens a
// session without a model config.
func (m *Manager) Create(ctx context.Context, params CreateParams) (*Session, error) {
	var model *catalog.Model
	if params.ModelID != "" {
		found, err := m.store.Get(ctx, params.ModelID)
		if err != nil {
			return nil, fmt.Errorf("failed to load model %s: %w", params.ModelID, err)
		}
		model = &found
	}

	probe := params.Probe
	if probe == nil {
		probe = StaticProbe(false)
	}

	id := m.o.newID()
	controller := NewController(id, model, probe, m.opts...)
	pipeline := chat.NewPipeline(m.interpreter, controller,
		append([]chat.Option{chat.WithLogger(m.o.logger.With(zap.String("session_id", id)))}, m.o.chatOpts...)...,
	)

	s := &Session{
		ID:         id,
		CreatedAt:  m.o.now(),
		Controller: controller,
		Chat:       pipeline,
	}

	m.mu.Lock()
	m.sessions[id] = s
	m.mu.Unlock()

	m.o.recorder.SessionOpened(ctx, params.ModelID)
	m.o.logger.Info("session opened",
		zap.String("session_id", id),
		zap.String("model_id", params.ModelID),
	)
	return s, nil
}

// Get returns an open session.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Delete closes a session and aborts its in-flight chat request.
func (m *Manager) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	m.close(ctx, s)
	return nil
}

// Len returns the number of open sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close closes every open session.
func (m *Manager) Close(ctx context.Context) {
	m.mu.Lock()
	sessions := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		m.close(ctx, s)
	}
}

func (m *Manager) close(ctx context.Context, s *Session) {
	s.Chat.Close()
	s.Controller.Close()
	lifetime := m.o.now().Sub(s.CreatedAt)
	m.o.recorder.SessionClosed(ctx, lifetime)
	m.o.logger.Info("session closed",
		zap.String("session_id", s.ID),
		zap.Duration("lifetime", lifetime),
	)
}
