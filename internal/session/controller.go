package session

import (
	"context"
	"errors"
	"sync"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"github.com/tektai/ar-viewer/internal/catalog"
	"github.com/tektai/ar-viewer/internal/scene"
	"github.com/tektai/ar-viewer/internal/transform"
)

var (
	ErrSessionNotFound   = errors.New("session not found")
	ErrCapabilityPending = errors.New("AR capability check has not finished")
	ErrARUnsupported     = errors.New("immersive AR is not supported on this device")
	ErrClosed            = errors.New("session is closed")
)

// ARStatus is the result of the one-shot AR capability probe.
type ARStatus string

const (
	ARChecking    ARStatus = "checking"
	ARSupported   ARStatus = "supported"
	ARUnsupported ARStatus = "unsupported"
)

// Prober reports whether immersive AR is available. It runs once per session.
type Prober func(ctx context.Context) (bool, error)

// StaticProbe returns a Prober with a fixed answer, used when the client
// reports its own capability.
func StaticProbe(supported bool) Prober {
	return func(context.Context) (bool, error) {
		return supported, nil
	}
}

// Snapshot is a consistent view of a controller.
type Snapshot struct {
	ID              string          `json:"id"`
	ModelID         string          `json:"model_id,omitempty"`
	State           transform.State `json:"state"`
	Initial         transform.State `json:"initial"`
	HasPlaced       bool            `json:"has_placed"`
	ResetCount      uint64          `json:"reset_count"`
	Mode            scene.Mode      `json:"mode"`
	ARStatus        ARStatus        `json:"ar_status"`
	Presenting      bool            `json:"presenting"`
	InfoOpen        bool            `json:"info_open"`
	RecenterEnabled bool            `json:"recenter_enabled"`
	Scene           *SceneSnapshot  `json:"scene,omitempty"`
}

// SceneSnapshot describes the live adapter, if any.
type SceneSnapshot struct {
	Variant     scene.Variant    `json:"variant"`
	Phase       scene.Phase      `json:"phase"`
	Preview     *transform.Vec3  `json:"preview,omitempty"`
	Object      *transform.State `json:"object,omitempty"`
	Matrix      *mgl64.Mat4      `json:"matrix,omitempty"`
	GizmoShowsY bool             `json:"gizmo_shows_y"`
}

// Controller owns one viewer session: the canonical transform, the
// placement snapshot used by recenter, the reset generation and the scene
// adapter. All state is confined to the controller's loop.
type Controller struct {
	id      string
	model   *catalog.Model
	logger  *zap.Logger
	metrics Recorder
	loop    *Loop

	probeCancel context.CancelFunc
	ready       chan struct{}
	closeOnce   sync.Once

	state      transform.State
	initial    transform.State
	hasPlaced  bool
	resetCount uint64
	mode       scene.Mode
	arStatus   ARStatus
	presenting bool
	infoOpen   bool
	adapter    *scene.Adapter

	subMu  sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
}

// NewController starts a session. The AR probe runs in the background; no
// scene exists until it resolves.
func NewController(id string, model *catalog.Model, probe Prober, opts ...Option) *Controller {
	o := newOptions(opts)

	c := &Controller{
		id:       id,
		model:    model,
		logger:   o.logger.With(zap.String("session_id", id)),
		metrics:  o.recorder,
		loop:     NewLoop(),
		ready:    make(chan struct{}),
		state:    transform.Default(),
		initial:  transform.Default(),
		mode:     scene.ModeTranslate,
		arStatus: ARChecking,
		subs:     make(map[int]chan Snapshot),
	}

	probeCtx, cancel := context.WithCancel(context.Background())
	c.probeCancel = cancel
	go func() {
		supported, err := probe(probeCtx)
		if err != nil {
			c.logger.Warn("AR capability probe failed", zap.Error(err))
			supported = false
		}
		c.loop.Post(func() { c.resolveCapability(supported) })
	}()

	return c
}

func (c *Controller) ID() string { return c.id }

// Model returns the model config of the session, or nil.
func (c *Controller) Model() *catalog.Model { return c.model }

// Ready is closed once the AR capability is known.
func (c *Controller) Ready() <-chan struct{} { return c.ready }

// WaitReady blocks until the AR capability is known.
func (c *Controller) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-c.loop.Done():
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) resolveCapability(supported bool) {
	if c.arStatus != ARChecking {
		return
	}
	if supported {
		c.arStatus = ARSupported
	} else {
		c.arStatus = ARUnsupported
	}
	c.adapter = scene.NewDesktop(c.callbacks(), c.mode, c.resetCount, c.state)
	close(c.ready)
	c.logger.Info("AR capability resolved", zap.String("ar_status", string(c.arStatus)))
	c.publish()
}

func (c *Controller) callbacks() scene.Callbacks {
	return scene.Callbacks{
		OnPlacement:       c.placed,
		OnTransformChange: c.changed,
	}
}

// setState replaces the canonical state and pushes it to the scene.
func (c *Controller) setState(s transform.State) {
	c.state = s
	if c.adapter != nil {
		c.adapter.Sync(s)
	}
}

func (c *Controller) placed(s transform.State) {
	c.initial = s
	c.hasPlaced = true
	c.setState(s)
}

func (c *Controller) changed(s transform.State) {
	c.setState(s)
}

// do runs fn on the loop and publishes a snapshot when fn succeeds.
func (c *Controller) do(ctx context.Context, fn func() error) error {
	var opErr error
	if err := c.loop.Do(ctx, func() {
		if opErr = fn(); opErr == nil {
			c.publish()
		}
	}); err != nil {
		return err
	}
	return opErr
}

// withScene is do for operations that need a live adapter.
func (c *Controller) withScene(ctx context.Context, fn func(a *scene.Adapter) error) error {
	return c.do(ctx, func() error {
		if c.adapter == nil {
			return ErrCapabilityPending
		}
		return fn(c.adapter)
	})
}

// OnPlacement sets canonical and initial state and marks the object placed.
func (c *Controller) OnPlacement(ctx context.Context, s transform.State) error {
	return c.do(ctx, func() error {
		c.placed(s)
		return nil
	})
}

// OnTransformChange sets the canonical state only.
func (c *Controller) OnTransformChange(ctx context.Context, s transform.State) error {
	return c.do(ctx, func() error {
		c.changed(s)
		return nil
	})
}

// Reset restores the default transform, clears the placement and bumps
// the reset generation so the scene tears down its object.
func (c *Controller) Reset(ctx context.Context) error {
	return c.do(ctx, func() error {
		c.initial = transform.Default()
		c.hasPlaced = false
		c.resetCount++
		c.state = transform.Default()
		if c.adapter != nil {
			c.adapter.Reset(c.resetCount)
			c.adapter.Sync(c.state)
		}
		c.metrics.Reset(ctx)
		c.logger.Debug("scene reset", zap.Uint64("reset_count", c.resetCount))
		return nil
	})
}

// Recenter restores the placement snapshot. Before any placement, or after
// a reset, that is the default transform.
func (c *Controller) Recenter(ctx context.Context) error {
	return c.do(ctx, func() error {
		c.setState(c.initial)
		return nil
	})
}

// ApplyChatActions applies actions on top of whatever the canonical state
// is when they arrive. An empty list changes nothing.
func (c *Controller) ApplyChatActions(ctx context.Context, actions []transform.Action) error {
	if len(actions) == 0 {
		return nil
	}
	return c.do(ctx, func() error {
		c.setState(transform.Apply(c.state, actions))
		c.metrics.ChatApplied(ctx, len(actions))
		return nil
	})
}

// SetMode switches the transform tool.
func (c *Controller) SetMode(ctx context.Context, mode scene.Mode) error {
	return c.do(ctx, func() error {
		c.mode = mode
		if c.adapter != nil {
			c.adapter.SetMode(mode)
		}
		return nil
	})
}

func (c *Controller) SetInfoOpen(ctx context.Context, open bool) error {
	return c.do(ctx, func() error {
		c.infoOpen = open
		return nil
	})
}

// ToggleInfo flips the info panel and returns the new visibility.
func (c *Controller) ToggleInfo(ctx context.Context) (bool, error) {
	var open bool
	err := c.do(ctx, func() error {
		c.infoOpen = !c.infoOpen
		open = c.infoOpen
		return nil
	})
	return open, err
}

// EnterAR swaps in an AR adapter that starts searching for a surface.
func (c *Controller) EnterAR(ctx context.Context) error {
	return c.do(ctx, func() error {
		switch c.arStatus {
		case ARChecking:
			return ErrCapabilityPending
		case ARUnsupported:
			return ErrARUnsupported
		}
		if c.presenting {
			return nil
		}
		c.presenting = true
		c.adapter = scene.NewAR(c.callbacks(), c.placement(), c.mode, c.resetCount, c.state)
		return nil
	})
}

// ExitAR returns to the desktop adapter.
func (c *Controller) ExitAR(ctx context.Context) error {
	return c.do(ctx, func() error {
		if !c.presenting {
			return nil
		}
		c.presenting = false
		c.adapter = scene.NewDesktop(c.callbacks(), c.mode, c.resetCount, c.state)
		return nil
	})
}

func (c *Controller) placement() scene.Placement {
	var p scene.Placement
	if c.model == nil {
		return p
	}
	if c.model.Position != nil {
		p.Offset = *c.model.Position
	}
	p.Rotation = c.model.Rotation
	p.Scale = c.model.Scale
	return p
}

// HitTest moves the AR placement preview. A nil point hides it.
func (c *Controller) HitTest(ctx context.Context, point *transform.Vec3) error {
	return c.withScene(ctx, func(a *scene.Adapter) error {
		return a.UpdateHitTest(point)
	})
}

// Select places the object at the preview.
func (c *Controller) Select(ctx context.Context) (transform.State, error) {
	var placed transform.State
	err := c.withScene(ctx, func(a *scene.Adapter) error {
		var err error
		placed, err = a.Select()
		return err
	})
	return placed, err
}

func (c *Controller) BeginDrag(ctx context.Context) error {
	return c.withScene(ctx, func(a *scene.Adapter) error {
		return a.BeginDrag()
	})
}

func (c *Controller) Drag(ctx context.Context, target transform.State) error {
	return c.withScene(ctx, func(a *scene.Adapter) error {
		return a.Drag(target)
	})
}

func (c *Controller) EndDrag(ctx context.Context) error {
	return c.withScene(ctx, func(a *scene.Adapter) error {
		return a.EndDrag()
	})
}

// Nudge changes the object programmatically outside of a drag.
func (c *Controller) Nudge(ctx context.Context, target transform.State) error {
	return c.withScene(ctx, func(a *scene.Adapter) error {
		return a.Nudge(target)
	})
}

// Snapshot returns the current controller state.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	var snap Snapshot
	err := c.loop.Do(ctx, func() {
		snap = c.snapshot()
	})
	return snap, err
}

func (c *Controller) snapshot() Snapshot {
	snap := Snapshot{
		ID:              c.id,
		State:           c.state,
		Initial:         c.initial,
		HasPlaced:       c.hasPlaced,
		ResetCount:      c.resetCount,
		Mode:            c.mode,
		ARStatus:        c.arStatus,
		Presenting:      c.presenting,
		InfoOpen:        c.infoOpen,
		RecenterEnabled: !(c.arStatus == ARSupported && !c.hasPlaced),
	}
	if c.model != nil {
		snap.ModelID = c.model.ID
	}
	if a := c.adapter; a != nil {
		ss := &SceneSnapshot{
			Variant:     a.Variant(),
			Phase:       a.Phase(),
			GizmoShowsY: a.GizmoShowsY(),
		}
		if p := a.Preview(); p != nil {
			v := *p
			ss.Preview = &v
		}
		if n := a.Node(); n != nil {
			obj := n.Transform()
			m := n.Matrix()
			ss.Object = &obj
			ss.Matrix = &m
		}
		snap.Scene = ss
	}
	return snap
}

// Subscribe returns a channel that receives the current snapshot and then
// one after every change. Slow readers only see the latest snapshot. The
// channel is closed by the returned cancel func or when the session closes.
func (c *Controller) Subscribe(ctx context.Context) (<-chan Snapshot, func(), error) {
	ch := make(chan Snapshot, 1)
	var id int
	err := c.loop.Do(ctx, func() {
		c.subMu.Lock()
		id = c.nextID
		c.nextID++
		c.subs[id] = ch
		c.subMu.Unlock()
		ch <- c.snapshot()
	})
	if err != nil {
		return nil, func() {}, err
	}

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			c.subMu.Lock()
			defer c.subMu.Unlock()
			if _, ok := c.subs[id]; ok {
				delete(c.subs, id)
				close(ch)
			}
		})
	}
	return ch, cancel, nil
}

func (c *Controller) publish() {
	snap := c.snapshot()

	c.subMu.Lock()
	defer c.subMu.Unlock()
	for _, ch := range c.subs {
		select {
		case <-ch:
		default:
		}
		ch <- snap
	}
}

// Close stops the loop, aborts the probe and closes all subscriptions.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.probeCancel()
		c.loop.Close()

		c.subMu.Lock()
		for id, ch := range c.subs {
			delete(c.subs, id)
			close(ch)
		}
		c.subMu.Unlock()
	})
}

