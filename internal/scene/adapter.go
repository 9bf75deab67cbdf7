package scene

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tektai/ar-viewer/internal/transform"
)

// Variant selects desktop or AR behaviour.
type Variant string

const (
	Desktop Variant = "desktop"
	AR      Variant = "ar"
)

// Phase is the adapter's position in its state machine.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseSearching Phase = "searching"
	PhaseAttached  Phase = "attached"
	PhaseDragging  Phase = "dragging"
)

var (
	ErrNotAttached  = errors.New("no object is attached")
	ErrNotDragging  = errors.New("no drag in progress")
	ErrNotSearching = errors.New("placement is only possible while searching for a surface")
	ErrNoHitTest    = errors.New("no surface detected")
)

// Callbacks receive engine-to-canonical flushes.
type Callbacks struct {
	OnPlacement       func(transform.State)
	OnTransformChange func(transform.State)
}

// Placement carries the model config fields that shape AR placement.
type Placement struct {
	Offset   transform.Vec3
	Rotation *transform.Vec3
	Scale    *float64
}

// Adapter binds the canonical transform to a live node and gizmo.
//
// The suppress flag guards a single synchronous push. It is only safe
// because every method runs on the owning session's event loop.
type Adapter struct {
	variant    Variant
	phase      Phase
	callbacks  Callbacks
	placement  Placement
	mode       Mode
	generation uint64

	node     *Node
	gizmo    *Gizmo
	preview  *transform.Vec3
	canon    transform.State
	suppress bool
}

// NewDesktop returns an attached desktop adapter with a fresh node.
func NewDesktop(cb Callbacks, mode Mode, generation uint64, state transform.State) *Adapter {
	a := &Adapter{
		variant:    Desktop,
		phase:      PhaseIdle,
		callbacks:  cb,
		mode:       mode,
		generation: generation,
	}
	a.Sync(state)
	return a
}

// NewAR returns an AR adapter waiting for a surface.
func NewAR(cb Callbacks, placement Placement, mode Mode, generation uint64, state transform.State) *Adapter {
	return &Adapter{
		variant:    AR,
		phase:      PhaseSearching,
		callbacks:  cb,
		placement:  placement,
		mode:       mode,
		generation: generation,
		canon:      state,
	}
}

func (a *Adapter) Variant() Variant         { return a.variant }
func (a *Adapter) Phase() Phase             { return a.phase }
func (a *Adapter) Generation() uint64       { return a.generation }
func (a *Adapter) Node() *Node              { return a.node }
func (a *Adapter) Preview() *transform.Vec3 { return a.preview }

// Sync pushes canonical state onto the node. Pushes are dropped while
// dragging. An idle desktop adapter mounts a fresh node first.
func (a *Adapter) Sync(state transform.State) {
	a.canon = state
	switch a.phase {
	case PhaseDragging, PhaseSearching:
		return
	case PhaseIdle:
		if a.variant != Desktop {
			return
		}
		a.mount()
		a.phase = PhaseAttached
	}
	a.push(state)
}

func (a *Adapter) push(state transform.State) {
	a.suppress = true
	a.node.SetTransform(state)
	a.suppress = false
}

func (a *Adapter) mount() {
	a.node = NewNode()
	a.node.OnChange(a.objectChanged)
	a.gizmo = NewGizmo(a.node, a.mode, a.variant == Desktop)
}

// objectChanged handles engine notifications that are not part of a drag.
func (a *Adapter) objectChanged() {
	if a.suppress || a.phase != PhaseAttached {
		return
	}
	if a.callbacks.OnTransformChange != nil {
		a.callbacks.OnTransformChange(a.node.Transform())
	}
}

// SetMode switches the gizmo tool.
func (a *Adapter) SetMode(mode Mode) {
	a.mode = mode
	if a.gizmo != nil {
		a.gizmo.SetMode(mode)
	}
}

// GizmoShowsY reports whether the Y handle is visible.
func (a *Adapter) GizmoShowsY() bool {
	if a.gizmo == nil {
		return true
	}
	return a.gizmo.ShowsY()
}

func (a *Adapter) BeginDrag() error {
	if a.phase != PhaseAttached {
		return ErrNotAttached
	}
	a.phase = PhaseDragging
	return nil
}

// Drag applies a gizmo movement. Nothing is committed until EndDrag.
func (a *Adapter) Drag(target transform.State) error {
	if a.phase != PhaseDragging {
		return ErrNotDragging
	}
	a.gizmo.Drag(target)
	return nil
}

// EndDrag returns to attached and commits the node's transform.
func (a *Adapter) EndDrag() error {
	if a.phase != PhaseDragging {
		return ErrNotDragging
	}
	a.phase = PhaseAttached
	if a.callbacks.OnTransformChange != nil {
		a.callbacks.OnTransformChange(a.node.Transform())
	}
	return nil
}

// Nudge mutates the node programmatically, outside of any drag.
func (a *Adapter) Nudge(target transform.State) error {
	if a.phase != PhaseAttached {
		return ErrNotAttached
	}
	a.node.SetTransform(target)
	return nil
}

// UpdateHitTest moves the placement preview. A nil point hides it.
func (a *Adapter) UpdateHitTest(point *transform.Vec3) error {
	if a.variant != AR || a.phase != PhaseSearching {
		return ErrNotSearching
	}
	if point == nil {
		a.preview = nil
		return nil
	}
	p := *point
	a.preview = &p
	return nil
}

// Select places the object at the current preview.
func (a *Adapter) Select() (transform.State, error) {
	if a.variant != AR || a.phase != PhaseSearching {
		return transform.State{}, ErrNotSearching
	}
	if a.preview == nil {
		return transform.State{}, ErrNoHitTest
	}

	hit := mgl64.Vec3(*a.preview)
	placed := transform.State{
		Position: transform.Vec3(hit.Add(mgl64.Vec3(a.placement.Offset))),
		Rotation: a.canon.Rotation,
		Scale:    a.canon.Scale,
	}
	if a.placement.Rotation != nil {
		placed.Rotation = *a.placement.Rotation
	}
	if s := a.placement.Scale; s != nil {
		placed.Scale = transform.Vec3{*s, *s, *s}
	}

	a.preview = nil
	a.mount()
	a.phase = PhaseAttached
	a.push(placed)
	if a.callbacks.OnPlacement != nil {
		a.callbacks.OnPlacement(placed)
	}
	return placed, nil
}

// Reset tears down the node when generation differs from the one the
// adapter last saw. Any pending placement preview is discarded.
func (a *Adapter) Reset(generation uint64) bool {
	if generation == a.generation {
		return false
	}
	a.generation = generation
	a.node = nil
	a.gizmo = nil
	a.preview = nil
	a.suppress = false
	if a.variant == AR {
		a.phase = PhaseSearching
	} else {
		a.phase = PhaseIdle
	}
	return true
}
