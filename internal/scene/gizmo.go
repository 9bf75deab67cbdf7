package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/tektai/ar-viewer/internal/transform"
)

// Mode is the active transform tool.
type Mode string

const (
	ModeTranslate Mode = "translate"
	ModeRotate    Mode = "rotate"
	ModeScale     Mode = "scale"
)

// ParseMode validates a tool mode name.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModeTranslate, ModeRotate, ModeScale:
		return m, nil
	}
	return "", fmt.Errorf("unknown transform mode %q", s)
}

// Gizmo is the handle set bound to a node. A drag only writes the
// component selected by the current mode.
type Gizmo struct {
	node  *Node
	mode  Mode
	showY bool
}

// NewGizmo binds a gizmo to node. When showY is false the Y handle is
// hidden in scale mode and the node's Y scale is never changed by drags.
func NewGizmo(node *Node, mode Mode, showY bool) *Gizmo {
	return &Gizmo{node: node, mode: mode, showY: showY}
}

func (g *Gizmo) Mode() Mode { return g.mode }

func (g *Gizmo) SetMode(mode Mode) { g.mode = mode }

// ShowsY reports whether the Y handle is visible in the current mode.
func (g *Gizmo) ShowsY() bool {
	return g.mode != ModeScale || g.showY
}

// Drag moves the node toward target along the active mode.
func (g *Gizmo) Drag(target transform.State) {
	switch g.mode {
	case ModeTranslate:
		g.node.SetPosition(mgl64.Vec3(target.Position))
	case ModeRotate:
		g.node.SetRotation(mgl64.Vec3(target.Rotation))
	case ModeScale:
		next := mgl64.Vec3(target.Scale)
		if !g.ShowsY() {
			next[1] = g.node.Scale()[1]
		}
		g.node.SetScale(next)
	}
}
