package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/tektai/ar-viewer/internal/transform"
)

// Node is the live engine object for a placed model.
// Rotation is kept as XYZ Euler angles so accumulated turns survive a
// push/pull round trip unchanged; the quaternion and world matrix are derived.
type Node struct {
	position  mgl64.Vec3
	rotation  mgl64.Vec3
	scale     mgl64.Vec3
	listeners []func()
}

// NewNode creates a node at the origin with unit scale.
func NewNode() *Node {
	return &Node{scale: mgl64.Vec3{1, 1, 1}}
}

// OnChange registers fn to run after every mutation of the node.
func (n *Node) OnChange(fn func()) {
	n.listeners = append(n.listeners, fn)
}

func (n *Node) notify() {
	for _, fn := range n.listeners {
		fn()
	}
}

func (n *Node) Position() mgl64.Vec3 { return n.position }
func (n *Node) Rotation() mgl64.Vec3 { return n.rotation }
func (n *Node) Scale() mgl64.Vec3    { return n.scale }

func (n *Node) SetPosition(v mgl64.Vec3) {
	n.position = v
	n.notify()
}

func (n *Node) SetRotation(v mgl64.Vec3) {
	n.rotation = v
	n.notify()
}

func (n *Node) SetScale(v mgl64.Vec3) {
	n.scale = v
	n.notify()
}

// SetTransform replaces all three components and notifies once.
func (n *Node) SetTransform(s transform.State) {
	n.position = mgl64.Vec3(s.Position)
	n.rotation = mgl64.Vec3(s.Rotation)
	n.scale = mgl64.Vec3(s.Scale)
	n.notify()
}

// Transform reads the node back as a transform state.
func (n *Node) Transform() transform.State {
	return transform.State{
		Position: transform.Vec3(n.position),
		Rotation: transform.Vec3(n.rotation),
		Scale:    transform.Vec3(n.scale),
	}
}

// Quaternion composes the Euler angles in XYZ order.
func (n *Node) Quaternion() mgl64.Quat {
	qx := mgl64.QuatRotate(n.rotation[0], mgl64.Vec3{1, 0, 0})
	qy := mgl64.QuatRotate(n.rotation[1], mgl64.Vec3{0, 1, 0})
	qz := mgl64.QuatRotate(n.rotation[2], mgl64.Vec3{0, 0, 1})
	return qx.Mul(qy).Mul(qz)
}

// Matrix returns the local-to-world matrix (translate * rotate * scale).
func (n *Node) Matrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.position[0], n.position[1], n.position[2])
	s := mgl64.Scale3D(n.scale[0], n.scale[1], n.scale[2])
	return t.Mul4(n.Quaternion().Mat4()).Mul4(s)
}

// WorldPoint maps a point in model space to world space.
func (n *Node) WorldPoint(p mgl64.Vec3) mgl64.Vec3 {
	return n.Matrix().Mul4x1(p.Vec4(1)).Vec3()
}
