package transform

import "math"

// Vec3 is an (x, y, z) triple.
type Vec3 [3]float64

// Axis selects one component of a Vec3.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
	AxisZ Axis = "z"
)

// Index returns the Vec3 component index for the axis.
func (a Axis) Index() (int, bool) {
	switch a {
	case AxisX:
		return 0, true
	case AxisY:
		return 1, true
	case AxisZ:
		return 2, true
	}
	return 0, false
}

// Valid reports whether a is one of x, y or z.
func (a Axis) Valid() bool {
	_, ok := a.Index()
	return ok
}

// State is the canonical transform of the manipulated object.
// Rotation is expressed in radians, XYZ Euler order.
type State struct {
	Position Vec3 `json:"position"`
	Rotation Vec3 `json:"rotation"`
	Scale    Vec3 `json:"scale"`
}

// Default returns the transform every session starts with.
func Default() State {
	return State{
		Position: Vec3{0, 0, 0},
		Rotation: Vec3{0, 0, 0},
		Scale:    Vec3{1, 1, 1},
	}
}

// Finite reports whether every component is a finite number.
func (s State) Finite() bool {
	for _, v := range [...]Vec3{s.Position, s.Rotation, s.Scale} {
		for _, c := range v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return false
			}
		}
	}
	return true
}

// Equal compares two states component by component within tolerance.
func (s State) Equal(o State, tolerance float64) bool {
	pairs := [...][2]Vec3{
		{s.Position, o.Position},
		{s.Rotation, o.Rotation},
		{s.Scale, o.Scale},
	}
	for _, p := range pairs {
		for i := 0; i < 3; i++ {
			if math.Abs(p[0][i]-p[1][i]) > tolerance {
				return false
			}
		}
	}
	return true
}
