package transform

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind tags a transform action on the wire.
type Kind string

const (
	KindScale  Kind = "scale"
	KindRotate Kind = "rotate"
	KindMove   Kind = "move"
)

// MaxMoveDistance bounds the absolute distance of a move action.
const MaxMoveDistance = 1e9

// Action is one discrete transform command. Implementations are Scale, Rotate and Move.
type Action interface {
	Kind() Kind
	Valid() bool
}

// Scale multiplies every scale component by Factor.
type Scale struct {
	Factor float64
}

// Rotate adds Degrees around Axis.
type Rotate struct {
	Axis    Axis
	Degrees float64
}

// Move adds Distance along Axis.
type Move struct {
	Axis     Axis
	Distance float64
}

func (Scale) Kind() Kind  { return KindScale }
func (Rotate) Kind() Kind { return KindRotate }
func (Move) Kind() Kind   { return KindMove }

func (a Scale) Valid() bool { return finite(a.Factor) && a.Factor > 0 }

func (a Rotate) Valid() bool { return a.Axis.Valid() && finite(a.Degrees) }

func (a Move) Valid() bool {
	return a.Axis.Valid() && finite(a.Distance) && math.Abs(a.Distance) <= MaxMoveDistance
}

func (a Scale) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   Kind    `json:"type"`
		Factor float64 `json:"factor"`
	}{KindScale, a.Factor})
}

func (a Rotate) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    Kind    `json:"type"`
		Axis    Axis    `json:"axis"`
		Degrees float64 `json:"degrees"`
	}{KindRotate, a.Axis, a.Degrees})
}

func (a Move) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     Kind    `json:"type"`
		Axis     Axis    `json:"axis"`
		Distance float64 `json:"distance"`
	}{KindMove, a.Axis, a.Distance})
}

// Actions is an ordered action list. Decoding it never fails on individual
// entries: anything malformed is dropped.
type Actions []Action

// MarshalJSON encodes nil as an empty array.
func (as Actions) MarshalJSON() ([]byte, error) {
	if as == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Action(as))
}

// UnmarshalJSON accepts any JSON value; non-arrays decode to an empty list.
func (as *Actions) UnmarshalJSON(data []byte) error {
	*as = ParseActions(data)
	return nil
}

// ParseActions decodes a raw JSON action array and keeps only valid entries.
func ParseActions(data []byte) Actions {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Actions{}
	}
	return NormalizeRaw(raw)
}

// NormalizeRaw validates each raw entry and drops the ones that fail.
func NormalizeRaw(raw []json.RawMessage) Actions {
	out := make(Actions, 0, len(raw))
	for _, entry := range raw {
		var fields map[string]any
		dec := json.NewDecoder(strings.NewReader(string(entry)))
		dec.UseNumber()
		if err := dec.Decode(&fields); err != nil || fields == nil {
			continue
		}
		if a, ok := fromFields(fields); ok {
			out = append(out, a)
		}
	}
	return out
}

// Normalize filters an already-typed list, dropping invalid entries.
func Normalize(actions []Action) Actions {
	out := make(Actions, 0, len(actions))
	for _, a := range actions {
		if a != nil && a.Valid() {
			out = append(out, a)
		}
	}
	return out
}

func fromFields(fields map[string]any) (Action, bool) {
	kind, _ := fields["type"].(string)
	var a Action
	switch Kind(kind) {
	case KindScale:
		factor, ok := number(fields["factor"])
		if !ok {
			return nil, false
		}
		a = Scale{Factor: factor}
	case KindRotate:
		degrees, ok := number(fields["degrees"])
		if !ok {
			return nil, false
		}
		axis, _ := fields["axis"].(string)
		a = Rotate{Axis: Axis(axis), Degrees: degrees}
	case KindMove:
		distance, ok := number(fields["distance"])
		if !ok {
			return nil, false
		}
		axis, _ := fields["axis"].(string)
		a = Move{Axis: Axis(axis), Distance: distance}
	default:
		return nil, false
	}
	if !a.Valid() {
		return nil, false
	}
	return a, true
}

// number coerces JSON numbers and numeric strings.
func number(v any) (float64, bool) {
	var f float64
	var err error
	switch n := v.(type) {
	case json.Number:
		f, err = n.Float64()
	case float64:
		f = n
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(n), 64)
	default:
		return 0, false
	}
	if err != nil || !finite(f) {
		return 0, false
	}
	return f, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// String renders an action for logs.
func String(a Action) string {
	switch v := a.(type) {
	case Scale:
		return fmt.Sprintf("scale(%g)", v.Factor)
	case Rotate:
		return fmt.Sprintf("rotate(%s, %g°)", v.Axis, v.Degrees)
	case Move:
		return fmt.Sprintf("move(%s, %g)", v.Axis, v.Distance)
	}
	return "unknown"
}
