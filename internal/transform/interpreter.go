package transform

import "math"

const (
	MinScaleFactor = 0.1
	MaxScaleFactor = 10.0

	MinScale = 0.1
	MaxScale = 5.0

	// Precision is the number of decimal places kept after a batch.
	Precision = 5
)

// Apply runs actions in order on top of state and returns the new state.
// Each action composes onto the result of the previous one. After the batch,
// scale is clamped to [MinScale, MaxScale] and every component is rounded
// to Precision decimals. Apply never fails; non-finite inputs, and actions
// whose result would not be finite, are skipped.
func Apply(state State, actions []Action) State {
	next := state

	for _, action := range actions {
		candidate := next
		switch a := action.(type) {
		case Scale:
			if !finite(a.Factor) {
				continue
			}
			factor := clamp(a.Factor, MinScaleFactor, MaxScaleFactor)
			for i := range candidate.Scale {
				candidate.Scale[i] *= factor
			}
		case Rotate:
			i, ok := a.Axis.Index()
			if !ok || !finite(a.Degrees) {
				continue
			}
			candidate.Rotation[i] += a.Degrees / 180 * math.Pi
		case Move:
			i, ok := a.Axis.Index()
			if !ok || !finite(a.Distance) {
				continue
			}
			candidate.Position[i] += a.Distance
		}
		// An action that would overflow a component is a no-op.
		if candidate.Finite() {
			next = candidate
		}
	}

	for i := 0; i < 3; i++ {
		next.Scale[i] = round(clamp(next.Scale[i], MinScale, MaxScale))
		next.Rotation[i] = round(next.Rotation[i])
		next.Position[i] = round(next.Position[i])
	}
	return next
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func round(v float64) float64 {
	// Beyond 2^53 there are no fractional digits left to round.
	if math.Abs(v) >= 1<<53 {
		return v
	}
	p := math.Pow10(Precision)
	r := math.Round(v*p) / p
	if r == 0 {
		return 0
	}
	return r
}
