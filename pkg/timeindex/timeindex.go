// Package timeindex resolves which interval of a time-ordered sequence
// contains a given playback timestamp.
package timeindex

// Span is a closed time interval in fractional seconds.
type Span struct {
	Start float64
	End   float64
}

// Locate returns the index of the first span containing t, where containment
// is inclusive on both bounds (Start <= t <= End). Spans must already be
// sorted ascending by Start; Locate never sorts. When two touching spans both
// contain t (one ends where the next starts), the earlier span wins. Returns
// false when no span contains t.
func Locate(spans []Span, t float64) (int, bool) {
	for i, s := range spans {
		if s.Start > t {
			// Sorted input: nothing past this point can contain t.
			break
		}
		if t <= s.End {
			return i, true
		}
	}
	return 0, false
}
