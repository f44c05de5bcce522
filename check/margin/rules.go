// Package margin implements the margin-violation check: a geometric
// classifier over page elements, a pixel-sampling visibility filter that
// discards blank intrusions, and a per-page aggregator feeding the report
// and the annotation renderer.
package margin

// Rules holds the margin guidelines, measured in points from each page edge,
// and the per-edge offsets subtracted from each guideline before comparison.
// The offsets grant slack so elements sitting on the boundary are not
// flagged.
type Rules struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64

	TopOffset    float64
	BottomOffset float64
	LeftOffset   float64
	RightOffset  float64
}

// DefaultRules returns the SIGCONF reference guidelines for a Letter page.
func DefaultRules() Rules {
	return Rules{
		Top:    57,
		Bottom: 73,
		Left:   54,
		Right:  54,

		TopOffset:    1,
		BottomOffset: 1,
		LeftOffset:   2,
		RightOffset:  4.5,
	}
}
