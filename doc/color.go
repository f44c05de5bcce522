package doc

// Color is a decoder-reported paint color. Content streams express color in
// whichever space the generator chose, so the component count varies: gray
// uses one component, RGB three, CMYK four. Components are in [0, 1] scaled
// to [0, 255] by the decoder.
type Color struct {
	Components []float64
}

// Gray returns a one-component color.
func Gray(v float64) *Color { return &Color{Components: []float64{v}} }

// RGB returns a three-component color.
func RGB(r, g, b float64) *Color { return &Color{Components: []float64{r, g, b}} }

// IsBlack reports whether the color is opaque black in either the
// one-component gray form or the three-component RGB form. Both encodings
// come out of real content streams and must be treated as equivalent.
func (c *Color) IsBlack() bool {
	if c == nil {
		return false
	}
	switch len(c.Components) {
	case 1:
		return c.Components[0] == 0
	case 3:
		return c.Components[0] == 0 && c.Components[1] == 0 && c.Components[2] == 0
	}
	return false
}
