package margin

import (
	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/geom"
)

// Side identifies the page edge an element intrudes upon.
type Side int

const (
	SideTop Side = iota
	SideBottom
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "unknown"
}

// Kind distinguishes the two element variants. They share geometry but
// differ in color handling and sampling policy.
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// Element is the classifier's view of one page element.
type Element struct {
	Kind   Kind
	BBox   geom.Rect
	Text   string
	Fill   *doc.Color
	Stroke *doc.Color
}

// TextElement adapts a decoded text run.
func TextElement(tr doc.TextRun) Element {
	return Element{Kind: KindText, BBox: tr.BBox, Text: tr.Text, Fill: tr.Fill, Stroke: tr.Stroke}
}

// ImageElement adapts a decoded image block.
func ImageElement(ib doc.ImageBlock) Element {
	return Element{Kind: KindImage, BBox: ib.BBox}
}

// Classify maps an element's bounding box to at most one margin side.
//
// Evaluation order is a deliberate priority: Top, then Left, then Right,
// then Bottom. An element crossing two guidelines at once (a corner element)
// is reported only for the first matching side, so corner cases never emit
// contradictory duplicate findings. The bottom rule applies to text only;
// the reference behavior never flags images at the bottom edge and that
// asymmetry is preserved.
//
// Text elements are pre-filtered on color before any geometry is evaluated:
// opaque black fill (in the gray or RGB encoding) is ordinary body ink and
// never flagged, and runs with neither fill nor stroke carry no paint at
// all.
func (r Rules) Classify(el Element, pg doc.PageGeometry) (Side, bool) {
	if el.Kind == KindText {
		if el.Fill.IsBlack() {
			return 0, false
		}
		if el.Fill == nil && el.Stroke == nil {
			return 0, false
		}
	}

	b := el.BBox
	switch {
	case b.Bottom > 0 && b.Top < r.Top-r.TopOffset:
		return SideTop, true
	case b.X1 > 0 && b.X0 < r.Left-r.LeftOffset:
		return SideLeft, true
	case b.X0 < pg.Width && pg.Width-b.X1 < r.Right-r.RightOffset:
		return SideRight, true
	case el.Kind == KindText && b.Bottom > pg.Height-(r.Bottom-r.BottomOffset):
		return SideBottom, true
	}
	return 0, false
}
