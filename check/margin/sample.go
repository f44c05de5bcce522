package margin

import (
	"context"
	"image"
	"image/color"
	"math"

	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/geom"
)

// SampleDPI is the resolution used when rasterizing the clipped overflow
// region for the blank test.
const SampleDPI = 100

// Outcome is the three-valued result of sampling an overflow region. It is
// deliberately not a boolean: a failed rasterization is its own outcome so
// the fail-open policy (unverifiable regions count as violations) stays
// explicit at the call site.
type Outcome int

const (
	// OutcomeBlank means every sampled pixel was background-safe; the
	// geometric verdict was a false positive.
	OutcomeBlank Outcome = iota
	// OutcomeInk means at least one sampled pixel carried visible content.
	OutcomeInk
	// OutcomeUnverified means the region could not be rasterized. Callers
	// must treat it like ink, never like blank.
	OutcomeUnverified
)

// SampleRect computes the clipped sampling rectangle for a classified
// element: the visible overflow region only, not the full bounding box.
// Each side clips one edge to the guideline (less its offset) so that only
// the portion outside the safe zone is inspected. Coordinates are truncated
// toward zero first, matching the pixels an integer-coordinate crop would
// cover, and the result is clamped onto the page.
//
// The second return value is false when the clipped rectangle is a sliver
// of one point or less on either axis. Such regions are too small to sample
// reliably or to matter visually, and are skipped outright.
func (r Rules) SampleRect(el Element, side Side, pg doc.PageGeometry) (geom.Rect, bool) {
	t := el.BBox.Truncate()

	x0 := math.Max(0, t.X0)
	if side == SideRight {
		x0 = math.Max(x0, pg.Width-r.Right+r.RightOffset)
	}
	x1 := math.Min(t.X1, pg.Width)
	if side == SideLeft {
		x1 = math.Min(x1, r.Left-r.LeftOffset)
	}
	y0 := math.Max(0, t.Top)
	y1 := math.Min(t.Bottom, pg.Height)
	if side == SideTop {
		y1 = math.Min(y1, r.Top-r.TopOffset)
	}
	if side == SideBottom && el.Kind == KindText {
		y1 = math.Max(y1, pg.Height-(r.Bottom-r.BottomOffset))
	}

	rect := geom.NewRect(x0, y0, x1, y1).ClampTo(pg.Width, pg.Height)
	if rect.Width() <= 1 || rect.Height() <= 1 {
		return geom.Rect{}, false
	}
	return rect, true
}

// Sample rasterizes the clipped region and applies the variant's blank
// test. The rendered buffer is returned alongside the outcome so callers
// can reuse it (OCR enrichment); it is nil when the outcome is
// OutcomeUnverified.
func Sample(ctx context.Context, d doc.Document, el Element, rect geom.Rect, page int) (Outcome, image.Image) {
	img, err := d.RenderRegion(ctx, page, rect, SampleDPI)
	if err != nil {
		return OutcomeUnverified, nil
	}
	if el.Kind == KindImage {
		return imageOutcome(img), img
	}
	return textOutcome(img), img
}

// imageOutcome declares an image region blank when the mean over every RGB
// channel is exactly the background value 255, which only holds when the
// whole buffer is pure white. Large images often overflow the guideline with
// nothing but white padding; those are not violations.
func imageOutcome(img image.Image) Outcome {
	bounds := img.Bounds()
	var sum, n uint64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb := rgb8(img.At(x, y))
			sum += uint64(cr) + uint64(cg) + uint64(cb)
			n += 3
		}
	}
	if n == 0 || sum == n*255 {
		return OutcomeBlank
	}
	return OutcomeInk
}

// textOutcome declares a text region blank only when every pixel is either
// pure white or pure red. Red accommodates reviewer line-number marks in the
// margin, which are expected and must not be flagged.
func textOutcome(img image.Image) Outcome {
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			cr, cg, cb := rgb8(img.At(x, y))
			white := cr == 255 && cg == 255 && cb == 255
			red := cr == 255 && cg == 0 && cb == 0
			if !white && !red {
				return OutcomeInk
			}
		}
	}
	return OutcomeBlank
}

func rgb8(c color.Color) (uint8, uint8, uint8) {
	r, g, b, _ := c.RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
