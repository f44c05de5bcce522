// Package annotate renders one image per offending page with highlight
// rectangles at violation sites. The highlight boxes are sized for human
// visibility; they are wider than the sampled overflow slivers and anchored
// to the element's vertical span.
package annotate

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/check/margin"
	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/geom"
	"github.com/lthoang/sigconf-checker/observability"
)

// PageDPI is the resolution pages are rendered at for annotation output.
const PageDPI = 150

// Renderer produces the annotated page images for a margin-check result.
type Renderer struct {
	DPI          int
	StrokeWidth  int
	OutlineColor color.Color
	// Labels adds a small side marker next to each highlight box.
	Labels bool
	Logger observability.Logger
}

// New returns a renderer with the reference settings: 150 DPI, red outlines,
// five-pixel strokes.
func New() *Renderer {
	return &Renderer{
		DPI:          PageDPI,
		StrokeWidth:  5,
		OutlineColor: color.RGBA{R: 255, A: 255},
		Labels:       true,
		Logger:       observability.NopLogger{},
	}
}

// WritePages renders every page holding confirmed violations and writes one
// PNG per page into outDir, named errors-<sourceName>-page-<N>.png. It
// returns the written paths in ascending page order. A page whose render
// fails is logged and skipped; the report entries for it remain.
func (r *Renderer) WritePages(ctx check.Context, d doc.Document, res *margin.Result, sourceName, outDir string) ([]string, error) {
	var written []string
	for _, page := range res.Pages() {
		pg, err := d.Geometry(page)
		if err != nil {
			r.logger().Warn("annotate: page geometry unavailable",
				observability.Int("page", page+1), observability.Error("err", err))
			continue
		}
		renderStart := time.Now()
		rendered, err := d.RenderPage(ctx, page, r.DPI)
		if err != nil {
			r.logger().Warn("annotate: page render failed",
				observability.Int("page", page+1), observability.Error("err", err))
			continue
		}
		r.logger().Debug("rendered page for annotation",
			observability.Int("page", page+1),
			observability.Float64(observability.MetricRenderTime, time.Since(renderStart).Seconds()))
		canvas := NewCanvas(rendered, r.DPI)
		for _, v := range res.TextViolations[page] {
			r.drawText(canvas, v, pg)
		}
		for _, v := range res.ImageViolations[page] {
			r.draw(canvas, v.Element.BBox, "image")
		}

		name := fmt.Sprintf("errors-%s-page-%d.png", sourceName, page+1)
		path := filepath.Join(outDir, name)
		if err := r.writePNG(canvas, path); err != nil {
			return written, fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, path)
	}
	return written, nil
}

// drawText highlights a text violation with the fixed-size reference box:
// a 60-point-wide strip at the offending edge, padded 20 points above and
// below the element's span.
func (r *Renderer) drawText(canvas *Canvas, v margin.Violation, pg doc.PageGeometry) {
	top := math.Trunc(v.Element.BBox.Top - 20)
	bottom := math.Trunc(v.Element.BBox.Bottom + 20)
	var box geom.Rect
	if v.Side == margin.SideRight {
		box = geom.NewRect(pg.Width-80, top, pg.Width-20, bottom)
	} else {
		box = geom.NewRect(20, top, 80, bottom)
	}
	r.draw(canvas, box, v.Side.String())
}

func (r *Renderer) draw(canvas *Canvas, box geom.Rect, label string) {
	canvas.DrawOutline(box, r.OutlineColor, r.StrokeWidth)
	if r.Labels {
		canvas.Label(label, box.X0, box.Top-2, r.OutlineColor)
	}
}

func (r *Renderer) writePNG(canvas *Canvas, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := canvas.EncodePNG(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (r *Renderer) logger() observability.Logger {
	if r.Logger == nil {
		return observability.NopLogger{}
	}
	return r.Logger
}
