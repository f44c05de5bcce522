// Package doctest provides an in-memory doc.Document implementation for
// tests. Pages are described declaratively; rendered regions are synthesized
// from a per-page pixel function so tests can stage exact pixel content
// without a real rasterizer.
package doctest

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"sync/atomic"

	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/geom"
)

// Page describes one fake page.
type Page struct {
	Width  float64
	Height float64

	Texts  []doc.TextRun
	Images []doc.ImageBlock

	// Pixel maps a page-space point to the color the rasterizer would
	// produce there. Nil means an all-white page.
	Pixel func(x, y float64) color.Color

	// ElementsErr, when set, makes Elements fail for this page.
	ElementsErr error
	// RenderErr, when set, makes RenderRegion and RenderPage fail for this
	// page.
	RenderErr error
}

// Document is a scriptable fake.
type Document struct {
	Pages  []Page
	Assets []doc.FontAsset

	// RenderRegionCalls counts rasterization requests, for asserting that
	// degenerate rectangles are skipped without sampling. Safe to read
	// after the run completes.
	RenderRegionCalls atomic.Int64
}

var _ doc.Document = (*Document)(nil)

// Letter returns a fake single-column Letter page (612x792) with no content.
func Letter() Page { return Page{Width: 612, Height: 792} }

func (d *Document) PageCount() int { return len(d.Pages) }

func (d *Document) Geometry(index int) (doc.PageGeometry, error) {
	p, err := d.page(index)
	if err != nil {
		return doc.PageGeometry{}, err
	}
	return doc.PageGeometry{Width: p.Width, Height: p.Height, Index: index}, nil
}

func (d *Document) Elements(index int) ([]doc.TextRun, []doc.ImageBlock, error) {
	p, err := d.page(index)
	if err != nil {
		return nil, nil, err
	}
	if p.ElementsErr != nil {
		return nil, nil, p.ElementsErr
	}
	return p.Texts, p.Images, nil
}

func (d *Document) RenderRegion(ctx context.Context, index int, bbox geom.Rect, dpi int) (image.Image, error) {
	d.RenderRegionCalls.Add(1)
	p, err := d.page(index)
	if err != nil {
		return nil, err
	}
	if p.RenderErr != nil {
		return nil, &doc.RenderError{Page: index, Err: p.RenderErr}
	}
	return rasterize(p, bbox, dpi), nil
}

func (d *Document) RenderPage(ctx context.Context, index int, dpi int) (image.Image, error) {
	p, err := d.page(index)
	if err != nil {
		return nil, err
	}
	if p.RenderErr != nil {
		return nil, &doc.RenderError{Page: index, Err: p.RenderErr}
	}
	return rasterize(p, geom.NewRect(0, 0, p.Width, p.Height), dpi), nil
}

func (d *Document) Fonts() ([]doc.FontAsset, error) { return d.Assets, nil }

func (d *Document) Close() error { return nil }

func (d *Document) page(index int) (Page, error) {
	if index < 0 || index >= len(d.Pages) {
		return Page{}, errors.New("doctest: page index out of range")
	}
	return d.Pages[index], nil
}

func rasterize(p Page, bbox geom.Rect, dpi int) image.Image {
	scale := float64(dpi) / 72.0
	w := int(math.Ceil(bbox.Width() * scale))
	h := int(math.Ceil(bbox.Height() * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			c := color.Color(color.White)
			if p.Pixel != nil {
				// Sample at the center of the device pixel.
				x := bbox.X0 + (float64(px)+0.5)/scale
				y := bbox.Top + (float64(py)+0.5)/scale
				c = p.Pixel(x, y)
			}
			img.Set(px, py, c)
		}
	}
	return img
}

// SolidRegion returns a pixel function painting the given rectangle with c on
// a white background.
func SolidRegion(r geom.Rect, c color.Color) func(x, y float64) color.Color {
	return func(x, y float64) color.Color {
		if r.Contains(x, y) {
			return c
		}
		return color.White
	}
}
