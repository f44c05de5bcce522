// Package doc defines the boundary between the format checker and the
// document decoder/rasterizer it runs against. The checker never parses PDF
// content itself; it consumes page geometry, positioned elements, and
// rendered pixel buffers through the Document interface and leaves the
// implementation to a decoder registered by the embedding application.
package doc

import (
	"context"
	"fmt"
	"image"

	"github.com/lthoang/sigconf-checker/geom"
)

// PageGeometry describes the physical dimensions of one page. Index is
// zero-based; reporting adds one.
type PageGeometry struct {
	Width  float64
	Height float64
	Index  int
}

// TextRun is a positioned run of text as produced by the decoder's word
// segmentation. Fill and Stroke are nil when the corresponding paint operator
// was absent from the content stream.
type TextRun struct {
	BBox   geom.Rect
	Text   string
	Fill   *Color
	Stroke *Color
}

// ImageBlock is a placed image XObject. Its visual content is only known by
// rasterizing, so it carries no color information.
type ImageBlock struct {
	BBox geom.Rect
	Name string
}

// FontAsset describes one font referenced by the document, surfaced for the
// font embedding check.
type FontAsset struct {
	Name     string
	Embedded bool
	// Program holds the embedded font program bytes when Embedded is true.
	Program []byte
}

// Document is a decoded document handle. Implementations may block on I/O in
// the rendering methods; callers bound their own concurrency.
type Document interface {
	// PageCount returns the number of pages.
	PageCount() int

	// Geometry returns the dimensions of the page at the zero-based index.
	Geometry(index int) (PageGeometry, error)

	// Elements returns the positioned text runs and image blocks of a page.
	Elements(index int) ([]TextRun, []ImageBlock, error)

	// RenderRegion rasterizes the given page-space rectangle at the requested
	// DPI and returns an RGB-interpretable pixel buffer.
	RenderRegion(ctx context.Context, index int, bbox geom.Rect, dpi int) (image.Image, error)

	// RenderPage rasterizes the full page at the requested DPI.
	RenderPage(ctx context.Context, index int, dpi int) (image.Image, error)

	// Fonts lists the fonts referenced across the document.
	Fonts() ([]FontAsset, error)

	// Close releases decoder resources.
	Close() error
}

// Decoder opens a document from a file path.
type Decoder interface {
	Decode(path string) (Document, error)
}

// DecodeError marks a document that could not be opened at all. It aborts
// processing for that document only; a batch run continues with the next one.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// RenderError marks a page or region that could not be rasterized. It is
// always recovered locally: the visibility filter degrades to "violation
// confirmed" and the aggregator records the page under the Parsing category.
type RenderError struct {
	Page int
	Err  error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render page %d: %v", e.Page+1, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
