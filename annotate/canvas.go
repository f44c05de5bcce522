package annotate

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lthoang/sigconf-checker/geom"
)

// Canvas wraps a rasterized page and accepts drawing operations in page
// coordinates, scaling them onto device pixels by the raster's DPI.
type Canvas struct {
	img   *image.RGBA
	scale float64
}

// NewCanvas copies the rendered page into a mutable buffer. dpi must match
// the resolution the page was rendered at.
func NewCanvas(rendered image.Image, dpi int) *Canvas {
	b := rendered.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(img, img.Bounds(), rendered, b.Min, draw.Src)
	return &Canvas{img: img, scale: float64(dpi) / 72.0}
}

// DrawOutline strokes an unfilled rectangle. The rectangle is given in page
// coordinates; the stroke width is in device pixels.
func (c *Canvas) DrawOutline(r geom.Rect, col color.Color, strokeWidth int) {
	dev := r.Scale(c.scale).ImageRect().Intersect(c.img.Bounds())
	if dev.Empty() || strokeWidth < 1 {
		return
	}
	src := image.NewUniform(col)
	bands := []image.Rectangle{
		image.Rect(dev.Min.X, dev.Min.Y, dev.Max.X, dev.Min.Y+strokeWidth),
		image.Rect(dev.Min.X, dev.Max.Y-strokeWidth, dev.Max.X, dev.Max.Y),
		image.Rect(dev.Min.X, dev.Min.Y, dev.Min.X+strokeWidth, dev.Max.Y),
		image.Rect(dev.Max.X-strokeWidth, dev.Min.Y, dev.Max.X, dev.Max.Y),
	}
	for _, band := range bands {
		draw.Draw(c.img, band.Intersect(c.img.Bounds()), src, image.Point{}, draw.Src)
	}
}

// Label draws a short text marker whose baseline starts at the given page
// coordinates.
func (c *Canvas) Label(text string, x, y float64, col color.Color) {
	d := xfont.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(int(x*c.scale), int(y*c.scale)),
	}
	d.DrawString(text)
}

// Image exposes the annotated raster.
func (c *Canvas) Image() image.Image { return c.img }

// EncodePNG writes the annotated raster as PNG.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
