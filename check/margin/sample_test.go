package margin_test

import (
	"context"
	"errors"
	"image/color"
	"testing"

	"github.com/lthoang/sigconf-checker/check/margin"
	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/doc/doctest"
	"github.com/lthoang/sigconf-checker/geom"
)

func TestSampleRectClipsPerSide(t *testing.T) {
	rules := margin.DefaultRules()
	cases := []struct {
		name string
		el   margin.Element
		side margin.Side
		want geom.Rect
	}{
		{
			// Left clip caps x1 at margin_left - offset_left = 52.
			name: "left",
			el:   blueText(geom.NewRect(10, 100, 60, 110)),
			side: margin.SideLeft,
			want: geom.NewRect(10, 100, 52, 110),
		},
		{
			// Right clip raises x0 to width - margin_right + offset_right = 562.5.
			name: "right",
			el:   blueText(geom.NewRect(540, 100, 608, 110)),
			side: margin.SideRight,
			want: geom.NewRect(562.5, 100, 608, 110),
		},
		{
			// Top clip caps y1 at margin_top - offset_top = 56.
			name: "top",
			el:   blueText(geom.NewRect(100, 30, 200, 80)),
			side: margin.SideTop,
			want: geom.NewRect(100, 30, 200, 56),
		},
		{
			// Bottom clip (text only) raises y1 to height - (margin_bottom -
			// offset_bottom) = 720.
			name: "bottom",
			el:   blueText(geom.NewRect(100, 700, 200, 710)),
			side: margin.SideBottom,
			want: geom.NewRect(100, 700, 200, 720),
		},
	}
	for _, tc := range cases {
		got, ok := rules.SampleRect(tc.el, tc.side, letter)
		if !ok {
			t.Errorf("%s: skipped, want %+v", tc.name, tc.want)
			continue
		}
		if got != tc.want {
			t.Errorf("%s: rect = %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestSampleRectTruncatesFractionalCoordinates(t *testing.T) {
	rules := margin.DefaultRules()
	el := blueText(geom.NewRect(10.9, 100.7, 49.2, 110.9))
	got, ok := rules.SampleRect(el, margin.SideLeft, letter)
	if !ok {
		t.Fatal("skipped")
	}
	want := geom.NewRect(10, 100, 49, 110)
	if got != want {
		t.Fatalf("rect = %+v, want %+v", got, want)
	}
}

func TestSampleRectSkipsSlivers(t *testing.T) {
	rules := margin.DefaultRules()
	cases := []struct {
		name string
		el   margin.Element
		side margin.Side
	}{
		{"one point wide", blueText(geom.NewRect(51, 100, 60, 110)), margin.SideLeft},
		{"one point tall", blueText(geom.NewRect(10, 100, 52, 101)), margin.SideLeft},
	}
	for _, tc := range cases {
		if rect, ok := rules.SampleRect(tc.el, tc.side, letter); ok {
			t.Errorf("%s: rect = %+v, want skip", tc.name, rect)
		}
	}
}

func TestSampleRectClampsToPage(t *testing.T) {
	rules := margin.DefaultRules()
	el := blueText(geom.NewRect(-40, -10, 40, 110))
	got, ok := rules.SampleRect(el, margin.SideLeft, letter)
	if !ok {
		t.Fatal("skipped")
	}
	if got.X0 != 0 || got.Top != 0 {
		t.Fatalf("rect = %+v, want clamped to page origin", got)
	}
}

func TestSampleImageBlankAndInk(t *testing.T) {
	rect := geom.NewRect(10, 100, 52, 110)
	el := margin.ImageElement(doc.ImageBlock{BBox: geom.NewRect(10, 100, 60, 110)})

	white := &doctest.Document{Pages: []doctest.Page{doctest.Letter()}}
	outcome, _ := margin.Sample(context.Background(), white, el, rect, 0)
	if outcome != margin.OutcomeBlank {
		t.Fatalf("all-white image region = %v, want blank", outcome)
	}

	// A single non-white pixel makes the mean deviate from 255.
	speck := doctest.Letter()
	speck.Pixel = doctest.SolidRegion(geom.NewRect(20, 104, 21, 105), color.RGBA{R: 254, G: 254, B: 254, A: 255})
	inked := &doctest.Document{Pages: []doctest.Page{speck}}
	outcome, _ = margin.Sample(context.Background(), inked, el, rect, 0)
	if outcome != margin.OutcomeInk {
		t.Fatalf("image region with speck = %v, want ink", outcome)
	}

	// Red is not background for images.
	red := doctest.Letter()
	red.Pixel = func(x, y float64) color.Color { return color.RGBA{R: 255, A: 255} }
	outcome, _ = margin.Sample(context.Background(), &doctest.Document{Pages: []doctest.Page{red}}, el, rect, 0)
	if outcome != margin.OutcomeInk {
		t.Fatalf("all-red image region = %v, want ink", outcome)
	}
}

func TestSampleTextWhiteAndRedAreSafe(t *testing.T) {
	rect := geom.NewRect(10, 100, 52, 110)
	el := blueText(geom.NewRect(10, 100, 60, 110))

	// Reviewer line numbers print pure red in the margin; they are expected.
	striped := doctest.Letter()
	striped.Pixel = doctest.SolidRegion(geom.NewRect(15, 100, 30, 110), color.RGBA{R: 255, A: 255})
	outcome, _ := margin.Sample(context.Background(), &doctest.Document{Pages: []doctest.Page{striped}}, el, rect, 0)
	if outcome != margin.OutcomeBlank {
		t.Fatalf("white+red text region = %v, want blank", outcome)
	}

	// Any other color is ink.
	blue := doctest.Letter()
	blue.Pixel = doctest.SolidRegion(geom.NewRect(15, 100, 30, 110), color.RGBA{B: 255, A: 255})
	outcome, _ = margin.Sample(context.Background(), &doctest.Document{Pages: []doctest.Page{blue}}, el, rect, 0)
	if outcome != margin.OutcomeInk {
		t.Fatalf("blue text region = %v, want ink", outcome)
	}
}

func TestSampleRenderFailureIsUnverified(t *testing.T) {
	broken := doctest.Letter()
	broken.RenderErr = errors.New("rasterizer crashed")
	d := &doctest.Document{Pages: []doctest.Page{broken}}
	el := blueText(geom.NewRect(10, 100, 60, 110))
	outcome, img := margin.Sample(context.Background(), d, el, geom.NewRect(10, 100, 52, 110), 0)
	if outcome != margin.OutcomeUnverified {
		t.Fatalf("outcome = %v, want unverified", outcome)
	}
	if img != nil {
		t.Fatal("unverified sample should carry no buffer")
	}
}
