// Package size checks page dimensions against the Letter reference size.
// Pages that fail are excluded from the margin check for the rest of the
// run.
package size

import (
	"fmt"
	"math"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/doc"
)

// Letter page dimensions in points.
const (
	LetterWidth  = 612
	LetterHeight = 792
)

// Checker flags pages whose rounded dimensions differ from the reference.
type Checker struct {
	Width  float64
	Height float64
}

// New returns a checker against Letter size.
func New() *Checker {
	return &Checker{Width: LetterWidth, Height: LetterHeight}
}

func (c *Checker) Name() string { return "size" }

// Check implements check.Checker.
func (c *Checker) Check(ctx check.Context, d doc.Document, rep *check.Report) error {
	return c.Run(ctx, d, rep, check.NewPageErrorSet())
}

// Run records every mis-sized page under the Size category and adds it to
// pageErrors so later checks skip it.
func (c *Checker) Run(ctx check.Context, d doc.Document, rep *check.Report, pageErrors *check.PageErrorSet) error {
	for i := 0; i < d.PageCount(); i++ {
		pg, err := d.Geometry(i)
		if err != nil {
			return fmt.Errorf("page %d geometry: %w", i+1, err)
		}
		if math.Round(pg.Width) != c.Width || math.Round(pg.Height) != c.Height {
			rep.Add(check.Size, fmt.Sprintf("Page #%d is not Letter size", i+1))
			pageErrors.Add(i + 1)
		}
	}
	return nil
}
