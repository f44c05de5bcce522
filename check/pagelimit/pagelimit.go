// Package pagelimit caps the page count of a submission. The limit is
// venue-specific, so the check is inert until configured.
package pagelimit

import (
	"fmt"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/doc"
)

// Checker flags documents exceeding Limit pages. A zero Limit disables the
// check.
type Checker struct {
	Limit int
}

// New returns a checker with the given page cap.
func New(limit int) *Checker {
	return &Checker{Limit: limit}
}

func (c *Checker) Name() string { return "pagelimit" }

// Check implements check.Checker.
func (c *Checker) Check(ctx check.Context, d doc.Document, rep *check.Report) error {
	if c.Limit <= 0 {
		return nil
	}
	if n := d.PageCount(); n > c.Limit {
		rep.Add(check.PageLimit, fmt.Sprintf("Paper is %d pages long, above the limit of %d pages.", n, c.Limit))
	}
	return nil
}
