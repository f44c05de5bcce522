// Package font verifies that every font the document references is embedded
// and that its embedded program parses. Viewers substitute arbitrary glyphs
// for non-embedded fonts, which shifts layout and breaks archival rendering,
// so camera-ready checks treat these as errors.
package font

import (
	"bytes"
	"fmt"
	"sort"

	gofont "github.com/go-text/typesetting/font"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/doc"
)

// Checker validates the document's font assets.
type Checker struct{}

// New returns a font checker.
func New() *Checker { return &Checker{} }

func (c *Checker) Name() string { return "font" }

// Check implements check.Checker. Findings are keyed by font name and
// emitted in name order so reruns produce identical reports.
func (c *Checker) Check(ctx check.Context, d doc.Document, rep *check.Report) error {
	assets, err := d.Fonts()
	if err != nil {
		return fmt.Errorf("list fonts: %w", err)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].Name < assets[j].Name })

	seen := make(map[string]struct{})
	for _, a := range assets {
		if _, dup := seen[a.Name]; dup {
			continue
		}
		seen[a.Name] = struct{}{}

		if !a.Embedded {
			rep.Add(check.Font, fmt.Sprintf("Font %s is not embedded in the document.", a.Name))
			continue
		}
		if len(a.Program) == 0 {
			rep.Add(check.Font, fmt.Sprintf("Font %s is marked embedded but carries no font program.", a.Name))
			continue
		}
		if _, err := gofont.ParseTTF(bytes.NewReader(a.Program)); err != nil {
			rep.Add(check.Font, fmt.Sprintf("Embedded program of font %s cannot be parsed.", a.Name))
		}
	}
	return nil
}
