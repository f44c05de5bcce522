package margin

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/observability"
	"github.com/lthoang/sigconf-checker/ocr"
	"github.com/lthoang/sigconf-checker/recovery"
)

// Violation is one confirmed margin intrusion.
type Violation struct {
	Element Element
	Side    Side
	Page    int // zero-based
}

// Result holds the confirmed violations of one run, keyed by zero-based page
// index, for the annotation renderer.
type Result struct {
	TextViolations  map[int][]Violation
	ImageViolations map[int][]Violation
	// FailedPages lists 1-based pages that threw an unrecoverable error and
	// were excluded from checking, ascending.
	FailedPages []int
}

// Pages returns the zero-based indices of pages holding at least one
// confirmed violation, ascending.
func (r *Result) Pages() []int {
	set := make(map[int]struct{})
	for p := range r.TextViolations {
		set[p] = struct{}{}
	}
	for p := range r.ImageViolations {
		set[p] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}

// Checker runs the margin check over every page of a document. Pages are
// independent, so they are processed by a bounded worker pool writing into
// pre-partitioned per-page slots; results are merged in ascending page order
// afterward so report output stays deterministic.
type Checker struct {
	Rules       Rules
	Concurrency int
	Strategy    recovery.Strategy
	Logger      observability.Logger
	// Recognizer, when non-nil, OCRs the sampled region of confirmed text
	// violations so the log can name the offending words. It never alters
	// the report.
	Recognizer ocr.Engine
}

// New returns a checker with the reference rules, lenient page recovery, and
// a serial worker pool.
func New() *Checker {
	return &Checker{
		Rules:       DefaultRules(),
		Concurrency: 1,
		Strategy:    recovery.NewLenientStrategy(),
		Logger:      observability.NopLogger{},
	}
}

func (c *Checker) Name() string { return "margin" }

// Check implements check.Checker for callers that do not need the violation
// collections or a shared page-error set.
func (c *Checker) Check(ctx check.Context, d doc.Document, rep *check.Report) error {
	_, err := c.Run(ctx, d, rep, check.NewPageErrorSet())
	return err
}

type pageSlot struct {
	texts  []Violation
	images []Violation
	err    error
	fatal  bool
}

// Run checks every page not already excluded by pageErrors, appends findings
// to the report, and returns the per-page violation collections. Pages that
// fail are added to pageErrors and reported once under the Parsing category;
// one page's failure never aborts the run unless the recovery strategy says
// so.
func (c *Checker) Run(ctx check.Context, d doc.Document, rep *check.Report, pageErrors *check.PageErrorSet) (*Result, error) {
	n := d.PageCount()
	slots := make([]pageSlot, n)

	workers := c.Concurrency
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if pageErrors.Has(i + 1) {
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			slots[i] = c.checkPage(ctx, d, i)
		}(i)
	}
	wg.Wait()

	result := &Result{
		TextViolations:  make(map[int][]Violation),
		ImageViolations: make(map[int][]Violation),
	}
	for i := 0; i < n; i++ {
		s := &slots[i]
		if s.err != nil {
			if s.fatal {
				return nil, fmt.Errorf("margin check aborted: %w", s.err)
			}
			result.FailedPages = append(result.FailedPages, i+1)
			pageErrors.Add(i + 1)
			continue
		}
		if len(s.texts) > 0 {
			result.TextViolations[i] = s.texts
		}
		if len(s.images) > 0 {
			result.ImageViolations[i] = s.images
		}
	}

	if len(result.FailedPages) > 0 {
		rep.Add(check.Parsing, parsingMessage(result.FailedPages))
	}
	for _, page := range result.Pages() {
		for _, v := range result.TextViolations[page] {
			rep.Add(check.Margin, fmt.Sprintf("Text on page %d bleeds into the %s margin.", page+1, v.Side))
		}
		for range result.ImageViolations[page] {
			rep.Add(check.Margin, fmt.Sprintf("An image on page %d bleeds into the margin.", page+1))
		}
	}
	return result, nil
}

func (c *Checker) checkPage(ctx check.Context, d doc.Document, index int) pageSlot {
	var slot pageSlot

	pg, err := d.Geometry(index)
	if err == nil {
		var texts []doc.TextRun
		var images []doc.ImageBlock
		texts, images, err = d.Elements(index)
		if err == nil {
			for _, ib := range images {
				if v, ok := c.confirm(ctx, d, ImageElement(ib), pg, index); ok {
					slot.images = append(slot.images, v)
				}
			}
			for _, tr := range texts {
				if v, ok := c.confirm(ctx, d, TextElement(tr), pg, index); ok {
					slot.texts = append(slot.texts, v)
				}
			}
			return slot
		}
	}

	slot.err = err
	action := recovery.ActionSkip
	if c.Strategy != nil {
		action = c.Strategy.OnError(ctx, err, recovery.Location{Page: index, Component: "elements"})
	}
	if action == recovery.ActionFail {
		slot.fatal = true
	}
	c.logger().Warn("page excluded from margin check",
		observability.Int("page", index+1),
		observability.Error("err", err))
	return slot
}

// confirm runs the classifier and the visibility filter over one element.
func (c *Checker) confirm(ctx check.Context, d doc.Document, el Element, pg doc.PageGeometry, index int) (Violation, bool) {
	side, ok := c.Rules.Classify(el, pg)
	if !ok {
		return Violation{}, false
	}
	rect, ok := c.Rules.SampleRect(el, side, pg)
	if !ok {
		// Sliver overflow, nothing to sample.
		return Violation{}, false
	}
	sampleStart := time.Now()
	outcome, img := Sample(ctx, d, el, rect, index)
	c.logger().Debug("sampled margin region",
		observability.Int("page", index+1),
		observability.Float64(observability.MetricSampleTime, time.Since(sampleStart).Seconds()))
	if outcome == OutcomeBlank {
		return Violation{}, false
	}
	if outcome == OutcomeUnverified {
		c.logger().Warn("sample render failed, keeping violation",
			observability.Int("page", index+1),
			observability.String("side", side.String()))
	}
	if el.Kind == KindText && outcome == OutcomeInk {
		c.recognize(ctx, el, img, index, side)
	}
	return Violation{Element: el, Side: side, Page: index}, true
}

// recognize logs the OCR reading of a confirmed text intrusion. Best effort;
// failures only show up at debug level.
func (c *Checker) recognize(ctx check.Context, el Element, img image.Image, index int, side Side) {
	if c.Recognizer == nil || img == nil {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.logger().Debug("encode sample for ocr", observability.Error("err", err))
		return
	}
	res, err := c.Recognizer.Recognize(ctx, ocr.Input{
		ID:    fmt.Sprintf("page-%d-%s", index+1, side),
		Image: buf.Bytes(),
		DPI:   SampleDPI,
	})
	if err != nil {
		c.logger().Debug("ocr failed", observability.Error("err", err))
		return
	}
	if res.PlainText != "" {
		c.logger().Info("margin intrusion text",
			observability.Int("page", index+1),
			observability.String("side", side.String()),
			observability.String("text", res.PlainText))
	}
}

func (c *Checker) logger() observability.Logger {
	if c.Logger == nil {
		return observability.NopLogger{}
	}
	return c.Logger
}

func parsingMessage(pages []int) string {
	parts := make([]string, len(pages))
	for i, p := range pages {
		parts[i] = fmt.Sprint(p)
	}
	noun := "page"
	if len(pages) > 1 {
		noun = "pages"
	}
	return fmt.Sprintf("Error occurs when parsing %s %s.", noun, strings.Join(parts, ", "))
}
