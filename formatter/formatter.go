// Package formatter orchestrates a full format check over one document:
// decode, size check, margin check, optional supplementary checks,
// annotated page images, and the JSON artifact.
package formatter

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/lthoang/sigconf-checker/annotate"
	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/check/font"
	"github.com/lthoang/sigconf-checker/check/margin"
	"github.com/lthoang/sigconf-checker/check/pagelimit"
	"github.com/lthoang/sigconf-checker/check/size"
	"github.com/lthoang/sigconf-checker/doc"
	"github.com/lthoang/sigconf-checker/observability"
	"github.com/lthoang/sigconf-checker/ocr"
	"github.com/lthoang/sigconf-checker/recovery"
	"github.com/lthoang/sigconf-checker/report"
)

// Config controls one Formatter. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	Rules margin.Rules

	// PageLimit enables the page-count check when positive.
	PageLimit int
	// CheckFonts enables the font embedding check.
	CheckFonts bool
	// RecognizeMargins OCRs confirmed text intrusions into the log.
	RecognizeMargins bool

	// Concurrency bounds the per-page worker pool of the margin check.
	// Rendering dominates cost and each rendered buffer is page-sized, so
	// this also bounds peak memory.
	Concurrency int

	// OutputDir receives the JSON artifact and annotated page images.
	OutputDir string
	// WriteArtifacts controls whether the JSON log (always, even when
	// empty) and annotated PNGs are written to OutputDir.
	WriteArtifacts bool
	// WriteHTML additionally writes an HTML summary next to the JSON log.
	WriteHTML bool

	Decoder  doc.Decoder
	Strategy recovery.Strategy
	Logger   observability.Logger
	Tracer   observability.Tracer
}

// DefaultConfig returns the reference configuration: SIGCONF rules, serial
// processing, artifacts into the current directory.
func DefaultConfig() Config {
	return Config{
		Rules:          margin.DefaultRules(),
		Concurrency:    1,
		OutputDir:      ".",
		WriteArtifacts: true,
		Decoder:        doc.DefaultDecoder(),
		Strategy:       recovery.NewLenientStrategy(),
		Logger:         observability.NopLogger{},
		Tracer:         observability.NopTracer(),
	}
}

// Result is the outcome of checking one document.
type Result struct {
	Path      string
	Report    *check.Report
	Annotated []string
	Err       error
}

// Formatter runs format checks. It holds no per-document state and is safe
// for concurrent use across documents.
type Formatter struct {
	cfg Config
}

// New returns a Formatter for the configuration.
func New(cfg Config) *Formatter {
	if cfg.Logger == nil {
		cfg.Logger = observability.NopLogger{}
	}
	if cfg.Tracer == nil {
		cfg.Tracer = observability.NopTracer()
	}
	if cfg.Decoder == nil {
		cfg.Decoder = doc.DefaultDecoder()
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Formatter{cfg: cfg}
}

// CheckFile runs the full check over one document. A decode failure aborts
// only this document; per-page failures are isolated inside the checks and
// surface in the report's Parsing category.
func (f *Formatter) CheckFile(ctx context.Context, path string) Result {
	log := f.cfg.Logger.With(observability.String("file", filepath.Base(path)))
	ctx, span := f.cfg.Tracer.StartSpan(ctx, "formatter.check")
	defer span.Finish()
	span.SetTag("path", path)
	start := time.Now()
	defer func() { span.SetTag(observability.MetricCheckTime, time.Since(start)) }()

	res := Result{Path: path, Report: check.NewReport()}

	d, err := f.cfg.Decoder.Decode(path)
	if err != nil {
		span.SetError(err)
		res.Err = err
		return res
	}
	defer d.Close()

	log.Info("checking document", observability.Int("pages", d.PageCount()))
	span.SetTag(observability.MetricPageCount, d.PageCount())
	pageErrors := check.NewPageErrorSet()

	if err := size.New().Run(ctx, d, res.Report, pageErrors); err != nil {
		span.SetError(err)
		res.Err = fmt.Errorf("size check: %w", err)
		return res
	}

	mc := margin.New()
	mc.Rules = f.cfg.Rules
	mc.Concurrency = f.cfg.Concurrency
	mc.Logger = log
	if f.cfg.Strategy != nil {
		mc.Strategy = f.cfg.Strategy
	}
	if f.cfg.RecognizeMargins {
		mc.Recognizer = ocr.DefaultEngine()
	}
	violations, err := mc.Run(ctx, d, res.Report, pageErrors)
	if err != nil {
		span.SetError(err)
		res.Err = fmt.Errorf("margin check: %w", err)
		return res
	}
	span.SetTag(observability.MetricViolationCount, len(res.Report.Messages(check.Margin)))

	if f.cfg.CheckFonts {
		if err := font.New().Check(ctx, d, res.Report); err != nil {
			// Missing font metadata degrades to an unchecked aspect, not a
			// failed document.
			log.Warn("font check skipped", observability.Error("err", err))
		}
	}
	if f.cfg.PageLimit > 0 {
		if err := pagelimit.New(f.cfg.PageLimit).Check(ctx, d, res.Report); err != nil {
			res.Err = fmt.Errorf("page limit check: %w", err)
			return res
		}
	}

	if f.cfg.WriteArtifacts {
		sourceName := filepath.Base(path)
		ann := annotate.New()
		ann.Logger = log
		res.Annotated, err = ann.WritePages(ctx, d, violations, sourceName, f.cfg.OutputDir)
		if err != nil {
			res.Err = fmt.Errorf("annotate: %w", err)
			return res
		}
		span.SetTag(observability.MetricAnnotatedPages, len(res.Annotated))
		jsonPath := filepath.Join(f.cfg.OutputDir, report.JSONFileName(sourceName))
		if err := report.WriteJSON(res.Report, jsonPath); err != nil {
			res.Err = err
			return res
		}
		if f.cfg.WriteHTML {
			htmlPath := jsonPath[:len(jsonPath)-len("json")] + "html"
			if err := report.WriteHTML(res.Report, sourceName, htmlPath); err != nil {
				res.Err = err
				return res
			}
		}
	}

	errs, warns := res.Report.Counts()
	log.Info("check finished",
		observability.Int("errors", errs),
		observability.Int("warnings", warns))
	return res
}

// CheckBatch checks several documents concurrently. Documents share no state
// and artifact names are derived from the source filename, so the only
// bound is the worker count.
func (f *Formatter) CheckBatch(ctx context.Context, paths []string, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(paths))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = f.CheckFile(ctx, path)
		}(i, path)
	}
	wg.Wait()
	return results
}
