// Command sigconf-check inspects PDF papers for SIGCONF physical-layout
// compliance: page size and margin intrusions. It writes a JSON log and
// annotated page images per offending paper and exits nonzero when any
// fix-required finding exists.
package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/formatter"
	"github.com/lthoang/sigconf-checker/observability"
	_ "github.com/lthoang/sigconf-checker/ocr/tesseract"
	"github.com/lthoang/sigconf-checker/policy"
	"github.com/lthoang/sigconf-checker/report"
)

type options struct {
	paths      []string
	outDir     string
	workers    int
	pageJobs   int
	pageLimit  int
	fonts      bool
	html       bool
	ocr        bool
	policyPath string
	verbose    bool
	noColor    bool
}

func main() {
	opts, err := parseFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "sigconf-check: %v\n", err)
		os.Exit(2)
	}
	code, err := run(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "sigconf-check: %v\n", err)
		os.Exit(1)
	}
	os.Exit(code)
}

func parseFlags() (options, error) {
	var opts options
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: sigconf-check [flags] <file_or_dir>...\n")
		flag.PrintDefaults()
	}
	flag.StringVar(&opts.outDir, "o", ".", "Output directory for JSON logs and annotated images")
	flag.IntVar(&opts.workers, "workers", 1, "Number of papers checked in parallel")
	flag.IntVar(&opts.pageJobs, "page-jobs", 1, "Number of pages checked in parallel per paper")
	flag.IntVar(&opts.pageLimit, "page-limit", 0, "Flag papers above this many pages (0 disables)")
	flag.BoolVar(&opts.fonts, "fonts", false, "Check that referenced fonts are embedded")
	flag.BoolVar(&opts.html, "html", false, "Also write an HTML summary per paper")
	flag.BoolVar(&opts.ocr, "ocr", false, "OCR confirmed text intrusions into the log")
	flag.StringVar(&opts.policyPath, "policy", "", "JavaScript policy script overriding severity per finding")
	flag.BoolVar(&opts.verbose, "verbose", false, "Log progress to stderr")
	flag.BoolVar(&opts.noColor, "no-color", false, "Disable ANSI colors")
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		return options{}, fmt.Errorf("missing file or directory arguments")
	}
	opts.paths = flag.Args()
	return opts, nil
}

func run(opts options) (int, error) {
	files, err := collectPDFs(opts.paths)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		fmt.Printf("No PDF files found in %v\n", opts.paths)
		return 0, nil
	}

	var pol policy.Engine
	if opts.policyPath != "" {
		script, err := os.ReadFile(opts.policyPath)
		if err != nil {
			return 0, fmt.Errorf("read policy script: %w", err)
		}
		pol, err = policy.NewGojaEngine(string(script))
		if err != nil {
			return 0, err
		}
	}

	cfg := formatter.DefaultConfig()
	cfg.OutputDir = opts.outDir
	cfg.Concurrency = opts.pageJobs
	cfg.PageLimit = opts.pageLimit
	cfg.CheckFonts = opts.fonts
	cfg.WriteHTML = opts.html
	cfg.RecognizeMargins = opts.ocr
	if opts.verbose {
		cfg.Logger = observability.NewTextLogger(os.Stderr, false)
	}

	ctx := context.Background()
	results := formatter.New(cfg).CheckBatch(ctx, files, opts.workers)

	p := printer{color: !opts.noColor}
	exit := 0
	for _, res := range results {
		fmt.Printf("Checking %s\n", res.Path)
		if res.Err != nil {
			p.printf(colorRed, "Error:")
			fmt.Printf(" %v\n", res.Err)
			exit = 1
			continue
		}
		code, err := p.summarize(ctx, res, pol, opts.outDir)
		if err != nil {
			return 0, err
		}
		if code != 0 {
			exit = code
		}
	}
	return exit, nil
}

func collectPDFs(args []string) ([]string, error) {
	set := make(map[string]struct{})
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			set[arg] = struct{}{}
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() {
				set[path] = struct{}{}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	var files []string
	for path := range set {
		if strings.HasSuffix(path, ".pdf") {
			files = append(files, path)
		}
	}
	sort.Strings(files)
	return files, nil
}

const (
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorGreen  = "\x1b[32m"
	colorReset  = "\x1b[0m"
)

type printer struct {
	color bool
}

func (p printer) printf(color, format string, args ...interface{}) {
	if p.color {
		fmt.Print(color)
	}
	fmt.Printf(format, args...)
	if p.color {
		fmt.Print(colorReset)
	}
}

func (p printer) summarize(ctx context.Context, res formatter.Result, pol policy.Engine, outDir string) (int, error) {
	if res.Report.Clean() {
		p.printf(colorGreen, "All Clear!")
		fmt.Println()
		return 0, nil
	}

	fmt.Printf("Errors. Check %s for details.\n", report.JSONFileName(filepath.Base(res.Path)))
	for _, c := range check.Categories() {
		for _, msg := range res.Report.Messages(c) {
			switch {
			case c == check.Parsing:
				p.printf(colorYellow, "Parsing Error:")
			case c.Hard():
				p.printf(colorRed, "Error (%s):", c)
			default:
				p.printf(colorYellow, "Warning (%s):", c)
			}
			fmt.Printf(" %s\n", msg)
		}
	}

	errors, warnings, err := policy.Counts(ctx, pol, res.Report)
	if err != nil {
		return 0, err
	}
	fmt.Println()
	fmt.Printf("We detected %d %s and %d %s in your paper.\n",
		errors, plural(errors, "error"), warnings, plural(warnings, "warning"))
	fmt.Println("In general, it is required that you fix errors for your paper to be published. Fixing warnings is optional, but recommended.")
	fmt.Println("Important: Some of the margin errors may be spurious. The library detects the location of images, but not whether they have a white background that blends in.")
	if errors >= 1 {
		return 1, nil
	}
	return 0, nil
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}
