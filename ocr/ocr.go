// Package ocr defines the engine interface used to recognize the text of a
// confirmed margin intrusion, so log output can name the offending words.
// The default engine does nothing; importing the tesseract subpackage
// installs a gosseract-backed engine.
package ocr

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Input is a single encoded image submitted for recognition.
type Input struct {
	// ID is echoed back in the corresponding Result.
	ID string
	// Image is the encoded image payload (PNG).
	Image []byte
	// DPI is the effective resolution of the image; zero means unknown.
	DPI int
	// Languages holds trained-data hints such as "eng".
	Languages []string
}

// Result carries the recognized text for one input.
type Result struct {
	InputID   string
	PlainText string
}

// Engine recognizes text in images.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, in Input) (Result, error)
}

var defaultEngine Engine = noopEngine{}

// DefaultEngine returns the process-wide engine. It is a no-op until an
// engine package registers itself via SetDefaultEngine.
func DefaultEngine() Engine { return defaultEngine }

// SetDefaultEngine installs the process-wide engine.
func SetDefaultEngine(e Engine) {
	if e != nil {
		defaultEngine = e
	}
}

type noopEngine struct{}

func (noopEngine) Name() string { return "noop" }

func (noopEngine) Recognize(ctx context.Context, in Input) (Result, error) {
	return Result{InputID: in.ID}, nil
}

// NormalizeText canonicalizes recognized text: NFC normalization and
// whitespace collapsed to single spaces. OCR output tends to carry stray
// newlines and decomposed accents.
func NormalizeText(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
