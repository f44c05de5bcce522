// Package recovery decides what happens when a page cannot be fully checked.
// The margin checker consults a Strategy whenever element extraction or
// rasterization fails; the strategy either aborts the document or records
// the page and lets the run continue.
package recovery

type Strategy interface {
	OnError(ctx Context, err error, location Location) Action
}

// Location identifies where in a document an error occurred.
type Location struct {
	// Page is the zero-based page index, or -1 when the error is not tied to
	// a single page.
	Page int
	// Component names the failing stage ("elements", "sample", "annotate").
	Component string
}

type Action int

const (
	// ActionFail aborts processing of the current document.
	ActionFail Action = iota
	// ActionSkip excludes the page from further checks and records it under
	// the Parsing category.
	ActionSkip
	// ActionWarn records the page but keeps checking it.
	ActionWarn
)

type Context interface{ Done() <-chan struct{} }
