// Package check defines the violation report shared by all format checks and
// the interface each check implements. Concrete checks live in subpackages
// (margin, size, font, pagelimit).
package check

import (
	"context"

	"github.com/lthoang/sigconf-checker/doc"
)

// Context is an alias for context.Context to allow for future expansion.
type Context = context.Context

// Checker inspects one decoded document and appends findings to the report.
type Checker interface {
	Name() string
	Check(ctx Context, d doc.Document, rep *Report) error
}

// Category classifies report entries. The set is fixed; every consumption
// site switches exhaustively so adding a category is a compile-time-checked
// change.
type Category int

const (
	Size Category = iota
	Parsing
	Margin
	Spelling
	Font
	PageLimit
	numCategories
)

func (c Category) String() string {
	switch c {
	case Size:
		return "Size"
	case Parsing:
		return "Parsing"
	case Margin:
		return "Margin"
	case Spelling:
		return "Spelling"
	case Font:
		return "Font"
	case PageLimit:
		return "Page Limit"
	default:
		return "Unknown"
	}
}

// Hard reports whether entries in this category require a fix before the
// document passes. Advisory categories still appear in the report but are
// counted as warnings by callers.
func (c Category) Hard() bool {
	switch c {
	case Size, Margin, Font:
		return true
	case Parsing, Spelling, PageLimit:
		return false
	default:
		return false
	}
}

// Categories lists all categories in report order.
func Categories() []Category {
	out := make([]Category, 0, int(numCategories))
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}
