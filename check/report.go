package check

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Report accumulates human-readable findings keyed by category. Messages are
// append-only during a check run and keep their append order; the report
// carries no timestamps so identical runs serialize byte-identically.
// A Report is not safe for concurrent use; checks merge their per-page
// results before appending.
type Report struct {
	entries map[Category][]string
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{entries: make(map[Category][]string)}
}

// Add appends one message under the category.
func (r *Report) Add(c Category, msg string) {
	r.entries[c] = append(r.entries[c], msg)
}

// Messages returns the messages recorded under the category, in append order.
func (r *Report) Messages(c Category) []string {
	return r.entries[c]
}

// Clean reports whether the report holds no entries at all.
func (r *Report) Clean() bool {
	for _, msgs := range r.entries {
		if len(msgs) > 0 {
			return false
		}
	}
	return true
}

// Counts returns the number of hard errors and advisory warnings. Parsing
// entries are informational and counted in neither bucket.
func (r *Report) Counts() (errors, warnings int) {
	for c, msgs := range r.entries {
		switch {
		case c == Parsing:
		case c.Hard():
			errors += len(msgs)
		default:
			warnings += len(msgs)
		}
	}
	return errors, warnings
}

// MarshalJSON emits an object mapping category names to message lists.
// Categories are written in enum order and empty categories are omitted, so
// reruns over an unmodified document produce identical bytes.
func (r *Report) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, c := range Categories() {
		msgs := r.entries[c]
		if len(msgs) == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		key, err := json.Marshal(c.String())
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(msgs)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// PageErrorSet records 1-based page numbers excluded from further checking
// because they already failed the size check or threw a decode error. A page
// present here is never revisited by margin checks in the same run.
type PageErrorSet struct {
	pages map[int]struct{}
}

// NewPageErrorSet returns an empty set.
func NewPageErrorSet() *PageErrorSet {
	return &PageErrorSet{pages: make(map[int]struct{})}
}

// Add records a 1-based page number.
func (s *PageErrorSet) Add(page int) {
	s.pages[page] = struct{}{}
}

// Has reports whether the 1-based page number is excluded.
func (s *PageErrorSet) Has(page int) bool {
	_, ok := s.pages[page]
	return ok
}

// Pages returns the excluded page numbers in ascending order.
func (s *PageErrorSet) Pages() []int {
	out := make([]int, 0, len(s.pages))
	for p := range s.pages {
		out = append(out, p)
	}
	sort.Ints(out)
	return out
}
