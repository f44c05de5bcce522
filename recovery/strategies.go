package recovery

import (
	"fmt"
	"sync"
)

// StrictStrategy aborts the document on the first per-page error.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy {
	return &StrictStrategy{}
}

func (s *StrictStrategy) OnError(ctx Context, err error, location Location) Action {
	return ActionFail
}

// LenientStrategy records every per-page error and keeps the run going.
// One page's failure never aborts the document; the page is skipped and
// surfaces in the report's Parsing category. Safe for use from concurrent
// page workers.
type LenientStrategy struct {
	mu     sync.Mutex
	errors []error
}

func NewLenientStrategy() *LenientStrategy {
	return &LenientStrategy{}
}

func (s *LenientStrategy) OnError(ctx Context, err error, location Location) Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, fmt.Errorf("[%s] page %d: %w", location.Component, location.Page+1, err))
	return ActionSkip
}

// Errors returns the errors collected so far.
func (s *LenientStrategy) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errors...)
}
