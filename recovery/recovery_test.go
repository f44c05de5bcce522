package recovery_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/lthoang/sigconf-checker/recovery"
)

func TestStrictStrategyFails(t *testing.T) {
	s := recovery.NewStrictStrategy()
	action := s.OnError(context.Background(), errors.New("content stream corrupt"),
		recovery.Location{Page: 2, Component: "elements"})
	if action != recovery.ActionFail {
		t.Fatalf("action = %v, want ActionFail", action)
	}
}

func TestLenientStrategySkipsAndRecords(t *testing.T) {
	s := recovery.NewLenientStrategy()
	action := s.OnError(context.Background(), errors.New("content stream corrupt"),
		recovery.Location{Page: 2, Component: "elements"})
	if action != recovery.ActionSkip {
		t.Fatalf("action = %v, want ActionSkip", action)
	}
	errs := s.Errors()
	if len(errs) != 1 {
		t.Fatalf("errors = %v, want one entry", errs)
	}
	// Locations report 1-based pages.
	if !strings.Contains(errs[0].Error(), "page 3") {
		t.Fatalf("error = %v, want page 3 mentioned", errs[0])
	}
}

func TestLenientStrategyConcurrentUse(t *testing.T) {
	s := recovery.NewLenientStrategy()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.OnError(context.Background(), errors.New("boom"), recovery.Location{Page: i, Component: "sample"})
		}(i)
	}
	wg.Wait()
	if got := len(s.Errors()); got != 16 {
		t.Fatalf("errors = %d, want 16", got)
	}
}
