package pagelimit_test

import (
	"context"
	"testing"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/check/pagelimit"
	"github.com/lthoang/sigconf-checker/doc/doctest"
)

func pages(n int) *doctest.Document {
	d := &doctest.Document{}
	for i := 0; i < n; i++ {
		d.Pages = append(d.Pages, doctest.Letter())
	}
	return d
}

func TestCheckOverLimit(t *testing.T) {
	rep := check.NewReport()
	if err := pagelimit.New(10).Check(context.Background(), pages(12), rep); err != nil {
		t.Fatalf("Check: %v", err)
	}
	msgs := rep.Messages(check.PageLimit)
	if len(msgs) != 1 || msgs[0] != "Paper is 12 pages long, above the limit of 10 pages." {
		t.Fatalf("messages = %v", msgs)
	}
}

func TestCheckAtLimitIsClean(t *testing.T) {
	rep := check.NewReport()
	if err := pagelimit.New(10).Check(context.Background(), pages(10), rep); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !rep.Clean() {
		t.Fatalf("messages = %v", rep.Messages(check.PageLimit))
	}
}

func TestZeroLimitDisablesCheck(t *testing.T) {
	rep := check.NewReport()
	if err := pagelimit.New(0).Check(context.Background(), pages(500), rep); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !rep.Clean() {
		t.Fatalf("messages = %v", rep.Messages(check.PageLimit))
	}
}
