package check_test

import (
	"encoding/json"
	"testing"

	"github.com/lthoang/sigconf-checker/check"
)

func TestCategoryStrings(t *testing.T) {
	want := map[check.Category]string{
		check.Size:      "Size",
		check.Parsing:   "Parsing",
		check.Margin:    "Margin",
		check.Spelling:  "Spelling",
		check.Font:      "Font",
		check.PageLimit: "Page Limit",
	}
	for c, s := range want {
		if c.String() != s {
			t.Errorf("%d.String() = %q, want %q", c, c.String(), s)
		}
	}
}

func TestCategoryHard(t *testing.T) {
	hard := map[check.Category]bool{
		check.Size:      true,
		check.Margin:    true,
		check.Font:      true,
		check.Parsing:   false,
		check.Spelling:  false,
		check.PageLimit: false,
	}
	for _, c := range check.Categories() {
		if c.Hard() != hard[c] {
			t.Errorf("%s.Hard() = %v, want %v", c, c.Hard(), hard[c])
		}
	}
}

func TestReportMarshalOrderAndOmission(t *testing.T) {
	rep := check.NewReport()
	rep.Add(check.Margin, "Text on page 1 bleeds into the left margin.")
	rep.Add(check.Size, "Page #2 is not Letter size")
	rep.Add(check.Margin, "An image on page 3 bleeds into the margin.")

	data, err := json.Marshal(rep)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"Size":["Page #2 is not Letter size"],"Margin":["Text on page 1 bleeds into the left margin.","An image on page 3 bleeds into the margin."]}`
	if string(data) != want {
		t.Fatalf("marshal = %s, want %s", data, want)
	}
}

func TestEmptyReportMarshalsToEmptyObject(t *testing.T) {
	data, err := json.Marshal(check.NewReport())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("marshal = %s, want {}", data)
	}
}

func TestReportCleanAndCounts(t *testing.T) {
	rep := check.NewReport()
	if !rep.Clean() {
		t.Fatal("fresh report should be clean")
	}
	rep.Add(check.Parsing, "Error occurs when parsing page 3.")
	rep.Add(check.Margin, "Text on page 1 bleeds into the top margin.")
	rep.Add(check.PageLimit, "Paper is 12 pages long, above the limit of 10 pages.")
	if rep.Clean() {
		t.Fatal("report with entries should not be clean")
	}
	errs, warns := rep.Counts()
	if errs != 1 || warns != 1 {
		t.Fatalf("Counts = (%d, %d), want (1, 1)", errs, warns)
	}
}

func TestPageErrorSet(t *testing.T) {
	s := check.NewPageErrorSet()
	s.Add(5)
	s.Add(2)
	s.Add(5)
	if !s.Has(5) || s.Has(3) {
		t.Fatal("Has misbehaves")
	}
	got := s.Pages()
	if len(got) != 2 || got[0] != 2 || got[1] != 5 {
		t.Fatalf("Pages = %v, want [2 5]", got)
	}
}
