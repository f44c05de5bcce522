package report_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/net/html"

	"github.com/lthoang/sigconf-checker/check"
	"github.com/lthoang/sigconf-checker/report"
)

func TestJSONFileName(t *testing.T) {
	if got := report.JSONFileName("paper.pdf"); got != "errors-paper.pdf.json" {
		t.Fatalf("JSONFileName = %q", got)
	}
}

func TestWriteJSONEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors-paper.pdf.json")
	if err := report.WriteJSON(check.NewReport(), path); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read artifact: %v", err)
	}
	if string(data) != "{}" {
		t.Fatalf("artifact = %s, want {}", data)
	}
}

func TestMarkdownCleanReport(t *testing.T) {
	md := report.Markdown(check.NewReport(), "paper.pdf")
	if !strings.Contains(md, "All Clear!") {
		t.Fatalf("markdown = %q", md)
	}
}

// The HTML summary must be well-formed and carry every message. Parsed with
// the x/net/html tokenizer rather than substring checks so broken markup
// fails loudly.
func TestHTMLSummary(t *testing.T) {
	rep := check.NewReport()
	rep.Add(check.Margin, "Text on page 1 bleeds into the left margin.")
	rep.Add(check.Margin, "An image on page 2 bleeds into the margin.")
	rep.Add(check.Size, "Page #3 is not Letter size")

	data, err := report.HTML(rep, "paper.pdf")
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	root, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}

	var items []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "li" {
			items = append(items, textContent(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	if len(items) != 3 {
		t.Fatalf("list items = %v, want 3", items)
	}
	// Size comes before Margin in report order.
	if items[0] != "Page #3 is not Letter size" {
		t.Fatalf("first item = %q", items[0])
	}
	if items[1] != "Text on page 1 bleeds into the left margin." {
		t.Fatalf("second item = %q", items[1])
	}
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
