// Package report serializes a check report to its artifacts: the JSON log
// consumed by tooling and an HTML summary for people.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/lthoang/sigconf-checker/check"
)

// JSONFileName returns the artifact name for a source document:
// errors-<sourceName>.json.
func JSONFileName(sourceName string) string {
	return fmt.Sprintf("errors-%s.json", sourceName)
}

// WriteJSON writes the report to path. An empty report still produces a
// valid empty-object artifact.
func WriteJSON(rep *check.Report, path string) error {
	data, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Markdown renders the report as a Markdown summary, categories in report
// order.
func Markdown(rep *check.Report, sourceName string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Format check: %s\n\n", sourceName)
	clean := true
	for _, c := range check.Categories() {
		msgs := rep.Messages(c)
		if len(msgs) == 0 {
			continue
		}
		clean = false
		fmt.Fprintf(&b, "## %s\n\n", c.String())
		for _, m := range msgs {
			fmt.Fprintf(&b, "- %s\n", m)
		}
		b.WriteString("\n")
	}
	if clean {
		b.WriteString("All Clear!\n")
	}
	return b.String()
}

// HTML renders the Markdown summary to HTML.
func HTML(rep *check.Report, sourceName string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(rep, sourceName)), &buf); err != nil {
		return nil, fmt.Errorf("render report html: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML writes the HTML summary to path.
func WriteHTML(rep *check.Report, sourceName, path string) error {
	data, err := HTML(rep, sourceName)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
