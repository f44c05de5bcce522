package observability

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestTextLoggerFormatsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, false)
	log.Info("checking document", String("file", "paper.pdf"), Int("pages", 9))

	line := buf.String()
	if !strings.HasPrefix(line, "INFO checking document") {
		t.Fatalf("line = %q", line)
	}
	if !strings.Contains(line, "file=paper.pdf") || !strings.Contains(line, "pages=9") {
		t.Fatalf("line = %q", line)
	}
}

func TestTextLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, false)
	log.Debug("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug line emitted: %q", buf.String())
	}

	debug := NewTextLogger(&buf, true)
	debug.Debug("visible", Error("err", errors.New("boom")))
	if !strings.Contains(buf.String(), "DEBUG visible err=boom") {
		t.Fatalf("line = %q", buf.String())
	}
}

func TestTextLoggerWithBindsFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewTextLogger(&buf, false).With(String("file", "paper.pdf"))
	log.Warn("page excluded from margin check", Int("page", 3))
	line := buf.String()
	if !strings.Contains(line, "file=paper.pdf") || !strings.Contains(line, "page=3") {
		t.Fatalf("line = %q", line)
	}
}
