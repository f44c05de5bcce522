package observability

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// TextLogger writes key=value formatted log lines to a writer. It is the
// logger the CLI installs when -verbose is set.
type TextLogger struct {
	mu    sync.Mutex
	w     io.Writer
	min   level
	bound []Field
}

type level int

const (
	levelDebug level = iota
	levelInfo
	levelWarn
	levelError
)

func (l level) String() string {
	switch l {
	case levelDebug:
		return "DEBUG"
	case levelInfo:
		return "INFO"
	case levelWarn:
		return "WARN"
	default:
		return "ERROR"
	}
}

// NewTextLogger returns a logger writing to w. When debug is false, Debug
// lines are dropped.
func NewTextLogger(w io.Writer, debug bool) *TextLogger {
	min := levelInfo
	if debug {
		min = levelDebug
	}
	return &TextLogger{w: w, min: min}
}

func (l *TextLogger) Debug(msg string, fields ...Field) { l.log(levelDebug, msg, fields) }
func (l *TextLogger) Info(msg string, fields ...Field)  { l.log(levelInfo, msg, fields) }
func (l *TextLogger) Warn(msg string, fields ...Field)  { l.log(levelWarn, msg, fields) }
func (l *TextLogger) Error(msg string, fields ...Field) { l.log(levelError, msg, fields) }

func (l *TextLogger) With(fields ...Field) Logger {
	child := &TextLogger{w: l.w, min: l.min}
	child.bound = append(append([]Field(nil), l.bound...), fields...)
	return child
}

func (l *TextLogger) log(lv level, msg string, fields []Field) {
	if lv < l.min {
		return
	}
	var b strings.Builder
	b.WriteString(lv.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, f := range l.bound {
		fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
	}
	for _, f := range fields {
		fmt.Fprintf(&b, " %s=%v", f.Key(), f.Value())
	}
	b.WriteByte('\n')
	l.mu.Lock()
	defer l.mu.Unlock()
	io.WriteString(l.w, b.String())
}
