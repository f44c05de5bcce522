// Package policy lets callers override how report entries count toward the
// pass/fail exit signal. The default policy follows the category's built-in
// hard/advisory split; a scripted policy can reclassify or suppress entries
// per venue without rebuilding the checker. Policies never change the report
// artifact itself, only the caller-side counting.
package policy

import (
	"context"

	"github.com/lthoang/sigconf-checker/check"
)

// Entry is one report message presented to a policy.
type Entry struct {
	Category string
	Message  string
	// Hard is the category's built-in classification, which the policy may
	// override.
	Hard bool
}

// Verdict is a policy's decision for one entry.
type Verdict struct {
	// Keep false drops the entry from the counts entirely.
	Keep bool
	// Hard true counts the entry as a fix-required error, false as an
	// advisory warning.
	Hard bool
}

// Engine evaluates entries.
type Engine interface {
	Evaluate(ctx context.Context, e Entry) (Verdict, error)
}

// Counts tallies a report under the given policy. Parsing entries are
// informational and presented to the engine like any other entry, but the
// default policy keeps them out of both buckets. A nil engine applies the
// default policy.
func Counts(ctx context.Context, engine Engine, rep *check.Report) (errors, warnings int, err error) {
	for _, c := range check.Categories() {
		for _, msg := range rep.Messages(c) {
			v := defaultVerdict(c)
			if engine != nil {
				v, err = engine.Evaluate(ctx, Entry{Category: c.String(), Message: msg, Hard: c.Hard()})
				if err != nil {
					return 0, 0, err
				}
			}
			switch {
			case !v.Keep:
			case v.Hard:
				errors++
			default:
				warnings++
			}
		}
	}
	return errors, warnings, nil
}

func defaultVerdict(c check.Category) Verdict {
	if c == check.Parsing {
		return Verdict{Keep: false}
	}
	return Verdict{Keep: true, Hard: c.Hard()}
}
