package policy

import (
	"context"
	"fmt"

	"github.com/dop251/goja"
)

// GojaEngine evaluates entries through a user-supplied JavaScript function.
// The script must define
//
//	function verdict(category, message, hard)
//
// returning either a boolean (keep with the built-in severity) or an object
// {keep: bool, hard: bool}. The engine is not safe for concurrent use.
type GojaEngine struct {
	vm *goja.Runtime
	fn goja.Callable
}

// NewGojaEngine compiles the policy script and resolves its verdict
// function.
func NewGojaEngine(script string) (*GojaEngine, error) {
	vm := goja.New()
	if _, err := vm.RunString(script); err != nil {
		return nil, fmt.Errorf("compile policy script: %w", err)
	}
	fn, ok := goja.AssertFunction(vm.Get("verdict"))
	if !ok {
		return nil, fmt.Errorf("policy script does not define verdict(category, message, hard)")
	}
	return &GojaEngine{vm: vm, fn: fn}, nil
}

// Evaluate implements Engine. An expired context interrupts the script.
func (e *GojaEngine) Evaluate(ctx context.Context, entry Entry) (Verdict, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Verdict{}, err
	}

	done := make(chan struct{})
	defer close(done)
	defer e.vm.ClearInterrupt()
	go func() {
		select {
		case <-ctx.Done():
			e.vm.Interrupt(ctx.Err())
		case <-done:
		}
	}()

	val, err := e.fn(goja.Undefined(),
		e.vm.ToValue(entry.Category),
		e.vm.ToValue(entry.Message),
		e.vm.ToValue(entry.Hard))
	if err != nil {
		if interrupted, ok := err.(*goja.InterruptedError); ok {
			if cause := interrupted.Unwrap(); cause != nil {
				return Verdict{}, cause
			}
			return Verdict{}, context.Canceled
		}
		return Verdict{}, fmt.Errorf("policy verdict: %w", err)
	}

	switch out := val.Export().(type) {
	case bool:
		return Verdict{Keep: out, Hard: entry.Hard}, nil
	case map[string]interface{}:
		v := Verdict{Keep: true, Hard: entry.Hard}
		if keep, ok := out["keep"].(bool); ok {
			v.Keep = keep
		}
		if hard, ok := out["hard"].(bool); ok {
			v.Hard = hard
		}
		return v, nil
	default:
		return Verdict{}, fmt.Errorf("policy verdict returned %T, want bool or object", out)
	}
}
