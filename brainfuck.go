// Package brainfuck evaluates Brainfuck programs deterministically and
// within fixed resource bounds.
//
// A program is compiled once into an immutable instruction stream with a
// precomputed bracket jump table, then executed on a virtual machine that
// owns a fixed-size tape, a cell pointer, and an instruction budget.
// Programs that are structurally invalid, move the pointer off the tape,
// request input, or exhaust the budget fail with a structured error that
// carries the error kind and source position.
//
//	output, err := brainfuck.Evaluate(ctx, "+++++[>+++++++++++++<-]>.")
//	// output == "A"
package brainfuck

import (
	"context"

	"github.com/bf-lang/brainfuck/bytecode"
	"github.com/bf-lang/brainfuck/compiler"
	"github.com/bf-lang/brainfuck/vm"
)

// Option configures a Brainfuck compilation or execution.
type Option func(*options)

type options struct {
	filename string
	tapeSize int
	maxSteps int
	observer vm.Observer
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) compilerOpts() []compiler.Option {
	var opts []compiler.Option
	if o.filename != "" {
		opts = append(opts, compiler.WithFilename(o.filename))
	}
	return opts
}

func (o *options) vmOpts() []vm.Option {
	var opts []vm.Option
	if o.tapeSize > 0 {
		opts = append(opts, vm.WithTapeSize(o.tapeSize))
	}
	if o.maxSteps > 0 {
		opts = append(opts, vm.WithMaxSteps(o.maxSteps))
	}
	if o.observer != nil {
		opts = append(opts, vm.WithObserver(o.observer))
	}
	return opts
}

// WithFilename sets the filename for the source code being evaluated.
// This is used for error messages.
func WithFilename(filename string) Option {
	return func(o *options) {
		o.filename = filename
	}
}

// WithTapeSize sets the number of cells on the tape. The default is
// 30,000 cells.
func WithTapeSize(size int) Option {
	return func(o *options) {
		o.tapeSize = size
	}
}

// WithMaxSteps sets the instruction budget for a single run. The default
// is 1,000,000 steps. The budget converts infinite loops into a
// deterministic failure instead of a hang.
func WithMaxSteps(steps int) Option {
	return func(o *options) {
		o.maxSteps = steps
	}
}

// WithObserver sets an observer for VM execution events. The observer
// receives per-instruction callbacks, enabling profilers and execution
// tracers.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// Compile validates source code and compiles it into executable bytecode.
// The returned Code is immutable and safe for concurrent use. Multiple
// goroutines can execute the same Code simultaneously.
func Compile(source string, opts ...Option) (*bytecode.Code, error) {
	o := collectOptions(opts...)
	return compiler.Compile(source, o.compilerOpts()...)
}

// Run executes compiled bytecode and returns the output string. Each
// call creates fresh runtime state, allowing concurrent execution of the
// same Code.
func Run(ctx context.Context, code *bytecode.Code, opts ...Option) (string, error) {
	o := collectOptions(opts...)
	return vm.Run(ctx, code, o.vmOpts()...)
}

// Evaluate is a convenience function that compiles and runs source code.
// It is equivalent to Compile() followed by Run().
func Evaluate(ctx context.Context, source string, opts ...Option) (string, error) {
	code, err := Compile(source, opts...)
	if err != nil {
		return "", err
	}
	return Run(ctx, code, opts...)
}
