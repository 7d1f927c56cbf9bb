package vm

import (
	"context"

	"github.com/bf-lang/brainfuck/bytecode"
	"github.com/bf-lang/brainfuck/compiler"
)

// Run executes the given code in a new Virtual Machine and returns the
// output string.
func Run(ctx context.Context, code *bytecode.Code, options ...Option) (string, error) {
	machine := New(code, options...)
	if err := machine.Run(ctx); err != nil {
		return "", err
	}
	return machine.Output(), nil
}

// run compiles and executes source in a new VM. Used for testing.
func run(ctx context.Context, source string, options ...Option) (string, error) {
	code, err := compiler.Compile(source)
	if err != nil {
		return "", err
	}
	return Run(ctx, code, options...)
}
