// Package compiler validates Brainfuck source and compiles it into
// bytecode.
//
// Validation and compilation happen in a single left-to-right scan.
// Characters outside the eight-instruction set are comments: they are
// stripped from the instruction stream, but every emitted instruction
// keeps its source byte offset so that runtime errors report positions
// in the original text.
//
// Bracket matching uses an explicit stack. Encountering ']' with an
// empty stack fails immediately; brackets left on the stack after the
// scan fail with the position of the earliest unmatched '[' (the bottom
// of the stack), which matches intuitive left-to-right diagnostics.
// Matched pairs are recorded bidirectionally in the jump table so the
// virtual machine resolves loop boundaries in O(1).
package compiler

import (
	"github.com/bf-lang/brainfuck/bytecode"
	"github.com/bf-lang/brainfuck/errz"
	"github.com/bf-lang/brainfuck/op"
)

// Option is a configuration function for a Compiler.
type Option func(*Compiler)

// WithFilename sets the filename for the source code being compiled.
// This is used for error messages.
func WithFilename(filename string) Option {
	return func(c *Compiler) {
		c.filename = filename
	}
}

// Compiler compiles Brainfuck source into its corresponding bytecode.
type Compiler struct {
	filename string
}

// New creates a new Compiler with the given options.
func New(opts ...Option) *Compiler {
	c := &Compiler{}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Compile validates the bracket structure of the source and produces
// immutable bytecode. It is a pure function over the source text: the
// same input always yields the same Code or the same error.
func (c *Compiler) Compile(source string) (*bytecode.Code, error) {
	var (
		instructions []op.Code
		positions    []int
		jumps        []int
		stack        []int // instruction indices of unmatched '[' brackets
	)
	for i := 0; i < len(source); i++ {
		code, ok := op.FromByte(source[i])
		if !ok {
			continue
		}
		index := len(instructions)
		instructions = append(instructions, code)
		positions = append(positions, i)
		jumps = append(jumps, -1)
		switch code {
		case op.JumpIfZero:
			stack = append(stack, index)
		case op.JumpIfNotZero:
			if len(stack) == 0 {
				return nil, errz.NewUnmatchedBracket(i, errz.CloseBracket).
					WithSource(c.filename, source)
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			jumps[open] = index
			jumps[index] = open
		}
	}
	if len(stack) > 0 {
		// Report the earliest unmatched opener, not the most recent.
		return nil, errz.NewUnmatchedBracket(positions[stack[0]], errz.OpenBracket).
			WithSource(c.filename, source)
	}
	return bytecode.NewCode(bytecode.CodeParams{
		Instructions: instructions,
		Positions:    positions,
		Jumps:        jumps,
		Source:       source,
		Filename:     c.filename,
	}), nil
}

// Compile validates and compiles source with the given options.
func Compile(source string, opts ...Option) (*bytecode.Code, error) {
	return New(opts...).Compile(source)
}
