// Package bytecode defines the compiled, immutable representation of a
// Brainfuck program.
package bytecode

import (
	"github.com/bf-lang/brainfuck/op"
)

// Code represents a compiled Brainfuck program. It is immutable after
// creation and safe for concurrent use: any number of virtual machines
// may execute the same Code simultaneously.
//
// Comment characters are stripped during compilation; each instruction
// retains the byte offset of its source character so that runtime errors
// can report source positions.
type Code struct {
	instructions []op.Code
	positions    []int // source byte offset per instruction
	jumps        []int // matched bracket instruction index; -1 for non-brackets
	source       string
	filename     string
}

// CodeParams contains parameters for creating a new Code.
type CodeParams struct {
	Instructions []op.Code
	Positions    []int
	Jumps        []int
	Source       string
	Filename     string
}

// NewCode creates a new immutable Code from the given parameters.
// Input slices are copied to ensure immutability.
func NewCode(params CodeParams) *Code {
	return &Code{
		instructions: copyInstructions(params.Instructions),
		positions:    copyInts(params.Positions),
		jumps:        copyInts(params.Jumps),
		source:       params.Source,
		filename:     params.Filename,
	}
}

// InstructionCount returns the number of instructions.
func (c *Code) InstructionCount() int {
	return len(c.instructions)
}

// InstructionAt returns the instruction at the given index.
func (c *Code) InstructionAt(index int) op.Code {
	return c.instructions[index]
}

// PositionAt returns the source byte offset of the instruction at the
// given index. Returns -1 if the index is out of range.
func (c *Code) PositionAt(index int) int {
	if index < 0 || index >= len(c.positions) {
		return -1
	}
	return c.positions[index]
}

// JumpAt returns the instruction index of the matching bracket for the
// bracket instruction at the given index. Returns -1 for non-bracket
// instructions or out-of-range indices.
func (c *Code) JumpAt(index int) int {
	if index < 0 || index >= len(c.jumps) {
		return -1
	}
	return c.jumps[index]
}

// Source returns the original source code.
func (c *Code) Source() string {
	return c.source
}

// Filename returns the source filename, if one was set.
func (c *Code) Filename() string {
	return c.filename
}

func copyInstructions(instructions []op.Code) []op.Code {
	if len(instructions) == 0 {
		return nil
	}
	out := make([]op.Code, len(instructions))
	copy(out, instructions)
	return out
}

func copyInts(values []int) []int {
	if len(values) == 0 {
		return nil
	}
	out := make([]int, len(values))
	copy(out, values)
	return out
}
