// Package op defines the opcodes executed by the Brainfuck virtual machine.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint8

const (
	Invalid Code = 0

	// Pointer movement
	MoveRight Code = 1
	MoveLeft  Code = 2

	// Cell arithmetic
	Increment Code = 3
	Decrement Code = 4

	// I/O
	Output Code = 5
	Input  Code = 6

	// Loops
	JumpIfZero    Code = 7
	JumpIfNotZero Code = 8
)

// String returns the source symbol for the opcode, e.g. ">" for MoveRight.
func (c Code) String() string {
	info := GetInfo(c)
	if info.Symbol == 0 {
		return ""
	}
	return string(info.Symbol)
}

// Info contains information about an opcode.
type Info struct {
	Code   Code
	Name   string
	Symbol byte
}

var infos = make([]Info, 16)

func init() {
	ops := []Info{
		{MoveRight, "MOVE_RIGHT", '>'},
		{MoveLeft, "MOVE_LEFT", '<'},
		{Increment, "INCREMENT", '+'},
		{Decrement, "DECREMENT", '-'},
		{Output, "OUTPUT", '.'},
		{Input, "INPUT", ','},
		{JumpIfZero, "JUMP_IF_ZERO", '['},
		{JumpIfNotZero, "JUMP_IF_NOT_ZERO", ']'},
	}
	for _, o := range ops {
		infos[o.Code] = o
	}
}

// GetInfo returns information about the given opcode.
func GetInfo(c Code) Info {
	if int(c) >= len(infos) {
		return Info{}
	}
	return infos[c]
}

// FromByte maps a source character to its opcode. The second return value
// is false for characters that have no meaning in Brainfuck, which are
// treated as comments.
func FromByte(ch byte) (Code, bool) {
	switch ch {
	case '>':
		return MoveRight, true
	case '<':
		return MoveLeft, true
	case '+':
		return Increment, true
	case '-':
		return Decrement, true
	case '.':
		return Output, true
	case ',':
		return Input, true
	case '[':
		return JumpIfZero, true
	case ']':
		return JumpIfNotZero, true
	default:
		return Invalid, false
	}
}
