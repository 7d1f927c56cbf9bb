// Package dis supports disassembling compiled Brainfuck programs into a
// human-readable listing.
package dis

import (
	"io"
	"strconv"

	"github.com/bf-lang/brainfuck/bytecode"
	"github.com/bf-lang/brainfuck/internal/table"
	"github.com/bf-lang/brainfuck/op"
)

// Instruction describes one instruction in a disassembly listing.
type Instruction struct {
	// Offset is the index of the instruction in the compiled stream.
	Offset int

	// Opcode is the operation.
	Opcode op.Code

	// Name is the human-readable opcode name.
	Name string

	// Symbol is the source character for the opcode.
	Symbol string

	// Position is the byte offset of the instruction in the source.
	Position int

	// JumpTo is the offset of the matching bracket, or -1 for
	// non-bracket instructions.
	JumpTo int
}

// Disassemble returns the instruction listing for the given code.
func Disassemble(code *bytecode.Code) []Instruction {
	count := code.InstructionCount()
	instructions := make([]Instruction, 0, count)
	for i := 0; i < count; i++ {
		opcode := code.InstructionAt(i)
		info := op.GetInfo(opcode)
		instructions = append(instructions, Instruction{
			Offset:   i,
			Opcode:   opcode,
			Name:     info.Name,
			Symbol:   opcode.String(),
			Position: code.PositionAt(i),
			JumpTo:   code.JumpAt(i),
		})
	}
	return instructions
}

// Print writes the instruction listing to the given writer as a table.
func Print(instructions []Instruction, w io.Writer) {
	tbl := table.NewTable(w)
	tbl.WithHeader([]string{"OFFSET", "OPCODE", "SYMBOL", "POSITION", "JUMP"})
	tbl.WithHeaderAlignment([]table.Alignment{
		table.AlignCenter, table.AlignCenter, table.AlignCenter,
		table.AlignCenter, table.AlignCenter,
	})
	tbl.WithColumnAlignment([]table.Alignment{
		table.AlignRight, table.AlignLeft, table.AlignCenter,
		table.AlignRight, table.AlignRight,
	})
	for _, instruction := range instructions {
		jump := ""
		if instruction.JumpTo >= 0 {
			jump = strconv.Itoa(instruction.JumpTo)
		}
		tbl.Append([]string{
			strconv.Itoa(instruction.Offset),
			instruction.Name,
			instruction.Symbol,
			strconv.Itoa(instruction.Position),
			jump,
		})
	}
	tbl.Render()
}
