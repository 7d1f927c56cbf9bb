// Package errz defines the structured errors produced by Brainfuck
// compilation and evaluation.
package errz

import (
	"fmt"
	"strings"
)

// ErrorKind represents the category of an error.
type ErrorKind int

const (
	// ErrUnmatchedBracket indicates a '[' or ']' with no matching partner.
	ErrUnmatchedBracket ErrorKind = iota
	// ErrInputNotSupported indicates a ',' instruction was executed.
	// Batch evaluation has no input channel to satisfy it.
	ErrInputNotSupported
	// ErrPointerUnderflow indicates the pointer moved below cell 0.
	ErrPointerUnderflow
	// ErrPointerOverflow indicates the pointer moved past the end of the tape.
	ErrPointerOverflow
	// ErrStepLimit indicates execution exhausted its instruction budget.
	ErrStepLimit
)

// String returns the string representation of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case ErrUnmatchedBracket:
		return "syntax error"
	case ErrInputNotSupported:
		return "input error"
	case ErrPointerUnderflow, ErrPointerOverflow:
		return "pointer error"
	case ErrStepLimit:
		return "limit error"
	default:
		return "error"
	}
}

// BracketKind identifies which side of a bracket pair is unmatched.
type BracketKind int

const (
	OpenBracket BracketKind = iota
	CloseBracket
)

// String returns the bracket character.
func (k BracketKind) String() string {
	if k == CloseBracket {
		return "]"
	}
	return "["
}

// FriendlyError is an interface for errors that have a human friendly
// message in addition to the lower level default error message.
type FriendlyError interface {
	Error() string
	FriendlyErrorMessage() string
}

// EvalError is a structured error raised during Brainfuck compilation or
// evaluation. It carries the error kind and, where applicable, the byte
// offset into the source where the violation occurred.
type EvalError struct {
	Kind     ErrorKind
	Position int         // byte offset into the source; -1 when not applicable
	Bracket  BracketKind // valid when Kind is ErrUnmatchedBracket
	Steps    int         // valid when Kind is ErrStepLimit
	Source   string      // program source, used for snippets; may be empty
	Filename string
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	switch e.Kind {
	case ErrUnmatchedBracket:
		return fmt.Sprintf("%s: unmatched '%s' at position %d",
			e.Kind, e.Bracket, e.Position)
	case ErrInputNotSupported:
		return fmt.Sprintf("%s: input operation ',' is not supported at position %d",
			e.Kind, e.Position)
	case ErrPointerUnderflow:
		return fmt.Sprintf("%s: pointer moved below cell 0 at position %d",
			e.Kind, e.Position)
	case ErrPointerOverflow:
		return fmt.Sprintf("%s: pointer moved past the end of the tape at position %d",
			e.Kind, e.Position)
	case ErrStepLimit:
		return fmt.Sprintf("%s: execution exceeded %d steps", e.Kind, e.Steps)
	default:
		return fmt.Sprintf("%s: position %d", e.Kind, e.Position)
	}
}

// IsFatal returns true. No Brainfuck error offers meaningful recovery:
// skipping an invalid instruction would change the program's meaning.
func (e *EvalError) IsFatal() bool {
	return true
}

// WithSource attaches the program source and filename, enabling source
// snippets in friendly messages. Returns the receiver for chaining.
func (e *EvalError) WithSource(filename, source string) *EvalError {
	e.Filename = filename
	e.Source = source
	return e
}

// Location returns the 1-based line and column of the error position
// within the attached source. Returns (0, 0) if no position or source
// is available.
func (e *EvalError) Location() (line, column int) {
	if e.Position < 0 || e.Source == "" || e.Position > len(e.Source) {
		return 0, 0
	}
	line, column = 1, 1
	for i := 0; i < e.Position && i < len(e.Source); i++ {
		if e.Source[i] == '\n' {
			line++
			column = 1
		} else {
			column++
		}
	}
	return line, column
}

// sourceLine returns the line of source containing the error position.
func (e *EvalError) sourceLine() string {
	if e.Position < 0 || e.Source == "" {
		return ""
	}
	start := strings.LastIndexByte(e.Source[:min(e.Position, len(e.Source))], '\n') + 1
	end := strings.IndexByte(e.Source[start:], '\n')
	if end < 0 {
		return e.Source[start:]
	}
	return e.Source[start : start+end]
}

// FriendlyErrorMessage returns a human-friendly error message with a
// source snippet and caret marking the offending instruction.
func (e *EvalError) FriendlyErrorMessage() string {
	var msg strings.Builder
	msg.WriteString(e.Error())
	msg.WriteString("\n")

	line, column := e.Location()
	if line == 0 {
		return msg.String()
	}
	if e.Filename != "" {
		fmt.Fprintf(&msg, " --> %s:%d:%d\n", e.Filename, line, column)
	} else {
		fmt.Fprintf(&msg, " --> %d:%d\n", line, column)
	}
	if src := e.sourceLine(); src != "" {
		msg.WriteString(" | ")
		msg.WriteString(src)
		msg.WriteString("\n | ")
		msg.WriteString(strings.Repeat(" ", column-1))
		msg.WriteString("^\n")
	}
	return msg.String()
}

// NewUnmatchedBracket creates an error for a bracket with no partner.
func NewUnmatchedBracket(position int, bracket BracketKind) *EvalError {
	return &EvalError{Kind: ErrUnmatchedBracket, Position: position, Bracket: bracket}
}

// NewInputNotSupported creates an error for an executed ',' instruction.
func NewInputNotSupported(position int) *EvalError {
	return &EvalError{Kind: ErrInputNotSupported, Position: position}
}

// NewPointerUnderflow creates an error for a pointer moving below cell 0.
func NewPointerUnderflow(position int) *EvalError {
	return &EvalError{Kind: ErrPointerUnderflow, Position: position}
}

// NewPointerOverflow creates an error for a pointer moving past the tape.
func NewPointerOverflow(position int) *EvalError {
	return &EvalError{Kind: ErrPointerOverflow, Position: position}
}

// NewStepLimit creates an error for an exhausted instruction budget.
func NewStepLimit(steps int) *EvalError {
	return &EvalError{Kind: ErrStepLimit, Position: -1, Steps: steps}
}
