package errz

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Formatter formats errors for terminal display, optionally with colors.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// Colors used for error formatting
var (
	colorError    = color.New(color.FgRed, color.Bold)
	colorLocation = color.New(color.FgCyan)
	colorPipe     = color.New(color.FgHiBlack)
	colorCaret    = color.New(color.FgHiRed)
)

func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return c.Sprint(s)
}

// Format renders the error for display. Structured errors get a header,
// location arrow, and source snippet with caret; other errors are
// rendered with their plain message.
func (f *Formatter) Format(err error) string {
	evalErr, ok := err.(*EvalError)
	if !ok {
		return f.paint(colorError, "error: ") + err.Error() + "\n"
	}

	var b strings.Builder
	b.WriteString(f.paint(colorError, evalErr.Kind.String()+": "))
	b.WriteString(strings.TrimPrefix(evalErr.Error(), evalErr.Kind.String()+": "))
	b.WriteString("\n")

	line, column := evalErr.Location()
	if line == 0 {
		return b.String()
	}

	loc := fmt.Sprintf("%d:%d", line, column)
	if evalErr.Filename != "" {
		loc = fmt.Sprintf("%s:%s", evalErr.Filename, loc)
	}
	b.WriteString("  ")
	b.WriteString(f.paint(colorLocation, "--> "+loc))
	b.WriteString("\n")

	if src := evalErr.sourceLine(); src != "" {
		b.WriteString(f.paint(colorPipe, "   | "))
		b.WriteString(src)
		b.WriteString("\n")
		b.WriteString(f.paint(colorPipe, "   | "))
		b.WriteString(strings.Repeat(" ", column-1))
		b.WriteString(f.paint(colorCaret, "^"))
		b.WriteString("\n")
	}
	return b.String()
}
