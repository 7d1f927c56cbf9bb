package vm

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/bf-lang/brainfuck/compiler"
	"github.com/bf-lang/brainfuck/errz"
	"github.com/stretchr/testify/require"
)

const helloWorld = "++++++++++[>+++++++>++++++++++>+++>+<<<<-]>++.>+.+++++++..+++.>++.<<+++++++++++++++.>.+++.------.--------.>+.>."

func TestHelloWorld(t *testing.T) {
	result, err := run(context.Background(), helloWorld)
	require.Nil(t, err)
	require.Equal(t, "Hello World!\n", result)
}

func TestSingleCharOutput(t *testing.T) {
	// 5 * 13 = 65 = 'A'
	result, err := run(context.Background(), "+++++[>+++++++++++++<-]>.")
	require.Nil(t, err)
	require.Equal(t, "A", result)
}

func TestSequentialOutput(t *testing.T) {
	result, err := run(context.Background(), "+++++[>+++++++++++++<-]>.+.+.+.+.")
	require.Nil(t, err)
	require.Equal(t, "ABCDE", result)
}

func TestNestedLoops(t *testing.T) {
	// 2 outer * 2 inner * 2 innermost = 8 in cell 2
	result, err := run(context.Background(), "++[>++[>++<-]<-]>>.")
	require.Nil(t, err)
	require.Equal(t, "\x08", result)
}

func TestEmptyProgram(t *testing.T) {
	result, err := run(context.Background(), "")
	require.Nil(t, err)
	require.Equal(t, "", result)
}

func TestComments(t *testing.T) {
	result, err := run(context.Background(), "This is a comment +++ with text . interspersed")
	require.Nil(t, err)
	require.Equal(t, "\x03", result)
}

func TestCellWrapsDown(t *testing.T) {
	result, err := run(context.Background(), "-.")
	require.Nil(t, err)
	require.Equal(t, "ÿ", result)
}

func TestCellWrapsUp(t *testing.T) {
	// 255 + 1 wraps to 0
	code, err := compiler.Compile("-+.")
	require.Nil(t, err)
	machine := New(code)
	require.Nil(t, machine.Run(context.Background()))
	require.Equal(t, []byte{0}, machine.OutputBytes())
}

func TestOutputByteDecoding(t *testing.T) {
	// 0 - 8 wraps to 248 (0xF8), decoded as U+00F8
	code, err := compiler.Compile("--------.")
	require.Nil(t, err)
	machine := New(code)
	require.Nil(t, machine.Run(context.Background()))
	require.Equal(t, "ø", machine.Output())
	require.Equal(t, []byte{0xf8}, machine.OutputBytes())
}

func TestLoopSkippedOnZeroCell(t *testing.T) {
	// The first loop body never executes because the cell is zero
	result, err := run(context.Background(), "[++++++++++++++]+++++[>+++++++++++++<-]>.")
	require.Nil(t, err)
	require.Equal(t, "A", result)
}

func TestInputNotSupported(t *testing.T) {
	_, err := run(context.Background(), ",")
	require.NotNil(t, err)
	evalErr, ok := err.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, errz.ErrInputNotSupported, evalErr.Kind)
	require.Equal(t, 0, evalErr.Position)
}

func TestInputInsideSkippedLoop(t *testing.T) {
	// The ',' is never executed, so no error is raised
	result, err := run(context.Background(), "[,]")
	require.Nil(t, err)
	require.Equal(t, "", result)
}

func TestPointerUnderflow(t *testing.T) {
	_, err := run(context.Background(), "<")
	require.NotNil(t, err)
	evalErr, ok := err.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, errz.ErrPointerUnderflow, evalErr.Kind)
	require.Equal(t, 0, evalErr.Position)
}

func TestPointerUnderflowPosition(t *testing.T) {
	_, err := run(context.Background(), "><<")
	require.NotNil(t, err)
	evalErr, ok := err.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, errz.ErrPointerUnderflow, evalErr.Kind)
	require.Equal(t, 2, evalErr.Position)
}

func TestPointerOverflow(t *testing.T) {
	// Pointer invariant is [0, tapeSize): with 4 cells, the fourth '>'
	// would reach index 4 and fails
	_, err := run(context.Background(), ">>>>", WithTapeSize(4))
	require.NotNil(t, err)
	evalErr, ok := err.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, errz.ErrPointerOverflow, evalErr.Kind)
	require.Equal(t, 3, evalErr.Position)

	// Staying on the last cell is fine
	_, err = run(context.Background(), ">>>", WithTapeSize(4))
	require.Nil(t, err)
}

func TestStepLimitExceeded(t *testing.T) {
	// The loop body is empty but the bracket checks themselves consume
	// steps indefinitely since the cell never becomes zero
	_, err := run(context.Background(), "+[]", WithMaxSteps(10))
	require.NotNil(t, err)
	evalErr, ok := err.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, errz.ErrStepLimit, evalErr.Kind)
	require.Equal(t, 10, evalErr.Steps)
}

func TestStepLimitNotHitByTerminatingProgram(t *testing.T) {
	code, err := compiler.Compile("+++.")
	require.Nil(t, err)
	machine := New(code, WithMaxSteps(4))
	require.Nil(t, machine.Run(context.Background()))
	require.Equal(t, 4, machine.Steps())
}

func TestOutputDiscardedOnError(t *testing.T) {
	code, err := compiler.Compile("+.<")
	require.Nil(t, err)
	machine := New(code)
	require.NotNil(t, machine.Run(context.Background()))
	require.Equal(t, "", machine.Output())
	require.Nil(t, machine.OutputBytes())
}

func TestDeterminism(t *testing.T) {
	first, err1 := run(context.Background(), helloWorld)
	second, err2 := run(context.Background(), helloWorld)
	require.Nil(t, err1)
	require.Nil(t, err2)
	require.Equal(t, first, second)

	_, limErr1 := run(context.Background(), "+[]", WithMaxSteps(10))
	_, limErr2 := run(context.Background(), "+[]", WithMaxSteps(10))
	require.Equal(t, limErr1.Error(), limErr2.Error())
}

func TestReusableMachine(t *testing.T) {
	code, err := compiler.Compile("+++.")
	require.Nil(t, err)
	machine := New(code)
	for i := 0; i < 3; i++ {
		require.Nil(t, machine.Run(context.Background()))
		require.Equal(t, []byte{3}, machine.OutputBytes())
	}
}

func TestContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := run(ctx, "+[]",
		WithMaxSteps(math.MaxInt),
		WithContextCheckInterval(100))
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestErrorsCarrySource(t *testing.T) {
	code, err := compiler.Compile("+[", compiler.WithFilename("bad.bf"))
	require.NotNil(t, err)
	require.Nil(t, code)
	evalErr, ok := err.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, "bad.bf", evalErr.Filename)
	require.Equal(t, "+[", evalErr.Source)

	code, err = compiler.Compile("+,", compiler.WithFilename("input.bf"))
	require.Nil(t, err)
	machine := New(code)
	runErr := machine.Run(context.Background())
	require.NotNil(t, runErr)
	evalErr, ok = runErr.(*errz.EvalError)
	require.True(t, ok)
	require.Equal(t, "input.bf", evalErr.Filename)
	require.Equal(t, 1, evalErr.Position)
}
