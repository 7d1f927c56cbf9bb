// Package vm provides a VirtualMachine that executes compiled Brainfuck code.
package vm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bf-lang/brainfuck/bytecode"
	"github.com/bf-lang/brainfuck/errz"
	"github.com/bf-lang/brainfuck/op"
)

const (
	// DefaultTapeSize is the number of cells on the tape.
	DefaultTapeSize = 30_000

	// DefaultMaxSteps is the instruction budget for a single run. It
	// converts would-be infinite loops into a deterministic, reportable
	// failure rather than a hang.
	DefaultMaxSteps = 1_000_000

	// DefaultContextCheckInterval is the number of instructions between
	// deterministic checks of ctx.Done(). Set to 0 to disable.
	DefaultContextCheckInterval = 1000
)

// ErrHalted is returned when an observer halts execution.
var ErrHalted = errors.New("execution halted by observer")

// VirtualMachine executes compiled Brainfuck code. All runtime state
// (tape, pointer, output, step counter) is owned exclusively by one
// machine, so independent machines may run concurrently. A single
// machine only supports one run at a time.
type VirtualMachine struct {
	ip      int // instruction pointer
	pointer int // active cell index
	steps   int
	tape    []uint8
	output  []byte
	code    *bytecode.Code

	tapeSize             int
	maxSteps             int
	contextCheckInterval int

	halt     int32
	running  bool
	runMutex sync.Mutex

	observer    Observer
	observerCfg ObserverConfig
}

// New creates a new Virtual Machine for the given code.
func New(code *bytecode.Code, options ...Option) *VirtualMachine {
	vm := &VirtualMachine{
		code:                 code,
		tapeSize:             DefaultTapeSize,
		maxSteps:             DefaultMaxSteps,
		contextCheckInterval: DefaultContextCheckInterval,
	}
	for _, opt := range options {
		if opt != nil {
			opt(vm)
		}
	}
	if vm.tapeSize < 1 {
		vm.tapeSize = DefaultTapeSize
	}
	if vm.maxSteps < 1 {
		vm.maxSteps = DefaultMaxSteps
	}
	if vm.observer != nil {
		vm.observerCfg = NormalizeConfig(vm.observer.Config())
	}
	return vm
}

// Run executes the code to completion. It returns nil when the
// instruction pointer advances past the end of the program, and the
// first violated precondition otherwise. On error the accumulated
// output is discarded.
func (vm *VirtualMachine) Run(ctx context.Context) error {
	if err := vm.start(ctx); err != nil {
		return err
	}
	defer vm.stop()
	if err := vm.eval(ctx); err != nil {
		vm.output = nil
		return err
	}
	return nil
}

func (vm *VirtualMachine) start(ctx context.Context) error {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	if vm.running {
		return fmt.Errorf("vm is already running")
	}
	vm.running = true
	vm.ip = 0
	vm.pointer = 0
	vm.steps = 0
	vm.tape = make([]uint8, vm.tapeSize)
	vm.output = nil
	// Halt execution when the context is cancelled
	atomic.StoreInt32(&vm.halt, 0)
	if doneChan := ctx.Done(); doneChan != nil {
		go func() {
			<-doneChan
			atomic.StoreInt32(&vm.halt, 1)
		}()
	}
	return nil
}

func (vm *VirtualMachine) stop() {
	vm.runMutex.Lock()
	defer vm.runMutex.Unlock()
	vm.running = false
}

func (vm *VirtualMachine) eval(ctx context.Context) error {
	var (
		code          = vm.code
		count         = code.InstructionCount()
		checkInterval = vm.contextCheckInterval
		sinceCheck    = 0
		sampleCount   = 0
	)
	for vm.ip < count {
		if checkInterval > 0 {
			sinceCheck++
			if sinceCheck >= checkInterval {
				sinceCheck = 0
				if atomic.LoadInt32(&vm.halt) == 1 {
					return ctx.Err()
				}
			}
		}
		if vm.steps >= vm.maxSteps {
			return errz.NewStepLimit(vm.steps).
				WithSource(code.Filename(), code.Source())
		}
		instruction := code.InstructionAt(vm.ip)
		if vm.observer != nil {
			emit := false
			switch vm.observerCfg.StepMode {
			case StepAll:
				emit = true
			case StepSampled:
				sampleCount++
				if sampleCount >= vm.observerCfg.SampleInterval {
					sampleCount = 0
					emit = true
				}
			}
			if emit {
				info := op.GetInfo(instruction)
				event := StepEvent{
					IP:         vm.ip,
					Opcode:     instruction,
					OpcodeName: info.Name,
					Position:   code.PositionAt(vm.ip),
					Pointer:    vm.pointer,
					Cell:       vm.tape[vm.pointer],
					Steps:      vm.steps,
				}
				if !vm.observer.OnStep(event) {
					return ErrHalted
				}
			}
		}
		switch instruction {
		case op.MoveRight:
			if vm.pointer+1 >= vm.tapeSize {
				return errz.NewPointerOverflow(code.PositionAt(vm.ip)).
					WithSource(code.Filename(), code.Source())
			}
			vm.pointer++
			vm.ip++
		case op.MoveLeft:
			if vm.pointer == 0 {
				return errz.NewPointerUnderflow(code.PositionAt(vm.ip)).
					WithSource(code.Filename(), code.Source())
			}
			vm.pointer--
			vm.ip++
		case op.Increment:
			vm.tape[vm.pointer]++
			vm.ip++
		case op.Decrement:
			vm.tape[vm.pointer]--
			vm.ip++
		case op.Output:
			vm.output = append(vm.output, vm.tape[vm.pointer])
			vm.ip++
		case op.Input:
			return errz.NewInputNotSupported(code.PositionAt(vm.ip)).
				WithSource(code.Filename(), code.Source())
		case op.JumpIfZero:
			if vm.tape[vm.pointer] == 0 {
				vm.ip = code.JumpAt(vm.ip) + 1
			} else {
				vm.ip++
			}
		case op.JumpIfNotZero:
			if vm.tape[vm.pointer] != 0 {
				// Jump back to the '[' so its zero check re-runs
				vm.ip = code.JumpAt(vm.ip)
			} else {
				vm.ip++
			}
		default:
			return fmt.Errorf("invalid opcode %d at instruction %d", instruction, vm.ip)
		}
		vm.steps++
	}
	return nil
}

// Output returns the output produced by the run, decoding each byte as
// one character. Bytes above 0x7F become their corresponding Unicode
// code point (0xF8 renders as "ø"), so the result is always valid UTF-8.
func (vm *VirtualMachine) Output() string {
	var b strings.Builder
	b.Grow(len(vm.output))
	for _, c := range vm.output {
		b.WriteRune(rune(c))
	}
	return b.String()
}

// OutputBytes returns a copy of the raw output byte sequence.
func (vm *VirtualMachine) OutputBytes() []byte {
	if len(vm.output) == 0 {
		return nil
	}
	out := make([]byte, len(vm.output))
	copy(out, vm.output)
	return out
}

// Steps returns the number of instructions executed by the last run.
func (vm *VirtualMachine) Steps() int {
	return vm.steps
}

// TapeSize returns the number of cells on the tape.
func (vm *VirtualMachine) TapeSize() int {
	return vm.tapeSize
}

// MaxSteps returns the instruction budget for a single run.
func (vm *VirtualMachine) MaxSteps() int {
	return vm.maxSteps
}
