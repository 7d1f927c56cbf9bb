package vm

// Option is a configuration function for a Virtual Machine.
type Option func(*VirtualMachine)

// WithTapeSize sets the number of cells on the tape. Values below 1 are
// ignored and the default of 30,000 cells is used.
func WithTapeSize(size int) Option {
	return func(vm *VirtualMachine) {
		vm.tapeSize = size
	}
}

// WithMaxSteps sets the instruction budget for a single run. Values
// below 1 are ignored and the default of 1,000,000 steps is used.
//
// The bound is purely instruction-count based, never wall-clock based,
// so behavior is deterministic and reproducible across host machines.
func WithMaxSteps(steps int) Option {
	return func(vm *VirtualMachine) {
		vm.maxSteps = steps
	}
}

// WithContextCheckInterval sets how often the VM checks ctx.Done()
// during execution. The interval is specified in number of instructions.
// A value of 0 disables deterministic checking, relying only on the
// background goroutine that monitors the context. The default is
// DefaultContextCheckInterval (1000).
func WithContextCheckInterval(interval int) Option {
	return func(vm *VirtualMachine) {
		vm.contextCheckInterval = interval
	}
}

// WithObserver sets an observer for VM execution events. The observer
// receives a callback per executed instruction according to its
// configured StepMode. Observer methods are called synchronously during
// execution, so implementations should be fast. Returning false from
// OnStep halts execution immediately.
func WithObserver(observer Observer) Option {
	return func(vm *VirtualMachine) {
		vm.observer = observer
	}
}
