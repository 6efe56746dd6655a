// Defines the Operation record replayed by the simulator, its start/end
// phrases, and validation against the loaded configuration.

package sim

import (
	"fmt"
)

// Category classifies an Operation.
type Category string

const (
	CategoryMetaStart    Category = "meta-start"
	CategoryMetaEnd      Category = "meta-end"
	CategoryAppStart     Category = "app-start"
	CategoryAppEnd       Category = "app-end"
	CategoryProcStart    Category = "proc-start"
	CategoryProcEnd      Category = "proc-end"
	CategoryInput        Category = "input"
	CategoryOutput       Category = "output"
	CategoryRun          Category = "run"
	CategoryMemory       Category = "memory"
	CategoryOutputDevice Category = "output-device"
)

// Boundary descriptors.
const (
	DescriptorBegin = "begin"
	DescriptorEnd   = "end"
)

// Memory and CPU descriptors.
const (
	DescriptorRun      = "run"
	DescriptorAllocate = "allocate"
	DescriptorBlock    = "block"
)

// Operation is one scripted instruction. Cost is in cycles.
type Operation struct {
	Category   Category
	Descriptor string
	Cost       int
}

// String returns a compact human-readable form, e.g. "run{run}11".
func (op Operation) String() string {
	return fmt.Sprintf("%s{%s}%d", op.Category, op.Descriptor, op.Cost)
}

// IsBoundary reports whether op delimits program or application scope.
func (op Operation) IsBoundary() bool {
	switch op.Category {
	case CategoryMetaStart, CategoryMetaEnd, CategoryAppStart, CategoryAppEnd,
		CategoryProcStart, CategoryProcEnd:
		return true
	}
	return false
}

// IsIO reports whether op is serviced by the detached I/O task.
func (op Operation) IsIO() bool {
	switch op.Category {
	case CategoryInput, CategoryOutput, CategoryOutputDevice:
		return true
	}
	return false
}

func (op Operation) isAppEnd() bool {
	return op.Category == CategoryAppEnd && op.Descriptor == DescriptorEnd
}

func (op Operation) isProgramEnd() bool {
	return op.Category == CategoryProcEnd && op.Descriptor == DescriptorEnd
}

// validDescriptors lists the descriptors accepted for each category.
var validDescriptors = map[Category]map[string]bool{
	CategoryMetaStart:    {"": true, DescriptorBegin: true},
	CategoryMetaEnd:      {"": true, DescriptorEnd: true},
	CategoryProcStart:    {DescriptorBegin: true},
	CategoryProcEnd:      {DescriptorEnd: true},
	CategoryAppStart:     {DescriptorBegin: true},
	CategoryAppEnd:       {DescriptorEnd: true},
	CategoryRun:          {DescriptorRun: true},
	CategoryMemory:       {DescriptorAllocate: true, DescriptorBlock: true},
	CategoryInput:        {DeviceHardDrive: true, DeviceKeyboard: true, DeviceMouse: true},
	CategoryOutput:       {DeviceHardDrive: true, DeviceMonitor: true, DevicePrinter: true, DeviceSpeaker: true},
	CategoryOutputDevice: {DeviceMonitor: true, DevicePrinter: true, DeviceSpeaker: true},
}

// Device returns the cycle-time key that prices op, or "" for boundaries.
func (op Operation) Device() string {
	switch {
	case op.IsBoundary():
		return ""
	case op.Category == CategoryRun:
		return DeviceProcessor
	case op.Category == CategoryMemory:
		return DeviceMemory
	default:
		return op.Descriptor
	}
}

// ValidationError reports an operation rejected by Validate. Its message is
// the line the simulator writes before aborting.
type ValidationError struct {
	Op      Operation
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Unwrap lets callers match with errors.Is(err, ErrInvalidOperation).
func (e *ValidationError) Unwrap() error { return ErrInvalidOperation }

func invalid(op Operation, format string, args ...any) error {
	return &ValidationError{Op: op, Message: "Error. " + fmt.Sprintf(format, args...)}
}

// Validate checks op against cfg.
func (op Operation) Validate(cfg SimConfig) error {
	descs, ok := validDescriptors[op.Category]
	if !ok {
		return invalid(op, "Invalid meta-data category %q", op.Category)
	}
	if !descs[op.Descriptor] {
		return invalid(op, "Invalid descriptor %q for %s", op.Descriptor, op.Category)
	}
	if op.Cost < 0 {
		return invalid(op, "Negative cycle count %d for %s", op.Cost, op.Category)
	}
	if op.IsBoundary() {
		return nil
	}
	ms, ok := cfg.CycleTime(op.Device())
	if !ok || ms <= 0 {
		return invalid(op, "Missing cycle time for %s", op.Device())
	}
	return nil
}

// StartPhrase renders the operation-specific text logged when op begins.
// processID is only used by boundary phrases.
func (op Operation) StartPhrase(processID int) string {
	switch op.Category {
	case CategoryMetaStart, CategoryProcStart:
		return "Simulator program starting"
	case CategoryMetaEnd, CategoryProcEnd:
		return "Simulator program ending"
	case CategoryAppStart:
		return fmt.Sprintf("OS: preparing process %d", processID)
	case CategoryAppEnd:
		return fmt.Sprintf("OS: removing process %d", processID)
	case CategoryRun:
		return "start processing action"
	case CategoryMemory:
		if op.Descriptor == DescriptorAllocate {
			return "allocating memory"
		}
		return "start memory blocking"
	case CategoryInput:
		return fmt.Sprintf("start %s input", op.Descriptor)
	default:
		return fmt.Sprintf("start %s output", op.Descriptor)
	}
}

// EndPhrase renders the closing text for op. suffix carries either a device
// assignment (" on HDD 1") for I/O, or the formatted address for a memory
// allocation.
func (op Operation) EndPhrase(suffix string) string {
	switch op.Category {
	case CategoryRun:
		return "end processing action"
	case CategoryMemory:
		if op.Descriptor == DescriptorAllocate {
			return "memory allocated at 0x" + suffix
		}
		return "end memory blocking"
	case CategoryInput:
		return fmt.Sprintf("end %s input%s", op.Descriptor, suffix)
	default:
		return fmt.Sprintf("end %s output%s", op.Descriptor, suffix)
	}
}
