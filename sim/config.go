package sim

import (
	"errors"
	"fmt"
)

// LogDestination selects where the execution log is written.
type LogDestination string

const (
	LogToBoth    LogDestination = "Log to Both"
	LogToFile    LogDestination = "Log to File"
	LogToMonitor LogDestination = "Log to Monitor"
)

// validLogDestinations maps accepted destination strings.
var validLogDestinations = map[LogDestination]bool{
	LogToBoth:    true,
	LogToFile:    true,
	LogToMonitor: true,
}

// IsValidLogDestination returns true if the given string is a recognized log destination.
func IsValidLogDestination(dest string) bool {
	return validLogDestinations[LogDestination(dest)]
}

var (
	ErrInvalidLogDestination = errors.New("invalid logging information")
	ErrMissingLogFilePath    = errors.New("missing file path")
	ErrInvalidOperation      = errors.New("invalid operation")
)

// Device names used as cycle-time keys.
const (
	DeviceProcessor = "processor"
	DeviceMonitor   = "monitor"
	DeviceHardDrive = "hard drive"
	DevicePrinter   = "printer"
	DeviceKeyboard  = "keyboard"
	DeviceMemory    = "memory"
	DeviceMouse     = "mouse"
	DeviceSpeaker   = "speaker"
)

// TimerMode selects how the Timer waits.
type TimerMode string

const (
	TimerSpin  TimerMode = "spin"  // busy-poll the wall clock (default)
	TimerSleep TimerMode = "sleep" // time.Sleep, then measure
)

// SimConfig groups everything the engine reads from configuration.
type SimConfig struct {
	CycleTimes      map[string]int // msec per cycle, keyed by device name (DeviceProcessor, ...)
	SystemMemory    int            // total simulated memory (must be > 0 for allocations)
	MemoryBlockSize int            // allocation stride
	PrinterCount    int            // number of printers
	HardDriveCount  int            // number of hard drives
	LogDestination  LogDestination // monitor, file, or both
	LogFilePath     string         // required when logging to file
	LogBoundaries   bool           // emit start phrases for boundary operations
	TimerMode       TimerMode      // "" defaults to spin
}

// CycleTime returns the configured msec-per-cycle for a device, and whether it was set.
func (c SimConfig) CycleTime(device string) (int, bool) {
	v, ok := c.CycleTimes[device]
	return v, ok
}

// Validate checks the fields the engine cannot run without.
func (c SimConfig) Validate() error {
	if c.SystemMemory < 0 {
		return fmt.Errorf("system memory must be >= 0, got %d", c.SystemMemory)
	}
	if c.MemoryBlockSize < 0 {
		return fmt.Errorf("memory block size must be >= 0, got %d", c.MemoryBlockSize)
	}
	if c.PrinterCount < 0 || c.HardDriveCount < 0 {
		return fmt.Errorf("device counts must be >= 0, got printers=%d hard drives=%d", c.PrinterCount, c.HardDriveCount)
	}
	for dev, ms := range c.CycleTimes {
		if ms < 0 {
			return fmt.Errorf("cycle time for %s must be >= 0, got %d", dev, ms)
		}
	}
	switch c.TimerMode {
	case "", TimerSpin, TimerSleep:
	default:
		return fmt.Errorf("unknown timer mode %q", c.TimerMode)
	}
	return nil
}
