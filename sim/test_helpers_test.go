package sim

import (
	"bytes"
	"strings"
	"sync"
	"time"
)

// steppingClock is a WallClock that advances by step on every read, so a
// busy-poll of N microseconds takes a deterministic number of reads.
type steppingClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newSteppingClock(step time.Duration) *steppingClock {
	return &steppingClock{now: time.Unix(1_000, 0), step: step}
}

func (c *steppingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// testConfig returns a config where every device costs 1 msec per cycle.
func testConfig() SimConfig {
	return SimConfig{
		CycleTimes: map[string]int{
			DeviceProcessor: 1,
			DeviceMonitor:   1,
			DeviceHardDrive: 1,
			DevicePrinter:   1,
			DeviceKeyboard:  1,
			DeviceMemory:    1,
			DeviceMouse:     1,
			DeviceSpeaker:   1,
		},
		SystemMemory:    2048,
		MemoryBlockSize: 128,
		PrinterCount:    2,
		HardDriveCount:  2,
		LogDestination:  LogToMonitor,
	}
}

func op(cat Category, desc string, cost int) Operation {
	return Operation{Category: cat, Descriptor: desc, Cost: cost}
}

// program wraps body in program and application boundaries, as one process.
func program(body ...Operation) []Operation {
	ops := []Operation{
		op(CategoryProcStart, DescriptorBegin, 0),
		op(CategoryAppStart, DescriptorBegin, 0),
	}
	ops = append(ops, body...)
	return append(ops,
		op(CategoryAppEnd, DescriptorEnd, 0),
		op(CategoryProcEnd, DescriptorEnd, 0),
	)
}

// newTestSimulator builds a simulator logging into a buffer with a
// deterministic clock.
func newTestSimulator(cfg SimConfig, ops []Operation) (*Simulator, *bytes.Buffer) {
	var buf bytes.Buffer
	timer := NewTimer(newSteppingClock(time.Microsecond), TimerSpin)
	return NewSimulator(cfg, ops, NewWriterSink(&buf), timer), &buf
}

func logLines(buf *bytes.Buffer) []string {
	out := strings.TrimRight(buf.String(), "\n")
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}
