// Package sim provides the execution and timing engine for opsim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - operation.go: the Operation record, its phrases, and validation
//   - process.go: Process and its PCB state machine (new → ready → running ⇄ waiting → terminated)
//   - segment.go: how a flat operation stream becomes processes
//   - simulator.go: the per-process operation loop
//
// # Architecture
//
// The engine is strictly sequential: processes run one at a time, in
// segmentation order. The only goroutine is the detached task that performs
// each I/O wait, and the initiator joins it immediately. Shared state
// (Simulator.Clock, the ResourceAllocator cursors, the LogSink) is owned by the
// Simulator and mutated only by its driver loop.
//
//   - timing.go: Timer busy-polls a WallClock and reports measured seconds
//   - resources.go: printer/hard drive cursors and memory block addresses
//   - logsink.go: monitor and/or file output
//   - logline.go: FormatLine and its inverse ParseLogLine
//   - metrics.go: per-category elapsed-time statistics
//
// Input parsing lives in sim/metadata; configuration loading lives in cmd/.
package sim
