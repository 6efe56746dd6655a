package sim

import "github.com/sirupsen/logrus"

// SplitProcesses groups a flat operation stream into processes.
//
// Every operation is buffered in encounter order. An application end
// (AppEnd "end") finalizes the buffer into a new Process with the next id.
// A program end (ProcEnd "end") is also appended to the most recently
// finalized process, so it is logged as that process's closing operation.
// Operations after the last application end never form a process and are
// dropped: segmentation is boundary-driven, not best-effort.
func SplitProcesses(ops []Operation) []*Process {
	var (
		processes []*Process
		buffer    []Operation
	)
	nextID := 1
	for _, op := range ops {
		buffer = append(buffer, op)

		if op.isProgramEnd() {
			if len(processes) == 0 {
				logrus.Warnf("program end %v seen before any process; not attached", op)
			} else {
				processes[len(processes)-1].Operations.Enqueue(op)
			}
		}
		if op.isAppEnd() {
			processes = append(processes, NewProcess(nextID, buffer))
			logrus.Debugf("segmented process %d with %d operations", nextID, len(buffer))
			nextID++
			buffer = buffer[:0]
		}
	}
	if len(buffer) > 0 {
		logrus.Debugf("dropping %d trailing operations with no application end", len(buffer))
	}
	return processes
}
