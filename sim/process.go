// Defines the Process struct that models one runnable unit of the script
// and its PCB state machine.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
type ProcessState string

const (
	StateNew        ProcessState = "new"
	StateReady      ProcessState = "ready"
	StateRunning    ProcessState = "running"
	StateWaiting    ProcessState = "waiting"
	StateTerminated ProcessState = "terminated"
)

// allowedTransitions lists the forward edges of the state machine:
// New → Ready → Running → {Waiting ⇄ Running}* → Terminated.
// Terminated is reachable from every live state so an aborted run can
// clean up whatever process it was in.
var allowedTransitions = map[ProcessState]map[ProcessState]bool{
	StateNew:     {StateReady: true, StateTerminated: true},
	StateReady:   {StateRunning: true, StateTerminated: true},
	StateRunning: {StateWaiting: true, StateTerminated: true},
	StateWaiting: {StateRunning: true, StateTerminated: true},
}

// Process models a single process: an id, its PCB state, and the queue of
// operations it owns.
type Process struct {
	ID         int             // 1-based, assigned in first-seen order
	State      ProcessState    // new, ready, running, waiting, terminated
	Operations *OperationQueue // consumed exactly once

	history []ProcessState
}

// NewProcess creates a process in the New state owning a copy of ops.
func NewProcess(id int, ops []Operation) *Process {
	return &Process{
		ID:         id,
		State:      StateNew,
		Operations: newOperationQueue(ops),
		history:    []ProcessState{StateNew},
	}
}

// ChangeState moves the process to next. It panics on a transition the
// state machine does not allow, which can only come from a driver bug.
func (p *Process) ChangeState(next ProcessState) {
	if !allowedTransitions[p.State][next] {
		panic(fmt.Sprintf("process %d: illegal state transition %s -> %s", p.ID, p.State, next))
	}
	p.State = next
	p.history = append(p.history, next)
}

// terminate drains the queue and marks the process Terminated regardless of
// how execution ended. Safe to call on an already terminated process.
func (p *Process) terminate() {
	p.Operations.Drain()
	if p.State != StateTerminated {
		p.ChangeState(StateTerminated)
	}
}

// StateHistory returns every state the process has been in, oldest first.
func (p *Process) StateHistory() []ProcessState {
	return append([]ProcessState(nil), p.history...)
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (ID: %d, State: %s, Operations: %d)", p.ID, p.State, p.Operations.Len())
}
