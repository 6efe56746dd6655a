// Implements the OperationQueue, the FIFO each Process drains exactly once.

package sim

import (
	"fmt"
	"strings"
)

// OperationQueue is a FIFO queue of operations owned by a single Process.
type OperationQueue struct {
	queue []Operation
}

// newOperationQueue copies ops so the caller's buffer can be reused.
func newOperationQueue(ops []Operation) *OperationQueue {
	return &OperationQueue{queue: append([]Operation(nil), ops...)}
}

// Enqueue adds an operation to the back of the queue.
func (oq *OperationQueue) Enqueue(op Operation) {
	oq.queue = append(oq.queue, op)
}

func (oq *OperationQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, val := range oq.queue {
		sb.WriteString(fmt.Sprint(val))
		if i < len(oq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

// Len returns the number of operations left in the queue.
func (oq *OperationQueue) Len() int {
	return len(oq.queue)
}

// Peek returns the operation at the front of the queue without removing it.
// ok is false if the queue is empty.
func (oq *OperationQueue) Peek() (op Operation, ok bool) {
	if len(oq.queue) == 0 {
		return Operation{}, false
	}
	return oq.queue[0], true
}

// Items returns the queue contents for iteration.
// The returned slice is the queue's internal storage; callers MUST NOT modify it.
func (oq *OperationQueue) Items() []Operation {
	return oq.queue
}

// Dequeue removes the operation at the front of the queue.
func (oq *OperationQueue) Dequeue() (op Operation, ok bool) {
	if len(oq.queue) == 0 {
		return Operation{}, false
	}
	op = oq.queue[0]
	oq.queue = oq.queue[1:]
	return op, true
}

// Drain discards every remaining operation.
func (oq *OperationQueue) Drain() {
	oq.queue = nil
}
