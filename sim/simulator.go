// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds the simulation clock, the shared
// resources, and the processes it replays one at a time.
type Simulator struct {
	// Clock is the SimulationClock in seconds. It only increases.
	Clock     float64
	Config    SimConfig
	Processes []*Process
	Resources *ResourceAllocator
	Timer     *Timer
	Sink      *LogSink
	Metrics   *Metrics
	// ioSlot is a one-slot semaphore; only one I/O operation is in flight.
	ioSlot chan struct{}
}

// NewSimulator segments ops into processes and wires the engine. The
// caller owns sink and closes it after Run.
func NewSimulator(cfg SimConfig, ops []Operation, sink *LogSink, timer *Timer) *Simulator {
	if timer == nil {
		timer = NewTimer(nil, cfg.TimerMode)
	}
	return &Simulator{
		Config:    cfg,
		Processes: SplitProcesses(ops),
		Resources: NewResourceAllocator(cfg),
		Timer:     timer,
		Sink:      sink,
		Metrics:   NewMetrics(),
		ioSlot:    make(chan struct{}, 1),
	}
}

// Run drives every process to completion in segmentation order. The first
// invalid operation is reported on the console and aborts the whole run;
// the returned error then wraps ErrInvalidOperation.
func (sim *Simulator) Run() error {
	for i, proc := range sim.Processes {
		proc.ChangeState(StateReady)
		proc.ChangeState(StateRunning)
		logrus.Infof("[%.6f] Running process %d (%d operations)", sim.Clock, proc.ID, proc.Operations.Len())

		if err := sim.runProcess(proc); err != nil {
			for _, p := range sim.Processes[i:] {
				p.terminate()
			}
			sim.Metrics.Aborted = true
			sim.Metrics.SimEndedTime = sim.Clock
			logrus.Warnf("[%.6f] Simulation aborted in process %d: %v", sim.Clock, proc.ID, err)
			return fmt.Errorf("process %d: %w", proc.ID, err)
		}
		proc.terminate()
		sim.Metrics.Processes++
	}
	sim.Metrics.SimEndedTime = sim.Clock
	logrus.Infof("[%.6f] Simulation ended", sim.Clock)
	return nil
}

// runProcess consumes proc's queue in FIFO order.
func (sim *Simulator) runProcess(proc *Process) error {
	for {
		op, ok := proc.Operations.Dequeue()
		if !ok {
			return nil
		}
		sim.Metrics.Operations++

		if err := op.Validate(sim.Config); err != nil {
			sim.Sink.ReportError(err.Error())
			return err
		}

		if !op.IsBoundary() || sim.Config.LogBoundaries {
			if err := sim.emit(proc, op, op.StartPhrase(proc.ID)); err != nil {
				return err
			}
		}

		suffix, hasEnd := sim.execute(proc, op)
		if !hasEnd {
			continue
		}
		if err := sim.emit(proc, op, op.EndPhrase(suffix)); err != nil {
			return err
		}
	}
}

// execute applies op's timing and resource side effects. It returns the end
// phrase suffix and whether an end phrase should be logged at all.
func (sim *Simulator) execute(proc *Process, op Operation) (string, bool) {
	if op.IsBoundary() {
		return "", false
	}
	ms, _ := sim.Config.CycleTime(op.Device())

	if op.IsIO() {
		delta, suffix := sim.runIO(proc, op, ms)
		sim.Metrics.Record(proc.ID, op.Category, delta)
		return suffix, true
	}

	delta := sim.Timer.Elapse(op.Cost, ms)
	sim.Clock += delta
	sim.Metrics.Record(proc.ID, op.Category, delta)
	logrus.Debugf("[%.6f] process %d %v took %.6fs", sim.Clock, proc.ID, op, delta)

	if op.Category == CategoryMemory && op.Descriptor == DescriptorAllocate {
		return sim.Resources.AllocateMemoryString(), true
	}
	return "", true
}

// runIO parks proc in Waiting while a detached task performs the wait. The
// initiator joins the task before continuing, so timed waits never overlap.
func (sim *Simulator) runIO(proc *Process, op Operation, ms int) (float64, string) {
	proc.ChangeState(StateWaiting)
	sim.ioSlot <- struct{}{}

	done := make(chan float64, 1)
	go func() {
		done <- sim.Timer.Elapse(op.Cost, ms)
	}()
	delta := <-done

	sim.Clock += delta
	suffix := sim.Resources.AssignDevice(op.Descriptor)
	<-sim.ioSlot
	proc.ChangeState(StateRunning)

	logrus.Debugf("[%.6f] process %d %v took %.6fs%s", sim.Clock, proc.ID, op, delta, suffix)
	return delta, suffix
}

// emit formats one phrase with the current clock and writes it to the sink.
func (sim *Simulator) emit(proc *Process, op Operation, phrase string) error {
	if err := sim.Sink.WriteLine(FormatLine(sim.Clock, proc.ID, op, phrase)); err != nil {
		return fmt.Errorf("writing log line: %w", err)
	}
	return nil
}
