// Tracks per-category and per-process elapsed time for the final report.

package sim

import (
	"encoding/json"
	"fmt"
	"io"

	"gonum.org/v1/gonum/stat"
)

// Metrics collects the measured delta of every timed operation.
type Metrics struct {
	samples        map[Category][]float64 // seconds, by operation category
	processElapsed map[int]float64        // seconds, by process id
	Operations     int                    // operations consumed, boundaries included
	Processes      int                    // processes that ran to completion
	Aborted        bool                   // run stopped on an invalid operation
	SimEndedTime   float64                // final SimulationClock value
}

// NewMetrics returns an empty Metrics ready to record.
func NewMetrics() *Metrics {
	return &Metrics{
		samples:        make(map[Category][]float64),
		processElapsed: make(map[int]float64),
	}
}

// Record adds one timed operation's delta.
func (m *Metrics) Record(processID int, cat Category, delta float64) {
	m.samples[cat] = append(m.samples[cat], delta)
	m.processElapsed[processID] += delta
}

// CategoryStats summarizes the deltas recorded for one category.
type CategoryStats struct {
	Count  int     `json:"count"`
	TotalS float64 `json:"total_s"`
	MeanS  float64 `json:"mean_s"`
	StdDev float64 `json:"stddev_s"`
}

// Summary is the JSON shape printed at the end of a run.
type Summary struct {
	Processes      int                        `json:"processes_completed"`
	Operations     int                        `json:"operations"`
	Aborted        bool                       `json:"aborted"`
	SimEndedTimeS  float64                    `json:"sim_ended_time_s"`
	Categories     map[Category]CategoryStats `json:"categories"`
	ProcessElapsed map[string]float64         `json:"process_elapsed_s"`
}

// Summarize computes the per-category statistics.
func (m *Metrics) Summarize() Summary {
	s := Summary{
		Processes:      m.Processes,
		Operations:     m.Operations,
		Aborted:        m.Aborted,
		SimEndedTimeS:  m.SimEndedTime,
		Categories:     make(map[Category]CategoryStats, len(m.samples)),
		ProcessElapsed: make(map[string]float64, len(m.processElapsed)),
	}
	for cat, xs := range m.samples {
		cs := CategoryStats{Count: len(xs)}
		for _, x := range xs {
			cs.TotalS += x
		}
		if len(xs) > 1 {
			cs.MeanS, cs.StdDev = stat.MeanStdDev(xs, nil)
		} else {
			cs.MeanS = stat.Mean(xs, nil)
		}
		s.Categories[cat] = cs
	}
	for id, elapsed := range m.processElapsed {
		s.ProcessElapsed[fmt.Sprintf("process_%d", id)] = elapsed
	}
	return s
}

// Print writes the summary as indented JSON under a header.
func (m *Metrics) Print(w io.Writer) error {
	data, err := json.MarshalIndent(m.Summarize(), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	_, err = fmt.Fprintln(w, string(data))
	return err
}
