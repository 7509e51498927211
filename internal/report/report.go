// Package report turns a finished cdcl.Solver run into the ambient
// stack §6.2 asks a host process to carry: a structured log line for
// humans, a DIMACS-style result on stdout, and — when enabled — a
// Prometheus gauge set a scrape target can read. None of this is core
// solver logic; it is exactly the kind of thing a teacher repo wires up
// around its algorithm in main.go rather than inside the algorithm
// itself.
package report

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/tmgordon/cdclsat/internal/cdcl"
)

// Run captures everything a single Solve call is asked to report: the
// outcome, the run's counters, and how long and how much memory it
// took.
type Run struct {
	Outcome  cdcl.Outcome
	Stats    cdcl.Stats
	Model    []bool
	Elapsed  time.Duration
	PeakRSS  uint64
	NumVars  int
	NumCNF   int
}

// Capture runs solver.Solve, timing it and sampling peak resident memory
// around the call via runtime.ReadMemStats — the same technique the
// teacher's main.go uses pprof for, generalized to a plain counter since
// this package's job is reporting, not profiling (profiling stays a CLI
// flag, see cmd/cdclsolver).
func Capture(solver *cdcl.Solver, numVars, numClauses int) *Run {
	start := time.Now()
	outcome := solver.Solve()
	elapsed := time.Since(start)

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	run := &Run{
		Outcome: outcome,
		Stats:   solver.Stats,
		Elapsed: elapsed,
		PeakRSS: mem.Sys,
		NumVars: numVars,
		NumCNF:  numClauses,
	}
	if outcome == cdcl.Satisfiable {
		run.Model = solver.Model()
	}
	return run
}

// WriteDIMACS writes the run's outcome and model in the conventional
// `s`/`v` DIMACS solution format: an `s SATISFIABLE`/`s UNSATISFIABLE`
// line, followed on the satisfiable path by one `v ...` value line
// (signed variable indices, space-separated, terminated by a trailing
// 0). §6.2 describes this as an external collaborator's rendering of
// the solver's result, not core solver logic.
func WriteDIMACS(w io.Writer, r *Run) error {
	switch r.Outcome {
	case cdcl.Satisfiable:
		if _, err := fmt.Fprintln(w, "s SATISFIABLE"); err != nil {
			return err
		}
		if _, err := fmt.Fprint(w, "v"); err != nil {
			return err
		}
		for i, val := range r.Model {
			sign := 1
			if !val {
				sign = -1
			}
			if _, err := fmt.Fprintf(w, " %d", sign*(i+1)); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintln(w, " 0")
		return err
	default:
		_, err := fmt.Fprintln(w, "s UNSATISFIABLE")
		return err
	}
}

// Log emits one structured summary line through logger at Info level,
// in the field-based style the teacher's corpus uses logrus for rather
// than ad hoc Printf calls.
func Log(logger *logrus.Logger, r *Run) {
	logger.WithFields(logrus.Fields{
		"outcome":      r.Outcome.String(),
		"vars":         r.NumVars,
		"clauses":      r.NumCNF,
		"decisions":    r.Stats.Decisions,
		"propagations": r.Stats.Propagations,
		"conflicts":    r.Stats.Conflicts,
		"elapsed_sec":  r.Elapsed.Seconds(),
		"peak_rss":     r.PeakRSS,
	}).Info("solve finished")
}

// Metrics is the optional Prometheus exposition surface described in
// §6.2. It is only wired up when the host process passes --metrics-addr
// (see cmd/cdclsolver); a Solve run that never constructs a Metrics
// never touches the prometheus package.
type Metrics struct {
	decisions    prometheus.Counter
	propagations prometheus.Counter
	conflicts    prometheus.Counter
	lastElapsed  prometheus.Gauge
}

// NewMetrics builds and registers the counter/gauge set against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cdcl_decisions_total",
			Help: "Total number of decisions made across all solves.",
		}),
		propagations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cdcl_propagations_total",
			Help: "Total number of unit propagations across all solves.",
		}),
		conflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "cdcl_conflicts_total",
			Help: "Total number of conflicts encountered across all solves.",
		}),
		lastElapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "cdcl_last_solve_seconds",
			Help: "Wall-clock duration of the most recently completed solve.",
		}),
	}
	reg.MustRegister(m.decisions, m.propagations, m.conflicts, m.lastElapsed)
	return m
}

// Observe folds one run's counters into the registered metrics.
func (m *Metrics) Observe(r *Run) {
	m.decisions.Add(float64(r.Stats.Decisions))
	m.propagations.Add(float64(r.Stats.Propagations))
	m.conflicts.Add(float64(r.Stats.Conflicts))
	m.lastElapsed.Set(r.Elapsed.Seconds())
}
