// Command cdclsolver reads a DIMACS CNF file and reports whether it is
// satisfiable, and under what model. It is the host process the design
// assumes around the solver: it owns the timeout (§5 — the solver
// itself never imposes one), the profiling flags, and the optional
// Prometheus exposition, none of which belong inside internal/cdcl.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"runtime/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/tmgordon/cdclsat/internal/dimacs"
	"github.com/tmgordon/cdclsat/internal/report"
)

type options struct {
	cpuProfile  string
	memProfile  string
	metricsAddr string
	timeout     time.Duration
	debug       bool
}

func newRootCmd() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:          "cdclsolver [flags] instance.cnf",
		Short:        "Solve a DIMACS CNF instance with a conflict-driven clause learning search",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, args[0])
		},
	}

	cmd.Flags().StringVar(&o.cpuProfile, "cpuprofile", "", "write a pprof CPU profile to this path")
	cmd.Flags().StringVar(&o.memProfile, "memprofile", "", "write a pprof heap profile to this path")
	cmd.Flags().StringVar(&o.metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address instead of exiting")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 0, "abort the search after this long (0 disables the timeout)")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "enable debug-level logging")

	return cmd
}

func run(o *options, instanceFile string) error {
	logger := logrus.New()
	if o.debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if o.cpuProfile != "" {
		f, err := os.Create(o.cpuProfile)
		if err != nil {
			return fmt.Errorf("creating cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	var registry *prometheus.Registry
	var metrics *report.Metrics
	if o.metricsAddr != "" {
		registry = prometheus.NewRegistry()
		metrics = report.NewMetrics(registry)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: o.metricsAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	solver, err := dimacs.Load(instanceFile)
	if err != nil {
		return fmt.Errorf("loading instance: %w", err)
	}

	ctx := context.Background()
	var cancel context.CancelFunc
	if o.timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	type result struct {
		run *report.Run
	}
	numVars := solver.NumVars()
	done := make(chan result, 1)
	go func() {
		done <- result{run: report.Capture(solver, numVars, 0)}
	}()

	select {
	case <-ctx.Done():
		logger.Warn("search aborted: timeout exceeded")
		if o.memProfile != "" {
			writeHeapProfile(o.memProfile, logger)
		}
		return fmt.Errorf("timed out after %s", o.timeout)
	case res := <-done:
		report.Log(logger, res.run)
		if metrics != nil {
			metrics.Observe(res.run)
		}
		if err := report.WriteDIMACS(os.Stdout, res.run); err != nil {
			return fmt.Errorf("writing result: %w", err)
		}
		if o.memProfile != "" {
			writeHeapProfile(o.memProfile, logger)
		}
		if o.metricsAddr != "" {
			// Keep serving /metrics for scraping rather than exiting
			// immediately once a run completes.
			select {}
		}
		return nil
	}
}

func writeHeapProfile(path string, logger *logrus.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.WithError(err).Error("creating heap profile")
		return
	}
	defer f.Close()
	if err := pprof.WriteHeapProfile(f); err != nil {
		logger.WithError(err).Error("writing heap profile")
	}
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "cdclsolver: internal error: %v\n", r)
			os.Exit(2)
		}
	}()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
