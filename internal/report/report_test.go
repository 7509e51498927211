package report

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/tmgordon/cdclsat/internal/cdcl"
)

func TestWriteDIMACSSatisfiable(t *testing.T) {
	r := &Run{
		Outcome: cdcl.Satisfiable,
		Model:   []bool{true, false, true},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteDIMACS(&buf, r))
	require.Equal(t, "s SATISFIABLE\nv 1 -2 3 0\n", buf.String())
}

func TestWriteDIMACSUnsatisfiable(t *testing.T) {
	r := &Run{Outcome: cdcl.Unsatisfiable}
	var buf bytes.Buffer
	require.NoError(t, WriteDIMACS(&buf, r))
	require.Equal(t, "s UNSATISFIABLE\n", buf.String())
}

func TestCaptureRunsSolverAndPopulatesStats(t *testing.T) {
	s := cdcl.New(2)
	s.AddClause([]cdcl.Literal{cdcl.PositiveLiteral(0), cdcl.PositiveLiteral(1)})

	r := Capture(s, 2, 1)
	require.Equal(t, cdcl.Satisfiable, r.Outcome)
	require.Len(t, r.Model, 2)
}

func TestMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	r := &Run{Stats: cdcl.Stats{Decisions: 3, Propagations: 5, Conflicts: 1}}
	m.Observe(r)

	metricFamilies, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, mf := range metricFamilies {
		if mf.GetName() == "cdcl_decisions_total" {
			found = true
			require.Equal(t, float64(3), mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	require.True(t, found, "cdcl_decisions_total metric was not registered")
}
