// Package dimacs loads a CNF formula from a DIMACS file into a
// cdcl.Solver. Tokenizing the DIMACS grammar itself is delegated to the
// external github.com/rhartert/dimacs package — parsing the exchange
// format is an external collaborator's job, not core solver logic (§6.1
// of the design this package implements) — leaving this file responsible
// only for translating DIMACS's signed, 1-based integers into cdcl
// literals and for the edge cases §6.1 calls out explicitly.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/tmgordon/cdclsat/internal/cdcl"
)

func openReader(filename string) (io.ReadCloser, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	var rc io.ReadCloser = f
	if isGzipPath(filename) {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("opening gzip stream: %w", err)
		}
		rc = gz
	}
	return rc, nil
}

func isGzipPath(filename string) bool {
	n := len(filename)
	return n > 3 && filename[n-3:] == ".gz"
}

// Load parses filename and returns a solver over its declared variables
// with every input clause already added. An empty clause anywhere in the
// file makes the returned solver immediately unsatisfiable, including
// under a variable count of zero (§9). A variable count of zero gets no
// special handling: with no clauses the solver is satisfiable, and the
// UNSAT verdict comes only from cdcl.Solver.AddClause seeing the empty
// clause.
func Load(filename string) (*cdcl.Solver, error) {
	r, err := openReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &solverBuilder{}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", filename, err)
	}
	if b.solver == nil {
		return nil, fmt.Errorf("parsing %q: missing problem line", filename)
	}
	return b.solver, nil
}

// solverBuilder implements the external package's dimacs.Builder
// interface, exactly as the teacher's parsers.builder does, but targets
// a cdcl.Solver instead of the teacher's sat.Solver.
type solverBuilder struct {
	solver *cdcl.Solver
}

func (b *solverBuilder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("problem type %q is not supported, only cnf", problem)
	}
	b.solver = cdcl.New(nVars)
	return nil
}

func (b *solverBuilder) Clause(raw []int) error {
	if b.solver == nil {
		return fmt.Errorf("clause line before problem line")
	}
	lits := make([]cdcl.Literal, len(raw))
	for i, x := range raw {
		lits[i] = cdcl.LiteralFromDIMACS(x)
	}
	b.solver.AddClause(lits)
	return nil
}

func (b *solverBuilder) Comment(string) error {
	return nil
}

// ReadModels parses a file of expected models — one line per model, each
// a space-separated list of signed literals terminated by 0 — in the
// format the teacher's test fixtures used. It is kept only for tests
// that want to assert a solver's model against a precomputed witness.
func ReadModels(filename string) ([][]bool, error) {
	r, err := openReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", filename, err)
	}
	return b.models, nil
}

type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have a problem line")
}

func (b *modelBuilder) Comment(string) error { return nil }

func (b *modelBuilder) Clause(raw []int) error {
	model := make([]bool, len(raw))
	for i, x := range raw {
		model[i] = x > 0
	}
	b.models = append(b.models, model)
	return nil
}
