package cdcl

// Clause is an ordered, mutable sequence of at least two literals. The
// first two positions (literals[0], literals[1]) are the watched slots;
// the propagator in propagate.go is the only code allowed to reorder
// them. Unit clauses are never represented by a Clause — they are
// injected directly as trail propagations (see Solver.AddClause).
type Clause struct {
	literals []Literal

	// extinct marks a clause known to be satisfied at decision level 0
	// (§4.4 step 2 and step 4). An extinct clause is skipped wherever it
	// is still referenced from a watch list until that reference is
	// lazily (or, in this implementation, eagerly — see §9 open
	// questions) compacted away.
	extinct bool

	// learnt records whether this clause was produced by conflict repair
	// (§4.5) rather than supplied as part of the input CNF.
	learnt bool

	// scanFrom remembers where the last search for a replacement watch
	// left off, so that Propagate does not always restart scanning the
	// clause's tail from position 2. This mirrors the prevPos
	// optimization used by the teacher's clause-pool rewrite. It must
	// always be in [2, len(literals)] and is clamped back to 2 whenever
	// it falls out of range (e.g. after Simplify-like shrinkage, which
	// this design does not perform, or defensively on construction).
	scanFrom int
}

// newClause constructs a Clause from literals already known to contain no
// duplicate and no complementary pair — those simplifications happen in
// the caller (see Solver.AddClause and Solver.learn), exactly as
// NewClause in the teacher's internal/sat package performs them before
// allocating.
func newClause(literals []Literal, learnt bool) *Clause {
	lits := make([]Literal, len(literals))
	copy(lits, literals)
	return &Clause{
		literals: lits,
		learnt:   learnt,
		scanFrom: 2,
	}
}

// watch0 and watch1 return the clause's two watched slots.
func (c *Clause) watch0() Literal { return c.literals[0] }
func (c *Clause) watch1() Literal { return c.literals[1] }

// swapWatches exchanges the two watched slots.
func (c *Clause) swapWatches() {
	c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
}

// reasonLiterals returns the clause's literals other than the asserting
// literal (literals[0]), negated — i.e. the set of literals whose
// falsity forced literals[0] to be assigned. Conflict repair does not
// call it; it learns from the decision path instead (see conflict.go).
func (c *Clause) reasonLiterals() []Literal {
	out := make([]Literal, 0, len(c.literals)-1)
	for _, l := range c.literals[1:] {
		out = append(out, l.Opposite())
	}
	return out
}
