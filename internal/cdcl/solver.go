package cdcl

import "fmt"

// Stats accumulates the counters §6.2 and §8 require a host process to be
// able to report: how many decisions, propagations and conflicts the
// search performed. A *Stats is safe to read after Solve returns; it
// must not be read concurrently with a running Solve.
type Stats struct {
	Decisions    int64
	Propagations int64
	Conflicts    int64
}

// Outcome is the result of a completed Solve call.
type Outcome uint8

const (
	// Unknown is returned only if Solve is asked to stop early; this
	// package's Solve always runs to completion and never returns it.
	Unknown Outcome = iota
	Satisfiable
	Unsatisfiable
)

func (o Outcome) String() string {
	switch o {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	default:
		return "UNKNOWN"
	}
}

// Solver holds one CNF instance's variables, clauses and search state. A
// Solver is built with New, populated with AddClause, and driven to
// completion with Solve. It is not safe for concurrent use.
type Solver struct {
	numVars int
	recs    []record // indexed by Literal, length 2*numVars
	tr      *trail

	level       int
	decisionLit []Literal // decisionLit[d-1] is the level-d decision, for 1 <= d <= level

	constraints []*Clause
	learnts     []*Clause

	unsat bool // set by AddClause on an empty clause or contradictory unit clauses

	Stats Stats
}

// New creates a solver over numVars boolean variables, numbered
// 0..numVars-1 at the API boundary (DIMACS's 1-based numbering is
// translated by the internal/dimacs package before reaching here).
func New(numVars int) *Solver {
	s := &Solver{
		numVars: numVars,
		recs:    make([]record, 2*numVars),
		tr:      newTrail(numVars),
	}
	for l := range s.recs {
		s.recs[l].level = UnassignedLevel
	}
	return s
}

func (s *Solver) rec(l Literal) *record {
	return &s.recs[l]
}

func (s *Solver) isTrue(l Literal) bool  { return s.recs[l].status == Active }
func (s *Solver) isFalse(l Literal) bool { return s.recs[l].status == Deceased }
func (s *Solver) isAssigned(l Literal) bool {
	st := s.recs[l].status
	return st == Active || st == Deceased
}

// AddClause adds a disjunction of literals to the formula. An empty
// clause marks the formula permanently unsatisfiable. A clause that
// reduces to a single literal after removing duplicates is injected
// directly onto the trail as a level-0 propagation rather than stored as
// a Clause — §4.4's watched-literal scheme requires at least two
// literals to watch. AddClause must be called before the first call to
// Solve; it does not itself run propagation.
func (s *Solver) AddClause(lits []Literal) {
	if s.unsat {
		return
	}

	uniq := make([]Literal, 0, len(lits))
	seen := make(map[Literal]bool, len(lits))
	for _, l := range lits {
		if seen[l] {
			continue
		}
		if seen[l.Opposite()] {
			return // tautology: l and ¬l both present, clause is trivially true
		}
		seen[l] = true
		uniq = append(uniq, l)
	}

	switch len(uniq) {
	case 0:
		s.unsat = true
		return
	case 1:
		s.assertRootLiteral(uniq[0])
		return
	}

	c := newClause(uniq, false)
	s.constraints = append(s.constraints, c)
	s.registerClause(c)
}

// assertRootLiteral forces a literal true at decision level 0, as a unit
// input clause or a learned unit does. If the literal is already
// falsified at level 0, or its complement is already queued by an
// earlier unit clause, the formula is unsatisfiable.
func (s *Solver) assertRootLiteral(l Literal) {
	switch s.recs[l].status {
	case Active:
		return
	case Deceased:
		s.unsat = true
		return
	case Pending:
		// Queued by an earlier unit clause: the same literal is a
		// duplicate, its complement a root-level contradiction.
		if s.recs[l].value == Negative {
			s.unsat = true
		}
		return
	}
	s.queue(l, Propagation)
}

// registerClause watches literals[0] and literals[1], and bumps
// active_count for every literal the clause still contains (§3).
func (s *Solver) registerClause(c *Clause) {
	s.addWatcher(c, c.watch0())
	s.addWatcher(c, c.watch1())
	for _, l := range c.literals {
		s.recs[l].activeCount++
	}
}

// addWatcher registers c on the watch list consulted when watched is
// falsified, i.e. the list attached to watched's complement (§3:
// "watch_list: clauses currently watching this literal's complement").
func (s *Solver) addWatcher(c *Clause, watched Literal) {
	key := watched.Opposite()
	s.recs[key].watchers = append(s.recs[key].watchers, c)
}

// extinguish marks a clause permanently satisfied and releases its
// active_count contribution to every literal it still holds. Per §9's
// resolution of the open question about watch-list cleanup, this
// implementation removes the clause from both watch lists eagerly
// (invariant 2 — a non-extinct clause is watched at exactly two of its
// literals — is trivially preserved by deleting both references in the
// same step, so lazy tombstoning buys nothing here).
func (s *Solver) extinguish(c *Clause) {
	if c.extinct {
		return
	}
	c.extinct = true
	for _, l := range c.literals {
		s.recs[l].activeCount--
	}
	s.removeWatcher(c, c.watch0())
	s.removeWatcher(c, c.watch1())
}

func (s *Solver) removeWatcher(c *Clause, watched Literal) {
	key := watched.Opposite()
	ws := s.recs[key].watchers
	for i, w := range ws {
		if w == c {
			ws[i] = ws[len(ws)-1]
			s.recs[key].watchers = ws[:len(ws)-1]
			return
		}
	}
}

// queue transitions l and its complement from Available to Pending and
// appends l to the trail. Per §4.1, the literal queued is recorded as
// the one destined to become true — value is written now (not deferred
// to materialization) so that two complementary Pending literals can be
// told apart before either reaches the trail head (§4.4 step 5).
func (s *Solver) queue(l Literal, kind AssignKind) {
	opp := l.Opposite()
	s.recs[l].status = Pending
	s.recs[l].kind = kind
	s.recs[l].value = Positive
	s.recs[opp].status = Pending
	s.recs[opp].value = Negative
	s.tr.push(l)
}

// materialize processes the literal at the trail head: it becomes
// Active, its complement becomes Deceased, and both records gain the
// current decision level (§4.1).
func (s *Solver) materialize(l Literal) {
	opp := l.Opposite()
	s.recs[l].status = Active
	s.recs[l].level = s.level
	s.recs[opp].status = Deceased
	s.recs[opp].level = s.level
}

// unassign restores l and its complement to Available, undoing queue
// and (if it had progressed that far) materialize.
func (s *Solver) unassign(l Literal) {
	opp := l.Opposite()
	s.recs[l].status = Available
	s.recs[l].level = UnassignedLevel
	s.recs[opp].status = Available
	s.recs[opp].level = UnassignedLevel
}

// backtrackTo undoes every assignment made at a decision level greater
// than target, per §4.2. Unlike the literal reading of "walk backward
// from head", this walks backward from tail: a conflict can leave
// literals Pending-but-never-materialized between head and tail (the
// watch-list walk was abandoned mid-clause), and those slots carry no
// level yet, so they must be unwound unconditionally whenever target is
// less than the solver's current level — which conflict-triggered
// backtracking always is. Any literal still materialized (Active or
// Deceased) is unwound only once its recorded level exceeds target; the
// trail's levels are non-decreasing, so the first such literal found
// ends the walk.
func (s *Solver) backtrackTo(target int) {
	for s.tr.len() > 0 {
		l := s.tr.last()
		// A materialized literal's recorded level is authoritative. A
		// still-Pending literal was queued at the solver's current level
		// (queuing never outruns the level it happens at), so that
		// level stands in for it until it either gets popped here or
		// reaches the trail head and is materialized for real.
		lvl := s.level
		if s.recs[l].status != Pending {
			lvl = s.recs[l].level
		}
		if lvl <= target {
			break
		}
		s.unassign(l)
		s.tr.dropLast()
	}
	if len(s.decisionLit) > target {
		s.decisionLit = s.decisionLit[:target]
	}
	s.level = target
}

// Solve runs the decide/propagate/conflict-repair loop of §4.6 to
// completion and returns Satisfiable or Unsatisfiable. It takes no
// context and checks no budget: per §5, imposing a time limit is the
// host process's responsibility (see cmd/cdclsolver), not the solver's.
func (s *Solver) Solve() Outcome {
	if s.unsat {
		return Unsatisfiable
	}

	for {
		s.checkInvariants()

		if c := s.propagate(); c != nil {
			s.Stats.Conflicts++
			if !s.repair(c) {
				return Unsatisfiable
			}
			continue
		}

		v, ok := s.nextDecisionVariable()
		if !ok {
			return Satisfiable
		}
		s.decide(v)
	}
}

// NumVars returns the number of variables the solver was constructed
// with.
func (s *Solver) NumVars() int {
	return s.numVars
}

// Model returns the satisfying assignment found by the most recent
// Solve call that returned Satisfiable, as one bool per variable
// (true = positive literal holds).
func (s *Solver) Model() []bool {
	m := make([]bool, s.numVars)
	for v := 0; v < s.numVars; v++ {
		m[v] = s.isTrue(PositiveLiteral(Variable(v)))
	}
	return m
}

func (s *Solver) String() string {
	return fmt.Sprintf("Solver{vars=%d constraints=%d learnts=%d level=%d}",
		s.numVars, len(s.constraints), len(s.learnts), s.level)
}
