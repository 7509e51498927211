package cdcl

// repair performs the conflict-driven clause learning of §4.5. Let d be
// the decision level active when the propagator returned CONFLICT.
//
//   - d = 0: the formula is unsatisfiable; the search is done.
//   - d = 1: no clause need be learned.
//   - d > 1: a clause of length d is learned — the negations of the
//     decision literals on levels 1..d, ordered by descending level so
//     slot 0 and slot 1 are the two highest-level decisions' negations
//     — and pushed onto the learned CNF, registered in the watch lists
//     of those two slots exactly like any input clause.
//
// In every case, the level-d decision is then backtracked away:
// backtrackTo(d-1) undoes it, and its complement is queued as a
// CONFLICT_FLIP propagation at level d-1 rather than re-opened as a new
// decision level, so the search tree shrinks by exactly one level per
// conflict. It returns false only when d was already 0, meaning the
// formula is unsatisfiable.
//
// conflict is accepted for symmetry with a first-UIP analyzer's
// signature; it is not used here, since the learned clause comes
// directly from the decision path rather than the implication graph.
func (s *Solver) repair(conflict *Clause) bool {
	_ = conflict

	d := s.level
	if d == 0 {
		return false
	}

	decision := s.decisionLit[d-1]
	if d > 1 {
		s.learn(d)
	}

	flipped := decision.Opposite()
	s.backtrackTo(d - 1)
	s.queue(flipped, ConflictFlip)
	return true
}

// learn builds the length-d learned clause of §4.5 from the current
// decision path (levels 1..d, negated, descending) and registers it
// exactly as AddClause registers an input clause. Called only for d > 1;
// a length-1 "clause" is never stored, matching how a literal input unit
// clause is injected directly as a propagation rather than as a Clause.
func (s *Solver) learn(d int) *Clause {
	lits := make([]Literal, d)
	for i := 0; i < d; i++ {
		lits[i] = s.decisionLit[d-1-i].Opposite()
	}
	c := newClause(lits, true)
	s.learnts = append(s.learnts, c)
	s.registerClause(c)
	return c
}
