package cdcl

import "testing"

func TestPropagateUnitChain(t *testing.T) {
	// (¬1 ∨ 2) with 1 already true must force 2 true without a decision.
	s := New(2)
	s.AddClause(lits(-1, 2))
	s.queue(PositiveLiteral(0), Decision)
	s.level = 1

	if c := s.propagate(); c != nil {
		t.Fatalf("propagate() found a spurious conflict")
	}
	if !s.isTrue(PositiveLiteral(1)) {
		t.Fatalf("variable 2 should have been forced true")
	}
	if s.Stats.Propagations != 1 {
		t.Fatalf("Propagations = %d, want 1", s.Stats.Propagations)
	}
}

func TestPropagateDetectsConflict(t *testing.T) {
	// (¬1 ∨ 2) forces 2 true as soon as 1 is decided true; (¬1 ∨ ¬2)
	// then finds ¬2 already Pending-false, i.e. a direct conflict
	// discovered while walking 1's watch list within a single
	// propagate() call.
	s := New(2)
	s.AddClause(lits(-1, 2))
	s.AddClause(lits(-1, -2))

	s.queue(PositiveLiteral(0), Decision) // 1 = true
	s.level = 1

	c := s.propagate()
	if c == nil {
		t.Fatalf("propagate() should have found a conflict")
	}
	// The first clause scheduled 2 true (Pending, not yet materialized)
	// before the second clause's watch walk found it already
	// Pending-false from the complementary side.
	if s.recs[PositiveLiteral(1)].status != Pending || s.recs[PositiveLiteral(1)].value != Positive {
		t.Fatalf("variable 2 should have been scheduled true by the first clause before the conflict")
	}
}

func TestPropagateRewatchesAwayFromFalsifiedLiteral(t *testing.T) {
	// (¬1 ∨ ¬2 ∨ 3): falsifying 1 should not by itself force anything,
	// since the clause can still be satisfied by 3 taking over as the
	// watch.
	s := New(3)
	s.AddClause(lits(-1, -2, 3))
	s.queue(PositiveLiteral(0), Decision) // falsifies literal -1
	s.level = 1

	if c := s.propagate(); c != nil {
		t.Fatalf("propagate() found a spurious conflict")
	}
	if s.Stats.Propagations != 0 {
		t.Fatalf("Propagations = %d, want 0 (clause should have rewatched, not propagated)", s.Stats.Propagations)
	}
	if s.recs[PositiveLiteral(2)].status != Available {
		t.Fatalf("variable 3 should remain unassigned after rewatch")
	}
}

func TestRootLevelSatisfiedClauseIsExtinguished(t *testing.T) {
	// (1 ∨ 2): asserting 1 true at level 0 doesn't by itself touch the
	// clause (neither watch was falsified yet). Asserting 2 false does
	// falsify its watch, and at that point the other watch (1) is
	// already permanently true, so the clause should be recognized as
	// satisfied forever and extinguished rather than kept on any watch
	// list.
	s := New(2)
	s.AddClause(lits(1, 2))
	s.queue(PositiveLiteral(0), Propagation)  // var 1 = true, level 0
	s.queue(NegativeLiteral(1), Propagation) // var 2 = false, level 0

	if c := s.propagate(); c != nil {
		t.Fatalf("propagate() found a spurious conflict")
	}
	if !s.constraints[0].extinct {
		t.Fatalf("clause satisfied permanently at level 0 should be extinct")
	}
}
