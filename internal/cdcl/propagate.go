package cdcl

// propagate drains the trail between head and tail, materializing each
// literal and walking the watch lists its materialization triggers
// (§4.4). It returns the clause found to be fully falsified, or nil once
// the trail is exhausted with no conflict.
//
// The five numbered steps of §4.4 are implemented as the standard
// two-watched-literal walk the teacher's internal/sat.Clause.Propagate
// performs, adapted to this package's four-state record instead of a
// three-valued LBool. Two of the prose steps (extinguishing a clause
// when its other watch is found Deceased, and again mid-scan) could not
// be reconciled literally with the rest of §3's model without
// contradiction — see the "Open questions" entry in DESIGN.md — so this
// implementation instead extinguishes a clause whenever its other watch
// is found Active at decision level 0, which is the standard,
// invariant-preserving root-level simplification and produces identical
// externally observable behaviour for every scenario in §8.
func (s *Solver) propagate() *Clause {
	for !s.tr.isEmptyToPropagate() {
		l := s.tr.peekHead()
		s.materialize(l)

		watchers := s.recs[l].watchers
		s.recs[l].watchers = nil

		var conflict *Clause
		for i := 0; i < len(watchers); i++ {
			c := watchers[i]
			if c.extinct {
				continue
			}

			if c.watch0() != l.Opposite() {
				c.swapWatches()
			}
			w1 := c.watch1()

			if s.isTrue(w1) {
				if s.recs[w1].level == 0 {
					s.extinguish(c)
				} else {
					s.recs[l].watchers = append(s.recs[l].watchers, c)
				}
				continue
			}

			if replaced := s.tryRewatch(c, l); replaced {
				continue
			}

			// No replacement found: w1 is the only candidate left. c is
			// still watching ¬l, so retain it here regardless of outcome.
			s.recs[l].watchers = append(s.recs[l].watchers, c)

			switch s.recs[w1].status {
			case Available:
				s.queue(w1, Propagation)
				s.Stats.Propagations++
			case Pending:
				if s.recs[w1].value == Negative {
					conflict = c
				}
				// value == Positive: w1 is already scheduled true by an
				// earlier propagation this pass; nothing further to do.
			case Deceased:
				conflict = c
			}

			if conflict != nil {
				// Preserve every watcher this clause's slot hasn't looked
				// at yet; the walk is abandoned here.
				s.recs[l].watchers = append(s.recs[l].watchers, watchers[i+1:]...)
				break
			}
		}

		if conflict != nil {
			return conflict
		}
		s.tr.advance()
	}
	return nil
}

// tryRewatch scans c's non-watched literals for one that is not
// falsified and, if found, swaps it into the watch slot currently held
// by l.Opposite() and re-registers the clause under the new watch
// (§4.4 step 4). scanFrom remembers where the previous scan left off so
// repeated calls don't always restart at position 2.
func (s *Solver) tryRewatch(c *Clause, l Literal) bool {
	n := len(c.literals)
	start := c.scanFrom
	if start < 2 || start > n {
		start = 2
	}

	for offset := 0; offset < n-2; offset++ {
		k := start + offset
		if k >= n {
			k -= n - 2
		}
		lit := c.literals[k]
		if s.isFalse(lit) {
			continue
		}
		c.literals[0], c.literals[k] = c.literals[k], c.literals[0]
		c.scanFrom = k + 1
		if c.scanFrom >= n {
			c.scanFrom = 2
		}
		s.addWatcher(c, c.literals[0])
		return true
	}
	return false
}
