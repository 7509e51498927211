package cdcl

// nextDecisionVariable scans variables in index order for the first one
// still Available (§4.3: "a deterministic linear scan in variable-index
// order", deliberately not a VSIDS-style activity heap — see DESIGN.md
// for why the teacher's priority-queue dependency was dropped). It
// reports false once every variable is assigned, meaning the formula is
// satisfied under the current trail.
func (s *Solver) nextDecisionVariable() (Variable, bool) {
	for v := 0; v < s.numVars; v++ {
		variable := Variable(v)
		if s.recs[PositiveLiteral(variable)].status == Available {
			return variable, true
		}
	}
	return 0, false
}

// decide opens a new decision level and queues v's positive literal as
// a Decision. §4.3 fixes the polarity (always try true first); repair
// is what explores the false branch later if needed.
func (s *Solver) decide(v Variable) {
	s.level++
	lit := PositiveLiteral(v)
	s.decisionLit = append(s.decisionLit, lit)
	s.Stats.Decisions++
	s.queue(lit, Decision)
}
