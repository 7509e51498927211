//go:build !cdcldebug

package cdcl

// checkInvariants is a no-op in release builds; see invariants_debug.go
// for the cdcldebug-tagged implementation actually used in tests.
func (s *Solver) checkInvariants() {}
