package cdcl

import "testing"

func TestTrailPushAdvanceOrder(t *testing.T) {
	tr := newTrail(2)
	a := PositiveLiteral(0)
	b := NegativeLiteral(1)

	tr.push(a)
	tr.push(b)

	if tr.isEmptyToPropagate() {
		t.Fatalf("trail should have pending work after two pushes")
	}
	if got := tr.peekHead(); got != a {
		t.Fatalf("peekHead() = %v, want %v", got, a)
	}
	tr.advance()
	if got := tr.peekHead(); got != b {
		t.Fatalf("peekHead() after advance = %v, want %v", got, b)
	}
	tr.advance()
	if !tr.isEmptyToPropagate() {
		t.Fatalf("trail should be fully propagated")
	}
}

func TestTrailDropLastShrinksTailAndHead(t *testing.T) {
	tr := newTrail(2)
	a := PositiveLiteral(0)
	b := NegativeLiteral(1)
	tr.push(a)
	tr.push(b)
	tr.advance()
	tr.advance() // head == tail == 2

	tr.dropLast()
	if tr.len() != 1 {
		t.Fatalf("len() = %d, want 1", tr.len())
	}
	if tr.head != 1 {
		t.Fatalf("dropLast should pull head back in line with tail, head = %d", tr.head)
	}
}
