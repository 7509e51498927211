package cdcl

import "testing"

func TestLiteralComplement(t *testing.T) {
	v := Variable(3)
	pos := PositiveLiteral(v)
	neg := NegativeLiteral(v)

	if pos.Opposite() != neg {
		t.Fatalf("PositiveLiteral(3).Opposite() = %v, want %v", pos.Opposite(), neg)
	}
	if neg.Opposite() != pos {
		t.Fatalf("NegativeLiteral(3).Opposite() = %v, want %v", neg.Opposite(), pos)
	}
	if pos.Var() != v || neg.Var() != v {
		t.Fatalf("Var() did not round-trip for variable %v", v)
	}
	if !pos.IsPositive() || neg.IsPositive() {
		t.Fatalf("IsPositive() wrong for pos=%v neg=%v", pos, neg)
	}
}

func TestLiteralFromDIMACS(t *testing.T) {
	cases := []struct {
		in   int
		want Literal
	}{
		{1, PositiveLiteral(0)},
		{-1, NegativeLiteral(0)},
		{5, PositiveLiteral(4)},
		{-5, NegativeLiteral(4)},
	}
	for _, c := range cases {
		if got := LiteralFromDIMACS(c.in); got != c.want {
			t.Errorf("LiteralFromDIMACS(%d) = %v, want %v", c.in, got, c.want)
		}
	}
}
