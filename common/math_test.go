package common

import "testing"

func TestClamp(t *testing.T) {
	cases := []struct {
		name      string
		v, lo, hi float64
		want      float64
	}{
		{"inside", 0.5, 0, 1, 0.5},
		{"below", -2, 0, 1, 0},
		{"above", 3, 0, 1, 1},
		{"edge_hi", 1, 0, 1, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Clamp(c.v, c.lo, c.hi); got != c.want {
				t.Fatalf("Clamp(%v, %v, %v) = %v, want %v", c.v, c.lo, c.hi, got, c.want)
			}
		})
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := Lerp(2, 4, 0); got != 2 {
		t.Fatalf("expected 2, got %v", got)
	}
}

func TestClampInt(t *testing.T) {
	if got := ClampInt(-1, 0, 3); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
	if got := ClampInt(7, 0, 3); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
