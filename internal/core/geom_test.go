package core

import "testing"

func TestRectEdges(t *testing.T) {
	// An obstacle barrier: 104 wide, top edge at the gap bottom.
	r := NewRect(700, 450, 104, 640)

	if r.Right() != 804 {
		t.Errorf("Right() = %d, want 804", r.Right())
	}
	if r.Bottom() != 1090 {
		t.Errorf("Bottom() = %d, want 1090", r.Bottom())
	}
	if r.Empty() {
		t.Error("Empty() = true for a barrier")
	}
	if !NewRect(0, 0, 0, 48).Empty() || !NewRect(0, 0, 68, -1).Empty() {
		t.Error("Empty() = false for a degenerate rect")
	}
}

func TestRectIntersection(t *testing.T) {
	agent := NewRect(230, 300, 68, 48)

	tests := []struct {
		name  string
		other Rect
		want  Rect
	}{
		{"barrier overlapping the agent's feet", NewRect(250, 340, 104, 640), NewRect(250, 340, 48, 8)},
		{"barrier fully right of the agent", NewRect(298, 300, 104, 640), Rect{}},
		{"barrier just below the agent", NewRect(230, 348, 104, 640), Rect{}},
		{"contained", NewRect(240, 310, 10, 10), NewRect(240, 310, 10, 10)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := agent.Intersection(tc.other); got != tc.want {
				t.Errorf("Intersection() = %+v, want %+v", got, tc.want)
			}
			if got := tc.other.Intersection(agent); got != tc.want {
				t.Errorf("Intersection() reversed = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestRectTranslate(t *testing.T) {
	got := NewRect(0, 0, 68, 48).Translate(-12, 7)
	if want := NewRect(-12, 7, 68, 48); got != want {
		t.Errorf("Translate() = %+v, want %+v", got, want)
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{350, 350},
		{351.4, 351},
		{351.6, 352},
		// Halves go to the even neighbour.
		{351.5, 352},
		{357.5, 358},
		{402.5, 402},
		{0.5, 0},
		{-10.5, -10},
		{-11.5, -12},
	}

	for _, tc := range tests {
		if got := Round(tc.in); got != tc.want {
			t.Errorf("Round(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, lo, hi, want int
	}{
		{5, 0, 20, 5},
		{-3, 0, 20, 0},
		{25, 0, 20, 20},
		{20, 0, 20, 20},
	}
	for _, tc := range tests {
		if got := Clamp(tc.val, tc.lo, tc.hi); got != tc.want {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", tc.val, tc.lo, tc.hi, got, tc.want)
		}
	}

	// Tilt bounds.
	if got := ClampF(40, -90, 25); got != 25 {
		t.Errorf("ClampF(40) = %v, want 25", got)
	}
	if got := ClampF(-110, -90, 25); got != -90 {
		t.Errorf("ClampF(-110) = %v, want -90", got)
	}
	if Min(3, 8) != 3 || Max(3, 8) != 8 {
		t.Error("Min/Max returned the wrong operand")
	}
}
