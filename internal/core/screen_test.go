package core

import (
	"strings"
	"testing"
)

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(50, 21)

	if s.Width() != 50 || s.Height() != 21 {
		t.Fatalf("size = %dx%d, want 50x21", s.Width(), s.Height())
	}
	want := strings.Repeat(" ", 50)
	for y := 0; y < s.Height(); y++ {
		if row := s.Row(y); row != want {
			t.Fatalf("row %d = %q, want blank", y, row)
		}
	}
}

func TestScreenCellsClip(t *testing.T) {
	s := NewScreen(10, 4)

	tests := []struct {
		name string
		x, y int
	}{
		{"left", -1, 0},
		{"right", 10, 0},
		{"above", 0, -1},
		{"below", 0, 4},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s.SetColor(tc.x, tc.y, '^', ColorYellow)
			if c := s.GetCell(tc.x, tc.y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Errorf("GetCell(%d, %d) = %+v, want blank", tc.x, tc.y, c)
			}
		})
	}
}

func TestScreenColors(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColor(2, 3, '^', ColorBrightYellow)

	if c := s.GetCell(2, 3); c.Rune != '^' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(2, 3) = %+v, want bright yellow '^'", c)
	}

	// A plain Set drops the color.
	s.Set(2, 3, 'v')
	if c := s.GetCell(2, 3); c.Rune != 'v' || c.Color != ColorDefault {
		t.Errorf("after Set, GetCell(2, 3) = %+v", c)
	}

	s.Clear()
	if s.Get(2, 3) != ' ' {
		t.Error("Clear left a rune behind")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(-2, 6, 5, 10), '█', ColorGreen)

	// Clipped to x in [0, 3) and y in [6, 10).
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			want := x < 3 && y >= 6
			c := s.GetCell(x, y)
			if got := c.Rune == '█'; got != want {
				t.Fatalf("(%d, %d) filled = %v, want %v", x, y, got, want)
			}
			if want && c.Color != ColorGreen {
				t.Fatalf("(%d, %d) color = %v, want green", x, y, c.Color)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(12, 2)
	s.DrawText(0, 0, "score 3")
	s.DrawTextColor(8, 1, "PAUSED", ColorCyan)

	if got := s.Row(0); got != "score 3     " {
		t.Errorf("Row(0) = %q", got)
	}
	// Clipped at the right edge.
	if got := s.Row(1); got != "        PAUS" {
		t.Errorf("Row(1) = %q", got)
	}
	if s.GetCell(8, 1).Color != ColorCyan {
		t.Error("DrawTextColor did not color the text")
	}
	if got := s.String(); got != "score 3     \n        PAUS" {
		t.Errorf("String() = %q", got)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "tick 24")
	s.DrawText(0, 8, "gone")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("size = %dx%d, want 8x4", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "tick 24") {
		t.Errorf("Row(0) = %q after shrinking", s.Row(0))
	}

	s.Resize(20, 12)
	if !strings.HasPrefix(s.Row(0), "tick 24") {
		t.Errorf("Row(0) = %q after growing", s.Row(0))
	}
	if strings.TrimSpace(s.Row(8)) != "" {
		t.Errorf("Row(8) = %q, want blank after a shrink and grow", s.Row(8))
	}
}
