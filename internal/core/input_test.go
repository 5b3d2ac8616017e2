package core

import "testing"

func TestPointerClamps(t *testing.T) {
	p := NewPointer()
	if p.X() != 50 {
		t.Fatalf("new pointer should be centred, got %v", p.X())
	}

	p.Set(150)
	if p.X() != 100 {
		t.Errorf("Set(150) = %v, expected 100", p.X())
	}

	p.Set(-3)
	if p.X() != 0 {
		t.Errorf("Set(-3) = %v, expected 0", p.X())
	}

	p.Nudge(5)
	p.Nudge(5)
	if p.X() != 10 {
		t.Errorf("two nudges of 5 = %v, expected 10", p.X())
	}
}

func TestPointerSetFromColumn(t *testing.T) {
	tests := []struct {
		col, left, width int
		expected         float64
	}{
		{10, 10, 41, 0},
		{50, 10, 41, 100},
		{30, 10, 41, 50},
		{0, 10, 41, 0},    // left of the board clamps
		{99, 10, 41, 100}, // right of the board clamps
	}

	for _, tc := range tests {
		p := NewPointer()
		p.SetFromColumn(tc.col, tc.left, tc.width)
		if p.X() != tc.expected {
			t.Errorf("SetFromColumn(%d, %d, %d) = %v, expected %v", tc.col, tc.left, tc.width, p.X(), tc.expected)
		}
	}
}

func TestPointerSample(t *testing.T) {
	p := NewPointer()
	p.Set(12.5)

	in := p.Sample()
	p.Set(80)

	if in.PointerX != 12.5 {
		t.Errorf("Sample should capture the value at sampling time, got %v", in.PointerX)
	}

	p.Reset()
	if p.X() != 50 {
		t.Errorf("Reset should re-centre, got %v", p.X())
	}
}

func TestActionString(t *testing.T) {
	if ActionConvert.String() != "Convert" {
		t.Errorf("ActionConvert.String() = %q", ActionConvert.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
