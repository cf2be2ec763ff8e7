package core

import "testing"

func TestPointAdd(t *testing.T) {
	got := Point{X: 1, Y: 2}.Add(Point{X: -3, Y: 4})
	if got != (Point{X: -2, Y: 6}) {
		t.Errorf("Add = %+v, expected {-2 6}", got)
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 20)

	tests := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},  // Top-left corner (inclusive)
		{29, 29, true},  // Just inside bottom-right
		{30, 30, false}, // Bottom-right corner (exclusive)
		{20, 20, true},  // Center
		{9, 10, false},  // Just left
		{10, 9, false},  // Just above
		{30, 15, false}, // Right edge (exclusive)
		{15, 30, false}, // Bottom edge (exclusive)
	}

	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.expected {
			t.Errorf("Contains(%d, %d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
		}
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(10, 20, 30, 40)

	if r.Right() != 40 {
		t.Errorf("Right() = %d, expected 40", r.Right())
	}
	if r.Bottom() != 60 {
		t.Errorf("Bottom() = %d, expected 60", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tt := range tests {
		if got := Clamp(tt.val, tt.min, tt.max); got != tt.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tt.val, tt.min, tt.max, got, tt.expected)
		}
	}
}

func TestActionNames(t *testing.T) {
	for _, a := range GameplayActions {
		got, ok := ParseAction(a.String())
		if !ok || got != a {
			t.Errorf("ParseAction(%q) = %v, %v", a.String(), got, ok)
		}
	}
	if _, ok := ParseAction("Jump"); ok {
		t.Error("unknown names should not parse")
	}
	if Action(99).String() != "Unknown" {
		t.Error("out of range action should be Unknown")
	}
}

func TestInputFrameOrdered(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionHardDrop)
	f.Set(ActionMoveLeft)
	f.Set(ActionStart)
	f.Set(ActionQuit) // not a gameplay action

	got := f.Ordered()
	want := []Action{ActionStart, ActionMoveLeft, ActionHardDrop}
	if len(got) != len(want) {
		t.Fatalf("Ordered() = %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ordered()[%d] = %v, expected %v", i, got[i], want[i])
		}
	}
}
