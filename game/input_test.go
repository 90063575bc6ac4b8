package game

import "testing"

func TestScriptInputEdges(t *testing.T) {
	in := NewScriptInput(
		press("A"),
		press("A"),
		InputFrame{},
		InputFrame{Down: true, X: 3, Y: 4, HasPoint: true},
	)

	in.Advance()
	if !in.IsKeyDown("A") || !in.IsKeyPressed("A") || in.IsKeyReleased("A") {
		t.Errorf("frame 1: want A down and pressed")
	}

	in.Advance()
	if !in.IsKeyDown("A") || in.IsKeyPressed("A") {
		t.Errorf("frame 2: held key must not report pressed")
	}

	in.Advance()
	if in.IsKeyDown("A") || !in.IsKeyReleased("A") {
		t.Errorf("frame 3: want A released")
	}

	in.Advance()
	x, y, ok := in.Pointer()
	if !in.PointerDown() || !ok || x != 3 || y != 4 {
		t.Errorf("frame 4 pointer = (%v,%v,%v) down=%v", x, y, ok, in.PointerDown())
	}
	if in.Remaining() != 0 {
		t.Errorf("Remaining = %d", in.Remaining())
	}

	in.Advance()
	if _, _, ok := in.Pointer(); ok || in.PointerDown() || in.IsKeyReleased("A") {
		t.Errorf("exhausted script should be idle")
	}
}
