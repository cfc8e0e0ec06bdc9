package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Fatal("new frame has a jump")
	}

	f.Set(ActionJump)
	f.Set(ActionJump)
	if !f.Has(ActionJump) || f.Has(ActionPause) {
		t.Errorf("Has(jump, pause) = %v, %v; want true, false", f.Has(ActionJump), f.Has(ActionPause))
	}

	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear kept the jump")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame has a jump")
	}
	zero.Set(ActionRestart)
	if !zero.Has(ActionRestart) {
		t.Error("Set on a zero frame was lost")
	}
}
