package core

import "testing"

func TestKeyLatchFiresOnRelease(t *testing.T) {
	var l KeyLatch

	// held, held, released, idle
	inputs := []bool{true, true, false, false}
	expected := []bool{false, false, true, false}

	for i, down := range inputs {
		if got := l.Update(down); got != expected[i] {
			t.Errorf("tick %d: Update(%v) = %v, expected %v", i, down, got, expected[i])
		}
	}
}

func TestKeyLatchNoFireWithoutPress(t *testing.T) {
	var l KeyLatch
	for i := 0; i < 5; i++ {
		if l.Update(false) {
			t.Fatalf("tick %d: latch fired without a press", i)
		}
	}
}

func TestKeyLatchReset(t *testing.T) {
	var l KeyLatch
	l.Update(true)
	if !l.Held() {
		t.Fatal("latch should be held after a press")
	}

	l.Reset()
	if l.Update(false) {
		t.Error("reset latch should not fire")
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Pointer = Pointer{X: 3, Y: 4, Down: true}

	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Error("frame should only hold Left")
	}

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionLeft) {
		t.Error("Clear should drop actions")
	}
	if f.Pointer.Position() != (Point{X: 3, Y: 4}) {
		t.Error("Clear should keep the pointer")
	}
	if !clone.Has(ActionLeft) || !clone.Pointer.Down {
		t.Error("Clone should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionConfirm) {
		t.Error("zero frame should hold nothing")
	}
}

func TestActionString(t *testing.T) {
	if ActionLeft.String() != "Left" || Action(99).String() != "Unknown" {
		t.Error("unexpected action names")
	}
}
