package core

import "testing"

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Fatal("new frame should be empty")
	}

	f.Set(ActionUp)
	f.Set(ActionPause)
	f.Set(ActionLeft)
	f.Set(ActionUp) // already set, keeps its first position

	if got, ok := f.Last(ActionUp, ActionDown, ActionLeft, ActionRight); !ok || got != ActionLeft {
		t.Errorf("Last() = %v, %v; expected Left", got, ok)
	}
	if _, ok := f.Last(ActionConfirm); ok {
		t.Error("Last() should not find an unset action")
	}

	clone := f.Clone()
	f.Clear()
	if !f.Empty() || f.Has(ActionUp) {
		t.Error("Clear should drop every action")
	}
	if !clone.Has(ActionUp) || len(clone.Order) != 3 {
		t.Errorf("clone should be independent, got %+v", clone)
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:  "None",
		ActionLeft:  "Left",
		ActionRight: "Right",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("%d.String() = %q, expected %q", a, a.String(), want)
		}
	}
}
