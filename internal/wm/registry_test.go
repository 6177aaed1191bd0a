package wm

import (
	"testing"

	"github.com/1broseidon/parentwm/internal/platform"
)

func TestRegistry_AddContainsKeepsOrder(t *testing.T) {
	r := NewRegistry()
	r.Add(3, false)
	r.Add(1, true)
	r.Add(2, false)

	if !r.Contains(1) || !r.Contains(2) || !r.Contains(3) {
		t.Fatalf("expected all windows present, got %v", r.IDs())
	}
	if r.Contains(4) {
		t.Fatal("unexpected window 4")
	}
	ids := r.IDs()
	want := []platform.WindowID{3, 1, 2}
	for i := range want {
		if ids[i] != want[i] {
			t.Fatalf("IDs() = %v, want %v", ids, want)
		}
	}
	if w, ok := r.Get(1); !ok || !w.Floating {
		t.Fatalf("Get(1) = %+v, %v", w, ok)
	}
}

func TestRegistry_AddDoesNotDeduplicate(t *testing.T) {
	r := NewRegistry()
	r.Add(7, false)
	r.Add(7, false)
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistry_Remove(t *testing.T) {
	r := NewRegistry()
	r.Add(1, false)
	r.Add(2, true)
	r.Add(3, false)

	if !r.Remove(2) {
		t.Fatal("Remove(2) = false")
	}
	if r.Remove(2) {
		t.Fatal("second Remove(2) = true")
	}
	if r.Contains(2) {
		t.Fatal("window 2 still present")
	}
	ids := r.IDs()
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 3 {
		t.Fatalf("IDs() = %v, want [1 3]", ids)
	}
}

func TestRegistry_WindowsReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Add(1, false)
	snap := r.Windows()
	snap[0].Floating = true
	if w, _ := r.Get(1); w.Floating {
		t.Fatal("mutating snapshot changed registry")
	}
}
