package platform

import "testing"

func TestListeners_EmitInRegistrationOrder(t *testing.T) {
	var l Listeners
	var got []int
	l.Add(EventResize, func() { got = append(got, 1) })
	l.Add(EventResize, func() { got = append(got, 2) })
	l.Add(EventMove, func() { got = append(got, 3) })

	l.Emit(EventResize)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("unexpected call order: %v", got)
	}
	if l.Len() != 3 || l.Count(EventResize) != 2 {
		t.Fatalf("Len() = %d, Count(resize) = %d", l.Len(), l.Count(EventResize))
	}
}

func TestListeners_RemoveIsIdempotent(t *testing.T) {
	var l Listeners
	calls := 0
	remove := l.Add(EventClose, func() { calls++ })

	remove()
	remove()
	l.Emit(EventClose)

	if calls != 0 {
		t.Fatalf("expected removed listener not to run, got %d calls", calls)
	}
	if l.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", l.Len())
	}
}

func TestListeners_CallbackMayRemoveListeners(t *testing.T) {
	var l Listeners
	var removeAll []func()
	calls := 0
	for i := 0; i < 3; i++ {
		removeAll = append(removeAll, l.Add(EventClosed, func() {
			calls++
			for _, r := range removeAll {
				r()
			}
		}))
	}

	l.Emit(EventClosed)

	if calls != 3 {
		t.Fatalf("expected snapshot of listeners to run, got %d calls", calls)
	}
	if l.Len() != 0 {
		t.Fatalf("expected listeners removed, got %d", l.Len())
	}
}
