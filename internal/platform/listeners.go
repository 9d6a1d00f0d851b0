package platform

import (
	"sort"
	"sync"
)

// Listeners is a registry of event callbacks. The zero value is ready to use.
type Listeners struct {
	mu     sync.Mutex
	byKind map[Event]map[int]func()
	nextID int
}

// Add registers fn for event and returns a function removing it. The
// returned function is safe to call more than once.
func (l *Listeners) Add(event Event, fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.byKind == nil {
		l.byKind = make(map[Event]map[int]func())
	}
	if l.byKind[event] == nil {
		l.byKind[event] = make(map[int]func())
	}
	id := l.nextID
	l.nextID++
	l.byKind[event][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() { l.remove(event, id) })
	}
}

func (l *Listeners) remove(event Event, id int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.byKind[event], id)
	if len(l.byKind[event]) == 0 {
		delete(l.byKind, event)
	}
}

// Len returns the number of registered callbacks across all events.
func (l *Listeners) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, fns := range l.byKind {
		n += len(fns)
	}
	return n
}

// Count returns the number of callbacks registered for event.
func (l *Listeners) Count(event Event) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byKind[event])
}

// Emit calls every callback registered for event in registration order.
// Callbacks run without the lock held so they may add or remove listeners.
func (l *Listeners) Emit(event Event) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.byKind[event]))
	for id := range l.byKind[event] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.byKind[event][id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
