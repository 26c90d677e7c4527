package application

import (
	"sync"
	"testing"
	"time"

	"stadium-bar/venue/domain"
	"stadium-bar/venue/infra"
)

// eventLog grava os eventos recebidos pelo bar.
type eventLog struct {
	mu     sync.Mutex
	events []domain.Event
}

func (l *eventLog) record(ev domain.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []domain.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]domain.Event(nil), l.events...)
}

func (l *eventLog) kinds() []domain.EventKind {
	evs := l.all()
	out := make([]domain.EventKind, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func (l *eventLog) count(kind domain.EventKind) int {
	n := 0
	for _, ev := range l.all() {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func (l *eventLog) waitFor(t *testing.T, kind domain.EventKind, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if l.count(kind) >= n {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timeout waiting for %d %s events, got kinds %v", n, kind, l.kinds())
}

// holdSleeper segura as esperas cujas durações foram marcadas com hold até o
// canal correspondente ser fechado; as demais dormem de verdade.
type holdSleeper struct {
	mu    sync.Mutex
	holds map[time.Duration]chan struct{}
}

func newHoldSleeper() *holdSleeper {
	return &holdSleeper{holds: make(map[time.Duration]chan struct{})}
}

func (h *holdSleeper) hold(d time.Duration) chan struct{} {
	h.mu.Lock()
	defer h.mu.Unlock()
	ch := make(chan struct{})
	h.holds[d] = ch
	return ch
}

func (h *holdSleeper) sleep(d time.Duration) {
	h.mu.Lock()
	ch := h.holds[d]
	h.mu.Unlock()
	if ch != nil {
		<-ch
		return
	}
	time.Sleep(d)
}

func newTestVenue(t *testing.T, capacity int, opts ...VenueOption) (*Venue, *eventLog) {
	t.Helper()
	v, err := NewVenue(capacity, infra.NewSemaphoreGate, opts...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log := &eventLog{}
	v.Subscribe(log.record)
	return v, log
}

func equalKinds(a, b []domain.EventKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func waitDone[T any](t *testing.T, ch chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting %s", what)
	}
	var zero T
	return zero
}
