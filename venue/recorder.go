package venue

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"stadium-bar/venue/domain"
)

// AsyncRecorder desacopla o bar de um StatsStore lento (ex.: Redis).
//
// O assinante só enfileira o evento; se o buffer estiver cheio o evento é
// descartado e contado, para nunca segurar o lock do bar. Run grava os eventos
// em ordem até Close.
type AsyncRecorder struct {
	store   domain.StatsStore
	logger  *slog.Logger
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	events chan domain.Event

	dropped atomic.Int64
	failed  atomic.Int64
}

type RecorderOption func(*AsyncRecorder)

func WithRecordTimeout(d time.Duration) RecorderOption {
	return func(r *AsyncRecorder) { r.timeout = d }
}

func WithRecorderLogger(logger *slog.Logger) RecorderOption {
	return func(r *AsyncRecorder) { r.logger = logger }
}

func NewAsyncRecorder(store domain.StatsStore, buffer int, opts ...RecorderOption) *AsyncRecorder {
	if buffer <= 0 {
		buffer = 1
	}
	r := &AsyncRecorder{
		store:   store,
		logger:  slog.Default(),
		timeout: 2 * time.Second,
		events:  make(chan domain.Event, buffer),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscriber devolve o assinante a registrar no bar.
func (r *AsyncRecorder) Subscriber() domain.Subscriber { return r.offer }

func (r *AsyncRecorder) offer(ev domain.Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		r.dropped.Add(1)
		return
	}
	select {
	case r.events <- ev:
	default:
		r.dropped.Add(1)
	}
}

// Run grava os eventos enfileirados até Close ser chamado e o buffer esvaziar.
// Falhas do store são best-effort: contadas e logadas, nunca interrompem o loop.
func (r *AsyncRecorder) Run(ctx context.Context) error {
	for ev := range r.events {
		recCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)
		err := r.store.Record(recCtx, ev)
		cancel()
		if err != nil {
			r.failed.Add(1)
			r.logger.Warn("stats record failed", "event", ev.Kind.String(), "err", err)
		}
	}
	return nil
}

// Close para de aceitar eventos. Pode ser chamado mais de uma vez.
func (r *AsyncRecorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.events)
}

func (r *AsyncRecorder) Dropped() int64 { return r.dropped.Load() }
func (r *AsyncRecorder) Failed() int64  { return r.failed.Load() }
