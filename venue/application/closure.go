package application

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"stadium-bar/venue/domain"
)

// Closer é o mínimo que o gatilho precisa do bar.
type Closer interface {
	RequestClosure(cleaning time.Duration)
}

// ClosureTrigger decide periodicamente, com probabilidade p (0..100), fechar o
// bar para limpeza. Cada ciclo de fechamento é aguardado antes do próximo sorteio,
// então fechamentos nunca se sobrepõem.
type ClosureTrigger struct {
	venue       Closer
	probability int
	interval    time.Duration
	cleaning    time.Duration
	roll        func() int

	cycles atomic.Int64
}

type ClosureOption func(*ClosureTrigger)

func WithInterval(d time.Duration) ClosureOption {
	return func(t *ClosureTrigger) { t.interval = d }
}

func WithCleaning(d time.Duration) ClosureOption {
	return func(t *ClosureTrigger) { t.cleaning = d }
}

// WithRoll troca o sorteio; deve devolver um inteiro em [0, 100).
func WithRoll(roll func() int) ClosureOption {
	return func(t *ClosureTrigger) { t.roll = roll }
}

func NewClosureTrigger(venue Closer, probability int, opts ...ClosureOption) (*ClosureTrigger, error) {
	if probability < 0 || probability > 100 {
		return nil, fmt.Errorf("new closure trigger (probability=%d): %w", probability, domain.ErrInvalidProbability)
	}

	t := &ClosureTrigger{
		venue:       venue,
		probability: probability,
		interval:    1500 * time.Millisecond,
		cleaning:    3000 * time.Millisecond,
		roll:        func() int { return rand.IntN(100) },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t, nil
}

// Cycles devolve quantos fechamentos completos o gatilho já executou.
func (t *ClosureTrigger) Cycles() int64 { return t.cycles.Load() }

// Run sorteia a cada intervalo até o ctx encerrar. Um ciclo já iniciado sempre
// termina (o bar reabre) antes de Run observar o cancelamento.
func (t *ClosureTrigger) Run(ctx context.Context) error {
	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}

		if t.roll() < t.probability {
			t.venue.RequestClosure(t.cleaning)
			t.cycles.Add(1)
		}
		timer.Reset(t.interval)
	}
}
