package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"stadium-bar/venue/domain"

	"golang.org/x/time/rate"
)

type Enterer interface {
	Enter(ctx context.Context, visitor domain.Visitor) domain.Outcome
}

// VisitorSource entrega o próximo torcedor; pode bloquear simulando o intervalo
// entre chegadas.
type VisitorSource interface {
	Next(ctx context.Context) (domain.Visitor, error)
}

type ArrivalCounters struct {
	Admitted int64
	Denied   int64
	Canceled int64
}

// ArrivalDriver alimenta o bar: para cada torcedor dispara uma goroutine que
// chama Enter sem esperar o resultado.
type ArrivalDriver struct {
	venue   Enterer
	source  VisitorSource
	limiter *rate.Limiter

	wg       sync.WaitGroup
	admitted atomic.Int64
	denied   atomic.Int64
	canceled atomic.Int64
}

type ArrivalOption func(*ArrivalDriver)

// WithArrivalEvery limita o ritmo de disparos a um a cada d. d <= 0 remove o limite.
func WithArrivalEvery(d time.Duration) ArrivalOption {
	return func(a *ArrivalDriver) {
		if d <= 0 {
			a.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		a.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

func NewArrivalDriver(venue Enterer, source VisitorSource, opts ...ArrivalOption) *ArrivalDriver {
	a := &ArrivalDriver{
		venue:   venue,
		source:  source,
		limiter: rate.NewLimiter(rate.Every(200*time.Millisecond), 1),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run dispara torcedores até o ctx encerrar ou a fonte falhar.
// Use Wait para aguardar os Enter ainda em andamento.
func (a *ArrivalDriver) Run(ctx context.Context) error {
	for {
		if err := a.pace(ctx); err != nil {
			return err
		}

		v, err := a.source.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("next visitor: %w", err)
		}

		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.count(a.venue.Enter(ctx, v))
		}()
	}
}

// pace espera o próximo disparo liberado pelo limiter.
// Diferente de Limiter.Wait, não falha antes da hora quando o ctx tem deadline.
func (a *ArrivalDriver) pace(ctx context.Context) error {
	r := a.limiter.Reserve()
	if !r.OK() {
		return errors.New("arrival pacing: reservation refused")
	}
	d := r.Delay()
	if d <= 0 {
		return ctx.Err()
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Wait bloqueia até todos os Enter disparados retornarem.
func (a *ArrivalDriver) Wait() { a.wg.Wait() }

func (a *ArrivalDriver) Counters() ArrivalCounters {
	return ArrivalCounters{
		Admitted: a.admitted.Load(),
		Denied:   a.denied.Load(),
		Canceled: a.canceled.Load(),
	}
}

func (a *ArrivalDriver) count(out domain.Outcome) {
	switch out {
	case domain.OutcomeAdmitted:
		a.admitted.Add(1)
	case domain.OutcomeCanceled:
		a.canceled.Add(1)
	default:
		a.denied.Add(1)
	}
}
