package infra

import (
	"context"

	"stadium-bar/venue/domain"

	"golang.org/x/sync/semaphore"
)

type semaphoreGate struct {
	sem *semaphore.Weighted
}

// NewSemaphoreGate cria o portão padrão do bar: um semáforo ponderado com `max`
// permissões, cada torcedor consumindo peso 1.
func NewSemaphoreGate(max int) domain.Gate {
	return &semaphoreGate{sem: semaphore.NewWeighted(int64(max))}
}

func (g *semaphoreGate) Acquire(ctx context.Context) (func(), bool) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, false
	}
	return func() { g.sem.Release(1) }, true
}
