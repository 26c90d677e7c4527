package infra

import (
	"context"
	"fmt"
	"strings"

	"stadium-bar/venue/domain"
)

const (
	GateSemaphore = "semaphore"
	GateChan      = "chan"
)

// tokenGate guarda uma ficha por vaga: entrar retira uma ficha, sair devolve.
type tokenGate struct {
	tokens chan struct{}
}

// NewChanGate cria um portão de `max` vagas baseado em channel pré-carregado.
func NewChanGate(max int) domain.Gate {
	tokens := make(chan struct{}, max)
	for i := 0; i < max; i++ {
		tokens <- struct{}{}
	}
	return &tokenGate{tokens: tokens}
}

func (g *tokenGate) Acquire(ctx context.Context) (func(), bool) {
	if ctx.Err() != nil {
		return nil, false
	}
	select {
	case <-g.tokens:
	case <-ctx.Done():
		return nil, false
	}
	return func() { g.tokens <- struct{}{} }, true
}

// GateConstructor devolve o construtor de portão pelo nome (GateSemaphore ou GateChan).
func GateConstructor(kind string) (func(int) domain.Gate, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", GateSemaphore:
		return NewSemaphoreGate, nil
	case GateChan:
		return NewChanGate, nil
	default:
		return nil, fmt.Errorf("unknown gate %q (want %s or %s)", kind, GateSemaphore, GateChan)
	}
}
