package infra

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"stadium-bar/venue/domain"

	"github.com/google/uuid"
)

// RandomVisitorSource gera torcedores com grupo e permanência aleatórios,
// esperando um intervalo aleatório entre uma chegada e outra.
type RandomVisitorSource struct {
	mu  sync.Mutex
	rnd *rand.Rand

	arrivalMin, arrivalMax time.Duration
	dwellMin, dwellMax     time.Duration
}

type VisitorSourceOption func(*RandomVisitorSource)

// WithArrivalDelay define o intervalo [min, max) de espera antes de cada chegada.
// max <= min desativa a aleatoriedade (espera sempre min).
func WithArrivalDelay(min, max time.Duration) VisitorSourceOption {
	return func(s *RandomVisitorSource) { s.arrivalMin, s.arrivalMax = min, max }
}

// WithDwell define o intervalo [min, max) do tempo de permanência.
func WithDwell(min, max time.Duration) VisitorSourceOption {
	return func(s *RandomVisitorSource) { s.dwellMin, s.dwellMax = min, max }
}

func WithSeed(seed uint64) VisitorSourceOption {
	return func(s *RandomVisitorSource) { s.rnd = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func NewRandomVisitorSource(opts ...VisitorSourceOption) *RandomVisitorSource {
	s := &RandomVisitorSource{
		rnd:        rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		arrivalMin: 350 * time.Millisecond,
		arrivalMax: 3000 * time.Millisecond,
		dwellMin:   450 * time.Millisecond,
		dwellMax:   1250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Next espera o próximo torcedor chegar. Retorna ctx.Err() se o ctx encerrar antes.
func (s *RandomVisitorSource) Next(ctx context.Context) (domain.Visitor, error) {
	s.mu.Lock()
	delay := s.between(s.arrivalMin, s.arrivalMax)
	v := domain.Visitor{
		ID:    uuid.NewString(),
		Home:  s.rnd.Float64() > 0.5,
		Dwell: s.between(s.dwellMin, s.dwellMax),
	}
	s.mu.Unlock()

	if delay > 0 {
		t := time.NewTimer(delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.Visitor{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return domain.Visitor{}, err
	}
	return v, nil
}

func (s *RandomVisitorSource) between(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(s.rnd.Int64N(int64(max-min)))
}
