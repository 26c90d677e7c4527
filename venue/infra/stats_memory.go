package infra

import (
	"context"
	"sync"

	"stadium-bar/venue/domain"
)

type Counters struct {
	Entered  int64 `json:"entered"`
	Left     int64 `json:"left"`
	Denied   int64 `json:"denied"`
	Closures int64 `json:"closures"`
	Reopened int64 `json:"reopened"`
}

// MemoryStatsStore é uma implementação simples em memória.
// Útil para testes, desenvolvimento e para o endpoint de status.
//
// Não faz expiração.
type MemoryStatsStore struct {
	mu       sync.Mutex
	total    Counters
	byReason map[string]int64
	peak     int
	last     int
}

func NewMemoryStatsStore() *MemoryStatsStore {
	return &MemoryStatsStore{byReason: make(map[string]int64)}
}

func (s *MemoryStatsStore) Record(_ context.Context, ev domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Kind {
	case domain.FanEntered:
		s.total.Entered++
	case domain.FanLeft:
		s.total.Left++
	case domain.EntryDenied:
		s.total.Denied++
		s.byReason[ev.Message]++
	case domain.BarClosing:
		s.total.Closures++
	case domain.BarOpened:
		s.total.Reopened++
	}

	s.last = ev.Occupancy
	if ev.Occupancy > s.peak {
		s.peak = ev.Occupancy
	}
	return nil
}

func (s *MemoryStatsStore) Total() Counters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// DeniedByReason devolve uma cópia das negações agrupadas pela mensagem do evento.
func (s *MemoryStatsStore) DeniedByReason() map[string]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int64, len(s.byReason))
	for k, v := range s.byReason {
		out[k] = v
	}
	return out
}

// PeakOccupancy é a maior ocupação observada nos eventos recebidos.
func (s *MemoryStatsStore) PeakOccupancy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.peak
}

func (s *MemoryStatsStore) LastOccupancy() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
