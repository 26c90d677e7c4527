package domain

import "context"

// StatsStore é a estratégia de persistência para estatísticas dos eventos do bar.
//
// Implementações podem armazenar em Redis, memória, etc.
// Quem chama deve tratar erro como best-effort (não derrubar o bar).
type StatsStore interface {
	Record(ctx context.Context, ev Event) error
}
