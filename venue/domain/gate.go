package domain

import "context"

// Gate representa o portão de capacidade finita do bar.
//
// A semântica é: Acquire bloqueia até conseguir uma vaga ou até o ctx encerrar.
// Ao adquirir, retorna uma função de release que deve ser chamada exatamente uma vez.
type Gate interface {
	Acquire(ctx context.Context) (release func(), ok bool)
}
