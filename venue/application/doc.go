// Package application contém os casos de uso do bar do estádio: o núcleo de
// admissão (Venue), o gatilho de fechamento para limpeza (ClosureTrigger) e o
// driver de chegadas (ArrivalDriver).
//
// Ele depende apenas do pacote domain e não conhece net/http nem Redis.
// Ex.: Venue.Enter(ctx, visitor) retorna um Outcome (admitido/negado).
package application
