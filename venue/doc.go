// Package venue fornece os adapters do bar do estádio: assinantes de eventos
// (log estruturado, gravação assíncrona de estatísticas) e o handler HTTP de status.
//
// Visão geral (camadas):
//
//   - domain: contratos e tipos do domínio (sem dependência de net/http)
//   - application: núcleo de admissão, gatilho de fechamento e driver de chegadas
//   - infra: implementações concretas (portões, stats em memória/Redis, gerador de torcedores)
//   - venue (este pacote): ligação dos eventos do bar com slog, StatsStore e HTTP
//
// Fluxo no binário (cmd/stadiumbar):
//
//  1. Cria o bar com capacidade fixa e registra os assinantes
//  2. O driver de chegadas dispara um Enter por torcedor
//  3. O gatilho sorteia periodicamente um fechamento para limpeza
//  4. Cada transição vira um evento, entregue em ordem aos assinantes
//
// Variáveis de ambiente do binário controlam o comportamento,
// como VENUE_CAPACITY, CLOSE_PROBABILITY e CLEANING_DURATION.
package venue
