// Package infra contém implementações concretas (infraestrutura) para os contratos
// definidos no pacote domain.
//
// Exemplos:
//   - SemaphoreGate: portão de capacidade usando golang.org/x/sync/semaphore
//   - ChanGate: semáforo simples baseado em channel
//   - MemoryStatsStore / RedisStatsStore: contadores de eventos do bar
//   - RandomVisitorSource: gerador de torcedores para a simulação
package infra
