// Package domain define contratos e tipos de domínio do bar do estádio.
//
// Este pacote não depende de net/http, de Redis nem de implementações concretas.
// A intenção é permitir testes de unidade puros e desacoplar as regras de admissão
// de detalhes de infraestrutura.
package domain
