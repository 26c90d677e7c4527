package domain

import "errors"

var (
	ErrInvalidCapacity    = errors.New("capacity must be greater than zero")
	ErrInvalidProbability = errors.New("closing probability must be between 0 and 100")
)

type Status int

const (
	StatusOpen Status = iota
	StatusClosedForCleaning
)

func (s Status) String() string {
	if s == StatusClosedForCleaning {
		return "closed_for_cleaning"
	}
	return "open"
}

// Snapshot é uma leitura consistente do estado do bar (tirada sob o lock).
type Snapshot struct {
	Status      Status
	Occupancy   int
	Capacity    int
	Affiliation Affiliation
}

// Outcome é o resultado de uma tentativa de entrada.
//
// Negar a entrada não é erro: é o comportamento esperado em regime.
type Outcome int

const (
	OutcomeAdmitted Outcome = iota
	OutcomeDeniedClosed
	OutcomeDeniedOpposing
	// OutcomeCanceled: o ctx encerrou antes de conseguir uma vaga no portão.
	OutcomeCanceled
)

func (o Outcome) Admitted() bool { return o == OutcomeAdmitted }

func (o Outcome) String() string {
	switch o {
	case OutcomeAdmitted:
		return "admitted"
	case OutcomeDeniedClosed:
		return "denied_closed"
	case OutcomeDeniedOpposing:
		return "denied_opposing"
	case OutcomeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}
