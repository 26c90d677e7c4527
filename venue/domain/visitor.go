package domain

import "time"

// Affiliation identifica o grupo admitido no bar.
//
// AffiliationNone é o valor zero e significa "ninguém dentro".
type Affiliation int

const (
	AffiliationNone Affiliation = iota
	AffiliationHome
	AffiliationAway
)

// AffiliationOf converte o flag do torcedor em Affiliation.
func AffiliationOf(home bool) Affiliation {
	if home {
		return AffiliationHome
	}
	return AffiliationAway
}

func (a Affiliation) String() string {
	switch a {
	case AffiliationHome:
		return "home"
	case AffiliationAway:
		return "away"
	default:
		return "none"
	}
}

// Visitor é o descritor de um torcedor: grupo + tempo de permanência.
// Produzido fora do núcleo e imutável depois de criado.
type Visitor struct {
	ID    string
	Home  bool
	Dwell time.Duration
}

func (v Visitor) Affiliation() Affiliation { return AffiliationOf(v.Home) }
