package domain

import "time"

type EventKind int

const (
	FanEntered EventKind = iota
	FanLeft
	EntryDenied
	BarClosing
	BarClosed
	BarOpened
)

func (k EventKind) String() string {
	switch k {
	case FanEntered:
		return "FanEntered"
	case FanLeft:
		return "FanLeft"
	case EntryDenied:
		return "EntryDenied"
	case BarClosing:
		return "BarClosing"
	case BarClosed:
		return "BarClosed"
	case BarOpened:
		return "BarOpened"
	default:
		return "Unknown"
	}
}

// UnknownMessage substitui mensagens vazias antes da entrega.
const UnknownMessage = "Unknown"

// Event descreve uma transição de estado já efetivada.
//
// Occupancy/Capacity/Affiliation refletem o estado logo após a transição.
// VisitorID só é preenchido em FanEntered, FanLeft e EntryDenied.
type Event struct {
	Kind        EventKind
	Message     string
	VisitorID   string
	Occupancy   int
	Capacity    int
	Affiliation Affiliation
	At          time.Time
}

// NewEvent monta um Event garantindo mensagem não vazia.
func NewEvent(kind EventKind, message string, at time.Time) Event {
	if message == "" {
		message = UnknownMessage
	}
	return Event{Kind: kind, Message: message, At: at}
}

// Subscriber recebe eventos de forma síncrona, na ordem de commit.
//
// É chamado com o lock de estado do bar segurado: não deve bloquear por muito
// tempo nem chamar de volta o bar.
type Subscriber func(Event)
