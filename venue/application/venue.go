package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"stadium-bar/venue/domain"
)

const (
	msgClosedForCleaning = "Bar is closed for cleaning"
	msgOpposingInside    = "Opposing team fans already inside"
	msgClosing           = "Bar is closing for cleaning"
	msgClosed            = "Bar closed, cleaning started"
	msgReopened          = "Bar reopened after cleaning"
)

// Venue é o núcleo de admissão do bar.
//
// Dois primitivos independentes: o Gate limita a capacidade e o mu protege o
// estado (status, ocupação e grupo admitido). Todo evento é emitido com mu
// segurado, na mesma ordem das mutações.
type Venue struct {
	gate     domain.Gate
	capacity int
	sleep    func(time.Duration)
	now      func() time.Time

	mu          sync.Mutex
	drained     *sync.Cond
	status      domain.Status
	occupancy   int
	affiliation domain.Affiliation
	subscribers []domain.Subscriber

	// serializa ciclos de fechamento concorrentes.
	closing sync.Mutex
}

type VenueOption func(*Venue)

// WithSleeper troca a espera usada para permanência e limpeza (padrão time.Sleep).
func WithSleeper(sleep func(time.Duration)) VenueOption {
	return func(v *Venue) {
		if sleep != nil {
			v.sleep = sleep
		}
	}
}

func WithClock(now func() time.Time) VenueOption {
	return func(v *Venue) { v.now = now }
}

// NewVenue cria um bar aberto, vazio e sem grupo admitido.
// newGate recebe a capacidade e devolve o portão (ex.: infra.NewSemaphoreGate).
func NewVenue(capacity int, newGate func(int) domain.Gate, opts ...VenueOption) (*Venue, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("new venue (capacity=%d): %w", capacity, domain.ErrInvalidCapacity)
	}

	v := &Venue{
		capacity:    capacity,
		sleep:       time.Sleep,
		now:         time.Now,
		status:      domain.StatusOpen,
		affiliation: domain.AffiliationNone,
	}
	v.drained = sync.NewCond(&v.mu)
	if newGate == nil {
		return nil, errors.New("new venue: gate constructor is required")
	}
	v.gate = newGate(capacity)
	for _, opt := range opts {
		opt(v)
	}
	return v, nil
}

func (v *Venue) Capacity() int { return v.capacity }

// Subscribe registra um observador. Observadores são chamados na ordem de registro.
func (v *Venue) Subscribe(sub domain.Subscriber) {
	if sub == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.subscribers = append(v.subscribers, sub)
}

func (v *Venue) Snapshot() domain.Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

// Enter tenta admitir o torcedor e só retorna depois que ele saiu ou foi negado.
//
// O ctx só é observado na aquisição do portão; depois disso a permanência e a
// saída sempre completam. A vaga do portão é devolvida em qualquer caminho.
func (v *Venue) Enter(ctx context.Context, visitor domain.Visitor) domain.Outcome {
	release, ok := v.gate.Acquire(ctx)
	if !ok {
		return domain.OutcomeCanceled
	}
	defer release()

	outcome := v.admit(visitor)
	if !outcome.Admitted() {
		return outcome
	}
	defer v.leave(visitor.ID)

	v.sleep(visitor.Dwell)
	return outcome
}

func (v *Venue) admit(visitor domain.Visitor) domain.Outcome {
	v.mu.Lock()
	defer v.mu.Unlock()

	// Entrada negada se:
	// -> bar fechado para limpeza
	// -> torcedores do outro time já estão dentro
	if v.status == domain.StatusClosedForCleaning {
		v.emitLocked(domain.EntryDenied, visitor.ID, msgClosedForCleaning)
		return domain.OutcomeDeniedClosed
	}

	aff := visitor.Affiliation()
	if v.affiliation != domain.AffiliationNone && v.affiliation != aff {
		v.emitLocked(domain.EntryDenied, visitor.ID, msgOpposingInside)
		return domain.OutcomeDeniedOpposing
	}

	if v.affiliation == domain.AffiliationNone {
		v.affiliation = aff
	}
	v.occupancy++
	v.emitLocked(domain.FanEntered, visitor.ID, fmt.Sprintf("Fan entered (%d/%d)", v.occupancy, v.capacity))
	return domain.OutcomeAdmitted
}

func (v *Venue) leave(visitorID string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.occupancy--
	if v.occupancy == 0 {
		v.affiliation = domain.AffiliationNone
	}
	v.emitLocked(domain.FanLeft, visitorID, fmt.Sprintf("Fan left (%d/%d)", v.occupancy, v.capacity))

	if v.occupancy == 0 {
		v.drained.Broadcast()
	}
}

// RequestClosure executa um ciclo completo de fechamento:
// fecha na hora para novas entradas, espera o bar esvaziar, limpa e reabre.
// Só retorna depois da reabertura. Chamadas concorrentes são serializadas.
func (v *Venue) RequestClosure(cleaning time.Duration) {
	v.closing.Lock()
	defer v.closing.Unlock()

	v.mu.Lock()
	v.status = domain.StatusClosedForCleaning
	v.emitLocked(domain.BarClosing, "", msgClosing)

	for v.occupancy > 0 {
		v.drained.Wait()
	}
	v.emitLocked(domain.BarClosed, "", msgClosed)
	v.mu.Unlock()

	v.sleep(cleaning)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.status = domain.StatusOpen
	v.emitLocked(domain.BarOpened, "", msgReopened)
}

func (v *Venue) snapshotLocked() domain.Snapshot {
	return domain.Snapshot{
		Status:      v.status,
		Occupancy:   v.occupancy,
		Capacity:    v.capacity,
		Affiliation: v.affiliation,
	}
}

// emitLocked entrega o evento aos assinantes; visitorID vazio para eventos do bar.
func (v *Venue) emitLocked(kind domain.EventKind, visitorID, message string) {
	if len(v.subscribers) == 0 {
		return
	}
	ev := domain.NewEvent(kind, message, v.now())
	ev.VisitorID = visitorID
	ev.Occupancy = v.occupancy
	ev.Capacity = v.capacity
	ev.Affiliation = v.affiliation
	for _, sub := range v.subscribers {
		sub(ev)
	}
}
