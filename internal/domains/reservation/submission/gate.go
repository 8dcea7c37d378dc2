// Package submission guards the hand-off of a validated reservation to the
// external collaborator that actually sends it.
package submission

import (
	"roomform/shared/failure"
	"sync"
)

var ErrInFlight = failure.Conflict("a submission is already in flight")

// Ticket identifies one locked submission. Only the current ticket can unlock
// the gate; a ticket invalidated by Clear is ignored.
type Ticket uint64

// Gate allows at most one submission at a time. The zero value is ready to use.
type Gate struct {
	mu         sync.Mutex
	inFlight   bool
	generation uint64
}

// Lock marks a submission as in flight.
func (g *Gate) Lock() (Ticket, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.inFlight {
		return 0, ErrInFlight
	}

	g.generation++
	g.inFlight = true

	return Ticket(g.generation), nil
}

// Unlock releases the gate held by ticket. It reports false when the ticket is
// stale, in which case the gate is left as is.
func (g *Gate) Unlock(ticket Ticket) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.inFlight || Ticket(g.generation) != ticket {
		return false
	}

	g.inFlight = false

	return true
}

// Clear drops any in-flight submission and invalidates its ticket.
func (g *Gate) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.generation++
	g.inFlight = false
}

func (g *Gate) InFlight() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	return g.inFlight
}

// CanSubmit reports whether a form whose last validation returned
// validationErr may be submitted now.
func (g *Gate) CanSubmit(validationErr error) bool {
	return validationErr == nil && !g.InFlight()
}
