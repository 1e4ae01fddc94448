package tournament

import (
	"context"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// EventType names the part of a tournament that changed
type EventType string

const (
	EventTournament EventType = "tournament" // Settings, divisions or teams
	EventRoster     EventType = "roster"     // Signups, waitlist or playing status
	EventSchedule   EventType = "schedule"   // A schedule was generated
	EventScore      EventType = "score"      // A match result was entered
	EventDeleted    EventType = "deleted"
)

// Event is published after a tournament change has been saved
type Event struct {
	Type EventType
	Code model.TournamentCode
}

// Notifier receives tournament change events. Notify must not block.
type Notifier interface {
	Notify(e Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

// SetNotifier registers the receiver for change events
func (c *Controller) SetNotifier(n Notifier) {
	if n == nil {
		n = nopNotifier{}
	}
	c.notifier = n
}

// save writes the tournament record and publishes a change event
func (c *Controller) save(ctx context.Context, t *model.Tournament, kind EventType) error {
	if err := c.storage.SaveTournament(ctx, t); err != nil {
		return err
	}
	c.notifier.Notify(Event{Type: kind, Code: t.Code})
	return nil
}
