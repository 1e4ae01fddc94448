package events

import (
	"encoding/json"
	"log/slog"

	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// Broadcaster publishes tournament change events to listening SSE clients.
// It implements tournament.Notifier.
type Broadcaster struct {
	hubManager *HubManager
	logger     *slog.Logger
}

// NewBroadcaster creates a new Broadcaster
func NewBroadcaster(hubManager *HubManager, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hubManager: hubManager,
		logger:     logger.With(slog.String("component", "event-broadcaster")),
	}
}

// payload is the JSON body of every event; clients refetch what changed
type payload struct {
	Code string `json:"code"`
	Type string `json:"type"`
}

// Notify broadcasts e to the tournament's clients. A deleted tournament's
// hub is closed after the final event.
func (b *Broadcaster) Notify(e tournament.Event) {
	hub := b.hubManager.GetHub(e.Code)
	if hub == nil {
		return
	}

	data, err := json.Marshal(payload{Code: string(e.Code), Type: string(e.Type)})
	if err != nil {
		b.logger.Error("failed to encode event", slog.String("error", err.Error()))
		return
	}
	hub.BroadcastEvent(string(e.Type), string(data))

	if e.Type == tournament.EventDeleted {
		b.hubManager.RemoveHub(e.Code)
	}
}
