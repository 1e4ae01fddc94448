package handler

import (
	"net/http"

	"github.com/mcoot/doubles-roundrobin/internal/events"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// EventsHandler streams tournament changes as server-sent events
type EventsHandler struct {
	controller *tournament.Controller
	hubs       *events.HubManager
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(controller *tournament.Controller, hubs *events.HubManager) *EventsHandler {
	return &EventsHandler{controller: controller, hubs: hubs}
}

// Stream handles GET /api/v1/tournaments/{code}/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.GetTournament(r.Context(), codeFrom(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	h.hubs.Serve(w, r, t.Code)
}
