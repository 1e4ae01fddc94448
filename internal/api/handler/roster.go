package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/doubles-roundrobin/internal/api/apierr"
	"github.com/mcoot/doubles-roundrobin/internal/api/request"
	"github.com/mcoot/doubles-roundrobin/internal/api/response"
	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// RosterHandler handles player signup and waitlist endpoints
type RosterHandler struct {
	controller *tournament.Controller
}

// NewRosterHandler creates a new roster handler
func NewRosterHandler(controller *tournament.Controller) *RosterHandler {
	return &RosterHandler{controller: controller}
}

// List handles GET /api/v1/tournaments/{code}/players
func (h *RosterHandler) List(w http.ResponseWriter, r *http.Request) {
	code := codeFrom(r)

	t, err := h.controller.GetTournament(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}
	players, err := h.controller.GetRoster(r.Context(), code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RosterFromModel(t, players))
}

// Add handles POST /api/v1/tournaments/{code}/players
func (h *RosterHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.AddPlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}

	player, err := h.controller.AddPlayer(r.Context(), codeFrom(r), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Update handles PATCH /api/v1/tournaments/{code}/players/{id}
func (h *RosterHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdatePlayerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == nil && req.DivisionID == nil && req.IsPlaying == nil {
		WriteError(w, apierr.NewInvalidRequestError("Nothing to update"))
		return
	}

	change, err := h.controller.UpdatePlayer(r.Context(), codeFrom(r), model.PlayerID(mux.Vars(r)["id"]), tournament.PlayerUpdate{
		Name:       req.Name,
		DivisionID: req.DivisionID,
		IsPlaying:  req.IsPlaying,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerChangeFromModel(change.Player, change.Promoted))
}

// Assign handles POST /api/v1/tournaments/{code}/players/assign
func (h *RosterHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var req request.AssignDivisionsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	assignments := make([]tournament.Assignment, len(req.Assignments))
	for i, a := range req.Assignments {
		assignments[i] = tournament.Assignment{PlayerID: model.PlayerID(a.PlayerID), DivisionID: a.DivisionID}
	}

	n, err := h.controller.AssignDivisions(r.Context(), codeFrom(r), assignments)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.Assigned{Assigned: n})
}

// Remove handles DELETE /api/v1/tournaments/{code}/players/{id}
func (h *RosterHandler) Remove(w http.ResponseWriter, r *http.Request) {
	change, err := h.controller.RemovePlayer(r.Context(), codeFrom(r), model.PlayerID(mux.Vars(r)["id"]))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerChangeFromModel(nil, change.Promoted))
}

// Approve handles POST /api/v1/tournaments/{code}/waitlist
func (h *RosterHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req request.ApproveRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.All == (req.PlayerID != "") {
		WriteError(w, apierr.NewInvalidRequestError("Specify either player_id or all"))
		return
	}

	code := codeFrom(r)
	if req.All {
		n, err := h.controller.ApproveAll(r.Context(), code)
		if err != nil {
			WriteError(w, err)
			return
		}
		response.JSON(w, http.StatusOK, response.Approved{Approved: n})
		return
	}

	player, err := h.controller.ApproveWaitlisted(r.Context(), code, model.PlayerID(req.PlayerID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
