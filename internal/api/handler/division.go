package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/doubles-roundrobin/internal/api/request"
	"github.com/mcoot/doubles-roundrobin/internal/api/response"
	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// DivisionHandler handles division and fixed-team endpoints
type DivisionHandler struct {
	controller *tournament.Controller
}

// NewDivisionHandler creates a new division handler
func NewDivisionHandler(controller *tournament.Controller) *DivisionHandler {
	return &DivisionHandler{controller: controller}
}

// Add handles POST /api/v1/tournaments/{code}/divisions
func (h *DivisionHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req request.DivisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.controller.AddDivision(r.Context(), codeFrom(r), divisionParams(req))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.DivisionFromModel(*d))
}

// Update handles PATCH /api/v1/tournaments/{code}/divisions/{id}
func (h *DivisionHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.DivisionRequest
	if !decodeBody(w, r, &req) {
		return
	}

	d, err := h.controller.UpdateDivision(r.Context(), codeFrom(r), mux.Vars(r)["id"], divisionParams(req))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.DivisionFromModel(*d))
}

// Delete handles DELETE /api/v1/tournaments/{code}/divisions/{id}
func (h *DivisionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeleteDivision(r.Context(), codeFrom(r), mux.Vars(r)["id"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// AddTeam handles POST /api/v1/tournaments/{code}/teams
func (h *DivisionHandler) AddTeam(w http.ResponseWriter, r *http.Request) {
	var req request.AddTeamRequest
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := h.controller.AddTeam(r.Context(), codeFrom(r),
		model.PlayerID(req.Player1), model.PlayerID(req.Player2), req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TeamFromModel(*team))
}

// RemoveTeam handles DELETE /api/v1/tournaments/{code}/teams/{id}
func (h *DivisionHandler) RemoveTeam(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.RemoveTeam(r.Context(), codeFrom(r), mux.Vars(r)["id"]); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

func divisionParams(req request.DivisionRequest) tournament.DivisionParams {
	return tournament.DivisionParams{
		Name:       req.Name,
		CourtStart: req.CourtStart,
		CourtEnd:   req.CourtEnd,
		Color:      req.Color,
	}
}
