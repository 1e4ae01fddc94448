package handler

import (
	"net/http"

	"github.com/mcoot/doubles-roundrobin/internal/api/request"
	"github.com/mcoot/doubles-roundrobin/internal/api/response"
	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// TournamentHandler handles tournament settings endpoints
type TournamentHandler struct {
	controller *tournament.Controller
}

// NewTournamentHandler creates a new tournament handler
func NewTournamentHandler(controller *tournament.Controller) *TournamentHandler {
	return &TournamentHandler{controller: controller}
}

// Create handles POST /api/v1/tournaments
func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateTournamentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	t, err := h.controller.CreateTournament(r.Context(), tournament.CreateParams{
		Name:       req.Name,
		Courts:     req.Courts,
		Mode:       model.Mode(req.Mode),
		MaxPlayers: req.MaxPlayers,
		NumRounds:  req.NumRounds,
		Started:    req.Started,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.TournamentFromModel(t))
}

// Get handles GET /api/v1/tournaments/{code}
func (h *TournamentHandler) Get(w http.ResponseWriter, r *http.Request) {
	t, err := h.controller.GetTournament(r.Context(), codeFrom(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Update handles PATCH /api/v1/tournaments/{code}
func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateTournamentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	update := tournament.SettingsUpdate{
		Name:       req.Name,
		Courts:     req.Courts,
		MaxPlayers: req.MaxPlayers,
		NumRounds:  req.NumRounds,
	}
	if req.Mode != nil {
		mode := model.Mode(*req.Mode)
		update.Mode = &mode
	}

	t, err := h.controller.UpdateSettings(r.Context(), codeFrom(r), update)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.TournamentFromModel(t))
}

// Delete handles DELETE /api/v1/tournaments/{code}
func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.controller.DeleteTournament(r.Context(), codeFrom(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}
