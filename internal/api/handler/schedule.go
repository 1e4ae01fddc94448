package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/doubles-roundrobin/internal/api/apierr"
	"github.com/mcoot/doubles-roundrobin/internal/api/request"
	"github.com/mcoot/doubles-roundrobin/internal/api/response"
	"github.com/mcoot/doubles-roundrobin/internal/services/tournament"
)

// ScheduleHandler handles schedule generation endpoints
type ScheduleHandler struct {
	controller *tournament.Controller
}

// NewScheduleHandler creates a new schedule handler
func NewScheduleHandler(controller *tournament.Controller) *ScheduleHandler {
	return &ScheduleHandler{controller: controller}
}

// Generate handles POST /api/v1/tournaments/{code}/schedule
func (h *ScheduleHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req request.GenerateScheduleRequest
	// Allow empty body to use the stored round count
	if !decodeOptionalBody(w, r, &req) {
		return
	}

	schedule, err := h.controller.GenerateSchedule(r.Context(), codeFrom(r), req.NumRounds)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ScheduleFromModel(schedule))
}

// Get handles GET /api/v1/tournaments/{code}/schedule
func (h *ScheduleHandler) Get(w http.ResponseWriter, r *http.Request) {
	schedule, err := h.controller.GetSchedule(r.Context(), codeFrom(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScheduleFromModel(schedule))
}

// Estimate handles GET /api/v1/tournaments/{code}/schedule/estimate
func (h *ScheduleHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	est, err := h.controller.SuggestRounds(r.Context(), codeFrom(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.EstimateFromModel(est))
}

// Score handles PATCH /api/v1/tournaments/{code}/matches/{id}
func (h *ScheduleHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Team1Score == nil || req.Team2Score == nil {
		WriteError(w, apierr.NewInvalidRequestError("team1_score and team2_score are required"))
		return
	}

	match, err := h.controller.RecordScore(r.Context(), codeFrom(r), mux.Vars(r)["id"], *req.Team1Score, *req.Team2Score)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MatchFromModel(*match))
}

// Rankings handles GET /api/v1/tournaments/{code}/rankings
func (h *ScheduleHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	standings, err := h.controller.Rankings(r.Context(), codeFrom(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RankingsFromModel(standings))
}
