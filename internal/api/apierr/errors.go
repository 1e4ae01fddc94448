package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeInvalidSettings     = "INVALID_SETTINGS"
	CodeTournamentNotFound  = "TOURNAMENT_NOT_FOUND"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeInvalidPlayerName   = "INVALID_PLAYER_NAME"
	CodeInsufficientPlayers = "INSUFFICIENT_PLAYERS"
	CodeOddPlayerCount      = "ODD_PLAYER_COUNT"
	CodeNotWaitlisted       = "NOT_WAITLISTED"
	CodeWaitlistEmpty       = "WAITLIST_EMPTY"
	CodeDivisionNotFound    = "DIVISION_NOT_FOUND"
	CodeDivisionOverlap     = "DIVISION_OVERLAP"
	CodeInvalidDivision     = "INVALID_DIVISION"
	CodeTeamNotFound        = "TEAM_NOT_FOUND"
	CodeInvalidTeam         = "INVALID_TEAM"
	CodeTeamConflict        = "TEAM_CONFLICT"
	CodeScheduleNotFound    = "SCHEDULE_NOT_FOUND"
	CodeMatchNotFound       = "MATCH_NOT_FOUND"
	CodeInvalidScore        = "INVALID_SCORE"
	CodeTournamentStarted   = "TOURNAMENT_STARTED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status an error would be written with
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Lookups
	case errors.Is(err, model.ErrTournamentNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTournamentNotFound, "Tournament not found"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrDivisionNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeDivisionNotFound, "Division not found"}}
	case errors.Is(err, model.ErrTeamNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeTeamNotFound, "Team not found"}}
	case errors.Is(err, model.ErrScheduleNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeScheduleNotFound, "Schedule has not been generated"}}
	case errors.Is(err, model.ErrMatchNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeMatchNotFound, "Match not found"}}

	// Settings
	case errors.Is(err, model.ErrInvalidMode),
		errors.Is(err, model.ErrInvalidCourts),
		errors.Is(err, model.ErrInvalidCapacity),
		errors.Is(err, model.ErrInvalidRounds):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidSettings, err.Error()}}
	case errors.Is(err, model.ErrInvalidPlayerName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlayerName, "Player name is required"}}
	case errors.Is(err, model.ErrInvalidScore):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidScore, "Scores must be non-negative integers"}}

	// Roster and waitlist
	case errors.Is(err, model.ErrTournamentStarted):
		return &httpError{http.StatusConflict, APIError{CodeTournamentStarted, "Tournament has started"}}
	case errors.Is(err, model.ErrInsufficientPlayers):
		return &httpError{http.StatusConflict, APIError{CodeInsufficientPlayers, err.Error()}}
	case errors.Is(err, model.ErrOddPlayerCount):
		return &httpError{http.StatusConflict, APIError{CodeOddPlayerCount, err.Error()}}
	case errors.Is(err, model.ErrNotWaitlisted):
		return &httpError{http.StatusConflict, APIError{CodeNotWaitlisted, "Player is not on the waitlist"}}
	case errors.Is(err, model.ErrWaitlistEmpty):
		return &httpError{http.StatusConflict, APIError{CodeWaitlistEmpty, "No players on waitlist"}}

	// Divisions and teams
	case errors.Is(err, model.ErrDivisionOverlap):
		return &httpError{http.StatusConflict, APIError{CodeDivisionOverlap, "Division courts overlap another division"}}
	case errors.Is(err, model.ErrInvalidCourtRange),
		errors.Is(err, model.ErrInvalidDivision):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidDivision, err.Error()}}
	case errors.Is(err, model.ErrInvalidTeam):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidTeam, "A team needs two distinct players"}}
	case errors.Is(err, model.ErrTeamConflict):
		return &httpError{http.StatusConflict, APIError{CodeTeamConflict, "Player is already on a team"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}
