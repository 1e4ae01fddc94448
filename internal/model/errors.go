package model

import "errors"

// Common errors used across the application
var (
	// Tournament errors
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrInvalidMode        = errors.New("invalid pairing mode")
	ErrInvalidCourts      = errors.New("court count must be at least 1")
	ErrInvalidCapacity    = errors.New("max players out of range")
	ErrInvalidRounds      = errors.New("round count cannot be negative")
	ErrTournamentStarted  = errors.New("tournament has started")

	// Roster errors
	ErrPlayerNotFound      = errors.New("player not found")
	ErrInvalidPlayerName   = errors.New("player name is required")
	ErrInsufficientPlayers = errors.New("need at least 4 active players")
	ErrOddPlayerCount      = errors.New("fixed partners mode requires an even number of players")

	// Waitlist errors
	ErrNotWaitlisted   = errors.New("player is not on the waitlist")
	ErrWaitlistEmpty   = errors.New("no players on waitlist")
	ErrWaitlistCorrupt = errors.New("waitlist positions are not contiguous")

	// Division errors
	ErrDivisionNotFound  = errors.New("division not found")
	ErrDivisionOverlap   = errors.New("division courts overlap another division")
	ErrInvalidCourtRange = errors.New("invalid division court range")
	ErrInvalidDivision   = errors.New("division name is required")

	// Team errors
	ErrTeamNotFound = errors.New("team not found")
	ErrInvalidTeam  = errors.New("a team needs two distinct players")
	ErrTeamConflict = errors.New("player is already on a team")

	// Schedule errors
	ErrScheduleNotFound = errors.New("schedule not found")
	ErrMatchNotFound    = errors.New("match not found")
	ErrInvalidScore     = errors.New("scores must be non-negative integers")
)
