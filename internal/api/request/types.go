package request

// CreateTournamentRequest is the request body for creating a tournament
type CreateTournamentRequest struct {
	Name       string `json:"name,omitempty"`
	Courts     int    `json:"courts"`
	Mode       string `json:"mode,omitempty"`
	MaxPlayers int    `json:"max_players,omitempty"`
	NumRounds  int    `json:"num_rounds,omitempty"`
}

// UpdateTournamentRequest is the request body for changing tournament settings.
// Omitted fields are left unchanged.
type UpdateTournamentRequest struct {
	Name       *string `json:"name,omitempty"`
	Courts     *int    `json:"courts,omitempty"`
	Mode       *string `json:"mode,omitempty"`
	MaxPlayers *int    `json:"max_players,omitempty"`
	NumRounds  *int    `json:"num_rounds,omitempty"`
	Started    *bool   `json:"started,omitempty"`
}

// AddPlayerRequest is the request body for signing a player up
type AddPlayerRequest struct {
	Name string `json:"name"`
}

// UpdatePlayerRequest is the request body for changing a player's record
type UpdatePlayerRequest struct {
	Name       *string `json:"name,omitempty"`
	IsPlaying  *bool   `json:"is_playing,omitempty"`
	DivisionID *string `json:"division_id,omitempty"`
}

// AssignDivisionsRequest is the request body for a batch of division
// assignments. An empty division_id unassigns the player.
type AssignDivisionsRequest struct {
	Assignments []DivisionAssignment `json:"assignments"`
}

// DivisionAssignment places one player in a division
type DivisionAssignment struct {
	PlayerID   string `json:"player_id"`
	DivisionID string `json:"division_id"`
}

// ApproveRequest is the request body for approving waitlisted players.
// Exactly one of PlayerID and All must be set.
type ApproveRequest struct {
	PlayerID string `json:"player_id,omitempty"`
	All      bool   `json:"all,omitempty"`
}

// DivisionRequest is the request body for creating or updating a division
type DivisionRequest struct {
	Name       string `json:"name"`
	CourtStart int    `json:"court_start"`
	CourtEnd   int    `json:"court_end"`
	Color      string `json:"color,omitempty"`
}

// AddTeamRequest is the request body for registering a fixed team
type AddTeamRequest struct {
	Player1 string `json:"player1_id"`
	Player2 string `json:"player2_id"`
	Name    string `json:"name,omitempty"`
}

// GenerateScheduleRequest is the request body for generating a schedule
type GenerateScheduleRequest struct {
	NumRounds int `json:"num_rounds,omitempty"`
}

// ScoreRequest is the request body for entering a match result.
// Both scores are required.
type ScoreRequest struct {
	Team1Score *int `json:"team1_score"`
	Team2Score *int `json:"team2_score"`
}
