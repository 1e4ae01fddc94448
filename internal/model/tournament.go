package model

import "time"

// TournamentCode is a short human-readable identifier for a tournament
type TournamentCode string

// Mode selects how partners are assigned
type Mode string

const (
	ModeRotating Mode = "rotating" // Partners change every round
	ModeFixed    Mode = "fixed"    // Partners are constant for the tournament
)

// Valid returns true for a known mode
func (m Mode) Valid() bool {
	return m == ModeRotating || m == ModeFixed
}

// MaxPlayersLimit is the hard ceiling on a tournament's active capacity
const MaxPlayersLimit = 48

// Division reserves a contiguous court range for a subset of players
type Division struct {
	ID         string
	Name       string
	CourtStart int
	CourtEnd   int
	Color      string
}

// Courts returns the number of courts reserved for the division
func (d Division) Courts() int {
	return d.CourtEnd - d.CourtStart + 1
}

// Overlaps returns true if the two divisions share any court
func (d Division) Overlaps(other Division) bool {
	return d.CourtStart <= other.CourtEnd && d.CourtEnd >= other.CourtStart
}

// RegisteredTeam is a caller-supplied pre-pairing for fixed mode
type RegisteredTeam struct {
	ID      string
	Name    string
	Players Team
}

// Tournament holds the configuration of a round-robin doubles event
type Tournament struct {
	Code       TournamentCode
	Name       string
	Courts     int
	Mode       Mode
	MaxPlayers int
	NumRounds  int // Requested round count, 0 to use the natural schedule length

	Divisions []Division
	Teams     []RegisteredTeam

	ScheduleGenerated bool
	Started           bool // Locks signups and removals once play begins
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// GetDivision returns the division with the given ID, or nil if not found
func (t *Tournament) GetDivision(id string) *Division {
	for i := range t.Divisions {
		if t.Divisions[i].ID == id {
			return &t.Divisions[i]
		}
	}
	return nil
}

// TeamOf returns the registered team containing the player, or nil
func (t *Tournament) TeamOf(id PlayerID) *RegisteredTeam {
	for i := range t.Teams {
		if t.Teams[i].Players.Has(id) {
			return &t.Teams[i]
		}
	}
	return nil
}

// Clone returns a deep copy of the tournament
func (t *Tournament) Clone() *Tournament {
	out := *t
	out.Divisions = append([]Division(nil), t.Divisions...)
	out.Teams = append([]RegisteredTeam(nil), t.Teams...)
	return &out
}
