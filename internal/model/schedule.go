package model

import "time"

// Team is two players partnered for a match
type Team [2]PlayerID

// Pair returns the team's canonical partnership pair
func (t Team) Pair() Pair {
	return NewPair(t[0], t[1])
}

// Has returns true if the player is on the team
func (t Team) Has(id PlayerID) bool {
	return t[0] == id || t[1] == id
}

// MatchScore is the final score entered for a match
type MatchScore struct {
	Team1 int
	Team2 int
}

// Match is a single court assignment within a round
type Match struct {
	ID         string // Assigned when the schedule is persisted
	Court      int    // 1-based
	Team1      Team
	Team2      Team
	DivisionID string

	Score     *MatchScore // nil until a score is entered
	Completed bool
}

// Players returns the four players on court
func (m Match) Players() []PlayerID {
	return []PlayerID{m.Team1[0], m.Team1[1], m.Team2[0], m.Team2[1]}
}

// Round is one time slot of concurrent matches
type Round struct {
	Number  int // 1-based
	Matches []Match
	Sitting []PlayerID
}

// Clone returns a deep copy of the round
func (r Round) Clone() Round {
	out := Round{Number: r.Number}
	out.Matches = append([]Match(nil), r.Matches...)
	for i, m := range out.Matches {
		if m.Score != nil {
			score := *m.Score
			out.Matches[i].Score = &score
		}
	}
	out.Sitting = append([]PlayerID(nil), r.Sitting...)
	return out
}

// Schedule is a persisted, generated set of rounds for a tournament
type Schedule struct {
	TournamentCode TournamentCode
	Mode           Mode
	Rounds         []Round
	GeneratedAt    time.Time
}

// Clone returns a deep copy of the schedule
func (s *Schedule) Clone() *Schedule {
	out := *s
	out.Rounds = make([]Round, len(s.Rounds))
	for i, r := range s.Rounds {
		out.Rounds[i] = r.Clone()
	}
	return &out
}

// FindMatch returns the match with the given ID, or nil if not found
func (s *Schedule) FindMatch(id string) *Match {
	for i := range s.Rounds {
		for j := range s.Rounds[i].Matches {
			if s.Rounds[i].Matches[j].ID == id {
				return &s.Rounds[i].Matches[j]
			}
		}
	}
	return nil
}
