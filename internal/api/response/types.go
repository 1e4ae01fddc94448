package response

import (
	"time"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/mcoot/doubles-roundrobin/internal/services/rankings"
	"github.com/mcoot/doubles-roundrobin/internal/services/scheduler"
)

// Division represents a division in API responses
type Division struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CourtStart int    `json:"court_start"`
	CourtEnd   int    `json:"court_end"`
	Color      string `json:"color"`
}

// DivisionFromModel converts a model.Division
func DivisionFromModel(d model.Division) Division {
	return Division{
		ID:         d.ID,
		Name:       d.Name,
		CourtStart: d.CourtStart,
		CourtEnd:   d.CourtEnd,
		Color:      d.Color,
	}
}

// Team represents a registered team
type Team struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Player1 string `json:"player1_id"`
	Player2 string `json:"player2_id"`
}

// TeamFromModel converts a model.RegisteredTeam
func TeamFromModel(t model.RegisteredTeam) Team {
	return Team{
		ID:      t.ID,
		Name:    t.Name,
		Player1: string(t.Players[0]),
		Player2: string(t.Players[1]),
	}
}

// Tournament represents a tournament's settings
type Tournament struct {
	Code              string     `json:"code"`
	Name              string     `json:"name"`
	Courts            int        `json:"courts"`
	Mode              string     `json:"mode"`
	MaxPlayers        int        `json:"max_players"`
	NumRounds         int        `json:"num_rounds"`
	Divisions         []Division `json:"divisions"`
	Teams             []Team     `json:"teams"`
	ScheduleGenerated bool       `json:"schedule_generated"`
	Started           bool       `json:"started"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// TournamentFromModel converts a model.Tournament
func TournamentFromModel(t *model.Tournament) Tournament {
	divisions := make([]Division, len(t.Divisions))
	for i, d := range t.Divisions {
		divisions[i] = DivisionFromModel(d)
	}
	teams := make([]Team, len(t.Teams))
	for i, tm := range t.Teams {
		teams[i] = TeamFromModel(tm)
	}

	return Tournament{
		Code:              string(t.Code),
		Name:              t.Name,
		Courts:            t.Courts,
		Mode:              string(t.Mode),
		MaxPlayers:        t.MaxPlayers,
		NumRounds:         t.NumRounds,
		Divisions:         divisions,
		Teams:             teams,
		ScheduleGenerated: t.ScheduleGenerated,
		Started:           t.Started,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// Player represents a roster entry
type Player struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	IsPlaying        bool      `json:"is_playing"`
	WaitlistPosition int       `json:"waitlist_position,omitempty"`
	DivisionID       string    `json:"division_id,omitempty"`
	OrderNum         int       `json:"order_num"`
	CreatedAt        time.Time `json:"created_at"`
}

// PlayerFromModel converts a model.Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:               string(p.ID),
		Name:             p.Name,
		IsPlaying:        p.IsPlaying,
		WaitlistPosition: p.WaitlistPosition,
		DivisionID:       p.DivisionID,
		OrderNum:         p.OrderNum,
		CreatedAt:        p.CreatedAt,
	}
}

// Roster is the response for the player list
type Roster struct {
	Players    []Player `json:"players"`
	Active     int      `json:"active"`
	Waitlisted int      `json:"waitlisted"`
	MaxPlayers int      `json:"max_players"`
}

// RosterFromModel builds a Roster from the tournament's players
func RosterFromModel(t *model.Tournament, players []*model.Player) Roster {
	r := Roster{Players: make([]Player, len(players)), MaxPlayers: t.MaxPlayers}
	for i, p := range players {
		r.Players[i] = PlayerFromModel(p)
		switch {
		case p.IsWaitlisted():
			r.Waitlisted++
		case p.IsPlaying:
			r.Active++
		}
	}
	return r
}

// PlayerChange is the response for roster mutations that may promote a
// waitlisted player
type PlayerChange struct {
	Player   *Player `json:"player,omitempty"`
	Promoted *Player `json:"promoted,omitempty"`
}

// PlayerChangeFromModel converts a pair of affected players
func PlayerChangeFromModel(player, promoted *model.Player) PlayerChange {
	var out PlayerChange
	if player != nil {
		p := PlayerFromModel(player)
		out.Player = &p
	}
	if promoted != nil {
		p := PlayerFromModel(promoted)
		out.Promoted = &p
	}
	return out
}

// Approved is the response for a bulk waitlist approval
type Approved struct {
	Approved int `json:"approved"`
}

// Assigned is the response for a batch of division assignments
type Assigned struct {
	Assigned int `json:"assigned"`
}

// Match is one court assignment
type Match struct {
	ID         string    `json:"id"`
	Court      int       `json:"court"`
	Team1      [2]string `json:"team1"`
	Team2      [2]string `json:"team2"`
	DivisionID string    `json:"division_id,omitempty"`
	Team1Score *int      `json:"team1_score"`
	Team2Score *int      `json:"team2_score"`
	Completed  bool      `json:"completed"`
}

// MatchFromModel converts a model.Match
func MatchFromModel(m model.Match) Match {
	out := Match{
		ID:         m.ID,
		Court:      m.Court,
		Team1:      [2]string{string(m.Team1[0]), string(m.Team1[1])},
		Team2:      [2]string{string(m.Team2[0]), string(m.Team2[1])},
		DivisionID: m.DivisionID,
		Completed:  m.Completed,
	}
	if m.Score != nil {
		t1, t2 := m.Score.Team1, m.Score.Team2
		out.Team1Score, out.Team2Score = &t1, &t2
	}
	return out
}

// Round is one time slot of matches
type Round struct {
	Number  int      `json:"number"`
	Matches []Match  `json:"matches"`
	Sitting []string `json:"sitting"`
}

// Schedule is a generated tournament schedule
type Schedule struct {
	TournamentCode string    `json:"tournament_code"`
	Mode           string    `json:"mode"`
	Rounds         []Round   `json:"rounds"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ScheduleFromModel converts a model.Schedule
func ScheduleFromModel(s *model.Schedule) Schedule {
	out := Schedule{
		TournamentCode: string(s.TournamentCode),
		Mode:           string(s.Mode),
		Rounds:         make([]Round, len(s.Rounds)),
		GeneratedAt:    s.GeneratedAt,
	}
	for i, r := range s.Rounds {
		round := Round{
			Number:  r.Number,
			Matches: make([]Match, len(r.Matches)),
			Sitting: make([]string, len(r.Sitting)),
		}
		for j, m := range r.Matches {
			round.Matches[j] = MatchFromModel(m)
		}
		for j, id := range r.Sitting {
			round.Sitting[j] = string(id)
		}
		out.Rounds[i] = round
	}
	return out
}

// Estimate is a suggested round count
type Estimate struct {
	Rounds      int    `json:"rounds"`
	MinRounds   int    `json:"min_rounds"`
	Description string `json:"description"`
}

// EstimateFromModel converts a scheduler.Estimate
func EstimateFromModel(e scheduler.Estimate) Estimate {
	return Estimate{
		Rounds:      e.Rounds,
		MinRounds:   e.MinRounds,
		Description: e.Description,
	}
}

// Standing is one row of the rankings table
type Standing struct {
	PlayerID          string `json:"player_id"`
	Name              string `json:"name"`
	Wins              int    `json:"wins"`
	Losses            int    `json:"losses"`
	PointsFor         int    `json:"points_for"`
	PointsAgainst     int    `json:"points_against"`
	PointDifferential int    `json:"point_differential"`
	GamesPlayed       int    `json:"games_played"`
	DivisionID        string `json:"division_id,omitempty"`
	DivisionName      string `json:"division_name,omitempty"`
}

// Rankings is the response for the rankings table
type Rankings struct {
	Rankings []Standing `json:"rankings"`
}

// RankingsFromModel converts computed standings
func RankingsFromModel(standings []rankings.Standing) Rankings {
	out := Rankings{Rankings: make([]Standing, len(standings))}
	for i, s := range standings {
		out.Rankings[i] = Standing{
			PlayerID:          string(s.PlayerID),
			Name:              s.Name,
			Wins:              s.Wins,
			Losses:            s.Losses,
			PointsFor:         s.PointsFor,
			PointsAgainst:     s.PointsAgainst,
			PointDifferential: s.Differential(),
			GamesPlayed:       s.GamesPlayed,
			DivisionID:        s.DivisionID,
			DivisionName:      s.DivisionName,
		}
	}
	return out
}
