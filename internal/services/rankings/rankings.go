// Package rankings tallies entered match scores into a player leaderboard.
package rankings

import (
	"cmp"
	"slices"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// Standing is one player's record across completed matches
type Standing struct {
	PlayerID      model.PlayerID
	Name          string
	Wins          int
	Losses        int
	PointsFor     int
	PointsAgainst int
	GamesPlayed   int
	DivisionID    string
	DivisionName  string
}

// Differential returns points scored minus points conceded
func (s Standing) Differential() int {
	return s.PointsFor - s.PointsAgainst
}

// Compute builds standings for the active players in roster. Only completed
// matches count. A drawn match adds points and a game but no win or loss.
// Standings sort by wins, then differential, then roster order.
func Compute(roster []*model.Player, divisions []model.Division, schedule *model.Schedule) []Standing {
	names := make(map[string]string, len(divisions))
	for _, d := range divisions {
		names[d.ID] = d.Name
	}

	standings := make([]Standing, 0, len(roster))
	index := make(map[model.PlayerID]int, len(roster))
	for _, p := range roster {
		if !p.IsActive() {
			continue
		}
		index[p.ID] = len(standings)
		standings = append(standings, Standing{
			PlayerID:     p.ID,
			Name:         p.Name,
			DivisionID:   p.DivisionID,
			DivisionName: names[p.DivisionID],
		})
	}

	if schedule != nil {
		for _, round := range schedule.Rounds {
			for _, m := range round.Matches {
				if !m.Completed || m.Score == nil {
					continue
				}
				credit(standings, index, m.Team1, m.Score.Team1, m.Score.Team2)
				credit(standings, index, m.Team2, m.Score.Team2, m.Score.Team1)
			}
		}
	}

	slices.SortStableFunc(standings, func(a, b Standing) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(b.Differential(), a.Differential())
	})
	return standings
}

// credit adds one side's result to each listed team member
func credit(standings []Standing, index map[model.PlayerID]int, team model.Team, scored, conceded int) {
	for _, id := range team {
		i, ok := index[id]
		if !ok {
			continue
		}
		s := &standings[i]
		s.GamesPlayed++
		s.PointsFor += scored
		s.PointsAgainst += conceded
		switch {
		case scored > conceded:
			s.Wins++
		case scored < conceded:
			s.Losses++
		}
	}
}
