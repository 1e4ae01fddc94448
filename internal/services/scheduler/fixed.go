package scheduler

import "github.com/mcoot/doubles-roundrobin/internal/model"

// Matchup is a pairing of two team indices within a circle-method round
type Matchup [2]int

// Fixed generates a round robin between fixed teams.
//
// When teams is empty, players are paired consecutively into teams. Every
// team meets every other team exactly once. Each circle-method round is
// split into batches of at most min(courts, teams/2) matches, one batch per
// emitted round. The player count must be even and at least 4.
func (s *Service) Fixed(players []model.PlayerID, courts int, teams []model.Team) []model.Round {
	n := len(players)
	if n < 4 || n%2 != 0 {
		return nil
	}
	if len(teams) == 0 {
		teams = ConsecutiveTeams(players)
	}

	maxCourts := min(courts, len(teams)/2)
	if maxCourts <= 0 {
		return nil
	}

	var rounds []model.Round
	for _, meta := range CircleRounds(len(teams)) {
		for start := 0; start < len(meta); start += maxCourts {
			batch := meta[start:min(start+maxCourts, len(meta))]
			rounds = append(rounds, fixedRound(teams, batch, len(rounds)+1))
		}
	}
	return rounds
}

func fixedRound(teams []model.Team, batch []Matchup, number int) model.Round {
	playing := make(map[int]bool, len(batch)*2)
	matches := make([]model.Match, 0, len(batch))
	for i, m := range batch {
		playing[m[0]] = true
		playing[m[1]] = true
		matches = append(matches, model.Match{
			Court: i + 1,
			Team1: teams[m[0]],
			Team2: teams[m[1]],
		})
	}

	var sitting []model.PlayerID
	for i, t := range teams {
		if !playing[i] {
			sitting = append(sitting, t[0], t[1])
		}
	}
	return model.Round{Number: number, Matches: matches, Sitting: sitting}
}

// ConsecutiveTeams pairs players in order: (0,1), (2,3), ...
// A trailing odd player is dropped.
func ConsecutiveTeams(players []model.PlayerID) []model.Team {
	teams := make([]model.Team, 0, len(players)/2)
	for i := 0; i+1 < len(players); i += 2 {
		teams = append(teams, model.Team{players[i], players[i+1]})
	}
	return teams
}

// CircleRounds returns the circle-method round robin over t teams.
//
// For even t, team t-1 is anchored and the rest rotate, giving t-1 rounds of
// t/2 matchups. For odd t, all teams rotate and the team at the head of the
// rotation has a bye, giving t rounds of (t-1)/2 matchups. Each unordered pair
// of teams appears exactly once.
func CircleRounds(t int) [][]Matchup {
	if t < 2 {
		return nil
	}

	if t%2 == 0 {
		rot := make([]int, t-1)
		for i := range rot {
			rot[i] = i
		}
		rounds := make([][]Matchup, 0, t-1)
		for r := 0; r < t-1; r++ {
			round := []Matchup{{t - 1, rot[0]}}
			for i := 1; i <= (t-2)/2; i++ {
				round = append(round, Matchup{rot[i], rot[t-1-i]})
			}
			rounds = append(rounds, round)
			rot = append(rot[1:], rot[0])
		}
		return rounds
	}

	rot := make([]int, t)
	for i := range rot {
		rot[i] = i
	}
	rounds := make([][]Matchup, 0, t)
	for r := 0; r < t; r++ {
		round := make([]Matchup, 0, (t-1)/2)
		for i := 1; i <= (t-1)/2; i++ {
			round = append(round, Matchup{rot[i], rot[t-i]})
		}
		rounds = append(rounds, round)
		rot = append(rot[1:], rot[0])
	}
	return rounds
}
