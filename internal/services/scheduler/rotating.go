package scheduler

import (
	"cmp"
	"slices"

	"github.com/mcoot/doubles-roundrobin/internal/dependencies/random"
	"github.com/mcoot/doubles-roundrobin/internal/model"
)

const (
	// unpartneredBonus strongly favours opponent pairs that have never partnered
	unpartneredBonus = 100
	// opponentPenalty is subtracted per prior encounter with a member of team 1
	opponentPenalty = 2
)

// Rotating generates a schedule where partners change every round.
//
// Each round the players with the fewest games are put on court, and teams
// are chosen greedily to minimise repeated partnerships and repeated
// opponents. Generation stops once every pair has partnered at least once,
// or after ceil(pairs/(courts*2)) + n rounds. Full coverage is best effort.
func (s *Service) Rotating(players []model.PlayerID, courts int) []model.Round {
	n := len(players)
	if n < 4 {
		return nil
	}
	maxCourts := min(courts, n/4)
	if maxCourts <= 0 {
		return nil
	}

	tracker := NewPairTracker(players)
	totalPairs := n * (n - 1) / 2
	maxRounds := ceilDiv(totalPairs, maxCourts*2) + n

	var rounds []model.Round
	for tracker.PartneredPairs() < totalPairs && len(rounds) < maxRounds {
		rounds = append(rounds, s.rotatingRound(players, maxCourts, tracker, len(rounds)+1))
	}
	return rounds
}

func (s *Service) rotatingRound(players []model.PlayerID, maxCourts int, tracker *PairTracker, number int) model.Round {
	ranked := s.rankByGamesPlayed(players, tracker)
	active := ranked[:maxCourts*4]
	sitting := append([]model.PlayerID(nil), ranked[maxCourts*4:]...)

	used := make(map[model.PlayerID]bool, len(active))
	matches := make([]model.Match, 0, maxCourts)

	for court := 1; court <= maxCourts; court++ {
		available := make([]model.PlayerID, 0, len(active))
		for _, p := range active {
			if !used[p] {
				available = append(available, p)
			}
		}
		if len(available) < 4 {
			break
		}
		random.Shuffle(s.random, available)

		team1 := s.pickPartners(available, tracker)
		others := make([]model.PlayerID, 0, len(available)-2)
		for _, p := range available {
			if !team1.Has(p) {
				others = append(others, p)
			}
		}
		team2 := s.pickOpponents(others, team1, tracker)

		matches = append(matches, model.Match{Court: court, Team1: team1, Team2: team2})
		for _, p := range []model.PlayerID{team1[0], team1[1], team2[0], team2[1]} {
			used[p] = true
		}
	}

	// Counters only move once the whole round is fixed
	for _, m := range matches {
		tracker.RecordMatch(m)
	}

	for _, p := range active {
		if !used[p] {
			sitting = append(sitting, p)
		}
	}

	return model.Round{Number: number, Matches: matches, Sitting: sitting}
}

// rankByGamesPlayed orders players by ascending games played with random tie-breaks
func (s *Service) rankByGamesPlayed(players []model.PlayerID, tracker *PairTracker) []model.PlayerID {
	ranked := append([]model.PlayerID(nil), players...)
	random.Shuffle(s.random, ranked)
	slices.SortStableFunc(ranked, func(a, b model.PlayerID) int {
		return cmp.Compare(tracker.GamesPlayed(a), tracker.GamesPlayed(b))
	})
	return ranked
}

// pickPartners chooses team 1: a pair with the lowest partner count
func (s *Service) pickPartners(available []model.PlayerID, tracker *PairTracker) model.Team {
	var best []model.Team
	bestScore := 0
	for i := 0; i < len(available); i++ {
		for j := i + 1; j < len(available); j++ {
			score := tracker.PartnerCount(available[i], available[j])
			team := model.Team{available[i], available[j]}
			switch {
			case best == nil || score < bestScore:
				best = []model.Team{team}
				bestScore = score
			case score == bestScore:
				best = append(best, team)
			}
		}
	}
	return best[s.random.Intn(len(best))]
}

// pickOpponents chooses team 2 against team1, preferring fresh partnerships
// and players who have rarely faced either member of team1
func (s *Service) pickOpponents(others []model.PlayerID, team1 model.Team, tracker *PairTracker) model.Team {
	var best []model.Team
	bestScore := 0
	for i := 0; i < len(others); i++ {
		for j := i + 1; j < len(others); j++ {
			a, b := others[i], others[j]
			pc := tracker.PartnerCount(a, b)
			faced := tracker.OpponentCount(team1[0], a) +
				tracker.OpponentCount(team1[0], b) +
				tracker.OpponentCount(team1[1], a) +
				tracker.OpponentCount(team1[1], b)

			score := -pc - faced*opponentPenalty
			if pc == 0 {
				score += unpartneredBonus
			}

			team := model.Team{a, b}
			switch {
			case best == nil || score > bestScore:
				best = []model.Team{team}
				bestScore = score
			case score == bestScore:
				best = append(best, team)
			}
		}
	}
	return best[s.random.Intn(len(best))]
}
