package scheduler

import "github.com/mcoot/doubles-roundrobin/internal/model"

// PairTracker is the bookkeeping state of the rotating scheduler: how often
// each pair has partnered or opposed each other, and how many games each
// player has played.
type PairTracker struct {
	partners  map[model.Pair]int
	opponents map[model.Pair]int
	games     map[model.PlayerID]int
	partnered int // Distinct pairs with a partner count of at least 1
}

// NewPairTracker creates a tracker with every player at zero games
func NewPairTracker(players []model.PlayerID) *PairTracker {
	t := &PairTracker{
		partners:  make(map[model.Pair]int),
		opponents: make(map[model.Pair]int),
		games:     make(map[model.PlayerID]int, len(players)),
	}
	for _, p := range players {
		t.games[p] = 0
	}
	return t
}

// PartnerCount returns how many times a and b have been on the same team
func (t *PairTracker) PartnerCount(a, b model.PlayerID) int {
	return t.partners[model.NewPair(a, b)]
}

// OpponentCount returns how many times a and b have been on opposing teams
func (t *PairTracker) OpponentCount(a, b model.PlayerID) int {
	return t.opponents[model.NewPair(a, b)]
}

// GamesPlayed returns the number of matches the player has been assigned
func (t *PairTracker) GamesPlayed(p model.PlayerID) int {
	return t.games[p]
}

// PartneredPairs returns the number of distinct pairs that have partnered at least once
func (t *PairTracker) PartneredPairs() int {
	return t.partnered
}

// AddPartnership increments the partner count for a team
func (t *PairTracker) AddPartnership(team model.Team) {
	key := team.Pair()
	if t.partners[key] == 0 {
		t.partnered++
	}
	t.partners[key]++
}

// AddOpponents increments the opponent count for every cross-team pair
func (t *PairTracker) AddOpponents(team1, team2 model.Team) {
	for _, a := range team1 {
		for _, b := range team2 {
			t.opponents[model.NewPair(a, b)]++
		}
	}
}

// RecordMatch applies a completed court assignment to all counters
func (t *PairTracker) RecordMatch(m model.Match) {
	t.AddPartnership(m.Team1)
	t.AddPartnership(m.Team2)
	t.AddOpponents(m.Team1, m.Team2)
	for _, p := range m.Players() {
		t.games[p]++
	}
}
