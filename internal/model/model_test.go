package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPairIsOrderIndependent(t *testing.T) {
	assert.Equal(t, NewPair("alice", "bob"), NewPair("bob", "alice"))
	assert.Equal(t, PlayerID("alice"), NewPair("bob", "alice").Low)

	counts := map[Pair]int{}
	counts[NewPair("x", "y")]++
	counts[NewPair("y", "x")]++
	assert.Equal(t, 2, counts[NewPair("x", "y")])
}

func TestPairDoesNotCollideOnSeparators(t *testing.T) {
	// "a:b" + "c" and "a" + "b:c" would share a concatenated key
	assert.NotEqual(t, NewPair("a:b", "c"), NewPair("a", "b:c"))
}

func TestPlayerStates(t *testing.T) {
	active := &Player{IsPlaying: true}
	benched := &Player{IsPlaying: false}
	queued := &Player{IsPlaying: false, WaitlistPosition: 2}

	assert.True(t, active.IsActive())
	assert.False(t, benched.IsActive())
	assert.False(t, queued.IsActive())
	assert.True(t, queued.IsWaitlisted())
}

func TestDivisionOverlap(t *testing.T) {
	a := Division{CourtStart: 1, CourtEnd: 3}
	b := Division{CourtStart: 3, CourtEnd: 4}
	c := Division{CourtStart: 4, CourtEnd: 6}

	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(c))
	assert.Equal(t, 3, a.Courts())
}

func TestRoundCloneIsIndependent(t *testing.T) {
	r := Round{Number: 1, Matches: []Match{{Court: 1}}, Sitting: []PlayerID{"p"}}
	c := r.Clone()
	c.Matches[0].Court = 9
	c.Sitting[0] = "q"

	assert.Equal(t, 1, r.Matches[0].Court)
	assert.Equal(t, PlayerID("p"), r.Sitting[0])
}

func TestScheduleCloneCopiesScores(t *testing.T) {
	s := &Schedule{Rounds: []Round{{Number: 1, Matches: []Match{
		{ID: "m1", Score: &MatchScore{Team1: 21, Team2: 15}, Completed: true},
	}}}}
	c := s.Clone()
	c.FindMatch("m1").Score.Team1 = 3

	assert.Equal(t, 21, s.FindMatch("m1").Score.Team1)
	assert.Nil(t, s.FindMatch("missing"))
}
