package waitlist

import (
	"fmt"
	"testing"

	"github.com/mcoot/doubles-roundrobin/internal/model"
	"github.com/stretchr/testify/suite"
)

type WaitlistSuite struct {
	suite.Suite
	roster   []*model.Player
	capacity int
	nextID   int
}

func TestWaitlistSuite(t *testing.T) {
	suite.Run(t, new(WaitlistSuite))
}

func (s *WaitlistSuite) SetupTest() {
	s.roster = nil
	s.capacity = 4
	s.nextID = 0
}

// signup admits a new player the way the tournament controller does
func (s *WaitlistSuite) signup() *model.Player {
	s.nextID++
	p := &model.Player{ID: model.PlayerID(fmt.Sprintf("p%d", s.nextID)), Name: fmt.Sprintf("Player %d", s.nextID)}
	Admit(s.roster, s.capacity).Apply(p)
	s.roster = append(s.roster, p)
	return p
}

func (s *WaitlistSuite) requireValid() {
	s.Require().NoError(Validate(s.roster))
}

// Admit tests

func (s *WaitlistSuite) TestAdmitActiveUnderCapacity() {
	for i := 0; i < 4; i++ {
		p := s.signup()
		s.True(p.IsActive())
		s.Equal(0, p.WaitlistPosition)
	}
	s.Equal(4, ActiveCount(s.roster))
}

func (s *WaitlistSuite) TestFifthSignupIsWaitlisted() {
	for i := 0; i < 4; i++ {
		s.signup()
	}

	p := s.signup()
	s.True(p.IsWaitlisted())
	s.Equal(1, p.WaitlistPosition)
	s.False(p.IsActive())

	second := s.signup()
	s.Equal(2, second.WaitlistPosition)
	s.requireValid()
}

func (s *WaitlistSuite) TestAdmitIgnoresInactivePlayers() {
	for i := 0; i < 4; i++ {
		s.signup()
	}
	s.roster[0].IsPlaying = false

	s.Equal(Admission{Active: true}, Admit(s.roster, s.capacity))
}

// PromoteNext tests

func (s *WaitlistSuite) TestPromoteNextEmptyIsNoop() {
	s.signup()
	s.Nil(PromoteNext(s.roster))
	s.Nil(PromoteNext(nil))
}

func (s *WaitlistSuite) TestPromoteNextTakesLowestPosition() {
	for i := 0; i < 7; i++ {
		s.signup()
	}
	// p5, p6, p7 are waitlisted at 1, 2, 3

	promoted := PromoteNext(s.roster)
	s.Require().NotNil(promoted)
	s.Equal(model.PlayerID("p5"), promoted.ID)
	s.True(promoted.IsActive())
	s.Equal(1, s.roster[5].WaitlistPosition)
	s.Equal(2, s.roster[6].WaitlistPosition)
	s.requireValid()
}

// Remove tests

func (s *WaitlistSuite) TestRemoveActivePromotesHead() {
	for i := 0; i < 5; i++ {
		s.signup()
	}

	remaining, promoted, err := Remove(s.roster, "p2")
	s.Require().NoError(err)
	s.roster = remaining

	s.Require().NotNil(promoted)
	s.Equal(model.PlayerID("p5"), promoted.ID)
	s.Len(s.roster, 4)
	s.Equal(4, ActiveCount(s.roster))
	s.Empty(Waitlisted(s.roster))
	s.requireValid()
}

func (s *WaitlistSuite) TestRemoveWaitlistedOnlyRenumbers() {
	for i := 0; i < 7; i++ {
		s.signup()
	}

	remaining, promoted, err := Remove(s.roster, "p6")
	s.Require().NoError(err)
	s.roster = remaining

	s.Nil(promoted)
	s.Equal(4, ActiveCount(s.roster))
	queued := Waitlisted(s.roster)
	s.Require().Len(queued, 2)
	s.Equal(model.PlayerID("p5"), queued[0].ID)
	s.Equal(model.PlayerID("p7"), queued[1].ID)
	s.Equal(2, queued[1].WaitlistPosition)
	s.requireValid()
}

func (s *WaitlistSuite) TestRemoveInactiveDoesNotPromote() {
	for i := 0; i < 5; i++ {
		s.signup()
	}
	s.roster[0].IsPlaying = false

	remaining, promoted, err := Remove(s.roster, "p1")
	s.Require().NoError(err)
	s.Nil(promoted)
	s.Len(Waitlisted(remaining), 1)
}

func (s *WaitlistSuite) TestRemoveUnknownPlayer() {
	s.signup()
	remaining, _, err := Remove(s.roster, "nope")
	s.ErrorIs(err, model.ErrPlayerNotFound)
	s.Len(remaining, 1)
}

func (s *WaitlistSuite) TestRemoveDoesNotMutateInputSlice() {
	for i := 0; i < 3; i++ {
		s.signup()
	}
	original := append([]*model.Player(nil), s.roster...)

	_, _, err := Remove(s.roster, "p1")
	s.Require().NoError(err)
	s.Equal(original, s.roster)
}

// Deactivate tests

func (s *WaitlistSuite) TestDeactivateActivePromotes() {
	for i := 0; i < 6; i++ {
		s.signup()
	}

	promoted, err := Deactivate(s.roster, "p1")
	s.Require().NoError(err)
	s.Require().NotNil(promoted)
	s.Equal(model.PlayerID("p5"), promoted.ID)
	s.False(s.roster[0].IsPlaying)
	s.Equal(1, s.roster[5].WaitlistPosition)
	s.requireValid()
}

func (s *WaitlistSuite) TestDeactivateWaitlistedLeavesQueue() {
	for i := 0; i < 7; i++ {
		s.signup()
	}

	promoted, err := Deactivate(s.roster, "p5")
	s.Require().NoError(err)
	s.Nil(promoted)
	s.False(s.roster[4].IsWaitlisted())
	s.False(s.roster[4].IsPlaying)
	s.Equal(1, s.roster[5].WaitlistPosition)
	s.Equal(4, ActiveCount(s.roster))
	s.requireValid()
}

func (s *WaitlistSuite) TestDeactivateAlreadyInactiveIsNoop() {
	for i := 0; i < 5; i++ {
		s.signup()
	}
	_, err := Deactivate(s.roster, "p1")
	s.Require().NoError(err)

	promoted, err := Deactivate(s.roster, "p1")
	s.Require().NoError(err)
	s.Nil(promoted)
}

// Approve tests

func (s *WaitlistSuite) TestApproveSpecificPlayer() {
	for i := 0; i < 7; i++ {
		s.signup()
	}

	s.Require().NoError(Approve(s.roster, "p6"))
	s.True(s.roster[5].IsActive())
	s.Equal(1, s.roster[4].WaitlistPosition)
	s.Equal(2, s.roster[6].WaitlistPosition)
	s.requireValid()
}

func (s *WaitlistSuite) TestApproveRejectsActivePlayer() {
	s.signup()
	s.ErrorIs(Approve(s.roster, "p1"), model.ErrNotWaitlisted)
	s.ErrorIs(Approve(s.roster, "missing"), model.ErrPlayerNotFound)
}

func (s *WaitlistSuite) TestApproveAll() {
	for i := 0; i < 7; i++ {
		s.signup()
	}

	count, err := ApproveAll(s.roster)
	s.Require().NoError(err)
	s.Equal(3, count)
	s.Equal(7, ActiveCount(s.roster))
	s.Empty(Waitlisted(s.roster))
}

func (s *WaitlistSuite) TestApproveAllEmpty() {
	s.signup()
	_, err := ApproveAll(s.roster)
	s.ErrorIs(err, model.ErrWaitlistEmpty)
}

// Validate tests

func (s *WaitlistSuite) TestValidateDetectsGap() {
	s.roster = []*model.Player{
		{ID: "a", IsPlaying: true, WaitlistPosition: 1},
		{ID: "b", IsPlaying: true, WaitlistPosition: 3},
	}
	s.ErrorIs(Validate(s.roster), model.ErrWaitlistCorrupt)
}

func (s *WaitlistSuite) TestValidateDetectsDuplicate() {
	s.roster = []*model.Player{
		{ID: "a", IsPlaying: true, WaitlistPosition: 1},
		{ID: "b", IsPlaying: true, WaitlistPosition: 1},
	}
	s.ErrorIs(Validate(s.roster), model.ErrWaitlistCorrupt)
}

func (s *WaitlistSuite) TestInvariantHoldsAcrossMixedOperations() {
	s.capacity = 3
	for i := 0; i < 8; i++ {
		s.signup()
		s.requireValid()
	}

	steps := []func(){
		func() { _, _ = Deactivate(s.roster, "p2") },
		func() { s.roster, _, _ = Remove(s.roster, "p7") },
		func() { PromoteNext(s.roster) },
		func() { _ = Approve(s.roster, "p8") },
		func() { s.signup() },
		func() { s.roster, _, _ = Remove(s.roster, "p1") },
		func() { s.signup() },
		func() { PromoteNext(s.roster) },
	}
	for i, step := range steps {
		step()
		s.Require().NoError(Validate(s.roster), "after step %d", i)
	}
}
