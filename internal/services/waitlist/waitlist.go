// Package waitlist maintains the overflow queue of a tournament roster.
//
// Every function here operates in place on caller-owned player records and
// performs no I/O. Callers must persist the resulting roster as one atomic
// write: an interleaved read between promotion and renumbering would see a
// gap in the queue.
//
// Invariant: waitlisted players hold positions exactly 1..k, in admission order.
package waitlist

import (
	"fmt"
	"slices"

	"github.com/mcoot/doubles-roundrobin/internal/model"
)

// Admission is the outcome of admitting a new signup
type Admission struct {
	Active   bool
	Position int // Waitlist position when not active
}

// Apply writes the admission outcome onto a player record
func (a Admission) Apply(p *model.Player) {
	p.IsPlaying = true
	if a.Active {
		p.WaitlistPosition = 0
	} else {
		p.WaitlistPosition = a.Position
	}
}

// ActiveCount returns the number of players holding an active, playing spot
func ActiveCount(players []*model.Player) int {
	count := 0
	for _, p := range players {
		if p.IsActive() {
			count++
		}
	}
	return count
}

// Waitlisted returns the waitlisted players ordered by position
func Waitlisted(players []*model.Player) []*model.Player {
	var out []*model.Player
	for _, p := range players {
		if p.IsWaitlisted() {
			out = append(out, p)
		}
	}
	slices.SortFunc(out, func(a, b *model.Player) int {
		return a.WaitlistPosition - b.WaitlistPosition
	})
	return out
}

// NextPosition returns the position a newly waitlisted player would take
func NextPosition(players []*model.Player) int {
	highest := 0
	for _, p := range players {
		highest = max(highest, p.WaitlistPosition)
	}
	return highest + 1
}

// Admit decides whether a new signup takes an active spot or joins the
// back of the waitlist
func Admit(players []*model.Player, capacity int) Admission {
	if ActiveCount(players) < capacity {
		return Admission{Active: true}
	}
	return Admission{Position: NextPosition(players)}
}

// PromoteNext moves the head of the waitlist into the active roster and
// closes the gap it leaves. It returns the promoted player, or nil when the
// waitlist is empty.
func PromoteNext(players []*model.Player) *model.Player {
	var head *model.Player
	for _, p := range players {
		if p.IsWaitlisted() && (head == nil || p.WaitlistPosition < head.WaitlistPosition) {
			head = p
		}
	}
	if head == nil {
		return nil
	}
	promote(players, head)
	return head
}

// Remove drops a player from the roster. Removing an active player promotes
// the head of the waitlist; removing a waitlisted player only renumbers.
// It returns the remaining roster and the promoted player, if any.
func Remove(players []*model.Player, id model.PlayerID) ([]*model.Player, *model.Player, error) {
	idx := slices.IndexFunc(players, func(p *model.Player) bool { return p.ID == id })
	if idx < 0 {
		return players, nil, model.ErrPlayerNotFound
	}
	removed := players[idx]
	remaining := slices.Delete(slices.Clone(players), idx, idx+1)

	switch {
	case removed.IsWaitlisted():
		closeGap(remaining, removed.WaitlistPosition)
		return remaining, nil, nil
	case removed.IsPlaying:
		return remaining, PromoteNext(remaining), nil
	default:
		return remaining, nil, nil
	}
}

// Deactivate marks a player as sitting out of the tournament. An active
// player's spot goes to the head of the waitlist; a waitlisted player leaves
// the queue. It returns the promoted player, if any.
func Deactivate(players []*model.Player, id model.PlayerID) (*model.Player, error) {
	p := find(players, id)
	if p == nil {
		return nil, model.ErrPlayerNotFound
	}

	switch {
	case p.IsWaitlisted():
		pos := p.WaitlistPosition
		p.WaitlistPosition = 0
		p.IsPlaying = false
		closeGap(players, pos)
		return nil, nil
	case p.IsPlaying:
		p.IsPlaying = false
		return PromoteNext(players), nil
	default:
		return nil, nil
	}
}

// Approve promotes a specific waitlisted player out of turn
func Approve(players []*model.Player, id model.PlayerID) error {
	p := find(players, id)
	if p == nil {
		return model.ErrPlayerNotFound
	}
	if !p.IsWaitlisted() {
		return model.ErrNotWaitlisted
	}
	promote(players, p)
	return nil
}

// ApproveAll promotes every waitlisted player and returns how many moved
func ApproveAll(players []*model.Player) (int, error) {
	queued := Waitlisted(players)
	if len(queued) == 0 {
		return 0, model.ErrWaitlistEmpty
	}
	for _, p := range queued {
		p.WaitlistPosition = 0
		p.IsPlaying = true
	}
	return len(queued), nil
}

// Validate checks that waitlist positions are exactly 1..k
func Validate(players []*model.Player) error {
	for i, p := range Waitlisted(players) {
		if p.WaitlistPosition != i+1 {
			return fmt.Errorf("%w: player %s at position %d, expected %d",
				model.ErrWaitlistCorrupt, p.ID, p.WaitlistPosition, i+1)
		}
	}
	return nil
}

func promote(players []*model.Player, p *model.Player) {
	pos := p.WaitlistPosition
	p.WaitlistPosition = 0
	p.IsPlaying = true
	closeGap(players, pos)
}

// closeGap shifts every position after pos down by one
func closeGap(players []*model.Player, pos int) {
	for _, p := range players {
		if p.WaitlistPosition > pos {
			p.WaitlistPosition--
		}
	}
}

func find(players []*model.Player, id model.PlayerID) *model.Player {
	for _, p := range players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
