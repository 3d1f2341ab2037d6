// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

// Window is the authenticated part of the supplied history a claim covers, together with
// the starting state read from the from-boundaries. The slices alias the input streams.
type Window struct {
	User    soar.Address
	Stakes  []*event.StakeEvent
	Rewards []*event.RewardEvent

	// Positions of Stakes[0] and Rewards[0] in the streams passed to Validate.
	StakeOffset  int
	RewardOffset int

	InitialTotalStake uint256.Int
	InitialUserStake  uint256.Int
	InitialTimestamp  uint256.Int
}

// Validate checks the claim against the supplied stake and reward streams and returns the
// window it covers. The streams may be exactly the windows or longer stretches of history
// around them; events are located by hash.
func Validate(c *Claim, stakes []*event.StakeEvent, rewards []*event.RewardEvent) (*Window, error) {
	if err := checkContent(c); err != nil {
		return nil, err
	}

	rStart, rEnd, err := locate(rewards, c.FromReward, c.ToReward, FromReward, ToReward)
	if err != nil {
		return nil, err
	}
	sStart, sEnd, err := locate(stakes, c.FromStake, c.ToStake, FromStake, ToStake)
	if err != nil {
		return nil, err
	}
	if err := checkUserChain(c, stakes, sStart, sEnd); err != nil {
		return nil, err
	}

	w := &Window{
		User:    c.User,
		Stakes:  stakes[sStart:sEnd:sEnd],
		Rewards: rewards[rStart:rEnd:rEnd],

		StakeOffset:  sStart,
		RewardOffset: rStart,
	}
	if err := checkCrossReference(c, w, stakes[sEnd:]); err != nil {
		return nil, err
	}

	if ev, ok := c.FromStake.Event(); ok {
		w.InitialTotalStake.Set(&ev.TotalStaked)
	}
	if ev, ok := c.FromUserStake.Event(); ok {
		w.InitialUserStake.Set(&ev.TotalUserStake)
	}
	if ev, ok := c.FromReward.Event(); ok {
		w.InitialTimestamp.Set(&ev.Timestamp)
	}
	return w, nil
}

func checkContent(c *Claim) error {
	check := func(id BoundaryID, ev event.Chained) error {
		if ev.ContentHash() != ev.ChainHash() {
			return integrityErr(id, ContentMismatch, -1, "recorded hash %v does not match content", ev.ChainHash())
		}
		return nil
	}

	if ev, ok := c.FromReward.Event(); ok {
		if err := check(FromReward, ev); err != nil {
			return err
		}
	}
	if err := check(ToReward, c.ToReward); err != nil {
		return err
	}
	if ev, ok := c.FromStake.Event(); ok {
		if err := check(FromStake, ev); err != nil {
			return err
		}
	}
	if err := check(ToStake, c.ToStake); err != nil {
		return err
	}
	if ev, ok := c.FromUserStake.Event(); ok {
		if err := check(FromUserStake, ev); err != nil {
			return err
		}
	}
	return check(ToUserStake, c.ToUserStake)
}

// locate finds the window (from, to] in stream and verifies every event inside it.
// It returns the half-open index range [start, end).
func locate[E event.Chained](stream []E, from Boundary[E], to E, fromID, toID BoundaryID) (start, end int, err error) {
	fromHash := from.Hash()

	switch {
	case from.IsGenesis():
		if len(stream) > 0 && !stream[0].ParentHash().IsZero() {
			return 0, 0, integrityErr(fromID, LinkageMismatch, 0, "genesis window but the first event has parent %v", stream[0].ParentHash())
		}
	default:
		start = -1
		for i, ev := range stream {
			if ev.ParentHash() == fromHash {
				start = i
				break
			}
		}
		if start < 0 {
			for i, ev := range stream {
				if ev.ChainHash() == fromHash {
					start = i + 1
					break
				}
			}
		}
		if start < 0 {
			if len(stream) > 0 {
				return 0, 0, integrityErr(fromID, LinkageMismatch, -1, "%v is not linked to any supplied event", fromHash)
			}
			start = 0
		}
	}

	toHash := to.ChainHash()
	if toHash == fromHash {
		return start, start, nil
	}

	end = -1
	for i := start; i < len(stream); i++ {
		if stream[i].ChainHash() == toHash {
			end = i + 1
			break
		}
	}
	if end < 0 {
		return 0, 0, integrityErr(toID, LinkageMismatch, -1, "%v not found after %v", toHash, fromHash)
	}

	parentHash, parentTime := fromHash, from.Time()
	for i := start; i < end; i++ {
		ev := stream[i]
		if !ev.Verify() {
			return 0, 0, integrityErr(toID, ContentMismatch, i, "recorded hash %v does not match content", ev.ChainHash())
		}
		if ev.ParentHash() != parentHash {
			return 0, 0, integrityErr(toID, LinkageMismatch, i, "parent %v, want %v", ev.ParentHash(), parentHash)
		}
		if ev.Time().Lt(parentTime) {
			return 0, 0, integrityErr(toID, OrderMismatch, i, "timestamp %v precedes %v", ev.Time().Dec(), parentTime.Dec())
		}
		parentHash, parentTime = ev.ChainHash(), ev.Time()
	}
	return start, end, nil
}
