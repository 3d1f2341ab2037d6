// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package claim authenticates the window of chain history a reward claim is computed over.
package claim

import (
	"encoding/json"
	"errors"

	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

// Claim asserts, for the reward chain, the global stake chain and the user's stake
// chain, the window (from, to] a reward is computed over.
type Claim struct {
	User soar.Address

	FromReward Boundary[*event.RewardEvent]
	ToReward   *event.RewardEvent

	FromStake Boundary[*event.StakeEvent]
	ToStake   *event.StakeEvent

	FromUserStake Boundary[*event.StakeEvent]
	ToUserStake   *event.StakeEvent
}

// Hashes returns the six boundary hashes in commitment order:
// from/to reward, from/to stake, from/to user stake.
func (c *Claim) Hashes() [6]soar.Bytes32 {
	return [6]soar.Bytes32{
		c.FromReward.Hash(),
		c.ToReward.CurrentEventHash,
		c.FromStake.Hash(),
		c.ToStake.CurrentEventHash,
		c.FromUserStake.Hash(),
		c.ToUserStake.CurrentEventHash,
	}
}

type claimJSON struct {
	User          *soar.Address      `json:"user,omitempty"`
	FromReward    *event.RewardEvent `json:"fromRewardChainEvent,omitempty"`
	ToReward      *event.RewardEvent `json:"toRewardChainEvent"`
	FromStake     *event.StakeEvent  `json:"fromStakeChainEvent,omitempty"`
	ToStake       *event.StakeEvent  `json:"toStakeChainEvent"`
	FromUserStake *event.StakeEvent  `json:"fromUserStakeChainEvent,omitempty"`
	ToUserStake   *event.StakeEvent  `json:"toUserStakeChainEvent"`
}

var errMissingBoundary = errors.New("missing boundary event")

// UnmarshalJSON implements json.Unmarshaler. Absent or null from-events decode as Genesis,
// every to-event is mandatory.
func (c *Claim) UnmarshalJSON(data []byte) error {
	var j claimJSON
	if err := json.Unmarshal(data, &j); err != nil {
		var de *event.DecodeError
		if errors.As(err, &de) {
			return err
		}
		return &event.DecodeError{Field: "claim", Err: err}
	}
	switch {
	case j.ToReward == nil:
		return &event.DecodeError{Field: ToReward.String(), Err: errMissingBoundary}
	case j.ToStake == nil:
		return &event.DecodeError{Field: ToStake.String(), Err: errMissingBoundary}
	case j.ToUserStake == nil:
		return &event.DecodeError{Field: ToUserStake.String(), Err: errMissingBoundary}
	}

	*c = Claim{
		FromReward:    boundaryOf(j.FromReward),
		ToReward:      j.ToReward,
		FromStake:     boundaryOf(j.FromStake),
		ToStake:       j.ToStake,
		FromUserStake: boundaryOf(j.FromUserStake),
		ToUserStake:   j.ToUserStake,
	}
	if j.User != nil {
		c.User = *j.User
	}
	return nil
}

// MarshalJSON implements json.Marshaler. Genesis boundaries are omitted.
func (c *Claim) MarshalJSON() ([]byte, error) {
	j := claimJSON{
		ToReward:    c.ToReward,
		ToStake:     c.ToStake,
		ToUserStake: c.ToUserStake,
	}
	if !c.User.IsZero() {
		j.User = &c.User
	}
	j.FromReward, _ = c.FromReward.Event()
	j.FromStake, _ = c.FromStake.Event()
	j.FromUserStake, _ = c.FromUserStake.Event()
	return json.Marshal(&j)
}

func boundaryOf[E interface {
	comparable
	event.Chained
}](ev E) Boundary[E] {
	var zero E
	if ev == zero {
		return Genesis[E]()
	}
	return Snapshot(ev)
}
