// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward computes a user's share of the rewards distributed inside a claim window.
//
// The stake and reward windows are merged in timestamp order. A stake event takes effect
// for rewards strictly later than it: one sharing a timestamp with a reward only counts
// from the next reward on. Each reward contributes amount * userStake / totalStake in
// 18-decimal fixed point, and the scale is truncated away once, after the last reward.
package reward

import (
	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/claim"
	"github.com/soar-labs/soar/event"
)

// Observer receives every step of a calculation. Arguments must be treated as read-only.
// Indexes are positions in the streams the window was validated against.
type Observer interface {
	StakeApplied(index int, ev *event.StakeEvent, userStake, totalStake *uint256.Int)
	RewardAccrued(index int, ev *event.RewardEvent, share, accumulated *uint256.Int)
	RewardSkipped(index int, ev *event.RewardEvent)
}

// Result is the outcome of a calculation.
type Result struct {
	Total          *uint256.Int // whole reward units owed to the user
	Accumulated    *uint256.Int // fixed-point sum before truncation
	StakesApplied  int
	RewardsAccrued int
	RewardsSkipped int
}

// Calculator merges a window's streams and accumulates the user's reward.
// It keeps no state between calls.
type Calculator struct {
	observer Observer
}

// New creates a calculator. observer may be nil.
func New(observer Observer) *Calculator {
	return &Calculator{observer: observer}
}

// Calculate computes the reward for w.User over w.
func (c *Calculator) Calculate(w *claim.Window) (*Result, error) {
	var (
		totalStake = new(uint256.Int).Set(&w.InitialTotalStake)
		userStake  = new(uint256.Int).Set(&w.InitialUserStake)
		now        = new(uint256.Int).Set(&w.InitialTimestamp)
		stakeTime  = new(uint256.Int)
		acc        Accumulator
		res        Result
		next       int
	)

	for ri, r := range w.Rewards {
		i := w.RewardOffset + ri
		if r.Timestamp.Lt(now) {
			return nil, &ReconcileError{Stream: RewardStream, Index: i, Reason: "timestamp goes backwards"}
		}

		for ; next < len(w.Stakes) && w.Stakes[next].Timestamp.Lt(&r.Timestamp); next++ {
			s := w.Stakes[next]
			si := w.StakeOffset + next
			if s.Timestamp.Lt(stakeTime) {
				return nil, &ReconcileError{Stream: StakeStream, Index: si, Reason: "timestamp goes backwards"}
			}
			stakeTime.Set(&s.Timestamp)

			if s.User == w.User {
				userStake.Set(&s.TotalUserStake)
			}
			totalStake.Set(&s.TotalStaked)
			if userStake.Gt(totalStake) {
				return nil, &ReconcileError{Stream: StakeStream, Index: si, Reason: "user stake exceeds total stake"}
			}
			res.StakesApplied++
			if c.observer != nil {
				c.observer.StakeApplied(si, s, userStake, totalStake)
			}
		}

		if totalStake.IsZero() {
			res.RewardsSkipped++
			if c.observer != nil {
				c.observer.RewardSkipped(i, r)
			}
		} else {
			share, err := acc.Accrue(i, &r.Amount, userStake, totalStake)
			if err != nil {
				return nil, err
			}
			res.RewardsAccrued++
			if c.observer != nil {
				c.observer.RewardAccrued(i, r, share, acc.Accumulated())
			}
		}
		now.Set(&r.Timestamp)
	}

	res.Total = acc.Total()
	res.Accumulated = acc.Accumulated()
	return &res, nil
}
