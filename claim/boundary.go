// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/event"
	"github.com/soar-labs/soar/soar"
)

// BoundaryID names one of the six claim boundaries.
type BoundaryID uint8

const (
	FromReward BoundaryID = iota
	ToReward
	FromStake
	ToStake
	FromUserStake
	ToUserStake
)

var boundaryNames = [...]string{
	FromReward:    "fromRewardChainEvent",
	ToReward:      "toRewardChainEvent",
	FromStake:     "fromStakeChainEvent",
	ToStake:       "toStakeChainEvent",
	FromUserStake: "fromUserStakeChainEvent",
	ToUserStake:   "toUserStakeChainEvent",
}

func (id BoundaryID) String() string {
	if int(id) < len(boundaryNames) {
		return boundaryNames[id]
	}
	return "unknown"
}

// Boundary is the exclusive start of a chain window: either the genesis of the
// chain or a snapshot event. The zero value is Genesis.
type Boundary[E event.Chained] struct {
	ev       E
	snapshot bool
}

// Genesis returns the boundary before the first event of a chain.
func Genesis[E event.Chained]() Boundary[E] {
	return Boundary[E]{}
}

// Snapshot returns the boundary located at ev.
func Snapshot[E event.Chained](ev E) Boundary[E] {
	return Boundary[E]{ev: ev, snapshot: true}
}

// Event returns the snapshot event, ok is false for Genesis.
func (b Boundary[E]) Event() (ev E, ok bool) {
	return b.ev, b.snapshot
}

// IsGenesis reports whether b is the chain genesis.
func (b Boundary[E]) IsGenesis() bool {
	return !b.snapshot
}

// Hash returns the chain hash at the boundary; genesis is the zero hash.
func (b Boundary[E]) Hash() soar.Bytes32 {
	if !b.snapshot {
		return soar.Bytes32{}
	}
	return b.ev.ChainHash()
}

// Time returns the boundary timestamp; genesis is zero.
func (b Boundary[E]) Time() *uint256.Int {
	if !b.snapshot {
		return new(uint256.Int)
	}
	return b.ev.Time()
}
