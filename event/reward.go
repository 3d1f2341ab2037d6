// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package event

import (
	"encoding/json"
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/soar"
)

const rewardPackedSize = 3*32 + 32

// RewardEvent is one entry of the reward chain.
type RewardEvent struct {
	Amount            uint256.Int
	TotalReward       uint256.Int // cumulative reward distributed so far
	Timestamp         uint256.Int
	PreviousEventHash soar.Bytes32
	CurrentEventHash  soar.Bytes32

	memo atomic.Pointer[contentMemo]
}

// Packed returns abi.encodePacked(uint256 amount, uint256 totalRewards,
// uint256 timestamp, bytes32 previousEventHash).
func (e *RewardEvent) Packed() []byte {
	buf := make([]byte, 0, rewardPackedSize)
	buf = appendWord(buf, &e.Amount)
	buf = appendWord(buf, &e.TotalReward)
	buf = appendWord(buf, &e.Timestamp)
	return append(buf, e.PreviousEventHash[:]...)
}

// ContentHash computes keccak256 of the packed encoding.
func (e *RewardEvent) ContentHash() soar.Bytes32 {
	return memoizedHash(&e.memo, e.Packed())
}

// VerifyHash reports whether the recomputed content hash equals expected.
func (e *RewardEvent) VerifyHash(expected soar.Bytes32) bool {
	return e.ContentHash() == expected
}

// Verify checks the recorded CurrentEventHash against the event content.
func (e *RewardEvent) Verify() bool {
	return e.VerifyHash(e.CurrentEventHash)
}

func (e *RewardEvent) ChainHash() soar.Bytes32  { return e.CurrentEventHash }
func (e *RewardEvent) ParentHash() soar.Bytes32 { return e.PreviousEventHash }
func (e *RewardEvent) Time() *uint256.Int       { return &e.Timestamp }

// Seal links the event to parent and sets CurrentEventHash from its content.
func (e *RewardEvent) Seal(parent soar.Bytes32) *RewardEvent {
	e.PreviousEventHash = parent
	e.CurrentEventHash = e.ContentHash()
	return e
}

type rewardEventJSON struct {
	Amount              string `json:"amount"`
	TotalRewards        string `json:"totalRewards"`
	Timestamp           string `json:"timestamp"`
	PreviousRewardChain string `json:"previousRewardChain"`
	CurrentRewardChain  string `json:"currentRewardChain"`
}

// DecodeRewardEvent decodes the wire form of a reward event.
func DecodeRewardEvent(raw []byte) (*RewardEvent, error) {
	var ev RewardEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, asDecodeError(err)
	}
	return &ev, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *RewardEvent) UnmarshalJSON(data []byte) error {
	var j rewardEventJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return asDecodeError(err)
	}

	var d decoder
	d.number("amount", j.Amount, &e.Amount)
	d.number("totalRewards", j.TotalRewards, &e.TotalReward)
	d.number("timestamp", j.Timestamp, &e.Timestamp)
	d.hash("previousRewardChain", j.PreviousRewardChain, &e.PreviousEventHash)
	d.hash("currentRewardChain", j.CurrentRewardChain, &e.CurrentEventHash)
	return d.err
}

// MarshalJSON implements json.Marshaler.
func (e *RewardEvent) MarshalJSON() ([]byte, error) {
	return json.Marshal(&rewardEventJSON{
		Amount:              e.Amount.Dec(),
		TotalRewards:        e.TotalReward.Dec(),
		Timestamp:           e.Timestamp.Dec(),
		PreviousRewardChain: e.PreviousEventHash.String(),
		CurrentRewardChain:  e.CurrentEventHash.String(),
	})
}

// Clone returns a copy of the event without any cached digest.
func (e *RewardEvent) Clone() *RewardEvent {
	return &RewardEvent{
		Amount:            e.Amount,
		TotalReward:       e.TotalReward,
		Timestamp:         e.Timestamp,
		PreviousEventHash: e.PreviousEventHash,
		CurrentEventHash:  e.CurrentEventHash,
	}
}
