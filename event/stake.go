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

// stakePackedSize is len(address ‖ bool ‖ 4 × uint256 ‖ bytes32).
const stakePackedSize = soar.AddressLength + 1 + 4*32 + 32

// StakeEvent is one entry of the stake chain. Totals are post-event snapshots.
type StakeEvent struct {
	User              soar.Address
	IsStake           bool
	Amount            uint256.Int
	TotalStaked       uint256.Int // global total after this event
	TotalUserStake    uint256.Int // total of User after this event
	Timestamp         uint256.Int
	PreviousEventHash soar.Bytes32
	CurrentEventHash  soar.Bytes32

	memo atomic.Pointer[contentMemo]
}

// Packed returns the Solidity abi.encodePacked form of the event:
// address user, bool isStake, uint256 amount, uint256 totalStaked,
// uint256 totalUserStake, uint256 timestamp, bytes32 previousEventHash.
func (e *StakeEvent) Packed() []byte {
	buf := make([]byte, 0, stakePackedSize)
	buf = append(buf, e.User[:]...)
	buf = appendBool(buf, e.IsStake)
	buf = appendWord(buf, &e.Amount)
	buf = appendWord(buf, &e.TotalStaked)
	buf = appendWord(buf, &e.TotalUserStake)
	buf = appendWord(buf, &e.Timestamp)
	return append(buf, e.PreviousEventHash[:]...)
}

// ContentHash computes keccak256 of the packed encoding.
func (e *StakeEvent) ContentHash() soar.Bytes32 {
	return memoizedHash(&e.memo, e.Packed())
}

// VerifyHash reports whether the recomputed content hash equals expected.
func (e *StakeEvent) VerifyHash(expected soar.Bytes32) bool {
	return e.ContentHash() == expected
}

// Verify checks the recorded CurrentEventHash against the event content.
func (e *StakeEvent) Verify() bool {
	return e.VerifyHash(e.CurrentEventHash)
}

func (e *StakeEvent) ChainHash() soar.Bytes32  { return e.CurrentEventHash }
func (e *StakeEvent) ParentHash() soar.Bytes32 { return e.PreviousEventHash }
func (e *StakeEvent) Time() *uint256.Int       { return &e.Timestamp }

// Seal links the event to parent and sets CurrentEventHash from its content.
func (e *StakeEvent) Seal(parent soar.Bytes32) *StakeEvent {
	e.PreviousEventHash = parent
	e.CurrentEventHash = e.ContentHash()
	return e
}

type stakeEventJSON struct {
	User               string          `json:"user"`
	IsStake            json.RawMessage `json:"isStake"`
	Amount             string          `json:"amount"`
	TotalStaked        string          `json:"totalStaked"`
	TotalUserStake     string          `json:"totalUserStake"`
	Timestamp          string          `json:"timestamp"`
	PreviousStakeChain string          `json:"previousStakeChain"`
	CurrentStakeChain  string          `json:"currentStakeChain"`
}

// DecodeStakeEvent decodes the wire form of a stake event.
func DecodeStakeEvent(raw []byte) (*StakeEvent, error) {
	var ev StakeEvent
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, asDecodeError(err)
	}
	return &ev, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *StakeEvent) UnmarshalJSON(data []byte) error {
	var j stakeEventJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return asDecodeError(err)
	}

	var d decoder
	d.address("user", j.User, &e.User)
	d.flag("isStake", j.IsStake, &e.IsStake)
	d.number("amount", j.Amount, &e.Amount)
	d.number("totalStaked", j.TotalStaked, &e.TotalStaked)
	d.number("totalUserStake", j.TotalUserStake, &e.TotalUserStake)
	d.number("timestamp", j.Timestamp, &e.Timestamp)
	d.hash("previousStakeChain", j.PreviousStakeChain, &e.PreviousEventHash)
	d.hash("currentStakeChain", j.CurrentStakeChain, &e.CurrentEventHash)
	return d.err
}

// MarshalJSON implements json.Marshaler.
func (e *StakeEvent) MarshalJSON() ([]byte, error) {
	isStake, _ := json.Marshal(e.IsStake)
	return json.Marshal(&stakeEventJSON{
		User:               e.User.String(),
		IsStake:            isStake,
		Amount:             e.Amount.Dec(),
		TotalStaked:        e.TotalStaked.Dec(),
		TotalUserStake:     e.TotalUserStake.Dec(),
		Timestamp:          e.Timestamp.Dec(),
		PreviousStakeChain: e.PreviousEventHash.String(),
		CurrentStakeChain:  e.CurrentEventHash.String(),
	})
}

// Clone returns a copy of the event without any cached digest.
func (e *StakeEvent) Clone() *StakeEvent {
	return &StakeEvent{
		User:              e.User,
		IsStake:           e.IsStake,
		Amount:            e.Amount,
		TotalStaked:       e.TotalStaked,
		TotalUserStake:    e.TotalUserStake,
		Timestamp:         e.Timestamp,
		PreviousEventHash: e.PreviousEventHash,
		CurrentEventHash:  e.CurrentEventHash,
	}
}
