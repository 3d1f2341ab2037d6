// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package event models the stake-change and reward-distribution events recorded by the
// StakeChain and RewardChain contracts. Every event carries the hash of its predecessor and
// its own hash, which is keccak256 over the Solidity packed encoding of its fields followed
// by the predecessor hash.
package event

import (
	"bytes"
	"sync/atomic"

	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/soar"
)

// Chained is implemented by events linked into a hash chain.
type Chained interface {
	// ContentHash recomputes the event hash from its fields.
	ContentHash() soar.Bytes32
	// ChainHash returns the hash recorded for the event.
	ChainHash() soar.Bytes32
	// ParentHash returns the recorded hash of the preceding event.
	ParentHash() soar.Bytes32
	// Verify reports whether the recorded hash matches the content.
	Verify() bool
	// Time returns the event timestamp.
	Time() *uint256.Int
}

var (
	_ Chained = (*StakeEvent)(nil)
	_ Chained = (*RewardEvent)(nil)
)

// contentMemo caches the digest of one packed encoding.
type contentMemo struct {
	packed []byte
	hash   soar.Bytes32
}

// memoizedHash returns keccak256(packed), reusing the memo only when the
// encoding is byte-identical to the one it was computed from.
func memoizedHash(memo *atomic.Pointer[contentMemo], packed []byte) soar.Bytes32 {
	if m := memo.Load(); m != nil && bytes.Equal(m.packed, packed) {
		return m.hash
	}
	m := &contentMemo{packed: packed, hash: soar.Keccak256(packed)}
	memo.Store(m)
	return m.hash
}

func appendWord(buf []byte, v *uint256.Int) []byte {
	w := v.Bytes32()
	return append(buf, w[:]...)
}

func appendBool(buf []byte, b bool) []byte {
	if b {
		return append(buf, 1)
	}
	return append(buf, 0)
}
