// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package commitment encodes the public values a claim proof commits to.
//
// The encoding is the Solidity ABI encoding of
//
//	(address user, uint256 totalRewards,
//	 bytes32 fromRewardChainHash, bytes32 toRewardChainHash,
//	 bytes32 fromStakeChainHash, bytes32 toStakeChainHash,
//	 bytes32 fromUserStakeChainHash, bytes32 toUserStakeChainHash)
//
// so that an on-chain verifier can abi.decode it directly. Genesis boundaries are the zero hash.
package commitment

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/soar-labs/soar/abi"
	"github.com/soar-labs/soar/soar"
)

// Size is the length of an encoded commitment: eight 32-byte words.
const Size = 8 * 32

const publicValuesABI = `[{
	"type": "function",
	"name": "publicValues",
	"stateMutability": "pure",
	"inputs": [],
	"outputs": [
		{"name": "user", "type": "address"},
		{"name": "totalRewards", "type": "uint256"},
		{"name": "fromRewardChainHash", "type": "bytes32"},
		{"name": "toRewardChainHash", "type": "bytes32"},
		{"name": "fromStakeChainHash", "type": "bytes32"},
		{"name": "toStakeChainHash", "type": "bytes32"},
		{"name": "fromUserStakeChainHash", "type": "bytes32"},
		{"name": "toUserStakeChainHash", "type": "bytes32"}
	]
}]`

var method *abi.Method

func init() {
	m, ok := abi.MustNew([]byte(publicValuesABI)).MethodByName("publicValues")
	if !ok {
		panic("commitment: publicValues method missing")
	}
	method = m
}

// Build encodes the commitment for user. hashes are the six boundary hashes in the order
// from/to reward, from/to stake, from/to user stake.
func Build(user soar.Address, total *uint256.Int, hashes [6]soar.Bytes32) ([]byte, error) {
	return NewPublicValues(user, total, hashes).Encode()
}

// Decode parses an encoded commitment.
func Decode(data []byte) (*PublicValues, error) {
	if len(data) != Size {
		return nil, errors.Errorf("commitment: want %d bytes, got %d", Size, len(data))
	}
	var out struct {
		User                   common.Address
		TotalRewards           *big.Int
		FromRewardChainHash    [32]byte
		ToRewardChainHash      [32]byte
		FromStakeChainHash     [32]byte
		ToStakeChainHash       [32]byte
		FromUserStakeChainHash [32]byte
		ToUserStakeChainHash   [32]byte
	}
	if err := method.DecodeOutput(data, &out); err != nil {
		return nil, errors.Wrap(err, "commitment")
	}
	total, overflow := uint256.FromBig(out.TotalRewards)
	if overflow {
		return nil, errors.New("commitment: total rewards overflow")
	}
	return NewPublicValues(soar.Address(out.User), total, [6]soar.Bytes32{
		out.FromRewardChainHash,
		out.ToRewardChainHash,
		out.FromStakeChainHash,
		out.ToStakeChainHash,
		out.FromUserStakeChainHash,
		out.ToUserStakeChainHash,
	}), nil
}
