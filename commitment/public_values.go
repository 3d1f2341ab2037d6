// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package commitment

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/soar-labs/soar/soar"
)

// PublicValues is the decoded form of a commitment.
type PublicValues struct {
	User         soar.Address
	TotalRewards uint256.Int

	FromRewardChainHash    soar.Bytes32
	ToRewardChainHash      soar.Bytes32
	FromStakeChainHash     soar.Bytes32
	ToStakeChainHash       soar.Bytes32
	FromUserStakeChainHash soar.Bytes32
	ToUserStakeChainHash   soar.Bytes32
}

// NewPublicValues assembles public values from the six boundary hashes in commitment order.
func NewPublicValues(user soar.Address, total *uint256.Int, hashes [6]soar.Bytes32) *PublicValues {
	pv := &PublicValues{
		User:                   user,
		FromRewardChainHash:    hashes[0],
		ToRewardChainHash:      hashes[1],
		FromStakeChainHash:     hashes[2],
		ToStakeChainHash:       hashes[3],
		FromUserStakeChainHash: hashes[4],
		ToUserStakeChainHash:   hashes[5],
	}
	pv.TotalRewards.Set(total)
	return pv
}

// Hashes returns the six boundary hashes in commitment order.
func (pv *PublicValues) Hashes() [6]soar.Bytes32 {
	return [6]soar.Bytes32{
		pv.FromRewardChainHash,
		pv.ToRewardChainHash,
		pv.FromStakeChainHash,
		pv.ToStakeChainHash,
		pv.FromUserStakeChainHash,
		pv.ToUserStakeChainHash,
	}
}

// Encode returns the ABI encoding of pv.
func (pv *PublicValues) Encode() ([]byte, error) {
	h := pv.Hashes()
	data, err := method.EncodeOutput(
		common.Address(pv.User),
		pv.TotalRewards.ToBig(),
		[32]byte(h[0]), [32]byte(h[1]), [32]byte(h[2]),
		[32]byte(h[3]), [32]byte(h[4]), [32]byte(h[5]),
	)
	if err != nil {
		return nil, errors.Wrap(err, "commitment")
	}
	return data, nil
}

type publicValuesJSON struct {
	User                   string `json:"user"`
	TotalRewards           string `json:"totalRewards"`
	FromRewardChainHash    string `json:"fromRewardChainHash"`
	ToRewardChainHash      string `json:"toRewardChainHash"`
	FromStakeChainHash     string `json:"fromStakeChainHash"`
	ToStakeChainHash       string `json:"toStakeChainHash"`
	FromUserStakeChainHash string `json:"fromUserStakeChain"`
	ToUserStakeChainHash   string `json:"toUserStakeChain"`
}

// MarshalJSON implements json.Marshaler using the key names of output.json.
func (pv *PublicValues) MarshalJSON() ([]byte, error) {
	return json.Marshal(&publicValuesJSON{
		User:                   pv.User.String(),
		TotalRewards:           pv.TotalRewards.Dec(),
		FromRewardChainHash:    pv.FromRewardChainHash.String(),
		ToRewardChainHash:      pv.ToRewardChainHash.String(),
		FromStakeChainHash:     pv.FromStakeChainHash.String(),
		ToStakeChainHash:       pv.ToStakeChainHash.String(),
		FromUserStakeChainHash: pv.FromUserStakeChainHash.String(),
		ToUserStakeChainHash:   pv.ToUserStakeChainHash.String(),
	})
}

// UnmarshalJSON implements json.Unmarshaler. A genesis hash may be written as "0x0".
func (pv *PublicValues) UnmarshalJSON(data []byte) error {
	var j publicValuesJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	user, err := soar.ParseAddress(j.User)
	if err != nil {
		return errors.WithMessage(err, "user")
	}
	total, err := soar.ParseUint256(j.TotalRewards)
	if err != nil {
		return errors.WithMessage(err, "totalRewards")
	}

	var hashes [6]soar.Bytes32
	for i, s := range [6]string{
		j.FromRewardChainHash, j.ToRewardChainHash,
		j.FromStakeChainHash, j.ToStakeChainHash,
		j.FromUserStakeChainHash, j.ToUserStakeChainHash,
	} {
		if hashes[i], err = parseHash(s); err != nil {
			return errors.WithMessagef(err, "hash %d", i)
		}
	}
	*pv = *NewPublicValues(user, total, hashes)
	return nil
}

func parseHash(s string) (soar.Bytes32, error) {
	if s == "" || s == "0x0" {
		return soar.Bytes32{}, nil
	}
	return soar.ParseBytes32(s)
}
