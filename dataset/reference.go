// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package dataset

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/claim"
)

var precision = big.NewInt(1e18)

// Expect computes the reward c grants over the history recorded in b, directly from the
// full stake history rather than from the claimed windows. For every reward in the claimed
// reward window, stake is read from the last stake event strictly earlier than the reward.
// Shares are kept in 18-decimal fixed point and truncated once at the end.
func Expect(b *Builder, c *claim.Claim) *uint256.Int {
	if c.ToReward.CurrentEventHash == c.FromReward.Hash() {
		return new(uint256.Int)
	}
	start := 0
	if ev, ok := c.FromReward.Event(); ok {
		for i, r := range b.rewards {
			if r.CurrentEventHash == ev.CurrentEventHash {
				start = i + 1
				break
			}
		}
	}

	sum := new(big.Int)
	for _, r := range b.rewards[start:] {
		total, user := new(big.Int), new(big.Int)
		for _, s := range b.stakes {
			if !s.Timestamp.Lt(&r.Timestamp) {
				break
			}
			total = s.TotalStaked.ToBig()
			if s.User == c.User {
				user = s.TotalUserStake.ToBig()
			}
		}
		if total.Sign() > 0 {
			share := new(big.Int).Mul(r.Amount.ToBig(), user)
			share.Mul(share, precision)
			sum.Add(sum, share.Quo(share, total))
		}
		if r.CurrentEventHash == c.ToReward.CurrentEventHash {
			break
		}
	}
	out, _ := uint256.FromBig(sum.Quo(sum, precision))
	return out
}
