// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/soar"
)

// Accumulator sums fixed-point reward shares scaled by soar.Precision(). The scale is
// removed once, by Total, so fractions of every share contribute to the result.
type Accumulator struct {
	sum uint256.Int
}

// Accrue adds amount * userStake * Precision / totalStake to the running sum and returns
// the added share. totalStake must be non-zero.
func (a *Accumulator) Accrue(index int, amount, userStake, totalStake *uint256.Int) (*uint256.Int, error) {
	var weighted uint256.Int
	if _, overflow := weighted.MulOverflow(amount, userStake); overflow {
		return nil, &ArithmeticOverflowError{Index: index, Op: "amount*userStake"}
	}
	// 512-bit intermediate, only the quotient has to fit.
	share, overflow := new(uint256.Int).MulDivOverflow(&weighted, soar.Precision(), totalStake)
	if overflow {
		return nil, &ArithmeticOverflowError{Index: index, Op: "share scaling"}
	}
	var sum uint256.Int
	if _, overflow := sum.AddOverflow(&a.sum, share); overflow {
		return nil, &ArithmeticOverflowError{Index: index, Op: "accumulation"}
	}
	a.sum.Set(&sum)
	return share, nil
}

// Accumulated returns the fixed-point sum.
func (a *Accumulator) Accumulated() *uint256.Int {
	return new(uint256.Int).Set(&a.sum)
}

// Total returns the accumulated reward truncated to whole units.
func (a *Accumulator) Total() *uint256.Int {
	return new(uint256.Int).Div(&a.sum, soar.Precision())
}
