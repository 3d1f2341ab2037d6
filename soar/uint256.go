// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package soar

import (
	"errors"

	"github.com/holiman/uint256"
)

var precision = *uint256.NewInt(1_000_000_000_000_000_000)

// Precision returns the fixed-point scale (10^18) used by the reward accumulation.
func Precision() *uint256.Int {
	p := precision
	return &p
}

var (
	errEmptyNumber  = errors.New("empty number")
	errInvalidDigit  = errors.New("invalid decimal digit")
)

// ParseUint256 parses an unsigned decimal literal into a 256-bit integer.
// Only ASCII digits are accepted: no sign, no underscores and no hex prefix.
// Leading zeroes are allowed. Values above 2^256-1 are rejected.
func ParseUint256(s string) (*uint256.Int, error) {
	if len(s) == 0 {
		return nil, errEmptyNumber
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, errInvalidDigit
		}
	}
	v := new(uint256.Int)
	if err := v.SetFromDecimal(s); err != nil {
		return nil, err
	}
	return v, nil
}

// MustParseUint256 is like ParseUint256 but panics on error.
func MustParseUint256(s string) *uint256.Int {
	v, err := ParseUint256(s)
	if err != nil {
		panic(err)
	}
	return v
}
