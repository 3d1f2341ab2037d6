// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reward

import (
	"errors"
	"fmt"
)

// Stream names the event stream an error refers to.
type Stream string

const (
	StakeStream  Stream = "stake"
	RewardStream Stream = "reward"
)

// ArithmeticOverflowError reports a reward event whose weighted share does not fit in 256 bits.
// Index is the position of the event in the supplied reward stream.
type ArithmeticOverflowError struct {
	Index int
	Op    string
}

func (e *ArithmeticOverflowError) Error() string {
	return fmt.Sprintf("arithmetic overflow in %s at reward event %d", e.Op, e.Index)
}

// ReconcileError reports input the merge cannot make sense of, such as timestamps going
// backwards or a user stake larger than the total stake. Index is the position of the
// event in the supplied stream.
type ReconcileError struct {
	Stream Stream
	Index  int
	Reason string
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile %s event %d: %s", e.Stream, e.Index, e.Reason)
}

// IsArithmeticOverflowErr reports whether err is or wraps an *ArithmeticOverflowError.
func IsArithmeticOverflowErr(err error) bool {
	var oe *ArithmeticOverflowError
	return errors.As(err, &oe)
}
