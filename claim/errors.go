// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package claim

import (
	"errors"
	"fmt"
)

// Kind classifies a chain integrity failure.
type Kind uint8

const (
	// ContentMismatch: the recomputed content hash differs from the recorded one.
	ContentMismatch Kind = iota + 1
	// LinkageMismatch: the event is not where the claim says it is in the chain.
	LinkageMismatch
	// OrderMismatch: timestamps are out of order or the stake and reward windows disagree.
	OrderMismatch
)

func (k Kind) String() string {
	switch k {
	case ContentMismatch:
		return "content mismatch"
	case LinkageMismatch:
		return "linkage mismatch"
	case OrderMismatch:
		return "order mismatch"
	default:
		return "unknown"
	}
}

// ChainIntegrityError reports a claim boundary that does not match the recorded history.
// Index is the position of the offending event in the supplied stream, or -1 when the
// boundary event itself is at fault.
type ChainIntegrityError struct {
	Boundary BoundaryID
	Kind     Kind
	Index    int
	Reason   string
}

func (e *ChainIntegrityError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("chain integrity: %v: %v: %s", e.Boundary, e.Kind, e.Reason)
	}
	return fmt.Sprintf("chain integrity: %v: %v at event %d: %s", e.Boundary, e.Kind, e.Index, e.Reason)
}

// IsChainIntegrityErr reports whether err is or wraps a *ChainIntegrityError.
func IsChainIntegrityErr(err error) bool {
	var ce *ChainIntegrityError
	return errors.As(err, &ce)
}

func integrityErr(id BoundaryID, kind Kind, index int, format string, args ...any) error {
	return &ChainIntegrityError{
		Boundary: id,
		Kind:     kind,
		Index:    index,
		Reason:   fmt.Sprintf(format, args...),
	}
}
