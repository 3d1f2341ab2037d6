// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package event

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/holiman/uint256"

	"github.com/soar-labs/soar/soar"
)

// DecodeError reports a malformed wire field.
type DecodeError struct {
	Field string
	Value string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode: %v", e.Err)
	}
	return fmt.Sprintf("decode %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsDecodeErr reports whether err is or wraps a *DecodeError.
func IsDecodeErr(err error) bool {
	var de *DecodeError
	return errors.As(err, &de)
}

// asDecodeError converts errors from encoding/json into a *DecodeError.
func asDecodeError(err error) error {
	if err == nil {
		return nil
	}
	var de *DecodeError
	if errors.As(err, &de) {
		return err
	}
	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return &DecodeError{Field: te.Field, Value: te.Value, Err: err}
	}
	return &DecodeError{Err: err}
}

var errMissingFlag = errors.New("missing boolean")

// decoder parses wire fields, keeping the first failure.
type decoder struct {
	err error
}

func (d *decoder) fail(field, value string, err error) {
	if d.err == nil {
		d.err = &DecodeError{Field: field, Value: value, Err: err}
	}
}

func (d *decoder) number(field, s string, out *uint256.Int) {
	if d.err != nil {
		return
	}
	v, err := soar.ParseUint256(s)
	if err != nil {
		d.fail(field, s, err)
		return
	}
	out.Set(v)
}

func (d *decoder) hash(field, s string, out *soar.Bytes32) {
	if d.err != nil {
		return
	}
	v, err := soar.ParseBytes32(s)
	if err != nil {
		d.fail(field, s, err)
		return
	}
	*out = v
}

func (d *decoder) address(field, s string, out *soar.Address) {
	if d.err != nil {
		return
	}
	v, err := soar.ParseAddress(s)
	if err != nil {
		d.fail(field, s, err)
		return
	}
	*out = v
}

// flag accepts true/false as well as the 1/0 form emitted by some exporters.
func (d *decoder) flag(field string, raw json.RawMessage, out *bool) {
	if d.err != nil {
		return
	}
	switch string(raw) {
	case "true", "1":
		*out = true
	case "false", "0":
		*out = false
	case "", "null":
		d.fail(field, string(raw), errMissingFlag)
	default:
		d.fail(field, string(raw), errors.New("invalid boolean"))
	}
}
