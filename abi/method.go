// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// Method see abi.Method in go-ethereum.
type Method struct {
	method *ethabi.Method
}

// EncodeOutput encodes output args to data.
func (m *Method) EncodeOutput(args ...any) ([]byte, error) {
	return m.method.Outputs.Pack(args...)
}

// DecodeOutput decodes output data into v, a pointer to a struct whose fields are
// the camel-cased output names.
func (m *Method) DecodeOutput(output []byte, v any) error {
	return unpack(m.method.Outputs, output, v)
}

func unpack(args ethabi.Arguments, data []byte, v any) error {
	values, err := args.Unpack(data)
	if err != nil {
		return err
	}
	return args.Copy(v, values)
}
