// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package abi wraps the go-ethereum contract ABI codec for the few methods soar encodes.
package abi

import (
	"bytes"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI holds information about methods of a contract.
type ABI struct {
	nameToMethod map[string]*Method
}

// New creates an ABI instance from its JSON description.
func New(data []byte) (*ABI, error) {
	parsed, err := ethabi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	abi := &ABI{
		nameToMethod: make(map[string]*Method, len(parsed.Methods)),
	}
	for name := range parsed.Methods {
		ethMethod := parsed.Methods[name]
		abi.nameToMethod[name] = &Method{&ethMethod}
	}
	return abi, nil
}

// MustNew is New, panicking on malformed JSON. Meant for package-level ABIs.
func MustNew(data []byte) *ABI {
	abi, err := New(data)
	if err != nil {
		panic(err)
	}
	return abi
}

// MethodByName finds the method for the given method name.
func (a *ABI) MethodByName(name string) (*Method, bool) {
	m, found := a.nameToMethod[name]
	return m, found
}
