// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotABI = `[
	{"type":"function","name":"snapshot","stateMutability":"view",
	 "inputs":[],
	 "outputs":[{"name":"owner","type":"address"},{"name":"balance","type":"uint256"},{"name":"head","type":"bytes32"}]}
]`

func TestMethodByName(t *testing.T) {
	abi, err := New([]byte(snapshotABI))
	require.NoError(t, err)

	m, ok := abi.MethodByName("snapshot")
	require.True(t, ok)
	require.NotNil(t, m)

	_, ok = abi.MethodByName("approve")
	assert.False(t, ok)
}

func TestEncodeDecodeOutput(t *testing.T) {
	abi := MustNew([]byte(snapshotABI))
	m, _ := abi.MethodByName("snapshot")

	owner := common.HexToAddress("0x1111111111111111111111111111111111111111")
	head := [32]byte{31: 0xff}
	data, err := m.EncodeOutput(owner, big.NewInt(42), head)
	require.NoError(t, err)
	require.Len(t, data, 96)
	assert.Equal(t, owner.Bytes(), data[12:32])
	assert.Equal(t, byte(42), data[63])
	assert.Equal(t, head[:], data[64:96])

	var out struct {
		Owner   common.Address
		Balance *big.Int
		Head    [32]byte
	}
	require.NoError(t, m.DecodeOutput(data, &out))
	assert.Equal(t, owner, out.Owner)
	assert.Equal(t, int64(42), out.Balance.Int64())
	assert.Equal(t, head, out.Head)

	assert.Error(t, m.DecodeOutput(data[:64], &out))
	_, err = m.EncodeOutput(owner, big.NewInt(42))
	assert.Error(t, err, "argument count mismatch")
}

func TestNewInvalid(t *testing.T) {
	_, err := New([]byte(`{`))
	assert.Error(t, err)

	unknownType := []byte(`[{"type":"function","name":"f","inputs":[{"name":"x","type":"notatype"}]}]`)
	_, err = New(unknownType)
	assert.Error(t, err)
	assert.Panics(t, func() { MustNew(unknownType) })
}
