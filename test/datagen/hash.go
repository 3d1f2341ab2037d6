// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/soar-labs/soar/soar"
)

func RandomHash() soar.Bytes32 {
	var b32 soar.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandomAddress() soar.Address {
	var addr soar.Address

	rand.Read(addr[:])
	return addr
}
