// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlake2b(t *testing.T) {
	a, b := []byte("farms"), Uint64ToBytes32(7).Bytes()

	joined := append(append([]byte{}, a...), b...)
	assert.Equal(t, Blake2b(joined), Blake2b(a, b))
	assert.NotEqual(t, Blake2b(a, b), Blake2b(b, a))
}

func TestBytes32(t *testing.T) {
	b := Uint64ToBytes32(0x0102)
	assert.Equal(t, "0x0000000000000000000000000000000000000000000000000000000000000102", b.String())

	parsed, err := ParseBytes32(b.String())
	assert.NoError(t, err)
	assert.Equal(t, b, parsed)

	_, err = ParseBytes32("0x0102")
	assert.Error(t, err)

	assert.True(t, Bytes32{}.IsZero())
	assert.Equal(t, b, BytesToBytes32([]byte{1, 2}))
}
