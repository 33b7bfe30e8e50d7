// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedStore(t *testing.T) {
	m := mem{"k": "v"}
	store, err := NewCachedStore(m, 8)
	require.NoError(t, err)

	got, err := store.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// served from cache once loaded
	m["k"] = "changed-behind-the-cache"
	got, err = store.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	// returned slices are copies
	got[0] = 'x'
	got, _ = store.Get([]byte("k"))
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, store.Put([]byte("k"), []byte("v2")))
	got, _ = store.Get([]byte("k"))
	assert.Equal(t, []byte("v2"), got)

	bulk := store.Bulk()
	require.NoError(t, bulk.Put([]byte("k"), []byte("v3")))
	require.NoError(t, bulk.Write())
	got, _ = store.Get([]byte("k"))
	assert.Equal(t, []byte("v3"), got)

	require.NoError(t, store.Delete([]byte("k")))
	_, err = store.Get([]byte("k"))
	assert.True(t, store.IsNotFound(err))

	has, err := store.Has([]byte("k"))
	assert.NoError(t, err)
	assert.False(t, has)
}
