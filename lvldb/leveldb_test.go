// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package lvldb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelDB(t *testing.T) {
	var (
		key        = []byte("123")
		value      = []byte("456")
		inValidKey = []byte("abc")
	)

	disk, err := New(filepath.Join(t.TempDir(), "farm.db"), Options{16, 16})
	require.NoError(t, err)
	defer disk.Close()

	mem, err := NewMem()
	require.NoError(t, err)
	defer mem.Close()

	for _, ldb := range []*LevelDB{disk, mem} {
		require.NoError(t, ldb.Put(key, value))

		got, err := ldb.Get(key)
		assert.NoError(t, err)
		assert.Equal(t, value, got)

		has, err := ldb.Has(key)
		assert.NoError(t, err)
		assert.True(t, has)

		has, err = ldb.Has(inValidKey)
		assert.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, ldb.Delete(key))
		_, err = ldb.Get(key)
		assert.True(t, ldb.IsNotFound(err))
	}
}

func TestLevelDBBulk(t *testing.T) {
	ldb, err := NewMem()
	require.NoError(t, err)
	defer ldb.Close()

	require.NoError(t, ldb.Put([]byte("gone"), []byte("x")))

	bulk := ldb.Bulk()
	require.NoError(t, bulk.Put([]byte("k1"), []byte("v1")))
	require.NoError(t, bulk.Delete([]byte("gone")))
	assert.Equal(t, 2, bulk.Len())

	// nothing visible before Write
	_, err = ldb.Get([]byte("k1"))
	assert.True(t, ldb.IsNotFound(err))

	require.NoError(t, bulk.Write())
	assert.Equal(t, 0, bulk.Len())

	got, err := ldb.Get([]byte("k1"))
	assert.NoError(t, err)
	assert.Equal(t, []byte("v1"), got)

	has, err := ldb.Has([]byte("gone"))
	assert.NoError(t, err)
	assert.False(t, has)

	// empty bulk is a no-op
	assert.NoError(t, ldb.Bulk().Write())
}
