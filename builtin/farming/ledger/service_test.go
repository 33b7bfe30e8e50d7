// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/lvldb"
	"github.com/vechain/farming/thor"
)

var (
	alice  = thor.BytesToAddress([]byte("alice"))
	tokenA = thor.BytesToAddress([]byte("token-a"))
	tokenB = thor.BytesToAddress([]byte("token-b"))
)

func newService(t *testing.T) (*Service, *kv.Stage) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stage := kv.NewStage(db)
	return New(solidity.NewContext(thor.BytesToAddress([]byte("farming")), stage)), stage
}

func TestAccount(t *testing.T) {
	acc := newAccount()
	assert.True(t, acc.IsEmpty())
	assert.True(t, acc.Checkpoint(3).IsZero())
	assert.Equal(t, 0, acc.Pending(tokenA).Sign())

	acc.AddPending(tokenA, big.NewInt(0))
	assert.True(t, acc.IsEmpty())

	acc.AddPending(tokenA, big.NewInt(10))
	acc.AddPending(tokenA, big.NewInt(5))
	assert.Equal(t, big.NewInt(15), acc.Pending(tokenA))

	rps := uint256.NewInt(7)
	acc.SetCheckpoint(3, rps)
	rps.SetUint64(9)
	assert.Equal(t, uint256.NewInt(7), acc.Checkpoint(3))

	assert.Equal(t, big.NewInt(15), acc.Take(tokenA))
	assert.Equal(t, 0, acc.Pending(tokenA).Sign())
	assert.False(t, acc.IsEmpty())
}

func TestAccount_EncodingIsOrdered(t *testing.T) {
	a := newAccount()
	b := newAccount()
	for i := uint64(0); i < 8; i++ {
		a.SetCheckpoint(i, uint256.NewInt(i))
		b.SetCheckpoint(7-i, uint256.NewInt(7-i))
	}
	a.AddPending(tokenA, big.NewInt(1))
	a.AddPending(tokenB, big.NewInt(2))
	b.AddPending(tokenB, big.NewInt(2))
	b.AddPending(tokenA, big.NewInt(1))

	assert.Equal(t, a.body(), b.body())
}

func TestService(t *testing.T) {
	svc, stage := newService(t)

	acc, err := svc.Get(alice)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty())

	require.NoError(t, svc.Deposit(alice, tokenA, big.NewInt(100)))
	require.NoError(t, svc.Deposit(alice, tokenA, big.NewInt(50)))
	require.NoError(t, svc.Deposit(alice, tokenB, big.NewInt(7)))
	require.NoError(t, stage.Commit())

	pending, err := svc.Pending(alice, tokenA)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), pending)

	balances, err := svc.Balances(alice)
	require.NoError(t, err)
	assert.Equal(t, map[thor.Address]*big.Int{tokenA: big.NewInt(150), tokenB: big.NewInt(7)}, balances)

	drained, err := svc.Drain(alice, tokenA)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(150), drained)

	drained, err = svc.Drain(alice, tokenA)
	require.NoError(t, err)
	assert.Equal(t, 0, drained.Sign())

	balances, err = svc.Balances(alice)
	require.NoError(t, err)
	assert.Len(t, balances, 1)

	// drained everything, the slot goes away
	_, err = svc.Drain(alice, tokenB)
	require.NoError(t, err)
	exists, err := svc.accounts.Exists(alice)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestService_Checkpoints(t *testing.T) {
	svc, _ := newService(t)

	acc, err := svc.Get(alice)
	require.NoError(t, err)
	acc.SetCheckpoint(0, uint256.NewInt(3))
	acc.SetCheckpoint(2, uint256.NewInt(5))
	require.NoError(t, svc.Set(alice, acc))

	got, err := svc.Get(alice)
	require.NoError(t, err)
	assert.Equal(t, uint256.NewInt(3), got.Checkpoint(0))
	assert.True(t, got.Checkpoint(1).IsZero())
	assert.Equal(t, uint256.NewInt(5), got.Checkpoint(2))
}
