// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakepool

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/farming/lvldb"
	"github.com/vechain/farming/thor"
)

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

type recordingSettler struct {
	settled []thor.Address
	fail    error
}

func (r *recordingSettler) SettleAll(addr thor.Address, apply func() error) error {
	if r.fail != nil {
		return r.fail
	}
	r.settled = append(r.settled, addr)
	return apply()
}

func newPool(t *testing.T) *Pool {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(thor.BytesToAddress([]byte("stakepool")), db)
}

func TestPool(t *testing.T) {
	pool := newPool(t)

	stake, burn, err := pool.Totals()
	require.NoError(t, err)
	assert.Equal(t, 0, stake.Sign())
	assert.Equal(t, 0, burn.Sign())

	shares, exists, err := pool.StakeShares(alice)
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, 0, shares.Sign())

	require.NoError(t, pool.Stake(alice, big.NewInt(60)))
	require.NoError(t, pool.Stake(bob, big.NewInt(40)))
	require.NoError(t, pool.Stake(alice, big.NewInt(10)))
	require.NoError(t, pool.Burn(alice, big.NewInt(5)))

	stake, burn, err = pool.Totals()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(110), stake)
	assert.Equal(t, big.NewInt(5), burn)

	shares, exists, err = pool.StakeShares(alice)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, big.NewInt(65), shares)

	// account shares sum to stake minus burn
	bobShares, _, err := pool.StakeShares(bob)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Sub(stake, burn), new(big.Int).Add(shares, bobShares))

	require.NoError(t, pool.Unstake(alice, big.NewInt(65)))
	shares, exists, err = pool.StakeShares(alice)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, 0, shares.Sign())

	assert.ErrorIs(t, pool.Unstake(bob, big.NewInt(41)), ErrInsufficientStake)
	assert.ErrorIs(t, pool.Unstake(thor.BytesToAddress([]byte("carol")), big.NewInt(1)), ErrAccountNotFound)
	assert.ErrorIs(t, pool.Stake(alice, big.NewInt(0)), ErrInvalidAmount)
	assert.ErrorIs(t, pool.Burn(alice, nil), ErrInvalidAmount)
	assert.ErrorIs(t, pool.Burn(bob, big.NewInt(41)), ErrInsufficientStake)
	assert.ErrorIs(t, pool.Burn(thor.BytesToAddress([]byte("carol")), big.NewInt(1)), ErrAccountNotFound)

	stake, burn, err = pool.Totals()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(45), stake)
	assert.Equal(t, big.NewInt(5), burn)
}

func TestPool_Settler(t *testing.T) {
	pool := newPool(t)
	settler := &recordingSettler{}
	pool.SetSettler(settler)

	require.NoError(t, pool.Stake(alice, big.NewInt(10)))
	require.NoError(t, pool.Burn(alice, big.NewInt(1)))
	assert.Equal(t, []thor.Address{alice, alice}, settler.settled)

	settler.fail = errors.New("settle failed")
	assert.ErrorIs(t, pool.Stake(alice, big.NewInt(10)), settler.fail)

	shares, _, err := pool.StakeShares(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(9), shares)
}
