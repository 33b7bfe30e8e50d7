// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package testfarm assembles a farm contract over in-memory storage, a
// fake clock, a share pool and a custodied reward token.
package testfarm

import (
	"math/big"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"

	"github.com/vechain/farming/builtin/farming"
	"github.com/vechain/farming/builtin/fungible"
	"github.com/vechain/farming/builtin/stakepool"
	"github.com/vechain/farming/lvldb"
	"github.com/vechain/farming/thor"
)

// Session is the length of one reward session.
const Session = time.Second

var (
	ContractAddr = thor.BytesToAddress([]byte("farming"))
	PoolAddr     = thor.BytesToAddress([]byte("stakepool"))
	TokenAddr    = thor.BytesToAddress([]byte("reward-token"))

	Alice = thor.BytesToAddress([]byte("alice"))
	Bob   = thor.BytesToAddress([]byte("bob"))
)

// Custody is the reward supply minted to the contract.
var Custody = big.NewInt(1_000_000)

type Env struct {
	Farming *farming.Farming
	Pool    *stakepool.Pool
	Token   *fungible.Token
	Clock   *clockwork.FakeClock
}

// New returns a ready environment. Alice and Bob are registered with the
// token. Everything is closed when the test ends.
func New(t testing.TB, opts ...func(*farming.Config)) *Env {
	db, err := lvldb.NewMem()
	require.NoError(t, err)

	clock := clockwork.NewFakeClockAt(time.Unix(1_700_000_000, 0))
	pool := stakepool.New(PoolAddr, db)
	token := fungible.New(TokenAddr, db)

	cfg := farming.Config{
		Address:     ContractAddr,
		Store:       db,
		Shares:      pool,
		Transferrer: fungible.NewCustody(ContractAddr, token),
		Clock:       clock,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	f, err := farming.New(cfg)
	require.NoError(t, err)
	pool.SetSettler(f)

	t.Cleanup(func() {
		f.Close()
		db.Close()
	})

	require.NoError(t, token.Register(ContractAddr))
	require.NoError(t, token.Mint(ContractAddr, Custody))
	require.NoError(t, token.Register(Alice))
	require.NoError(t, token.Register(Bob))

	return &Env{Farming: f, Pool: pool, Token: token, Clock: clock}
}

func (e *Env) Now() uint64 {
	return uint64(e.Clock.Now().UnixNano())
}

// Advance moves the clock forward by n sessions.
func (e *Env) Advance(n int) {
	e.Clock.Advance(time.Duration(n) * Session)
}

// Deposit funds a farm of TokenAddr starting now and lasting n sessions.
func (e *Env) Deposit(t testing.TB, amount int64, n int) uint64 {
	id, err := e.Farming.Deposit("farm", TokenAddr, big.NewInt(amount), e.Now(), e.Now()+uint64(n)*uint64(Session))
	require.NoError(t, err)
	return id
}

func (e *Env) Stake(t testing.TB, addr thor.Address, amount int64) {
	require.NoError(t, e.Pool.Stake(addr, big.NewInt(amount)))
}
