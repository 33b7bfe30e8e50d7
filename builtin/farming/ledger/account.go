// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"
	"math/big"
	"slices"

	"github.com/holiman/uint256"

	"github.com/vechain/farming/thor"
)

// Account holds per-farm rps checkpoints and pending, not yet withdrawn
// token balances of one staker.
type Account struct {
	checkpoints map[uint64]*uint256.Int
	amounts     map[thor.Address]*big.Int
}

func newAccount() *Account {
	return &Account{
		checkpoints: make(map[uint64]*uint256.Int),
		amounts:     make(map[thor.Address]*big.Int),
	}
}

// IsEmpty returns whether the account has nothing worth storing.
func (a *Account) IsEmpty() bool {
	return len(a.checkpoints) == 0 && len(a.amounts) == 0
}

// Checkpoint returns the rps last settled for farm, zero if never settled.
func (a *Account) Checkpoint(farmID uint64) *uint256.Int {
	if c, ok := a.checkpoints[farmID]; ok {
		return new(uint256.Int).Set(c)
	}
	return new(uint256.Int)
}

func (a *Account) SetCheckpoint(farmID uint64, rps *uint256.Int) {
	a.checkpoints[farmID] = new(uint256.Int).Set(rps)
}

// Pending returns the pending balance of token.
func (a *Account) Pending(token thor.Address) *big.Int {
	if v, ok := a.amounts[token]; ok {
		return new(big.Int).Set(v)
	}
	return new(big.Int)
}

// AddPending credits amount of token. Zero amounts leave no entry behind.
func (a *Account) AddPending(token thor.Address, amount *big.Int) {
	if amount == nil || amount.Sign() == 0 {
		return
	}
	a.amounts[token] = new(big.Int).Add(a.Pending(token), amount)
}

// Take removes and returns the pending balance of token.
func (a *Account) Take(token thor.Address) *big.Int {
	v := a.Pending(token)
	delete(a.amounts, token)
	return v
}

// Balances returns a copy of all pending balances.
func (a *Account) Balances() map[thor.Address]*big.Int {
	out := make(map[thor.Address]*big.Int, len(a.amounts))
	for token, v := range a.amounts {
		out[token] = new(big.Int).Set(v)
	}
	return out
}

type checkpointEntry struct {
	FarmID uint64
	RPS    *uint256.Int
}

type amountEntry struct {
	Token  thor.Address
	Amount *big.Int
}

// body is the storage form, with entries sorted so equal accounts encode
// to equal bytes.
type body struct {
	Checkpoints []checkpointEntry
	Amounts     []amountEntry
}

func (a *Account) body() *body {
	b := &body{
		Checkpoints: make([]checkpointEntry, 0, len(a.checkpoints)),
		Amounts:     make([]amountEntry, 0, len(a.amounts)),
	}
	for id, rps := range a.checkpoints {
		b.Checkpoints = append(b.Checkpoints, checkpointEntry{id, rps})
	}
	for token, v := range a.amounts {
		b.Amounts = append(b.Amounts, amountEntry{token, v})
	}
	slices.SortFunc(b.Checkpoints, func(x, y checkpointEntry) int {
		switch {
		case x.FarmID < y.FarmID:
			return -1
		case x.FarmID > y.FarmID:
			return 1
		}
		return 0
	})
	slices.SortFunc(b.Amounts, func(x, y amountEntry) int {
		return bytes.Compare(x.Token[:], y.Token[:])
	})
	return b
}

func (b *body) account() *Account {
	a := newAccount()
	if b == nil {
		return a
	}
	for _, e := range b.Checkpoints {
		a.checkpoints[e.FarmID] = e.RPS
	}
	for _, e := range b.Amounts {
		a.amounts[e.Token] = e.Amount
	}
	return a
}
