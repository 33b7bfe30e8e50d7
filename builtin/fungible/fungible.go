// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package fungible is a fungible token ledger. Accounts must register
// before they can receive tokens.
package fungible

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/thor"
)

var (
	slotBalances = thor.BytesToBytes32([]byte("balances"))
	slotSupply   = thor.BytesToBytes32([]byte("total-supply"))

	ErrNotRegistered       = reverts.NewNotFound("account not registered")
	ErrInsufficientBalance = reverts.New("insufficient balance")
	ErrInvalidAmount       = reverts.New("amount must not be negative")
)

// Token is one fungible token, stored under its own address.
type Token struct {
	address thor.Address
	store   kv.Store

	lock sync.RWMutex
}

func New(address thor.Address, store kv.Store) *Token {
	return &Token{address: address, store: store}
}

func (t *Token) Address() thor.Address {
	return t.address
}

type accounts struct {
	balances *solidity.Mapping[thor.Address, *big.Int]
	supply   *solidity.Raw[*big.Int]
}

func (t *Token) accounts(getPutter kv.GetPutter) *accounts {
	sctx := solidity.NewContext(t.address, getPutter)
	return &accounts{
		balances: solidity.NewMapping[thor.Address, *big.Int](sctx, slotBalances),
		supply:   solidity.NewRaw[*big.Int](sctx, slotSupply),
	}
}

func (t *Token) update(f func(a *accounts) error) error {
	t.lock.Lock()
	defer t.lock.Unlock()

	stage := kv.NewStage(t.store)
	if err := f(t.accounts(stage)); err != nil {
		return err
	}
	return errors.Wrap(stage.Commit(), "failed to commit token update")
}

// Register opens a zero balance for addr. Registering twice is a no-op.
func (t *Token) Register(addr thor.Address) error {
	return t.update(func(a *accounts) error {
		exists, err := a.balances.Exists(addr)
		if err != nil || exists {
			return err
		}
		return a.balances.Set(addr, new(big.Int))
	})
}

// BalanceOf returns the balance of addr and whether it is registered.
func (t *Token) BalanceOf(addr thor.Address) (*big.Int, bool, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	bal, found, err := t.accounts(t.store).balances.Lookup(addr)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get balance")
	}
	if bal == nil {
		bal = new(big.Int)
	}
	return bal, found, nil
}

func (t *Token) TotalSupply() (*big.Int, error) {
	t.lock.RLock()
	defer t.lock.RUnlock()

	supply, err := t.accounts(t.store).supply.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get supply")
	}
	if supply == nil {
		supply = new(big.Int)
	}
	return supply, nil
}

// Mint credits new tokens to a registered account.
func (t *Token) Mint(to thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return t.update(func(a *accounts) error {
		bal, found, err := a.balances.Lookup(to)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotRegistered
		}
		if err := a.balances.Set(to, new(big.Int).Add(bal, amount)); err != nil {
			return err
		}
		supply, err := a.supply.Get()
		if err != nil {
			return err
		}
		if supply == nil {
			supply = new(big.Int)
		}
		return a.supply.Upsert(new(big.Int).Add(supply, amount))
	})
}

// Transfer moves amount between registered accounts. A zero amount still
// requires both accounts to be registered.
func (t *Token) Transfer(from, to thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return ErrInvalidAmount
	}
	return t.update(func(a *accounts) error {
		fromBal, found, err := a.balances.Lookup(from)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotRegistered
		}
		toBal, found, err := a.balances.Lookup(to)
		if err != nil {
			return err
		}
		if !found {
			return ErrNotRegistered
		}
		if fromBal.Cmp(amount) < 0 {
			return ErrInsufficientBalance
		}
		if from == to {
			return nil
		}
		if err := a.balances.Set(from, new(big.Int).Sub(fromBal, amount)); err != nil {
			return err
		}
		return a.balances.Set(to, new(big.Int).Add(toBal, amount))
	})
}
