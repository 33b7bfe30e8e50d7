// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakepool keeps stake shares per account and the pool wide
// stake and burn totals.
package stakepool

import (
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/log"
	"github.com/vechain/farming/thor"
)

var (
	slotShares     = thor.BytesToBytes32([]byte("stake-shares"))
	slotTotalStake = thor.BytesToBytes32([]byte("total-stake-shares"))
	slotTotalBurn  = thor.BytesToBytes32([]byte("total-burn-shares"))

	ErrInvalidAmount     = reverts.New("share amount must be positive")
	ErrInsufficientStake = reverts.New("insufficient stake shares")
	ErrAccountNotFound   = reverts.NewNotFound("account not found")

	logger = log.WithContext("pkg", "stakepool")
)

// Settler is told before an account's shares change. apply performs the
// change and runs while the settler still holds its own execution lock, so
// no reward accrues between the settle and the change.
type Settler interface {
	SettleAll(addr thor.Address, apply func() error) error
}

type Pool struct {
	store   kv.Store
	address thor.Address
	settler Settler

	lock sync.RWMutex
}

// New creates a pool storing its slots under address.
func New(address thor.Address, store kv.Store) *Pool {
	return &Pool{store: store, address: address}
}

// SetSettler installs the hook run before share changes.
func (p *Pool) SetSettler(s Settler) {
	p.settler = s
}

type state struct {
	shares *solidity.Mapping[thor.Address, *big.Int]
	stake  *solidity.Raw[*big.Int]
	burn   *solidity.Raw[*big.Int]
}

func (p *Pool) state(getPutter kv.GetPutter) *state {
	sctx := solidity.NewContext(p.address, getPutter)
	return &state{
		shares: solidity.NewMapping[thor.Address, *big.Int](sctx, slotShares),
		stake:  solidity.NewRaw[*big.Int](sctx, slotTotalStake),
		burn:   solidity.NewRaw[*big.Int](sctx, slotTotalBurn),
	}
}

// Totals returns the total stake shares and total burn shares.
func (p *Pool) Totals() (stake, burn *big.Int, err error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	s := p.state(p.store)
	if stake, err = s.stake.Get(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to get total stake")
	}
	if burn, err = s.burn.Get(); err != nil {
		return nil, nil, errors.Wrap(err, "failed to get total burn")
	}
	return orZero(stake), orZero(burn), nil
}

// StakeShares returns the shares of addr and whether addr ever staked.
func (p *Pool) StakeShares(addr thor.Address) (*big.Int, bool, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	shares, found, err := p.state(p.store).shares.Lookup(addr)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to get stake shares")
	}
	return orZero(shares), found, nil
}

// Stake adds shares to addr.
func (p *Pool) Stake(addr thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return p.change(addr, func(s *state) error {
		shares, err := s.shares.Get(addr)
		if err != nil {
			return err
		}
		if err := s.shares.Set(addr, new(big.Int).Add(orZero(shares), amount)); err != nil {
			return err
		}
		return addTotal(s.stake, amount)
	})
}

// Unstake removes shares from addr. The account keeps existing with zero
// shares.
func (p *Pool) Unstake(addr thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return p.change(addr, func(s *state) error {
		if err := debit(s, addr, amount); err != nil {
			return err
		}
		return addTotal(s.stake, new(big.Int).Neg(amount))
	})
}

// Burn takes shares from addr and adds them to the burn total. Burnt shares
// stay in the stake total but belong to no account, so the account shares
// always sum to stake minus burn.
func (p *Pool) Burn(addr thor.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	return p.change(addr, func(s *state) error {
		if err := debit(s, addr, amount); err != nil {
			return err
		}
		return addTotal(s.burn, amount)
	})
}

// change settles addr with the settler, then applies f in one committed
// stage.
func (p *Pool) change(addr thor.Address, f func(s *state) error) error {
	apply := func() error {
		p.lock.Lock()
		defer p.lock.Unlock()

		stage := kv.NewStage(p.store)
		if err := f(p.state(stage)); err != nil {
			return err
		}
		if err := stage.Commit(); err != nil {
			return errors.Wrap(err, "failed to commit stake change")
		}
		logger.Debug("shares changed", "account", addr)
		return nil
	}
	if p.settler == nil {
		return apply()
	}
	return p.settler.SettleAll(addr, apply)
}

func debit(s *state, addr thor.Address, amount *big.Int) error {
	shares, found, err := s.shares.Lookup(addr)
	if err != nil {
		return err
	}
	if !found {
		return ErrAccountNotFound
	}
	if shares.Cmp(amount) < 0 {
		return ErrInsufficientStake
	}
	return s.shares.Set(addr, new(big.Int).Sub(shares, amount))
}

func addTotal(total *solidity.Raw[*big.Int], delta *big.Int) error {
	v, err := total.Get()
	if err != nil {
		return err
	}
	return total.Upsert(new(big.Int).Add(orZero(v), delta))
}

func orZero(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return v
}
