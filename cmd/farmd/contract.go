// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/vechain/farming/builtin/farming"
	"github.com/vechain/farming/builtin/fungible"
	"github.com/vechain/farming/builtin/stakepool"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/thor"
)

type contractOptions struct {
	Address         thor.Address
	Tokens          []thor.Address
	Owners          farming.OwnerResolver
	Transferrer     farming.Transferrer // defaults to the token custody
	OwnerTimeout    time.Duration
	TransferTimeout time.Duration
	Clock           clockwork.Clock
}

// contract is the farm contract wired to its share pool and token custody.
type contract struct {
	store   kv.Store
	farming *farming.Farming
	pool    *stakepool.Pool
	custody *fungible.Custody
	clock   clockwork.Clock
}

func newContract(store kv.Store, opts contractOptions) (*contract, error) {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	pool := stakepool.New(poolAddress, store)
	custody := fungible.NewCustody(opts.Address)
	for _, addr := range opts.Tokens {
		custody.Add(fungible.New(addr, store))
	}

	var transferrer farming.Transferrer = custody
	if opts.Transferrer != nil {
		transferrer = opts.Transferrer
	}
	cfg := farming.Config{
		Address:         opts.Address,
		Store:           store,
		Shares:          pool,
		Transferrer:     transferrer,
		Owners:          opts.Owners,
		Clock:           clock,
		OwnerTimeout:    opts.OwnerTimeout,
		TransferTimeout: opts.TransferTimeout,
	}
	f, err := farming.New(cfg)
	if err != nil {
		return nil, err
	}
	pool.SetSettler(f)

	return &contract{
		store:   store,
		farming: f,
		pool:    pool,
		custody: custody,
		clock:   clock,
	}, nil
}

// token returns the custodied token at addr, adding it if unknown.
func (c *contract) token(addr thor.Address) *fungible.Token {
	if t, ok := c.custody.Token(addr); ok {
		return t
	}
	t := fungible.New(addr, c.store)
	c.custody.Add(t)
	return t
}

func (c *contract) now() time.Time {
	return c.clock.Now()
}
