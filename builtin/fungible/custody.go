// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package fungible

import (
	"context"
	"math/big"
	"sync"

	"github.com/pkg/errors"

	"github.com/vechain/farming/thor"
)

// Custody pays out tokens held by one holder, typically the farm contract.
type Custody struct {
	holder thor.Address

	lock   sync.RWMutex
	tokens map[thor.Address]*Token
}

func NewCustody(holder thor.Address, tokens ...*Token) *Custody {
	c := &Custody{holder: holder, tokens: make(map[thor.Address]*Token)}
	for _, t := range tokens {
		c.tokens[t.Address()] = t
	}
	return c
}

// Add makes token payable by the custody.
func (c *Custody) Add(token *Token) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.tokens[token.Address()] = token
}

func (c *Custody) Token(addr thor.Address) (*Token, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	t, ok := c.tokens[addr]
	return t, ok
}

// Transfer sends amount of token from the holder to beneficiary.
func (c *Custody) Transfer(ctx context.Context, beneficiary thor.Address, amount *big.Int, token thor.Address) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t, ok := c.Token(token)
	if !ok {
		return errors.Errorf("unknown token %v", token)
	}
	return t.Transfer(c.holder, beneficiary, amount)
}
