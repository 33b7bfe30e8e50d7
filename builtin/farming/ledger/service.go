// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/thor"
)

var slotAccounts = thor.BytesToBytes32([]byte("accounts"))

type Service struct {
	accounts *solidity.Mapping[thor.Address, *body]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		accounts: solidity.NewMapping[thor.Address, *body](sctx, slotAccounts),
	}
}

// Get returns the ledger account of addr, empty if it was never written.
func (s *Service) Get(addr thor.Address) (*Account, error) {
	b, err := s.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	return b.account(), nil
}

// Set stores the account. Empty accounts are removed.
func (s *Service) Set(addr thor.Address, acc *Account) error {
	if acc.IsEmpty() {
		if err := s.accounts.Delete(addr); err != nil {
			return errors.Wrap(err, "failed to delete account")
		}
		return nil
	}
	if err := s.accounts.Set(addr, acc.body()); err != nil {
		return errors.Wrap(err, "failed to set account")
	}
	return nil
}

// Deposit adds amount to the pending balance of token.
func (s *Service) Deposit(addr, token thor.Address, amount *big.Int) error {
	acc, err := s.Get(addr)
	if err != nil {
		return err
	}
	acc.AddPending(token, amount)
	return s.Set(addr, acc)
}

// Drain removes the pending balance of token and returns it.
func (s *Service) Drain(addr, token thor.Address) (*big.Int, error) {
	acc, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	amount := acc.Take(token)
	if err := s.Set(addr, acc); err != nil {
		return nil, err
	}
	return amount, nil
}

func (s *Service) Pending(addr, token thor.Address) (*big.Int, error) {
	acc, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	return acc.Pending(token), nil
}

func (s *Service) Balances(addr thor.Address) (map[thor.Address]*big.Int, error) {
	acc, err := s.Get(addr)
	if err != nil {
		return nil, err
	}
	return acc.Balances(), nil
}
