// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farming

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/farming/distribution"
	"github.com/vechain/farming/builtin/farming/farms"
	"github.com/vechain/farming/builtin/farming/settlement"
	"github.com/vechain/farming/thor"
)

//
// Getters - no state change
//

// GetFarms lists farms with ids in [from, from+limit).
func (f *Farming) GetFarms(from, limit uint64) ([]*farms.Summary, error) {
	var list []*farms.Summary
	err := f.view(func(s *services) error {
		all, err := s.farms.List(from, limit)
		if err != nil {
			return err
		}
		list = make([]*farms.Summary, 0, len(all))
		for _, farm := range all {
			list = append(list, farm.Summary())
		}
		return nil
	})
	return list, err
}

func (f *Farming) GetFarm(farmID uint64) (*farms.Summary, error) {
	var summary *farms.Summary
	err := f.view(func(s *services) error {
		farm, err := s.farms.Get(farmID)
		if err != nil {
			return err
		}
		summary = farm.Summary()
		return nil
	})
	return summary, err
}

// GetFarmDistribution returns the last committed snapshot of a farm.
func (f *Farming) GetFarmDistribution(farmID uint64) (*distribution.Distribution, error) {
	var snapshot *distribution.Distribution
	err := f.view(func(s *services) error {
		farm, err := s.farms.Get(farmID)
		if err != nil {
			return err
		}
		snapshot = farm.LastDistribution.Copy()
		return nil
	})
	return snapshot, err
}

// GetUnclaimedReward returns what account could claim from farm now: the
// reward accrued since its checkpoint plus its pending balance of the farm
// token. Nothing is committed. The zero address has nothing to claim.
func (f *Farming) GetUnclaimedReward(account thor.Address, farmID uint64) (*big.Int, error) {
	if account.IsZero() {
		return new(big.Int), nil
	}
	var unclaimed *big.Int
	err := f.view(func(s *services) error {
		shares, exists, err := f.shares.StakeShares(account)
		if err != nil {
			return errors.Wrap(err, "failed to get stake shares")
		}
		if !exists {
			return ErrAccountNotFound
		}
		farm, err := s.farms.Get(farmID)
		if err != nil {
			return err
		}
		acc, err := s.ledger.Get(account)
		if err != nil {
			return err
		}
		eligible, err := f.eligibleStake()
		if err != nil {
			return err
		}
		if _, err := settleOne(acc, shares, farmID, farm, eligible, f.now()); err != nil {
			return err
		}
		unclaimed = acc.Pending(farm.TokenID)
		return nil
	})
	return unclaimed, err
}

// GetPendingBalances returns the settled, not yet withdrawn balances of
// account per token.
func (f *Farming) GetPendingBalances(account thor.Address) (map[thor.Address]*big.Int, error) {
	var balances map[thor.Address]*big.Int
	err := f.view(func(s *services) (err error) {
		balances, err = s.ledger.Balances(account)
		return
	})
	return balances, err
}

// Settlement returns the record of a claim.
func (f *Farming) Settlement(id settlement.ID) (*settlement.Record, error) {
	var rec *settlement.Record
	err := f.view(func(s *services) (err error) {
		rec, err = s.settlements.Get(id)
		return
	})
	return rec, err
}
