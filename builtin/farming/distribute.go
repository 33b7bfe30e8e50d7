// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farming

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/farming/distribution"
	"github.com/vechain/farming/builtin/farming/farms"
	"github.com/vechain/farming/builtin/farming/ledger"
	"github.com/vechain/farming/thor"
)

// eligibleStake is total stake minus burnt shares, floored at zero.
func (f *Farming) eligibleStake() (*big.Int, error) {
	stake, burn, err := f.shares.Totals()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake totals")
	}
	eligible := new(big.Int).Sub(stake, burn)
	if eligible.Sign() < 0 {
		eligible.SetInt64(0)
	}
	return eligible, nil
}

// distribute advances farm to now. It reports whether the farm changed;
// an unstarted farm never does.
func distribute(farm *farms.Farm, eligible *big.Int, now uint64) (started, changed bool, err error) {
	next, ok, err := distribution.Calculate(farm.Schedule(), farm.LastDistribution, eligible, now)
	if err != nil {
		return false, false, err
	}
	if !ok {
		return false, false, nil
	}
	if next.RewardRound == farm.LastDistribution.RewardRound {
		return true, false, nil
	}
	farm.LastDistribution = next
	return true, true, nil
}

// settleOne credits acc with what shares earned on farm since its last
// checkpoint, and moves the checkpoint.
func settleOne(acc *ledger.Account, shares *big.Int, farmID uint64, farm *farms.Farm, eligible *big.Int, now uint64) (changed bool, err error) {
	started, changed, err := distribute(farm, eligible, now)
	if err != nil {
		return false, err
	}
	if !started {
		acc.SetCheckpoint(farmID, new(uint256.Int))
		return false, nil
	}
	rps := farm.LastDistribution.RPS
	delta, err := distribution.RewardDelta(shares, rps, acc.Checkpoint(farmID))
	if err != nil {
		return false, err
	}
	acc.SetCheckpoint(farmID, rps)
	acc.AddPending(farm.TokenID, delta)
	return changed, nil
}

// settleAll settles addr against every farm. Farms that advanced are
// written back. With a zero address the farms are only advanced.
func (f *Farming) settleAll(s *services, addr thor.Address) error {
	eligible, err := f.eligibleStake()
	if err != nil {
		return err
	}
	n, err := s.farms.Len()
	if err != nil {
		return err
	}

	var (
		acc    *ledger.Account
		shares *big.Int
	)
	if !addr.IsZero() {
		if acc, err = s.ledger.Get(addr); err != nil {
			return err
		}
		if shares, _, err = f.shares.StakeShares(addr); err != nil {
			return errors.Wrap(err, "failed to get stake shares")
		}
	}

	now := f.now()
	for id := uint64(0); id < n; id++ {
		farm, err := s.farms.Get(id)
		if err != nil {
			return err
		}
		var changed bool
		if acc != nil {
			changed, err = settleOne(acc, shares, id, farm, eligible, now)
		} else {
			_, changed, err = distribute(farm, eligible, now)
		}
		if err != nil {
			return errors.Wrapf(err, "farm %d", id)
		}
		if changed {
			if err := s.farms.Update(id, farm); err != nil {
				return err
			}
		}
	}
	if acc != nil {
		return s.ledger.Set(addr, acc)
	}
	return nil
}

// Distribute advances one farm to now without settling any account.
func (f *Farming) Distribute(farmID uint64) (*distribution.Distribution, error) {
	var snapshot *distribution.Distribution
	err := f.execute(func(s *services) error {
		farm, err := s.farms.Get(farmID)
		if err != nil {
			return err
		}
		eligible, err := f.eligibleStake()
		if err != nil {
			return err
		}
		_, changed, err := distribute(farm, eligible, f.now())
		if err != nil {
			return err
		}
		if changed {
			if err := s.farms.Update(farmID, farm); err != nil {
				return err
			}
		}
		snapshot = farm.LastDistribution.Copy()
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("farm distributed", "id", farmID, "round", snapshot.RewardRound, "unclaimed", snapshot.Unclaimed)
	return snapshot, nil
}

// SettleAll brings addr up to date on every farm. It must run before the
// staking engine changes the shares of addr: apply, when set, performs that
// change and runs before the execution lock is released. A zero addr only
// advances the farms, for changes of the totals alone.
func (f *Farming) SettleAll(addr thor.Address, apply func() error) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	if err := f.executeLocked(func(s *services) error {
		return f.settleAll(s, addr)
	}); err != nil {
		return err
	}
	if apply != nil {
		return apply()
	}
	return nil
}
