// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"math/big"

	"github.com/vechain/farming/builtin/farming/distribution"
	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/thor"
)

var (
	ErrFarmNotFound       = reverts.NewNotFound("farm not found")
	ErrFarmTooEarly       = reverts.New("farm start date is in the past")
	ErrFarmDate           = reverts.New("farm end date must be after its start date")
	ErrFarmAmount         = reverts.New("farm amount must be positive and fit in 128 bits")
	ErrFarmAmountTooSmall = reverts.New("farm amount too small to pay every session")
)

// Farm is a funded, time boxed reward program. Only LastDistribution
// changes once the farm is created.
type Farm struct {
	Name             string
	TokenID          thor.Address // reward token
	Amount           *big.Int
	StartDate        uint64 // ns
	EndDate          uint64 // ns
	LastDistribution *distribution.Distribution
}

func (f *Farm) Schedule() distribution.Schedule {
	return distribution.Schedule{
		Amount:    f.Amount,
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
}

// Summary is the public view of a farm.
type Summary struct {
	Name      string
	TokenID   thor.Address
	Amount    *big.Int
	StartDate uint64
	EndDate   uint64
}

func (f *Farm) Summary() *Summary {
	return &Summary{
		Name:      f.Name,
		TokenID:   f.TokenID,
		Amount:    new(big.Int).Set(f.Amount),
		StartDate: f.StartDate,
		EndDate:   f.EndDate,
	}
}

// Validate checks a deposit against the time it is made.
func Validate(amount *big.Int, startDate, endDate, now uint64) error {
	if startDate < now {
		return ErrFarmTooEarly
	}
	if endDate <= startDate {
		return ErrFarmDate
	}
	if amount == nil || amount.Sign() <= 0 || amount.BitLen() > 128 {
		return ErrFarmAmount
	}
	sched := distribution.Schedule{Amount: amount, StartDate: startDate, EndDate: endDate}
	if sched.RewardPerSession().Sign() == 0 {
		return ErrFarmAmountTooSmall
	}
	return nil
}
