// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/farming/builtin/farming/distribution"
	"github.com/vechain/farming/builtin/farming/farms"
	"github.com/vechain/farming/thor"
)

type Farm struct {
	ID        uint64                `json:"id"`
	Name      string                `json:"name"`
	TokenID   thor.Address          `json:"tokenId"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	StartDate uint64                `json:"startDate"`
	EndDate   uint64                `json:"endDate"`
}

func convertFarm(id uint64, s *farms.Summary) *Farm {
	return &Farm{
		ID:        id,
		Name:      s.Name,
		TokenID:   s.TokenID,
		Amount:    (*math.HexOrDecimal256)(s.Amount),
		StartDate: s.StartDate,
		EndDate:   s.EndDate,
	}
}

type Distribution struct {
	Undistributed  *math.HexOrDecimal256 `json:"undistributed"`
	Unclaimed      *math.HexOrDecimal256 `json:"unclaimed"`
	RewardPerShare *math.HexOrDecimal256 `json:"rewardPerShare"`
	RewardRound    uint64                `json:"rewardRound"`
}

func convertDistribution(d *distribution.Distribution) *Distribution {
	return &Distribution{
		Undistributed:  (*math.HexOrDecimal256)(d.Undistributed),
		Unclaimed:      (*math.HexOrDecimal256)(d.Unclaimed),
		RewardPerShare: (*math.HexOrDecimal256)(d.RPS.ToBig()),
		RewardRound:    d.RewardRound,
	}
}
