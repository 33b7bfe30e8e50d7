// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"bytes"
	"math/big"
	"sort"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/farming/thor"
)

type Unclaimed struct {
	Amount *math.HexOrDecimal256 `json:"amount"`
}

type Balance struct {
	TokenID thor.Address          `json:"tokenId"`
	Amount  *math.HexOrDecimal256 `json:"amount"`
}

// convertBalances orders balances by token address.
func convertBalances(m map[thor.Address]*big.Int) []*Balance {
	list := make([]*Balance, 0, len(m))
	for token, amount := range m {
		list = append(list, &Balance{TokenID: token, Amount: (*math.HexOrDecimal256)(amount)})
	}
	sort.Slice(list, func(i, j int) bool {
		return bytes.Compare(list[i].TokenID[:], list[j].TokenID[:]) < 0
	})
	return list
}

type ClaimRequest struct {
	TokenID   *thor.Address `json:"token"`
	Delegator *thor.Address `json:"delegator,omitempty"`
}

type ClaimResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
