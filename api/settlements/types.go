// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlements

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/farming/builtin/farming/settlement"
	"github.com/vechain/farming/thor"
)

// Settlement is a claim as seen by clients. Account, beneficiary and token
// are omitted while the claim is still being authorized.
type Settlement struct {
	ID          string                `json:"id"`
	Status      string                `json:"status"`
	Account     *thor.Address         `json:"account,omitempty"`
	Beneficiary *thor.Address         `json:"beneficiary,omitempty"`
	TokenID     *thor.Address         `json:"tokenId,omitempty"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	Delegator   *thor.Address         `json:"delegator,omitempty"`
	Reason      string                `json:"reason,omitempty"`
}

func convertRecord(rec *settlement.Record) *Settlement {
	return &Settlement{
		ID:          rec.ID.String(),
		Status:      rec.Status.String(),
		Account:     &rec.Account,
		Beneficiary: &rec.Beneficiary,
		TokenID:     &rec.TokenID,
		Amount:      (*math.HexOrDecimal256)(rec.Amount),
		Delegator:   rec.Delegator,
		Reason:      rec.Reason,
	}
}

func convertHandle(h *settlement.Handle) *Settlement {
	return &Settlement{
		ID:     h.ID().String(),
		Status: h.Status().String(),
		Amount: (*math.HexOrDecimal256)(h.Amount()),
	}
}
