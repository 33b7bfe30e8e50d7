// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farming

import (
	"github.com/vechain/farming/builtin/farming/settlement"
	"github.com/vechain/farming/builtin/reverts"
)

var (
	ErrSettlementInFlight   = reverts.New("settlement transfer still running")
	ErrSettlementNotPending = reverts.New("settlement is not awaiting transfer")
)

// OrphanedSettlements returns claims that were drained but whose transfer
// outcome was never recorded, such as after a crash mid transfer. Claims
// with a transfer running in this process are left out.
func (f *Farming) OrphanedSettlements() ([]*settlement.Record, error) {
	var orphans []*settlement.Record
	err := f.view(func(s *services) error {
		pending, err := s.settlements.Pending()
		if err != nil {
			return err
		}
		for _, rec := range pending {
			if _, ok := f.inFlight[rec.ID]; !ok {
				orphans = append(orphans, rec)
			}
		}
		return nil
	})
	return orphans, err
}

// Compensate credits an orphaned claim back to the drained account and
// closes it as compensated. The operator must first make sure the transfer
// never reached the beneficiary.
func (f *Farming) Compensate(id settlement.ID, reason string) (*settlement.Record, error) {
	var rec *settlement.Record
	err := f.execute(func(s *services) (err error) {
		if _, ok := f.inFlight[id]; ok {
			return ErrSettlementInFlight
		}
		if rec, err = s.settlements.Get(id); err != nil {
			return err
		}
		if rec.Status != settlement.StatusTransferPending {
			return ErrSettlementNotPending
		}
		if err := s.ledger.Deposit(rec.Account, rec.TokenID, rec.Amount); err != nil {
			return err
		}
		rec.Status = settlement.StatusCompensated
		rec.Reason = reason
		return s.settlements.Put(rec)
	})
	if err != nil {
		return nil, err
	}
	logger.Warn("orphaned claim compensated", "id", id, "account", rec.Account, "token", rec.TokenID, "amount", rec.Amount, "reason", reason)
	metricClaimOutcomes().AddWithLabel(1, map[string]string{"status": rec.Status.String()})
	return rec, nil
}
