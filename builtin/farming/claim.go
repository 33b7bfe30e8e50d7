// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farming

import (
	"context"
	"fmt"
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/farming/settlement"
	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/thor"
)

var ErrAccountNotFound = reverts.NewNotFound("account not found")

// Claim withdraws the pending reward of token.
//
// Without a delegator the caller's own account is settled and drained
// before Claim returns; a refusal is returned as an error. With a
// delegator the ownership check and everything after it run in the
// background and a refusal is reported by the handle's Wait.
//
// The payout itself always completes in the background. If it fails the
// drained amount is credited back to the drained account.
func (f *Farming) Claim(ctx context.Context, caller, token thor.Address, delegator *thor.Address) (*settlement.Handle, error) {
	id := settlement.NewID()

	if delegator == nil {
		h := settlement.NewHandle(id, settlement.StatusSettling)
		rec, err := f.settleAndDrain(id, caller, caller, token, nil)
		if err != nil {
			return nil, err
		}
		f.pay(h, rec)
		return h, nil
	}

	account := *delegator
	h := settlement.NewHandle(id, settlement.StatusAuthorizing)
	bg := context.WithoutCancel(ctx)
	f.goes.Go(func() {
		err := recovered(func() error {
			return f.authorize(bg, caller, account)
		})
		if err != nil {
			f.reject(h, caller, token, account, err)
			return
		}
		h.Advance(settlement.StatusSettling, nil)
		rec, err := f.settleAndDrain(id, account, caller, token, &account)
		if err != nil {
			f.reject(h, caller, token, account, err)
			return
		}
		f.pay(h, rec)
	})
	return h, nil
}

// settleAndDrain settles account on every farm, drains its pending balance
// of token and records the claim as awaiting transfer, all in one commit.
func (f *Farming) settleAndDrain(id settlement.ID, account, beneficiary, token thor.Address, delegator *thor.Address) (*settlement.Record, error) {
	var rec *settlement.Record
	err := f.execute(func(s *services) error {
		_, exists, err := f.shares.StakeShares(account)
		if err != nil {
			return errors.Wrap(err, "failed to get stake shares")
		}
		if !exists {
			return ErrAccountNotFound
		}
		if err := f.settleAll(s, account); err != nil {
			return err
		}
		amount, err := s.ledger.Drain(account, token)
		if err != nil {
			return err
		}
		rec = &settlement.Record{
			ID:          id,
			Account:     account,
			Beneficiary: beneficiary,
			TokenID:     token,
			Amount:      amount,
			Status:      settlement.StatusTransferPending,
			Delegator:   delegator,
		}
		if err := s.settlements.Put(rec); err != nil {
			return err
		}
		f.inFlight[id] = struct{}{}
		return nil
	})
	if err != nil {
		f.lock.Lock()
		delete(f.inFlight, id)
		f.lock.Unlock()
		return nil, err
	}
	logger.Debug("claim settled", "id", id, "account", account, "token", token, "amount", rec.Amount)
	return rec, nil
}

// reject records a refused delegated claim. Ledger and farms are untouched.
func (f *Farming) reject(h *settlement.Handle, caller, token, delegator thor.Address, cause error) {
	rec := &settlement.Record{
		ID:          h.ID(),
		Account:     delegator,
		Beneficiary: caller,
		TokenID:     token,
		Amount:      new(big.Int),
		Status:      settlement.StatusRejected,
		Delegator:   &delegator,
		Reason:      cause.Error(),
	}
	if err := f.execute(func(s *services) error {
		return s.settlements.Put(rec)
	}); err != nil {
		logger.Error("failed to record rejected claim", "id", h.ID(), "err", err)
	}
	logger.Debug("claim rejected", "id", h.ID(), "caller", caller, "delegator", delegator, "err", cause)
	metricClaimOutcomes().AddWithLabel(1, map[string]string{"status": settlement.StatusRejected.String()})
	h.Resolve(settlement.StatusRejected, cause)
}

// pay starts the transfer of a drained amount.
func (f *Farming) pay(h *settlement.Handle, rec *settlement.Record) {
	h.Advance(settlement.StatusTransferPending, rec.Amount)
	metricTransfersInFlight().Add(1)

	f.goes.Go(func() {
		defer metricTransfersInFlight().Add(-1)

		ctx := context.Background()
		if f.transferTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, f.transferTimeout)
			defer cancel()
		}
		err := recovered(func() error {
			return f.transferrer.Transfer(ctx, rec.Beneficiary, new(big.Int).Set(rec.Amount), rec.TokenID)
		})
		f.resolve(h, rec, err)
	})
}

// resolve finalizes the claim, or credits the drained amount back to the
// drained account when the transfer failed.
func (f *Farming) resolve(h *settlement.Handle, pending *settlement.Record, transferErr error) {
	rec := *pending
	rec.Status = settlement.StatusFinalized
	if transferErr != nil {
		rec.Status = settlement.StatusCompensated
		rec.Reason = transferErr.Error()
	}

	err := f.execute(func(s *services) error {
		delete(f.inFlight, rec.ID)
		if transferErr != nil {
			if err := s.ledger.Deposit(rec.Account, rec.TokenID, rec.Amount); err != nil {
				return err
			}
		}
		return s.settlements.Put(&rec)
	})
	if err != nil {
		logger.Error("failed to resolve claim", "id", rec.ID, "account", rec.Account, "amount", rec.Amount, "transferErr", transferErr, "err", err)
		h.Resolve(settlement.StatusTransferPending, err)
		return
	}

	if transferErr != nil {
		logger.Warn("transfer failed, claim compensated", "id", rec.ID, "account", rec.Account, "amount", rec.Amount, "err", transferErr)
	} else {
		logger.Info("claim paid", "id", rec.ID, "beneficiary", rec.Beneficiary, "token", rec.TokenID, "amount", rec.Amount)
	}
	metricClaimOutcomes().AddWithLabel(1, map[string]string{"status": rec.Status.String()})
	h.Resolve(rec.Status, nil)
}

// recovered runs fn, turning a panic into an error.
func recovered(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn()
}
