// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"io"
)

const compensateReason = "compensated by operator after restart"

// reconcile prints the orphaned claims and, with compensate set, credits
// each back to its drained account. Only safe while no daemon holds the
// store, which leveldb's file lock enforces.
func (c *contract) reconcile(w io.Writer, compensate bool) error {
	orphans, err := c.farming.OrphanedSettlements()
	if err != nil {
		return err
	}
	if len(orphans) == 0 {
		fmt.Fprintln(w, "no orphaned claims")
		return nil
	}
	for _, rec := range orphans {
		fmt.Fprintf(w, "claim %v account %v beneficiary %v token %v amount %v\n",
			rec.ID, rec.Account, rec.Beneficiary, rec.TokenID, rec.Amount)
		if !compensate {
			continue
		}
		if _, err := c.farming.Compensate(rec.ID, compensateReason); err != nil {
			return fmt.Errorf("compensate %v: %w", rec.ID, err)
		}
		fmt.Fprintf(w, "claim %v compensated\n", rec.ID)
	}
	return nil
}
