// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farming

import (
	"github.com/vechain/farming/metrics"
)

var (
	metricDeposits          = metrics.LazyLoadCounter("farming_deposits_count")
	metricClaimOutcomes     = metrics.LazyLoadCounterVec("farming_claim_outcomes_count", []string{"status"})
	metricTransfersInFlight = metrics.LazyLoadGauge("farming_transfers_in_flight")
)
