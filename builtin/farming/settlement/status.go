// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

// Status is the position of a claim in its settlement workflow.
type Status uint8

const (
	StatusIdle Status = iota
	StatusAuthorizing
	StatusSettling
	StatusTransferPending
	StatusFinalized
	StatusCompensated
	StatusRejected
)

var statusNames = [...]string{
	StatusIdle:            "idle",
	StatusAuthorizing:     "authorizing",
	StatusSettling:        "settling",
	StatusTransferPending: "transferPending",
	StatusFinalized:       "finalized",
	StatusCompensated:     "compensated",
	StatusRejected:        "rejected",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "unknown"
}

// IsTerminal returns whether no further transition can happen.
func (s Status) IsTerminal() bool {
	return s == StatusFinalized || s == StatusCompensated || s == StatusRejected
}
