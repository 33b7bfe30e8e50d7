// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/farming/api/utils"
	"github.com/vechain/farming/builtin/farming"
	"github.com/vechain/farming/builtin/farming/settlement"
)

// Tracker keeps accepted claims queryable before their record exists.
type Tracker interface {
	Track(h *settlement.Handle)
}

type Accounts struct {
	farming *farming.Farming
	tracker Tracker
}

func New(farming *farming.Farming, tracker Tracker) *Accounts {
	return &Accounts{
		farming,
		tracker,
	}
}

func (a *Accounts) handleGetUnclaimed(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	farmID, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	amount, err := a.farming.GetUnclaimedReward(addr, farmID)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Unclaimed{Amount: (*math.HexOrDecimal256)(amount)})
}

func (a *Accounts) handleGetBalances(w http.ResponseWriter, req *http.Request) error {
	addr, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	balances, err := a.farming.GetPendingBalances(addr)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertBalances(balances))
}

// handleClaim starts a claim on behalf of the caller at {address}. The
// payout completes in the background; its outcome is served under
// /settlements/{id}.
//
// The caller is taken from the path and is not authenticated. Rewards are
// only ever paid to that address, so the endpoint must sit behind whatever
// gateway authenticates callers; anyone reaching it can trigger a payout
// or a delegated claim attempt for any account.
func (a *Accounts) handleClaim(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.AddressVar(req, "address")
	if err != nil {
		return err
	}
	var body ClaimRequest
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.TokenID == nil {
		return utils.BadRequest(errors.New("body: token is required"))
	}
	h, err := a.farming.Claim(req.Context(), caller, *body.TokenID, body.Delegator)
	if err != nil {
		return err
	}
	if a.tracker != nil {
		a.tracker.Track(h)
	}
	return utils.WriteJSONStatus(w, http.StatusAccepted, &ClaimResult{
		ID:     h.ID().String(),
		Status: h.Status().String(),
	})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{address}/farms/{id}/unclaimed").
		Methods(http.MethodGet).
		Name("accounts_get_unclaimed").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetUnclaimed))
	sub.Path("/{address}/balances").
		Methods(http.MethodGet).
		Name("accounts_get_balances").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetBalances))
	sub.Path("/{address}/claim").
		Methods(http.MethodPost).
		Name("accounts_claim").
		HandlerFunc(utils.WrapHandlerFunc(a.handleClaim))
}
