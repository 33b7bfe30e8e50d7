// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlements

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/farming/api/utils"
	"github.com/vechain/farming/builtin/farming"
	"github.com/vechain/farming/builtin/farming/settlement"
	"github.com/vechain/farming/cache"
)

// Settlements serves claim records. Claims accepted through the API are
// tracked by handle until their record is written.
type Settlements struct {
	farming *farming.Farming
	handles *cache.LRU
}

func New(farming *farming.Farming, trackLimit int) (*Settlements, error) {
	handles, err := cache.NewLRU(trackLimit)
	if err != nil {
		return nil, errors.Wrap(err, "settlement tracker")
	}
	return &Settlements{farming, handles}, nil
}

// Track keeps h reachable by id until it is evicted.
func (s *Settlements) Track(h *settlement.Handle) {
	s.handles.Add(h.ID(), h)
}

func (s *Settlements) handleGetSettlement(w http.ResponseWriter, req *http.Request) error {
	id, err := settlement.ParseID(mux.Vars(req)["id"])
	if err != nil {
		return utils.BadRequest(errors.WithMessage(err, "id"))
	}
	rec, err := s.farming.Settlement(id)
	if err == nil {
		return utils.WriteJSON(w, convertRecord(rec))
	}
	if !errors.Is(err, settlement.ErrSettlementNotFound) {
		return err
	}
	if v, ok := s.handles.Get(id); ok {
		return utils.WriteJSON(w, convertHandle(v.(*settlement.Handle)))
	}
	return err
}

func (s *Settlements) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("settlements_get_settlement").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetSettlement))
}
