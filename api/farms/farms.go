// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/farming/api/utils"
	"github.com/vechain/farming/builtin/farming"
)

// DefaultLimit caps a farm listing when the request sets no limit.
const DefaultLimit = 100

type Farms struct {
	farming *farming.Farming
}

func New(farming *farming.Farming) *Farms {
	return &Farms{farming}
}

func (f *Farms) handleGetFarms(w http.ResponseWriter, req *http.Request) error {
	from, err := utils.Uint64Query(req, "from", 0)
	if err != nil {
		return err
	}
	limit, err := utils.Uint64Query(req, "limit", DefaultLimit)
	if err != nil {
		return err
	}
	if limit > DefaultLimit {
		return utils.BadRequest(errors.Errorf("limit: exceeds %d", DefaultLimit))
	}
	list, err := f.farming.GetFarms(from, limit)
	if err != nil {
		return err
	}
	farms := make([]*Farm, 0, len(list))
	for i, s := range list {
		farms = append(farms, convertFarm(from+uint64(i), s))
	}
	return utils.WriteJSON(w, farms)
}

func (f *Farms) handleGetFarm(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	summary, err := f.farming.GetFarm(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertFarm(id, summary))
}

func (f *Farms) handleGetDistribution(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	d, err := f.farming.GetFarmDistribution(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDistribution(d))
}

func (f *Farms) handleDistribute(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.Uint64Var(req, "id")
	if err != nil {
		return err
	}
	d, err := f.farming.Distribute(id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertDistribution(d))
}

func (f *Farms) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodGet).
		Name("farms_get_farms").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFarms))
	sub.Path("/{id}").
		Methods(http.MethodGet).
		Name("farms_get_farm").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetFarm))
	sub.Path("/{id}/distribution").
		Methods(http.MethodGet).
		Name("farms_get_distribution").
		HandlerFunc(utils.WrapHandlerFunc(f.handleGetDistribution))
	sub.Path("/{id}/distribute").
		Methods(http.MethodPost).
		Name("farms_distribute").
		HandlerFunc(utils.WrapHandlerFunc(f.handleDistribute))
}
