// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farms

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/farming/distribution"
	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/thor"
)

var slotFarms = thor.BytesToBytes32([]byte("farms"))

// Service is the append-only farm registry. Farm ids are array indexes.
type Service struct {
	farms *solidity.Array[*Farm]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		farms: solidity.NewArray[*Farm](sctx, slotFarms),
	}
}

// Add validates and stores a new farm, returning its id.
func (s *Service) Add(name string, token thor.Address, amount *big.Int, startDate, endDate, now uint64) (uint64, error) {
	if err := Validate(amount, startDate, endDate, now); err != nil {
		return 0, err
	}
	farm := &Farm{
		Name:             name,
		TokenID:          token,
		Amount:           new(big.Int).Set(amount),
		StartDate:        startDate,
		EndDate:          endDate,
		LastDistribution: distribution.New(amount),
	}
	id, err := s.farms.Push(farm)
	if err != nil {
		return 0, errors.Wrap(err, "failed to add farm")
	}
	return id, nil
}

func (s *Service) Get(id uint64) (*Farm, error) {
	farm, err := s.farms.Get(id)
	if err != nil {
		if errors.Is(err, solidity.ErrOutOfRange) {
			return nil, ErrFarmNotFound
		}
		return nil, errors.Wrap(err, "failed to get farm")
	}
	return farm, nil
}

func (s *Service) Len() (uint64, error) {
	n, err := s.farms.Len()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get farm count")
	}
	return n, nil
}

// List returns farms with ids in [from, min(from+limit, len)).
func (s *Service) List(from, limit uint64) ([]*Farm, error) {
	n, err := s.Len()
	if err != nil {
		return nil, err
	}
	if from >= n {
		return []*Farm{}, nil
	}
	to := n
	if limit < n-from {
		to = from + limit
	}
	list := make([]*Farm, 0, to-from)
	for id := from; id < to; id++ {
		farm, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		list = append(list, farm)
	}
	return list, nil
}

// Update stores a new distribution snapshot for an existing farm.
func (s *Service) Update(id uint64, farm *Farm) error {
	if err := s.farms.Set(id, farm); err != nil {
		if errors.Is(err, solidity.ErrOutOfRange) {
			return ErrFarmNotFound
		}
		return errors.Wrap(err, "failed to update farm")
	}
	return nil
}
