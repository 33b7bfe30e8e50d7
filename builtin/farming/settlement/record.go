// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"math/big"
	"slices"

	"github.com/pborman/uuid"
	"github.com/pkg/errors"

	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/thor"
)

var (
	slotRecords = thor.BytesToBytes32([]byte("settlements"))
	slotPending = thor.BytesToBytes32([]byte("settlements-pending"))

	ErrSettlementNotFound = reverts.NewNotFound("settlement not found")
)

// ID identifies one claim.
type ID [16]byte

func NewID() ID {
	var id ID
	copy(id[:], uuid.NewRandom())
	return id
}

// ParseID parses the canonical uuid form.
func ParseID(s string) (ID, error) {
	var id ID
	u := uuid.Parse(s)
	if u == nil {
		return id, errors.Errorf("invalid settlement id %q", s)
	}
	copy(id[:], u)
	return id, nil
}

func (id ID) Bytes() []byte {
	return id[:]
}

func (id ID) String() string {
	return uuid.UUID(id[:]).String()
}

// Record is the persisted fact of one claim.
type Record struct {
	ID          ID
	Account     thor.Address // ledger account drained
	Beneficiary thor.Address // receiver of the transfer
	TokenID     thor.Address
	Amount      *big.Int
	Status      Status
	Delegator   *thor.Address `rlp:"nil"`
	Reason      string        // failure text, if any
}

// Service persists settlement records and indexes the ones awaiting
// transfer.
type Service struct {
	records *solidity.Mapping[ID, *Record]
	pending *solidity.Raw[[]ID]
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		records: solidity.NewMapping[ID, *Record](sctx, slotRecords),
		pending: solidity.NewRaw[[]ID](sctx, slotPending),
	}
}

func (s *Service) Get(id ID) (*Record, error) {
	rec, found, err := s.records.Lookup(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get settlement")
	}
	if !found {
		return nil, ErrSettlementNotFound
	}
	return rec, nil
}

// Put stores rec, replacing any record with the same id.
func (s *Service) Put(rec *Record) error {
	if rec.Amount == nil {
		rec.Amount = new(big.Int)
	}
	if err := s.records.Set(rec.ID, rec); err != nil {
		return errors.Wrap(err, "failed to set settlement")
	}
	return s.index(rec.ID, rec.Status == StatusTransferPending)
}

// Pending returns the records awaiting transfer, oldest first.
func (s *Service) Pending() ([]*Record, error) {
	ids, err := s.pending.Get()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pending settlements")
	}
	recs := make([]*Record, 0, len(ids))
	for _, id := range ids {
		rec, err := s.Get(id)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (s *Service) index(id ID, pending bool) error {
	ids, err := s.pending.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get pending settlements")
	}
	i := slices.Index(ids, id)
	switch {
	case pending && i < 0:
		ids = append(ids, id)
	case !pending && i >= 0:
		ids = slices.Delete(ids, i, i+1)
	default:
		return nil
	}
	if err := s.pending.Upsert(ids); err != nil {
		return errors.Wrap(err, "failed to set pending settlements")
	}
	return nil
}
