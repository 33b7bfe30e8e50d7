// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/farming/builtin/solidity"
	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/lvldb"
	"github.com/vechain/farming/thor"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "transferPending", StatusTransferPending.String())
	assert.Equal(t, "unknown", Status(99).String())

	for _, s := range []Status{StatusIdle, StatusAuthorizing, StatusSettling, StatusTransferPending} {
		assert.False(t, s.IsTerminal(), s.String())
	}
	for _, s := range []Status{StatusFinalized, StatusCompensated, StatusRejected} {
		assert.True(t, s.IsTerminal(), s.String())
	}
}

func TestID(t *testing.T) {
	id := NewID()
	assert.NotEqual(t, ID{}, id)
	assert.NotEqual(t, id, NewID())

	parsed, err := ParseID(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = ParseID("not-a-uuid")
	assert.Error(t, err)
}

func TestService(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()
	svc := New(solidity.NewContext(thor.BytesToAddress([]byte("farming")), kv.NewStage(db)))

	_, err = svc.Get(NewID())
	assert.ErrorIs(t, err, ErrSettlementNotFound)

	delegator := thor.BytesToAddress([]byte("pool"))
	rec := &Record{
		ID:          NewID(),
		Account:     delegator,
		Beneficiary: thor.BytesToAddress([]byte("owner")),
		TokenID:     thor.BytesToAddress([]byte("token")),
		Amount:      big.NewInt(150),
		Status:      StatusTransferPending,
		Delegator:   &delegator,
	}
	require.NoError(t, svc.Put(rec))

	got, err := svc.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	pending, err := svc.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, rec.ID, pending[0].ID)

	rec.Status = StatusCompensated
	rec.Reason = "receiver not registered"
	require.NoError(t, svc.Put(rec))
	got, err = svc.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusCompensated, got.Status)
	assert.Equal(t, "receiver not registered", got.Reason)

	pending, err = svc.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)

	plain := &Record{ID: NewID(), Status: StatusRejected}
	require.NoError(t, svc.Put(plain))
	got, err = svc.Get(plain.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Delegator)
	assert.Equal(t, 0, got.Amount.Sign())
}

func TestHandle(t *testing.T) {
	h := NewHandle(NewID(), StatusSettling)
	assert.Equal(t, StatusSettling, h.Status())

	h.Advance(StatusTransferPending, big.NewInt(42))
	assert.Equal(t, StatusTransferPending, h.Status())
	assert.Equal(t, big.NewInt(42), h.Amount())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	status, err := h.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusTransferPending, status)

	go h.Resolve(StatusFinalized, nil)
	<-h.Done()
	status, err = h.Wait(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, StatusFinalized, status)

	h.Resolve(StatusCompensated, nil)
	h.Advance(StatusSettling, big.NewInt(1))
	assert.Equal(t, StatusFinalized, h.Status())
	assert.Equal(t, big.NewInt(42), h.Amount())
}

func TestHandle_Rejected(t *testing.T) {
	denied := errors.New("denied")
	h := NewHandle(NewID(), StatusAuthorizing)
	h.Resolve(StatusRejected, denied)

	status, err := h.Wait(context.Background())
	assert.Equal(t, StatusRejected, status)
	assert.ErrorIs(t, err, denied)
}
