// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package farming

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"

	"github.com/vechain/farming/abi"
	"github.com/vechain/farming/builtin/reverts"
	"github.com/vechain/farming/thor"
)

// GetOwnerMethod is queried on a delegate contract to find who may claim
// for it.
const GetOwnerMethod = "getOwner"

var (
	ErrUnauthorized   = reverts.NewUnauthorized("caller is not the owner of the delegator")
	ErrMalformedOwner = reverts.NewUnauthorized("malformed owner returned by delegator")

	delegateABI = abi.MustNew([]byte(`[{
		"type": "function",
		"name": "getOwner",
		"stateMutability": "view",
		"inputs": [],
		"outputs": [{"name": "", "type": "address"}]
	}]`))
)

// OwnerMethod returns the getOwner() method of delegate contracts.
func OwnerMethod() *abi.Method {
	m, _ := delegateABI.MethodByName(GetOwnerMethod)
	return m
}

// decodeOwner parses the raw return data of getOwner(). Anything other
// than one canonically encoded address is rejected.
func decodeOwner(output []byte) (thor.Address, error) {
	if len(output) != 32 {
		return thor.Address{}, ErrMalformedOwner
	}
	for _, b := range output[:12] {
		if b != 0 {
			return thor.Address{}, ErrMalformedOwner
		}
	}
	var owner common.Address
	if err := OwnerMethod().DecodeOutput(output, &owner); err != nil {
		return thor.Address{}, ErrMalformedOwner
	}
	return thor.Address(owner), nil
}

// authorize checks that caller owns delegator. The lookup runs without the
// execution lock.
func (f *Farming) authorize(ctx context.Context, caller, delegator thor.Address) error {
	if f.owners == nil {
		return ErrUnauthorized
	}
	if f.ownerTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.ownerTimeout)
		defer cancel()
	}
	output, err := f.owners.Owner(ctx, delegator)
	if err != nil {
		return errors.Wrap(err, "owner lookup")
	}
	owner, err := decodeOwner(output)
	if err != nil {
		return err
	}
	if owner != caller {
		return ErrUnauthorized
	}
	return nil
}
