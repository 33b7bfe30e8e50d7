// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thorclient

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/farming/abi"
	"github.com/vechain/farming/thor"
)

// OwnerResolver reads the owner of a delegate contract by inspecting a
// call to its owner method. The return data is handed back undecoded.
type OwnerResolver struct {
	client   *Client
	method   *abi.Method
	revision string
}

func NewOwnerResolver(client *Client, method *abi.Method) *OwnerResolver {
	return &OwnerResolver{client: client, method: method}
}

// WithRevision pins lookups to a block revision such as "finalized".
func (r *OwnerResolver) WithRevision(revision string) *OwnerResolver {
	return &OwnerResolver{client: r.client, method: r.method, revision: revision}
}

func (r *OwnerResolver) Owner(ctx context.Context, delegate thor.Address) ([]byte, error) {
	input, err := r.method.EncodeInput()
	if err != nil {
		return nil, err
	}
	to := delegate
	results, err := r.client.InspectClauses(ctx, &BatchCallData{
		Clauses: []*Clause{{
			To:    &to,
			Value: new(math.HexOrDecimal256),
			Data:  hexutil.Encode(input),
		}},
	}, r.revision)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("expected 1 call result, got %d", len(results))
	}
	res := results[0]
	output, err := hexutil.Decode(res.Data)
	if err != nil {
		return nil, fmt.Errorf("invalid call output - %w", err)
	}
	if res.Reverted {
		if reason, err := abi.UnpackRevert(output); err == nil {
			return nil, fmt.Errorf("%s reverted: %s", r.method.Name(), reason)
		}
		return nil, fmt.Errorf("%s reverted: %s", r.method.Name(), res.VMError)
	}
	return output, nil
}
