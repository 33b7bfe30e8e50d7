// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/farming/thor"
)

// Raw stores a single RLP encoded value in one slot.
type Raw[V any] struct {
	context *Context
	pos     thor.Bytes32
}

func NewRaw[V any](context *Context, pos thor.Bytes32) *Raw[V] {
	return &Raw[V]{context: context, pos: pos}
}

// Get returns the stored value, or the zero value of V if the slot is empty.
func (r *Raw[V]) Get() (value V, err error) {
	_, err = r.context.decode(r.pos, &value)
	return
}

func (r *Raw[V]) Upsert(value V) error {
	return r.context.encode(r.pos, value)
}
