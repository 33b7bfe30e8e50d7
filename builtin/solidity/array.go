// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"errors"

	"github.com/vechain/farming/thor"
)

// ErrOutOfRange is returned when an array index is not below the length.
var ErrOutOfRange = errors.New("array index out of range")

// Array is an append-only dynamic array. The length lives at the base slot,
// element i at blake2b(base, i).
type Array[V any] struct {
	context *Context
	basePos thor.Bytes32
	length  *Raw[uint64]
}

func NewArray[V any](context *Context, pos thor.Bytes32) *Array[V] {
	return &Array[V]{
		context: context,
		basePos: pos,
		length:  NewRaw[uint64](context, pos),
	}
}

func (a *Array[V]) position(index uint64) thor.Bytes32 {
	return thor.Blake2b(a.basePos.Bytes(), thor.Uint64ToBytes32(index).Bytes())
}

func (a *Array[V]) Len() (uint64, error) {
	return a.length.Get()
}

func (a *Array[V]) Get(index uint64) (value V, err error) {
	n, err := a.Len()
	if err != nil {
		return value, err
	}
	if index >= n {
		return value, ErrOutOfRange
	}
	_, err = a.context.decode(a.position(index), &value)
	return
}

// Set overwrites an existing element.
func (a *Array[V]) Set(index uint64, value V) error {
	n, err := a.Len()
	if err != nil {
		return err
	}
	if index >= n {
		return ErrOutOfRange
	}
	return a.context.encode(a.position(index), value)
}

// Push appends value and returns its index.
func (a *Array[V]) Push(value V) (uint64, error) {
	n, err := a.Len()
	if err != nil {
		return 0, err
	}
	if err := a.context.encode(a.position(n), value); err != nil {
		return 0, err
	}
	if err := a.length.Upsert(n + 1); err != nil {
		return 0, err
	}
	return n, nil
}
