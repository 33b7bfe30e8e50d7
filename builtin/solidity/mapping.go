// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/vechain/farming/thor"
)

type Key interface {
	Bytes() []byte
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
type Mapping[K Key, V any] struct {
	context *Context
	basePos thor.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos thor.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) thor.Bytes32 {
	return thor.Blake2b(key.Bytes(), m.basePos.Bytes())
}

// Get returns the value for key, or the zero value of V if absent.
func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	_, err = m.context.decode(m.position(key), &value)
	return
}

// Lookup is Get that also reports whether the key was present.
func (m *Mapping[K, V]) Lookup(key K) (value V, found bool, err error) {
	found, err = m.context.decode(m.position(key), &value)
	return
}

func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	return m.context.exists(m.position(key))
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.encode(m.position(key), value)
}

func (m *Mapping[K, V]) Delete(key K) error {
	return m.context.clear(m.position(key))
}
