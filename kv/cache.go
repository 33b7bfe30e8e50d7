// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"

	"github.com/vechain/farming/cache"
)

type cachedStore struct {
	src   Store
	cache *cache.LRU
}

// NewCachedStore returns a store which keeps recently read values in a LRU
// cache. All writes must go through the returned store, and reads racing a
// bulk write may observe either side of it.
func NewCachedStore(src Store, size int) (Store, error) {
	c, err := cache.NewLRU(size)
	if err != nil {
		return nil, err
	}
	return &cachedStore{src: src, cache: c}, nil
}

func (s *cachedStore) Get(key []byte) ([]byte, error) {
	v, err := s.cache.GetOrLoad(string(key), func(any) (any, error) {
		return s.src.Get(key)
	})
	if err != nil {
		return nil, err
	}
	return bytes.Clone(v.([]byte)), nil
}

func (s *cachedStore) Has(key []byte) (bool, error) {
	if s.cache.Contains(string(key)) {
		return true, nil
	}
	return s.src.Has(key)
}

func (s *cachedStore) IsNotFound(err error) bool {
	return s.src.IsNotFound(err)
}

func (s *cachedStore) Put(key, val []byte) error {
	if err := s.src.Put(key, val); err != nil {
		return err
	}
	s.cache.Add(string(key), bytes.Clone(val))
	return nil
}

func (s *cachedStore) Delete(key []byte) error {
	if err := s.src.Delete(key); err != nil {
		return err
	}
	s.cache.Remove(string(key))
	return nil
}

func (s *cachedStore) Bulk() Bulk {
	return &cachedBulk{store: s, bulk: s.src.Bulk()}
}

type cachedBulk struct {
	store   *cachedStore
	bulk    Bulk
	touched []string
}

func (b *cachedBulk) Put(key, val []byte) error {
	b.touched = append(b.touched, string(key))
	return b.bulk.Put(key, val)
}

func (b *cachedBulk) Delete(key []byte) error {
	b.touched = append(b.touched, string(key))
	return b.bulk.Delete(key)
}

func (b *cachedBulk) Len() int {
	return b.bulk.Len()
}

func (b *cachedBulk) Write() error {
	err := b.bulk.Write()
	for _, k := range b.touched {
		b.store.cache.Remove(k)
	}
	b.touched = nil
	return err
}
