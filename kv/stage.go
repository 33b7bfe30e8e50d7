// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"bytes"
	"errors"
)

var errStagedNotFound = errors.New("kv: staged key deleted")

type staged struct {
	val     []byte
	deleted bool
}

// Stage buffers writes on top of a store. Reads see the buffered writes.
// Nothing reaches the store until Commit, which applies every write in one
// atomic bulk.
type Stage struct {
	src   Store
	dirty map[string]staged
	keys  []string
}

// NewStage creates an empty stage over src.
func NewStage(src Store) *Stage {
	return &Stage{src: src, dirty: make(map[string]staged)}
}

func (s *Stage) Get(key []byte) ([]byte, error) {
	if e, ok := s.dirty[string(key)]; ok {
		if e.deleted {
			return nil, errStagedNotFound
		}
		return bytes.Clone(e.val), nil
	}
	return s.src.Get(key)
}

func (s *Stage) Has(key []byte) (bool, error) {
	if e, ok := s.dirty[string(key)]; ok {
		return !e.deleted, nil
	}
	return s.src.Has(key)
}

func (s *Stage) IsNotFound(err error) bool {
	return errors.Is(err, errStagedNotFound) || s.src.IsNotFound(err)
}

func (s *Stage) Put(key, val []byte) error {
	s.set(string(key), staged{val: bytes.Clone(val)})
	return nil
}

func (s *Stage) Delete(key []byte) error {
	s.set(string(key), staged{deleted: true})
	return nil
}

func (s *Stage) set(k string, e staged) {
	if _, ok := s.dirty[k]; !ok {
		s.keys = append(s.keys, k)
	}
	s.dirty[k] = e
}

// Len returns the number of distinct keys written.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Commit flushes buffered writes to the store and resets the stage.
func (s *Stage) Commit() error {
	if len(s.keys) == 0 {
		return nil
	}
	bulk := s.src.Bulk()
	for _, k := range s.keys {
		e := s.dirty[k]
		var err error
		if e.deleted {
			err = bulk.Delete([]byte(k))
		} else {
			err = bulk.Put([]byte(k), e.val)
		}
		if err != nil {
			return err
		}
	}
	if err := bulk.Write(); err != nil {
		return err
	}
	s.Discard()
	return nil
}

// Discard drops buffered writes.
func (s *Stage) Discard() {
	s.dirty = make(map[string]staged)
	s.keys = nil
}
