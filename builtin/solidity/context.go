// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/farming/kv"
	"github.com/vechain/farming/thor"
)

// Context binds storage slots of one built-in contract to a kv store.
// Every key is prefixed with the contract address.
type Context struct {
	address thor.Address
	getter  kv.Getter
	putter  kv.Putter
}

func NewContext(address thor.Address, store kv.GetPutter) *Context {
	bucket := kv.Bucket(address.Bytes())
	return &Context{
		address: address,
		getter:  bucket.NewGetter(store),
		putter:  bucket.NewPutter(store),
	}
}

// Address returns the contract address.
func (c *Context) Address() thor.Address {
	return c.address
}

// decode reads the slot at pos into out. It reports false if the slot is empty.
func (c *Context) decode(pos thor.Bytes32, out any) (bool, error) {
	raw, err := c.getter.Get(pos.Bytes())
	if err != nil {
		if c.getter.IsNotFound(err) {
			return false, nil
		}
		return false, errors.Wrapf(err, "read slot %v", pos)
	}
	if err := rlp.DecodeBytes(raw, out); err != nil {
		return false, errors.Wrapf(err, "decode slot %v", pos)
	}
	return true, nil
}

func (c *Context) encode(pos thor.Bytes32, value any) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrapf(err, "encode slot %v", pos)
	}
	return c.putter.Put(pos.Bytes(), raw)
}

func (c *Context) clear(pos thor.Bytes32) error {
	return c.putter.Delete(pos.Bytes())
}

func (c *Context) exists(pos thor.Bytes32) (bool, error) {
	return c.getter.Has(pos.Bytes())
}
