// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"bytes"
	"errors"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// ABI holds the methods of a contract.
type ABI struct {
	nameToMethod map[string]*Method
	methods      map[MethodID]*Method
}

// New creates an ABI from its JSON definition.
func New(data []byte) (*ABI, error) {
	parsed, err := ethabi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	abi := &ABI{
		nameToMethod: make(map[string]*Method),
		methods:      make(map[MethodID]*Method),
	}
	for name := range parsed.Methods {
		ethMethod := parsed.Methods[name]
		var id MethodID
		copy(id[:], ethMethod.ID)
		method := &Method{id, &ethMethod}
		abi.methods[id] = method
		abi.nameToMethod[name] = method
	}
	return abi, nil
}

// MustNew is New that panics on a malformed definition.
func MustNew(data []byte) *ABI {
	abi, err := New(data)
	if err != nil {
		panic(err)
	}
	return abi
}

// MethodByInput finds the method for given call data.
func (a *ABI) MethodByInput(input []byte) (*Method, error) {
	id, err := ExtractMethodID(input)
	if err != nil {
		return nil, err
	}
	m, found := a.methods[id]
	if !found {
		return nil, errors.New("method not found")
	}
	return m, nil
}

func (a *ABI) MethodByName(name string) (*Method, bool) {
	m, found := a.nameToMethod[name]
	return m, found
}

// UnpackRevert decodes the reason of a reverted call.
func UnpackRevert(data []byte) (string, error) {
	return ethabi.UnpackRevert(data)
}
