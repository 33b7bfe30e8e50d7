// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package abi

import (
	"bytes"
	"errors"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
)

// MethodID is the 4 byte selector of a method.
type MethodID [4]byte

// Method see abi.Method in go-ethereum.
type Method struct {
	id     MethodID
	method *ethabi.Method
}

func (m *Method) ID() MethodID {
	return m.id
}

func (m *Method) Name() string {
	return m.method.Name
}

// Const returns if the method does not modify state.
func (m *Method) Const() bool {
	return m.method.IsConstant()
}

// EncodeInput encodes args prefixed with the method id.
func (m *Method) EncodeInput(args ...any) ([]byte, error) {
	data, err := m.method.Inputs.Pack(args...)
	if err != nil {
		return nil, err
	}
	return append(m.id[:], data...), nil
}

// DecodeInput decodes call data into v.
func (m *Method) DecodeInput(input []byte, v any) error {
	if !bytes.HasPrefix(input, m.id[:]) {
		return errors.New("input has incorrect prefix")
	}
	values, err := m.method.Inputs.Unpack(input[4:])
	if err != nil {
		return err
	}
	return m.method.Inputs.Copy(v, values)
}

func (m *Method) EncodeOutput(args ...any) ([]byte, error) {
	return m.method.Outputs.Pack(args...)
}

// DecodeOutput decodes return data into v.
func (m *Method) DecodeOutput(output []byte, v any) error {
	values, err := m.method.Outputs.Unpack(output)
	if err != nil {
		return err
	}
	return m.method.Outputs.Copy(v, values)
}

// ExtractMethodID extracts the method id from call data.
func ExtractMethodID(input []byte) (id MethodID, err error) {
	if len(input) < len(id) {
		err = errors.New("input data too short")
		return
	}
	copy(id[:], input)
	return
}
