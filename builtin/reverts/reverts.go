// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts holds the error type built-in contracts use to reject a
// call. A revert aborts the call without touching state; any other error is
// a system failure.
package reverts

import (
	"errors"
)

// Kind classifies a revert for callers that map it to a response code.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNotFound
	KindUnauthorized
)

type ErrRevert struct {
	message string
	kind    Kind
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func NewNotFound(message string) *ErrRevert {
	return &ErrRevert{message: message, kind: KindNotFound}
}

func NewUnauthorized(message string) *ErrRevert {
	return &ErrRevert{message: message, kind: KindUnauthorized}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Kind() Kind {
	return e.kind
}

func IsRevertErr(err any) bool {
	_, ok := As(err)
	return ok
}

// As returns the revert wrapped in err, if any.
func As(err any) (*ErrRevert, bool) {
	if err == nil {
		return nil, false
	}
	e, ok := err.(error)
	if !ok {
		return nil, false
	}
	var ve *ErrRevert
	if errors.As(e, &ve) {
		return ve, true
	}
	return nil, false
}
