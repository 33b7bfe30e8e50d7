// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package settlement

import (
	"context"
	"math/big"
	"sync"
)

// Handle tracks an in-flight claim. It is resolved exactly once.
type Handle struct {
	id   ID
	done chan struct{}

	lock     sync.Mutex
	status   Status
	amount   *big.Int
	err      error
	resolved bool
}

func NewHandle(id ID, status Status) *Handle {
	return &Handle{
		id:     id,
		done:   make(chan struct{}),
		status: status,
		amount: new(big.Int),
	}
}

func (h *Handle) ID() ID {
	return h.id
}

// Done is closed once the claim reaches a terminal status.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) Status() Status {
	h.lock.Lock()
	defer h.lock.Unlock()
	return h.status
}

// Amount returns the drained amount, zero before the settle step.
func (h *Handle) Amount() *big.Int {
	h.lock.Lock()
	defer h.lock.Unlock()
	return new(big.Int).Set(h.amount)
}

// Wait blocks until the claim is resolved or ctx is done. The error is set
// for claims refused before any state changed, and for outcomes that could
// not be recorded. A failed transfer is not an error.
func (h *Handle) Wait(ctx context.Context) (Status, error) {
	select {
	case <-h.done:
		h.lock.Lock()
		defer h.lock.Unlock()
		return h.status, h.err
	case <-ctx.Done():
		return h.Status(), ctx.Err()
	}
}

// Advance moves an unresolved handle to a non-terminal status.
func (h *Handle) Advance(status Status, amount *big.Int) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.resolved {
		return
	}
	h.status = status
	if amount != nil {
		h.amount = new(big.Int).Set(amount)
	}
}

// Resolve sets the terminal status and wakes waiters. Later calls are
// ignored.
func (h *Handle) Resolve(status Status, err error) {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.resolved {
		return
	}
	h.resolved = true
	h.status = status
	h.err = err
	close(h.done)
}
