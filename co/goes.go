// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package co

import (
	"sync"
	"sync/atomic"
)

// Goes runs and tracks the life-cycle of go routines.
type Goes struct {
	wg      sync.WaitGroup
	running atomic.Int64
}

// Go runs f in a go routine.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	g.running.Add(1)
	go func() {
		defer g.wg.Done()
		defer g.running.Add(-1)
		f()
	}()
}

// Running returns the number of go routines not yet returned.
func (g *Goes) Running() int {
	return int(g.running.Load())
}

// Wait waits for all go routines started by Go.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done returns a channel closed once all go routines have returned.
func (g *Goes) Done() chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}
