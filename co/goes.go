// Copyright (c) 2025 The Soar developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package co holds goroutine lifecycle helpers.
package co

import (
	"sync"
	"time"
)

// Goes tracks a group of background goroutines.
type Goes struct {
	wg sync.WaitGroup
}

// Go runs f in a new goroutine tracked by g.
func (g *Goes) Go(f func()) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		f()
	}()
}

// Wait blocks until every goroutine started by g returns.
func (g *Goes) Wait() {
	g.wg.Wait()
}

// Done returns a channel closed once every goroutine started by g returns.
func (g *Goes) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		g.wg.Wait()
	}()
	return done
}

// WaitTimeout is Wait bounded by d. It reports whether all goroutines returned in time.
func (g *Goes) WaitTimeout(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-g.Done():
		return true
	case <-timer.C:
		return false
	}
}
