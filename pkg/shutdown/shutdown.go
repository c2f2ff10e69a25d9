// Package shutdown coordinates teardown callbacks so a terminating
// process drains everything concurrently under one deadline.
package shutdown

import (
	"context"
	"sync"

	"github.com/fydblock/fydadmin/pkg/logger"
)

// Handler is one teardown step. It should return when its resource is
// drained or when ctx expires, whichever comes first.
type Handler func(ctx context.Context)

type Manager struct {
	mu        sync.Mutex
	callbacks []Handler
}

func NewManager() *Manager {
	return &Manager{}
}

// OnShutdown registers a teardown callback.
func (m *Manager) OnShutdown(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, handler)
}

// Shutdown runs all callbacks concurrently and blocks until they finish
// or ctx expires. ctx should carry a timeout; a stuck callback must not
// hold the process open forever.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	callbacks := m.callbacks
	m.mu.Unlock()

	if len(callbacks) == 0 {
		return
	}
	logger.Infof("shutting down, %d teardown steps", len(callbacks))

	var wg sync.WaitGroup
	wg.Add(len(callbacks))
	for _, cb := range callbacks {
		go func(handler Handler) {
			defer wg.Done()
			handler(ctx)
		}(cb)
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		logger.Infof("teardown complete")
	case <-ctx.Done():
		logger.Warnf("teardown timed out: %v", ctx.Err())
	}
}
