// Package shutdown provides graceful shutdown handling.
package shutdown

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

// Hook is a teardown step run when a shutdown signal arrives. Hooks
// receive a context bounded by the handler's grace period.
type Hook func(context.Context) error

// Handler waits for SIGINT/SIGTERM and runs registered hooks, most
// recently registered first, so resources tear down in reverse
// construction order.
type Handler struct {
	grace time.Duration

	mu    sync.Mutex
	hooks []Hook

	done chan struct{}
}

// NewHandler creates a shutdown handler with the given grace period.
func NewHandler(grace time.Duration) *Handler {
	return &Handler{
		grace: grace,
		done:  make(chan struct{}),
	}
}

// OnShutdown registers a shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(hook Hook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook)
}

// Wait blocks until a shutdown signal arrives, then runs every hook
// within the grace period. All hooks run even when earlier ones fail;
// their errors are joined.
func (h *Handler) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	signal.Stop(sigCh)

	ctx, cancel := context.WithTimeout(context.Background(), h.grace)
	defer cancel()

	h.mu.Lock()
	hooks := append([]Hook(nil), h.hooks...)
	h.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}

	close(h.done)
	return errors.Join(errs...)
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
