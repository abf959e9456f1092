// Package lifecycle sequences graceful shutdown of the server's backing
// pieces (http server, monitor, redis, postgres) in reverse registration
// order.
package lifecycle

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// StopFunc tears one component down. It must respect ctx's deadline.
type StopFunc func(ctx context.Context) error

type registration struct {
	name string
	stop StopFunc
}

// Manager collects stop functions during wiring and runs them, newest
// first, when the process is told to exit.
type Manager struct {
	timeout time.Duration
	logger  *zap.Logger

	mu   sync.Mutex
	regs []registration
}

func New(timeout time.Duration, logger *zap.Logger) *Manager {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		timeout: timeout,
		logger:  logger.Named("lifecycle"),
	}
}

// Register records a component's stop function. Components stop in the
// reverse of registration order, so dependents registered later go first.
func (m *Manager) Register(name string, stop StopFunc) {
	if stop == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs = append(m.regs, registration{name: name, stop: stop})
}

// Shutdown stops every registered component under the configured timeout.
// A failing component is logged and skipped; the rest still stop, and the
// joined errors come back to the caller.
func (m *Manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	m.mu.Lock()
	regs := make([]registration, len(m.regs))
	copy(regs, m.regs)
	m.regs = nil
	m.mu.Unlock()

	var errs error
	for i := len(regs) - 1; i >= 0; i-- {
		reg := regs[i]
		if err := reg.stop(ctx); err != nil {
			m.logger.Error("component failed to stop", zap.String("component", reg.name), zap.Error(err))
			errs = errors.Join(errs, err)
			continue
		}
		m.logger.Info("component stopped", zap.String("component", reg.name))
	}
	return errs
}

// Listen watches for SIGTERM/SIGINT in the background and fires cancel on
// the first one.
func (m *Manager) Listen(cancel context.CancelFunc) {
	if cancel == nil {
		return
	}
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigCh)
		sig := <-sigCh
		m.logger.Info("termination signal received", zap.String("signal", sig.String()))
		cancel()
	}()
}
