package connectivity

import (
	"context"
	"sync"
	"time"

	"github.com/NyashaEysenck/offline-wallet/internal/pkg/logger"
	"github.com/NyashaEysenck/offline-wallet/internal/pkg/models"
)

const (
	DefaultProbeInterval = 15 * time.Second
	DefaultProbeTimeout  = 3 * time.Second
)

// HealthChecker probes the remote ledger. Any error counts as offline.
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// StateStore persists the last observed status so the wallet resumes from
// it after a restart
type StateStore interface {
	SetLastConnStatus(ctx context.Context, status models.ConnStatus) error
}

// Listener receives edge-triggered status changes. Listeners run before
// the monitor records the new status, so a reconcile pass triggered by the
// offline-to-online edge completes against the previous recorded state.
type Listener func(ctx context.Context, status models.ConnStatus)

// Monitor polls the remote ledger health endpoint and tracks an
// online/offline state machine. Notifications fire only on state changes.
type Monitor struct {
	checker  HealthChecker
	store    StateStore
	interval time.Duration
	timeout  time.Duration
	logger   *logger.ZapLogger

	mu        sync.RWMutex
	status    models.ConnStatus
	listeners []Listener

	cancel context.CancelFunc
	done   chan struct{}
}

// NewMonitor creates a monitor starting from the given status (the
// persisted one, or online when none was recorded). A zero interval or
// timeout falls back to the defaults.
func NewMonitor(checker HealthChecker, store StateStore, initial models.ConnStatus, interval, timeout time.Duration, l *logger.ZapLogger) *Monitor {
	if !initial.Valid() {
		initial = models.ConnOnline
	}
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}

	return &Monitor{
		checker:  checker,
		store:    store,
		interval: interval,
		timeout:  timeout,
		logger:   l,
		status:   initial,
	}
}

// Subscribe registers an edge-triggered listener. Must be called before
// Start.
func (m *Monitor) Subscribe(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Status returns the last recorded connectivity status
func (m *Monitor) Status() models.ConnStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Start launches the probe loop. The first probe fires immediately so a
// wallet booting with stale persisted state corrects itself without
// waiting a full interval.
func (m *Monitor) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.loop(runCtx)

	m.logger.Info("Connectivity monitor started",
		logger.Duration("interval", m.interval),
		logger.Duration("timeout", m.timeout),
		logger.String("initial_status", string(m.Status())))
}

// Stop cancels the probe loop and waits for it to exit. Probe results
// still in flight are discarded.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
	m.logger.Info("Connectivity monitor stopped")
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.probe(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.probe(ctx)
		}
	}
}

func (m *Monitor) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	next := models.ConnOnline
	if err := m.checker.CheckHealth(probeCtx); err != nil {
		next = models.ConnOffline
	}

	// Discard results that raced with Stop
	if ctx.Err() != nil {
		return
	}

	m.transition(ctx, next)
}

func (m *Monitor) transition(ctx context.Context, next models.ConnStatus) {
	m.mu.Lock()
	prev := m.status
	if prev == next {
		m.mu.Unlock()
		return
	}
	listeners := make([]Listener, len(m.listeners))
	copy(listeners, m.listeners)
	m.mu.Unlock()

	m.logger.Info("Connectivity changed",
		logger.String("from", string(prev)),
		logger.String("to", string(next)))

	// Listeners observe the previous recorded status while they run
	for _, fn := range listeners {
		fn(ctx, next)
	}

	m.mu.Lock()
	m.status = next
	m.mu.Unlock()

	if m.store != nil {
		if err := m.store.SetLastConnStatus(ctx, next); err != nil {
			m.logger.Warn("Failed to persist connectivity status",
				logger.Err(err),
				logger.String("status", string(next)))
		}
	}
}
