package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// PingFunc reports whether a dependency is reachable.
type PingFunc func(ctx context.Context) error

// Check is one named dependency probe.
type Check struct {
	Name    string
	Ping    PingFunc
	Timeout time.Duration
}

// Monitor probes the storage backends in the background and caches the result.
type Monitor struct {
	checks []Check

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(checks []Check, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		checks:   checks,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	m.Refresh()
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

// IsOnline reports whether every dependency answered the last probe.
func (m *Monitor) IsOnline() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Refresh()
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs every check once and stores the outcome.
func (m *Monitor) Refresh() {
	services := make(map[string]bool, len(m.checks))
	for _, check := range m.checks {
		services[check.Name] = m.probe(check)
	}

	m.mu.Lock()
	m.status = Status{Services: services, LastCheck: time.Now().UTC()}
	m.mu.Unlock()
}

func (m *Monitor) probe(check Check) bool {
	if check.Ping == nil {
		return false
	}
	timeout := check.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := check.Ping(ctx); err != nil {
		m.logger.Warn("dependency check failed", zap.String("service", check.Name), zap.Error(err))
		return false
	}
	return true
}
