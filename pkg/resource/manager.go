// pkg/resource/manager.go
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/health"
	"github.com/opd-ai/space-warriors/pkg/logging"
)

var (
	// ErrSessionLimit is returned when every session slot is taken.
	ErrSessionLimit = errors.New("session limit reached")
	// ErrShuttingDown is returned for sessions started after Shutdown.
	ErrShuttingDown = errors.New("session manager is shutting down")
)

// SessionManager limits concurrent game sessions, recovers their panics and
// waits for them on shutdown. A background loop samples heap usage.
type SessionManager struct {
	maxSessions     int64
	maxMemoryMB     int64
	shutdownTimeout time.Duration
	checkInterval   time.Duration

	active        atomic.Int64
	started       atomic.Uint64
	rejected      atomic.Uint64
	panics        atomic.Uint64
	memoryUsageMB atomic.Int64

	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	mu       sync.RWMutex
	running  bool
	stopping bool
	logger   *logging.Logger

	readMemory func() int64
}

// NewSessionManager creates a manager from the service configuration.
func NewSessionManager(cfg *config.EnvironmentConfig, logger *logging.Logger) *SessionManager {
	if logger == nil {
		logger = logging.NewLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &SessionManager{
		maxSessions:     int64(cfg.MaxSessions),
		maxMemoryMB:     cfg.MaxMemoryMB,
		shutdownTimeout: cfg.ShutdownTimeout,
		checkInterval:   cfg.ResourceCheckInterval,
		ctx:             ctx,
		cancel:          cancel,
		done:            make(chan struct{}),
		logger:          logger,
		readMemory:      health.HeapAllocMB,
	}
}

// Start begins the memory monitoring loop.
func (sm *SessionManager) Start() error {
	sm.mu.Lock()
	if sm.running {
		sm.mu.Unlock()
		return fmt.Errorf("session manager already running")
	}
	sm.running = true
	sm.mu.Unlock()

	go sm.monitoringLoop()

	sm.logger.Info(sm.ctx, "Session manager started",
		"max_sessions", sm.maxSessions,
		"max_memory_mb", sm.maxMemoryMB,
		"check_interval", sm.checkInterval,
	)
	return nil
}

// acquire reserves a session slot.
func (sm *SessionManager) acquire(ctx context.Context, name string) error {
	sm.mu.RLock()
	stopping := sm.stopping
	sm.mu.RUnlock()
	if stopping {
		sm.rejected.Add(1)
		return ErrShuttingDown
	}

	for {
		current := sm.active.Load()
		if current >= sm.maxSessions {
			sm.rejected.Add(1)
			sm.logger.Warn(ctx, "Session limit reached",
				"active", current,
				"limit", sm.maxSessions,
				"name", name,
			)
			return fmt.Errorf("%w: %d/%d", ErrSessionLimit, current, sm.maxSessions)
		}
		if sm.active.CompareAndSwap(current, current+1) {
			sm.started.Add(1)
			return nil
		}
	}
}

// Run runs fn as a tracked session and blocks until it returns. The context
// passed to fn is cancelled when ctx ends or the manager shuts down. A panic
// in fn is recovered and returned as an error.
func (sm *SessionManager) Run(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := sm.acquire(ctx, name); err != nil {
		return err
	}
	return sm.track(ctx, name, fn)
}

// Go runs fn as a tracked session in a new goroutine. Errors from fn are
// logged.
func (sm *SessionManager) Go(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := sm.acquire(ctx, name); err != nil {
		return err
	}
	go func() {
		if err := sm.track(ctx, name, fn); err != nil {
			sm.logger.Error(ctx, "Session ended with error", err, "name", name)
		}
	}()
	return nil
}

// track runs fn in an acquired slot and releases it afterwards.
func (sm *SessionManager) track(ctx context.Context, name string, fn func(context.Context) error) (err error) {
	defer sm.active.Add(-1)

	sessionCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(sm.ctx, cancel)
	defer stop()

	defer func() {
		if r := recover(); r != nil {
			sm.panics.Add(1)
			err = fmt.Errorf("session %s panicked: %v", name, r)
			sm.logger.Error(ctx, "Session panic", err, "name", name)
		}
	}()

	return fn(sessionCtx)
}

// ActiveSessions returns the number of running sessions.
func (sm *SessionManager) ActiveSessions() int {
	return int(sm.active.Load())
}

// MaxSessions returns the session limit.
func (sm *SessionManager) MaxSessions() int {
	return int(sm.maxSessions)
}

// CheckMemoryUsage samples heap usage and compares it to the limit.
func (sm *SessionManager) CheckMemoryUsage() error {
	currentMB := sm.readMemory()
	sm.memoryUsageMB.Store(currentMB)

	if currentMB > sm.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, sm.maxMemoryMB)
	}
	return nil
}

// Stats returns current session and memory counters.
func (sm *SessionManager) Stats() Stats {
	return Stats{
		ActiveSessions:   sm.active.Load(),
		MaxSessions:      sm.maxSessions,
		StartedSessions:  sm.started.Load(),
		RejectedSessions: sm.rejected.Load(),
		Panics:           sm.panics.Load(),
		MemoryUsageMB:    sm.memoryUsageMB.Load(),
		MaxMemoryMB:      sm.maxMemoryMB,
	}
}

// Stats contains session manager counters.
type Stats struct {
	ActiveSessions   int64  `json:"active_sessions"`
	MaxSessions      int64  `json:"max_sessions"`
	StartedSessions  uint64 `json:"started_sessions"`
	RejectedSessions uint64 `json:"rejected_sessions"`
	Panics           uint64 `json:"panics"`
	MemoryUsageMB    int64  `json:"memory_usage_mb"`
	MaxMemoryMB      int64  `json:"max_memory_mb"`
}

// Shutdown refuses new sessions, cancels running ones and waits for them
// to return, up to the configured timeout.
func (sm *SessionManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	if sm.stopping {
		sm.mu.Unlock()
		return nil
	}
	sm.stopping = true
	wasRunning := sm.running
	sm.running = false
	sm.mu.Unlock()

	sm.logger.Info(ctx, "Shutting down session manager", "active", sm.ActiveSessions())
	sm.cancel()

	shutdownCtx, cancel := context.WithTimeout(ctx, sm.shutdownTimeout)
	defer cancel()

	if wasRunning {
		select {
		case <-sm.done:
		case <-shutdownCtx.Done():
			sm.logger.Warn(ctx, "Memory monitoring loop did not stop gracefully")
		}
	}

	return sm.waitForSessions(shutdownCtx)
}

func (sm *SessionManager) waitForSessions(ctx context.Context) error {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		count := sm.active.Load()
		if count == 0 {
			sm.logger.Info(ctx, "All sessions finished")
			return nil
		}

		select {
		case <-ticker.C:
			sm.logger.Debug(ctx, "Waiting for sessions to finish", "remaining", count)
		case <-ctx.Done():
			remaining := sm.active.Load()
			sm.logger.Warn(ctx, "Shutdown timeout exceeded with sessions still running",
				"remaining", remaining,
			)
			return fmt.Errorf("shutdown timeout: %d sessions still running", remaining)
		}
	}
}

func (sm *SessionManager) monitoringLoop() {
	defer close(sm.done)

	ticker := time.NewTicker(sm.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.performResourceChecks()
		case <-sm.ctx.Done():
			sm.logger.Debug(sm.ctx, "Memory monitoring loop stopping")
			return
		}
	}
}

func (sm *SessionManager) performResourceChecks() {
	if err := sm.CheckMemoryUsage(); err != nil {
		sm.logger.Error(sm.ctx, "Memory limit exceeded", err,
			"current_mb", sm.memoryUsageMB.Load(),
			"limit_mb", sm.maxMemoryMB,
		)
	}

	sm.logger.Debug(sm.ctx, "Resource usage check",
		"sessions", sm.active.Load(),
		"max_sessions", sm.maxSessions,
		"memory_mb", sm.memoryUsageMB.Load(),
	)
}
