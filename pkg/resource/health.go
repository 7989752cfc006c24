// pkg/resource/health.go
package resource

import (
	"context"
	"fmt"
)

// SessionHealthCheck reports the session manager unhealthy while it is
// shutting down or its last memory sample was over the limit.
type SessionHealthCheck struct {
	manager *SessionManager
}

// NewSessionHealthCheck creates a health check for the session manager.
func NewSessionHealthCheck(manager *SessionManager) *SessionHealthCheck {
	return &SessionHealthCheck{
		manager: manager,
	}
}

// Name returns the name of this health check.
func (s *SessionHealthCheck) Name() string {
	return "session_manager"
}

// Check verifies the manager accepts sessions and is within its memory budget.
func (s *SessionHealthCheck) Check(ctx context.Context) error {
	s.manager.mu.RLock()
	stopping := s.manager.stopping
	s.manager.mu.RUnlock()
	if stopping {
		return ErrShuttingDown
	}

	stats := s.manager.Stats()
	if stats.MemoryUsageMB > stats.MaxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB",
			stats.MemoryUsageMB, stats.MaxMemoryMB)
	}
	return nil
}
