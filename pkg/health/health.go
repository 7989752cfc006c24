// Package health serves liveness and readiness probes for the Space Warriors
// SSH service. Readiness fails while the session pool is full, the SSH
// listener is down or the process is over its memory budget.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"
)

// Probe status values
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusAlive     = "alive"
)

// readinessTimeout bounds the time spent running checks for one probe.
const readinessTimeout = 5 * time.Second

// HealthCheck is one component the readiness probe asks about.
type HealthCheck interface {
	// Name returns the unique name of this health check
	Name() string
	// Check returns an error if the component cannot take new players
	Check(ctx context.Context) error
}

// HealthStatus is the readiness probe body.
type HealthStatus struct {
	Status string                     `json:"status"`
	Checks map[string]ComponentHealth `json:"checks"`
}

// ComponentHealth is the result of one check.
type ComponentHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthChecker runs the registered checks.
type HealthChecker struct {
	checks map[string]HealthCheck
	mu     sync.RWMutex
}

// NewHealthChecker creates a checker with no checks.
func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		checks: make(map[string]HealthCheck),
	}
}

// AddCheck registers check, replacing any check with the same name.
func (hc *HealthChecker) AddCheck(check HealthCheck) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.checks[check.Name()] = check
}

// RemoveCheck removes a health check by name.
func (hc *HealthChecker) RemoveCheck(name string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.checks, name)
}

// CheckHealth runs every check. The overall status is healthy only if all
// checks pass.
func (hc *HealthChecker) CheckHealth(ctx context.Context) HealthStatus {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	status := HealthStatus{
		Status: StatusHealthy,
		Checks: make(map[string]ComponentHealth, len(hc.checks)),
	}

	for name, check := range hc.checks {
		if err := check.Check(ctx); err != nil {
			status.Status = StatusUnhealthy
			status.Checks[name] = ComponentHealth{Status: StatusUnhealthy, Message: err.Error()}
			continue
		}
		status.Checks[name] = ComponentHealth{Status: StatusHealthy}
	}

	return status
}

// LivenessHandler answers 200 while the process can serve HTTP at all.
func (hc *HealthChecker) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": StatusAlive})
}

// ReadinessHandler answers 200 when every check passes and 503 otherwise,
// with the per-check results in the body.
func (hc *HealthChecker) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	health := hc.CheckHealth(ctx)

	code := http.StatusOK
	if health.Status != StatusHealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, health)
}

// Handler routes /health to the liveness probe and /ready to readiness.
func (hc *HealthChecker) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", hc.LivenessHandler)
	mux.HandleFunc("/ready", hc.ReadinessHandler)
	return mux
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// SessionCapacityHealthCheck fails when no game session slot is free.
type SessionCapacityHealthCheck struct {
	active func() int
	limit  int
}

// NewSessionCapacityHealthCheck creates a check over the active session count.
func NewSessionCapacityHealthCheck(active func() int, limit int) *SessionCapacityHealthCheck {
	return &SessionCapacityHealthCheck{active: active, limit: limit}
}

// Name returns the name of this health check.
func (s *SessionCapacityHealthCheck) Name() string {
	return "sessions"
}

// Check fails when the active session count has reached the limit.
func (s *SessionCapacityHealthCheck) Check(ctx context.Context) error {
	if n := s.active(); n >= s.limit {
		return fmt.Errorf("session limit reached: %d/%d", n, s.limit)
	}
	return nil
}

// ListenerHealthCheck fails while the SSH listener is not bound.
type ListenerHealthCheck struct {
	listenerAddr func() string
}

// NewListenerHealthCheck creates a check over the listener address; an empty
// address means not listening.
func NewListenerHealthCheck(listenerAddr func() string) *ListenerHealthCheck {
	return &ListenerHealthCheck{listenerAddr: listenerAddr}
}

// Name returns the name of this health check.
func (l *ListenerHealthCheck) Name() string {
	return "ssh_listener"
}

// Check verifies that the SSH listener is bound.
func (l *ListenerHealthCheck) Check(ctx context.Context) error {
	if l.listenerAddr() == "" {
		return fmt.Errorf("ssh listener is not active")
	}
	return nil
}

// MemoryHealthCheck fails when heap usage exceeds a budget.
type MemoryHealthCheck struct {
	maxMemoryMB    int64
	getMemoryUsage func() int64
}

// NewMemoryHealthCheck creates a memory check. A nil getMemoryUsage reads the
// Go runtime's heap allocation.
func NewMemoryHealthCheck(maxMemoryMB int64, getMemoryUsage func() int64) *MemoryHealthCheck {
	if getMemoryUsage == nil {
		getMemoryUsage = HeapAllocMB
	}
	return &MemoryHealthCheck{
		maxMemoryMB:    maxMemoryMB,
		getMemoryUsage: getMemoryUsage,
	}
}

// Name returns the name of this health check.
func (m *MemoryHealthCheck) Name() string {
	return "memory"
}

// Check verifies that memory usage is within the budget.
func (m *MemoryHealthCheck) Check(ctx context.Context) error {
	if currentMB := m.getMemoryUsage(); currentMB > m.maxMemoryMB {
		return fmt.Errorf("memory usage %dMB exceeds limit %dMB", currentMB, m.maxMemoryMB)
	}
	return nil
}

// HeapAllocMB returns the bytes of allocated heap objects in megabytes.
func HeapAllocMB() int64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return int64(m.Alloc / 1024 / 1024)
}
