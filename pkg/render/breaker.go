// pkg/render/breaker.go
package render

import (
	"context"
	"fmt"
	"io"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/space-warriors/pkg/config"
	"github.com/opd-ai/space-warriors/pkg/logging"
)

// BreakerWriter guards a frame writer with a circuit breaker. A remote
// terminal that keeps failing trips the breaker, and later frames fail fast
// with gobreaker.ErrOpenState instead of blocking on a dead connection.
type BreakerWriter struct {
	w       io.Writer
	breaker *gobreaker.CircuitBreaker
	logger  *logging.Logger
}

// NewBreakerWriter wraps w using the circuit breaker settings in envConfig.
func NewBreakerWriter(name string, w io.Writer, envConfig *config.EnvironmentConfig, logger *logging.Logger) *BreakerWriter {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: uint32(envConfig.CircuitBreakerMaxRequests),
		Interval:    envConfig.CircuitBreakerInterval,
		Timeout:     envConfig.CircuitBreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(envConfig.CircuitBreakerMaxConsecutiveFails)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "frame writer breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	}

	return &BreakerWriter{
		w:       w,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

// Write implements io.Writer.
func (bw *BreakerWriter) Write(p []byte) (int, error) {
	n, err := bw.breaker.Execute(func() (interface{}, error) {
		return bw.w.Write(p)
	})
	if err != nil {
		written, _ := n.(int)
		return written, fmt.Errorf("frame writer: %w", err)
	}
	return n.(int), nil
}

// State returns the breaker state.
func (bw *BreakerWriter) State() gobreaker.State {
	return bw.breaker.State()
}

// Counts returns the breaker's request counters for the current interval.
func (bw *BreakerWriter) Counts() gobreaker.Counts {
	return bw.breaker.Counts()
}
