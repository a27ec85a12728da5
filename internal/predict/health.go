package predict

import (
	"context"
	"sync"
	"time"

	"weather-predictor/internal/providers/predictapi"
)

// SharedHealth wraps a Provider so that health checks within ttl of each
// other share one backend call. Predict calls pass straight through.
type SharedHealth struct {
	Provider
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	checked time.Time
	health  *predictapi.HealthAPIResponse
	err     error
}

// NewSharedHealth returns provider unchanged when ttl is not positive
func NewSharedHealth(provider Provider, ttl time.Duration) Provider {
	if ttl <= 0 {
		return provider
	}
	return &SharedHealth{Provider: provider, ttl: ttl, now: time.Now}
}

// Health returns the cached result while it is fresh. Concurrent callers
// wait for the one in progress.
func (s *SharedHealth) Health(ctx context.Context) (*predictapi.HealthAPIResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.checked.IsZero() && s.now().Sub(s.checked) < s.ttl {
		return s.health, s.err
	}

	s.health, s.err = s.Provider.Health(ctx)
	s.checked = s.now()
	return s.health, s.err
}
