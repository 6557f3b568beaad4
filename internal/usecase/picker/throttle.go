package picker

import (
	"sync"
	"time"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	"github.com/Maldaris/europa-awareness-map/internal/scene"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

// Throttled rate-limits picks to one per interval. Picking stays pure;
// the pacing lives in this wrapper so callers that need unthrottled
// access keep using Service directly.
type Throttled struct {
	inner    *Service
	interval time.Duration

	mu   sync.Mutex
	last time.Time
	now  func() time.Time
}

// NewThrottled wraps a picker with a minimum interval between picks.
func NewThrottled(inner *Service, interval time.Duration) *Throttled {
	return &Throttled{
		inner:    inner,
		interval: interval,
		now:      time.Now,
	}
}

// Pick delegates to the inner picker unless the previous pick was less
// than the interval ago, in which case it fails with
// domain.ErrRateLimited.
func (t *Throttled) Pick(ray globe.Ray) (Result, error) {
	if err := t.reserve(); err != nil {
		return Result{}, err
	}
	return t.inner.Pick(ray), nil
}

// PickPointer is the throttled counterpart of Service.PickPointer.
func (t *Throttled) PickPointer(cam scene.Camera, u, v float64) (Result, error) {
	if err := t.reserve(); err != nil {
		return Result{}, err
	}
	return t.inner.PickPointer(cam, u, v), nil
}

func (t *Throttled) reserve() error {
	if t.interval <= 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return domain.ErrRateLimited
	}
	t.last = now
	return nil
}
