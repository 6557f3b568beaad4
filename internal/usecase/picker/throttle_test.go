package picker

import (
	"errors"
	"testing"
	"time"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	"github.com/Maldaris/europa-awareness-map/pkg/globe"
)

func hitRay() globe.Ray {
	return globe.Ray{Origin: globe.Vec3{Z: 3}, Direction: globe.Vec3{Z: -1}}
}

func TestThrottled_RejectsRapidPicks(t *testing.T) {
	th := NewThrottled(New(unitGlobe(), nil), 100*time.Millisecond)

	clock := time.Unix(0, 0)
	th.now = func() time.Time { return clock }

	if _, err := th.Pick(hitRay()); err != nil {
		t.Fatalf("first pick: %v", err)
	}

	clock = clock.Add(50 * time.Millisecond)
	_, err := th.Pick(hitRay())
	if !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}

	clock = clock.Add(60 * time.Millisecond)
	result, err := th.Pick(hitRay())
	if err != nil {
		t.Fatalf("pick after interval: %v", err)
	}
	if !result.Hit {
		t.Error("expected a hit")
	}
}

func TestThrottled_ZeroIntervalPassesThrough(t *testing.T) {
	th := NewThrottled(New(unitGlobe(), nil), 0)

	for i := 0; i < 3; i++ {
		if _, err := th.Pick(hitRay()); err != nil {
			t.Fatalf("pick %d: %v", i, err)
		}
	}
}

func TestThrottled_MissStillConsumesSlot(t *testing.T) {
	th := NewThrottled(New(unitGlobe(), nil), time.Minute)

	clock := time.Unix(0, 0)
	th.now = func() time.Time { return clock }

	miss := globe.Ray{Origin: globe.Vec3{Z: 3}, Direction: globe.Vec3{Z: 1}}
	result, err := th.Pick(miss)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Hit {
		t.Error("expected a miss")
	}

	clock = clock.Add(time.Second)
	if _, err := th.Pick(hitRay()); !errors.Is(err, domain.ErrRateLimited) {
		t.Fatalf("expected ErrRateLimited, got %v", err)
	}
}
