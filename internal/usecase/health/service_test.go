package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct {
	err error
}

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct {
	err error
}

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status: got %s", report.Status)
	}
	if report.Checks["database"] != CheckOK || report.Checks["embedding"] != CheckOK {
		t.Errorf("checks: got %v", report.Checks)
	}
}

func TestCheck_DatabaseDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("connection refused")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Unhealthy {
		t.Errorf("status: got %s", report.Status)
	}
	if report.Checks["database"] != CheckError {
		t.Errorf("checks: got %v", report.Checks)
	}
}

func TestCheck_EmbeddingDownDegrades(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("api down")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Errorf("status: got %s", report.Status)
	}
}

func TestCheck_NoEmbedder(t *testing.T) {
	svc := New(&mockPinger{}, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Errorf("status: got %s", report.Status)
	}
	if _, ok := report.Checks["embedding"]; ok {
		t.Error("embedding check present without embedder")
	}
}
