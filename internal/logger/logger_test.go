package logger

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestNew_KnownEnvs(t *testing.T) {
	for _, env := range []string{"local", "dev", "docker", "prod"} {
		if _, err := New(env, ""); err != nil {
			t.Errorf("env %q: unexpected error: %v", env, err)
		}
	}
}

func TestNew_UnknownEnv(t *testing.T) {
	if _, err := New("staging", ""); err == nil {
		t.Fatal("expected error for unknown env")
	}
}

func TestNew_LevelOverride(t *testing.T) {
	l, err := New("prod", "debug")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !l.Core().Enabled(zap.DebugLevel) {
		t.Error("debug level not enabled after override")
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	if _, err := New("prod", "loud"); err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestFromContext_Fallback(t *testing.T) {
	if l := FromContext(context.Background()); l == nil {
		t.Fatal("expected nop logger, got nil")
	}
}

func TestContextRoundTrip(t *testing.T) {
	l := zap.NewNop()
	ctx := ContextWithLogger(context.Background(), l)
	if FromContext(ctx) != l {
		t.Fatal("logger not recovered from context")
	}
}
