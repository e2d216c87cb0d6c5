package envutil

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	t.Setenv("SESSION_TTL", "90")
	if got := Duration("SESSION_TTL", time.Hour); got != 90*time.Second {
		t.Fatalf("seconds form: got=%s", got)
	}
	t.Setenv("SESSION_TTL", "2h")
	if got := Duration("SESSION_TTL", time.Hour); got != 2*time.Hour {
		t.Fatalf("duration form: got=%s", got)
	}
	t.Setenv("SESSION_TTL", "soon")
	if got := Duration("SESSION_TTL", time.Hour); got != time.Hour {
		t.Fatalf("invalid should fall back: got=%s", got)
	}
}

func TestBoolAndInt(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "yes")
	if !Bool("OTEL_ENABLED", false) {
		t.Fatalf("Bool: want true")
	}
	t.Setenv("PORT", "x")
	if Int("PORT", 8080) != 8080 {
		t.Fatalf("Int: invalid should fall back")
	}
}
