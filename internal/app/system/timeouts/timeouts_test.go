package timeouts_test

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/timeouts"
	"go.uber.org/zap"
)

func TestConfigure_IgnoresZero(t *testing.T) {
	t.Cleanup(timeouts.Reset)

	timeouts.Configure(timeouts.Config{Short: 7 * time.Second})

	got := timeouts.Current()
	if got.Short != 7*time.Second {
		t.Errorf("Short = %v, want 7s", got.Short)
	}
	if got.Ping != timeouts.DefaultPing {
		t.Errorf("Ping = %v, want default", got.Ping)
	}
	if got.Medium != timeouts.DefaultMedium {
		t.Errorf("Medium = %v, want default", got.Medium)
	}
}

func TestReset(t *testing.T) {
	timeouts.Configure(timeouts.Config{Ping: time.Second, Medium: time.Minute})
	timeouts.Reset()

	if timeouts.Ping() != timeouts.DefaultPing || timeouts.Medium() != timeouts.DefaultMedium {
		t.Errorf("Reset did not restore defaults: %+v", timeouts.Current())
	}
}

func TestWithTimeout_Expires(t *testing.T) {
	ctx, cancel := timeouts.WithTimeout(context.Background(), time.Millisecond, zap.NewNop(), "test")
	defer cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context did not expire")
	}
	if ctx.Err() != context.DeadlineExceeded {
		t.Errorf("Err = %v, want DeadlineExceeded", ctx.Err())
	}
}
