package workers_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/propertypicker"
	"github.com/dalemusser/revenuedash/internal/app/system/workers"
	"go.uber.org/zap"
)

type countingSweeper struct {
	calls  atomic.Int32
	maxAge atomic.Int64
}

func (s *countingSweeper) Sweep(maxAge time.Duration) int {
	s.calls.Add(1)
	s.maxAge.Store(int64(maxAge))
	return 0
}

func TestMountSweeper_SweepsOnInterval(t *testing.T) {
	s := &countingSweeper{}
	w := workers.NewMountSweeper(s, zap.NewNop(), 5*time.Millisecond, time.Minute)
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for s.calls.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	if s.calls.Load() < 2 {
		t.Fatalf("expected at least 2 sweeps, got %d", s.calls.Load())
	}
	if time.Duration(s.maxAge.Load()) != time.Minute {
		t.Errorf("max age: got %v", time.Duration(s.maxAge.Load()))
	}
}

func TestMountSweeper_StopTwice(t *testing.T) {
	w := workers.NewMountSweeper(&countingSweeper{}, zap.NewNop(), time.Hour, time.Minute)
	w.Start()
	w.Stop()
	w.Stop()
}

func TestMountSweeper_RemovesStaleMounts(t *testing.T) {
	reg := propertypicker.NewRegistry(zap.NewNop())
	reg.MountReady("tenant-a", propertypicker.Initial())

	w := workers.NewMountSweeper(reg, zap.NewNop(), 5*time.Millisecond, 0)
	w.Start()
	defer w.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for reg.Len() > 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if reg.Len() != 0 {
		t.Fatalf("expected stale mount swept, %d left", reg.Len())
	}
}

func TestMountSweeper_RunsPruners(t *testing.T) {
	var pruned atomic.Int32
	w := workers.NewMountSweeper(&countingSweeper{}, zap.NewNop(), 5*time.Millisecond, time.Minute)
	w.AlsoPrune("test", func() int {
		pruned.Add(1)
		return 1
	})
	w.Start()

	deadline := time.Now().Add(2 * time.Second)
	for pruned.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	w.Stop()

	if pruned.Load() == 0 {
		t.Fatal("pruner never ran")
	}
}
