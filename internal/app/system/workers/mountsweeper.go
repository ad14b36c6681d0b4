// internal/app/system/workers/mountsweeper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Sweeper is the part of the mount registry the worker drives.
type Sweeper interface {
	Sweep(maxAge time.Duration) int
}

// MountSweeper is a background worker that tears down dashboard mounts whose
// page went away without sending an unmount.
type MountSweeper struct {
	mounts   Sweeper
	log      *zap.Logger
	interval time.Duration
	maxAge   time.Duration
	pruners  []pruner
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewMountSweeper creates a new sweeper.
//
// Parameters:
//   - mounts: the mount registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - maxAge: how long a mount may go untouched before it is torn down (e.g., 30 minutes)
func NewMountSweeper(mounts Sweeper, logger *zap.Logger, interval, maxAge time.Duration) *MountSweeper {
	return &MountSweeper{
		mounts:   mounts,
		log:      logger,
		interval: interval,
		maxAge:   maxAge,
		stopCh:   make(chan struct{}),
	}
}

type pruner struct {
	name string
	fn   func() int
}

// AlsoPrune runs fn on every tick after the mount sweep. It must be called
// before Start.
func (w *MountSweeper) AlsoPrune(name string, fn func() int) {
	w.pruners = append(w.pruners, pruner{name: name, fn: fn})
}

// Start begins the background sweep loop.
func (w *MountSweeper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("mount sweeper started",
		zap.Duration("interval", w.interval),
		zap.Duration("max_age", w.maxAge))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to
// call more than once.
func (w *MountSweeper) Stop() {
	w.stopOnce.Do(func() { close(w.stopCh) })
	w.wg.Wait()
	w.log.Info("mount sweeper stopped")
}

func (w *MountSweeper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *MountSweeper) sweep() {
	if n := w.mounts.Sweep(w.maxAge); n > 0 {
		w.log.Info("swept stale dashboard mounts", zap.Int("count", n))
	}
	for _, p := range w.pruners {
		if n := p.fn(); n > 0 {
			w.log.Debug("pruned idle entries", zap.String("what", p.name), zap.Int("count", n))
		}
	}
}
