package propertypicker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dalemusser/revenuedash/internal/app/system/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMountNotFound is returned for unknown, torn down, or foreign mounts.
var ErrMountNotFound = errors.New("dashboard mount not found")

// Snapshot is a read-only copy of a mount.
type Snapshot struct {
	ID       string
	TenantID string
	State    State
}

type mount struct {
	id       string
	tenantID string
	gen      uint64
	state    State
	done     chan struct{} // closed once state leaves PhaseLoading
	cancel   context.CancelFunc
	touched  time.Time
}

func (m *mount) snapshot() Snapshot {
	// Property lists are never mutated after Apply, so sharing the slice is safe.
	return Snapshot{ID: m.id, TenantID: m.tenantID, State: m.state}
}

// Registry holds the live dashboard mounts of this process.
//
// Each mount issues exactly one fetch. A fetch result is applied only if the
// mount still exists with the generation it was started under; anything else
// is a late result for a torn down mount and is dropped.
type Registry struct {
	mu     sync.Mutex
	mounts map[string]*mount
	gen    uint64
	log    *zap.Logger
	now    func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		mounts: make(map[string]*mount),
		log:    logger,
		now:    time.Now,
	}
}

// Mount creates a loading mount for tenantID and starts its fetch from src.
// It returns without waiting for the fetch.
//
// The fetch runs detached from ctx's cancellation (the page request that
// mounts the dashboard finishes long before the list arrives) but keeps its
// values. It is cancelled only by Unmount or Sweep.
func (r *Registry) Mount(ctx context.Context, tenantID string, src Source) Snapshot {
	fetchCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	r.mu.Lock()
	r.gen++
	m := &mount{
		id:       uuid.NewString(),
		tenantID: tenantID,
		gen:      r.gen,
		state:    Initial(),
		done:     make(chan struct{}),
		cancel:   cancel,
		touched:  r.now(),
	}
	r.mounts[m.id] = m
	snap := m.snapshot()
	r.mu.Unlock()

	metrics.ActiveMounts.Inc()
	go r.fetch(fetchCtx, m.id, m.gen, tenantID, src)

	return snap
}

// MountReady registers a mount whose state is already resolved (the static
// catalogue). No fetch is issued.
func (r *Registry) MountReady(tenantID string, st State) Snapshot {
	done := make(chan struct{})
	close(done)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	m := &mount{
		id:       uuid.NewString(),
		tenantID: tenantID,
		gen:      r.gen,
		state:    st,
		done:     done,
		cancel:   func() {},
		touched:  r.now(),
	}
	r.mounts[m.id] = m
	metrics.ActiveMounts.Inc()
	return m.snapshot()
}

func (r *Registry) fetch(ctx context.Context, id string, gen uint64, tenantID string, src Source) {
	list, err := src.ListProperties(ctx)
	res := Succeeded(list)
	if err != nil {
		res = Failed(err)
	}

	if !res.usable() {
		// Absorbed: the selector stays on its placeholder.
		r.log.Warn("property list unavailable",
			zap.String("tenant_id", tenantID),
			zap.String("mount_id", id),
			zap.Int("count", len(list)),
			zap.Error(err))
	}

	if !r.resolve(id, gen, res) {
		metrics.LateResultsDiscarded.Inc()
		r.log.Debug("discarded late property list result", zap.String("mount_id", id))
	}
}

// resolve applies res to the mount if it is still the one the fetch was
// started for.
func (r *Registry) resolve(id string, gen uint64, res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.mounts[id]
	if !ok || m.gen != gen || m.state.Phase != PhaseLoading {
		return false
	}
	m.state = Apply(m.state, res)
	metrics.PropertyListFetches.WithLabelValues(m.state.Phase.String()).Inc()
	close(m.done)
	return true
}

// release wakes waiters of a mount that is being torn down while still
// loading. The mount is already out of the map, so resolve cannot close done
// a second time. Callers hold r.mu.
func (r *Registry) release(m *mount) {
	if m.state.Phase == PhaseLoading {
		close(m.done)
	}
}

func (r *Registry) lookup(tenantID, id string) (*mount, error) {
	m, ok := r.mounts[id]
	if !ok || m.tenantID != tenantID {
		return nil, ErrMountNotFound
	}
	m.touched = r.now()
	return m, nil
}

// Get returns the current state of a mount without waiting.
func (r *Registry) Get(tenantID, id string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.lookup(tenantID, id)
	if err != nil {
		return Snapshot{}, err
	}
	return m.snapshot(), nil
}

// Await blocks until the mount's fetch has resolved or ctx ends. When ctx
// ends first the loading snapshot is returned together with ctx.Err().
func (r *Registry) Await(ctx context.Context, tenantID, id string) (Snapshot, error) {
	r.mu.Lock()
	m, err := r.lookup(tenantID, id)
	if err != nil {
		r.mu.Unlock()
		return Snapshot{}, err
	}
	done := m.done
	r.mu.Unlock()

	select {
	case <-done:
	case <-ctx.Done():
		snap, err := r.Get(tenantID, id)
		if err != nil {
			return Snapshot{}, err
		}
		return snap, ctx.Err()
	}
	return r.Get(tenantID, id)
}

// Select sets the mount's selection. It never triggers a fetch.
func (r *Registry) Select(tenantID, id, propertyID string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := r.lookup(tenantID, id)
	if err != nil {
		return Snapshot{}, err
	}
	m.state = m.state.Select(propertyID)
	return m.snapshot(), nil
}

// Unmount tears a mount down and cancels its fetch if still pending.
func (r *Registry) Unmount(tenantID, id string) error {
	r.mu.Lock()
	m, ok := r.mounts[id]
	if !ok || m.tenantID != tenantID {
		r.mu.Unlock()
		return ErrMountNotFound
	}
	delete(r.mounts, id)
	r.release(m)
	r.mu.Unlock()

	m.cancel()
	metrics.ActiveMounts.Dec()
	return nil
}

// Sweep tears down mounts untouched for longer than maxAge and returns how
// many were removed.
func (r *Registry) Sweep(maxAge time.Duration) int {
	cutoff := r.now().Add(-maxAge)

	r.mu.Lock()
	var stale []*mount
	for id, m := range r.mounts {
		if m.touched.Before(cutoff) {
			stale = append(stale, m)
			delete(r.mounts, id)
			r.release(m)
		}
	}
	r.mu.Unlock()

	for _, m := range stale {
		m.cancel()
		metrics.ActiveMounts.Dec()
	}
	return len(stale)
}

// Len returns the number of live mounts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.mounts)
}
