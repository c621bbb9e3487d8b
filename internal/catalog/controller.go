package catalog

import (
	"context"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lustraclean/vitrine/internal/event"
	"github.com/lustraclean/vitrine/pkg/models"
)

// Phase is the controller's lifecycle state, exposed for health reporting.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseLoading    Phase = "loading"
	PhaseReady      Phase = "ready"
	PhaseReadyEmpty Phase = "ready_empty"
)

// Snapshot is the consistent view handed to presentation adapters. Both
// the list view and the detail view render from the same snapshot, so
// they can never disagree on which record is active.
type Snapshot struct {
	Records     []models.ServiceRecord `json:"records"`
	ActiveIndex int                    `json:"active_index"`
	Total       int                    `json:"total"`
	Origin      Origin                 `json:"source"`
	Warning     string                 `json:"warning,omitempty"`
}

// Controller orchestrates RecordStore, the filter engine and the
// selection rules, and owns all catalog state. Construct one per
// session and share it by reference; there are no package-level globals.
type Controller struct {
	records *RecordStore
	bus     event.Publisher
	metrics *Metrics
	logger  *zap.Logger

	// reqToken stamps each refresh; only the most recently initiated
	// refresh may commit its result.
	reqToken atomic.Uint64
	inFlight atomic.Int64

	mu          sync.Mutex
	started     bool
	all         []models.ServiceRecord
	filtered    []models.ServiceRecord
	activeIndex int
	lastSpec    FilterSpec
	lastOrigin  Origin
	lastWarning string
}

// NewController creates a Controller over the given record store.
func NewController(records *RecordStore, bus event.Publisher, metrics *Metrics, logger *zap.Logger) *Controller {
	return &Controller{
		records:  records,
		bus:      bus,
		metrics:  metrics,
		logger:   logger,
		filtered: []models.ServiceRecord{},
	}
}

// Refresh loads records (cache-aware), applies the filter spec, resolves
// the active index and returns the resulting snapshot. Safe to call
// concurrently: a superseded in-flight call's result never overwrites
// state committed by a later call.
func (c *Controller) Refresh(ctx context.Context, spec FilterSpec) Snapshot {
	return c.refresh(ctx, spec, false)
}

// ForceRefresh behaves like Refresh but bypasses the cache.
func (c *Controller) ForceRefresh(ctx context.Context, spec FilterSpec) Snapshot {
	return c.refresh(ctx, spec, true)
}

func (c *Controller) refresh(ctx context.Context, spec FilterSpec, force bool) Snapshot {
	token := c.reqToken.Add(1)
	c.inFlight.Add(1)
	defer c.inFlight.Add(-1)

	spec = spec.Normalize()

	// Load and filter happen outside the lock; only the commit is
	// serialized.
	records, origin, warn := c.records.Load(ctx, force)
	filtered := Filter(records, spec)

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.reqToken.Load() {
		// A newer refresh was initiated while this one was loading;
		// its result wins. Return the freshest committed state.
		c.metrics.staleDiscards.Inc()
		c.logger.Debug("discarding superseded refresh", zap.Uint64("token", token))
		return c.snapshotLocked()
	}

	specChanged := !c.started || spec != c.lastSpec
	c.activeIndex = resolveIndex(c.activeIndex, specChanged, len(filtered))
	c.all = records
	c.filtered = filtered
	c.lastSpec = spec
	c.started = true
	c.lastOrigin = origin
	c.lastWarning = ""
	if warn != nil {
		c.lastWarning = warn.Error()
	}

	snap := c.snapshotLocked()
	c.metrics.refreshes.WithLabelValues(string(origin)).Inc()
	c.bus.PublishAsync(ctx, event.Event{Topic: event.TopicCatalogRefreshed, Source: "catalog", Payload: snap})
	if warn != nil {
		c.bus.PublishAsync(ctx, event.Event{Topic: event.TopicCatalogWarning, Source: "catalog", Payload: c.lastWarning})
	}
	return snap
}

// Navigate moves the active index relative to its current position,
// clamped to the filtered set. It never reloads or re-filters; a move
// that would not change the index is a no-op and emits no event.
func (c *Controller) Navigate(ctx context.Context, dir Direction, step int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := moveIndex(c.activeIndex, dir, step, len(c.filtered))
	if next == c.activeIndex {
		return c.snapshotLocked()
	}

	c.activeIndex = next
	snap := c.snapshotLocked()
	c.metrics.navigations.Inc()
	c.bus.PublishAsync(ctx, event.Event{Topic: event.TopicCatalogNavigated, Source: "catalog", Payload: snap})
	return snap
}

// ActiveIndex returns the current active index.
func (c *Controller) ActiveIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.activeIndex
}

// SetActiveIndex sets the active index directly (e.g. the user clicked a
// specific list entry), clamped to the filtered set.
func (c *Controller) SetActiveIndex(i int) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.activeIndex = clampIndex(i, len(c.filtered))
	return c.snapshotLocked()
}

// Phase reports the controller's lifecycle state.
func (c *Controller) Phase() Phase {
	if c.inFlight.Load() > 0 {
		return PhaseLoading
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case !c.started:
		return PhaseIdle
	case len(c.filtered) == 0:
		return PhaseReadyEmpty
	default:
		return PhaseReady
	}
}

// snapshotLocked builds a Snapshot from the current state. Callers must
// hold c.mu. The record slice is copied so adapters cannot mutate state.
func (c *Controller) snapshotLocked() Snapshot {
	records := make([]models.ServiceRecord, len(c.filtered))
	copy(records, c.filtered)
	return Snapshot{
		Records:     records,
		ActiveIndex: c.activeIndex,
		Total:       len(c.filtered),
		Origin:      c.lastOrigin,
		Warning:     c.lastWarning,
	}
}
