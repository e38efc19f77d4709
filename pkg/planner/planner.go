// Package planner loads seat snapshots and turns them into layouts.
//
// A [Loader] sits between the seat-data provider and the layout builders.
// It owns the "current" layout a view is showing and enforces three rules:
//
//   - An incomplete key never reaches the provider or the builder; the
//     current state becomes an unavailable placeholder instead.
//   - Every load takes a generation number. A response that arrives after
//     a newer load was started is discarded with [ErrStale].
//   - A failed fetch leaves the current state untouched.
//
// Loads are not retried here; the provider decides how hard to try, and a
// failed load surfaces exactly one error to the caller.
package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/busline/seatplan/pkg/integrations/seatdata"
	"github.com/busline/seatplan/pkg/observability"
	"github.com/busline/seatplan/pkg/seatmap"
)

// ErrStale is returned for a response superseded by a newer load.
var ErrStale = errors.New("stale seat data discarded")

// Provider fetches seat snapshots. [seatdata.Client] satisfies it.
type Provider interface {
	FetchSeats(ctx context.Context, key seatdata.Key, refresh bool) (*seatdata.SeatData, error)
}

// BuildFunc builds a layout for a model. [seatmap.Build] is the default.
type BuildFunc func(model seatmap.Model, seats []seatmap.Seat, capacity seatmap.Capacity) (seatmap.Layout, error)

// State is what a view renders for one key.
type State struct {
	Key       seatdata.Key
	Available bool   // false until a complete key has loaded
	Reason    string // why the layout is unavailable
	Layout    seatmap.Layout
	Seats     []seatmap.Seat
	Capacity  seatmap.Capacity
	FetchedAt time.Time
}

// Seat returns seat n as placed in the layout. Seats the backend reported
// but the template left out are not found.
func (s State) Seat(n int) (seatmap.Seat, bool) {
	return s.Layout.Seat(n)
}

// Placed returns the seats the layout shows. Selections reconcile against
// this list, not against the raw backend snapshot.
func (s State) Placed() []seatmap.Seat {
	return s.Layout.Seats()
}

// Loader coordinates fetch and build. It is safe for concurrent use.
type Loader struct {
	provider Provider
	build    BuildFunc
	logger   *log.Logger

	gen     atomic.Uint64
	mu      sync.RWMutex
	current State
}

// NewLoader creates a loader. A nil build uses [seatmap.Build]; a nil
// logger uses log.Default().
func NewLoader(p Provider, build BuildFunc, logger *log.Logger) *Loader {
	if build == nil {
		build = seatmap.Build
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		provider: p,
		build:    build,
		logger:   logger,
		current:  unavailable(seatdata.Key{}),
	}
}

// Current returns the last committed state.
func (l *Loader) Current() State {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current
}

// Load fetches the snapshot for key (cache allowed) and commits its layout.
func (l *Loader) Load(ctx context.Context, key seatdata.Key) (State, error) {
	return l.load(ctx, key, false)
}

// Reload is [Loader.Load] bypassing the provider cache.
func (l *Loader) Reload(ctx context.Context, key seatdata.Key) (State, error) {
	return l.load(ctx, key, true)
}

func (l *Loader) load(ctx context.Context, key seatdata.Key, refresh bool) (State, error) {
	gen := l.gen.Add(1)

	if !key.Complete() {
		state := unavailable(key)
		l.logger.Debug("layout unavailable", "missing", key.Missing())
		if err := l.commit(gen, state); err != nil {
			return State{}, err
		}
		return state, nil
	}
	if err := key.Validate(); err != nil {
		return State{}, err
	}

	hooks := observability.Layout()
	tripID, model := key.TripID, string(key.BusModel)

	hooks.OnFetchStart(ctx, tripID, model)
	start := time.Now()
	data, err := l.provider.FetchSeats(ctx, key, refresh)
	count := 0
	if data != nil {
		count = len(data.Seats)
	}
	hooks.OnFetchComplete(ctx, tripID, model, count, time.Since(start), err)

	if gen != l.gen.Load() {
		hooks.OnStale(ctx, tripID, model)
		l.logger.Debug("discarding stale seat data", "key", key)
		return State{}, ErrStale
	}
	if err != nil {
		l.logger.Warn("seat data fetch failed", "key", key, "err", err)
		return State{}, fmt.Errorf("load seats for %s: %w", key, err)
	}

	buildStart := time.Now()
	layout, err := l.build(key.BusModel, data.Seats, data.Capacity)
	if err != nil {
		return State{}, err
	}
	hooks.OnBuild(ctx, model, count, time.Since(buildStart))

	state := State{
		Key:       key,
		Available: true,
		Layout:    layout,
		Seats:     data.Seats,
		Capacity:  data.Capacity,
		FetchedAt: data.FetchedAt,
	}
	if err := l.commit(gen, state); err != nil {
		hooks.OnStale(ctx, tripID, model)
		return State{}, err
	}

	l.logger.Info("loaded layout",
		"trip", tripID,
		"model", model,
		"seats", count,
		"positions", layout.Positions())
	return state, nil
}

// commit stores state unless a newer load has started.
func (l *Loader) commit(gen uint64, state State) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.gen.Load() {
		return ErrStale
	}
	l.current = state
	return nil
}

func unavailable(key seatdata.Key) State {
	reason := "seat map unavailable"
	if missing := key.Missing(); len(missing) > 0 {
		reason = "select " + strings.Join(missing, ", ") + " to see the seat map"
	}
	return State{Key: key, Reason: reason}
}
