// SPDX-License-Identifier: MIT

// Package session keeps live solvers addressable by UUID so a caller can
// create a problem once and stream row/column updates against it.
//
// A hungarian.Solver is not safe for concurrent use, so every session owns
// one mutex and every operation on it holds that mutex for its full duration.
// Operations on different sessions run in parallel.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/dynhung/hungarian"
	"github.com/katalvlaran/dynhung/internal/metrics"
	"github.com/katalvlaran/dynhung/matrix"
)

var (
	// ErrNotFound is returned for an unknown or deleted session id.
	ErrNotFound = errors.New("session: not found")

	// ErrTooLarge is returned when a problem exceeds the configured max n.
	ErrTooLarge = errors.New("session: problem too large")
)

// Snapshot is the state of one session after an operation.
type Snapshot struct {
	ID      uuid.UUID
	Created time.Time
	hungarian.Result
}

type entry struct {
	mu      sync.Mutex
	solver  *hungarian.Solver
	created time.Time
}

// Registry owns every live session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*entry

	maxN    int
	opts    []hungarian.Option
	log     *zap.Logger
	metrics metrics.Collector
	now     func() time.Time
}

// NewRegistry returns an empty registry. maxN <= 0 disables the size limit.
// opts are passed to every solver the registry creates.
func NewRegistry(log *zap.Logger, m metrics.Collector, maxN int, opts ...hungarian.Option) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	if m == nil {
		m = metrics.NewNop()
	}

	return &Registry{
		sessions: make(map[uuid.UUID]*entry),
		maxN:     maxN,
		opts:     opts,
		log:      log,
		metrics:  m,
		now:      time.Now,
	}
}

// Create solves a new problem given as a row-major n² slice and registers it.
func (r *Registry) Create(flat []float64) (Snapshot, error) {
	if n, ok := matrix.ExactSqrt(len(flat)); ok && r.maxN > 0 && n > r.maxN {
		r.metrics.IncrementError("create", Kind(ErrTooLarge))
		return Snapshot{}, fmt.Errorf("%w: n=%d exceeds %d", ErrTooLarge, n, r.maxN)
	}

	start := r.now()
	solver, err := hungarian.NewFromFlat(flat, r.opts...)
	if err != nil {
		r.metrics.IncrementError("create", Kind(err))
		return Snapshot{}, err
	}
	r.metrics.ObserveSolve(solver.N(), solver.Iterations(), r.now().Sub(start).Seconds())

	e := &entry{solver: solver, created: r.now()}
	id := uuid.New()

	r.mu.Lock()
	r.sessions[id] = e
	count := len(r.sessions)
	r.mu.Unlock()
	r.metrics.SetSessions(count)

	r.log.Info("session created",
		zap.String("id", id.String()),
		zap.Int("n", solver.N()),
		zap.Float64("cost", solver.Cost()),
	)

	return Snapshot{ID: id, Created: e.created, Result: solver.Snapshot()}, nil
}

// Get returns the current state of session id.
func (r *Registry) Get(id uuid.UUID) (Snapshot, error) {
	e, err := r.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{ID: id, Created: e.created, Result: e.solver.Snapshot()}, nil
}

// Check runs the optimality certificate of session id with tolerance tol.
func (r *Registry) Check(id uuid.UUID, tol float64) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.solver.Check(tol)
}

// Update applies an incremental row or column update to session id. flat is
// the complete replacement matrix and changed the indices that differ.
func (r *Registry) Update(id uuid.UUID, axis hungarian.Axis, flat []float64, changed []int) (Snapshot, error) {
	op := "update_" + axis.String()
	e, err := r.lookup(id)
	if err != nil {
		r.metrics.IncrementError(op, Kind(err))
		return Snapshot{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	start := r.now()
	if axis == hungarian.AxisCol {
		err = e.solver.UpdateColsFlat(flat, changed)
	} else {
		err = e.solver.UpdateRowsFlat(flat, changed)
	}
	if err != nil {
		r.metrics.IncrementError(op, Kind(err))
		return Snapshot{}, err
	}
	r.metrics.ObserveUpdate(axis.String(), len(changed), e.solver.Iterations(), r.now().Sub(start).Seconds())

	r.log.Debug("session updated",
		zap.String("id", id.String()),
		zap.Stringer("axis", axis),
		zap.Ints("changed", changed),
		zap.Float64("cost", e.solver.Cost()),
	)

	return Snapshot{ID: id, Created: e.created, Result: e.solver.Snapshot()}, nil
}

// Delete removes session id.
func (r *Registry) Delete(id uuid.UUID) error {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	count := len(r.sessions)
	r.mu.Unlock()

	if !ok {
		r.metrics.IncrementError("delete", Kind(ErrNotFound))
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	r.metrics.SetSessions(count)
	r.log.Info("session deleted", zap.String("id", id.String()))

	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.sessions)
}

func (r *Registry) lookup(id uuid.UUID) (*entry, error) {
	r.mu.RLock()
	e, ok := r.sessions[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	return e, nil
}

// Kind classifies err for metrics labels and transport status mapping:
// "shape", "index", "value", "too_large", "not_found" or "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, hungarian.ErrShape),
		errors.Is(err, matrix.ErrNonSquare),
		errors.Is(err, matrix.ErrDimensionMismatch),
		errors.Is(err, matrix.ErrInvalidDimensions):
		return "shape"
	case errors.Is(err, hungarian.ErrIndex):
		return "index"
	case errors.Is(err, hungarian.ErrValue), errors.Is(err, matrix.ErrNaNInf):
		return "value"
	case errors.Is(err, ErrTooLarge):
		return "too_large"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	}

	return "internal"
}
