package engine

import (
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Engine is an immutable bundle of stage references produced by
// Builder.Build. It is safe for concurrent reads.
type Engine[TD, DP, PD, Q, P, A any] struct {
	slots[TD, DP, PD, Q, P, A]
	id        uuid.UUID
	createdAt time.Time
}

func newEngine[TD, DP, PD, Q, P, A any](s slots[TD, DP, PD, Q, P, A]) *Engine[TD, DP, PD, Q, P, A] {
	return &Engine[TD, DP, PD, Q, P, A]{
		slots:     s,
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
	}
}

// ID identifies this build. Every Build call yields a new ID.
func (e *Engine[TD, DP, PD, Q, P, A]) ID() uuid.UUID {
	return e.id
}

// CreatedAt is the build time (UTC).
func (e *Engine[TD, DP, PD, Q, P, A]) CreatedAt() time.Time {
	return e.createdAt
}

// DataSource returns the data source reference and whether one was set.
func (e *Engine[TD, DP, PD, Q, P, A]) DataSource() (Ref[DataSource[DP, TD, Q, A]], bool) {
	return e.dataSource, !e.dataSource.IsZero()
}

// Preparator returns the preparator reference and whether one was set.
func (e *Engine[TD, DP, PD, Q, P, A]) Preparator() (Ref[Preparator[TD, PD]], bool) {
	return e.preparator, !e.preparator.IsZero()
}

// Serving returns the serving reference and whether one was set.
func (e *Engine[TD, DP, PD, Q, P, A]) Serving() (Ref[Serving[Q, P]], bool) {
	return e.serving, !e.serving.IsZero()
}

// Algorithms returns a copy of the name to reference mapping.
func (e *Engine[TD, DP, PD, Q, P, A]) Algorithms() map[string]Ref[ModelAlgorithm[PD, Q, P]] {
	return maps.Clone(e.algorithms)
}

// Algorithm looks up a single algorithm by name.
func (e *Engine[TD, DP, PD, Q, P, A]) Algorithm(name string) (Ref[ModelAlgorithm[PD, Q, P]], bool) {
	ref, ok := e.algorithms[name]
	return ref, ok
}

// AlgorithmNames returns the registered names in sorted order.
func (e *Engine[TD, DP, PD, Q, P, A]) AlgorithmNames() []string {
	return e.algorithmNames()
}

// SameStages reports whether e and other hold the same references in every
// slot, ignoring their build identity.
func (e *Engine[TD, DP, PD, Q, P, A]) SameStages(other *Engine[TD, DP, PD, Q, P, A]) bool {
	if other == nil {
		return false
	}
	return e.dataSource == other.dataSource &&
		e.preparator == other.preparator &&
		e.serving == other.serving &&
		maps.Equal(e.algorithms, other.algorithms)
}

// Missing lists the slots with nothing in them. An empty algorithm registry
// is reported as StageAlgorithm.
func (e *Engine[TD, DP, PD, Q, P, A]) Missing() []Stage {
	var missing []Stage
	if e.dataSource.IsZero() {
		missing = append(missing, StageDataSource)
	}
	if e.preparator.IsZero() {
		missing = append(missing, StagePreparator)
	}
	if len(e.algorithms) == 0 {
		missing = append(missing, StageAlgorithm)
	}
	if e.serving.IsZero() {
		missing = append(missing, StageServing)
	}
	return missing
}

// Require returns ErrMissingStage, once per absent slot among stages, joined
// into a single error. It is meant for drivers that need certain stages;
// the engine itself treats every slot as optional.
func (e *Engine[TD, DP, PD, Q, P, A]) Require(stages ...Stage) error {
	missing := make(map[Stage]bool)
	for _, s := range e.Missing() {
		missing[s] = true
	}

	var errs []error
	for _, s := range stages {
		if missing[s] {
			errs = append(errs, fmt.Errorf("%w: %v", ErrMissingStage, s))
			delete(missing, s)
		}
	}
	return errors.Join(errs...)
}

func (e *Engine[TD, DP, PD, Q, P, A]) String() string {
	return e.render("Engine " + e.id.String())
}
