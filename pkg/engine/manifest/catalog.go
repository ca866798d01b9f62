package manifest

import (
	"errors"
	"fmt"

	"github.com/ib-77/pengine/pkg/engine"
)

var (
	// ErrDuplicateStage reports a second registration under the same name.
	ErrDuplicateStage = errors.New("manifest: duplicate stage")
	// ErrUnknownStage reports a manifest name missing from the catalog.
	ErrUnknownStage = errors.New("manifest: unknown stage")
)

// Catalog indexes stage references by name, one namespace per slot kind.
// It is not safe for concurrent registration.
type Catalog[TD, DP, PD, Q, P, A any] struct {
	dataSources map[string]engine.Ref[engine.DataSource[DP, TD, Q, A]]
	preparators map[string]engine.Ref[engine.Preparator[TD, PD]]
	algorithms  map[string]engine.Ref[engine.ModelAlgorithm[PD, Q, P]]
	servings    map[string]engine.Ref[engine.Serving[Q, P]]
}

// NewCatalog returns an empty catalog.
func NewCatalog[TD, DP, PD, Q, P, A any]() *Catalog[TD, DP, PD, Q, P, A] {
	return &Catalog[TD, DP, PD, Q, P, A]{
		dataSources: make(map[string]engine.Ref[engine.DataSource[DP, TD, Q, A]]),
		preparators: make(map[string]engine.Ref[engine.Preparator[TD, PD]]),
		algorithms:  make(map[string]engine.Ref[engine.ModelAlgorithm[PD, Q, P]]),
		servings:    make(map[string]engine.Ref[engine.Serving[Q, P]]),
	}
}

// AddDataSource registers data sources under their names. Nothing is added when any
// name is empty or already taken.
func (c *Catalog[TD, DP, PD, Q, P, A]) AddDataSource(refs ...engine.Ref[engine.DataSource[DP, TD, Q, A]]) error {
	return register(c.dataSources, engine.StageDataSource, refs)
}

// AddPreparator registers preparators under their names. Nothing is added when any
// name is empty or already taken.
func (c *Catalog[TD, DP, PD, Q, P, A]) AddPreparator(refs ...engine.Ref[engine.Preparator[TD, PD]]) error {
	return register(c.preparators, engine.StagePreparator, refs)
}

// AddAlgorithm registers algorithms under their names. Nothing is added when any
// name is empty or already taken.
func (c *Catalog[TD, DP, PD, Q, P, A]) AddAlgorithm(refs ...engine.Ref[engine.ModelAlgorithm[PD, Q, P]]) error {
	return register(c.algorithms, engine.StageAlgorithm, refs)
}

// AddServing registers serving stages under their names. Nothing is added when any
// name is empty or already taken.
func (c *Catalog[TD, DP, PD, Q, P, A]) AddServing(refs ...engine.Ref[engine.Serving[Q, P]]) error {
	return register(c.servings, engine.StageServing, refs)
}

// register adds every ref or none of them.
func register[S any](into map[string]engine.Ref[S], stage engine.Stage, refs []engine.Ref[S]) error {
	seen := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		name := ref.Name()
		if ref.IsZero() || name == "" {
			return fmt.Errorf("%w: %v reference without a name", engine.ErrInvalidArgument, stage)
		}
		_, dup := seen[name]
		if _, exists := into[name]; exists || dup {
			return fmt.Errorf("%w: %v %q", ErrDuplicateStage, stage, name)
		}
		seen[name] = struct{}{}
	}

	for _, ref := range refs {
		into[ref.Name()] = ref
	}
	return nil
}

func lookup[S any](from map[string]engine.Ref[S], stage engine.Stage, name string, errs *[]error) engine.Ref[S] {
	if name == "" {
		return engine.Ref[S]{}
	}
	ref, ok := from[name]
	if !ok {
		*errs = append(*errs, fmt.Errorf("%w: %v %q", ErrUnknownStage, stage, name))
	}
	return ref
}
