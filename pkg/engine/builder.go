package engine

import (
	"log/slog"
	"maps"
	"slices"
	"strings"
)

// slots holds the four stage references shared by Builder and Engine.
type slots[TD, DP, PD, Q, P, A any] struct {
	dataSource Ref[DataSource[DP, TD, Q, A]]
	preparator Ref[Preparator[TD, PD]]
	algorithms map[string]Ref[ModelAlgorithm[PD, Q, P]]
	serving    Ref[Serving[Q, P]]
}

func (s slots[TD, DP, PD, Q, P, A]) clone() slots[TD, DP, PD, Q, P, A] {
	s.algorithms = maps.Clone(s.algorithms)
	if s.algorithms == nil {
		s.algorithms = make(map[string]Ref[ModelAlgorithm[PD, Q, P]])
	}
	return s
}

func (s slots[TD, DP, PD, Q, P, A]) algorithmNames() []string {
	return slices.Sorted(maps.Keys(s.algorithms))
}

func (s slots[TD, DP, PD, Q, P, A]) render(kind string) string {
	var sb strings.Builder
	sb.WriteString(kind)
	sb.WriteString(" ds=")
	sb.WriteString(s.dataSource.String())
	sb.WriteString(" p=")
	sb.WriteString(s.preparator.String())
	sb.WriteString(" algo=[")
	for i, name := range s.algorithmNames() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(name)
		sb.WriteByte(':')
		sb.WriteString(s.algorithms[name].String())
	}
	sb.WriteString("] s=")
	sb.WriteString(s.serving.String())
	return sb.String()
}

// Builder assembles an Engine. Setters may be called in any order and any
// number of times; the last call wins for each slot and, for algorithms,
// for each name.
//
// A Builder is not safe for concurrent use.
type Builder[TD, DP, PD, Q, P, A any] struct {
	slots[TD, DP, PD, Q, P, A]
	log *slog.Logger
}

// NewBuilder returns an empty builder.
func NewBuilder[TD, DP, PD, Q, P, A any](opts ...Option) *Builder[TD, DP, PD, Q, P, A] {
	o := newOptions(opts)
	b := &Builder[TD, DP, PD, Q, P, A]{log: o.logger}
	b.algorithms = make(map[string]Ref[ModelAlgorithm[PD, Q, P]])
	return b
}

// DataSource sets the data source. A zero ref clears the slot.
func (b *Builder[TD, DP, PD, Q, P, A]) DataSource(ref Ref[DataSource[DP, TD, Q, A]]) *Builder[TD, DP, PD, Q, P, A] {
	b.dataSource = ref
	b.log.Debug("engine: stage set", "stage", StageDataSource, "ref", ref.String())
	return b
}

// Preparator sets the preparator. A zero ref clears the slot.
func (b *Builder[TD, DP, PD, Q, P, A]) Preparator(ref Ref[Preparator[TD, PD]]) *Builder[TD, DP, PD, Q, P, A] {
	b.preparator = ref
	b.log.Debug("engine: stage set", "stage", StagePreparator, "ref", ref.String())
	return b
}

// AddAlgorithm registers ref under name, replacing any algorithm already
// registered there. It panics with an error wrapping ErrInvalidArgument
// when name is empty or ref is zero; use RemoveAlgorithm to drop a name.
func (b *Builder[TD, DP, PD, Q, P, A]) AddAlgorithm(name string, ref Ref[ModelAlgorithm[PD, Q, P]]) *Builder[TD, DP, PD, Q, P, A] {
	if name == "" {
		panic(invalidArgument("empty algorithm name for %v", ref))
	}
	if ref.IsZero() {
		panic(invalidArgument("absent reference for algorithm %q", name))
	}

	if prev, ok := b.algorithms[name]; ok {
		b.log.Debug("engine: algorithm replaced", "name", name, "prev", prev.String(), "ref", ref.String())
	} else {
		b.log.Debug("engine: stage set", "stage", StageAlgorithm, "name", name, "ref", ref.String())
	}
	b.algorithms[name] = ref
	return b
}

// RemoveAlgorithm drops name from the registry if present.
func (b *Builder[TD, DP, PD, Q, P, A]) RemoveAlgorithm(name string) *Builder[TD, DP, PD, Q, P, A] {
	if _, ok := b.algorithms[name]; ok {
		delete(b.algorithms, name)
		b.log.Debug("engine: algorithm removed", "name", name)
	}
	return b
}

// Serving sets the serving stage. A zero ref clears the slot.
func (b *Builder[TD, DP, PD, Q, P, A]) Serving(ref Ref[Serving[Q, P]]) *Builder[TD, DP, PD, Q, P, A] {
	b.serving = ref
	b.log.Debug("engine: stage set", "stage", StageServing, "ref", ref.String())
	return b
}

// Reset empties every slot.
func (b *Builder[TD, DP, PD, Q, P, A]) Reset() *Builder[TD, DP, PD, Q, P, A] {
	b.slots = slots[TD, DP, PD, Q, P, A]{}.clone()
	return b
}

// Build snapshots the current slots into a new Engine. It never fails; absent
// stages stay absent in the engine. The builder may keep being used.
func (b *Builder[TD, DP, PD, Q, P, A]) Build() *Engine[TD, DP, PD, Q, P, A] {
	e := newEngine(b.slots.clone())
	b.log.Debug("engine: built", "id", e.ID(), "algorithms", len(e.algorithms))
	return e
}

// String renders the slots for debugging.
func (b *Builder[TD, DP, PD, Q, P, A]) String() string {
	return b.render("Builder")
}
