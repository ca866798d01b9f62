package engine

import (
	"fmt"
	"reflect"
)

// Ref names a stage implementation without instantiating it. The params
// type of the stage is captured by the factory and does not appear in Ref's
// type, so stages with different params fit the same slot.
//
// The zero Ref is absent. Refs are comparable; two refs are equal only when
// they come from the same constructor call.
type Ref[S any] struct {
	f *factory[S]
}

type factory[S any] struct {
	name   string
	params reflect.Type
	build  func(params any) (S, error)
}

// NewRef wraps fn as a reference named name. It panics with
// ErrInvalidArgument when fn is nil.
func NewRef[Prm, S any](name string, fn func(params Prm) (S, error)) Ref[S] {
	if fn == nil {
		panic(invalidArgument("nil factory for stage %q", name))
	}

	paramsType := reflect.TypeFor[Prm]()
	return Ref[S]{f: &factory[S]{
		name:   name,
		params: paramsType,
		build: func(params any) (S, error) {
			var p Prm
			if params != nil {
				typed, ok := params.(Prm)
				if !ok {
					var zero S
					return zero, fmt.Errorf("%w: want %v, got %T", ErrParamsMismatch, paramsType, params)
				}
				p = typed
			}
			return fn(p)
		},
	}}
}

// NewAlgorithmRef wraps an algorithm factory, erasing the algorithm's model
// type so the reference fits a Builder's algorithm registry.
func NewAlgorithmRef[Prm, PD, M, Q, P any](name string,
	fn func(params Prm) (Algorithm[PD, M, Q, P], error)) Ref[ModelAlgorithm[PD, Q, P]] {

	if fn == nil {
		panic(invalidArgument("nil factory for algorithm %q", name))
	}

	return NewRef(name, func(params Prm) (ModelAlgorithm[PD, Q, P], error) {
		alg, err := fn(params)
		if err != nil {
			return nil, err
		}
		if alg == nil {
			return nil, fmt.Errorf("%w: factory returned a nil algorithm", ErrNoStage)
		}
		return EraseModel(alg), nil
	})
}

// Name returns the display name given at construction.
func (r Ref[S]) Name() string {
	if r.f == nil {
		return ""
	}
	return r.f.name
}

// IsZero reports whether r is absent.
func (r Ref[S]) IsZero() bool {
	return r.f == nil
}

// ParamsType returns the Go type the factory expects, or nil for an absent ref.
func (r Ref[S]) ParamsType() reflect.Type {
	if r.f == nil {
		return nil
	}
	return r.f.params
}

// New instantiates the stage. A nil params stands for the zero value of the
// factory's params type.
func (r Ref[S]) New(params any) (S, error) {
	if r.f == nil {
		var zero S
		return zero, ErrNoStage
	}

	s, err := r.f.build(params)
	if err != nil {
		var zero S
		return zero, fmt.Errorf("stage %q: %w", r.f.name, err)
	}
	return s, nil
}

func (r Ref[S]) String() string {
	if r.f == nil {
		return "<nil>"
	}
	if r.f.name == "" {
		return fmt.Sprintf("<%v>", r.f.params)
	}
	return r.f.name
}
