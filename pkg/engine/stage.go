package engine

import "context"

// DataSet is one slice of data produced by a DataSource. Eval holds the
// optional held-out query/actual pairs used by evaluation.
type DataSet[DP, TD, Q, A any] struct {
	Params   DP
	Training TD
	Eval     []Labeled[Q, A]
}

// Labeled pairs a query with its ground-truth value.
type Labeled[Q, A any] struct {
	Query  Q
	Actual A
}

// DataSource reads training data and the params describing how it was obtained.
type DataSource[DP, TD, Q, A any] interface {
	Read(ctx context.Context) ([]DataSet[DP, TD, Q, A], error)
}

// Preparator turns training data into algorithm input.
type Preparator[TD, PD any] interface {
	Prepare(ctx context.Context, td TD) (PD, error)
}

// Algorithm trains a model of its own type M and answers queries with it.
type Algorithm[PD, M, Q, P any] interface {
	Train(ctx context.Context, pd PD) (M, error)
	Predict(ctx context.Context, model M, q Q) (P, error)
}

// Model is an algorithm model whose concrete type is private to the algorithm.
type Model = any

// ModelAlgorithm is an Algorithm with its model type erased, so algorithms
// with different models can share one registry.
type ModelAlgorithm[PD, Q, P any] interface {
	Algorithm[PD, Model, Q, P]
}

// Serving combines the predictions of every algorithm into the final answer.
type Serving[Q, P any] interface {
	Serve(ctx context.Context, q Q, predictions []P) (P, error)
}

type erased[PD, M, Q, P any] struct {
	alg Algorithm[PD, M, Q, P]
}

// EraseModel hides the model type of alg. Predict fails with ErrModelType
// when handed a model that alg did not train.
// A nil alg stays nil.
func EraseModel[PD, M, Q, P any](alg Algorithm[PD, M, Q, P]) ModelAlgorithm[PD, Q, P] {
	if alg == nil {
		return nil
	}
	if ma, ok := any(alg).(ModelAlgorithm[PD, Q, P]); ok {
		return ma
	}
	return erased[PD, M, Q, P]{alg: alg}
}

func (e erased[PD, M, Q, P]) Train(ctx context.Context, pd PD) (Model, error) {
	m, err := e.alg.Train(ctx, pd)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (e erased[PD, M, Q, P]) Predict(ctx context.Context, model Model, q Q) (P, error) {
	m, ok := model.(M)
	if !ok {
		var zero P
		return zero, modelTypeError[M](model)
	}
	return e.alg.Predict(ctx, m, q)
}
