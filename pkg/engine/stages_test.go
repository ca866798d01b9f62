package engine

import (
	"context"
	"errors"
	"strings"
)

// Toy recommender shapes used across the tests:
// TD = []rating, DP = string, PD = ratingIndex, Q = string (user),
// P = []string (items), A = []string (items the user actually liked).

type rating struct {
	User, Item string
	Score      float64
}

type ratingIndex map[string][]rating

type sourceParams struct{ Path string }

type staticSource struct{ ratings []rating }

func (s staticSource) Read(context.Context) ([]DataSet[string, []rating, string, []string], error) {
	return []DataSet[string, []rating, string, []string]{{
		Params:   "static",
		Training: s.ratings,
		Eval:     []Labeled[string, []string]{{Query: "u1", Actual: []string{"i2"}}},
	}}, nil
}

type indexPreparator struct{}

func (indexPreparator) Prepare(_ context.Context, td []rating) (ratingIndex, error) {
	idx := make(ratingIndex)
	for _, r := range td {
		idx[r.User] = append(idx[r.User], r)
	}
	return idx, nil
}

type topParams struct{ N int }

// topModel is private to topAlgorithm.
type topModel struct{ items map[string][]string }

type topAlgorithm struct{ n int }

func (a topAlgorithm) Train(_ context.Context, pd ratingIndex) (topModel, error) {
	m := topModel{items: make(map[string][]string)}
	for user, rs := range pd {
		for i, r := range rs {
			if i >= a.n {
				break
			}
			m.items[user] = append(m.items[user], r.Item)
		}
	}
	return m, nil
}

func (a topAlgorithm) Predict(_ context.Context, m topModel, user string) ([]string, error) {
	return m.items[user], nil
}

type constAlgorithm struct{ items []string }

func (a constAlgorithm) Train(context.Context, ratingIndex) (int, error) { return len(a.items), nil }

func (a constAlgorithm) Predict(_ context.Context, n int, _ string) ([]string, error) {
	return a.items[:n], nil
}

type firstServing struct{}

func (firstServing) Serve(_ context.Context, _ string, ps [][]string) ([]string, error) {
	if len(ps) == 0 {
		return nil, errors.New("no predictions")
	}
	return ps[0], nil
}

// Compile-time checks that the toy stages satisfy their contracts.
var _ DataSource[string, []rating, string, []string] = staticSource{}
var _ Preparator[[]rating, ratingIndex] = indexPreparator{}
var _ Algorithm[ratingIndex, topModel, string, []string] = topAlgorithm{}
var _ Algorithm[ratingIndex, int, string, []string] = constAlgorithm{}
var _ Serving[string, []string] = firstServing{}

type testBuilder = Builder[[]rating, string, ratingIndex, string, []string, []string]

func newTestBuilder(opts ...Option) *testBuilder {
	return NewBuilder[[]rating, string, ratingIndex, string, []string, []string](opts...)
}

func sourceRef(name string) Ref[DataSource[string, []rating, string, []string]] {
	return NewRef(name, func(p sourceParams) (DataSource[string, []rating, string, []string], error) {
		if strings.HasPrefix(p.Path, "missing") {
			return nil, errors.New("no such file")
		}
		return staticSource{ratings: []rating{{User: "u1", Item: "i1", Score: 5}}}, nil
	})
}

func preparatorRef(name string) Ref[Preparator[[]rating, ratingIndex]] {
	return NewRef(name, func(struct{}) (Preparator[[]rating, ratingIndex], error) {
		return indexPreparator{}, nil
	})
}

func topRef(name string) Ref[ModelAlgorithm[ratingIndex, string, []string]] {
	return NewAlgorithmRef(name, func(p topParams) (Algorithm[ratingIndex, topModel, string, []string], error) {
		return topAlgorithm{n: p.N}, nil
	})
}

func constRef(name string, items ...string) Ref[ModelAlgorithm[ratingIndex, string, []string]] {
	return NewAlgorithmRef(name, func(struct{}) (Algorithm[ratingIndex, int, string, []string], error) {
		return constAlgorithm{items: items}, nil
	})
}

func servingRef(name string) Ref[Serving[string, []string]] {
	return NewRef(name, func(struct{}) (Serving[string, []string], error) {
		return firstServing{}, nil
	})
}
