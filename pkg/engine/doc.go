// Package engine assembles the four pluggable stages of a prediction
// pipeline (data source, preparator, named algorithms and serving) into an
// immutable Engine whose stage types are checked by the compiler.
//
// A Builder carries the six correlated type parameters TD (training data),
// DP (data params), PD (prepared data), Q (query), P (prediction) and
// A (actual value). Every setter is typed in terms of them, so a preparator
// whose output does not match the algorithms' input never compiles.
//
// Highlights:
// - DataSource/Preparator/Algorithm/Serving: stage capability contracts
// - Ref: a named, not yet instantiated stage factory
// - NewBuilder/Builder: fluent, last-write-wins assembly
// - Build/Engine: immutable snapshot handed to an external driver
//
// The package does not run the pipeline. Training, serving and evaluation
// belong to whatever driver reads the Engine.
package engine
