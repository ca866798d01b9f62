package engine

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrInvalidArgument reports a malformed builder or reference argument,
	// such as an empty algorithm name or a nil factory.
	ErrInvalidArgument = errors.New("engine: invalid argument")
	// ErrParamsMismatch reports params of the wrong type handed to Ref.New.
	ErrParamsMismatch = errors.New("engine: params type mismatch")
	// ErrNoStage reports an attempt to instantiate an absent reference.
	ErrNoStage = errors.New("engine: no stage")
	// ErrMissingStage is returned by Engine.Require for each absent slot.
	ErrMissingStage = errors.New("engine: missing stage")
	// ErrModelType reports a model handed to an algorithm that did not train it.
	ErrModelType = errors.New("engine: model type mismatch")
)

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func modelTypeError[M any](got Model) error {
	return fmt.Errorf("%w: want %v, got %T", ErrModelType, reflect.TypeFor[M](), got)
}
