package omit

import (
	"errors"
	"fmt"
)

// ErrNotObject is the prefix of every TypeError message; use errors.Is to match it.
var ErrNotObject = errors.New("omit expected object-like input value")

// TypeError is returned when the value given to Omit is not object-like.
type TypeError struct {
	Kind Kind
	Type string
}

func newTypeError(v any) *TypeError {
	return &TypeError{Kind: KindOf(v), Type: fmt.Sprintf("%T", v)}
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%s, got %s (%s)", ErrNotObject, e.Kind, e.Type)
}

func (e *TypeError) Is(target error) bool {
	return target == ErrNotObject
}
