// Package omit removes keys and dotted paths from event objects without
// mutating them.
//
// Only containers on a removal path are copied; every other value of the
// result is shared with the input.
package omit

import (
	"fmt"

	"github.com/spf13/cast"
)

// Omitter applies a fixed list of specifiers. It is immutable and safe for
// concurrent use.
type Omitter struct {
	specs []Spec
}

// New compiles keys with Key.
func New(keys ...string) *Omitter {
	specs := make([]Spec, len(keys))
	for i, k := range keys {
		specs[i] = Key(k)
	}
	return &Omitter{specs: specs}
}

// NewSpecs builds an Omitter from already compiled specifiers.
func NewSpecs(specs ...Spec) *Omitter {
	o := &Omitter{specs: make([]Spec, len(specs))}
	copy(o.specs, specs)
	return o
}

// Omit returns a new object equal to input without the entries matched by the
// specifiers. It fails with a *TypeError if input is not object-like; entries
// that do not exist are ignored.
func (o *Omitter) Omit(input any) (map[string]any, error) {
	if KindOf(input) != Object {
		return nil, newTypeError(input)
	}
	root := input.(map[string]any)

	plan := &node{}
	for _, s := range o.specs {
		s.schedule(root, plan)
	}
	return plan.apply(root), nil
}

// Omit removes keys from input. keys is a single specifier or a list of them,
// as decoded from YAML or JSON; see Key for how a specifier is interpreted.
func Omit(input any, keys any) (map[string]any, error) {
	if KindOf(input) != Object {
		return nil, newTypeError(input)
	}
	list, err := keyList(keys)
	if err != nil {
		return nil, err
	}
	return New(list...).Omit(input)
}

// Keys is Omit with the specifiers given as arguments.
func Keys(input any, keys ...string) (map[string]any, error) {
	return New(keys...).Omit(input)
}

func keyList(keys any) ([]string, error) {
	switch k := keys.(type) {
	case nil:
		return nil, nil
	case string:
		// cast splits strings on whitespace, a specifier is taken whole
		return []string{k}, nil
	}
	list, err := cast.ToStringSliceE(keys)
	if err != nil {
		return nil, fmt.Errorf("omit keys: %w", err)
	}
	return list, nil
}
