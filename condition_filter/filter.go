// Package condition_filter gates a filter on the `if` option: a list of
// boolean expressions over event fields, all of which must pass.
//
//	if:
//	  - 'Exist(user.password)'
//	  - 'EQ(level,"debug") || !Match($.path,"^/health")'
package condition_filter

import (
	"fmt"

	"github.com/spf13/cast"
)

type ConditionFilter struct {
	conditions []Condition
}

// NewConditionFilter returns a filter that passes everything if config has no
// `if` option.
func NewConditionFilter(config map[any]any) (*ConditionFilter, error) {
	var (
		f   = &ConditionFilter{}
		err error
	)

	v, ok := config["if"]
	if !ok || v == nil {
		return f, nil
	}

	var list []string
	if s, isString := v.(string); isString {
		list = []string{s}
	} else if list, err = cast.ToStringSliceE(v); err != nil {
		return nil, fmt.Errorf("if must be a list of conditions: %w", err)
	}

	f.conditions = make([]Condition, len(list))
	for i, c := range list {
		root, err := parseBoolTree(c)
		if err != nil {
			return nil, err
		}
		f.conditions[i] = root
	}
	return f, nil
}

func (f *ConditionFilter) Pass(event map[string]any) bool {
	for _, c := range f.conditions {
		if !c.Pass(event) {
			return false
		}
	}
	return true
}
