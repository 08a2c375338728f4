package filter

import "github.com/childe/omitter/topology"

type dropFilter struct {
	config map[any]any
}

func init() {
	Register("Drop", newDropFilter)
}

func newDropFilter(config map[any]any) topology.Filter {
	return &dropFilter{config: config}
}

func (plugin *dropFilter) Filter(event map[string]any) (map[string]any, bool) {
	return nil, true
}
