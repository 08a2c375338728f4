package filter

import (
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

type BuildFilterFunc func(map[any]any) topology.Filter

var registeredFilter = make(map[string]BuildFilterFunc)

// Register is used by filter plugins to register themselves
func Register(filterType string, bf BuildFilterFunc) {
	if _, ok := registeredFilter[filterType]; ok {
		klog.Errorf("%s has been registered, ignore %T", filterType, bf)
		return
	}
	registeredFilter[filterType] = bf
}

// BuildFilter returns nil if no plugin is registered as filterType.
func BuildFilter(filterType string, config map[any]any) topology.Filter {
	if v, ok := registeredFilter[filterType]; ok {
		return v(config)
	}
	klog.Errorf("could not load %s filter plugin", filterType)
	return nil
}
