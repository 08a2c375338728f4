package output

import (
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

type BuildOutputFunc func(map[any]any) topology.Output

var registeredOutput = make(map[string]BuildOutputFunc)

// Register is used by output plugins to register themselves
func Register(outputType string, bf BuildOutputFunc) {
	if _, ok := registeredOutput[outputType]; ok {
		klog.Errorf("%s has been registered, ignore %T", outputType, bf)
		return
	}
	registeredOutput[outputType] = bf
}

// BuildOutput returns nil if no plugin is registered as outputType.
func BuildOutput(outputType string, config map[any]any) topology.Output {
	if v, ok := registeredOutput[outputType]; ok {
		return v(config)
	}
	klog.Errorf("could not load %s output plugin", outputType)
	return nil
}
