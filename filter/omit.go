package filter

import (
	"github.com/childe/omitter/omit"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

// OmitConfig defines the configuration structure for Omit filter
type OmitConfig struct {
	Fields []string `mapstructure:"fields"`
}

// OmitFilter removes keys and dotted paths from events.
// A key like `a.b` removes the top-level field "a.b" as well as field b nested in a.
type OmitFilter struct {
	config  map[any]any
	omitter *omit.Omitter
}

func init() {
	Register("Omit", newOmitFilter)
}

func newOmitFilter(config map[any]any) topology.Filter {
	var omitConfig OmitConfig
	SafeDecodeConfig("Omit", config, &omitConfig)
	if len(omitConfig.Fields) == 0 {
		klog.Fatal("Omit filter: 'fields' is required and cannot be empty")
	}

	return &OmitFilter{
		config:  config,
		omitter: omit.New(omitConfig.Fields...),
	}
}

func (plugin *OmitFilter) Filter(event map[string]any) (map[string]any, bool) {
	rst, err := plugin.omitter.Omit(event)
	if err != nil {
		klog.Errorf("Omit filter: %v", err)
		return event, false
	}
	return rst, true
}
