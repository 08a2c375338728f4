package filter

import (
	"github.com/childe/omitter/field_deleter"
	"github.com/childe/omitter/topology"
	"k8s.io/klog/v2"
)

// RemoveConfig defines the configuration structure for Remove filter
type RemoveConfig struct {
	Fields []string `mapstructure:"fields"`
}

type RemoveFilter struct {
	config         map[any]any
	fieldsDeleters []field_deleter.FieldDeleter
}

func init() {
	Register("Remove", newRemoveFilter)
}

func newRemoveFilter(config map[any]any) topology.Filter {
	var removeConfig RemoveConfig
	SafeDecodeConfig("Remove", config, &removeConfig)
	if len(removeConfig.Fields) == 0 {
		klog.Fatal("Remove filter: 'fields' cannot be empty")
	}

	plugin := &RemoveFilter{
		config:         config,
		fieldsDeleters: make([]field_deleter.FieldDeleter, 0, len(removeConfig.Fields)),
	}
	for _, field := range removeConfig.Fields {
		plugin.fieldsDeleters = append(plugin.fieldsDeleters, field_deleter.NewFieldDeleter(field))
	}
	return plugin
}

func (plugin *RemoveFilter) Filter(event map[string]any) (map[string]any, bool) {
	for _, d := range plugin.fieldsDeleters {
		event = d.Delete(event)
	}
	return event, true
}
