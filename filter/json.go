package filter

import (
	"bytes"

	"github.com/childe/omitter/topology"
	jsoniter "github.com/json-iterator/go"
	"k8s.io/klog/v2"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JsonConfig defines the configuration structure for Json filter
type JsonConfig struct {
	Field     string `mapstructure:"field"`
	Target    string `mapstructure:"target"`
	Overwrite bool   `mapstructure:"overwrite"`
}

// JsonFilter decodes a JSON object held in a string field, so that
// later filters can reach its nested fields.
type JsonFilter struct {
	config map[any]any

	field     string
	target    string
	overwrite bool
}

func init() {
	Register("Json", newJsonFilter)
}

func newJsonFilter(config map[any]any) topology.Filter {
	jsonConfig := JsonConfig{Overwrite: true}
	SafeDecodeConfig("Json", config, &jsonConfig)
	if jsonConfig.Field == "" {
		klog.Fatal("Json filter: 'field' is required")
	}

	return &JsonFilter{
		config:    config,
		field:     jsonConfig.Field,
		target:    jsonConfig.Target,
		overwrite: jsonConfig.Overwrite,
	}
}

// Filter returns a new top-level event; the incoming one is not modified.
func (plugin *JsonFilter) Filter(event map[string]any) (map[string]any, bool) {
	s, ok := event[plugin.field].(string)
	if !ok {
		return event, false
	}

	o := make(map[string]any)
	d := json.NewDecoder(bytes.NewReader([]byte(s)))
	d.UseNumber()
	if err := d.Decode(&o); err != nil {
		klog.V(5).Infof("Json filter: decode %s error: %v", plugin.field, err)
		return event, false
	}

	rst := make(map[string]any, len(event)+len(o))
	for k, v := range event {
		rst[k] = v
	}
	if plugin.target != "" {
		rst[plugin.target] = o
		return rst, true
	}
	for k, v := range o {
		if _, exists := rst[k]; exists && !plugin.overwrite {
			continue
		}
		rst[k] = v
	}
	return rst, true
}
