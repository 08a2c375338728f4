package topology

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"k8s.io/klog/v2"
)

var lock = sync.Mutex{}
var counterManager = make(map[string]prometheus.Counter)

// counterKey identifies a counter by everything but its help text.
func counterKey(opts prometheus.CounterOpts) string {
	labels := make([]string, 0, len(opts.ConstLabels))
	for k, v := range opts.ConstLabels {
		labels = append(labels, k+"="+v)
	}
	sort.Strings(labels)
	return fmt.Sprintf("%s_%s_%s{%s}", opts.Namespace, opts.Subsystem, opts.Name, strings.Join(labels, ","))
}

// GetPromCounter creates a prometheus.Counter from the `prometheus_counter` config.
// Every worker builds its own filter boxes from the same config, so counters
// with the same options are shared instead of being registered twice.
func GetPromCounter(config map[any]any) prometheus.Counter {
	lock.Lock()
	defer lock.Unlock()

	promConf, ok := config["prometheus_counter"]
	if !ok {
		return nil
	}

	var opts prometheus.CounterOpts
	if err := mapstructure.Decode(promConf, &opts); err != nil {
		klog.Errorf("decode prometheus counter config error: %v", err)
		return nil
	}
	if opts.Name == "" {
		klog.Errorf("prometheus counter name is required: %v", promConf)
		return nil
	}
	if opts.Help == "" {
		opts.Help = opts.Name
	}

	key := counterKey(opts)
	if v, ok := counterManager[key]; ok {
		return v
	}
	c := promauto.NewCounter(opts)
	counterManager[key] = c
	return c
}
