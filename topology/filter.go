package topology

import (
	"github.com/childe/omitter/condition_filter"
	"github.com/childe/omitter/field_deleter"
	"github.com/childe/omitter/omit"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"k8s.io/klog/v2"
)

type Filter interface {
	Filter(map[string]any) (map[string]any, bool)
}

// FilterBox wraps a Filter with the options every filter accepts:
// if, remove_fields, failTag and prometheus_counter.
type FilterBox struct {
	Filter Filter

	config          map[any]any
	conditionFilter *condition_filter.ConditionFilter

	failTag      string
	removeFields *omit.Omitter
	promCounter  prometheus.Counter
}

func NewFilterBox(config map[any]any) *FilterBox {
	f := FilterBox{
		config:      config,
		promCounter: GetPromCounter(config),
	}

	conditionFilter, err := condition_filter.NewConditionFilter(config)
	if err != nil {
		klog.Fatalf("could not build if conditions: %v", err)
	}
	f.conditionFilter = conditionFilter

	if v, ok := config["failTag"]; ok {
		tag, err := cast.ToStringE(v)
		if err != nil {
			klog.Fatalf("failTag must be a string: %v", err)
		}
		f.failTag = tag
	}

	if v, ok := config["remove_fields"]; ok {
		fields, err := cast.ToStringSliceE(v)
		if err != nil {
			klog.Fatalf("remove_fields must be a list of strings: %v", err)
		}
		f.removeFields = field_deleter.Compile(fields)
	}

	return &f
}

func (f *FilterBox) PostProcess(event map[string]any, success bool) map[string]any {
	if success {
		if f.removeFields != nil {
			if rst, err := f.removeFields.Omit(event); err == nil {
				event = rst
			}
		}
		return event
	}

	if f.failTag != "" {
		event = addTag(event, f.failTag)
	}
	return event
}

// addTag returns a copy of event with tag appended to its tags, turning a
// single string tag into a list. event and its tags are left untouched.
func addTag(event map[string]any, tag string) map[string]any {
	var tags any
	switch t := event["tags"].(type) {
	case nil:
		tags = tag
	case string:
		tags = []any{t, tag}
	case []any:
		tags = append(t[:len(t):len(t)], tag)
	case []string:
		tags = append(t[:len(t):len(t)], tag)
	default:
		klog.V(5).Infof("tags is %T, could not add %s", t, tag)
		return event
	}

	rst := make(map[string]any, len(event)+1)
	for k, v := range event {
		rst[k] = v
	}
	rst["tags"] = tags
	return rst
}

// Process runs the filter and the common options on events passing the if
// conditions; others go through unchanged. A nil return means the event has
// been dropped.
func (f *FilterBox) Process(event map[string]any) map[string]any {
	if !f.conditionFilter.Pass(event) {
		return event
	}

	if f.promCounter != nil {
		f.promCounter.Inc()
	}

	event, rst := f.Filter.Filter(event)
	if event == nil {
		return nil
	}
	return f.PostProcess(event, rst)
}

type buildFilterFunc func(filterType string, config map[any]any) Filter

// BuildFilterBoxes builds the boxes listed under `filters`, in order.
func BuildFilterBoxes(config map[string]any, buildFilter buildFilterFunc) []*FilterBox {
	filtersI, ok := config["filters"]
	if !ok || filtersI == nil {
		return nil
	}

	boxes := make([]*FilterBox, 0)
	for _, filterI := range filtersI.([]any) {
		// len(filterI) is 1
		for filterTypeI, filterConfigI := range filterI.(map[any]any) {
			filterType := filterTypeI.(string)
			klog.Infof("filter type: %s", filterType)

			filterConfig, _ := filterConfigI.(map[any]any)
			if filterConfig == nil {
				filterConfig = make(map[any]any)
			}
			klog.Infof("filter config: %v", filterConfig)

			box := NewFilterBox(filterConfig)
			box.Filter = buildFilter(filterType, filterConfig)
			if box.Filter == nil {
				klog.Fatalf("could not build %s filter", filterType)
			}
			boxes = append(boxes, box)
		}
	}
	return boxes
}
