package topology

import "testing"

func TestGetPromCounter(t *testing.T) {
	type TestCase struct {
		config map[any]any
		want   bool
	}

	before := len(counterManager)
	for _, c := range []TestCase{
		{
			config: nil,
			want:   false,
		},
		{
			config: map[any]any{"prometheus_counter": "test"},
			want:   false,
		},
		{
			config: map[any]any{"prometheus_counter": map[string]string{"namespace": "rack_a"}},
			want:   false,
		},
		{
			config: map[any]any{"prometheus_counter": map[string]string{
				"name":      "omitter_omit_filter",
				"namespace": "rack_a",
				"help":      "rack_a omitter omit filter counter",
			}},
			want: true,
		},
		{
			config: map[any]any{"prometheus_counter": map[string]string{
				"name":      "omitter_omit_filter",
				"namespace": "rack_a",
				"help":      "rack_a omitter omit filter counter",
			}},
			want: true,
		},
		{
			config: map[any]any{"prometheus_counter": map[string]string{
				"name":      "omitter_omit_filter",
				"namespace": "rack_a",
				"help":      "xxxxxxxxxxx",
			}},
			want: true,
		},
		{
			config: map[any]any{"prometheus_counter": map[any]any{
				"name":      "omitter_remove_filter",
				"namespace": "rack_a",
			}},
			want: true,
		},
	} {
		counter := GetPromCounter(c.config)
		if (counter != nil) != c.want {
			t.Errorf("GetPromCounter(%v) = %v, want %v", c.config, counter != nil, c.want)
		}
	}

	if got := len(counterManager) - before; got != 2 {
		t.Errorf("%d counters registered, want %d", got, 2)
	}
}
