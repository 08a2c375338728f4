package filter

import (
	encodingjson "encoding/json"
	"reflect"
	"testing"
)

func TestJson(t *testing.T) {
	type testCase struct {
		event   map[string]any
		config  map[any]any
		want    map[string]any
		success bool
	}

	cases := []testCase{
		{
			map[string]any{
				"message": `{"a":1,"b":2}`,
				"a":       10,
			},
			map[any]any{
				"field":     "message",
				"overwrite": true,
			},
			map[string]any{
				"message": `{"a":1,"b":2}`,
				"a":       encodingjson.Number("1"),
				"b":       encodingjson.Number("2"),
			},
			true,
		},
		{
			map[string]any{
				"message": `{"a":1,"b":2}`,
				"a":       10,
			},
			map[any]any{
				"field":     "message",
				"overwrite": false,
			},
			map[string]any{
				"message": `{"a":1,"b":2}`,
				"a":       10,
				"b":       encodingjson.Number("2"),
			},
			true,
		},
		{
			map[string]any{
				"message": `{"a":1,"b":2}`,
			},
			map[any]any{
				"field":  "message",
				"target": "c",
			},
			map[string]any{
				"message": `{"a":1,"b":2}`,
				"c":       map[string]any{"a": encodingjson.Number("1"), "b": encodingjson.Number("2")},
			},
			true,
		},
		{
			map[string]any{
				"message": `not json`,
			},
			map[any]any{
				"field": "message",
			},
			map[string]any{
				"message": `not json`,
			},
			false,
		},
		{
			map[string]any{
				"message": 1,
			},
			map[any]any{
				"field": "message",
			},
			map[string]any{
				"message": 1,
			},
			false,
		},
	}

	for _, c := range cases {
		f := BuildFilter("Json", c.config)
		got, ok := f.Filter(c.event)
		if ok != c.success {
			t.Errorf("%v: success = %v, want %v", c.event, ok, c.success)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("got %v, want %v", got, c.want)
		}
	}
}

func TestJsonThenOmit(t *testing.T) {
	event := map[string]any{"message": `{"user":{"name":"dehua","password":"xxx"}}`}

	event, _ = BuildFilter("Json", map[any]any{"field": "message", "target": "doc"}).Filter(event)
	event, _ = BuildFilter("Omit", map[any]any{"fields": []any{"doc.user.password", "message"}}).Filter(event)

	want := map[string]any{"doc": map[string]any{"user": map[string]any{"name": "dehua"}}}
	if !reflect.DeepEqual(event, want) {
		t.Errorf("got %v, want %v", event, want)
	}
}
