package codec

import (
	"reflect"
	"testing"

	"github.com/magiconair/properties/assert"
)

func TestNewEncoder(t *testing.T) {
	cases := []struct {
		codec       string
		encoderType Encoder
	}{
		{
			codec:       "json",
			encoderType: &JsonEncoder{},
		},
		{
			codec:       "pretty",
			encoderType: &JsonEncoder{},
		},
	}

	for _, c := range cases {
		t.Logf("test %v", c.codec)
		encoder, err := NewEncoder(c.codec)
		if err != nil {
			t.Fatal(err)
		}
		got := reflect.TypeOf(encoder).String()
		expectedEncoderType := reflect.TypeOf(c.encoderType).String()
		if got != expectedEncoderType {
			t.Errorf("expected `%s`, got `%s`", expectedEncoderType, got)
		}
	}

	if _, err := NewEncoder("format:[msg]"); err == nil {
		t.Error("unknown encoder should fail")
	}
}

func TestJsonEncoder(t *testing.T) {
	event := map[string]any{"b": 2, "a": map[string]any{"c": "x"}}

	encoder, _ := NewEncoder("json")
	buf, err := encoder.Encode(event)
	assert.Equal(t, err, nil)
	assert.Equal(t, string(buf), `{"a":{"c":"x"},"b":2}`)

	encoder, _ = NewEncoder("pretty")
	buf, err = encoder.Encode(event)
	assert.Equal(t, err, nil)
	assert.Equal(t, string(buf), "{\n  \"a\": {\n    \"c\": \"x\"\n  },\n  \"b\": 2\n}")
}
