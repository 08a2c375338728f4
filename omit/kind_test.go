package omit

import (
	"encoding/json"
	"testing"
)

func TestKindOf(t *testing.T) {
	b := true
	var nilMap map[string]any
	var nilPtr *int
	for _, c := range []struct {
		value any
		want  Kind
	}{
		{nil, Null},
		{nilPtr, Null},
		{nilMap, Object},
		{map[string]any{}, Object},
		{true, Bool},
		{"x", String},
		{3, Number},
		{uint8(3), Number},
		{1.5, Number},
		{json.Number("1"), Number},
		{[]any{}, Array},
		{[]byte("x"), Array},
		{[3]int{}, Array},
		{func(int) string { return "" }, Func},
		{&b, Boxed},
		{&map[string]any{}, Other},
		{struct{}{}, Other},
		{map[string]string{}, Other},
	} {
		if got := KindOf(c.value); got != c.want {
			t.Errorf("KindOf(%#v) = %s, want %s", c.value, got, c.want)
		}
	}
}

func TestTypeErrorMessage(t *testing.T) {
	_, err := Omit([]any{1}, "a")
	want := "omit expected object-like input value, got array ([]interface {})"
	if err == nil || err.Error() != want {
		t.Errorf("got %v, want %q", err, want)
	}
}
