package codec

import (
	"fmt"
)

type Decoder interface {
	Decode([]byte) map[string]any
}

// NewDecoder returns an error for an unknown codec name.
func NewDecoder(t string) (Decoder, error) {
	switch t {
	case "", "plain":
		return &PlainDecoder{}, nil
	case "json":
		return &JsonDecoder{useNumber: true}, nil
	case "json:not_usenumber":
		return &JsonDecoder{useNumber: false}, nil
	}
	return nil, fmt.Errorf("unknown decoder %q", t)
}
