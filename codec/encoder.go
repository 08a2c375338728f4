package codec

import "fmt"

type Encoder interface {
	Encode(any) ([]byte, error)
}

// NewEncoder returns an error for an unknown codec name.
func NewEncoder(t string) (Encoder, error) {
	switch t {
	case "", "json":
		return &JsonEncoder{}, nil
	case "pretty":
		return &JsonEncoder{indent: "  "}, nil
	}
	return nil, fmt.Errorf("unknown encoder %q", t)
}
