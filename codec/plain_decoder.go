package codec

import "time"

type PlainDecoder struct{}

func (d *PlainDecoder) Decode(value []byte) map[string]any {
	return map[string]any{
		"@timestamp": time.Now().UTC(),
		"message":    string(value),
	}
}
