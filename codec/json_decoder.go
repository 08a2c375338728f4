package codec

import (
	"bytes"
	"time"
)

type JsonDecoder struct {
	useNumber bool
}

// Decode falls back to a plain event if value is not a single JSON object.
func (jd *JsonDecoder) Decode(value []byte) map[string]any {
	rst := make(map[string]any)
	d := json.NewDecoder(bytes.NewReader(value))
	if jd.useNumber {
		d.UseNumber()
	}

	if err := d.Decode(&rst); err != nil || d.More() {
		return map[string]any{
			"@timestamp": time.Now(),
			"message":    string(value),
		}
	}
	if _, ok := rst["@timestamp"]; !ok {
		rst["@timestamp"] = time.Now()
	}
	return rst
}
