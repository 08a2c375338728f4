package codec

type JsonEncoder struct {
	indent string
}

func (e *JsonEncoder) Encode(v any) ([]byte, error) {
	if e.indent != "" {
		return json.MarshalIndent(v, "", e.indent)
	}
	return json.Marshal(v)
}
