package field_deleter

import "github.com/childe/omitter/omit"

type MultiLevelFieldDeleter struct {
	omitterDeleter
}

func NewMultiLevelFieldDeleter(fields []string) *MultiLevelFieldDeleter {
	return &MultiLevelFieldDeleter{newOmitterDeleter(omit.Path(fields...))}
}

func (d *MultiLevelFieldDeleter) Delete(event map[string]any) map[string]any {
	return d.delete(event)
}
