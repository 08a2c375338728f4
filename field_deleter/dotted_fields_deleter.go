package field_deleter

import "github.com/childe/omitter/omit"

// DottedFieldDeleter removes both the literal top-level key and the nested
// path spelled by the same dotted string.
type DottedFieldDeleter struct {
	omitterDeleter
}

func NewDottedFieldDeleter(field string) *DottedFieldDeleter {
	return &DottedFieldDeleter{newOmitterDeleter(omit.Key(field))}
}

func (d *DottedFieldDeleter) Delete(event map[string]any) map[string]any {
	return d.delete(event)
}
