package field_deleter

import "github.com/childe/omitter/omit"

type OneLevelFieldDeleter struct {
	omitterDeleter
}

func NewOneLevelFieldDeleter(field string) *OneLevelFieldDeleter {
	return &OneLevelFieldDeleter{newOmitterDeleter(omit.Shallow(field))}
}

func (d *OneLevelFieldDeleter) Delete(event map[string]any) map[string]any {
	return d.delete(event)
}
