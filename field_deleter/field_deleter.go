package field_deleter

import (
	"regexp"
	"strings"

	"github.com/childe/omitter/omit"
)

// FieldDeleter returns a copy of the event without the field. The event
// passed in is left untouched.
type FieldDeleter interface {
	Delete(map[string]any) map[string]any
}

var (
	matchp = regexp.MustCompile(`^(\[.*?\])+$`)
	findp  = regexp.MustCompile(`(\[(.*?)\])`)
)

func splitTemplate(template string) ([]string, bool) {
	if !matchp.MatchString(template) {
		return nil, false
	}
	fields := make([]string, 0)
	for _, v := range findp.FindAllStringSubmatch(template, -1) {
		fields = append(fields, v[2])
	}
	return fields, true
}

// NewFieldDeleter builds a deleter from a field template:
//
//	[a][b]  nested field, segments taken literally
//	a.b     top-level "a.b" and nested a -> b
//	a       top-level field
func NewFieldDeleter(template string) FieldDeleter {
	if fields, ok := splitTemplate(template); ok {
		return NewMultiLevelFieldDeleter(fields)
	}
	if strings.Contains(template, ".") {
		return NewDottedFieldDeleter(template)
	}
	return NewOneLevelFieldDeleter(template)
}

// Spec is the omit specifier NewFieldDeleter would use for template.
func Spec(template string) omit.Spec {
	if fields, ok := splitTemplate(template); ok {
		return omit.Path(fields...)
	}
	if strings.Contains(template, ".") {
		return omit.Key(template)
	}
	return omit.Shallow(template)
}

// Compile builds one Omitter removing every template at once.
func Compile(templates []string) *omit.Omitter {
	specs := make([]omit.Spec, 0, len(templates))
	for _, t := range templates {
		specs = append(specs, Spec(t))
	}
	return omit.NewSpecs(specs...)
}

type omitterDeleter struct {
	omitter *omit.Omitter
}

func newOmitterDeleter(s omit.Spec) omitterDeleter {
	return omitterDeleter{omitter: omit.NewSpecs(s)}
}

func (d omitterDeleter) delete(event map[string]any) map[string]any {
	rst, err := d.omitter.Omit(event)
	if err != nil {
		// unreachable, a map[string]any is always object-like
		return event
	}
	return rst
}
