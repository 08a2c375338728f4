package condition_filter

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/childe/omitter/omit"
	"github.com/oliveagle/jsonpath"
	"github.com/spf13/cast"
)

type Condition interface {
	Pass(event map[string]any) bool
}

// field locates a value in an event. A single argument starting with `$.` is
// a jsonpath; any other single argument is resolved like an omit key (literal
// key first, then the dotted path); several arguments are explicit segments.
type field struct {
	spec omit.Spec
	pat  *jsonpath.Compiled
}

func newField(args []string) (field, error) {
	switch {
	case len(args) == 0 || (len(args) == 1 && args[0] == ""):
		return field{}, fmt.Errorf("missing field")
	case len(args) == 1 && strings.HasPrefix(args[0], "$."):
		pat, err := jsonpath.Compile(args[0])
		if err != nil {
			return field{}, err
		}
		return field{pat: pat}, nil
	case len(args) == 1:
		return field{spec: omit.Key(args[0])}, nil
	}
	return field{spec: omit.Path(args...)}, nil
}

func (f field) lookup(event map[string]any) (any, bool) {
	if f.pat != nil {
		v, err := f.pat.Lookup(event)
		return v, err == nil
	}
	return f.spec.Lookup(event)
}

func (f field) lookupString(event map[string]any) (string, bool) {
	v, ok := f.lookup(event)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// arguments splits the body of `name(...)` on commas. A quoted last argument
// may contain commas itself.
func arguments(name, c string) []string {
	body := strings.TrimSuffix(strings.TrimPrefix(c, name+"("), ")")
	raw := strings.Split(body, ",")

	last := len(raw) - 1
	for j := last; j >= 0; j-- {
		p := strings.TrimSpace(raw[j])
		if !strings.HasPrefix(p, `"`) {
			continue
		}
		if j == last && (len(p) == 1 || !strings.HasSuffix(p, `"`)) {
			continue
		}
		if strings.HasSuffix(strings.TrimSpace(raw[last]), `"`) {
			value := strings.TrimSpace(strings.Join(raw[j:], ","))
			raw = append(raw[:j], value)
		}
		break
	}

	args := make([]string, len(raw))
	for i, p := range raw {
		args[i] = strings.TrimSpace(p)
	}
	return args
}

// fieldAndValue splits arguments into the field and the trailing value.
func fieldAndValue(name, c string) (field, string, error) {
	args := arguments(name, c)
	if len(args) < 2 {
		return field{}, "", fmt.Errorf("`%s` needs a field and a value", c)
	}
	f, err := newField(args[:len(args)-1])
	if err != nil {
		return field{}, "", fmt.Errorf("`%s`: %w", c, err)
	}
	return f, args[len(args)-1], nil
}

func unquote(value string) string {
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		return value[1 : len(value)-1]
	}
	return value
}

type ExistCondition struct {
	field field
}

func NewExistCondition(c string) (*ExistCondition, error) {
	f, err := newField(arguments("Exist", c))
	if err != nil {
		return nil, fmt.Errorf("`%s`: %w", c, err)
	}
	return &ExistCondition{f}, nil
}

func (c *ExistCondition) Pass(event map[string]any) bool {
	_, ok := c.field.lookup(event)
	return ok
}

// EQCondition compares a field with a quoted string, nil, or a number.
// Numbers compare by value whatever their decoded type.
type EQCondition struct {
	field field
	value any
}

func NewEQCondition(c string) (*EQCondition, error) {
	f, value, err := fieldAndValue("EQ", c)
	if err != nil {
		return nil, err
	}

	switch {
	case len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"':
		return &EQCondition{f, unquote(value)}, nil
	case value == "nil" || value == "null":
		return &EQCondition{f, nil}, nil
	}
	n, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, fmt.Errorf("`%s`: value must be a quoted string, nil or a number", c)
	}
	return &EQCondition{f, n}, nil
}

func (c *EQCondition) Pass(event map[string]any) bool {
	v, ok := c.field.lookup(event)
	if !ok {
		return false
	}

	switch want := c.value.(type) {
	case nil:
		return v == nil
	case string:
		s, ok := v.(string)
		return ok && s == want
	case float64:
		if _, ok := v.(string); ok {
			return false
		}
		n, err := cast.ToFloat64E(v)
		return err == nil && n == want
	}
	return false
}

type HasPrefixCondition struct {
	field  field
	prefix string
}

func NewHasPrefixCondition(c string) (*HasPrefixCondition, error) {
	f, value, err := fieldAndValue("HasPrefix", c)
	if err != nil {
		return nil, err
	}
	return &HasPrefixCondition{f, unquote(value)}, nil
}

func (c *HasPrefixCondition) Pass(event map[string]any) bool {
	s, ok := c.field.lookupString(event)
	return ok && strings.HasPrefix(s, c.prefix)
}

type HasSuffixCondition struct {
	field  field
	suffix string
}

func NewHasSuffixCondition(c string) (*HasSuffixCondition, error) {
	f, value, err := fieldAndValue("HasSuffix", c)
	if err != nil {
		return nil, err
	}
	return &HasSuffixCondition{f, unquote(value)}, nil
}

func (c *HasSuffixCondition) Pass(event map[string]any) bool {
	s, ok := c.field.lookupString(event)
	return ok && strings.HasSuffix(s, c.suffix)
}

type ContainsCondition struct {
	field     field
	substring string
}

func NewContainsCondition(c string) (*ContainsCondition, error) {
	f, value, err := fieldAndValue("Contains", c)
	if err != nil {
		return nil, err
	}
	return &ContainsCondition{f, unquote(value)}, nil
}

func (c *ContainsCondition) Pass(event map[string]any) bool {
	s, ok := c.field.lookupString(event)
	return ok && strings.Contains(s, c.substring)
}

type MatchCondition struct {
	field  field
	regexp *regexp.Regexp
}

func NewMatchCondition(c string) (*MatchCondition, error) {
	f, value, err := fieldAndValue("Match", c)
	if err != nil {
		return nil, err
	}
	r, err := regexp.Compile(unquote(value))
	if err != nil {
		return nil, err
	}
	return &MatchCondition{f, r}, nil
}

func (c *MatchCondition) Pass(event map[string]any) bool {
	s, ok := c.field.lookupString(event)
	return ok && c.regexp.MatchString(s)
}

// BeforeCondition passes events whose @timestamp is before now+d.
type BeforeCondition struct {
	d time.Duration
}

func NewBeforeCondition(c string) (*BeforeCondition, error) {
	d, err := time.ParseDuration(strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(c, "Before("), ")")))
	if err != nil {
		return nil, err
	}
	return &BeforeCondition{d}, nil
}

func (c *BeforeCondition) Pass(event map[string]any) bool {
	t, ok := event["@timestamp"].(time.Time)
	return ok && t.Before(time.Now().Add(c.d))
}

// AfterCondition passes events whose @timestamp is after now+d.
type AfterCondition struct {
	d time.Duration
}

func NewAfterCondition(c string) (*AfterCondition, error) {
	d, err := time.ParseDuration(strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(c, "After("), ")")))
	if err != nil {
		return nil, err
	}
	return &AfterCondition{d}, nil
}

func (c *AfterCondition) Pass(event map[string]any) bool {
	t, ok := event["@timestamp"].(time.Time)
	return ok && t.After(time.Now().Add(c.d))
}

var singleConditionPattern = regexp.MustCompile(`^(\w+)\(.*\)$`)

// NewSingleCondition builds one function call such as `Exist(user.password)`.
func NewSingleCondition(c string) (Condition, error) {
	c = strings.TrimSpace(c)
	m := singleConditionPattern.FindStringSubmatch(c)
	if m == nil {
		return nil, fmt.Errorf("could not build Condition from `%s`", c)
	}

	switch m[1] {
	case "Exist":
		return NewExistCondition(c)
	case "EQ":
		return NewEQCondition(c)
	case "HasPrefix":
		return NewHasPrefixCondition(c)
	case "HasSuffix":
		return NewHasSuffixCondition(c)
	case "Contains":
		return NewContainsCondition(c)
	case "Match":
		return NewMatchCondition(c)
	case "Before":
		return NewBeforeCondition(c)
	case "After":
		return NewAfterCondition(c)
	}
	return nil, fmt.Errorf("unknown condition %s in `%s`", m[1], c)
}
