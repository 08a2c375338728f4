package omit

import "strings"

// Spec is a compiled key specifier.
//
// A specifier built by Key has two independent interpretations: the literal
// top-level key, and (when the key contains a dot) the nested path obtained by
// splitting on dots. Both are removed when both resolve.
type Spec struct {
	key     string
	shallow bool
	path    []string
}

// Key compiles a key specifier string.
func Key(k string) Spec {
	s := Spec{key: k, shallow: true}
	if strings.Contains(k, ".") {
		s.path = strings.Split(k, ".")
	}
	return s
}

// Shallow matches only the top-level key k, dots included.
func Shallow(k string) Spec {
	return Spec{key: k, shallow: true}
}

// Path matches only the nested path made of segments; segments are never split.
func Path(segments ...string) Spec {
	switch len(segments) {
	case 0:
		return Spec{}
	case 1:
		return Shallow(segments[0])
	}
	path := make([]string, len(segments))
	copy(path, segments)
	return Spec{path: path}
}

func (s Spec) String() string {
	if s.shallow {
		return s.key
	}
	return "[" + strings.Join(s.path, "][") + "]"
}

// schedule records in plan every removal s resolves to against root.
func (s Spec) schedule(root map[string]any, plan *node) {
	if s.shallow {
		if _, ok := root[s.key]; ok {
			plan.drop(s.key)
		}
	}
	if len(s.path) < 2 {
		return
	}

	parent, ok := s.parent(root)
	if !ok {
		return
	}
	last := len(s.path) - 1
	if _, ok := parent[s.path[last]]; !ok {
		return
	}

	for _, field := range s.path[:last] {
		plan = plan.child(field)
	}
	plan.drop(s.path[last])
}

// parent descends root through every segment of the path but the last.
func (s Spec) parent(root map[string]any) (map[string]any, bool) {
	current := root
	for _, field := range s.path[:len(s.path)-1] {
		v, ok := current[field]
		if !ok {
			return nil, false
		}
		if current, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}
	return current, true
}

// Lookup returns the value s would remove from root. The literal top-level
// key wins over the nested path when both resolve.
func (s Spec) Lookup(root map[string]any) (any, bool) {
	if s.shallow {
		if v, ok := root[s.key]; ok {
			return v, true
		}
	}
	if len(s.path) < 2 {
		return nil, false
	}
	parent, ok := s.parent(root)
	if !ok {
		return nil, false
	}
	v, ok := parent[s.path[len(s.path)-1]]
	return v, ok
}
