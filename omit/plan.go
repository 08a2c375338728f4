package omit

// node mirrors the part of an object touched by scheduled removals.
type node struct {
	remove   map[string]struct{}
	children map[string]*node
}

func (n *node) drop(key string) {
	if n.remove == nil {
		n.remove = make(map[string]struct{})
	}
	n.remove[key] = struct{}{}
}

func (n *node) child(key string) *node {
	if n.children == nil {
		n.children = make(map[string]*node)
	}
	c, ok := n.children[key]
	if !ok {
		c = &node{}
		n.children[key] = c
	}
	return c
}

// apply returns a shallow copy of src with the removals below n applied.
// Children of n are only ever created for keys whose value in src is a
// map[string]any, so the assertion below cannot fail.
func (n *node) apply(src map[string]any) map[string]any {
	dst := make(map[string]any, len(src))
	for k, v := range src {
		if _, ok := n.remove[k]; ok {
			continue
		}
		if c, ok := n.children[k]; ok {
			v = c.apply(v.(map[string]any))
		}
		dst[k] = v
	}
	return dst
}
