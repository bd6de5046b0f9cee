package vdom

// Document is a server-side DOM: an <html> root with <head> and <body>.
//
// A Document is not safe for concurrent use. Like a browser DOM it belongs
// to a single UI context; callers that share it between goroutines must
// serialise access themselves.
type Document struct {
	root *VNode
	head *VNode
	body *VNode
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	head := Head()
	body := Body()
	return &Document{
		root: Html(head, body),
		head: head,
		body: body,
	}
}

// Root returns the <html> element.
func (d *Document) Root() *VNode { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *VNode { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *VNode { return d.body }

// QuerySelector returns the first element in document order matching sel,
// or nil when nothing matches or sel is invalid.
func (d *Document) QuerySelector(sel string) *VNode {
	return QuerySelector(d.root, sel)
}

// QuerySelectorAll returns every element matching sel in document order.
func (d *Document) QuerySelectorAll(sel string) []*VNode {
	return QuerySelectorAll(d.root, sel)
}

// Contains reports whether node is part of the document tree.
func (d *Document) Contains(node *VNode) bool {
	if node == nil {
		return false
	}
	found := false
	walk(d.root, nil, func(n *VNode, _ []*VNode) bool {
		found = n == node
		return !found
	})
	return found
}

// QuerySelector returns the first element under root (inclusive) matching
// sel. Ancestors above root are not considered by combinators.
func QuerySelector(root *VNode, sel string) *VNode {
	s, err := ParseSelector(sel)
	if err != nil {
		return nil
	}
	var match *VNode
	walk(root, nil, func(n *VNode, ancestors []*VNode) bool {
		if s.Match(n, ancestors) {
			match = n
			return false
		}
		return true
	})
	return match
}

// QuerySelectorAll returns every element under root (inclusive) matching sel.
func QuerySelectorAll(root *VNode, sel string) []*VNode {
	s, err := ParseSelector(sel)
	if err != nil {
		return nil
	}
	var matches []*VNode
	walk(root, nil, func(n *VNode, ancestors []*VNode) bool {
		if s.Match(n, ancestors) {
			matches = append(matches, n)
		}
		return true
	})
	return matches
}

// walk visits elements depth-first in document order. Fragments are
// transparent. Returning false from visit stops the walk.
func walk(node *VNode, ancestors []*VNode, visit func(*VNode, []*VNode) bool) bool {
	if node == nil {
		return true
	}
	switch node.Kind {
	case KindElement:
		if !visit(node, ancestors) {
			return false
		}
		// Copy so sibling subtrees never share a backing array.
		next := make([]*VNode, len(ancestors)+1)
		copy(next, ancestors)
		next[len(ancestors)] = node
		for _, child := range node.Children {
			if !walk(child, next, visit) {
				return false
			}
		}
	case KindFragment:
		for _, child := range node.Children {
			if !walk(child, ancestors, visit) {
				return false
			}
		}
	}
	return true
}

// AppendChild appends child to parent and returns child.
func AppendChild(parent, child *VNode) *VNode {
	if parent == nil || child == nil {
		return child
	}
	parent.Children = append(parent.Children, child)
	return child
}

// RemoveChild removes child from parent. It reports whether child was found.
func RemoveChild(parent, child *VNode) bool {
	if parent == nil {
		return false
	}
	for i, c := range parent.Children {
		if c == child {
			parent.Children = append(parent.Children[:i], parent.Children[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveChildNodes removes every child of el and returns el.
func RemoveChildNodes(el *VNode) *VNode {
	if el == nil {
		return nil
	}
	for i := range el.Children {
		el.Children[i] = nil
	}
	el.Children = el.Children[:0]
	return el
}
