package vdom

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSelector is returned by ParseSelector for malformed input.
var ErrInvalidSelector = errors.New("vdom: invalid selector")

// Selector is a parsed CSS selector list.
//
// Supported syntax: type and universal selectors, #id, .class, [attr],
// [attr=value] (value optionally quoted), compound selectors such as
// input#picker.hidden, the descendant (" ") and child (">") combinators,
// and comma-separated selector lists.
type Selector struct {
	raw  string
	list []complexSelector
}

type complexSelector struct {
	parts []compoundSelector
	// combinators[i] joins parts[i] and parts[i+1]: ' ' or '>'.
	combinators []byte
}

type compoundSelector struct {
	tag     string
	id      string
	classes []string
	attrs   []attrSelector
}

type attrSelector struct {
	name     string
	value    string
	hasValue bool
}

// ParseSelector parses a selector list.
func ParseSelector(s string) (*Selector, error) {
	sel := &Selector{raw: s}
	for _, part := range strings.Split(s, ",") {
		c, err := parseComplex(part)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidSelector, s, err)
		}
		sel.list = append(sel.list, c)
	}
	return sel, nil
}

// String returns the selector source text.
func (s *Selector) String() string {
	return s.raw
}

// Match reports whether node matches the selector. ancestors lists the
// element ancestors of node from the outermost to the direct parent.
func (s *Selector) Match(node *VNode, ancestors []*VNode) bool {
	if node == nil || node.Kind != KindElement {
		return false
	}
	for _, c := range s.list {
		if c.match(node, ancestors) {
			return true
		}
	}
	return false
}

func (c complexSelector) match(node *VNode, ancestors []*VNode) bool {
	last := len(c.parts) - 1
	if !c.parts[last].match(node) {
		return false
	}
	return c.matchAncestors(last-1, ancestors)
}

// matchAncestors matches parts[0..i] right-to-left against ancestors.
func (c complexSelector) matchAncestors(i int, ancestors []*VNode) bool {
	if i < 0 {
		return true
	}
	if c.combinators[i] == '>' {
		n := len(ancestors)
		if n == 0 {
			return false
		}
		return c.parts[i].match(ancestors[n-1]) && c.matchAncestors(i-1, ancestors[:n-1])
	}
	for j := len(ancestors) - 1; j >= 0; j-- {
		if c.parts[i].match(ancestors[j]) && c.matchAncestors(i-1, ancestors[:j]) {
			return true
		}
	}
	return false
}

func (c compoundSelector) match(node *VNode) bool {
	if c.tag != "" && c.tag != "*" && !strings.EqualFold(c.tag, node.Tag) {
		return false
	}
	if c.id != "" && node.AttrString("id") != c.id {
		return false
	}
	if len(c.classes) > 0 {
		have := strings.Fields(node.AttrString("class"))
		for _, want := range c.classes {
			if !containsString(have, want) {
				return false
			}
		}
	}
	for _, a := range c.attrs {
		v, ok := attrValue(node.Attr(a.name))
		if !ok || (a.hasValue && v != a.value) {
			return false
		}
	}
	return true
}

// attrValue returns the DOM string form of a prop and whether the
// attribute is present. nil and false are absent.
func attrValue(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case bool:
		return "", val
	case string:
		return val, true
	default:
		return fmt.Sprint(val), true
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func parseComplex(s string) (complexSelector, error) {
	var c complexSelector
	s = strings.TrimSpace(s)
	if s == "" {
		return c, errors.New("empty selector")
	}

	var pending byte
	i := 0
	for i < len(s) {
		if isSpace(s[i]) || s[i] == '>' {
			pending = ' '
			for i < len(s) && (isSpace(s[i]) || s[i] == '>') {
				if s[i] == '>' {
					if pending == '>' {
						return c, errors.New("repeated combinator")
					}
					pending = '>'
				}
				i++
			}
			if len(c.parts) == 0 || i >= len(s) {
				return c, errors.New("dangling combinator")
			}
			continue
		}

		part, n, err := parseCompound(s[i:])
		if err != nil {
			return c, err
		}
		if len(c.parts) > 0 {
			c.combinators = append(c.combinators, pending)
		}
		c.parts = append(c.parts, part)
		i += n
	}
	return c, nil
}

func parseCompound(s string) (compoundSelector, int, error) {
	var c compoundSelector
	i := 0
	if s[0] == '*' {
		c.tag = "*"
		i = 1
	} else {
		for i < len(s) && isIdentChar(s[i]) {
			i++
		}
		c.tag = strings.ToLower(s[:i])
	}

	for i < len(s) {
		switch s[i] {
		case '#', '.':
			j := i + 1
			for j < len(s) && isIdentChar(s[j]) {
				j++
			}
			if j == i+1 {
				return c, 0, fmt.Errorf("missing name after %q", s[i])
			}
			if s[i] == '#' {
				c.id = s[i+1 : j]
			} else {
				c.classes = append(c.classes, s[i+1:j])
			}
			i = j
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, 0, errors.New("unterminated attribute selector")
			}
			a, err := parseAttrSelector(s[i+1 : i+end])
			if err != nil {
				return c, 0, err
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		default:
			if isSpace(s[i]) || s[i] == '>' {
				return c, i, nil
			}
			return c, 0, fmt.Errorf("unexpected character %q", s[i])
		}
	}
	if i == 0 {
		return c, 0, errors.New("empty compound selector")
	}
	return c, i, nil
}

func parseAttrSelector(body string) (attrSelector, error) {
	name, value, hasValue := strings.Cut(body, "=")
	name = strings.TrimSpace(name)
	if name == "" {
		return attrSelector{}, errors.New("missing attribute name")
	}
	for k := 0; k < len(name); k++ {
		if !isIdentChar(name[k]) {
			return attrSelector{}, fmt.Errorf("invalid attribute name %q", name)
		}
	}
	a := attrSelector{name: strings.ToLower(name), hasValue: hasValue}
	if hasValue {
		value = strings.TrimSpace(value)
		if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
			value = value[1 : len(value)-1]
		}
		a.value = value
	}
	return a, nil
}
