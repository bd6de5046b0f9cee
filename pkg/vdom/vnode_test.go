package vdom

import "testing"

func TestVKindString(t *testing.T) {
	tests := []struct {
		kind VKind
		want string
	}{
		{KindElement, "Element"},
		{KindText, "Text"},
		{KindFragment, "Fragment"},
		{KindRaw, "Raw"},
		{VKind(255), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("VKind.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeIsInteractive(t *testing.T) {
	tests := []struct {
		name string
		node *VNode
		want bool
	}{
		{
			name: "nil node",
			node: nil,
			want: false,
		},
		{
			name: "text node",
			node: &VNode{Kind: KindText, Text: "hello"},
			want: false,
		},
		{
			name: "element without handlers",
			node: &VNode{Kind: KindElement, Tag: "div", Props: Props{"class": "test"}},
			want: false,
		},
		{
			name: "input with onchange",
			node: &VNode{Kind: KindElement, Tag: "input", Props: Props{"onchange": func() {}}},
			want: true,
		},
		{
			name: "element with nil props",
			node: &VNode{Kind: KindElement, Tag: "div"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.IsInteractive(); got != tt.want {
				t.Errorf("VNode.IsInteractive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAttrIsEmpty(t *testing.T) {
	tests := []struct {
		name string
		attr Attr
		want bool
	}{
		{"empty attr", Attr{}, true},
		{"attr with key", Attr{Key: "class", Value: "test"}, false},
		{"attr with empty value", Attr{Key: "disabled", Value: ""}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.attr.IsEmpty(); got != tt.want {
				t.Errorf("Attr.IsEmpty() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVNodeAttrAccessors(t *testing.T) {
	node := &VNode{Kind: KindElement, Tag: "input"}
	if node.Attr("id") != nil {
		t.Error("Attr on nil props should be nil")
	}

	node.SetAttr("id", "picker")
	node.SetAttr("height", 60)

	if got := node.AttrString("id"); got != "picker" {
		t.Errorf("AttrString(id) = %q, want picker", got)
	}
	if got := node.AttrString("height"); got != "" {
		t.Errorf("AttrString(height) = %q, want empty for non-string", got)
	}
	if got := node.Attr("height"); got != 60 {
		t.Errorf("Attr(height) = %v, want 60", got)
	}
}

func TestChildElementCount(t *testing.T) {
	node := Div(Span(), "text", Img(), Fragment())
	if got := node.ChildElementCount(); got != 2 {
		t.Errorf("ChildElementCount() = %d, want 2", got)
	}
	var nilNode *VNode
	if nilNode.ChildElementCount() != 0 {
		t.Error("nil node should have no children")
	}
}
