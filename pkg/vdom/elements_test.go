package vdom

import "testing"

func TestCreateElement(t *testing.T) {
	t.Run("basic element", func(t *testing.T) {
		node := Div()
		if node.Kind != KindElement {
			t.Errorf("Kind = %v, want KindElement", node.Kind)
		}
		if node.Tag != "div" {
			t.Errorf("Tag = %v, want div", node.Tag)
		}
	})

	t.Run("with class attribute", func(t *testing.T) {
		node := Div(Class("card"))
		if node.Props["class"] != "card" {
			t.Errorf("class = %v, want card", node.Props["class"])
		}
	})

	t.Run("with multiple attributes", func(t *testing.T) {
		node := Div(Class("card"), ID("main"))
		if node.Props["class"] != "card" {
			t.Errorf("class = %v, want card", node.Props["class"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
	})

	t.Run("with child node", func(t *testing.T) {
		node := Div(P(Text("Hello")))
		if len(node.Children) != 1 {
			t.Fatalf("Children len = %v, want 1", len(node.Children))
		}
		if node.Children[0].Tag != "p" {
			t.Errorf("Child tag = %v, want p", node.Children[0].Tag)
		}
	})

	t.Run("with multiple children", func(t *testing.T) {
		node := Div(H1(Text("Title")), P(Text("Content")))
		if len(node.Children) != 2 {
			t.Fatalf("Children len = %v, want 2", len(node.Children))
		}
	})

	t.Run("with string shorthand", func(t *testing.T) {
		node := Div("Hello")
		if len(node.Children) != 1 {
			t.Fatalf("Children len = %v, want 1", len(node.Children))
		}
		if node.Children[0].Kind != KindText {
			t.Errorf("Child kind = %v, want KindText", node.Children[0].Kind)
		}
		if node.Children[0].Text != "Hello" {
			t.Errorf("Child text = %v, want Hello", node.Children[0].Text)
		}
	})

	t.Run("with nil ignored", func(t *testing.T) {
		node := Div(nil, Class("test"), nil)
		if node.Props["class"] != "test" {
			t.Errorf("class = %v, want test", node.Props["class"])
		}
		if len(node.Children) != 0 {
			t.Errorf("Children len = %v, want 0", len(node.Children))
		}
	})

	t.Run("with event handler", func(t *testing.T) {
		handler := func() {}
		node := Button(OnClick(handler))
		if node.Props["onclick"] == nil {
			t.Error("onclick handler not set")
		}
	})

	t.Run("with slice of children", func(t *testing.T) {
		children := []*VNode{Li(Text("A")), Li(Text("B"))}
		node := Ul(children)
		if len(node.Children) != 2 {
			t.Fatalf("Children len = %v, want 2", len(node.Children))
		}
	})

	t.Run("with slice containing nil", func(t *testing.T) {
		children := []*VNode{Li(Text("A")), nil, Li(Text("B"))}
		node := Ul(children)
		if len(node.Children) != 2 {
			t.Fatalf("Children len = %v, want 2 (nil filtered)", len(node.Children))
		}
	})

	t.Run("with slice of attributes", func(t *testing.T) {
		attrs := []Attr{Class("test"), ID("main")}
		node := Div(attrs)
		if node.Props["class"] != "test" {
			t.Errorf("class = %v, want test", node.Props["class"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
	})

	t.Run("with key attribute", func(t *testing.T) {
		node := Div(Key("item-1"))
		if node.Key != "item-1" {
			t.Errorf("Key = %v, want item-1", node.Key)
		}
		if node.Props["key"] != "item-1" {
			t.Errorf("Props[key] = %v, want item-1", node.Props["key"])
		}
	})

	t.Run("mixed attributes and children", func(t *testing.T) {
		node := Div(
			Class("card"),
			H1(Text("Title")),
			ID("main"),
			P(Text("Content")),
		)
		if node.Props["class"] != "card" {
			t.Errorf("class = %v, want card", node.Props["class"])
		}
		if node.Props["id"] != "main" {
			t.Errorf("id = %v, want main", node.Props["id"])
		}
		if len(node.Children) != 2 {
			t.Errorf("Children len = %v, want 2", len(node.Children))
		}
	})
}

func TestVoidElements(t *testing.T) {
	voids := []string{"area", "base", "br", "col", "embed", "hr", "img", "input", "link", "meta", "param", "source", "track", "wbr"}
	for _, tag := range voids {
		if !IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = false, want true", tag)
		}
	}

	nonVoids := []string{"div", "span", "p", "a", "button"}
	for _, tag := range nonVoids {
		if IsVoidElement(tag) {
			t.Errorf("IsVoidElement(%q) = true, want false", tag)
		}
	}
}

func TestAllElements(t *testing.T) {
	elements := []struct {
		fn  func(...any) *VNode
		tag string
	}{
		{Html, "html"},
		{Head, "head"},
		{Body, "body"},
		{Title, "title"},
		{Meta, "meta"},
		{Style, "style"},
		{Section, "section"},
		{H1, "h1"},
		{Div, "div"},
		{P, "p"},
		{Span, "span"},
		{Ul, "ul"},
		{Li, "li"},
		{Input, "input"},
		{Button, "button"},
		{Img, "img"},
		{Script, "script"},
	}

	for _, e := range elements {
		t.Run(e.tag, func(t *testing.T) {
			node := e.fn()
			if node.Tag != e.tag {
				t.Errorf("Tag = %v, want %v", node.Tag, e.tag)
			}
			if node.Kind != KindElement {
				t.Errorf("Kind = %v, want KindElement", node.Kind)
			}
		})
	}
}

func TestCustomElement(t *testing.T) {
	node := Element("upload-preview", Class("x"))
	if node.Tag != "upload-preview" {
		t.Errorf("Tag = %v, want upload-preview", node.Tag)
	}
	if node.Props["class"] != "x" {
		t.Errorf("class = %v, want x", node.Props["class"])
	}
}

func TestAttributes(t *testing.T) {
	tests := []struct {
		name  string
		attr  Attr
		key   string
		value any
	}{
		{"ID", ID("main"), "id", "main"},
		{"Class", Class("a", "b"), "class", "a b"},
		{"StyleAttr", StyleAttr("display: none"), "style", "display: none"},
		{"Data", Data("action", "open"), "data-action", "open"},
		{"Hidden", Hidden(), "hidden", true},
		{"Type", Type("file"), "type", "file"},
		{"Multiple true", Multiple(true), "multiple", true},
		{"Multiple false", Multiple(false), "multiple", false},
		{"Accept", Accept("image/png, image/gif"), "accept", "image/png, image/gif"},
		{"Src", Src("blob:null/1"), "src", "blob:null/1"},
		{"Alt", Alt("cat.png"), "alt", "cat.png"},
		{"Height", Height(60), "height", 60},
		{"Name", Name("files[]"), "name", "files[]"},
		{"Charset", Charset("utf-8"), "charset", "utf-8"},
		{"Content", Content("width=device-width"), "content", "width=device-width"},
		{"AriaLive", AriaLive("polite"), "aria-live", "polite"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.attr.Key != tt.key {
				t.Errorf("Key = %q, want %q", tt.attr.Key, tt.key)
			}
			if tt.attr.Value != tt.value {
				t.Errorf("Value = %v, want %v", tt.attr.Value, tt.value)
			}
		})
	}
}

func TestAttrIf(t *testing.T) {
	if !AttrIf(false, ID("x")).IsEmpty() {
		t.Error("AttrIf(false) should be empty")
	}
	if AttrIf(true, ID("x")).Key != "id" {
		t.Error("AttrIf(true) should return the attribute")
	}
	node := Input(AttrIf(false, ID("x")))
	if _, ok := node.Props["id"]; ok {
		t.Error("empty attribute should not be stored")
	}
}

func TestFragmentAndRange(t *testing.T) {
	items := []string{"a", "b", "c"}
	nodes := Range(items, func(item string, i int) *VNode {
		if item == "b" {
			return nil
		}
		return Li(Key(i), Text(item))
	})
	if len(nodes) != 2 {
		t.Fatalf("Range len = %d, want 2", len(nodes))
	}
	if nodes[1].Key != "2" {
		t.Errorf("Key = %q, want 2", nodes[1].Key)
	}

	frag := Fragment(nodes, nil, "tail")
	if frag.Kind != KindFragment || len(frag.Children) != 3 {
		t.Errorf("Fragment = %v with %d children", frag.Kind, len(frag.Children))
	}
	if If(false, Div()) != nil || If(true, Div()) == nil {
		t.Error("If returned the wrong node")
	}
}
