package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/uploadkit/pkg/vdom"
)

// Loader materialises image sources, e.g. object URLs.
type Loader interface {
	// Load returns the content and MIME type behind src.
	Load(src string) (data []byte, contentType string, ok bool)
}

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables indented output.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// Loader resolves img sources. Nil leaves sources untouched.
	Loader Loader
}

// Renderer handles rendering of VNode trees to HTML.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		return r.renderChildren(w, node, depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("unknown node kind: %d", node.Kind)
	}
}

func (r *Renderer) renderChildren(w io.Writer, node *vdom.VNode, depth int) error {
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	// A loaded image is written with an inline source and then told so.
	var overrides map[string]string
	loaded := false
	if tag == "img" && r.config.Loader != nil {
		if data, contentType, ok := r.config.Loader.Load(node.AttrString("src")); ok {
			overrides = map[string]string{"src": dataURI(contentType, data)}
			loaded = true
		}
	}

	if err := r.openTag(w, node, overrides); err != nil {
		return err
	}
	if loaded {
		vdom.Dispatch(node, "load", nil)
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	hasBlockChildren := len(node.Children) > 0 && !isInlineElement(tag)
	if r.config.Pretty && hasBlockChildren {
		io.WriteString(w, "\n")
	}

	childDepth := depth + 1
	if !hasBlockChildren {
		childDepth = 0
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, childDepth); err != nil {
			return err
		}
	}

	if r.config.Pretty && hasBlockChildren {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// openTag writes "<tag attrs...>".
func (r *Renderer) openTag(w io.Writer, node *vdom.VNode, overrides map[string]string) error {
	if _, err := io.WriteString(w, "<"+node.Tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node, overrides); err != nil {
		return err
	}
	_, err := io.WriteString(w, ">")
	return err
}

// renderAttributes renders all attributes for an element in key order,
// followed by one data-on-<event> marker per event handler.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode, overrides map[string]string) error {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var events []string
	for _, key := range keys {
		value := node.Props[key]

		if strings.HasPrefix(key, "on") && isEventHandler(value) {
			events = append(events, strings.ToLower(key[2:]))
			continue
		}
		if strings.HasPrefix(key, "_") || key == "key" {
			continue
		}

		name := key
		switch key {
		case "className":
			name = "class"
		case "htmlFor":
			name = "for"
		}

		if isBooleanAttr(name) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", name); err != nil {
						return err
					}
				}
				continue
			}
		}

		str, ok := overrides[key]
		if !ok {
			str = attrToString(value)
		}
		if str == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, name, escapeAttr(str)); err != nil {
			return err
		}
	}

	for _, event := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, event); err != nil {
			return err
		}
	}
	return nil
}

// isEventHandler reports whether value is a callable handler.
func isEventHandler(value any) bool {
	if value == nil {
		return false
	}
	if _, ok := value.(vdom.EventHandler); ok {
		return true
	}
	return reflect.TypeOf(value).Kind() == reflect.Func
}

// attrToString converts an attribute value to a string.
func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func dataURI(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
