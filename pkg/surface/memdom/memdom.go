// Package memdom is an in-memory DOM-like Surface: a node tree with
// attributes, styles and event handlers, a mutation counter for no-op
// assertions, and HTML serialization for inspecting rendered output.
// It is the reference surface used by the test harness and by embedders
// that only need the final tree.
package memdom

import (
	"sort"
	"strings"

	"github.com/weftui/weft/pkg/surface"
	"github.com/weftui/weft/pkg/vdom"
)

// NodeKind distinguishes element and text nodes.
type NodeKind uint8

const (
	KindElement NodeKind = iota
	KindText
)

// Node is one in-memory surface node.
type Node struct {
	Kind     NodeKind
	Tag      string
	Text     string
	Attrs    map[string]string
	Styles   map[string]string
	Handlers map[string]vdom.Handler
	Children []*Node
	Parent   *Node
}

// Surface implements surface.Surface over an in-memory node tree.
type Surface struct {
	mutations uint64
}

// New creates an in-memory surface.
func New() *Surface {
	return &Surface{}
}

// NewContainer returns a detached element usable as a mount container.
func (s *Surface) NewContainer() *Node {
	return &Node{Kind: KindElement, Tag: "root"}
}

// MutationCount implements surface.Instrumented.
func (s *Surface) MutationCount() uint64 {
	return s.mutations
}

// CreateElement implements surface.Surface.
func (s *Surface) CreateElement(tag string) surface.Handle {
	s.mutations++
	return &Node{Kind: KindElement, Tag: tag}
}

// CreateText implements surface.Surface.
func (s *Surface) CreateText(text string) surface.Handle {
	s.mutations++
	return &Node{Kind: KindText, Text: text}
}

// SetText implements surface.Surface.
func (s *Surface) SetText(h surface.Handle, text string) {
	s.mutations++
	h.(*Node).Text = text
}

// SetAttributes implements surface.Surface.
func (s *Surface) SetAttributes(h surface.Handle, props vdom.Props) {
	s.apply(h.(*Node), vdom.SetProps(props))
}

// DiffAttributes implements surface.Surface.
func (s *Surface) DiffAttributes(h surface.Handle, old, new vdom.Props) {
	s.apply(h.(*Node), vdom.DiffProps(old, new))
}

func (s *Surface) apply(n *Node, patches []vdom.PropPatch) {
	for _, p := range patches {
		s.mutations++
		switch p.Op {
		case vdom.OpSetAttr:
			if n.Attrs == nil {
				n.Attrs = make(map[string]string)
			}
			n.Attrs[p.Key] = p.Value
		case vdom.OpRemoveAttr:
			delete(n.Attrs, p.Key)
		case vdom.OpSetStyle:
			if n.Styles == nil {
				n.Styles = make(map[string]string)
			}
			n.Styles[p.Key] = p.Value
		case vdom.OpRemoveStyle:
			delete(n.Styles, p.Key)
		case vdom.OpBindEvent:
			if n.Handlers == nil {
				n.Handlers = make(map[string]vdom.Handler)
			}
			n.Handlers[p.Key] = asHandler(p.Handler)
		case vdom.OpUnbindEvent:
			delete(n.Handlers, p.Key)
		}
	}
}

// asHandler coerces the supported handler prop shapes.
func asHandler(v any) vdom.Handler {
	switch h := v.(type) {
	case vdom.Handler:
		return h
	case func(vdom.Event):
		return h
	case func():
		return func(vdom.Event) { h() }
	default:
		return func(vdom.Event) {}
	}
}

// InsertBefore implements surface.Surface.
func (s *Surface) InsertBefore(parent, h, anchor surface.Handle) {
	s.mutations++
	p := parent.(*Node)
	n := h.(*Node)
	n.Parent = p

	if anchor == nil {
		p.Children = append(p.Children, n)
		return
	}
	a := anchor.(*Node)
	for i, child := range p.Children {
		if child == a {
			p.Children = append(p.Children[:i], append([]*Node{n}, p.Children[i:]...)...)
			return
		}
	}
	p.Children = append(p.Children, n)
}

// Remove implements surface.Surface.
func (s *Surface) Remove(parent, h surface.Handle) {
	s.mutations++
	p := parent.(*Node)
	n := h.(*Node)
	for i, child := range p.Children {
		if child == n {
			p.Children = append(p.Children[:i], p.Children[i+1:]...)
			n.Parent = nil
			return
		}
	}
}

// Dispatch delivers an event to the handler bound on n, if any.
// Returns false when no handler is bound for the event type.
func Dispatch(n *Node, e vdom.Event) bool {
	h, ok := n.Handlers[e.Type]
	if !ok {
		return false
	}
	h(e)
	return true
}

// Find returns the first descendant (depth-first, including n itself)
// matching the predicate.
func Find(n *Node, match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, child := range n.Children {
		if found := Find(child, match); found != nil {
			return found
		}
	}
	return nil
}

// FindByTag returns the first descendant element with the given tag.
func FindByTag(n *Node, tag string) *Node {
	return Find(n, func(c *Node) bool { return c.Kind == KindElement && c.Tag == tag })
}

// InnerHTML serializes n's children.
func InnerHTML(n *Node) string {
	var b strings.Builder
	for _, child := range n.Children {
		writeHTML(&b, child)
	}
	return b.String()
}

// OuterHTML serializes n and its subtree.
func OuterHTML(n *Node) string {
	var b strings.Builder
	writeHTML(&b, n)
	return b.String()
}

func writeHTML(b *strings.Builder, n *Node) {
	if n.Kind == KindText {
		b.WriteString(escapeHTML(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Tag)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(n.Attrs[k]))
		b.WriteByte('"')
	}

	if len(n.Styles) > 0 {
		styleKeys := make([]string, 0, len(n.Styles))
		for k := range n.Styles {
			styleKeys = append(styleKeys, k)
		}
		sort.Strings(styleKeys)
		b.WriteString(` style="`)
		for i, k := range styleKeys {
			if i > 0 {
				b.WriteByte(';')
			}
			b.WriteString(k)
			b.WriteByte(':')
			b.WriteString(escapeAttr(n.Styles[k]))
		}
		b.WriteByte('"')
	}

	b.WriteByte('>')
	for _, child := range n.Children {
		writeHTML(b, child)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteByte('>')
}
