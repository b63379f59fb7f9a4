package vdom

import (
	"reflect"
	"runtime"
	"strings"

	"github.com/weftui/weft/pkg/hooks"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Function component
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// Component is a function component: given the active render session and
// its props it returns the desired output. The return value is normalized
// (see Normalize), so components may return a *VNode, a string, a number,
// a []*VNode, or nil.
type Component func(ctx *hooks.Ctx, props Props) any

// VNode is an immutable description of desired render output at one tree
// position. Nodes are disposable: a fresh tree is built every render and
// diffed against the persistent instance tree.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Key      string    // Reconciliation key, "" if none
	Text     string    // For KindText
	Comp     Component // For KindComponent
}

// Props holds attributes and event handlers.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// Event carries the data of a surface event delivered to a handler prop.
type Event struct {
	// Type is the event name without the "on" prefix (click, input, ...).
	Type string

	// Value is the target's value, for input-like events.
	Value string

	// Checked is the target's checked state, for checkbox-like events.
	Checked bool

	// Data contains any additional event payload.
	Data map[string]any
}

// Handler is an event handler prop value.
type Handler func(Event)

// IsEventProp reports whether the prop key names an event handler.
// Case-insensitive so onclick, onClick and ONCLICK all match.
func IsEventProp(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// SameComponent reports whether a and b are the same component function.
func SameComponent(a, b Component) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// ComponentName returns the short name of the component function, or
// "anonymous" when no name is available. Used for identity paths and
// diagnostics.
func ComponentName(c Component) string {
	if c == nil {
		return "anonymous"
	}
	fn := runtime.FuncForPC(reflect.ValueOf(c).Pointer())
	if fn == nil {
		return "anonymous"
	}
	name := fn.Name()
	if i := strings.LastIndexByte(name, '/'); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	name = strings.TrimSuffix(name, "-fm")
	if name == "" {
		return "anonymous"
	}
	return name
}

// SameType reports whether two nodes occupy the same identity class:
// equal kind, and for elements an equal tag, for components the same
// function. Used both by the path algorithm's stable-index scan and by
// the reconciler's update-vs-replace decision.
func SameType(a, b *VNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindElement:
		return a.Tag == b.Tag
	case KindComponent:
		return SameComponent(a.Comp, b.Comp)
	default:
		return true
	}
}
