package vdom

import (
	"fmt"
	"strconv"
)

// Normalize converts an arbitrary value into a flat sequence of VNodes.
//
//   - nil and booleans produce nothing (render as absence)
//   - strings and numbers produce a single text node
//   - *VNode passes through unchanged
//   - slices are normalized element-wise and flattened, nil results dropped
//   - anything else produces nothing
//
// The returned slice is nil when the value normalizes to absence.
func Normalize(value any) []*VNode {
	var out []*VNode
	appendNormalized(&out, value)
	return out
}

// NormalizeOne normalizes a component return value to at most one node.
// A sequence of more than one node is wrapped in an implicit fragment.
func NormalizeOne(value any) *VNode {
	nodes := Normalize(value)
	switch len(nodes) {
	case 0:
		return nil
	case 1:
		return nodes[0]
	default:
		return &VNode{Kind: KindFragment, Children: nodes}
	}
}

func appendNormalized(out *[]*VNode, value any) {
	switch v := value.(type) {
	case nil, bool:
		// Absence.
	case *VNode:
		if v != nil {
			*out = append(*out, v)
		}
	case string:
		*out = append(*out, Text(v))
	case int:
		*out = append(*out, Text(strconv.Itoa(v)))
	case int64:
		*out = append(*out, Text(strconv.FormatInt(v, 10)))
	case uint, int8, int16, int32, uint8, uint16, uint32, uint64:
		*out = append(*out, Text(fmt.Sprintf("%d", v)))
	case float64:
		*out = append(*out, Text(strconv.FormatFloat(v, 'f', -1, 64)))
	case float32:
		*out = append(*out, Text(strconv.FormatFloat(float64(v), 'f', -1, 32)))
	case []*VNode:
		for _, child := range v {
			appendNormalized(out, child)
		}
	case []any:
		for _, child := range v {
			appendNormalized(out, child)
		}
	default:
		// Arbitrary objects and functions normalize to absence; the
		// render loop favors resilience over strictness here.
	}
}

// El builds an element node. Args may be Attr values (becoming props,
// with "key" extracted into VNode.Key), a Props map (merged), or child
// values which are normalized and flattened as in Normalize.
func El(tag string, args ...any) *VNode {
	node := &VNode{Kind: KindElement, Tag: tag}
	collectArgs(node, args)
	return node
}

// Comp builds a component node from a function component. Args follow
// the same rules as El. Children are attached to the node and handed to
// the component body through the reserved "children" prop.
func Comp(fn Component, args ...any) *VNode {
	node := &VNode{Kind: KindComponent, Comp: fn}
	collectArgs(node, args)
	return node
}

// Fragment groups children without a wrapper element.
func Fragment(args ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	collectArgs(node, args)
	return node
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

func collectArgs(node *VNode, args []any) {
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			node.setProp(v.Key, v.Value)
		case []Attr:
			for _, a := range v {
				node.setProp(a.Key, a.Value)
			}
		case Props:
			for k, val := range v {
				node.setProp(k, val)
			}
		default:
			node.Children = append(node.Children, Normalize(arg)...)
		}
	}
}

func (v *VNode) setProp(key string, value any) {
	if key == "key" {
		v.Key = fmt.Sprintf("%v", value)
		return
	}
	if v.Props == nil {
		v.Props = make(Props)
	}
	v.Props[key] = value
}
