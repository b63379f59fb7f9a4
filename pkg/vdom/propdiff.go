package vdom

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/weftui/weft/pkg/eq"
)

// PropOp is the kind of a single prop mutation.
type PropOp uint8

const (
	OpSetAttr     PropOp = iota + 1 // Set/update a scalar attribute
	OpRemoveAttr                    // Remove an attribute
	OpSetStyle                      // Set one style key
	OpRemoveStyle                   // Clear one style key
	OpBindEvent                     // (Re)bind an event handler
	OpUnbindEvent                   // Unbind an event handler
)

// String returns the string representation of the PropOp.
func (op PropOp) String() string {
	switch op {
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetStyle:
		return "SetStyle"
	case OpRemoveStyle:
		return "RemoveStyle"
	case OpBindEvent:
		return "BindEvent"
	case OpUnbindEvent:
		return "UnbindEvent"
	default:
		return "Unknown"
	}
}

// PropPatch is one prop mutation produced by DiffProps. Surfaces apply
// patches in order so that every concrete surface shares identical
// attribute semantics.
type PropPatch struct {
	Op      PropOp
	Key     string // Attribute, style key, or event name
	Value   string // Stringified value for SetAttr/SetStyle
	Handler any    // Handler reference for BindEvent
}

// DiffProps computes the prop mutations that transform old into new.
// It walks the key-by-key union of both prop sets, skipping the reserved
// "key", "children" and "nodeValue" entries:
//
//   - event handler props re-bind only when the handler reference changed
//   - "style" maps merge key-wise: keys absent from the new map are
//     cleared, the rest assigned
//   - boolean true becomes a presence-only attribute, false or absence
//     removes it, any other value is stringified
func DiffProps(old, new Props) []PropPatch {
	var patches []PropPatch

	for key, oldVal := range old {
		if reservedProp(key) {
			continue
		}
		newVal, exists := new[key]

		if IsEventProp(key) {
			if !exists {
				patches = append(patches, PropPatch{Op: OpUnbindEvent, Key: eventName(key)})
			} else if !sameHandler(oldVal, newVal) {
				patches = append(patches, PropPatch{Op: OpBindEvent, Key: eventName(key), Handler: newVal})
			}
			continue
		}

		if key == "style" {
			patches = append(patches, diffStyle(styleMap(oldVal), styleMap(newVal))...)
			continue
		}

		if !exists {
			patches = append(patches, PropPatch{Op: OpRemoveAttr, Key: key})
			continue
		}
		patches = append(patches, scalarPatch(key, oldVal, newVal)...)
	}

	for key, newVal := range new {
		if reservedProp(key) {
			continue
		}
		if _, exists := old[key]; exists {
			continue
		}

		if IsEventProp(key) {
			patches = append(patches, PropPatch{Op: OpBindEvent, Key: eventName(key), Handler: newVal})
			continue
		}
		if key == "style" {
			patches = append(patches, diffStyle(nil, styleMap(newVal))...)
			continue
		}
		patches = append(patches, scalarPatch(key, nil, newVal)...)
	}

	return patches
}

// SetProps computes the mutations for a freshly created node: every prop
// applied as if diffed against an empty prop set.
func SetProps(props Props) []PropPatch {
	return DiffProps(nil, props)
}

// scalarPatch emits the patch for one non-style, non-event attribute.
// oldVal is nil for newly added props.
func scalarPatch(key string, oldVal, newVal any) []PropPatch {
	if b, ok := newVal.(bool); ok {
		ob, wasBool := oldVal.(bool)
		if b {
			if wasBool && ob {
				return nil
			}
			return []PropPatch{{Op: OpSetAttr, Key: key, Value: ""}}
		}
		if oldVal == nil || (wasBool && !ob) {
			return nil
		}
		return []PropPatch{{Op: OpRemoveAttr, Key: key}}
	}
	if newVal == nil {
		if oldVal == nil {
			return nil
		}
		return []PropPatch{{Op: OpRemoveAttr, Key: key}}
	}
	if oldVal != nil && eq.Same(oldVal, newVal) {
		return nil
	}
	return []PropPatch{{Op: OpSetAttr, Key: key, Value: PropString(newVal)}}
}

func diffStyle(old, new map[string]string) []PropPatch {
	var patches []PropPatch
	for k := range old {
		if _, ok := new[k]; !ok {
			patches = append(patches, PropPatch{Op: OpRemoveStyle, Key: k})
		}
	}
	for k, v := range new {
		if old[k] != v {
			patches = append(patches, PropPatch{Op: OpSetStyle, Key: k, Value: v})
		}
	}
	return patches
}

// styleMap coerces a style prop value into a string map. Both
// map[string]string and map[string]any are accepted; anything else is
// treated as empty.
func styleMap(v any) map[string]string {
	switch m := v.(type) {
	case map[string]string:
		return m
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, val := range m {
			out[k] = PropString(val)
		}
		return out
	default:
		return nil
	}
}

func reservedProp(key string) bool {
	return key == "key" || key == "children" || key == "nodeValue"
}

// eventName strips the "on" prefix and lowercases: onClick -> click.
func eventName(key string) string {
	name := key[2:]
	b := []byte(name)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// sameHandler compares two handler props by function identity.
func sameHandler(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() != reflect.Func || rb.Kind() != reflect.Func {
		return false
	}
	return ra.Pointer() == rb.Pointer()
}

// PropString converts a prop value to its attribute string form.
func PropString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
