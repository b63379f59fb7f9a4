package reconcile

import (
	"strconv"
	"strings"

	"github.com/weftui/weft/pkg/vdom"
)

// ChildPath derives the stable identity path for a node occupying the
// given position in its sibling list. The path doubles as reconciliation
// identity and hook-storage key, so two nodes in "the same logical slot"
// across consecutive renders must produce the same path exactly when they
// should be updated in place rather than remounted.
//
// Segment shape: a category prefix (h:<tag>, t, f, c:<name>), then either
// :k:<key> when an explicit key is present, or the node's stable index:
// how many same-typed siblings precede its position in the new sibling
// list. Insertions or removals of other types at earlier positions
// therefore do not shift the identity; reordering same-typed unkeyed
// siblings is indistinguishable from in-place mutation and is
// deliberately not detected. The index is purely positional, so the same
// *VNode pointer occurring at two positions still yields two distinct
// paths.
func ChildPath(parentPath, key string, index int, node *vdom.VNode, siblings []*vdom.VNode) string {
	var seg strings.Builder
	seg.WriteString(categoryPrefix(node))

	if key != "" {
		seg.WriteString(":k:")
		seg.WriteString(key)
	} else {
		seg.WriteByte(':')
		seg.WriteString(strconv.Itoa(stableIndex(node, index, siblings)))
	}

	if parentPath == "" {
		return seg.String()
	}
	return parentPath + "/" + seg.String()
}

func categoryPrefix(node *vdom.VNode) string {
	switch node.Kind {
	case vdom.KindElement:
		// The tag is part of the segment so unkeyed same-index siblings
		// of different tags cannot collide.
		return "h:" + node.Tag
	case vdom.KindText:
		return "t"
	case vdom.KindFragment:
		return "f"
	case vdom.KindComponent:
		return "c:" + vdom.ComponentName(node.Comp)
	default:
		return "?"
	}
}

// stableIndex returns how many same-typed siblings precede position
// index in the list. Worst case O(n) per child, O(n^2) per child list;
// child lists are small in practice.
func stableIndex(node *vdom.VNode, index int, siblings []*vdom.VNode) int {
	if len(siblings) == 0 {
		return index
	}
	n := 0
	for i, sib := range siblings {
		if sib == nil || !vdom.SameType(sib, node) {
			continue
		}
		if i == index {
			return n
		}
		n++
	}
	return n
}
