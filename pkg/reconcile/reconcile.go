// Package reconcile implements the diff-and-mutate algorithm converting
// an old render instance plus a new virtual node into an updated instance
// and the minimal set of surface mutations, along with the identity-path
// scheme that keeps component state stable across renders.
package reconcile

import (
	"github.com/weftui/weft/pkg/hooks"
	"github.com/weftui/weft/pkg/surface"
	"github.com/weftui/weft/pkg/vdom"
)

// Reconcile diffs next against prev at the given identity path and
// applies the required mutations to s under parent. It returns the
// updated instance, or nil when next normalizes to absence.
//
// Decision table, first match wins:
//
//	prev      next                      action
//	any       nil                       unmount (detach handles, drop tree)
//	nil       node                      mount fresh
//	instance  type or key mismatch      replace (detach, mount fresh)
//	instance  type and key match        update in place
//
// The reconciler raises no domain errors; malformed shapes normalize to
// absence upstream. A panicking component body propagates out of the
// render pass.
func Reconcile(ctx *hooks.Ctx, s surface.Surface, parent surface.Handle, prev *Instance, next *vdom.VNode, path string) *Instance {
	return reconcile(ctx, s, parent, prev, next, path, nil)
}

func reconcile(ctx *hooks.Ctx, s surface.Surface, parent surface.Handle, prev *Instance, next *vdom.VNode, path string, anchor surface.Handle) *Instance {
	if next == nil {
		if prev != nil {
			detach(s, parent, prev)
		}
		return nil
	}

	if prev == nil {
		return mount(ctx, s, parent, next, path, anchor)
	}

	if prev.Key != next.Key || !vdom.SameType(prev.Node, next) {
		// Mismatched subtrees are never diffed against each other.
		detach(s, parent, prev)
		return mount(ctx, s, parent, next, path, anchor)
	}

	switch next.Kind {
	case vdom.KindText:
		if prev.Node.Text != next.Text {
			s.SetText(prev.Handle, next.Text)
		}
		prev.Node = next

	case vdom.KindElement:
		s.DiffAttributes(prev.Handle, prev.Node.Props, next.Props)
		prev.Node = next
		reconcileChildren(ctx, s, prev.Handle, prev, next.Children, path, nil)

	case vdom.KindFragment:
		// Fragments introduce no surface handle layer; children live
		// directly under the same parent. The inherited anchor keeps a
		// growing fragment ahead of its following siblings.
		prev.Node = next
		reconcileChildren(ctx, s, parent, prev, next.Children, path, anchor)

	case vdom.KindComponent:
		prev.Node = next
		rendered := invokeComponent(ctx, next, path)

		var oldChild *Instance
		if len(prev.Children) > 0 {
			oldChild = prev.Children[0]
		}

		var child *Instance
		if rendered != nil {
			childPath := ChildPath(path, rendered.Key, 0, rendered, []*vdom.VNode{rendered})
			child = reconcile(ctx, s, parent, oldChild, rendered, childPath, anchor)
		} else if oldChild != nil {
			detach(s, parent, oldChild)
		}

		if child != nil {
			prev.Children = []*Instance{child}
		} else {
			prev.Children = nil
		}
	}

	return prev
}

// mount builds a fresh instance tree for node at path and attaches its
// surface handles under parent, immediately before anchor (appended when
// anchor is nil).
func mount(ctx *hooks.Ctx, s surface.Surface, parent surface.Handle, node *vdom.VNode, path string, anchor surface.Handle) *Instance {
	inst := &Instance{Kind: node.Kind, Node: node, Key: node.Key, Path: path}

	switch node.Kind {
	case vdom.KindText:
		h := s.CreateText(node.Text)
		inst.Handle = h
		s.InsertBefore(parent, h, anchor)

	case vdom.KindElement:
		h := s.CreateElement(node.Tag)
		s.SetAttributes(h, node.Props)
		inst.Handle = h
		for i, child := range node.Children {
			childPath := ChildPath(path, child.Key, i, child, node.Children)
			if ci := mount(ctx, s, h, child, childPath, nil); ci != nil {
				inst.Children = append(inst.Children, ci)
			}
		}
		s.InsertBefore(parent, h, anchor)

	case vdom.KindFragment:
		// Each child inserts before the same anchor in turn, preserving
		// list order under the shared parent.
		for i, child := range node.Children {
			childPath := ChildPath(path, child.Key, i, child, node.Children)
			if ci := mount(ctx, s, parent, child, childPath, anchor); ci != nil {
				inst.Children = append(inst.Children, ci)
			}
		}

	case vdom.KindComponent:
		rendered := invokeComponent(ctx, node, path)
		if rendered != nil {
			childPath := ChildPath(path, rendered.Key, 0, rendered, []*vdom.VNode{rendered})
			if ci := mount(ctx, s, parent, rendered, childPath, anchor); ci != nil {
				inst.Children = []*Instance{ci}
			}
		}
	}

	return inst
}

// invokeComponent runs the component body at path under the hook session
// and normalizes its output to at most one node (a sequence is wrapped in
// an implicit fragment).
func invokeComponent(ctx *hooks.Ctx, node *vdom.VNode, path string) *vdom.VNode {
	ctx.Begin(path)
	defer ctx.End()

	props := node.Props
	if len(node.Children) > 0 {
		merged := make(vdom.Props, len(props)+1)
		for k, v := range props {
			merged[k] = v
		}
		merged["children"] = node.Children
		props = merged
	}

	return vdom.NormalizeOne(node.Comp(ctx, props))
}

// reconcileChildren aligns old and new child lists by position up to the
// longer list's length. For each position the insertion anchor is the
// first surface handle found among the old children strictly after that
// position, falling back to tail when none exists, so a mounted or
// replaced child lands in order; results are the non-nil instances in
// new-list order. tail is the anchor inherited from the enclosing
// sibling list (non-nil only for fragments).
func reconcileChildren(ctx *hooks.Ctx, s surface.Surface, parent surface.Handle, inst *Instance, newChildren []*vdom.VNode, parentPath string, tail surface.Handle) {
	old := inst.Children

	max := len(old)
	if len(newChildren) > max {
		max = len(newChildren)
	}

	out := make([]*Instance, 0, len(newChildren))
	for i := 0; i < max; i++ {
		var prevChild *Instance
		if i < len(old) {
			prevChild = old[i]
		}
		var nextChild *vdom.VNode
		if i < len(newChildren) {
			nextChild = newChildren[i]
		}

		var path string
		if nextChild != nil {
			path = ChildPath(parentPath, nextChild.Key, i, nextChild, newChildren)
		}

		anchor := tail
		for j := i + 1; j < len(old); j++ {
			if h := old[j].FirstHandle(); h != nil {
				anchor = h
				break
			}
		}

		if res := reconcile(ctx, s, parent, prevChild, nextChild, path, anchor); res != nil {
			out = append(out, res)
		}
	}

	inst.Children = out
}
