package reconcile

import (
	"github.com/weftui/weft/pkg/surface"
	"github.com/weftui/weft/pkg/vdom"
)

// Instance is one node of the persistent render tree mirroring the
// surface. An instance exclusively owns its surface handle (nil for
// fragments and components, whose handles derive from descendants) and
// its child instances; replacement and unmount detach ownership
// explicitly so surface-handle lifetime stays auditable.
type Instance struct {
	Kind     vdom.VKind
	Handle   surface.Handle // nil for KindFragment/KindComponent
	Node     *vdom.VNode    // most recently rendered node, replaced on every update
	Children []*Instance
	Key      string
	Path     string
}

// FirstHandle returns the first surface handle in document order under
// the instance: its own handle, or the first among its descendants for
// handle-less kinds. Used as the insertion anchor during child-list
// reconciliation.
func (i *Instance) FirstHandle() surface.Handle {
	if i == nil {
		return nil
	}
	if i.Handle != nil {
		return i.Handle
	}
	for _, child := range i.Children {
		if h := child.FirstHandle(); h != nil {
			return h
		}
	}
	return nil
}

// topHandles appends the top-level surface handles owned by the instance:
// its own handle, or those of its children when it has none. These are
// the handles attached directly under the instance's parent handle.
func (i *Instance) topHandles(out *[]surface.Handle) {
	if i == nil {
		return
	}
	if i.Handle != nil {
		*out = append(*out, i.Handle)
		return
	}
	for _, child := range i.Children {
		child.topHandles(out)
	}
}

// detach removes every top-level handle of the instance from the parent
// handle, discarding the subtree. Hook state for unmounted component
// paths is reclaimed separately by the post-pass sweep.
func detach(s surface.Surface, parent surface.Handle, inst *Instance) {
	var handles []surface.Handle
	inst.topHandles(&handles)
	for _, h := range handles {
		s.Remove(parent, h)
	}
}
