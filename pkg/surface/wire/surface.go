// Package wire is a remote render surface: mutations become an ordered
// patch stream flushed once per committed render pass to a thin client
// that applies them to the real DOM, while client events dispatch back
// into handler props registered server-side.
package wire

import (
	"strconv"
	"strings"

	"github.com/weftui/weft/pkg/surface"
	"github.com/weftui/weft/pkg/vdom"
)

// node is the wire handle: a stable ID the client mirrors.
type node struct {
	id string
}

// IDGenerator produces stable sequential node IDs (n1, n2, ...).
type IDGenerator struct {
	counter uint64
}

// Next returns the next ID.
func (g *IDGenerator) Next() string {
	g.counter++
	return "n" + strconv.FormatUint(g.counter, 10)
}

// Surface implements surface.Surface by recording patches. It is not
// safe for concurrent use; like every surface it is driven only from the
// render driver's goroutine.
type Surface struct {
	gen      IDGenerator
	patches  []Patch
	handlers map[string]vdom.Handler

	// parents/children mirror the client's tree topology so Remove can
	// clear handler entries for the whole detached subtree.
	parents  map[string]string
	children map[string]map[string]struct{}

	mutations uint64
}

// New creates an empty wire surface.
func New() *Surface {
	return &Surface{
		handlers: make(map[string]vdom.Handler),
		parents:  make(map[string]string),
		children: make(map[string]map[string]struct{}),
	}
}

// Root returns the handle the client treats as the mount container.
func (s *Surface) Root() surface.Handle {
	return &node{id: "root"}
}

// MutationCount implements surface.Instrumented.
func (s *Surface) MutationCount() uint64 {
	return s.mutations
}

// TakePatches returns the patches recorded since the last call and
// resets the buffer. The session sends one frame per committed pass.
func (s *Surface) TakePatches() []Patch {
	p := s.patches
	s.patches = nil
	return p
}

// Handler resolves the handler bound for an event on a node, or nil.
func (s *Surface) Handler(id, event string) vdom.Handler {
	return s.handlers[id+"_"+event]
}

func (s *Surface) record(p Patch) {
	s.mutations++
	s.patches = append(s.patches, p)
}

// CreateElement implements surface.Surface.
func (s *Surface) CreateElement(tag string) surface.Handle {
	n := &node{id: s.gen.Next()}
	s.record(Patch{Op: PatchCreateElement, ID: n.id, Tag: tag})
	return n
}

// CreateText implements surface.Surface.
func (s *Surface) CreateText(text string) surface.Handle {
	n := &node{id: s.gen.Next()}
	s.record(Patch{Op: PatchCreateText, ID: n.id, Value: text})
	return n
}

// SetText implements surface.Surface.
func (s *Surface) SetText(h surface.Handle, text string) {
	s.record(Patch{Op: PatchSetText, ID: h.(*node).id, Value: text})
}

// SetAttributes implements surface.Surface.
func (s *Surface) SetAttributes(h surface.Handle, props vdom.Props) {
	s.apply(h.(*node), vdom.SetProps(props))
}

// DiffAttributes implements surface.Surface.
func (s *Surface) DiffAttributes(h surface.Handle, old, new vdom.Props) {
	s.apply(h.(*node), vdom.DiffProps(old, new))
}

func (s *Surface) apply(n *node, patches []vdom.PropPatch) {
	for _, p := range patches {
		switch p.Op {
		case vdom.OpSetAttr:
			s.record(Patch{Op: PatchSetAttr, ID: n.id, Key: p.Key, Value: p.Value})
		case vdom.OpRemoveAttr:
			s.record(Patch{Op: PatchRemoveAttr, ID: n.id, Key: p.Key})
		case vdom.OpSetStyle:
			s.record(Patch{Op: PatchSetStyle, ID: n.id, Key: p.Key, Value: p.Value})
		case vdom.OpRemoveStyle:
			s.record(Patch{Op: PatchRemoveStyle, ID: n.id, Key: p.Key})
		case vdom.OpBindEvent:
			s.handlers[n.id+"_"+p.Key] = asHandler(p.Handler)
			s.record(Patch{Op: PatchBind, ID: n.id, Key: p.Key})
		case vdom.OpUnbindEvent:
			delete(s.handlers, n.id+"_"+p.Key)
			s.record(Patch{Op: PatchUnbind, ID: n.id, Key: p.Key})
		}
	}
}

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

// InsertBefore implements surface.Surface. Re-inserting a node under a
// new parent moves it, as on the client.
func (s *Surface) InsertBefore(parent, h, anchor surface.Handle) {
	pid := parent.(*node).id
	id := h.(*node).id

	p := Patch{Op: PatchInsert, Parent: pid, ID: id}
	if anchor != nil {
		p.Anchor = anchor.(*node).id
	}
	s.record(p)

	if old, ok := s.parents[id]; ok {
		delete(s.children[old], id)
	}
	s.parents[id] = pid
	if s.children[pid] == nil {
		s.children[pid] = make(map[string]struct{})
	}
	s.children[pid][id] = struct{}{}
}

// Remove implements surface.Surface. The client drops its listeners with
// the detached nodes; the server-side handler entries for the node and
// its whole subtree are cleared here so long-lived sessions do not
// accumulate dead entries.
func (s *Surface) Remove(parent, h surface.Handle) {
	n := h.(*node)
	s.record(Patch{Op: PatchRemove, Parent: parent.(*node).id, ID: n.id})

	removed := make(map[string]struct{})
	s.detachTree(n.id, removed)

	for key := range s.handlers {
		if i := strings.IndexByte(key, '_'); i > 0 {
			if _, gone := removed[key[:i]]; gone {
				delete(s.handlers, key)
			}
		}
	}
}

// detachTree records id and its descendants into out and drops their
// topology entries.
func (s *Surface) detachTree(id string, out map[string]struct{}) {
	out[id] = struct{}{}
	if p, ok := s.parents[id]; ok {
		delete(s.children[p], id)
		delete(s.parents, id)
	}
	for child := range s.children[id] {
		s.detachTree(child, out)
	}
	delete(s.children, id)
}
