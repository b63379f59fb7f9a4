package reconcile

import (
	"testing"

	"github.com/weftui/weft/pkg/hooks"
	"github.com/weftui/weft/pkg/vdom"
)

func TestChildPathSegments(t *testing.T) {
	div := vdom.Div()
	txt := vdom.Text("x")
	frag := vdom.Fragment()

	siblings := []*vdom.VNode{div, txt, frag}

	if got := ChildPath("", "", 0, div, siblings); got != "h:div:0" {
		t.Errorf("element path = %q, want h:div:0", got)
	}
	if got := ChildPath("p", "", 1, txt, siblings); got != "p/t:0" {
		t.Errorf("text path = %q, want p/t:0", got)
	}
	if got := ChildPath("p", "", 2, frag, siblings); got != "p/f:0" {
		t.Errorf("fragment path = %q, want p/f:0", got)
	}
}

func TestChildPathExplicitKey(t *testing.T) {
	// The key replaces the index entirely; position must not appear.
	node := vdom.Li(vdom.WithKey("item-9"))
	got := ChildPath("h:ul:0", node.Key, 3, node, []*vdom.VNode{node})
	if got != "h:ul:0/h:li:k:item-9" {
		t.Errorf("keyed path = %q, want h:ul:0/h:li:k:item-9", got)
	}
}

func TestChildPathStableIndexSkipsOtherTypes(t *testing.T) {
	// The stable index counts only same-typed siblings, so inserting a
	// text node before a div must not shift the div's identity.
	divA := vdom.Div(vdom.ID("a"))
	divB := vdom.Div(vdom.ID("b"))

	before := []*vdom.VNode{divA, divB}
	after := []*vdom.VNode{vdom.Text("new"), divA, divB}

	pathBefore := ChildPath("", "", 1, divB, before)
	pathAfter := ChildPath("", "", 2, divB, after)
	if pathBefore != pathAfter {
		t.Errorf("identity shifted: %q -> %q", pathBefore, pathAfter)
	}
	if pathBefore != "h:div:1" {
		t.Errorf("path = %q, want h:div:1", pathBefore)
	}
}

func TestChildPathTagDisambiguates(t *testing.T) {
	div := vdom.Div()
	span := vdom.Span()
	siblings := []*vdom.VNode{div, span}

	p1 := ChildPath("", "", 0, div, siblings)
	p2 := ChildPath("", "", 1, span, siblings)
	if p1 == p2 {
		t.Errorf("unkeyed different-tag siblings must not collide, both %q", p1)
	}
}

func TestChildPathAliasedSiblingsStayUnique(t *testing.T) {
	// The same node value rendered at two positions must still occupy two
	// identities.
	shared := vdom.Span("x")
	siblings := []*vdom.VNode{shared, shared}

	p0 := ChildPath("", "", 0, shared, siblings)
	p1 := ChildPath("", "", 1, shared, siblings)
	if p0 == p1 {
		t.Errorf("aliased siblings collided on path %q", p0)
	}
}

func TestChildPathComponentName(t *testing.T) {
	comp := func(ctx *hooks.Ctx, props vdom.Props) any { return vdom.Div() }
	node := vdom.Comp(comp)
	got := ChildPath("", "", 0, node, []*vdom.VNode{node})
	if got == "c::0" || got == "" {
		t.Errorf("component path = %q, want a named c:<name>:0 segment", got)
	}
}
