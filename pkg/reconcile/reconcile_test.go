package reconcile

import (
	"testing"

	"github.com/weftui/weft/pkg/hooks"
	"github.com/weftui/weft/pkg/surface/memdom"
	"github.com/weftui/weft/pkg/vdom"
)

// fixture bundles the pieces one reconciler test needs.
type fixture struct {
	ctx       *hooks.Ctx
	s         *memdom.Surface
	container *memdom.Node
	root      *Instance
	rootPath  string
}

func newFixture() *fixture {
	s := memdom.New()
	return &fixture{
		ctx:       hooks.New(nil),
		s:         s,
		container: s.NewContainer(),
	}
}

// render runs one full pass against the root node, mimicking the driver.
func (f *fixture) render(node *vdom.VNode) {
	if node != nil && f.rootPath == "" {
		f.rootPath = ChildPath("", node.Key, 0, node, []*vdom.VNode{node})
	}
	f.ctx.BeginPass()
	f.root = Reconcile(f.ctx, f.s, f.container, f.root, node, f.rootPath)
	f.ctx.Sweep()
	f.ctx.FlushEffects()
}

func (f *fixture) html() string {
	return memdom.InnerHTML(f.container)
}

func TestMountElementTree(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div(vdom.ID("app"),
		vdom.H1("Title"),
		vdom.P(vdom.Class("lead"), "Body"),
	))

	want := `<div id="app"><h1>Title</h1><p class="lead">Body</p></div>`
	if got := f.html(); got != want {
		t.Errorf("mounted tree:\n got: %s\nwant: %s", got, want)
	}
}

func TestUpdateTextInPlace(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div("before"))

	textNode := f.container.Children[0].Children[0]
	f.render(vdom.Div("after"))

	if got := f.html(); got != "<div>after</div>" {
		t.Errorf("html = %s", got)
	}
	if f.container.Children[0].Children[0] != textNode {
		t.Error("text node must be updated in place, not replaced")
	}
}

func TestUpdateAttributesInPlace(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div(vdom.ID("a"), vdom.Class("x")))

	handle := f.container.Children[0]
	f.render(vdom.Div(vdom.ID("b")))

	if f.container.Children[0] != handle {
		t.Fatal("same-type element must keep its handle")
	}
	if got := f.html(); got != `<div id="b"></div>` {
		t.Errorf("html = %s", got)
	}
}

func TestIdempotentRenderIsZeroMutations(t *testing.T) {
	f := newFixture()
	tree := func() *vdom.VNode {
		return vdom.Div(vdom.ID("app"),
			vdom.Button(vdom.Disabled(false), "go"),
			vdom.Ul(
				vdom.Li(vdom.WithKey("a"), "one"),
				vdom.Li(vdom.WithKey("b"), "two"),
			),
		)
	}
	f.render(tree())

	before := f.s.MutationCount()
	f.render(tree())
	if delta := f.s.MutationCount() - before; delta != 0 {
		t.Errorf("identical re-render produced %d mutations, want 0", delta)
	}
}

func TestReplaceOnTypeMismatch(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div(vdom.Span("old")))

	oldChild := f.container.Children[0].Children[0]
	f.render(vdom.Div(vdom.P("new")))

	parent := f.container.Children[0]
	if len(parent.Children) != 1 {
		t.Fatalf("parent has %d children, want 1", len(parent.Children))
	}
	if parent.Children[0] == oldChild {
		t.Error("type mismatch must replace, not reuse, the handle")
	}
	if got := f.html(); got != "<div><p>new</p></div>" {
		t.Errorf("html = %s", got)
	}
}

func TestReplaceOnKeyMismatch(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div(vdom.Span(vdom.WithKey("a"), "x")))

	oldChild := f.container.Children[0].Children[0]
	f.render(vdom.Div(vdom.Span(vdom.WithKey("b"), "x")))

	if f.container.Children[0].Children[0] == oldChild {
		t.Error("key change must remount even for same-type nodes")
	}
}

func TestUnmount(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div("content"))
	f.render(nil)

	if f.root != nil {
		t.Error("unmounted instance must be nil")
	}
	if got := f.html(); got != "" {
		t.Errorf("container not empty after unmount: %s", got)
	}
}

func TestChildInsertedInMiddleKeepsOrder(t *testing.T) {
	f := newFixture()
	f.render(vdom.Ul(
		vdom.Li(vdom.WithKey("a"), "a"),
		vdom.Li(vdom.WithKey("c"), "c"),
	))
	f.render(vdom.Ul(
		vdom.Li(vdom.WithKey("a"), "a"),
		vdom.Li(vdom.WithKey("b"), "b"),
		vdom.Li(vdom.WithKey("c"), "c"),
	))

	want := "<ul><li>a</li><li>b</li><li>c</li></ul>"
	if got := f.html(); got != want {
		t.Errorf("order after middle insert:\n got: %s\nwant: %s", got, want)
	}
}

func TestChildRemovedFromMiddle(t *testing.T) {
	f := newFixture()
	f.render(vdom.Ul(
		vdom.Li(vdom.WithKey("a"), "a"),
		vdom.Li(vdom.WithKey("b"), "b"),
		vdom.Li(vdom.WithKey("c"), "c"),
	))
	f.render(vdom.Ul(
		vdom.Li(vdom.WithKey("a"), "a"),
		vdom.Li(vdom.WithKey("c"), "c"),
	))

	want := "<ul><li>a</li><li>c</li></ul>"
	if got := f.html(); got != want {
		t.Errorf("order after middle removal:\n got: %s\nwant: %s", got, want)
	}
}

func TestUnkeyedSwapMutatesInPlace(t *testing.T) {
	// Reordering same-typed unkeyed siblings is indistinguishable from
	// in-place mutation: the handles stay put and the attributes swap.
	f := newFixture()
	f.render(vdom.Div(
		vdom.Span(vdom.ID("first")),
		vdom.Span(vdom.ID("second")),
	))

	parent := f.container.Children[0]
	h0, h1 := parent.Children[0], parent.Children[1]

	f.render(vdom.Div(
		vdom.Span(vdom.ID("second")),
		vdom.Span(vdom.ID("first")),
	))

	if parent.Children[0] != h0 || parent.Children[1] != h1 {
		t.Error("unkeyed swap must keep handles in position")
	}
	if parent.Children[0].Attrs["id"] != "second" || parent.Children[1].Attrs["id"] != "first" {
		t.Errorf("attributes must have swapped: %s", f.html())
	}
}

func TestFragmentChildrenShareParent(t *testing.T) {
	f := newFixture()
	f.render(vdom.Div(
		vdom.Text("a"),
		vdom.Fragment(vdom.Span("b"), vdom.Span("c")),
		vdom.Text("d"),
	))

	want := "<div>a<span>b</span><span>c</span>d</div>"
	if got := f.html(); got != want {
		t.Errorf("fragment flattening:\n got: %s\nwant: %s", got, want)
	}
}

func TestFragmentGrowthInsertsBeforeFollowingSibling(t *testing.T) {
	item := func(labels ...string) *vdom.VNode {
		kids := make([]any, 0, len(labels))
		for _, l := range labels {
			kids = append(kids, vdom.Span(l))
		}
		return vdom.Div(vdom.Fragment(kids...), vdom.P("tail"))
	}

	f := newFixture()
	f.render(item("a"))
	f.render(item("a", "b"))

	want := "<div><span>a</span><span>b</span><p>tail</p></div>"
	if got := f.html(); got != want {
		t.Errorf("growing fragment must insert before the tail:\n got: %s\nwant: %s", got, want)
	}
}

func TestComponentRendersAndKeepsState(t *testing.T) {
	var setter hooks.Setter[int]
	counter := func(ctx *hooks.Ctx, props vdom.Props) any {
		n, set := hooks.UseState(ctx, 0)
		setter = set
		return vdom.Div(vdom.Textf("count: %d", n))
	}

	f := newFixture()
	f.render(vdom.Comp(counter))
	if got := f.html(); got != "<div>count: 0</div>" {
		t.Fatalf("initial render: %s", got)
	}

	setter.Set(5)
	f.render(vdom.Comp(counter))
	if got := f.html(); got != "<div>count: 5</div>" {
		t.Errorf("after set: %s", got)
	}
}

func TestComponentReturningNil(t *testing.T) {
	empty := func(ctx *hooks.Ctx, props vdom.Props) any { return nil }

	f := newFixture()
	f.render(vdom.Div(vdom.Comp(empty), vdom.Span("visible")))

	if got := f.html(); got != "<div><span>visible</span></div>" {
		t.Errorf("nil-rendering component must contribute nothing: %s", got)
	}
}

func TestComponentMultiReturnWrappedInFragment(t *testing.T) {
	pair := func(ctx *hooks.Ctx, props vdom.Props) any {
		return []any{vdom.Span("a"), vdom.Span("b")}
	}

	f := newFixture()
	f.render(vdom.Div(vdom.Comp(pair), vdom.P("after")))

	want := "<div><span>a</span><span>b</span><p>after</p></div>"
	if got := f.html(); got != want {
		t.Errorf("multi-return component:\n got: %s\nwant: %s", got, want)
	}
}

func TestComponentChildrenProp(t *testing.T) {
	wrapper := func(ctx *hooks.Ctx, props vdom.Props) any {
		return vdom.Section(props["children"])
	}

	f := newFixture()
	f.render(vdom.Comp(wrapper, vdom.P("inner")))

	if got := f.html(); got != "<section><p>inner</p></section>" {
		t.Errorf("children must flow through the reserved prop: %s", got)
	}
}

func TestKeyedReorderPreservesComponentState(t *testing.T) {
	setters := map[string]hooks.Setter[string]{}
	item := func(ctx *hooks.Ctx, props vdom.Props) any {
		label := props["label"].(string)
		text, set := hooks.UseState(ctx, label)
		setters[label] = set
		return vdom.Li(text)
	}

	list := func(labels ...string) *vdom.VNode {
		kids := make([]any, 0, len(labels))
		for _, l := range labels {
			kids = append(kids, vdom.Comp(item, vdom.WithKey(l), vdom.Props{"label": l}))
		}
		return vdom.Ul(kids...)
	}

	f := newFixture()
	f.render(list("a", "b", "c"))

	// Mutate item a's state, then rotate the list.
	setters["a"].Set("A!")
	f.render(list("a", "b", "c"))
	if got := f.html(); got != "<ul><li>A!</li><li>b</li><li>c</li></ul>" {
		t.Fatalf("before reorder: %s", got)
	}

	f.render(list("c", "a", "b"))
	want := "<ul><li>c</li><li>A!</li><li>b</li></ul>"
	if got := f.html(); got != want {
		t.Errorf("state must follow the key through a reorder:\n got: %s\nwant: %s", got, want)
	}
}

func TestSweepReclaimsUnmountedComponentState(t *testing.T) {
	child := func(ctx *hooks.Ctx, props vdom.Props) any {
		hooks.UseState(ctx, 0)
		return vdom.Span("child")
	}
	app := func(show bool) *vdom.VNode {
		if show {
			return vdom.Div(vdom.Comp(child))
		}
		return vdom.Div()
	}

	f := newFixture()
	f.render(app(true))
	pathsWithChild := f.ctx.PathCount()

	f.render(app(false))
	if f.ctx.PathCount() >= pathsWithChild {
		t.Errorf("sweep must reclaim the child's hook path: %d -> %d",
			pathsWithChild, f.ctx.PathCount())
	}
}

func TestEventHandlerBinding(t *testing.T) {
	clicked := 0
	f := newFixture()
	f.render(vdom.Button(vdom.OnClick(func(vdom.Event) { clicked++ }), "go"))

	btn := memdom.FindByTag(f.container, "button")
	if btn == nil {
		t.Fatal("button not rendered")
	}
	if !memdom.Dispatch(btn, vdom.Event{Type: "click"}) {
		t.Fatal("click handler not bound")
	}
	if clicked != 1 {
		t.Errorf("handler ran %d times, want 1", clicked)
	}
}
