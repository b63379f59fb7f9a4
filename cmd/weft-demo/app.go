package main

import (
	"github.com/weftui/weft/pkg/hooks"
	"github.com/weftui/weft/pkg/vdom"
)

// App is the demo root component: a counter and a small todo list.
func App(ctx *hooks.Ctx, props vdom.Props) any {
	return vdom.Div(vdom.ID("app"),
		vdom.H1("weft demo"),
		vdom.Comp(Counter),
		vdom.Comp(TodoList),
	)
}

// Counter demonstrates state updates and functional setters.
func Counter(ctx *hooks.Ctx, props vdom.Props) any {
	count, setCount := hooks.UseState(ctx, 0)

	return vdom.Section(vdom.Class("counter"),
		vdom.H2("Counter"),
		vdom.P(vdom.Textf("count: %d", count)),
		vdom.Button(
			vdom.OnClick(func(vdom.Event) {
				setCount.Update(func(n int) int { return n + 1 })
			}),
			"+1",
		),
		vdom.Button(
			vdom.OnClick(func(vdom.Event) { setCount.Set(0) }),
			vdom.Disabled(count == 0),
			"reset",
		),
	)
}

type todo struct {
	id    int
	label string
	done  bool
}

// TodoList demonstrates keyed children and input handling.
func TodoList(ctx *hooks.Ctx, props vdom.Props) any {
	items, setItems := hooks.UseState(ctx, []todo{})
	draft, setDraft := hooks.UseState(ctx, "")
	nextID := hooks.UseRef(ctx, 1)

	add := func(vdom.Event) {
		if draft == "" {
			return
		}
		id := nextID.Current
		nextID.Current++
		next := append(append([]todo{}, items...), todo{id: id, label: draft})
		setItems.Set(next)
		setDraft.Set("")
	}

	toggle := func(id int) vdom.Handler {
		return func(vdom.Event) {
			next := append([]todo{}, items...)
			for i := range next {
				if next[i].id == id {
					next[i].done = !next[i].done
				}
			}
			setItems.Set(next)
		}
	}

	var lis []any
	for _, it := range items {
		style := map[string]string{}
		if it.done {
			style["text-decoration"] = "line-through"
		}
		lis = append(lis, vdom.Li(
			vdom.WithKey(it.id),
			vdom.StyleOf(style),
			vdom.OnClick(toggle(it.id)),
			it.label,
		))
	}

	return vdom.Section(vdom.Class("todos"),
		vdom.H2("Todos"),
		vdom.Input(
			vdom.Value(draft),
			vdom.Placeholder("what needs doing?"),
			vdom.OnInput(func(e vdom.Event) { setDraft.Set(e.Value) }),
		),
		vdom.Button(vdom.OnClick(add), "add"),
		vdom.Ul(lis),
	)
}
