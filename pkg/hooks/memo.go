package hooks

import "github.com/weftui/weft/pkg/eq"

// memoSlot caches one UseMemo ordinal.
type memoSlot struct {
	deps  []any
	value any
}

func (*memoSlot) kind() string { return "memo" }

// UseMemo returns the cached value while deps are unchanged one-level
// from the previous render, recomputing otherwise. A nil deps list
// recomputes every render.
func UseMemo[T any](ctx *Ctx, compute func() T, deps []any) T {
	path, idx, existing := ctx.nextSlot("memo")

	if ms, ok := existing.(*memoSlot); ok && deps != nil && eq.SameList(ms.deps, deps) {
		return castTo[T](ms.value)
	}

	value := compute()
	ctx.setSlot(path, idx, &memoSlot{deps: deps, value: value})
	return value
}

// Ref is a mutable box whose identity is stable across renders.
// Mutating Current never triggers a render pass.
type Ref[T any] struct {
	Current T
}

// refSlot holds one UseRef ordinal.
type refSlot struct {
	ref any
}

func (*refSlot) kind() string { return "ref" }

// UseRef returns the same *Ref for this ordinal on every render,
// initialized once with initial.
func UseRef[T any](ctx *Ctx, initial T) *Ref[T] {
	path, idx, existing := ctx.nextSlot("ref")

	if rs, ok := existing.(*refSlot); ok {
		return rs.ref.(*Ref[T])
	}

	ref := &Ref[T]{Current: initial}
	ctx.setSlot(path, idx, &refSlot{ref: ref})
	return ref
}
