package hooks

import "github.com/weftui/weft/pkg/eq"

// stateSlot holds the current value of one UseState ordinal.
type stateSlot struct {
	value any
}

func (*stateSlot) kind() string { return "state" }

// Setter updates a state slot. Its identity stays valid after the owning
// component unmounts; writes through a stale setter are silently absorbed.
type Setter[T any] struct {
	ctx  *Ctx
	path string
	idx  int
}

// Set writes a new value. The write compares against the live slot value
// with identity-preserving equality (NaN equals itself, +0 and -0 are
// distinct) and requests a render pass only when the value changed.
func (s Setter[T]) Set(v T) {
	s.apply(func(T) T { return v })
}

// Update resolves the next value from the live slot value at call time,
// not the value captured at render time. Two synchronous
// Update(func(n){return n+1}) calls therefore observe each other.
func (s Setter[T]) Update(fn func(T) T) {
	s.apply(fn)
}

func (s Setter[T]) apply(fn func(T) T) {
	ss, ok := s.ctx.slotAt(s.path, s.idx).(*stateSlot)
	if !ok {
		// Unmounted and swept. Absorb the write.
		return
	}
	old := castTo[T](ss.value)
	next := fn(old)
	if eq.Same(ss.value, any(next)) {
		return
	}
	ss.value = next
	s.ctx.invalidate()
}

// UseState returns the state value for the current slot and a setter for
// it. On the first render of this ordinal the slot is initialized with
// initial; afterwards initial is ignored.
func UseState[T any](ctx *Ctx, initial T) (T, Setter[T]) {
	return useState(ctx, func() T { return initial })
}

// UseStateLazy is UseState with a lazy initializer: init runs exactly
// once, on the first render of this ordinal.
func UseStateLazy[T any](ctx *Ctx, init func() T) (T, Setter[T]) {
	return useState(ctx, init)
}

func useState[T any](ctx *Ctx, init func() T) (T, Setter[T]) {
	path, idx, existing := ctx.nextSlot("state")

	ss, ok := existing.(*stateSlot)
	if !ok {
		ss = &stateSlot{value: init()}
		ctx.setSlot(path, idx, ss)
	}

	return castTo[T](ss.value), Setter[T]{ctx: ctx, path: path, idx: idx}
}

// castTo converts a stored any back to T, tolerating a nil interface.
func castTo[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}
	return v.(T)
}
