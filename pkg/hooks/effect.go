package hooks

import "github.com/weftui/weft/pkg/eq"

// Cleanup tears down whatever an effect set up. Returned from an effect
// body; runs before the effect re-runs and once more at unmount.
type Cleanup func()

// effectSlot holds one UseEffect ordinal: the dependency list it last ran
// with, the effect body for the next run, and the cleanup from the last
// run (carried forward verbatim until it executes).
type effectSlot struct {
	deps    []any
	hasDeps bool
	fn      func() Cleanup
	cleanup Cleanup
}

func (*effectSlot) kind() string { return "effect" }

// UseEffect schedules fn to run after the current pass commits.
//
// deps semantics: a nil list means "no dependencies declared" and the
// effect runs after every render; an empty non-nil list ([]any{}) never
// changes, so the effect runs exactly once. Otherwise the effect runs
// when the list differs one-level from the previous render's list, with
// any length mismatch counting as changed.
//
// The slot is always replaced with a record carrying the new deps and
// body; the previous cleanup is carried forward so it runs before the
// next execution, or at unmount.
func UseEffect(ctx *Ctx, fn func() Cleanup, deps []any) {
	path, idx, existing := ctx.nextSlot("effect")

	prev, hadPrev := existing.(*effectSlot)

	shouldRun := deps == nil || !hadPrev || !prev.hasDeps || !eq.SameList(prev.deps, deps)

	next := &effectSlot{
		deps:    deps,
		hasDeps: deps != nil,
		fn:      fn,
	}
	if hadPrev {
		next.cleanup = prev.cleanup
	}
	ctx.setSlot(path, idx, next)

	if shouldRun {
		ctx.queue = append(ctx.queue, effectRef{path: path, idx: idx})
	}
}
