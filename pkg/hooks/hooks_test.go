package hooks

import (
	"math"
	"testing"

	werrors "github.com/weftui/weft/internal/errors"
)

// renderPass simulates one driver pass rendering a single component at
// path: begin the pass, run the body inside the component invocation,
// then sweep and flush effects.
func renderPass(c *Ctx, path string, body func()) {
	c.BeginPass()
	c.Begin(path)
	body()
	c.End()
	c.Sweep()
	c.FlushEffects()
}

func TestUseStateInitialAndUpdate(t *testing.T) {
	c := New(nil)
	renders := 0
	c.SetScheduler(func() { renders++ })

	var setter Setter[int]
	var got int
	body := func() {
		got, setter = UseState(c, 10)
	}

	renderPass(c, "c:App:0", body)
	if got != 10 {
		t.Fatalf("first render = %d, want initial 10", got)
	}

	setter.Set(11)
	if renders != 1 {
		t.Fatalf("setter must request exactly one render, got %d", renders)
	}

	renderPass(c, "c:App:0", body)
	if got != 11 {
		t.Errorf("second render = %d, want 11", got)
	}
}

func TestSetterSameValueNoRender(t *testing.T) {
	c := New(nil)
	renders := 0
	c.SetScheduler(func() { renders++ })

	var setter Setter[float64]
	renderPass(c, "c:App:0", func() {
		_, setter = UseState(c, math.NaN())
	})

	// NaN -> NaN is not a change.
	setter.Set(math.NaN())
	if renders != 0 {
		t.Errorf("NaN->NaN must not request a render, got %d", renders)
	}

	// +0 -> -0 is a change.
	var zeroSetter Setter[float64]
	renderPass(c, "c:Zero:0", func() {
		_, zeroSetter = UseState(c, 0.0)
	})
	zeroSetter.Set(math.Copysign(0, -1))
	if renders != 1 {
		t.Errorf("+0 -> -0 must request a render, got %d", renders)
	}
}

func TestUpdateObservesLiveValue(t *testing.T) {
	c := New(nil)
	c.SetScheduler(func() {})

	var setter Setter[int]
	var got int
	body := func() {
		got, setter = UseState(c, 0)
	}
	renderPass(c, "c:Counter:0", body)

	// Two synchronous functional updates before the next pass: the second
	// must observe the first's write, not the render-time value.
	setter.Update(func(n int) int { return n + 1 })
	setter.Update(func(n int) int { return n + 1 })

	renderPass(c, "c:Counter:0", body)
	if got != 2 {
		t.Errorf("after two Update(+1) calls got %d, want 2", got)
	}
}

func TestUseStateLazy(t *testing.T) {
	c := New(nil)
	inits := 0

	body := func() {
		UseStateLazy(c, func() []int { inits++; return []int{1} })
	}
	renderPass(c, "c:App:0", body)
	renderPass(c, "c:App:0", body)

	if inits != 1 {
		t.Errorf("lazy initializer ran %d times, want 1", inits)
	}
}

func TestStaleSetterAbsorbed(t *testing.T) {
	c := New(nil)
	renders := 0
	c.SetScheduler(func() { renders++ })

	var setter Setter[int]
	renderPass(c, "c:Child:0", func() {
		_, setter = UseState(c, 1)
	})

	// A pass that never visits the child sweeps its state.
	c.BeginPass()
	if swept := c.Sweep(); swept != 1 {
		t.Fatalf("swept %d paths, want 1", swept)
	}

	setter.Set(99)
	if renders != 0 {
		t.Errorf("stale setter must be absorbed silently, requested %d renders", renders)
	}
}

func TestUseEffectDepsSemantics(t *testing.T) {
	c := New(nil)

	t.Run("nil deps run every render", func(t *testing.T) {
		runs := 0
		body := func() {
			UseEffect(c, func() Cleanup { runs++; return nil }, nil)
		}
		renderPass(c, "c:Every:0", body)
		renderPass(c, "c:Every:0", body)
		renderPass(c, "c:Every:0", body)
		if runs != 3 {
			t.Errorf("nil-deps effect ran %d times, want 3", runs)
		}
	})

	t.Run("empty deps run once", func(t *testing.T) {
		runs := 0
		body := func() {
			UseEffect(c, func() Cleanup { runs++; return nil }, []any{})
		}
		renderPass(c, "c:Once:0", body)
		renderPass(c, "c:Once:0", body)
		renderPass(c, "c:Once:0", body)
		if runs != 1 {
			t.Errorf("empty-deps effect ran %d times, want 1", runs)
		}
	})

	t.Run("changed deps rerun with cleanup first", func(t *testing.T) {
		var log []string
		body := func(dep int) func() {
			return func() {
				UseEffect(c, func() Cleanup {
					log = append(log, "run")
					return func() { log = append(log, "cleanup") }
				}, []any{dep})
			}
		}
		renderPass(c, "c:Dep:0", body(1))
		renderPass(c, "c:Dep:0", body(1))
		renderPass(c, "c:Dep:0", body(2))

		want := []string{"run", "cleanup", "run"}
		if len(log) != len(want) {
			t.Fatalf("log = %v, want %v", log, want)
		}
		for i := range want {
			if log[i] != want[i] {
				t.Fatalf("log = %v, want %v", log, want)
			}
		}
	})
}

func TestEffectCleanupAtUnmount(t *testing.T) {
	c := New(nil)

	cleaned := 0
	renderPass(c, "c:Gone:0", func() {
		UseEffect(c, func() Cleanup {
			return func() { cleaned++ }
		}, []any{})
	})
	if cleaned != 0 {
		t.Fatal("cleanup must not run while mounted")
	}

	c.BeginPass()
	c.Sweep()
	if cleaned != 1 {
		t.Errorf("cleanup ran %d times at unmount, want 1", cleaned)
	}
}

func TestEffectsFlushInFIFOOrder(t *testing.T) {
	c := New(nil)

	var order []int
	c.BeginPass()
	c.Begin("c:A:0")
	UseEffect(c, func() Cleanup { order = append(order, 1); return nil }, nil)
	UseEffect(c, func() Cleanup { order = append(order, 2); return nil }, nil)
	c.End()
	c.Begin("c:B:0")
	UseEffect(c, func() Cleanup { order = append(order, 3); return nil }, nil)
	c.End()
	c.Sweep()

	if !c.HasPendingEffects() {
		t.Fatal("effects must be queued, not run, during the pass")
	}
	c.FlushEffects()

	if len(order) != 3 || order[0] != 1 || order[1] != 2 || order[2] != 3 {
		t.Errorf("effects ran in order %v, want [1 2 3]", order)
	}
}

func TestSweepPurgesQueuedEffects(t *testing.T) {
	c := New(nil)

	runs := 0
	c.BeginPass()
	c.Begin("c:Doomed:0")
	UseEffect(c, func() Cleanup { runs++; return nil }, nil)
	c.End()
	c.Sweep()

	// The next pass never visits the path: its queued effect must die
	// with the slots.
	c.BeginPass()
	c.Sweep()
	c.FlushEffects()

	if runs != 0 {
		t.Errorf("swept path's queued effect ran %d times, want 0", runs)
	}
}

func TestUseMemo(t *testing.T) {
	c := New(nil)

	computes := 0
	body := func(dep int) func() {
		return func() {
			UseMemo(c, func() int { computes++; return dep * 2 }, []any{dep})
		}
	}
	renderPass(c, "c:M:0", body(1))
	renderPass(c, "c:M:0", body(1))
	if computes != 1 {
		t.Errorf("unchanged deps recomputed, %d computes want 1", computes)
	}

	renderPass(c, "c:M:0", body(2))
	if computes != 2 {
		t.Errorf("changed deps must recompute, %d computes want 2", computes)
	}

	// nil deps recompute every render.
	nilComputes := 0
	nilBody := func() {
		UseMemo(c, func() int { nilComputes++; return 0 }, nil)
	}
	renderPass(c, "c:N:0", nilBody)
	renderPass(c, "c:N:0", nilBody)
	if nilComputes != 2 {
		t.Errorf("nil-deps memo computed %d times, want 2", nilComputes)
	}
}

func TestUseRefStableIdentity(t *testing.T) {
	c := New(nil)

	var first, second *Ref[int]
	renderPass(c, "c:R:0", func() { first = UseRef(c, 5) })
	first.Current = 42
	renderPass(c, "c:R:0", func() { second = UseRef(c, 5) })

	if first != second {
		t.Fatal("UseRef must return the same box across renders")
	}
	if second.Current != 42 {
		t.Errorf("ref mutation lost: Current = %d, want 42", second.Current)
	}
}

func TestHookOutsideRenderPanics(t *testing.T) {
	c := New(nil)

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("hook outside render must panic")
		}
		err, ok := r.(*werrors.Error)
		if !ok || err.Code != "W020" {
			t.Fatalf("panic value = %#v, want structured W020", r)
		}
	}()
	UseState(c, 0)
}

func TestSlotKindMismatchPanicsInDebug(t *testing.T) {
	c := New(nil)
	c.SetDebug(true)

	renderPass(c, "c:X:0", func() {
		UseState(c, 0)
	})

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("kind mismatch must panic in debug mode")
		}
		err, ok := r.(*werrors.Error)
		if !ok || err.Code != "W021" {
			t.Fatalf("panic value = %#v, want structured W021", r)
		}
	}()

	c.BeginPass()
	c.Begin("c:X:0")
	UseEffect(c, func() Cleanup { return nil }, nil)
}

func TestResetWipesStorage(t *testing.T) {
	c := New(nil)

	renderPass(c, "c:A:0", func() { UseState(c, 1) })
	if c.PathCount() != 1 {
		t.Fatalf("PathCount = %d, want 1", c.PathCount())
	}

	c.Reset()
	if c.PathCount() != 0 {
		t.Errorf("PathCount after Reset = %d, want 0", c.PathCount())
	}

	var got int
	renderPass(c, "c:A:0", func() { got, _ = UseState(c, 7) })
	if got != 7 {
		t.Errorf("state after Reset = %d, want fresh initial 7", got)
	}
}
