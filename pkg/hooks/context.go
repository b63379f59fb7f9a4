package hooks

import (
	"log/slog"

	werrors "github.com/weftui/weft/internal/errors"
)

// Ctx is the render session: the per-mount store of hook slots, cursors,
// the stack of currently-rendering paths, the visited set for post-pass
// garbage collection, and the pending-effects queue.
//
// A Ctx is owned by the render driver and must only be accessed from the
// goroutine driving render passes. Rendering is cooperative and
// single-threaded: no two passes are ever in flight at once.
type Ctx struct {
	// slots maps identity path -> ordered hook slot array.
	slots map[string][]slot

	// cursors maps identity path -> next slot index during a render.
	cursors map[string]int

	// stack holds the paths of the components currently rendering,
	// innermost last. Hook primitives resolve against the top entry.
	stack []string

	// visited marks the paths rendered during the in-progress pass.
	visited map[string]struct{}

	// queue holds pending effects in enqueue order.
	queue []effectRef

	// requestRender asks the driver for a coalesced render pass.
	requestRender func()

	logger *slog.Logger

	// debug enables the slot-kind protocol check.
	debug bool
}

// effectRef addresses one queued effect.
type effectRef struct {
	path string
	idx  int
}

// slot is one hook memory cell.
type slot interface {
	kind() string
}

// New creates an empty render session.
func New(logger *slog.Logger) *Ctx {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ctx{
		slots:   make(map[string][]slot),
		cursors: make(map[string]int),
		visited: make(map[string]struct{}),
		logger:  logger,
	}
}

// SetScheduler installs the driver's render-request hook. Setters and
// effect enqueues call it; multiple calls within one synchronous turn
// must coalesce into a single pass (the driver's responsibility).
func (c *Ctx) SetScheduler(requestRender func()) {
	c.requestRender = requestRender
}

// SetDebug toggles the slot-kind protocol check. When enabled, calling a
// hook primitive at a cursor whose slot holds a different hook kind
// panics with a structured error instead of silently corrupting state.
func (c *Ctx) SetDebug(debug bool) {
	c.debug = debug
}

// Reset wipes all hook storage. A fresh mount starts with no history.
func (c *Ctx) Reset() {
	c.slots = make(map[string][]slot)
	c.cursors = make(map[string]int)
	c.stack = c.stack[:0]
	c.visited = make(map[string]struct{})
	c.queue = nil
}

// BeginPass starts a new render pass: the visited set is cleared so the
// pass can record exactly the paths it touches.
func (c *Ctx) BeginPass() {
	c.visited = make(map[string]struct{})
}

// Begin enters a component invocation at the given path: the path is
// pushed on the render stack, marked visited, its cursor reset to zero
// and its slot array ensured to exist.
func (c *Ctx) Begin(path string) {
	c.stack = append(c.stack, path)
	c.visited[path] = struct{}{}
	c.cursors[path] = 0
	if _, ok := c.slots[path]; !ok {
		c.slots[path] = nil
	}
}

// End leaves the innermost component invocation.
func (c *Ctx) End() {
	c.stack = c.stack[:len(c.stack)-1]
}

// current returns the path of the component being rendered. Hook
// primitives are unreachable outside an active invocation.
func (c *Ctx) current() string {
	if len(c.stack) == 0 {
		panic(werrors.New("W020"))
	}
	return c.stack[len(c.stack)-1]
}

// nextSlot advances the cursor for the current component and returns the
// path, the slot index, and the existing slot at that index (nil on first
// render of this ordinal).
func (c *Ctx) nextSlot(kindName string) (string, int, slot) {
	path := c.current()
	idx := c.cursors[path]
	c.cursors[path] = idx + 1

	arr := c.slots[path]
	if idx < len(arr) {
		existing := arr[idx]
		if c.debug && existing.kind() != kindName {
			panic(werrors.New("W021").WithDetail(
				"path %s slot %d holds %s, %s was called", path, idx, existing.kind(), kindName))
		}
		return path, idx, existing
	}
	return path, idx, nil
}

// setSlot stores a slot at the given index, growing the array by exactly
// one when the index is fresh.
func (c *Ctx) setSlot(path string, idx int, s slot) {
	arr := c.slots[path]
	if idx < len(arr) {
		arr[idx] = s
		return
	}
	c.slots[path] = append(arr, s)
}

// slotAt resolves a live slot, or nil when the path has been swept or the
// index never existed. Stale setters and queued effects use this to
// absorb writes silently.
func (c *Ctx) slotAt(path string, idx int) slot {
	arr, ok := c.slots[path]
	if !ok || idx >= len(arr) {
		return nil
	}
	return arr[idx]
}

// invalidate requests a coalesced render pass from the driver.
func (c *Ctx) invalidate() {
	if c.requestRender != nil {
		c.requestRender()
	}
}

// Sweep garbage-collects every path not visited during the pass that just
// completed: effect cleanups run unconditionally, the path's slot array
// and cursor are removed, and its pending effect-queue entries dropped.
// Returns the number of paths torn down.
func (c *Ctx) Sweep() int {
	var dead []string
	for path := range c.slots {
		if _, ok := c.visited[path]; !ok {
			dead = append(dead, path)
		}
	}
	if len(dead) == 0 {
		return 0
	}

	for _, path := range dead {
		for _, s := range c.slots[path] {
			if es, ok := s.(*effectSlot); ok && es.cleanup != nil {
				cleanup := es.cleanup
				es.cleanup = nil
				cleanup()
			}
		}
		delete(c.slots, path)
		delete(c.cursors, path)
	}

	if len(c.queue) > 0 {
		kept := c.queue[:0]
		for _, ref := range c.queue {
			if _, alive := c.slots[ref.path]; alive {
				kept = append(kept, ref)
			}
		}
		c.queue = kept
	}

	c.logger.Debug("swept unmounted hook paths", "count", len(dead))
	return len(dead)
}

// FlushEffects runs the queued effects in FIFO enqueue order, strictly
// after the pass that enqueued them has committed. Entries whose path or
// slot no longer resolves are skipped silently. Returns the number of
// effects run.
func (c *Ctx) FlushEffects() int {
	if len(c.queue) == 0 {
		return 0
	}
	pending := c.queue
	c.queue = nil

	ran := 0
	for _, ref := range pending {
		es, ok := c.slotAt(ref.path, ref.idx).(*effectSlot)
		if !ok {
			continue
		}
		if es.cleanup != nil {
			cleanup := es.cleanup
			es.cleanup = nil
			cleanup()
		}
		if next := es.fn(); next != nil {
			es.cleanup = next
		}
		ran++
	}
	return ran
}

// HasPendingEffects reports whether any queued effect awaits a flush.
func (c *Ctx) HasPendingEffects() bool {
	return len(c.queue) > 0
}

// PathCount returns the number of live hook identities. Exposed for
// metrics.
func (c *Ctx) PathCount() int {
	return len(c.slots)
}
