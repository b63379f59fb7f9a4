package weft

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	werrors "github.com/weftui/weft/internal/errors"
	"github.com/weftui/weft/pkg/hooks"
	"github.com/weftui/weft/pkg/reconcile"
	"github.com/weftui/weft/pkg/surface"
	"github.com/weftui/weft/pkg/vdom"
)

// Driver orchestrates render passes: it owns the surface, the hook
// session and the persistent root instance, coalesces update requests
// into single passes, and flushes queued effects after each commit.
//
// A pass is synchronous and non-interruptible; no two passes are ever in
// flight. Requests arriving while a pass runs defer to the next pass.
// Passes execute either on the goroutine running Run, or on the caller's
// goroutine inside Flush, never both at once.
type Driver struct {
	s      surface.Surface
	ctx    *hooks.Ctx
	logger *slog.Logger

	metrics *Metrics
	tracer  trace.Tracer
	budget  int

	container surface.Handle
	rootNode  *vdom.VNode
	rootPath  string
	root      *reconcile.Instance

	// dirty records that at least one update request arrived since the
	// last pass started; wake (capacity 1) nudges the Run loop.
	dirty atomic.Bool
	wake  chan struct{}

	debug bool
}

// New creates a driver over the given surface.
func New(s surface.Surface, opts ...Option) *Driver {
	d := &Driver{
		s:      s,
		logger: slog.Default(),
		budget: defaultStormBudget,
		wake:   make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.ctx == nil {
		d.ctx = hooks.New(d.logger)
	}
	d.ctx.SetDebug(d.debug)
	d.ctx.SetScheduler(d.requestRender)
	return d
}

// Session returns the driver's hook session. Useful for embedding and
// tests; component bodies receive the same session as their first
// argument.
func (d *Driver) Session() *hooks.Ctx {
	return d.ctx
}

// Mount renders node into container: any previously mounted tree under
// this driver is torn down, hook storage is reset entirely (a fresh
// mount starts with no history), the first pass runs synchronously and
// its effects are flushed.
func (d *Driver) Mount(node *vdom.VNode, container surface.Handle) error {
	if node == nil {
		return werrors.New("W001")
	}
	if container == nil {
		return werrors.New("W002")
	}

	if d.root != nil {
		reconcile.Reconcile(d.ctx, d.s, d.container, d.root, nil, d.rootPath)
		d.root = nil

		// Outstanding effect cleanups must run before the storage is
		// wiped; nothing is visited, so the sweep reclaims every path.
		d.ctx.BeginPass()
		d.ctx.Sweep()
	}
	d.ctx.Reset()

	d.container = container
	d.rootNode = node
	d.rootPath = reconcile.ChildPath("", node.Key, 0, node, []*vdom.VNode{node})

	d.renderPass()
	return nil
}

// Unmount detaches the mounted tree and runs every outstanding effect
// cleanup.
func (d *Driver) Unmount() {
	if d.root == nil {
		return
	}
	reconcile.Reconcile(d.ctx, d.s, d.container, d.root, nil, d.rootPath)
	d.root = nil
	d.rootNode = nil

	// Nothing is visited, so the sweep reclaims every live path.
	d.ctx.BeginPass()
	d.ctx.Sweep()
}

// requestRender coalesces any number of synchronous update requests into
// one scheduled pass. Installed as the hook session's scheduler.
func (d *Driver) requestRender() {
	d.dirty.Store(true)
	select {
	case d.wake <- struct{}{}:
	default:
		// Already scheduled.
	}
}

// Run services render passes until ctx is done. The loop alone executes
// passes. The hook session is unsynchronized, so setters must not fire
// concurrently with a pass: invoke them from component event handlers
// and effects, or from a single embedding goroutine the way the wire
// session does.
func (d *Driver) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-d.wake:
			for d.dirty.Swap(false) {
				d.renderPass()
			}
		}
	}
}

// Flush synchronously drains pending update requests on the caller's
// goroutine, bounded by the storm budget. Intended for tests and
// embedders that do not run the driver loop.
func (d *Driver) Flush() error {
	for i := 0; d.dirty.Swap(false); i++ {
		if i >= d.budget {
			return werrors.New("W022").WithDetail("budget %d", d.budget)
		}
		d.renderPass()
	}
	return nil
}

// renderPass runs one full top-down pass from the root, sweeps hook
// state for paths that disappeared, and flushes the effects the pass
// enqueued. Effects run strictly after the pass's surface mutations have
// been applied.
func (d *Driver) renderPass() {
	if d.rootNode == nil {
		return
	}

	start := time.Now()

	var span trace.Span
	if d.tracer != nil {
		_, span = d.tracer.Start(context.Background(), "weft.render_pass")
	}

	var before uint64
	ins, instrumented := d.s.(surface.Instrumented)
	if instrumented {
		before = ins.MutationCount()
	}

	d.ctx.BeginPass()
	d.root = reconcile.Reconcile(d.ctx, d.s, d.container, d.root, d.rootNode, d.rootPath)
	swept := d.ctx.Sweep()
	effects := d.ctx.FlushEffects()

	elapsed := time.Since(start)

	var mutations uint64
	if instrumented {
		mutations = ins.MutationCount() - before
	}

	if d.metrics != nil {
		d.metrics.observePass(elapsed, mutations, swept, effects, d.ctx.PathCount())
	}
	if span != nil {
		span.SetAttributes(
			attribute.Int64("weft.mutations", int64(mutations)),
			attribute.Int("weft.swept_paths", swept),
			attribute.Int("weft.effects_run", effects),
		)
		span.End()
	}

	d.logger.Debug("render pass committed",
		"duration", elapsed,
		"mutations", mutations,
		"swept", swept,
		"effects", effects)
}

// Mount is the root entry point: it creates a driver over s, mounts node
// into container and returns the driver for subsequent Run or Flush
// calls.
func Mount(node *vdom.VNode, s surface.Surface, container surface.Handle, opts ...Option) (*Driver, error) {
	d := New(s, opts...)
	if err := d.Mount(node, container); err != nil {
		return nil, err
	}
	return d, nil
}
