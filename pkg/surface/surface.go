// Package surface defines the abstract render-surface capability the
// reconciler mutates. The core never imports a concrete render target; it
// assumes only that these synchronous operations exist. Implementations
// live in subpackages (memdom for an in-memory DOM, wire for a remote
// patch stream).
package surface

import "github.com/weftui/weft/pkg/vdom"

// Handle is an opaque reference to one surface node. Each Surface
// implementation defines its own concrete handle type; the core only
// passes handles back to the surface that created them.
type Handle any

// Surface is the mutation capability consumed by the reconciler. All
// operations are synchronous and are invoked only from the render
// driver's goroutine.
type Surface interface {
	// CreateElement creates a detached element node.
	CreateElement(tag string) Handle

	// CreateText creates a detached text node.
	CreateText(text string) Handle

	// SetText overwrites a text node's content.
	SetText(h Handle, text string)

	// SetAttributes applies the full prop set to a fresh node.
	SetAttributes(h Handle, props vdom.Props)

	// DiffAttributes applies the prop changes between old and new,
	// following the semantics of vdom.DiffProps.
	DiffAttributes(h Handle, old, new vdom.Props)

	// InsertBefore attaches h under parent, immediately before anchor.
	// A nil anchor appends.
	InsertBefore(parent, h, anchor Handle)

	// Remove detaches h (and its subtree) from parent.
	Remove(parent, h Handle)
}

// Instrumented is optionally implemented by surfaces that count their
// mutations; the driver reads the counter for metrics and no-op-update
// assertions.
type Instrumented interface {
	// MutationCount returns the total number of mutations applied since
	// the surface was created.
	MutationCount() uint64
}
