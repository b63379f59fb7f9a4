// Package hooks implements per-identity component memory: ordered slot
// arrays keyed by tree path, a cursor protocol aligning slots with hook
// call order, state and effect primitives, and garbage collection of
// identities that disappear from the tree.
//
// The central invariant is the hook protocol: every hook call in a
// component body must execute unconditionally and in the same order on
// every render of the same path. The slot a hook resolves to is its call
// ordinal within one invocation; conditional hooks shift the ordinals and
// corrupt state. SetDebug(true) makes violations fail fast.
package hooks
