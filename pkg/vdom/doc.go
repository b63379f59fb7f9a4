// Package vdom defines the virtual node model: the VNode value type, the
// normalization rules that turn arbitrary component return values into
// canonical node sequences, element and attribute constructors, and the
// shared prop-diff algorithm applied by every concrete render surface.
package vdom
