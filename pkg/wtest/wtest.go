// Package wtest provides helpers for testing weft components: a harness
// bundling an in-memory surface with a synchronously flushed driver, and
// assertions over the rendered tree.
package wtest

import (
	"strings"
	"testing"

	"github.com/weftui/weft/pkg/surface/memdom"
	"github.com/weftui/weft/pkg/vdom"
	"github.com/weftui/weft/pkg/weft"
)

// Harness bundles a driver with an in-memory surface for synchronous
// component tests.
type Harness struct {
	Surface   *memdom.Surface
	Container *memdom.Node
	Driver    *weft.Driver
}

// Mount renders node into a fresh in-memory surface and fails the test
// on a mount error.
//
// Example:
//
//	h := wtest.Mount(t, vdom.Comp(Counter))
//	h.Click(t, "button")
//	wtest.ExpectContains(t, h, "count: 1")
func Mount(t *testing.T, node *vdom.VNode, opts ...weft.Option) *Harness {
	t.Helper()

	s := memdom.New()
	container := s.NewContainer()
	d, err := weft.Mount(node, s, container, opts...)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	return &Harness{Surface: s, Container: container, Driver: d}
}

// Flush drains pending render passes, failing the test on a storm-budget
// error.
func (h *Harness) Flush(t *testing.T) {
	t.Helper()
	if err := h.Driver.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

// HTML serializes the rendered tree.
func (h *Harness) HTML() string {
	return memdom.InnerHTML(h.Container)
}

// Find returns the first rendered element with the given tag, or nil.
func (h *Harness) Find(tag string) *memdom.Node {
	return memdom.FindByTag(h.Container, tag)
}

// Click dispatches a click to the first element with the given tag and
// flushes the resulting render work.
func (h *Harness) Click(t *testing.T, tag string) {
	t.Helper()
	h.Dispatch(t, tag, vdom.Event{Type: "click"})
}

// Input dispatches an input event carrying value to the first element
// with the given tag and flushes.
func (h *Harness) Input(t *testing.T, tag, value string) {
	t.Helper()
	h.Dispatch(t, tag, vdom.Event{Type: "input", Value: value})
}

// Dispatch delivers an arbitrary event to the first element with the
// given tag and flushes.
func (h *Harness) Dispatch(t *testing.T, tag string, e vdom.Event) {
	t.Helper()
	n := h.Find(tag)
	if n == nil {
		t.Fatalf("no <%s> element rendered, got:\n%s", tag, truncate(h.HTML(), 500))
	}
	if !memdom.Dispatch(n, e) {
		t.Fatalf("no %s handler bound on <%s>", e.Type, tag)
	}
	h.Flush(t)
}

// ExpectContains asserts that the rendered output contains the substring.
func ExpectContains(t *testing.T, h *Harness, expected string) {
	t.Helper()
	html := h.HTML()
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that the rendered output does not contain the
// substring.
func ExpectNotContains(t *testing.T, h *Harness, unexpected string) {
	t.Helper()
	html := h.HTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectHTML asserts the exact serialized output.
func ExpectHTML(t *testing.T, h *Harness, expected string) {
	t.Helper()
	if html := h.HTML(); html != expected {
		t.Errorf("rendered output mismatch\n got: %s\nwant: %s", html, expected)
	}
}

// ExpectAttr asserts an attribute value on the first element with the tag.
func ExpectAttr(t *testing.T, h *Harness, tag, attr, value string) {
	t.Helper()
	n := h.Find(tag)
	if n == nil {
		t.Fatalf("no <%s> element rendered, got:\n%s", tag, truncate(h.HTML(), 500))
	}
	if got, ok := n.Attrs[attr]; !ok || got != value {
		t.Errorf("<%s> attribute %s = %q (present=%v), want %q", tag, attr, got, ok, value)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
