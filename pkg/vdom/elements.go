package vdom

import "strings"

// Element constructors for the common HTML tags. Each accepts the same
// argument forms as El.

func Div(args ...any) *VNode    { return El("div", args...) }
func Span(args ...any) *VNode   { return El("span", args...) }
func P(args ...any) *VNode      { return El("p", args...) }
func H1(args ...any) *VNode     { return El("h1", args...) }
func H2(args ...any) *VNode     { return El("h2", args...) }
func H3(args ...any) *VNode     { return El("h3", args...) }
func Ul(args ...any) *VNode     { return El("ul", args...) }
func Ol(args ...any) *VNode     { return El("ol", args...) }
func Li(args ...any) *VNode     { return El("li", args...) }
func A(args ...any) *VNode      { return El("a", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }
func Form(args ...any) *VNode   { return El("form", args...) }
func Label(args ...any) *VNode  { return El("label", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// StyleOf sets the style prop from a key/value map. Styles merge
// key-wise on update.
func StyleOf(styles map[string]string) Attr { return attr("style", styles) }

// Data creates a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// WithKey sets the reconciliation key.
func WithKey(key any) Attr { return attr("key", key) }

// Disabled sets the disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Value sets the value attribute.
func Value(v string) Attr { return attr("value", v) }

// Placeholder sets the placeholder attribute.
func Placeholder(p string) Attr { return attr("placeholder", p) }

// Href sets the href attribute.
func Href(href string) Attr { return attr("href", href) }

// TypeAttr sets the type attribute (named to avoid the builtin).
func TypeAttr(t string) Attr { return attr("type", t) }

// Event handler attributes.

func OnClick(h Handler) Attr  { return attr("onclick", h) }
func OnInput(h Handler) Attr  { return attr("oninput", h) }
func OnChange(h Handler) Attr { return attr("onchange", h) }
func OnSubmit(h Handler) Attr { return attr("onsubmit", h) }
func OnKeyDown(h Handler) Attr { return attr("onkeydown", h) }

// On attaches a handler for an arbitrary event name.
func On(event string, h Handler) Attr { return attr("on"+event, h) }
