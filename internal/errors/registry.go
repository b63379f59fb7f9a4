package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// Usage errors (W001-W019)

	"W001": {
		Category: CategoryUsage,
		Message:  "Mount called with nil root node",
		Detail:   "Mount requires a virtual node to render. Build one with vdom.El or the element constructors.",
	},
	"W002": {
		Category: CategoryUsage,
		Message:  "Mount called with nil container",
		Detail:   "Mount requires a surface handle to render into. Obtain one from your Surface implementation.",
	},

	// Runtime errors (W020-W039)

	"W020": {
		Category: CategoryRuntime,
		Message:  "Hook called outside component render",
		Detail:   "UseState, UseEffect, UseMemo and UseRef may only be called while a component body is executing.",
	},
	"W021": {
		Category: CategoryRuntime,
		Message:  "Hook order changed between renders",
		Detail:   "The slot at this cursor holds a different hook kind than the one being called. Hooks must run unconditionally and in the same order on every render.",
	},
	"W022": {
		Category: CategoryRuntime,
		Message:  "Render storm budget exceeded",
		Detail:   "Consecutive synchronous render passes exceeded the configured budget. An effect or setter is likely re-triggering renders unconditionally.",
	},

	// Protocol errors (W040-W059)

	"W040": {
		Category: CategoryProtocol,
		Message:  "Malformed event frame",
		Detail:   "The client sent an event frame that could not be decoded.",
	},
	"W041": {
		Category: CategoryProtocol,
		Message:  "Unknown event target",
		Detail:   "The event frame referenced a node ID with no registered handler.",
	},
}
