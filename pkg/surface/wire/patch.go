package wire

// PatchOp is the type of a wire patch operation.
type PatchOp string

const (
	PatchCreateElement PatchOp = "createElement" // Create a detached element
	PatchCreateText    PatchOp = "createText"    // Create a detached text node
	PatchSetText       PatchOp = "setText"       // Update text content
	PatchSetAttr       PatchOp = "setAttr"       // Set/update attribute
	PatchRemoveAttr    PatchOp = "removeAttr"    // Remove attribute
	PatchSetStyle      PatchOp = "setStyle"      // Set one style key
	PatchRemoveStyle   PatchOp = "removeStyle"   // Clear one style key
	PatchBind          PatchOp = "bind"          // Attach an event listener
	PatchUnbind        PatchOp = "unbind"        // Detach an event listener
	PatchInsert        PatchOp = "insert"        // Insert node under parent
	PatchRemove        PatchOp = "remove"        // Remove node from parent
)

// Patch is a single surface mutation in the ordered stream sent to the
// client. One frame carries all patches of one committed render pass.
type Patch struct {
	Op     PatchOp `json:"op"`
	ID     string  `json:"id,omitempty"`     // Target node
	Parent string  `json:"parent,omitempty"` // For insert/remove
	Anchor string  `json:"anchor,omitempty"` // Insert before this node; "" appends
	Tag    string  `json:"tag,omitempty"`    // For createElement
	Key    string  `json:"key,omitempty"`    // Attribute/style key or event name
	Value  string  `json:"value,omitempty"`  // New value or text content
}

// PatchFrame is one websocket message from server to client.
type PatchFrame struct {
	Type    string  `json:"type"` // always "patches"
	Seq     uint64  `json:"seq"`
	Patches []Patch `json:"patches"`
}

// EventFrame is one websocket message from client to server.
type EventFrame struct {
	Type    string         `json:"type"` // always "event"
	ID      string         `json:"id"`
	Event   string         `json:"event"`
	Value   string         `json:"value,omitempty"`
	Checked bool           `json:"checked,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}
