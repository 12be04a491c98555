package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category    Category
	Message     string
	Explanation string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Tree shape errors (E001-E019)
	// ============================================

	"E001": {
		Category:    CategoryShape,
		Message:     "Invalid node kind",
		Explanation: "A virtual node must carry exactly one primitive kind. Build nodes with the vdom constructors instead of filling VNode fields by hand.",
	},
	"E002": {
		Category:    CategoryShape,
		Message:     "Children shape mismatch",
		Explanation: "The node's declared children shape does not agree with its children: none requires no children, single requires exactly one, multiple requires at least one.",
	},
	"E003": {
		Category:    CategoryPortal,
		Message:     "Portal target not found",
		Explanation: "The portal's target selector did not resolve to a live node, or the target handle is not a node of this host.",
	},
	"E004": {
		Category:    CategoryComponent,
		Message:     "Component updated before mount",
		Explanation: "A component instance can only re-render after its initial mount has completed.",
	},
	"E005": {
		Category:    CategoryComponent,
		Message:     "Component rendered nil",
		Explanation: "A component's render must return a virtual node. Return an empty Fragment to render nothing.",
	},
	"E006": {
		Category:    CategoryRender,
		Message:     "Reentrant render",
		Explanation: "Render was called while another render or component update of the same engine was still running, for example from an event listener fired synchronously by a host mutation.",
	},
	"E007": {
		Category:    CategoryHost,
		Message:     "Host mutation failed",
		Explanation: "The host document rejected a tree mutation. This usually means a live node reference went stale.",
	},
	"E008": {
		Category:    CategoryShape,
		Message:     "Nil node in tree",
		Explanation: "Children lists may not contain nil nodes.",
	},
	"E009": {
		Category:    CategoryRender,
		Message:     "Invalid container",
		Explanation: "Render requires a valid container handle.",
	},
	"E010": {
		Category:    CategoryShape,
		Message:     "Unsupported data value",
		Explanation: "A style entry must be a Style or string map, and an on* listener must be a host.Listener, func(host.Event) or func().",
	},

	// ============================================
	// Config errors (E020-E029)
	// ============================================

	"E020": {
		Category:    CategoryConfig,
		Message:     "Invalid configuration file",
		Explanation: "The configuration file could not be read or parsed.",
	},
	"E021": {
		Category:    CategoryConfig,
		Message:     "Configuration file not found",
		Explanation: "No vdomctl.json was found in the given directory.",
	},
	"E022": {
		Category:    CategoryConfig,
		Message:     "Invalid configuration value",
		Explanation: "A configuration value is out of range.",
	},

	// ============================================
	// Scene errors (E030-E039)
	// ============================================

	"E030": {
		Category:    CategoryScene,
		Message:     "Invalid scene file",
		Explanation: "The scene file could not be read or is not valid YAML.",
	},
	"E031": {
		Category:    CategoryScene,
		Message:     "Invalid scene node",
		Explanation: "A node description must set exactly one of tag, text, fragment or portal.",
	},

	// ============================================
	// Snapshot / protocol errors (E040-E059)
	// ============================================

	"E040": {
		Category:    CategorySnapshot,
		Message:     "Snapshot store failure",
		Explanation: "A snapshot could not be written to or read from its store.",
	},
	"E041": {
		Category:    CategorySnapshot,
		Message:     "Snapshot not found",
		Explanation: "No snapshot exists under the given name.",
	},
	"E050": {
		Category:    CategoryProtocol,
		Message:     "Malformed mutation frame",
		Explanation: "A mutation frame is truncated or contains an unknown operation.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
