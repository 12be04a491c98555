package host

// Handle is a stable reference to a live node owned by a Host.
// The zero Handle never refers to a node.
type Handle uint32

// None is the zero Handle.
const None Handle = 0

// Valid reports whether h can refer to a node.
func (h Handle) Valid() bool { return h != None }

// NamespaceSVG is the namespace used for elements created inside an SVG subtree.
const NamespaceSVG = "http://www.w3.org/2000/svg"

// Event is delivered to a Listener when a host dispatches an event.
type Event struct {
	Type   string // "click", "input", ...
	Target Handle // Node the event was dispatched on
	Value  any    // Optional payload (e.g. the new input value)
}

// Listener handles a dispatched event.
type Listener func(Event)

// Host is the live document the reconciler mutates.
//
// Handles returned by a Host stay valid for the lifetime of the Host, even
// after the node is detached. A node may be attached to at most one parent;
// AppendChild on an attached node moves it.
type Host interface {
	// CreateElement creates a detached element. ns is empty for HTML.
	CreateElement(tag, ns string) Handle

	// CreateText creates a detached text node.
	CreateText(content string) Handle

	// SetText replaces the content of a text node.
	SetText(node Handle, content string)

	// AppendChild attaches child as the last child of parent.
	AppendChild(parent, child Handle) error

	// RemoveChild detaches child from parent.
	RemoveChild(parent, child Handle) error

	// Parent returns the node child is attached to, or None.
	Parent(child Handle) Handle

	// SetStyle sets an inline style property. An empty value clears it.
	SetStyle(node Handle, name, value string)

	// SetClass replaces the class list of an element.
	SetClass(node Handle, class string)

	// SetAttribute sets an attribute.
	SetAttribute(node Handle, name, value string)

	// RemoveAttribute removes an attribute.
	RemoveAttribute(node Handle, name string)

	// SetProperty sets a live property such as value or checked.
	SetProperty(node Handle, name string, value any)

	// DeleteProperty clears a live property.
	DeleteProperty(node Handle, name string)

	// AddListener registers l for event on node, replacing any previous listener.
	AddListener(node Handle, event string, l Listener)

	// RemoveListener unregisters the listener for event on node.
	RemoveListener(node Handle, event string)

	// Query resolves a selector to a single live node.
	Query(selector string) (Handle, bool)
}
