package host

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
)

// NodeType distinguishes element nodes from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

type node struct {
	typ       NodeType
	tag       string
	ns        string
	text      string
	class     string
	attrs     map[string]string
	props     map[string]any
	style     map[string]string
	listeners map[string]Listener
	parent    Handle
	children  []Handle
}

// Document is an in-memory Host. Nodes live in an arena indexed by Handle,
// so a Handle stays valid after its node is detached.
//
// Document is not safe for concurrent use.
type Document struct {
	nodes []*node
	root  Handle
}

var _ Host = (*Document)(nil)

// NewDocument creates a Document with an empty <body> root.
func NewDocument() *Document {
	d := &Document{nodes: []*node{nil}}
	d.root = d.CreateElement("body", "")
	return d
}

// Root returns the document's <body> element.
func (d *Document) Root() Handle { return d.root }

// Len returns the number of nodes ever created, attached or not.
func (d *Document) Len() int { return len(d.nodes) - 1 }

func (d *Document) get(h Handle) *node {
	if h == None || int(h) >= len(d.nodes) {
		return nil
	}
	return d.nodes[h]
}

func (d *Document) alloc(n *node) Handle {
	d.nodes = append(d.nodes, n)
	return Handle(len(d.nodes) - 1)
}

// CreateElement implements Host.
func (d *Document) CreateElement(tag, ns string) Handle {
	return d.alloc(&node{
		typ:   ElementNode,
		tag:   tag,
		ns:    ns,
		attrs: make(map[string]string),
		props: make(map[string]any),
		style: make(map[string]string),
	})
}

// CreateText implements Host.
func (d *Document) CreateText(content string) Handle {
	return d.alloc(&node{typ: TextNode, text: content})
}

// SetText implements Host.
func (d *Document) SetText(h Handle, content string) {
	if n := d.get(h); n != nil && n.typ == TextNode {
		n.text = content
	}
}

// AppendChild implements Host.
func (d *Document) AppendChild(parent, child Handle) error {
	p, c := d.get(parent), d.get(child)
	if p == nil || c == nil {
		return errors.New("E007").
			WithDetail(fmt.Sprintf("append %d to %d: unknown handle", child, parent))
	}
	if p.typ != ElementNode {
		return errors.New("E007").
			WithDetail(fmt.Sprintf("append %d to %d: parent is a text node", child, parent))
	}
	for a := parent; a != None; a = d.nodes[a].parent {
		if a == child {
			return errors.New("E007").
				WithDetail(fmt.Sprintf("append %d to %d: would create a cycle", child, parent))
		}
	}
	if c.parent != None {
		d.detach(c.parent, child)
	}
	p.children = append(p.children, child)
	c.parent = parent
	return nil
}

// RemoveChild implements Host.
func (d *Document) RemoveChild(parent, child Handle) error {
	c := d.get(child)
	if c == nil || d.get(parent) == nil {
		return errors.New("E007").
			WithDetail(fmt.Sprintf("remove %d from %d: unknown handle", child, parent))
	}
	if c.parent != parent {
		return errors.New("E007").
			WithDetail(fmt.Sprintf("remove %d from %d: not a child", child, parent))
	}
	d.detach(parent, child)
	return nil
}

func (d *Document) detach(parent, child Handle) {
	p := d.nodes[parent]
	if i := slices.Index(p.children, child); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	d.nodes[child].parent = None
}

// Parent implements Host.
func (d *Document) Parent(child Handle) Handle {
	if c := d.get(child); c != nil {
		return c.parent
	}
	return None
}

// SetStyle implements Host.
func (d *Document) SetStyle(h Handle, name, value string) {
	n := d.element(h)
	if n == nil {
		return
	}
	if value == "" {
		delete(n.style, name)
		return
	}
	n.style[name] = value
}

// SetClass implements Host.
func (d *Document) SetClass(h Handle, class string) {
	if n := d.element(h); n != nil {
		n.class = class
	}
}

// SetAttribute implements Host.
func (d *Document) SetAttribute(h Handle, name, value string) {
	if n := d.element(h); n != nil {
		n.attrs[name] = value
	}
}

// RemoveAttribute implements Host.
func (d *Document) RemoveAttribute(h Handle, name string) {
	if n := d.element(h); n != nil {
		delete(n.attrs, name)
	}
}

// SetProperty implements Host.
func (d *Document) SetProperty(h Handle, name string, value any) {
	if n := d.element(h); n != nil {
		n.props[name] = value
	}
}

// DeleteProperty implements Host.
func (d *Document) DeleteProperty(h Handle, name string) {
	if n := d.element(h); n != nil {
		delete(n.props, name)
	}
}

// AddListener implements Host.
func (d *Document) AddListener(h Handle, event string, l Listener) {
	n := d.element(h)
	if n == nil || l == nil {
		return
	}
	if n.listeners == nil {
		n.listeners = make(map[string]Listener)
	}
	n.listeners[event] = l
}

// RemoveListener implements Host.
func (d *Document) RemoveListener(h Handle, event string) {
	if n := d.element(h); n != nil {
		delete(n.listeners, event)
	}
}

func (d *Document) element(h Handle) *node {
	if n := d.get(h); n != nil && n.typ == ElementNode {
		return n
	}
	return nil
}

// Query implements Host. Supported selectors are "#id", ".class" and a bare
// tag name. The first match in document order under Root wins.
func (d *Document) Query(selector string) (Handle, bool) {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return None, false
	}
	var match func(n *node) bool
	switch selector[0] {
	case '#':
		id := selector[1:]
		match = func(n *node) bool { return n.attrs["id"] == id }
	case '.':
		class := selector[1:]
		match = func(n *node) bool { return slices.Contains(strings.Fields(n.class), class) }
	default:
		match = func(n *node) bool { return strings.EqualFold(n.tag, selector) }
	}
	return d.find(d.root, match)
}

func (d *Document) find(h Handle, match func(*node) bool) (Handle, bool) {
	n := d.nodes[h]
	if n.typ != ElementNode {
		return None, false
	}
	if match(n) {
		return h, true
	}
	for _, c := range n.children {
		if found, ok := d.find(c, match); ok {
			return found, true
		}
	}
	return None, false
}

// Dispatch invokes the listener registered for ev.Type on target.
// It reports whether a listener ran.
func (d *Document) Dispatch(target Handle, ev Event) bool {
	n := d.element(target)
	if n == nil {
		return false
	}
	l, ok := n.listeners[ev.Type]
	if !ok {
		return false
	}
	ev.Target = target
	l(ev)
	return true
}

// Type returns the node type of h, or 0 for an unknown handle.
func (d *Document) Type(h Handle) NodeType {
	if n := d.get(h); n != nil {
		return n.typ
	}
	return 0
}

// Tag returns the tag name of an element.
func (d *Document) Tag(h Handle) string {
	if n := d.element(h); n != nil {
		return n.tag
	}
	return ""
}

// Namespace returns the namespace an element was created with.
func (d *Document) Namespace(h Handle) string {
	if n := d.element(h); n != nil {
		return n.ns
	}
	return ""
}

// Children returns a copy of the child handles of h.
func (d *Document) Children(h Handle) []Handle {
	if n := d.get(h); n != nil {
		return slices.Clone(n.children)
	}
	return nil
}

// Text returns the content of a text node, or the concatenated text of an
// element's subtree.
func (d *Document) Text(h Handle) string {
	n := d.get(h)
	if n == nil {
		return ""
	}
	if n.typ == TextNode {
		return n.text
	}
	var b strings.Builder
	for _, c := range n.children {
		b.WriteString(d.Text(c))
	}
	return b.String()
}

// Attribute returns an attribute value and whether it is set.
func (d *Document) Attribute(h Handle, name string) (string, bool) {
	if n := d.element(h); n != nil {
		v, ok := n.attrs[name]
		return v, ok
	}
	return "", false
}

// Style returns an inline style property, or "" when unset.
func (d *Document) Style(h Handle, name string) string {
	if n := d.element(h); n != nil {
		return n.style[name]
	}
	return ""
}

// StyleLen returns the number of inline style properties set on h.
func (d *Document) StyleLen(h Handle) int {
	if n := d.element(h); n != nil {
		return len(n.style)
	}
	return 0
}

// Class returns the class list of an element.
func (d *Document) Class(h Handle) string {
	if n := d.element(h); n != nil {
		return n.class
	}
	return ""
}

// Property returns a live property and whether it is set.
func (d *Document) Property(h Handle, name string) (any, bool) {
	if n := d.element(h); n != nil {
		v, ok := n.props[name]
		return v, ok
	}
	return nil, false
}

// HasListener reports whether a listener is registered for event on h.
func (d *Document) HasListener(h Handle, event string) bool {
	if n := d.element(h); n != nil {
		_, ok := n.listeners[event]
		return ok
	}
	return false
}
