package vdom

import (
	"fmt"

	"github.com/vango-dev/reconcile/pkg/host"
)

// Data holds the directives applied to an element: attributes, live
// properties, the "class" string, a "style" map and "on<Event>" listeners.
type Data map[string]any

// Style maps inline style property names to values.
type Style map[string]string

// Target names the live container a portal mounts its children into.
// Exactly one of Selector and Node is set.
type Target struct {
	Selector string      // Resolved with host.Query
	Node     host.Handle // Used as is
}

// Selector returns a Target resolved by selector lookup.
func Selector(s string) Target { return Target{Selector: s} }

// NodeTarget returns a Target that refers to a live node directly.
func NodeTarget(h host.Handle) Target { return Target{Node: h} }

// IsZero reports whether t names no container.
func (t Target) IsZero() bool { return t.Selector == "" && t.Node == host.None }

// String returns the selector or a node reference.
func (t Target) String() string {
	if t.Selector != "" {
		return t.Selector
	}
	return fmt.Sprintf("node(%d)", t.Node)
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     Kind                // Node type, exactly one primitive kind
	Tag      string              // Element tag name (e.g., "div")
	Factory  ComponentFactory    // Stateful component constructor
	Func     FunctionalComponent // Functional component render function
	Target   Target              // Portal mount target
	Data     Data                // Element directives, or component props
	Shape    Shape               // Classification of Children
	Children []*VNode            // Structural children, consistent with Shape
	Text     string              // For KindText
	Key      string              // Reconciliation key

	// Live is the host node that represents this VNode: the element or text
	// node itself, the first node of a fragment, the anchor placeholder of a
	// portal, or the live node of a component's rendered output.
	Live host.Handle

	// TargetLive is the resolved mount target of a portal.
	TargetLive host.Handle

	// Instance is the mounted component record of a component node.
	Instance Instance
}

// Child returns the only child of a ShapeSingle node, or nil.
func (v *VNode) Child() *VNode {
	if v == nil || v.Shape != ShapeSingle || len(v.Children) != 1 {
		return nil
	}
	return v.Children[0]
}

// Output returns the rendered subtree of a mounted component node, or nil.
func (v *VNode) Output() *VNode {
	if v == nil || v.Instance == nil {
		return nil
	}
	return v.Instance.Output()
}

// Component is a stateful component. A new value is constructed by the
// node's ComponentFactory for every mount; Render is called with the
// node's current props on the initial mount and on every update.
type Component interface {
	Render(props Data) *VNode
}

// ComponentFactory constructs a stateful component.
type ComponentFactory func() Component

// FunctionalComponent renders props into a virtual tree. It holds no state
// between renders.
type FunctionalComponent func(props Data) *VNode

// Updater re-renders a mounted component and reconciles its output.
type Updater interface {
	Update() error
}

// Attacher is implemented by stateful components that want a handle to
// their own instance, typically to re-render after a state change in an
// event listener.
type Attacher interface {
	Attach(u Updater)
}

// Instance is the reconciler's record of a mounted component.
type Instance interface {
	Updater

	// Output returns the most recently rendered subtree.
	Output() *VNode

	// Props returns the props the instance last rendered with.
	Props() Data

	// Mounted reports whether the output is currently in the live tree.
	Mounted() bool
}
