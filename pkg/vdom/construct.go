package vdom

import (
	"fmt"
	"strconv"

	"github.com/vango-dev/reconcile/pkg/host"
)

type marker struct{ name string }

func (m *marker) String() string { return m.name }

// Marker values passed to H in place of a tag.
var (
	FragmentTag = &marker{"Fragment"}
	PortalTag   = &marker{"Portal"}
)

// H builds a VNode, inferring its kind from tag:
//
//   - string: an HTML element ("svg" starts an SVG element)
//   - FragmentTag: a fragment
//   - PortalTag: a portal whose target is data["target"] (a selector string,
//     a host.Handle or a Target)
//   - ComponentFactory or func() Component: a stateful component
//   - FunctionalComponent or func(Data) *VNode: a functional component
//
// Children may be *VNode, []*VNode, []any, or scalars which become text
// nodes. Component nodes take no children. An unsupported tag yields a node
// with no kind, which the reconciler rejects.
func H(tag any, data Data, children ...any) *VNode {
	switch t := tag.(type) {
	case string:
		return Element(t, data, children...)
	case *marker:
		switch t {
		case FragmentTag:
			return Fragment(children...)
		case PortalTag:
			return Portal(targetOf(data["target"]), children...)
		}
	case ComponentFactory:
		return Stateful(t, data)
	case func() Component:
		return Stateful(t, data)
	case FunctionalComponent:
		return Functional(t, data)
	case func(Data) *VNode:
		return Functional(t, data)
	}
	return &VNode{Data: data, Shape: ShapeNone}
}

func targetOf(v any) Target {
	switch t := v.(type) {
	case Target:
		return t
	case string:
		return Selector(t)
	case host.Handle:
		return NodeTarget(t)
	}
	return Target{}
}

// Element creates an element node. The "key" entry of data becomes the
// node's Key and "class" is normalized to a space separated string.
func Element(tag string, data Data, children ...any) *VNode {
	kind := KindHTMLElement
	if tag == "svg" {
		kind = KindSVGElement
	}
	v := &VNode{Kind: kind, Tag: tag}
	v.Data, v.Key = normalizeData(data)
	v.Children, v.Shape = normalizeChildren(children)
	return v
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content, Shape: ShapeNone}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Fragment groups children without a wrapper element.
func Fragment(children ...any) *VNode {
	v := &VNode{Kind: KindFragment}
	v.Children, v.Shape = normalizeChildren(children)
	return v
}

// Portal mounts children into target instead of the portal's own container.
func Portal(target Target, children ...any) *VNode {
	v := &VNode{Kind: KindPortal, Target: target}
	v.Children, v.Shape = normalizeChildren(children)
	return v
}

// Stateful creates a stateful component node with props.
func Stateful(factory ComponentFactory, props Data) *VNode {
	v := &VNode{Kind: KindStateful, Factory: factory, Shape: ShapeNone}
	v.Data, v.Key = normalizeData(props)
	return v
}

// KeepAlive creates a stateful component node flagged for keep-alive.
func KeepAlive(factory ComponentFactory, props Data) *VNode {
	v := Stateful(factory, props)
	v.Kind = KindStatefulKeepAlive
	return v
}

// Functional creates a functional component node with props.
func Functional(fn FunctionalComponent, props Data) *VNode {
	v := &VNode{Kind: KindFunctional, Func: fn, Shape: ShapeNone}
	v.Data, v.Key = normalizeData(props)
	return v
}

// WithKey sets v's reconciliation key and returns v.
func (v *VNode) WithKey(key string) *VNode {
	v.Key = key
	return v
}

// normalizeData copies data, extracts "key" and normalizes "class".
func normalizeData(data Data) (Data, string) {
	if data == nil {
		return nil, ""
	}
	out := make(Data, len(data))
	var key string
	for k, val := range data {
		switch k {
		case "key":
			key = fmt.Sprint(val)
		case "class":
			out[k] = NormalizeClass(val)
		default:
			out[k] = val
		}
	}
	return out, key
}

// normalizeChildren flattens children and classifies them. Two or more
// children form a keyed list; children without a key get "|" + index.
func normalizeChildren(children []any) ([]*VNode, Shape) {
	var out []*VNode
	for _, c := range children {
		out = appendChild(out, c)
	}
	switch len(out) {
	case 0:
		return nil, ShapeNone
	case 1:
		return out, ShapeSingle
	}
	for i, c := range out {
		if c.Key == "" {
			c.Key = "|" + strconv.Itoa(i)
		}
	}
	return out, ShapeKeyed
}

func appendChild(out []*VNode, c any) []*VNode {
	switch v := c.(type) {
	case nil:
		return out
	case *VNode:
		if v == nil {
			return out
		}
		return append(out, v)
	case []*VNode:
		for _, child := range v {
			out = appendChild(out, child)
		}
		return out
	case []any:
		for _, child := range v {
			out = appendChild(out, child)
		}
		return out
	case string:
		return append(out, Text(v))
	case fmt.Stringer:
		return append(out, Text(v.String()))
	default:
		return append(out, Text(fmt.Sprint(v)))
	}
}
