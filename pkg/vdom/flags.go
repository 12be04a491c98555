package vdom

import "strings"

// Kind is the node type discriminator. Exactly one primitive bit is set on
// a valid node; the group predicates (IsElement, IsComponent, ...) classify
// it.
type Kind uint16

const (
	KindHTMLElement       Kind = 1 << iota // <div>, <button>, ...
	KindSVGElement                         // <svg> and its descendants
	KindStateful                           // Stateful component
	KindStatefulKeepAlive                  // Stateful component that should be kept alive
	KindStatefulKeptAlive                  // Stateful component that has been kept alive
	KindFunctional                         // Functional component
	KindText                               // Plain text node
	KindFragment                           // Grouping without wrapper
	KindPortal                             // Children mounted under another container
)

const (
	kindElement   = KindHTMLElement | KindSVGElement
	kindStateful  = KindStateful | KindStatefulKeepAlive | KindStatefulKeptAlive
	kindComponent = kindStateful | KindFunctional
	kindAll       = kindElement | kindComponent | KindText | KindFragment | KindPortal
)

// Valid reports whether k is exactly one primitive kind.
func (k Kind) Valid() bool {
	return k != 0 && k&(k-1) == 0 && k&^kindAll == 0
}

// IsElement reports whether k is an HTML or SVG element.
func (k Kind) IsElement() bool { return k&kindElement != 0 }

// IsStateful reports whether k is any stateful component variant.
func (k Kind) IsStateful() bool { return k&kindStateful != 0 }

// IsComponent reports whether k is a stateful or functional component.
func (k Kind) IsComponent() bool { return k&kindComponent != 0 }

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindHTMLElement:
		return "HTMLElement"
	case KindSVGElement:
		return "SVGElement"
	case KindStateful:
		return "Stateful"
	case KindStatefulKeepAlive:
		return "StatefulKeepAlive"
	case KindStatefulKeptAlive:
		return "StatefulKeptAlive"
	case KindFunctional:
		return "Functional"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindPortal:
		return "Portal"
	}
	if k == 0 || k&^kindAll != 0 {
		return "Unknown"
	}
	var parts []string
	for bit := KindHTMLElement; bit <= KindPortal; bit <<= 1 {
		if k&bit != 0 {
			parts = append(parts, bit.String())
		}
	}
	return strings.Join(parts, "|")
}

// Shape classifies a node's children. The zero Shape is unknown and never
// valid on a node.
type Shape uint8

const (
	ShapeNone    Shape = 1 << iota // No children
	ShapeSingle                    // Exactly one child
	ShapeKeyed                     // Several children, each with a key
	ShapeUnkeyed                   // Several children without keys
)

const shapeMultiple = ShapeKeyed | ShapeUnkeyed

// IsMultiple reports whether s is a keyed or unkeyed children list.
func (s Shape) IsMultiple() bool { return s&shapeMultiple != 0 }

// Valid reports whether s is exactly one shape.
func (s Shape) Valid() bool {
	return s != 0 && s&(s-1) == 0 && s&^(ShapeNone|ShapeSingle|shapeMultiple) == 0
}

// String returns the string representation of the Shape.
func (s Shape) String() string {
	switch s {
	case ShapeNone:
		return "None"
	case ShapeSingle:
		return "Single"
	case ShapeKeyed:
		return "Keyed"
	case ShapeUnkeyed:
		return "Unkeyed"
	default:
		return "Unknown"
	}
}
