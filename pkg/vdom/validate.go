package vdom

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
)

// Validate checks v itself (not its descendants): exactly one primitive
// kind, the fields that kind requires, and agreement between Shape and
// Children.
func (v *VNode) Validate() error {
	if v == nil {
		return errors.New("E008")
	}
	if !v.Kind.Valid() {
		return errors.New("E001").WithDetail(fmt.Sprintf("kind %#x", uint16(v.Kind)))
	}

	switch {
	case v.Kind.IsElement():
		if v.Tag == "" {
			return errors.New("E001").WithDetail("element without tag")
		}
	case v.Kind.IsStateful():
		if v.Factory == nil {
			return errors.New("E001").WithDetail("stateful component without factory")
		}
	case v.Kind == KindFunctional:
		if v.Func == nil {
			return errors.New("E001").WithDetail("functional component without render function")
		}
	case v.Kind == KindPortal:
		if v.Target.IsZero() {
			return errors.New("E003").WithDetail("portal without target")
		}
	}

	n := len(v.Children)
	switch {
	case v.Shape == ShapeNone:
		if n != 0 {
			return shapeError(v, n)
		}
	case v.Shape == ShapeSingle:
		if n != 1 {
			return shapeError(v, n)
		}
	case v.Shape.IsMultiple() && v.Shape.Valid():
		if n == 0 {
			return shapeError(v, n)
		}
	default:
		return errors.New("E002").WithDetail(fmt.Sprintf("%s node has unknown shape %#x", v.Kind, uint8(v.Shape)))
	}

	if n > 0 && (v.Kind == KindText || v.Kind.IsComponent()) {
		return errors.New("E002").WithDetail(fmt.Sprintf("%s node cannot have children", v.Kind))
	}
	for i, c := range v.Children {
		if c == nil {
			return errors.New("E008").WithDetail(fmt.Sprintf("child %d of %s node", i, v.Kind))
		}
	}
	return nil
}

func shapeError(v *VNode, n int) error {
	return errors.New("E002").WithDetail(fmt.Sprintf("%s node declares %s children but has %d", v.Kind, v.Shape, n))
}
