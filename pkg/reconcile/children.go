package reconcile

import (
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// patchChildren reconciles prev's children with next's under container.
//
//	prev \ next | single         | none        | multiple
//	single      | patch          | remove      | remove, mount all
//	none        | mount          | -           | mount all
//	multiple    | remove all,    | remove all  | remove all, mount all
//	            | mount          |             |
//
// Two child lists are never matched against each other: the previous list
// is torn down and the next one mounted in order.
func (e *Engine) patchChildren(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	switch prev.Shape {
	case vdom.ShapeNone:
		return e.mountAll(next.Children, container, svg)

	case vdom.ShapeSingle:
		if next.Shape == vdom.ShapeSingle {
			return e.patch(prev.Children[0], next.Children[0], container, svg)
		}
		if err := e.unmount(prev.Children[0], container); err != nil {
			return err
		}
		return e.mountAll(next.Children, container, svg)

	default:
		if err := e.unmountAll(prev.Children, container); err != nil {
			return err
		}
		if next.Shape.IsMultiple() {
			e.metrics.childrenRemounted(len(prev.Children), len(next.Children))
			e.logger.Debug("children remounted", "removed", len(prev.Children), "mounted", len(next.Children))
		}
		return e.mountAll(next.Children, container, svg)
	}
}

func (e *Engine) mountAll(children []*vdom.VNode, container host.Handle, svg bool) error {
	for _, c := range children {
		if err := e.mount(c, container, svg); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) unmountAll(children []*vdom.VNode, container host.Handle) error {
	for _, c := range children {
		if err := e.unmount(c, container); err != nil {
			return err
		}
	}
	return nil
}

// unmount removes every top-level live node v produced under container:
// the node itself, each child of a fragment, a portal's children (from its
// target) and anchor, or a component's rendered output. Portals and
// components nested inside a removed element are released as well.
func (e *Engine) unmount(v *vdom.VNode, container host.Handle) error {
	switch {
	case v.Kind == vdom.KindFragment && v.Shape != vdom.ShapeNone:
		return e.unmountAll(v.Children, container)

	case v.Kind == vdom.KindPortal:
		if err := e.unmountAll(v.Children, v.TargetLive); err != nil {
			return err
		}
		return e.removeChild(container, v.Live)

	case v.Kind.IsComponent():
		inst, _ := v.Instance.(*instance)
		if inst == nil || inst.output == nil {
			return e.removeChild(container, v.Live)
		}
		if err := e.unmount(inst.output, container); err != nil {
			return err
		}
		inst.state = stateUnmounted
		return nil
	}
	if err := e.removeChild(container, v.Live); err != nil {
		return err
	}
	return e.releaseAll(v.Children)
}

// release tears down what v leaves behind once an ancestor's live node is
// detached: children a nested portal placed in its target, and the
// instances of nested components.
func (e *Engine) release(v *vdom.VNode) error {
	switch {
	case v.Kind == vdom.KindPortal:
		return e.unmountAll(v.Children, v.TargetLive)

	case v.Kind.IsComponent():
		inst, _ := v.Instance.(*instance)
		if inst == nil {
			return nil
		}
		inst.state = stateUnmounted
		if inst.output == nil {
			return nil
		}
		return e.release(inst.output)
	}
	return e.releaseAll(v.Children)
}

func (e *Engine) releaseAll(children []*vdom.VNode) error {
	for _, c := range children {
		if err := e.release(c); err != nil {
			return err
		}
	}
	return nil
}

// appendLiveNodes appends the top-level live nodes of v, in order.
func appendLiveNodes(nodes []host.Handle, v *vdom.VNode) []host.Handle {
	switch {
	case v.Kind == vdom.KindFragment && v.Shape != vdom.ShapeNone:
		for _, c := range v.Children {
			nodes = appendLiveNodes(nodes, c)
		}
		return nodes
	case v.Kind.IsComponent():
		if out := v.Output(); out != nil {
			return appendLiveNodes(nodes, out)
		}
	}
	return append(nodes, v.Live)
}

// LiveNodes returns the top-level live nodes v produced, in document order.
func LiveNodes(v *vdom.VNode) []host.Handle {
	if v == nil {
		return nil
	}
	return appendLiveNodes(nil, v)
}
