package reconcile

import (
	"reflect"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Patch reconciles the live nodes of prev, which must have been mounted or
// patched before, to match next. container is the live parent of prev's
// nodes. On success next carries the live references and prev must not be
// used again.
func (e *Engine) Patch(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	leave, err := e.enter("Patch")
	if err != nil {
		return err
	}
	defer leave()
	return e.patch(prev, next, container, svg)
}

func (e *Engine) patch(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	if prev == nil {
		return errors.New("E008").WithDetail("patch without previous node")
	}
	if err := next.Validate(); err != nil {
		return err
	}
	if prev.Kind != next.Kind {
		return e.replace(prev, next, container, svg)
	}
	e.metrics.patched(next.Kind)

	switch next.Kind {
	case vdom.KindHTMLElement, vdom.KindSVGElement:
		return e.patchElement(prev, next, container, svg)
	case vdom.KindStateful:
		return e.patchStateful(prev, next, container, svg)
	case vdom.KindStatefulKeepAlive, vdom.KindStatefulKeptAlive:
		return e.carryInstance(prev, next)
	case vdom.KindFunctional:
		return e.patchFunctional(prev, next, container, svg)
	case vdom.KindText:
		e.patchText(prev, next)
		return nil
	case vdom.KindFragment:
		return e.patchFragment(prev, next, container, svg)
	case vdom.KindPortal:
		return e.patchPortal(prev, next)
	}
	return errors.New("E001").WithDetail(next.Kind.String())
}

// replace removes prev's live nodes and mounts next in their place.
func (e *Engine) replace(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	e.metrics.replaced()
	e.logger.Debug("full replace",
		"prev_kind", prev.Kind.String(), "prev_tag", prev.Tag,
		"next_kind", next.Kind.String(), "next_tag", next.Tag)
	if err := e.unmount(prev, container); err != nil {
		return err
	}
	return e.mount(next, container, svg)
}

func (e *Engine) patchElement(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	if prev.Tag != next.Tag {
		return e.replace(prev, next, container, svg)
	}
	el := prev.Live
	next.Live = el
	svg = svg || next.Kind == vdom.KindSVGElement

	for _, key := range sortedKeys(next.Data) {
		if err := e.patchData(el, key, prev.Data[key], next.Data[key]); err != nil {
			return err
		}
	}
	for _, key := range sortedKeys(prev.Data) {
		if _, ok := next.Data[key]; !ok {
			if err := e.patchData(el, key, prev.Data[key], nil); err != nil {
				return err
			}
		}
	}

	return e.patchChildren(prev, next, el, svg)
}

func (e *Engine) patchText(prev, next *vdom.VNode) {
	next.Live = prev.Live
	if prev.Text != next.Text {
		e.host.SetText(next.Live, next.Text)
	}
}

func (e *Engine) patchFragment(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	if err := e.patchChildren(prev, next, container, svg); err != nil {
		return err
	}

	switch {
	case next.Shape == vdom.ShapeNone && prev.Shape == vdom.ShapeNone:
		next.Live = prev.Live
	case next.Shape == vdom.ShapeNone:
		// The previous children are gone; an empty fragment still needs an anchor.
		ph, err := e.mountPlaceholder(container)
		if err != nil {
			return err
		}
		next.Live = ph
	default:
		if prev.Shape == vdom.ShapeNone {
			if err := e.removeChild(container, prev.Live); err != nil {
				return err
			}
		}
		next.Live = next.Children[0].Live
	}
	return nil
}

func (e *Engine) patchPortal(prev, next *vdom.VNode) error {
	// Children still live in the previous target.
	target := prev.TargetLive
	if err := e.patchChildren(prev, next, target, false); err != nil {
		return err
	}
	next.Live = prev.Live
	next.TargetLive = target

	if next.Target == prev.Target {
		return nil
	}
	moved, err := e.resolve(next.Target)
	if err != nil {
		return err
	}
	next.TargetLive = moved
	if moved == target {
		return nil
	}

	var nodes []host.Handle
	for _, c := range next.Children {
		nodes = appendLiveNodes(nodes, c)
	}
	for _, n := range nodes {
		if err := e.appendChild(moved, n); err != nil {
			return err
		}
	}
	e.logger.Debug("portal relocated", "from", prev.Target.String(), "to", next.Target.String(), "nodes", len(nodes))
	return nil
}

func (e *Engine) patchStateful(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	if !sameFunc(prev.Factory, next.Factory) {
		return e.replace(prev, next, container, svg)
	}
	return e.reuseInstance(prev, next, container, svg, nil)
}

func (e *Engine) patchFunctional(prev, next *vdom.VNode, container host.Handle, svg bool) error {
	if !sameFunc(prev.Func, next.Func) {
		return e.replace(prev, next, container, svg)
	}
	return e.reuseInstance(prev, next, container, svg, next.Func)
}

// reuseInstance moves prev's instance onto next, hands it next's props and
// re-renders it. render, when set, replaces the instance's render function.
func (e *Engine) reuseInstance(prev, next *vdom.VNode, container host.Handle, svg bool, render vdom.FunctionalComponent) error {
	inst, err := instanceOf(prev)
	if err != nil {
		return err
	}
	inst.adopt(next, container, svg)
	if render != nil {
		inst.render = render
	}
	if err := inst.update(); err != nil {
		return err
	}
	next.Live = inst.output.Live
	return nil
}

// carryInstance moves a kept-alive instance onto next without re-rendering.
func (e *Engine) carryInstance(prev, next *vdom.VNode) error {
	inst, err := instanceOf(prev)
	if err != nil {
		return err
	}
	inst.vnode = next
	inst.props = next.Data
	next.Instance = inst
	next.Live = prev.Live
	return nil
}

func instanceOf(v *vdom.VNode) (*instance, error) {
	inst, ok := v.Instance.(*instance)
	if !ok || inst == nil {
		return nil, errors.New("E004").WithDetail(v.Kind.String() + " node was never mounted")
	}
	return inst, nil
}

// sameFunc reports whether two component definitions share their code.
func sameFunc(a, b any) bool {
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if !va.IsValid() || !vb.IsValid() || va.IsNil() || vb.IsNil() {
		return false
	}
	return va.Pointer() == vb.Pointer()
}
