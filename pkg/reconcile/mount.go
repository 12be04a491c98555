package reconcile

import (
	"sort"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

// Mount creates live nodes for v under container and records them on v.
// svg forces the SVG namespace for elements, as inside an <svg> subtree.
func (e *Engine) Mount(v *vdom.VNode, container host.Handle, svg bool) error {
	leave, err := e.enter("Mount")
	if err != nil {
		return err
	}
	defer leave()
	return e.mount(v, container, svg)
}

func (e *Engine) mount(v *vdom.VNode, container host.Handle, svg bool) error {
	if err := v.Validate(); err != nil {
		return err
	}
	e.metrics.mounted(v.Kind)

	switch v.Kind {
	case vdom.KindHTMLElement, vdom.KindSVGElement:
		return e.mountElement(v, container, svg)
	case vdom.KindStateful, vdom.KindStatefulKeepAlive, vdom.KindStatefulKeptAlive:
		return e.mountStateful(v, container, svg)
	case vdom.KindFunctional:
		return e.mountFunctional(v, container, svg)
	case vdom.KindText:
		return e.mountText(v, container)
	case vdom.KindFragment:
		return e.mountFragment(v, container, svg)
	case vdom.KindPortal:
		return e.mountPortal(v, container)
	}
	return errors.New("E001").WithDetail(v.Kind.String())
}

func (e *Engine) mountElement(v *vdom.VNode, container host.Handle, svg bool) error {
	svg = svg || v.Kind == vdom.KindSVGElement
	ns := ""
	if svg {
		ns = host.NamespaceSVG
	}
	el := e.host.CreateElement(v.Tag, ns)
	v.Live = el

	for _, key := range sortedKeys(v.Data) {
		if err := e.patchData(el, key, nil, v.Data[key]); err != nil {
			return err
		}
	}
	for _, c := range v.Children {
		if err := e.mount(c, el, svg); err != nil {
			return err
		}
	}
	return e.appendChild(container, el)
}

func (e *Engine) mountText(v *vdom.VNode, container host.Handle) error {
	v.Live = e.host.CreateText(v.Text)
	return e.appendChild(container, v.Live)
}

// mountPlaceholder appends an empty text node that anchors a fragment or
// portal in its logical position.
func (e *Engine) mountPlaceholder(container host.Handle) (host.Handle, error) {
	ph := e.host.CreateText("")
	return ph, e.appendChild(container, ph)
}

func (e *Engine) mountFragment(v *vdom.VNode, container host.Handle, svg bool) error {
	if v.Shape == vdom.ShapeNone {
		ph, err := e.mountPlaceholder(container)
		v.Live = ph
		return err
	}
	for _, c := range v.Children {
		if err := e.mount(c, container, svg); err != nil {
			return err
		}
	}
	v.Live = v.Children[0].Live
	return nil
}

func (e *Engine) mountPortal(v *vdom.VNode, container host.Handle) error {
	target, err := e.resolve(v.Target)
	if err != nil {
		return err
	}
	v.TargetLive = target
	for _, c := range v.Children {
		if err := e.mount(c, target, false); err != nil {
			return err
		}
	}
	ph, err := e.mountPlaceholder(container)
	v.Live = ph
	return err
}

// resolve finds the live node a portal target names.
func (e *Engine) resolve(t vdom.Target) (host.Handle, error) {
	if t.Selector != "" {
		h, ok := e.host.Query(t.Selector)
		if !ok {
			return host.None, errors.New("E003").WithDetail("selector " + t.Selector + " matched no node")
		}
		return h, nil
	}
	if !t.Node.Valid() {
		return host.None, errors.New("E003").WithDetail("empty target")
	}
	return t.Node, nil
}

func (e *Engine) mountStateful(v *vdom.VNode, container host.Handle, svg bool) error {
	comp := v.Factory()
	if comp == nil {
		return errors.New("E005").WithDetail("component factory returned nil")
	}
	inst := newInstance(e, v, comp.Render, container, svg)
	inst.comp = comp
	if a, ok := comp.(vdom.Attacher); ok {
		a.Attach(inst)
	}
	return e.mountInstance(v, inst)
}

func (e *Engine) mountFunctional(v *vdom.VNode, container host.Handle, svg bool) error {
	return e.mountInstance(v, newInstance(e, v, v.Func, container, svg))
}

func (e *Engine) mountInstance(v *vdom.VNode, inst *instance) error {
	v.Instance = inst
	if err := inst.update(); err != nil {
		return err
	}
	v.Live = inst.output.Live
	return nil
}

func sortedKeys(data vdom.Data) []string {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
