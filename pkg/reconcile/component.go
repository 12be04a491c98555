package reconcile

import (
	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
	"github.com/vango-dev/reconcile/pkg/vdom"
)

type instanceState uint8

const (
	stateConstructed instanceState = iota // Created, initial render pending
	stateMounted                          // Output mounted
	stateUnmounted                        // Output removed from the host
)

func (s instanceState) String() string {
	switch s {
	case stateConstructed:
		return "constructed"
	case stateMounted:
		return "mounted"
	case stateUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// instance is the record of a mounted component. Stateful components keep
// the same instance across patches; functional components keep it too, with
// render swapped for the latest function.
type instance struct {
	engine *Engine
	vnode  *vdom.VNode    // Node that currently owns the instance
	comp   vdom.Component // nil for functional components
	render func(vdom.Data) *vdom.VNode
	props  vdom.Data
	output *vdom.VNode // Most recently rendered subtree

	container host.Handle
	svg       bool
	state     instanceState
}

var _ vdom.Instance = (*instance)(nil)

func newInstance(e *Engine, v *vdom.VNode, render func(vdom.Data) *vdom.VNode, container host.Handle, svg bool) *instance {
	return &instance{
		engine:    e,
		vnode:     v,
		render:    render,
		props:     v.Data,
		container: container,
		svg:       svg,
	}
}

// Output implements vdom.Instance.
func (i *instance) Output() *vdom.VNode { return i.output }

// Props implements vdom.Instance.
func (i *instance) Props() vdom.Data { return i.props }

// Mounted implements vdom.Instance.
func (i *instance) Mounted() bool { return i.state == stateMounted }

// Update re-renders the component with its current props and patches the
// result into the live tree. It is meant for components reacting to their
// own state changes, typically from an event listener.
func (i *instance) Update() error {
	switch i.state {
	case stateConstructed:
		return errors.New("E004")
	case stateUnmounted:
		i.engine.logger.Debug("update of unmounted component ignored", "kind", i.vnode.Kind.String())
		return nil
	}
	leave, err := i.engine.enter("Update")
	if err != nil {
		return err
	}
	defer leave()
	i.engine.metrics.selfUpdated()
	return i.update()
}

// adopt moves the instance onto next, the node replacing its owner.
func (i *instance) adopt(next *vdom.VNode, container host.Handle, svg bool) {
	i.vnode = next
	i.props = next.Data
	i.container = container
	i.svg = svg
	next.Instance = i
}

// update renders and mounts on first use, and renders and patches after.
func (i *instance) update() error {
	next := i.render(i.props)
	if next == nil {
		return errors.New("E005").WithDetail(i.vnode.Kind.String() + " component")
	}

	if i.state == stateConstructed {
		if err := i.engine.mount(next, i.container, i.svg); err != nil {
			return err
		}
		i.output = next
		i.state = stateMounted
		return nil
	}

	prev := i.output
	parent := i.engine.host.Parent(prev.Live)
	if !parent.Valid() {
		parent = i.container
	}
	if err := i.engine.patch(prev, next, parent, i.svg); err != nil {
		return err
	}
	i.output = next
	i.state = stateMounted
	i.vnode.Live = next.Live
	return nil
}
