package protocol

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
)

// Replayer applies mutation frames recorded against one host to another.
// Handles in a frame belong to the recording host; the replayer keeps the
// mapping to the nodes it created.
type Replayer struct {
	host  host.Host
	nodes map[host.Handle]host.Handle
	seq   uint64

	// OnEvent, when set, receives events dispatched on replayed listeners,
	// addressed with the recording host's handle.
	OnEvent func(src host.Handle, ev host.Event)
}

// NewReplayer creates a Replayer that mutates h.
func NewReplayer(h host.Host) *Replayer {
	return &Replayer{host: h, nodes: make(map[host.Handle]host.Handle)}
}

// Bind maps a node of the recording host, typically a render container, to
// an existing node of the replay host.
func (p *Replayer) Bind(src, dst host.Handle) {
	p.nodes[src] = dst
}

// Lookup returns the replay node for a recorded handle.
func (p *Replayer) Lookup(src host.Handle) (host.Handle, bool) {
	h, ok := p.nodes[src]
	return h, ok
}

// Seq returns the sequence number of the last applied frame.
func (p *Replayer) Seq() uint64 { return p.seq }

// Apply replays f. Frames must be applied in sequence order.
func (p *Replayer) Apply(f *Frame) error {
	if f.Type != FrameMutations {
		return errors.New("E050").WithDetail("cannot replay a " + f.Type.String() + " frame")
	}
	if p.seq != 0 && f.Seq != p.seq+1 {
		return errors.New("E050").WithDetail(fmt.Sprintf("frame %d applied after %d", f.Seq, p.seq))
	}
	for i, m := range f.Mutations {
		if err := p.apply(m); err != nil {
			return errors.New("E050").
				WithDetail(fmt.Sprintf("frame %d mutation %d (%s)", f.Seq, i, m)).
				Wrap(err)
		}
	}
	p.seq = f.Seq
	return nil
}

func (p *Replayer) node(src host.Handle) (host.Handle, error) {
	h, ok := p.nodes[src]
	if !ok {
		return host.None, fmt.Errorf("unknown node %d", src)
	}
	return h, nil
}

func (p *Replayer) apply(m Mutation) error {
	switch m.Op {
	case OpCreateElement:
		p.nodes[m.Node] = p.host.CreateElement(m.Name, m.Value)
		return nil
	case OpCreateText:
		p.nodes[m.Node] = p.host.CreateText(m.Value)
		return nil
	}

	n, err := p.node(m.Node)
	if err != nil {
		return err
	}
	switch m.Op {
	case OpSetText:
		p.host.SetText(n, m.Value)
	case OpAppendChild, OpRemoveChild:
		parent, err := p.node(m.Parent)
		if err != nil {
			return err
		}
		if m.Op == OpAppendChild {
			return p.host.AppendChild(parent, n)
		}
		return p.host.RemoveChild(parent, n)
	case OpSetStyle:
		p.host.SetStyle(n, m.Name, m.Value)
	case OpSetClass:
		p.host.SetClass(n, m.Value)
	case OpSetAttribute:
		p.host.SetAttribute(n, m.Name, m.Value)
	case OpRemoveAttr:
		p.host.RemoveAttribute(n, m.Name)
	case OpSetProperty:
		p.host.SetProperty(n, m.Name, m.Prop)
	case OpDeleteProperty:
		p.host.DeleteProperty(n, m.Name)
	case OpAddListener:
		src := m.Node
		p.host.AddListener(n, m.Name, func(ev host.Event) {
			if p.OnEvent != nil {
				p.OnEvent(src, ev)
			}
		})
	case OpRemoveListener:
		p.host.RemoveListener(n, m.Name)
	default:
		return fmt.Errorf("unknown op %s", m.Op)
	}
	return nil
}
