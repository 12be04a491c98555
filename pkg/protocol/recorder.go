package protocol

import (
	"github.com/vango-dev/reconcile/pkg/host"
)

// Recorder is a host.Host that forwards every call to an underlying host
// and records the mutating ones. Flush packs the recorded mutations into a
// frame that a Replayer can apply to another host.
//
// Recorder is not safe for concurrent use.
type Recorder struct {
	host.Host
	seq     uint64
	pending []Mutation
}

var _ host.Host = (*Recorder)(nil)

// NewRecorder wraps h.
func NewRecorder(h host.Host) *Recorder {
	return &Recorder{Host: h}
}

func (r *Recorder) record(m Mutation) {
	r.pending = append(r.pending, m)
}

// Pending returns the number of mutations recorded since the last Flush.
func (r *Recorder) Pending() int { return len(r.pending) }

// Seq returns the sequence number of the last flushed frame.
func (r *Recorder) Seq() uint64 { return r.seq }

// Flush returns the recorded mutations as the next frame and starts a new
// recording. It returns nil when nothing was recorded.
func (r *Recorder) Flush(container host.Handle) *Frame {
	if len(r.pending) == 0 {
		return nil
	}
	r.seq++
	f := &Frame{
		Type:      FrameMutations,
		Seq:       r.seq,
		Container: container,
		Mutations: r.pending,
	}
	r.pending = nil
	return f
}

// CreateElement implements host.Host.
func (r *Recorder) CreateElement(tag, ns string) host.Handle {
	h := r.Host.CreateElement(tag, ns)
	r.record(Mutation{Op: OpCreateElement, Node: h, Name: tag, Value: ns})
	return h
}

// CreateText implements host.Host.
func (r *Recorder) CreateText(content string) host.Handle {
	h := r.Host.CreateText(content)
	r.record(Mutation{Op: OpCreateText, Node: h, Value: content})
	return h
}

// SetText implements host.Host.
func (r *Recorder) SetText(node host.Handle, content string) {
	r.Host.SetText(node, content)
	r.record(Mutation{Op: OpSetText, Node: node, Value: content})
}

// AppendChild implements host.Host. Failed calls are not recorded.
func (r *Recorder) AppendChild(parent, child host.Handle) error {
	if err := r.Host.AppendChild(parent, child); err != nil {
		return err
	}
	r.record(Mutation{Op: OpAppendChild, Node: child, Parent: parent})
	return nil
}

// RemoveChild implements host.Host. Failed calls are not recorded.
func (r *Recorder) RemoveChild(parent, child host.Handle) error {
	if err := r.Host.RemoveChild(parent, child); err != nil {
		return err
	}
	r.record(Mutation{Op: OpRemoveChild, Node: child, Parent: parent})
	return nil
}

// SetStyle implements host.Host.
func (r *Recorder) SetStyle(node host.Handle, name, value string) {
	r.Host.SetStyle(node, name, value)
	r.record(Mutation{Op: OpSetStyle, Node: node, Name: name, Value: value})
}

// SetClass implements host.Host.
func (r *Recorder) SetClass(node host.Handle, class string) {
	r.Host.SetClass(node, class)
	r.record(Mutation{Op: OpSetClass, Node: node, Value: class})
}

// SetAttribute implements host.Host.
func (r *Recorder) SetAttribute(node host.Handle, name, value string) {
	r.Host.SetAttribute(node, name, value)
	r.record(Mutation{Op: OpSetAttribute, Node: node, Name: name, Value: value})
}

// RemoveAttribute implements host.Host.
func (r *Recorder) RemoveAttribute(node host.Handle, name string) {
	r.Host.RemoveAttribute(node, name)
	r.record(Mutation{Op: OpRemoveAttr, Node: node, Name: name})
}

// SetProperty implements host.Host.
func (r *Recorder) SetProperty(node host.Handle, name string, value any) {
	r.Host.SetProperty(node, name, value)
	r.record(Mutation{Op: OpSetProperty, Node: node, Name: name, Prop: normalizeProp(value)})
}

// DeleteProperty implements host.Host.
func (r *Recorder) DeleteProperty(node host.Handle, name string) {
	r.Host.DeleteProperty(node, name)
	r.record(Mutation{Op: OpDeleteProperty, Node: node, Name: name})
}

// AddListener implements host.Host. Only the event name is recorded.
func (r *Recorder) AddListener(node host.Handle, event string, l host.Listener) {
	r.Host.AddListener(node, event, l)
	r.record(Mutation{Op: OpAddListener, Node: node, Name: event})
}

// RemoveListener implements host.Host.
func (r *Recorder) RemoveListener(node host.Handle, event string) {
	r.Host.RemoveListener(node, event)
	r.record(Mutation{Op: OpRemoveListener, Node: node, Name: event})
}
