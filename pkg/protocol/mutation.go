package protocol

import (
	"fmt"

	"github.com/vango-dev/reconcile/pkg/host"
)

// Op is the type of a recorded host mutation.
type Op uint8

// Mutation operation constants.
const (
	OpCreateElement  Op = 0x01 // Node created; Name is the tag, Value the namespace
	OpCreateText     Op = 0x02 // Node created with text Value
	OpSetText        Op = 0x03 // Text of Node set to Value
	OpAppendChild    Op = 0x04 // Node appended to Parent
	OpRemoveChild    Op = 0x05 // Node removed from Parent
	OpSetStyle       Op = 0x06 // Style Name set to Value ("" clears)
	OpSetClass       Op = 0x07 // Class list set to Value
	OpSetAttribute   Op = 0x08 // Attribute Name set to Value
	OpRemoveAttr     Op = 0x09 // Attribute Name removed
	OpSetProperty    Op = 0x0A // Property Name set to Prop
	OpDeleteProperty Op = 0x0B // Property Name cleared
	OpAddListener    Op = 0x0C // Listener registered for event Name
	OpRemoveListener Op = 0x0D // Listener for event Name removed
)

// String returns the string representation of the operation.
func (op Op) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpAppendChild:
		return "AppendChild"
	case OpRemoveChild:
		return "RemoveChild"
	case OpSetStyle:
		return "SetStyle"
	case OpSetClass:
		return "SetClass"
	case OpSetAttribute:
		return "SetAttribute"
	case OpRemoveAttr:
		return "RemoveAttribute"
	case OpSetProperty:
		return "SetProperty"
	case OpDeleteProperty:
		return "DeleteProperty"
	case OpAddListener:
		return "AddListener"
	case OpRemoveListener:
		return "RemoveListener"
	default:
		return "Unknown"
	}
}

// Mutation is one call made on a host.
type Mutation struct {
	Op     Op
	Node   host.Handle
	Parent host.Handle // For AppendChild/RemoveChild
	Name   string      // Tag, style, attribute, property or event name
	Value  string      // Text, style, class or attribute value; namespace for CreateElement
	Prop   any         // For SetProperty: string, bool, int64 or float64
}

// String formats m for logs.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement:
		if m.Value != "" {
			return fmt.Sprintf("%s #%d <%s> ns=%s", m.Op, m.Node, m.Name, m.Value)
		}
		return fmt.Sprintf("%s #%d <%s>", m.Op, m.Node, m.Name)
	case OpCreateText, OpSetText, OpSetClass:
		return fmt.Sprintf("%s #%d %q", m.Op, m.Node, m.Value)
	case OpAppendChild, OpRemoveChild:
		return fmt.Sprintf("%s #%d -> #%d", m.Op, m.Node, m.Parent)
	case OpSetStyle, OpSetAttribute:
		return fmt.Sprintf("%s #%d %s=%q", m.Op, m.Node, m.Name, m.Value)
	case OpSetProperty:
		return fmt.Sprintf("%s #%d %s=%v", m.Op, m.Node, m.Name, m.Prop)
	default:
		return fmt.Sprintf("%s #%d %s", m.Op, m.Node, m.Name)
	}
}

// Property value tags.
const (
	propString byte = 0x01
	propBool   byte = 0x02
	propInt    byte = 0x03
	propFloat  byte = 0x04
)

// normalizeProp reduces a property value to one of the encodable types.
// Anything else is carried in its fmt form.
func normalizeProp(v any) any {
	switch p := v.(type) {
	case string, bool, int64, float64:
		return p
	case int:
		return int64(p)
	case int32:
		return int64(p)
	case uint32:
		return int64(p)
	case float32:
		return float64(p)
	case nil:
		return ""
	default:
		return fmt.Sprint(p)
	}
}

func (e *Encoder) writeProp(v any) {
	switch p := normalizeProp(v).(type) {
	case bool:
		e.WriteUint8(propBool)
		e.WriteBool(p)
	case int64:
		e.WriteUint8(propInt)
		e.WriteSvarint(p)
	case float64:
		e.WriteUint8(propFloat)
		e.WriteFloat64(p)
	case string:
		e.WriteUint8(propString)
		e.WriteString(p)
	}
}

func (d *Decoder) readProp() (any, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case propString:
		return d.ReadString()
	case propBool:
		return d.ReadBool()
	case propInt:
		return d.ReadSvarint()
	case propFloat:
		return d.ReadFloat64()
	}
	return nil, fmt.Errorf("protocol: unknown property tag %#x", tag)
}

// EncodeTo appends m to e.
//
//	[Op: 1 byte][Node: varint][operation fields]
func (m Mutation) EncodeTo(e *Encoder) {
	e.WriteUint8(byte(m.Op))
	e.WriteUvarint(uint64(m.Node))
	switch m.Op {
	case OpCreateElement:
		e.WriteString(m.Name)
		e.WriteString(m.Value)
	case OpCreateText, OpSetText, OpSetClass:
		e.WriteString(m.Value)
	case OpAppendChild, OpRemoveChild:
		e.WriteUvarint(uint64(m.Parent))
	case OpSetStyle, OpSetAttribute:
		e.WriteString(m.Name)
		e.WriteString(m.Value)
	case OpSetProperty:
		e.WriteString(m.Name)
		e.writeProp(m.Prop)
	case OpRemoveAttr, OpDeleteProperty, OpAddListener, OpRemoveListener:
		e.WriteString(m.Name)
	}
}

// decodeMutation reads one mutation written by EncodeTo.
func decodeMutation(d *Decoder) (Mutation, error) {
	var m Mutation
	op, err := d.ReadByte()
	if err != nil {
		return m, err
	}
	m.Op = Op(op)
	node, err := d.ReadHandle()
	if err != nil {
		return m, err
	}
	m.Node = host.Handle(node)

	switch m.Op {
	case OpCreateElement, OpSetStyle, OpSetAttribute:
		if m.Name, err = d.ReadString(); err != nil {
			return m, err
		}
		m.Value, err = d.ReadString()
	case OpCreateText, OpSetText, OpSetClass:
		m.Value, err = d.ReadString()
	case OpAppendChild, OpRemoveChild:
		var parent uint32
		parent, err = d.ReadHandle()
		m.Parent = host.Handle(parent)
	case OpSetProperty:
		if m.Name, err = d.ReadString(); err != nil {
			return m, err
		}
		m.Prop, err = d.readProp()
	case OpRemoveAttr, OpDeleteProperty, OpAddListener, OpRemoveListener:
		m.Name, err = d.ReadString()
	default:
		err = fmt.Errorf("protocol: unknown mutation op %#x", op)
	}
	return m, err
}
