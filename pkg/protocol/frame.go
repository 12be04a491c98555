package protocol

import (
	"fmt"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/host"
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameMutations FrameType = 0x01 // Mutations of one render
	FrameSnapshot  FrameType = 0x02 // Serialized HTML of a container
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameMutations:
		return "Mutations"
	case FrameSnapshot:
		return "Snapshot"
	default:
		return "Unknown"
	}
}

// Frame is one message of a render stream.
//
// Wire format:
//
//	[Type: 1 byte][Seq: varint][Container: varint][body]
//
// The body of a FrameMutations frame is a varint count followed by the
// encoded mutations. The body of a FrameSnapshot frame is a length-prefixed
// HTML string.
type Frame struct {
	Type      FrameType
	Seq       uint64
	Container host.Handle
	Mutations []Mutation
	HTML      string
}

// Encode encodes the frame to bytes.
func (f *Frame) Encode() []byte {
	e := NewEncoder()
	f.EncodeTo(e)
	return e.Bytes()
}

// EncodeTo encodes the frame using the provided encoder.
func (f *Frame) EncodeTo(e *Encoder) {
	e.WriteUint8(byte(f.Type))
	e.WriteUvarint(f.Seq)
	e.WriteUvarint(uint64(f.Container))
	switch f.Type {
	case FrameMutations:
		e.WriteUvarint(uint64(len(f.Mutations)))
		for _, m := range f.Mutations {
			m.EncodeTo(e)
		}
	case FrameSnapshot:
		e.WriteString(f.HTML)
	}
}

// DecodeFrame decodes a frame from bytes. The input must hold exactly one
// frame.
func DecodeFrame(data []byte) (*Frame, error) {
	f, err := decodeFrame(NewDecoder(data))
	if err != nil {
		return nil, errors.New("E050").Wrap(err)
	}
	return f, nil
}

func decodeFrame(d *Decoder) (*Frame, error) {
	ft, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	f := &Frame{Type: FrameType(ft)}
	if f.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	container, err := d.ReadHandle()
	if err != nil {
		return nil, err
	}
	f.Container = host.Handle(container)

	switch f.Type {
	case FrameMutations:
		n, err := d.ReadCount(MaxMutations)
		if err != nil {
			return nil, err
		}
		f.Mutations = make([]Mutation, 0, n)
		for i := 0; i < n; i++ {
			m, err := decodeMutation(d)
			if err != nil {
				return nil, fmt.Errorf("mutation %d: %w", i, err)
			}
			f.Mutations = append(f.Mutations, m)
		}
	case FrameSnapshot:
		if f.HTML, err = d.ReadString(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("protocol: invalid frame type %#x", ft)
	}

	if !d.EOF() {
		return nil, fmt.Errorf("protocol: %d trailing bytes", d.Remaining())
	}
	return f, nil
}
