// Package protocol records the host mutations a render performs and
// encodes them as compact binary frames, so a render can be mirrored onto
// another host, streamed to a browser or stored as a snapshot.
//
// # Recording
//
// A Recorder wraps any host.Host. The reconciler mutates the Recorder as if
// it were the host itself; after each render Flush returns the recorded
// mutations as a Frame with the next sequence number:
//
//	rec := protocol.NewRecorder(doc)
//	engine := reconcile.New(rec)
//	_ = engine.Render(ctx, tree, app)
//	frame := rec.Flush(app)
//
// # Wire Format
//
// Frames use the following encodings:
//
//   - Varint: handles, counts and sequence numbers (protobuf-style)
//   - ZigZag: signed integer property values
//   - Length-prefixed: strings prefixed with a varint length
//   - Big-endian: float property values
//
// A frame is [Type][Seq][Container] followed by a body. A mutations body is
// a count and that many mutations, each [Op][Node] plus the fields of the
// operation:
//
//	[Op: 0x03][Node: varint][Value: len-prefixed]     SetText
//	[Op: 0x04][Node: varint][Parent: varint]          AppendChild
//
// # Replay
//
// A Replayer applies frames to another host. Handles in a frame belong to
// the recording host; Bind maps the render container before the first
// frame and the replayer tracks every node it creates after that.
package protocol
