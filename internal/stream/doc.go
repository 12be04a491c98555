// Package stream broadcasts encoded mutation frames to websocket clients.
//
// A client that connects first receives a snapshot frame describing the
// current tree, then every frame published after it. Snapshot production
// and publishing are serialized by the Hub, so a client never sees a frame
// that is already reflected in its snapshot.
//
//	hub := stream.NewHub(snapshot, logger)
//	r.Get("/ws", hub.ServeHTTP)
//	hub.Publish(func() ([]byte, error) { ... })
package stream
