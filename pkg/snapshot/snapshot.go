// Package snapshot stores encoded render frames under time-ordered ULID
// names, on local disk or in S3.
package snapshot

import (
	"context"

	"github.com/oklog/ulid/v2"

	"github.com/vango-dev/reconcile/internal/errors"
	"github.com/vango-dev/reconcile/pkg/protocol"
)

// Extension is appended to snapshot IDs to form file names and object keys.
const Extension = ".frame"

// Store persists encoded frames.
type Store interface {
	// Put stores data under id, replacing any previous value.
	Put(ctx context.Context, id string, data []byte) error

	// Get returns the data stored under id. A missing snapshot is an E041
	// error.
	Get(ctx context.Context, id string) ([]byte, error)

	// List returns the stored IDs, oldest first.
	List(ctx context.Context) ([]string, error)
}

// NewID returns a new snapshot ID. IDs sort by creation time.
func NewID() string {
	return ulid.Make().String()
}

// ValidID reports whether id was produced by NewID.
func ValidID(id string) bool {
	_, err := ulid.ParseStrict(id)
	return err == nil
}

func checkID(id string) error {
	if !ValidID(id) {
		return errors.New("E041").WithDetail("invalid snapshot id " + id)
	}
	return nil
}

// Save encodes f and stores it under a new ID.
func Save(ctx context.Context, s Store, f *protocol.Frame) (string, error) {
	id := NewID()
	if err := s.Put(ctx, id, f.Encode()); err != nil {
		return "", err
	}
	return id, nil
}

// Open loads and decodes the frame stored under id.
func Open(ctx context.Context, s Store, id string) (*protocol.Frame, error) {
	data, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeFrame(data)
}

// Latest returns the ID of the newest snapshot, or "" when the store is
// empty.
func Latest(ctx context.Context, s Store) (string, error) {
	ids, err := s.List(ctx)
	if err != nil || len(ids) == 0 {
		return "", err
	}
	return ids[len(ids)-1], nil
}
