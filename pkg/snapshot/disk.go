package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vango-dev/reconcile/internal/errors"
)

// DiskStore stores snapshots as files in a directory.
type DiskStore struct {
	dir string
}

var _ Store = (*DiskStore)(nil)

// NewDiskStore creates the directory if needed and returns a store in it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory snapshots are written to.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) path(id string) string {
	return filepath.Join(s.dir, id+Extension)
}

// Put implements Store. The file is written to a temporary name first and
// renamed into place.
func (s *DiskStore) Put(ctx context.Context, id string, data []byte) error {
	if err := checkID(id); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.New("E040").Wrap(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.New("E040").Wrap(err)
	}
	if err := tmp.Close(); err != nil {
		return errors.New("E040").Wrap(err)
	}
	if err := os.Rename(tmp.Name(), s.path(id)); err != nil {
		return errors.New("E040").Wrap(err)
	}
	return nil
}

// Get implements Store.
func (s *DiskStore) Get(ctx context.Context, id string) ([]byte, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, errors.New("E041").WithDetail(id)
	}
	if err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	return data, nil
}

// List implements Store.
func (s *DiskStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.New("E040").Wrap(err)
	}
	var ids []string
	for _, e := range entries {
		id, ok := strings.CutSuffix(e.Name(), Extension)
		if !ok || e.IsDir() || !ValidID(id) {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
