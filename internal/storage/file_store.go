package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileStore keeps one file per key under Dir. Writes go through a temp file
// and a rename so a crash never leaves a half-written value behind.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: empty file store dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create file store dir: %w", err)
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return filepath.Join(f.Dir, url.PathEscape(key)+".json")
}

func (f *FileStore) Get(_ context.Context, key string) ([]byte, error) {
	raw, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return raw, nil
}

func (f *FileStore) Set(_ context.Context, key string, value []byte) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("storage: empty key")
	}
	target := f.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, target)
}

func (f *FileStore) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	return err
}

func (f *FileStore) ListEntries(ctx context.Context, filter EntryListFilter) ([]Entry, error) {
	names, err := filepath.Glob(filepath.Join(f.Dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	out := make([]Entry, 0, len(names))
	for _, name := range names {
		key, err := url.PathUnescape(strings.TrimSuffix(filepath.Base(name), ".json"))
		if err != nil || !strings.HasPrefix(key, filter.Prefix) {
			continue
		}
		info, err := os.Stat(name)
		if err != nil {
			return nil, err
		}
		value, err := f.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Key: key, Value: value, UpdatedAt: info.ModTime().UTC()})
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

func paginate(items []Entry, limit, offset int) []Entry {
	if offset > 0 {
		if offset >= len(items) {
			return []Entry{}
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
