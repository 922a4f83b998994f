// Package storage persists each entity collection as a single JSON array
// file under the data directory and keeps carts in memory. Collections are
// read whole and rewritten whole; concurrent read-modify-write cycles are
// not serialized, the last writer wins.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/avolkov/storefront/internal/models"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

const (
	usersFile    = "users.json"
	productsFile = "products.json"
	ordersFile   = "orders.json"
	blogFile     = "blog.json"
)

type FileStore struct {
	dir string

	mu    sync.RWMutex // guards carts only; file collections are unguarded
	carts map[string][]models.CartItem
}

func New(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{
		dir:   dir,
		carts: make(map[string][]models.CartItem),
	}, nil
}

// readCollection loads a whole collection; a missing file is an empty one.
func readCollection[T any](s *FileStore, name string) ([]T, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return items, nil
}

func writeCollection[T any](s *FileStore, name string, items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
