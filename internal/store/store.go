package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mbalagam/marketplace/internal/models"
)

const (
	itemsFile     = "items.json"
	purchasesFile = "purchases.json"
	usersFile     = "users.json"
)

// StorageError marks a collection file that could not be read or written.
// A corrupt file fails the request instead of being silently replaced.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store owns the flat-file JSON collections. Every mutation is a full
// load-modify-save cycle under the collection's mutex, so concurrent requests
// never interleave between the read and the write.
type Store struct {
	itemsPath     string
	purchasesPath string
	usersPath     string

	itemsMu     sync.Mutex
	purchasesMu sync.Mutex
	usersMu     sync.Mutex
}

func Open(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	s := &Store{
		itemsPath:     filepath.Join(dataDir, itemsFile),
		purchasesPath: filepath.Join(dataDir, purchasesFile),
		usersPath:     filepath.Join(dataDir, usersFile),
	}
	for _, path := range []string{s.itemsPath, s.purchasesPath, s.usersPath} {
		if err := seedEmpty(path); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func seedEmpty(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return &StorageError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
		return &StorageError{Path: path, Err: err}
	}
	return nil
}

func readCollection(path string, out any) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &StorageError{Path: path, Err: err}
	}
	return nil
}

func writeCollection(path string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &StorageError{Path: path, Err: err}
	}
	return nil
}

func (s *Store) loadItems() ([]models.Item, error) {
	items := []models.Item{}
	if err := readCollection(s.itemsPath, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) LoadItems() ([]models.Item, error) {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()
	return s.loadItems()
}

func (s *Store) SaveItems(items []models.Item) error {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()
	return writeCollection(s.itemsPath, items)
}

// UpdateItems runs fn on the current items and persists whatever it returns,
// all under the items lock. fn returning an error aborts without writing.
func (s *Store) UpdateItems(fn func([]models.Item) ([]models.Item, error)) error {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()
	items, err := s.loadItems()
	if err != nil {
		return err
	}
	updated, err := fn(items)
	if err != nil {
		return err
	}
	return writeCollection(s.itemsPath, updated)
}

func (s *Store) loadPurchases() ([]models.Purchase, error) {
	purchases := []models.Purchase{}
	if err := readCollection(s.purchasesPath, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (s *Store) LoadPurchases() ([]models.Purchase, error) {
	s.purchasesMu.Lock()
	defer s.purchasesMu.Unlock()
	return s.loadPurchases()
}

func (s *Store) SavePurchases(purchases []models.Purchase) error {
	s.purchasesMu.Lock()
	defer s.purchasesMu.Unlock()
	return writeCollection(s.purchasesPath, purchases)
}

func (s *Store) UpdatePurchases(fn func([]models.Purchase) ([]models.Purchase, error)) error {
	s.purchasesMu.Lock()
	defer s.purchasesMu.Unlock()
	purchases, err := s.loadPurchases()
	if err != nil {
		return err
	}
	updated, err := fn(purchases)
	if err != nil {
		return err
	}
	return writeCollection(s.purchasesPath, updated)
}

func (s *Store) loadUsers() ([]models.User, error) {
	users := []models.User{}
	if err := readCollection(s.usersPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Store) LoadUsers() ([]models.User, error) {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	return s.loadUsers()
}

func (s *Store) UpdateUsers(fn func([]models.User) ([]models.User, error)) error {
	s.usersMu.Lock()
	defer s.usersMu.Unlock()
	users, err := s.loadUsers()
	if err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return writeCollection(s.usersPath, updated)
}
