package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/exp/maps"
)

// DB is a JSON object stored in a single file, used as a key/value store. Every change is written to disk
// immediately.
type DB struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// Open opens the DB at the path passed. The file and its directory are created on the first write if they
// do not exist yet.
func Open(path string) (*DB, error) {
	db := &DB{path: path, data: make(map[string]json.RawMessage)}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return db, nil
		}
		return nil, fmt.Errorf("read db %v: %w", path, err)
	}
	if len(b) == 0 {
		return db, nil
	}
	if err := json.Unmarshal(b, &db.data); err != nil {
		return nil, fmt.Errorf("parse db %v: %w", path, err)
	}
	return db, nil
}

// Path returns the file the DB is stored in.
func (db *DB) Path() string {
	return db.path
}

// Get decodes the value stored under key into v. It returns false if no value is stored under the key.
func (db *DB) Get(key string, v any) (bool, error) {
	db.mu.Lock()
	raw, ok := db.data[key]
	db.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return true, fmt.Errorf("decode %v: %w", key, err)
	}
	return true, nil
}

// Set stores v under key and writes the DB to disk.
func (db *DB) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %v: %w", key, err)
	}
	db.mu.Lock()
	defer db.mu.Unlock()

	prev, existed := db.data[key]
	db.data[key] = raw
	if err := db.flush(); err != nil {
		if existed {
			db.data[key] = prev
		} else {
			delete(db.data, key)
		}
		return err
	}
	return nil
}

// Delete removes key from the DB and writes the DB to disk.
func (db *DB) Delete(key string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	prev, ok := db.data[key]
	if !ok {
		return nil
	}
	delete(db.data, key)
	if err := db.flush(); err != nil {
		db.data[key] = prev
		return err
	}
	return nil
}

// Keys returns the keys stored in the DB, sorted.
func (db *DB) Keys() []string {
	db.mu.Lock()
	data := maps.Clone(db.data)
	db.mu.Unlock()

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// flush writes the DB to a temporary file and renames it over the DB file. db.mu must be held.
func (db *DB) flush() error {
	b, err := json.MarshalIndent(db.data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal db: %w", err)
	}
	b = append(b, '\n')

	if err := os.MkdirAll(filepath.Dir(db.path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp := db.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, db.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
