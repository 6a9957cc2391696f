package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrInvalidName is returned when a player name cannot be used to build a file name.
var ErrInvalidName = errors.New("invalid player name")

// DataKey is the key the player document is stored under in a player file.
const DataKey = "data"

// Files persists player documents to one JSON file per player. Each file is a DB with the document stored
// under DataKey.
type Files struct {
	// Dir is the directory the player files are stored in.
	Dir string
	// Pattern is the file name of a player file, in which %s is replaced by the name of the player.
	Pattern string
}

// Save stores the document of the player with the name passed.
func (f Files) Save(name string, doc any) error {
	path, err := f.Path(name)
	if err != nil {
		return err
	}
	db, err := Open(path)
	if err != nil {
		return err
	}
	return db.Set(DataKey, doc)
}

// Load decodes the document of the player with the name passed into v. It returns false if nothing was
// saved for the player yet.
func (f Files) Load(name string, v any) (bool, error) {
	path, err := f.Path(name)
	if err != nil {
		return false, err
	}
	db, err := Open(path)
	if err != nil {
		return false, err
	}
	return db.Get(DataKey, v)
}

// Path returns the path of the file of the player with the name passed.
func (f Files) Path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(f.Dir, fmt.Sprintf(f.Pattern, name)), nil
}
