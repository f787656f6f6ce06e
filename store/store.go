// --- mcquiz-server/store/store.go ---
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"mcquiz-server/models"
)

// ErrBankNotFound is returned by Load when the questions file does not exist.
// Callers surface it as a user-visible message and continue with the empty
// bank also returned; it is never fatal.
var ErrBankNotFound = errors.New("questions file not found")

// Store reads and writes the flat JSON question bank. One file, whole-file
// rewrites, last write wins. No locking: a single active session is the only
// writer.
type Store struct {
	path string
}

// New creates a Store backed by the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted bank. A missing file yields an empty bank and
// ErrBankNotFound so the caller can halt gracefully rather than crash.
func (s *Store) Load() (models.Bank, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Bank{}, fmt.Errorf("%w: %s", ErrBankNotFound, s.path)
		}
		return nil, fmt.Errorf("failed to read questions file %s: %w", s.path, err)
	}

	var bank models.Bank
	if err := json.Unmarshal(data, &bank); err != nil {
		return nil, fmt.Errorf("failed to parse questions file %s: %w", s.path, err)
	}
	if bank == nil {
		bank = models.Bank{}
	}
	return bank, nil
}

// Save serializes the full bank back to the same location, overwriting it.
// Output is pretty-printed for human diffability.
func (s *Store) Save(bank models.Bank) error {
	data, err := json.MarshalIndent(bank, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize question bank: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write questions file %s: %w", s.path, err)
	}
	return nil
}
