package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
)

// Store persists the set of delivered item identities as a JSON array
// of strings, the only durable state the notifier keeps between runs.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted seen-set. A missing file is a normal first
// run. An unreadable or corrupt file is logged and treated as empty:
// re-delivering a notification is the acceptable failure mode, a crash
// loop is not.
func (s *Store) Load() map[string]struct{} {
	seen := make(map[string]struct{})

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read seen state, starting empty", "path", s.path, "error", err)
		}
		return seen
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		slog.Warn("Failed to parse seen state, starting empty", "path", s.path, "error", err)
		return seen
	}

	for _, id := range ids {
		seen[id] = struct{}{}
	}

	return seen
}

// Save overwrites the persisted seen-set. Identities are sorted purely
// for diff-friendly output; the order carries no meaning. The content
// is written to a temporary file and renamed over the target so a
// partially written state is never observable.
func (s *Store) Save(seen map[string]struct{}) error {
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(ids); err != nil {
		return fmt.Errorf("failed to encode seen state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write seen state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace seen state: %w", err)
	}

	return nil
}
