package contact

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrMalformed indicates the contact file exists but does not hold a valid contact list.
var ErrMalformed = errors.New("contact: malformed contact file")

// Store holds the contact list in memory and rewrites its JSON file after every mutation.
// It is not safe for concurrent use.
type Store struct {
	path     string
	contacts []Contact
	logger   *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewStore creates an empty Store backed by the file at path. Call Load to read existing contacts.
func NewStore(path string, opts ...Option) *Store {
	s := &Store{path: path, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory list with the contents of the backing file.
//
// A missing file is created empty. An empty file yields an empty list. If the file
// cannot be decoded, the list is left empty, the file is not touched, and an error
// wrapping ErrMalformed is returned; the Store remains usable.
func (s *Store) Load() error {
	s.contacts = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.create()
		}
		return fmt.Errorf("contact: reading %s: %w", s.path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		s.logger.Debug("contact file empty", zap.String("path", s.path))
		return nil
	}

	var loaded []Contact
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&loaded); err != nil {
		return s.malformed(err)
	}
	if loaded == nil {
		return s.malformed(errors.New("top level is null, want a list"))
	}
	if _, err := dec.Token(); err != io.EOF {
		return s.malformed(errors.New("trailing data after contact list"))
	}

	s.contacts = loaded
	s.logger.Debug("contacts loaded", zap.String("path", s.path), zap.Int("count", len(loaded)))
	return nil
}

// malformed logs why the backing file was rejected and wraps ErrMalformed.
func (s *Store) malformed(reason error) error {
	s.logger.Warn("contact file unreadable", zap.String("path", s.path), zap.Error(reason))
	return fmt.Errorf("%w: %s: %v", ErrMalformed, s.path, reason)
}

// create makes an empty backing file, including parent directories.
func (s *Store) create() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("contact: creating directory: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("contact: creating %s: %w", s.path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("contact: creating %s: %w", s.path, err)
	}
	s.logger.Debug("contact file created", zap.String("path", s.path))
	return nil
}

// Save writes the full contact list to the backing file as indented JSON.
func (s *Store) Save() error {
	list := s.contacts
	if list == nil {
		list = []Contact{}
	}

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return fmt.Errorf("contact: marshaling: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("contact: writing %s: %w", s.path, err)
	}
	s.logger.Debug("contacts saved", zap.String("path", s.path), zap.Int("count", len(list)))
	return nil
}

// Add appends a new contact and saves. Duplicate names are allowed.
func (s *Store) Add(name, phone, email string) (Contact, error) {
	c := New(name, phone, email)
	s.contacts = append(s.contacts, c)
	if err := s.Save(); err != nil {
		return Contact{}, err
	}
	return c, nil
}

// List returns every contact in insertion order.
func (s *Store) List() []Contact {
	out := make([]Contact, len(s.contacts))
	copy(out, s.contacts)
	return out
}

// Len returns the number of contacts.
func (s *Store) Len() int {
	return len(s.contacts)
}

// Search returns contacts whose name contains keyword, ignoring case.
func (s *Store) Search(keyword string) []Contact {
	keyword = strings.ToLower(keyword)
	var out []Contact
	for _, c := range s.contacts {
		if strings.Contains(strings.ToLower(c.Name), keyword) {
			out = append(out, c)
		}
	}
	return out
}

// Update changes the phone and email of the first contact named name (case-insensitive).
// Empty replacements leave the existing value in place. It reports whether a contact matched.
// Only the first match is updated; see Delete for the all-matches counterpart.
func (s *Store) Update(name, phone, email string) (bool, error) {
	phone = strings.TrimSpace(phone)
	email = strings.TrimSpace(email)

	for i := range s.contacts {
		if !s.contacts[i].Matches(name) {
			continue
		}
		if phone != "" {
			s.contacts[i].Phone = phone
		}
		if email != "" {
			s.contacts[i].Email = email
		}
		if err := s.Save(); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}

// Delete removes every contact named name (case-insensitive) and returns how many were removed.
// The file is only rewritten when something was removed.
func (s *Store) Delete(name string) (int, error) {
	kept := s.contacts[:0:0]
	for _, c := range s.contacts {
		if !c.Matches(name) {
			kept = append(kept, c)
		}
	}

	removed := len(s.contacts) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	s.contacts = kept
	if err := s.Save(); err != nil {
		return 0, err
	}
	return removed, nil
}
