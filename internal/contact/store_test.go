package contact

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "contacts.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *Store, name, phone, email string) {
	t.Helper()
	if _, err := s.Add(name, phone, email); err != nil {
		t.Fatalf("Add(%q) error = %v", name, err)
	}
}

func TestStore_LoadMissingFileCreatesEmpty(t *testing.T) {
	// Given a path with no file behind it
	p := filepath.Join(t.TempDir(), "nested", "contacts.json")
	s := NewStore(p)

	// When Load is called
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Then the store is empty and an empty file exists
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("expected file to be created: %v", err)
	}
	if info.Size() != 0 {
		t.Errorf("created file size = %d, want 0", info.Size())
	}

	// And loading the freshly created file again is not a malformed-file error
	if err := NewStore(p).Load(); err != nil {
		t.Errorf("second Load() error = %v", err)
	}
}

func TestStore_SaveAndLoadRoundTrip(t *testing.T) {
	// Given a store with several contacts, including duplicates
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "555-1", "a@x.com")
	mustAdd(t, s, "Bob", "555-2", "b@x.com")
	mustAdd(t, s, "ada", "555-3", "")

	// When a new store loads the same file
	reloaded := NewStore(s.Path())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Then the list is equal in content and order
	if diff := cmp.Diff(s.List(), reloaded.List()); diff != "" {
		t.Errorf("reloaded contacts mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveFormat(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "555-1", "a@x.com")

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	want := `[
  {
    "name": "Ada",
    "phone": "555-1",
    "email": "a@x.com"
  }
]
`
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Errorf("file contents mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_SaveEmptyWritesArray(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "1", "a")
	if _, err := s.Delete("ada"); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("file = %q, want []", got)
	}
}

func TestStore_LoadMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "invalid json", body: "{not json"},
		{name: "object at top level", body: `{"name":"Ada","phone":"1","email":"a"}`},
		{name: "unknown field", body: `[{"name":"Ada","phone":"1","email":"a","age":3}]`},
		{name: "missing field", body: `[{"name":"Ada","phone":"1"}]`},
		{name: "null field", body: `[{"name":"Ada","phone":null,"email":"a"}]`},
		{name: "wrong type", body: `[{"name":"Ada","phone":15551,"email":"a"}]`},
		{name: "trailing data", body: `[] []`},
		{name: "null list", body: `null`},
		{name: "stray closing bracket", body: `[]]`},
		{name: "stray closing brace", body: `[] }`},
		{name: "valid list then bracket", body: `[{"name":"Ada","phone":"1","email":"a"}]]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given a contact file with bad contents
			p := filepath.Join(t.TempDir(), "contacts.json")
			if err := os.WriteFile(p, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			s := NewStore(p)

			// When Load is called
			err := s.Load()

			// Then it reports ErrMalformed, starts empty, and leaves the file alone
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Load() error = %v, want ErrMalformed", err)
			}
			if s.Len() != 0 {
				t.Errorf("Len() = %d, want 0", s.Len())
			}
			data, _ := os.ReadFile(p)
			if string(data) != tt.body {
				t.Errorf("file was modified: %q", data)
			}
		})
	}
}

func TestStore_LoadMalformedLogsWarning(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "decode failure", body: "{not json"},
		{name: "null list", body: "null"},
		{name: "trailing data", body: "[]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given a malformed contact file and an observed logger
			p := filepath.Join(t.TempDir(), "contacts.json")
			if err := os.WriteFile(p, []byte(tt.body), 0o644); err != nil {
				t.Fatal(err)
			}
			core, logs := observer.New(zapcore.WarnLevel)
			s := NewStore(p, WithLogger(zap.New(core)))

			// When Load is called
			if err := s.Load(); !errors.Is(err, ErrMalformed) {
				t.Fatalf("Load() error = %v, want ErrMalformed", err)
			}

			// Then exactly one warning names the file
			entries := logs.FilterMessage("contact file unreadable").All()
			if len(entries) != 1 {
				t.Fatalf("warnings = %d, want 1", len(entries))
			}
			if got := entries[0].ContextMap()["path"]; got != p {
				t.Errorf("path field = %v, want %q", got, p)
			}
		})
	}
}

func TestStore_LoadAllowsTrailingWhitespace(t *testing.T) {
	p := filepath.Join(t.TempDir(), "contacts.json")
	body := "[{\"name\":\"Ada\",\"phone\":\"1\",\"email\":\"a\"}]\n\n  \t\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(p)

	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_MalformedFileOverwrittenOnNextSave(t *testing.T) {
	p := filepath.Join(t.TempDir(), "contacts.json")
	if err := os.WriteFile(p, []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(p)
	if err := s.Load(); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Load() error = %v, want ErrMalformed", err)
	}

	mustAdd(t, s, "Ada", "1", "a")

	reloaded := NewStore(p)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}
	if reloaded.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reloaded.Len())
	}
}

func TestStore_LoadTrimsFields(t *testing.T) {
	p := filepath.Join(t.TempDir(), "contacts.json")
	body := `[{"name":"  Ada ","phone":" 555-1","email":"a@x.com  "}]`
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	s := NewStore(p)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := []Contact{{Name: "Ada", Phone: "555-1", Email: "a@x.com"}}
	if diff := cmp.Diff(want, s.List()); diff != "" {
		t.Errorf("contacts mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_AddTrimsAndAllowsDuplicates(t *testing.T) {
	s := newTestStore(t)

	got, err := s.Add("  Ada  ", " 555-1 ", " a@x.com ")
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	mustAdd(t, s, "Ada", "555-9", "other@x.com")

	if got != (Contact{Name: "Ada", Phone: "555-1", Email: "a@x.com"}) {
		t.Errorf("Add() = %+v, want trimmed contact", got)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2 (duplicates allowed)", s.Len())
	}
}

func TestStore_AddThenSearch(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "555-1", "a@x.com")
	mustAdd(t, s, "Bob", "555-2", "b@x.com")

	tests := []struct {
		keyword string
		want    []string
	}{
		{keyword: "Ada", want: []string{"Ada"}},
		{keyword: "a", want: []string{"Ada"}},
		{keyword: "B", want: []string{"Bob"}},
		{keyword: "", want: []string{"Ada", "Bob"}},
		{keyword: "zed", want: nil},
		{keyword: "555", want: nil}, // phone is not searched
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			var names []string
			for _, c := range s.Search(tt.keyword) {
				names = append(names, c.Name)
			}
			if diff := cmp.Diff(tt.want, names); diff != "" {
				t.Errorf("Search(%q) mismatch (-want +got):\n%s", tt.keyword, diff)
			}
		})
	}
}

func TestStore_DeleteRemovesAllMatches(t *testing.T) {
	// Given duplicates differing only in case, and an unrelated contact
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "1", "a")
	mustAdd(t, s, "Bob", "2", "b")
	mustAdd(t, s, "ADA", "3", "c")
	mustAdd(t, s, "Adam", "4", "d")

	// When deleting by a lower-case name
	removed, err := s.Delete("ada")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// Then every exact case-insensitive match is gone and nothing else
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	var names []string
	for _, c := range s.List() {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"Bob", "Adam"}, names); diff != "" {
		t.Errorf("remaining mismatch (-want +got):\n%s", diff)
	}

	// And the change is persisted
	reloaded := NewStore(s.Path())
	if err := reloaded.Load(); err != nil {
		t.Fatal(err)
	}
	if reloaded.Len() != 2 {
		t.Errorf("reloaded Len() = %d, want 2", reloaded.Len())
	}
}

func TestStore_DeleteMissingLeavesStoreAndFileUnchanged(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "1", "a")
	before, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}

	removed, err := s.Delete("Nobody")
	if err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	after, _ := os.ReadFile(s.Path())
	if string(before) != string(after) {
		t.Error("file should not change when nothing is deleted")
	}
}

func TestStore_UpdateOnlySuppliedFields(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "555-1", "a@x.com")

	found, err := s.Update("ADA", "", "x@y.com")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	if !found {
		t.Fatal("Update() found = false, want true")
	}
	want := []Contact{{Name: "Ada", Phone: "555-1", Email: "x@y.com"}}
	if diff := cmp.Diff(want, s.List()); diff != "" {
		t.Errorf("contacts mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_UpdateFirstMatchOnly(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "1", "a")
	mustAdd(t, s, "ada", "2", "b")

	if _, err := s.Update("ada", "9", "  "); err != nil {
		t.Fatal(err)
	}

	want := []Contact{
		{Name: "Ada", Phone: "9", Email: "a"},
		{Name: "ada", Phone: "2", Email: "b"},
	}
	if diff := cmp.Diff(want, s.List()); diff != "" {
		t.Errorf("contacts mismatch (-want +got):\n%s", diff)
	}
}

func TestStore_UpdateNotFound(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "1", "a")

	found, err := s.Update("Bob", "2", "b")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if found {
		t.Error("Update() found = true, want false")
	}
}

func TestStore_ListReturnsCopy(t *testing.T) {
	s := newTestStore(t)
	mustAdd(t, s, "Ada", "1", "a")

	list := s.List()
	list[0].Name = "Mallory"

	if s.List()[0].Name != "Ada" {
		t.Error("mutating List() result changed the store")
	}
}

func TestStore_SaveErrorPropagates(t *testing.T) {
	// Given a store whose path is a directory
	dir := t.TempDir()
	s := NewStore(dir)

	// When a mutation tries to save
	_, err := s.Add("Ada", "1", "a")

	// Then the write error is returned
	if err == nil {
		t.Fatal("Add() should fail when the path is a directory")
	}
}

func TestContact_String(t *testing.T) {
	c := New("Ada", "555-1", "a@x.com")
	want := "Ada | phone: 555-1 | email: a@x.com"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
