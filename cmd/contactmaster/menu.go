package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/smileynet/pocket/internal/contact"
)

const menuText = `
==== ContactMaster ====
1. Add Contact
2. View Contacts
3. Search Contacts
4. Update Contact
5. Delete Contact
0. Exit
Choose an option: `

// menu is the interactive numbered menu over a contact store.
type menu struct {
	store  *contact.Store
	in     *bufio.Scanner
	w      io.Writer
	logger *zap.Logger
}

func newMenu(store *contact.Store, in io.Reader, w io.Writer, logger *zap.Logger) *menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &menu{store: store, in: bufio.NewScanner(in), w: w, logger: logger}
}

// prompt prints label and reads one line. ok is false at end of input.
func (m *menu) prompt(label string) (line string, ok bool) {
	_, _ = fmt.Fprint(m.w, label)
	if !m.in.Scan() {
		return "", false
	}
	return m.in.Text(), true
}

// run loops until the user exits or input ends. Only store write errors and
// input read errors are returned.
func (m *menu) run() error {
	for {
		choice, ok := m.prompt(menuText)
		if !ok {
			break
		}
		choice = strings.TrimSpace(choice)
		m.logger.Debug("menu choice", zap.String("choice", choice))

		var err error
		switch choice {
		case "1":
			err = m.add()
		case "2":
			listContacts(m.w, m.store)
		case "3":
			m.search()
		case "4":
			err = m.update()
		case "5":
			err = m.delete()
		case "0":
			_, _ = fmt.Fprintln(m.w, "Exiting ContactMaster. Bye!")
			return nil
		default:
			_, _ = fmt.Fprintln(m.w, "Invalid option. Try again.")
		}
		if err != nil {
			return err
		}
	}

	if err := m.in.Err(); err != nil {
		return fmt.Errorf("menu: reading input: %w", err)
	}
	_, _ = fmt.Fprintln(m.w)
	_, _ = fmt.Fprintln(m.w, "Exiting ContactMaster. Bye!")
	return nil
}

// ask reads each label in turn, stopping early at end of input.
func (m *menu) ask(labels ...string) ([]string, bool) {
	answers := make([]string, 0, len(labels))
	for _, label := range labels {
		line, ok := m.prompt(label)
		if !ok {
			return nil, false
		}
		answers = append(answers, line)
	}
	return answers, true
}

func (m *menu) add() error {
	a, ok := m.ask("Name: ", "Phone: ", "Email: ")
	if !ok {
		return nil
	}
	return addContact(m.w, m.store, a[0], a[1], a[2])
}

func (m *menu) search() {
	a, ok := m.ask("Search name: ")
	if !ok {
		return
	}
	searchContacts(m.w, m.store, a[0])
}

func (m *menu) update() error {
	a, ok := m.ask(
		"Enter name to update: ",
		"New phone (leave blank to skip): ",
		"New email (leave blank to skip): ",
	)
	if !ok {
		return nil
	}
	return updateContact(m.w, m.store, a[0], a[1], a[2])
}

func (m *menu) delete() error {
	a, ok := m.ask("Enter name to delete: ")
	if !ok {
		return nil
	}
	return deleteContact(m.w, m.store, a[0])
}

// --- Shared command output ---

func addContact(w io.Writer, store *contact.Store, name, phone, email string) error {
	if _, err := store.Add(name, phone, email); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, "Contact saved.")
	return nil
}

func listContacts(w io.Writer, store *contact.Store) {
	contacts := store.List()
	if len(contacts) == 0 {
		_, _ = fmt.Fprintln(w, "No contacts yet.")
		return
	}
	for i, c := range contacts {
		_, _ = fmt.Fprintf(w, "%d. %s\n", i+1, c)
	}
}

func searchContacts(w io.Writer, store *contact.Store, keyword string) {
	results := store.Search(keyword)
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "No match found.")
		return
	}
	_, _ = fmt.Fprintf(w, "Found %d contact(s):\n", len(results))
	for _, c := range results {
		_, _ = fmt.Fprintln(w, c)
	}
}

func updateContact(w io.Writer, store *contact.Store, name, phone, email string) error {
	found, err := store.Update(name, phone, email)
	if err != nil {
		return err
	}
	if !found {
		_, _ = fmt.Fprintln(w, "No contact found with that name.")
		return nil
	}
	_, _ = fmt.Fprintln(w, "Contact updated.")
	return nil
}

func deleteContact(w io.Writer, store *contact.Store, name string) error {
	removed, err := store.Delete(name)
	if err != nil {
		return err
	}
	if removed == 0 {
		_, _ = fmt.Fprintln(w, "No such contact found.")
		return nil
	}
	_, _ = fmt.Fprintln(w, "Contact removed.")
	return nil
}
