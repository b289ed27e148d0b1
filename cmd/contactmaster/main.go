package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/pocket/internal/config"
	"github.com/smileynet/pocket/internal/contact"
	"github.com/smileynet/pocket/internal/logging"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Globals are flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Project config file." default:".pocket/config.yaml" type:"path"`
	File    string           `help:"Contact file (overrides config)." short:"f" type:"path"`
	Debug   bool             `help:"Log diagnostics to stderr."`
}

// CLI is the top-level command structure for contactmaster.
type CLI struct {
	Globals

	Menu   MenuCmd   `cmd:"" default:"1" help:"Open the interactive menu (default)."`
	Add    AddCmd    `cmd:"" help:"Add a contact."`
	List   ListCmd   `cmd:"" help:"List all contacts."`
	Search SearchCmd `cmd:"" help:"Search contacts by name."`
	Update UpdateCmd `cmd:"" help:"Update a contact's phone or email."`
	Delete DeleteCmd `cmd:"" help:"Delete every contact with a name."`
}

// openStore resolves config, builds the logger, and loads the contact store.
// A malformed contact file is reported to w and the store starts empty.
func (g *Globals) openStore(w io.Writer) (*contact.Store, *zap.Logger, error) {
	cfg, err := config.Resolve(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.File != "" {
		cfg.Contacts.File = g.File
	}
	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}

	store := contact.NewStore(cfg.Contacts.File, contact.WithLogger(logger))
	if err := loadStore(w, store); err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return store, logger, nil
}

// loadStore loads store, downgrading a malformed file to a warning.
func loadStore(w io.Writer, store *contact.Store) error {
	err := store.Load()
	if errors.Is(err, contact.ErrMalformed) {
		_, _ = fmt.Fprintln(w, "warning: couldn't read contact file, starting fresh")
		return nil
	}
	return err
}

// MenuCmd runs the interactive numbered menu.
type MenuCmd struct{}

// Run opens the store and runs the menu on stdin/stdout.
func (c *MenuCmd) Run(g *Globals) error {
	store, logger, err := g.openStore(os.Stdout)
	if err != nil {
		return fmt.Errorf("menu: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return newMenu(store, os.Stdin, os.Stdout, logger).run()
}

// AddCmd appends a contact.
type AddCmd struct {
	Name  string `arg:"" help:"Contact name."`
	Phone string `arg:"" help:"Phone number."`
	Email string `arg:"" help:"Email address."`
}

// Run executes the add command.
func (c *AddCmd) Run(g *Globals) error {
	store, logger, err := g.openStore(os.Stdout)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	return c.run(os.Stdout, store)
}

func (c *AddCmd) run(w io.Writer, store *contact.Store) error {
	return addContact(w, store, c.Name, c.Phone, c.Email)
}

// ListCmd prints every contact.
type ListCmd struct{}

// Run executes the list command.
func (c *ListCmd) Run(g *Globals) error {
	store, logger, err := g.openStore(os.Stdout)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	listContacts(os.Stdout, store)
	return nil
}

// SearchCmd prints contacts whose name contains a keyword.
type SearchCmd struct {
	Keyword string `arg:"" help:"Case-insensitive name fragment."`
}

// Run executes the search command.
func (c *SearchCmd) Run(g *Globals) error {
	store, logger, err := g.openStore(os.Stdout)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	searchContacts(os.Stdout, store, c.Keyword)
	return nil
}

// UpdateCmd changes the phone and/or email of the first contact with a name.
type UpdateCmd struct {
	Name  string `arg:"" help:"Contact name (case-insensitive)."`
	Phone string `help:"New phone number."`
	Email string `help:"New email address."`
}

// Run executes the update command.
func (c *UpdateCmd) Run(g *Globals) error {
	store, logger, err := g.openStore(os.Stdout)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	return c.run(os.Stdout, store)
}

func (c *UpdateCmd) run(w io.Writer, store *contact.Store) error {
	return updateContact(w, store, c.Name, c.Phone, c.Email)
}

// DeleteCmd removes every contact with a name.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name (case-insensitive)."`
}

// Run executes the delete command.
func (c *DeleteCmd) Run(g *Globals) error {
	store, logger, err := g.openStore(os.Stdout)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	return c.run(os.Stdout, store)
}

func (c *DeleteCmd) run(w io.Writer, store *contact.Store) error {
	return deleteContact(w, store, c.Name)
}

// Exit codes.
const (
	exitSuccess = 0
	exitFailure = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, config.ErrInvalid) {
		return exitSetup
	}
	return exitFailure
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("contactmaster"),
		kong.Description("A persistent contact book."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
