package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"

	"github.com/smileynet/pocket/internal/config"
	"github.com/smileynet/pocket/internal/logging"
	"github.com/smileynet/pocket/internal/rps"
	"github.com/smileynet/pocket/internal/tui"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the command structure for rps.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Config  string           `help:"Project config file." default:".pocket/config.yaml" type:"path"`
	NoTUI   bool             `help:"Force plain text output even if stdout is a TTY." default:"false"`
	Seed    uint64           `help:"Seed for the computer's moves (0 picks one at random)." default:"0"`
	Debug   bool             `help:"Log diagnostics to stderr."`
}

// Run resolves config and plays one session on stdin/stdout.
func (c *CLI) Run() error {
	cfg, err := config.Resolve(c.Config)
	if err != nil {
		return fmt.Errorf("rps: %w", err)
	}

	// Apply CLI flag overrides.
	if c.NoTUI {
		cfg.Game.Plain = true
	}
	if c.Debug {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("rps: %w", err)
	}

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("rps: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	display := tui.NewDisplay(tui.DisplayOptions{
		In:         os.Stdin,
		Writer:     os.Stdout,
		ForcePlain: cfg.Game.Plain,
		Picker:     rps.NewRandomPicker(c.Seed),
		Logger:     logger,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return c.run(ctx, os.Stdout, display)
}

// run plays the session and prints the final score, enabling testable wiring.
func (c *CLI) run(ctx context.Context, w io.Writer, display tui.Display) error {
	tally, err := display.Play(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("rps: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Final %s (%d rounds)\n", tally, tally.Rounds())
	return nil
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
		kong.Name("rps"),
		kong.Description("Rock, paper, scissors against the computer."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
