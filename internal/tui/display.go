// Package tui renders a rock-paper-scissors session, either as a Bubble Tea
// terminal UI or as the plain line-oriented loop.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"

	"github.com/smileynet/pocket/internal/rps"
)

// Display runs one game session and returns the final tally.
type Display interface {
	Play(ctx context.Context) (rps.Tally, error)
}

// DisplayOptions configures display creation.
type DisplayOptions struct {
	In         io.Reader   // Input source (default: os.Stdin).
	Writer     io.Writer   // Output destination (default: os.Stdout).
	ForcePlain bool        // Force plain text even if TTY.
	Picker     rps.Picker  // Computer opponent (default: time-seeded random).
	Logger     *zap.Logger // Diagnostics (default: no-op).
}

// NewDisplay returns a TUI display when the writer is a TTY, or a plain text
// display otherwise. ForcePlain overrides TTY detection.
func NewDisplay(opts DisplayOptions) Display {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	if opts.Picker == nil {
		opts.Picker = rps.NewRandomPicker(0)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	plain := &PlainDisplay{
		in:      opts.In,
		w:       opts.Writer,
		session: rps.NewSession(opts.Picker, rps.WithLogger(opts.Logger)),
	}
	if opts.ForcePlain || !isTTY(opts.Writer) {
		return plain
	}

	return &TUIDisplay{
		in:       opts.In,
		w:        opts.Writer,
		picker:   opts.Picker,
		logger:   opts.Logger,
		fallback: plain,
	}
}

// isTTY reports whether w is connected to a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// PlainDisplay plays the line-oriented session.
type PlainDisplay struct {
	in      io.Reader
	w       io.Writer
	session *rps.Session
}

// Play runs the session until the player quits, input ends, or ctx is cancelled.
func (d *PlainDisplay) Play(ctx context.Context) (rps.Tally, error) {
	return d.session.Run(ctx, d.in, d.w)
}

// TUIDisplay plays the session in a Bubble Tea program.
// Falls back to PlainDisplay if the TUI program fails to start.
type TUIDisplay struct {
	in       io.Reader
	w        io.Writer
	picker   rps.Picker
	logger   *zap.Logger
	fallback *PlainDisplay
}

// Play starts the Bubble Tea program and returns the tally of the final model.
// If the TUI fails, it falls back to plain text output.
func (d *TUIDisplay) Play(ctx context.Context) (rps.Tally, error) {
	model := NewModel(d.picker, WithLogger(d.logger))
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(d.in),
		tea.WithOutput(d.w),
	)

	final, err := p.Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return tallyOf(final), ctxErr
		}
		d.logger.Warn("tui failed, falling back to plain output", zap.Error(err))
		return d.fallback.Play(ctx)
	}

	m, ok := final.(Model)
	if !ok {
		return rps.Tally{}, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return m.Tally(), nil
}

// tallyOf extracts the tally from a possibly nil final model.
func tallyOf(m tea.Model) rps.Tally {
	if gm, ok := m.(Model); ok {
		return gm.Tally()
	}
	return rps.Tally{}
}
