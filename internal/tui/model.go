package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/smileynet/pocket/internal/rps"
)

// Model is the Bubble Tea model for an interactive game session.
type Model struct {
	picker   rps.Picker
	tally    rps.Tally
	last     *rps.Round
	invalid  bool
	quitting bool
	keys     keyMap
	help     help.Model
	logger   *zap.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewModel creates a Model with a zero tally playing against p.
func NewModel(p rps.Picker, opts ...ModelOption) Model {
	m := Model{
		picker: p,
		keys:   GameKeyMap(),
		help:   help.New(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Tally returns the score so far.
func (m Model) Tally() rps.Tally {
	return m.tally
}

// Init has no startup command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles key presses and window resizes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Rock):
			return m.play(rps.Rock), nil
		case key.Matches(msg, m.keys.Paper):
			return m.play(rps.Paper), nil
		case key.Matches(msg, m.keys.Scissors):
			return m.play(rps.Scissors), nil
		default:
			m.logger.Debug("invalid move", zap.String("key", msg.String()))
			m.invalid = true
			return m, nil
		}
	}

	return m, nil
}

// play resolves one round and records it.
func (m Model) play(player rps.Move) Model {
	round := rps.Resolve(player, m.picker)
	m.tally.Record(round.Outcome)
	m.last = &round
	m.invalid = false
	m.logger.Debug("round played",
		zap.Stringer("player", round.Player),
		zap.Stringer("computer", round.Computer),
		zap.String("outcome", string(round.Outcome)))
	return m
}

// View renders the last round, the score and the help bar.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Rock, Paper, Scissors"))
	b.WriteString("\n\n")

	if m.quitting {
		b.WriteString(scoreStyle.Render(m.tally.String()))
		b.WriteString("\nThanks for playing!\n")
		return b.String()
	}

	switch {
	case m.invalid:
		b.WriteString(warnStyle.Render("Invalid input. Try again."))
		b.WriteString("\n\n")
	case m.last != nil:
		b.WriteString("You chose: " + m.last.Player.String() + "\n")
		b.WriteString("Computer chose: " + m.last.Computer.String() + "\n")
		b.WriteString(OutcomeBadge(m.last.Outcome))
		b.WriteString("\n\n")
	default:
		b.WriteString(dimStyle.Render("Make your move."))
		b.WriteString("\n\n")
	}

	b.WriteString(scoreStyle.Render(m.tally.String()))
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}
