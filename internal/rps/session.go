package rps

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Session runs the line-oriented game loop used when no terminal UI is available.
type Session struct {
	game   *Game
	logger *zap.Logger
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLogger sets the diagnostic logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) SessionOption {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSession creates a Session playing against p.
func NewSession(p Picker, opts ...SessionOption) *Session {
	s := &Session{game: NewGame(p), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run reads moves from in until "q" or end of input, writing prompts and results to w.
// It returns the final tally. If ctx is cancelled while waiting for a move, Run
// returns the tally so far with ctx's error. Otherwise only read errors are returned.
func (s *Session) Run(ctx context.Context, in io.Reader, w io.Writer) (Tally, error) {
	_, _ = fmt.Fprintln(w, "=== Let's play Rock, Paper, Scissors! ===")
	_, _ = fmt.Fprintln(w, "Type 'r' for Rock, 'p' for Paper, 's' for Scissors. 'q' to quit.")
	_, _ = fmt.Fprintln(w)

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(in, done)

	for {
		if err := ctx.Err(); err != nil {
			return s.game.Tally(), err
		}
		_, _ = fmt.Fprint(w, "Your move [r/p/s/q]: ")

		var line string
		var ok bool
		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(w)
			s.logger.Debug("session cancelled", zap.Error(ctx.Err()))
			return s.game.Tally(), ctx.Err()
		case line, ok = <-lines:
		}
		if !ok {
			if err := <-readErr; err != nil {
				return s.game.Tally(), fmt.Errorf("rps: reading input: %w", err)
			}
			_, _ = fmt.Fprintln(w)
			break
		}

		token := strings.TrimSpace(line)
		if strings.EqualFold(token, "q") {
			break
		}

		move, ok := ParseMove(token)
		if !ok {
			s.logger.Debug("invalid move", zap.String("input", token))
			_, _ = fmt.Fprintln(w, "Invalid input. Try again.")
			continue
		}

		round := s.game.Play(move)
		s.logger.Debug("round played",
			zap.Stringer("player", round.Player),
			zap.Stringer("computer", round.Computer),
			zap.String("outcome", string(round.Outcome)))

		_, _ = fmt.Fprintf(w, "Computer chose: %s\n", round.Computer)
		_, _ = fmt.Fprintln(w, round.Outcome.Message())
		_, _ = fmt.Fprintf(w, "%s\n\n", s.game.Tally())
	}

	_, _ = fmt.Fprintln(w, "Thanks for playing!")
	return s.game.Tally(), nil
}

// readLines scans in on its own goroutine. lines is closed at end of input, after
// the scanner error (nil at EOF) is sent on the error channel. Closing done stops
// delivery.
func readLines(in io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
