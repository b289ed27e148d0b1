// Package rps implements rock-paper-scissors: moves, round resolution, a random
// opponent and the session score tally.
package rps

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Move is a rock-paper-scissors hand. The zero value is not a valid move.
type Move int

const (
	Rock Move = iota + 1
	Paper
	Scissors
)

// Moves lists every valid move.
var Moves = [...]Move{Rock, Paper, Scissors}

var moveNames = map[Move]string{
	Rock:     "Rock",
	Paper:    "Paper",
	Scissors: "Scissors",
}

// beats maps each move to the move it defeats.
var beats = map[Move]Move{
	Rock:     Scissors,
	Scissors: Paper,
	Paper:    Rock,
}

// String returns the display name of the move.
func (m Move) String() string {
	if name, ok := moveNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Move(%d)", int(m))
}

// ParseMove maps "r", "p" or "s" (any case, surrounding space ignored) to a Move.
func ParseMove(token string) (Move, bool) {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "r":
		return Rock, true
	case "p":
		return Paper, true
	case "s":
		return Scissors, true
	default:
		return 0, false
	}
}

// Outcome is the result of one round from the player's point of view.
type Outcome string

const (
	Draw         Outcome = "draw"
	PlayerWins   Outcome = "player"
	ComputerWins Outcome = "computer"
)

// Message returns the line announcing the outcome.
func (o Outcome) Message() string {
	switch o {
	case Draw:
		return "It's a draw!"
	case PlayerWins:
		return "You win!"
	case ComputerWins:
		return "Computer wins!"
	default:
		return string(o)
	}
}

// Winner resolves a round.
func Winner(player, computer Move) Outcome {
	if player == computer {
		return Draw
	}
	if beats[player] == computer {
		return PlayerWins
	}
	return ComputerWins
}

// Picker chooses the computer's move.
type Picker interface {
	Pick() Move
}

// RandomPicker picks uniformly among the three moves.
type RandomPicker struct {
	r *rand.Rand
}

// NewRandomPicker returns a picker seeded with seed. A zero seed draws a random one.
func NewRandomPicker(seed uint64) *RandomPicker {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &RandomPicker{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Pick returns the next move.
func (p *RandomPicker) Pick() Move {
	return Moves[p.r.IntN(len(Moves))]
}

// PickerFunc adapts a function to Picker.
type PickerFunc func() Move

// Pick calls f.
func (f PickerFunc) Pick() Move { return f() }

// Tally counts round outcomes for one session.
type Tally struct {
	Player   int
	Computer int
	Draws    int
}

// Record counts one resolved round.
func (t *Tally) Record(o Outcome) {
	switch o {
	case PlayerWins:
		t.Player++
	case ComputerWins:
		t.Computer++
	case Draw:
		t.Draws++
	}
}

// Rounds returns the number of rounds recorded.
func (t Tally) Rounds() int {
	return t.Player + t.Computer + t.Draws
}

// String renders the score line.
func (t Tally) String() string {
	return fmt.Sprintf("Scores -> You: %d | Computer: %d | Draws: %d", t.Player, t.Computer, t.Draws)
}

// Round is one resolved round.
type Round struct {
	Player   Move
	Computer Move
	Outcome  Outcome
}

// Resolve draws the picker's move and decides the round against player.
// player must be a valid move; use ParseMove to obtain one.
func Resolve(player Move, p Picker) Round {
	computer := p.Pick()
	return Round{Player: player, Computer: computer, Outcome: Winner(player, computer)}
}

// Game ties a picker to a running tally for the line-oriented session.
// The TUI model is a value type, so it calls Resolve and keeps its own Tally.
type Game struct {
	picker Picker
	tally  Tally
}

// NewGame returns a Game with a zero tally.
func NewGame(p Picker) *Game {
	return &Game{picker: p}
}

// Play resolves one round with Resolve and records it.
func (g *Game) Play(player Move) Round {
	r := Resolve(player, g.picker)
	g.tally.Record(r.Outcome)
	return r
}

// Tally returns the current score.
func (g *Game) Tally() Tally {
	return g.tally
}
