package orchestrator

import "github.com/Jawbreaker1/TwentyQBot/internal/game"

// Reporter receives game narration events. The console layer renders them;
// tests use it to observe turn flow.
type Reporter interface {
	// TurnAnswered fires after a question/answer pair is recorded.
	TurnAnswered(st *game.State, question string, answer game.Answer)
	// TransientFailure fires when a turn survives a transport failure and
	// will be re-attempted.
	TransientFailure(stage string, err error)
	// ForcedGuess fires when the question budget is down to the last move.
	ForcedGuess(st *game.State)
	// GuessMade fires before a guess is scored.
	GuessMade(guess string)
	// Resolved fires exactly once, after the winner is set.
	Resolved(st *game.State)
}

type NopReporter struct{}

func (NopReporter) TurnAnswered(*game.State, string, game.Answer) {}
func (NopReporter) TransientFailure(string, error)                {}
func (NopReporter) ForcedGuess(*game.State)                       {}
func (NopReporter) GuessMade(string)                              {}
func (NopReporter) Resolved(*game.State)                          {}
