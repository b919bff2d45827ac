package orchestrator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Jawbreaker1/TwentyQBot/internal/game"
)

type MoveKind int

const (
	MoveQuestion MoveKind = iota
	MoveGuess
)

// Move is one questioner action during the question phase: either a yes/no
// question or an explicit guess that resolves the game immediately.
type Move struct {
	Kind MoveKind
	Text string
}

// Questioner fills the guessing seat. Implementations are either a human at
// the console or a model-backed generator.
type Questioner interface {
	// NextQuestion produces the next move while question turns remain. It is
	// never invoked on the forced-guess turn, so the last move can never be
	// spent on a question.
	NextQuestion(ctx context.Context, st *game.State) (Move, error)
	// FinalGuess produces the mandatory last-move guess. ok reports whether
	// a syntactically valid guess was extracted; err reports a transport
	// failure. Both cases cost one of the bounded attempts.
	FinalGuess(ctx context.Context, st *game.State) (guess string, ok bool, err error)
}

// Answerer fills the secret-holding seat.
type Answerer interface {
	Answer(ctx context.Context, st *game.State, question string) (game.Answer, error)
	// ConfirmGuess scores a final guess when the secret was kept private and
	// no direct comparison is possible.
	ConfirmGuess(ctx context.Context, guess string) (bool, error)
}

// AnswerFailurePolicy decides what a transport failure from the answerer
// does to the turn in flight.
type AnswerFailurePolicy int

const (
	// RetryTurn reports the failure and re-attempts the same turn. Nothing
	// is recorded, so the turn index does not advance. Used when the
	// questioner seat is interactive and can simply ask again.
	RetryTurn AnswerFailurePolicy = iota
	// FailClosedNo records the turn with a conservative "no".
	FailClosedNo
	// FailMatch aborts the match. Used when the answering seat is a human
	// whose input stream has closed and retrying cannot help.
	FailMatch
)

const finalGuessAttempts = 3

// Game drives one full match from initial state to a declared winner. It is
// the only component that mutates game state.
type Game struct {
	Questioner Questioner
	Answerer   Answerer
	Policy     AnswerFailurePolicy
	// ResolveDirectGuesses ends the game on the spot when a question from an
	// interactive questioner matches the direct-guess pattern and the secret
	// is known. Automated questioners instead get a rule-based yes/no that
	// consumes a turn like any other question.
	ResolveDirectGuesses bool
	Reporter             Reporter
	Log                  zerolog.Logger
}

func (g *Game) Play(ctx context.Context, st *game.State) error {
	if g.Questioner == nil || g.Answerer == nil {
		return fmt.Errorf("both seats must be filled")
	}
	if st == nil {
		return fmt.Errorf("game state is nil")
	}
	rep := g.Reporter
	if rep == nil {
		rep = NopReporter{}
	}

	for !st.Finished {
		if err := ctx.Err(); err != nil {
			return err
		}
		remaining := st.Remaining()
		if remaining <= 0 {
			// The budget is gone with no guess resolved. Defensive: the
			// forced-guess turn below resolves before this can be reached.
			st.Resolve(game.WinnerAnswerer)
			break
		}
		if remaining == 1 {
			if err := g.playForcedGuess(ctx, st, rep); err != nil {
				return err
			}
			continue
		}
		if err := g.playQuestionTurn(ctx, st, rep); err != nil {
			return err
		}
	}

	rep.Resolved(st)
	return nil
}

func (g *Game) playQuestionTurn(ctx context.Context, st *game.State, rep Reporter) error {
	move, err := g.Questioner.NextQuestion(ctx, st)
	if err != nil {
		return fmt.Errorf("obtain question: %w", err)
	}

	if move.Kind == MoveGuess {
		return g.resolveGuess(ctx, st, move.Text, rep)
	}

	question := move.Text
	if g.ResolveDirectGuesses && st.Secret != "" {
		if guess, ok := game.ExtractDirectGuess(question); ok && game.Normalize(guess) != "" {
			return g.resolveGuess(ctx, st, guess, rep)
		}
	}

	answer, ok := game.DirectGuessAnswer(st.Secret, question)
	if !ok {
		answer, err = g.Answerer.Answer(ctx, st, question)
		if err != nil {
			switch g.Policy {
			case FailClosedNo:
				g.Log.Warn().Err(err).Msg("answerer unavailable, failing closed to no")
				answer = game.No
			case FailMatch:
				return fmt.Errorf("obtain answer: %w", err)
			default:
				// Same logical turn is re-attempted; nothing recorded yet.
				rep.TransientFailure("answer", err)
				return nil
			}
		}
	}

	if err := st.RecordTurn(question, answer); err != nil {
		return err
	}
	rep.TurnAnswered(st, question, answer)
	return nil
}

func (g *Game) playForcedGuess(ctx context.Context, st *game.State, rep Reporter) error {
	rep.ForcedGuess(st)
	for attempt := 0; attempt < finalGuessAttempts && !st.Finished; attempt++ {
		guess, ok, err := g.Questioner.FinalGuess(ctx, st)
		if err != nil {
			rep.TransientFailure("final guess", err)
			continue
		}
		if !ok {
			g.Log.Debug().Int("attempt", attempt+1).Msg("final guess output not parseable")
			continue
		}
		return g.resolveGuess(ctx, st, guess, rep)
	}
	// No valid guess produced: the guessing party loses by default.
	st.Resolve(game.WinnerAnswerer)
	return nil
}

func (g *Game) resolveGuess(ctx context.Context, st *game.State, guess string, rep Reporter) error {
	rep.GuessMade(guess)
	var correct bool
	if st.Secret != "" {
		correct = game.SameObject(guess, st.Secret)
	} else {
		var err error
		correct, err = g.Answerer.ConfirmGuess(ctx, guess)
		if err != nil {
			return fmt.Errorf("confirm guess: %w", err)
		}
	}
	if correct {
		st.Resolve(game.WinnerQuestioner)
	} else {
		st.Resolve(game.WinnerAnswerer)
	}
	return nil
}
