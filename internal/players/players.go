package players

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Jawbreaker1/TwentyQBot/internal/game"
	"github.com/Jawbreaker1/TwentyQBot/internal/llm"
	"github.com/Jawbreaker1/TwentyQBot/internal/orchestrator"
)

const (
	answerAttempts   = 3
	questionAttempts = 3

	defaultSecretCandidates = 10

	// fallbackQuestion is asked when every generation attempt failed or
	// leaked example objects. Neutral on purpose so it never biases play.
	fallbackQuestion = "Is it something you can hold in your hand?"

	// fallbackSecret is the last resort when the model cannot name an
	// object at all.
	fallbackSecret = "apple"
)

// Options carries the per-seat generation settings shared by all
// model-backed players.
type Options struct {
	Model            string
	MaxOutputTokens  int
	SecretCandidates int
	Log              zerolog.Logger
}

func (o Options) request(system, user string) llm.Request {
	return llm.Request{
		Model: o.Model,
		Input: []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxOutputTokens: o.MaxOutputTokens,
	}
}

// ChooseSecret asks the model for a list of candidate objects and picks one
// uniformly at random, so repeated games do not converge on the model's
// single favourite answer. Falls back to a single-object prompt, then to a
// hard default. Never fails: a game can always start.
func ChooseSecret(ctx context.Context, client llm.Client, opts Options) string {
	n := opts.SecretCandidates
	if n <= 0 {
		n = defaultSecretCandidates
	}

	text, err := client.Complete(ctx, opts.request(secretListSystem, fmt.Sprintf("Propose %d different secret objects.", n)))
	if err != nil {
		opts.Log.Warn().Err(err).Msg("secret candidate list unavailable")
	} else if candidates := parseCandidateList(text); len(candidates) > 0 {
		return candidates[rand.Intn(len(candidates))]
	}

	text, err = client.Complete(ctx, opts.request(secretSingleSystem, "Choose your secret object now."))
	if err != nil {
		opts.Log.Warn().Err(err).Msg("single secret choice unavailable, using fallback object")
		return fallbackSecret
	}
	if secret := strings.TrimSpace(text); secret != "" {
		return secret
	}
	return fallbackSecret
}

// parseCandidateList splits model output into one candidate per line,
// dropping duplicates under normalization while preserving order.
func parseCandidateList(text string) []string {
	seen := map[string]struct{}{}
	var candidates []string
	for _, line := range strings.Split(text, "\n") {
		item := strings.TrimSpace(line)
		norm := game.Normalize(item)
		if norm == "" {
			continue
		}
		if _, ok := seen[norm]; ok {
			continue
		}
		seen[norm] = struct{}{}
		candidates = append(candidates, item)
	}
	return candidates
}

// LLMAnswerer holds the secret and answers yes/no questions about it.
type LLMAnswerer struct {
	Client llm.Client
	Secret string
	Opts   Options
}

// Answer resolves direct "is it a/an/the X" guesses rule-based for
// guaranteed consistency, and otherwise asks the model, retrying a bounded
// number of times for a parseable yes/no. Output received but never
// parseable fails closed to "no"; a transport outage across every attempt
// is the caller's problem.
func (a *LLMAnswerer) Answer(ctx context.Context, _ *game.State, question string) (game.Answer, error) {
	if answer, ok := game.DirectGuessAnswer(a.Secret, question); ok {
		return answer, nil
	}

	req := a.Opts.request(answererSystem, answererUser(a.Secret, question))
	var lastErr error
	gotText := false
	for attempt := 0; attempt < answerAttempts; attempt++ {
		text, err := a.Client.Complete(ctx, req)
		if err != nil {
			lastErr = err
			a.Opts.Log.Warn().Err(err).Int("attempt", attempt+1).Msg("answer generation failed")
			continue
		}
		gotText = true
		if answer, ok := game.ParseYesNo(text); ok {
			return answer, nil
		}
		a.Opts.Log.Debug().Str("output", text).Msg("answer output not a yes/no")
	}
	if !gotText {
		return "", fmt.Errorf("answer question: %w", lastErr)
	}
	return game.No, nil
}

// ConfirmGuess scores a final guess against the held secret.
func (a *LLMAnswerer) ConfirmGuess(_ context.Context, guess string) (bool, error) {
	return game.SameObject(guess, a.Secret), nil
}

// LLMQuestioner generates questions and the forced final guess from the
// recorded history. It never sees the secret.
type LLMQuestioner struct {
	Client llm.Client
	Opts   Options
}

// NextQuestion retries a bounded number of times for a clean question,
// rejecting output that leaks candidate objects as examples. It never
// fails: when every attempt is spent it returns a neutral fallback, so an
// unattended match cannot stall on a flaky transport.
func (q *LLMQuestioner) NextQuestion(ctx context.Context, st *game.State) (orchestrator.Move, error) {
	req := q.Opts.request(questionerSystem, questionerUser(st))
	for attempt := 0; attempt < questionAttempts; attempt++ {
		text, err := q.Client.Complete(ctx, req)
		if err != nil {
			q.Opts.Log.Warn().Err(err).Int("attempt", attempt+1).Msg("question generation failed")
			continue
		}
		question := SanitizeQuestion(text)
		if question == "" || hasLeakedHints(question) {
			q.Opts.Log.Debug().Str("output", text).Msg("question rejected, regenerating")
			continue
		}
		return orchestrator.Move{Kind: orchestrator.MoveQuestion, Text: question}, nil
	}
	return orchestrator.Move{Kind: orchestrator.MoveQuestion, Text: fallbackQuestion}, nil
}

// FinalGuess makes one generation attempt per call; the caller owns the
// retry budget for the forced guess.
func (q *LLMQuestioner) FinalGuess(ctx context.Context, st *game.State) (string, bool, error) {
	text, err := q.Client.Complete(ctx, q.Opts.request(finalGuessSystem, finalGuessUser(st)))
	if err != nil {
		return "", false, err
	}
	guess, ok := game.ParseGuess(text)
	if !ok {
		return "", false, nil
	}
	return guess, true, nil
}
