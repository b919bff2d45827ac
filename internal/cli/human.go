package cli

import (
	"context"
	"fmt"

	"github.com/Jawbreaker1/TwentyQBot/internal/game"
	"github.com/Jawbreaker1/TwentyQBot/internal/orchestrator"
)

// HumanQuestioner reads questions and guess commands from the console.
type HumanQuestioner struct {
	Prompter *Prompter
}

func (h *HumanQuestioner) NextQuestion(_ context.Context, st *game.State) (orchestrator.Move, error) {
	prompt := fmt.Sprintf("Question %d of %d (or 'guess: <object>'): ", st.Asked+1, st.MaxQuestions)
	line, err := h.Prompter.ReadNonEmpty(prompt)
	if err != nil {
		return orchestrator.Move{}, err
	}
	if guess, ok := game.ParseGuess(line); ok {
		return orchestrator.Move{Kind: orchestrator.MoveGuess, Text: guess}, nil
	}
	return orchestrator.Move{Kind: orchestrator.MoveQuestion, Text: line}, nil
}

// FinalGuess accepts either a bare object name or a 'guess: <object>' line.
func (h *HumanQuestioner) FinalGuess(_ context.Context, _ *game.State) (string, bool, error) {
	line, err := h.Prompter.ReadNonEmpty("Final guess: ")
	if err != nil {
		return "", false, err
	}
	if guess, ok := game.ParseGuess(line); ok {
		return guess, true, nil
	}
	return line, true, nil
}

// HumanAnswerer answers from the console. When the player keeps the secret
// private, final guesses come back through ConfirmGuess instead of being
// compared automatically.
type HumanAnswerer struct {
	Prompter *Prompter
}

func (h *HumanAnswerer) Answer(_ context.Context, _ *game.State, question string) (game.Answer, error) {
	prompt := fmt.Sprintf("Q: %s\nYour answer (yes/no): ", question)
	for {
		line, err := h.Prompter.ReadNonEmpty(prompt)
		if err != nil {
			return "", err
		}
		if answer, ok := game.ParseYesNo(line); ok {
			return answer, nil
		}
		fmt.Fprintln(h.Prompter.out, "Please answer with 'yes' or 'no'.")
	}
}

func (h *HumanAnswerer) ConfirmGuess(_ context.Context, guess string) (bool, error) {
	return h.Prompter.Confirm(fmt.Sprintf("The final guess is %q. Is that your object?", guess))
}
