package cli

import (
	"io"
	"strings"

	"github.com/pterm/pterm"

	"github.com/Jawbreaker1/TwentyQBot/internal/game"
)

// ConsoleReporter renders game events for the console. revealSecret is off
// when the person at the keyboard is the one holding the secret.
type ConsoleReporter struct {
	info         pterm.PrefixPrinter
	warn         pterm.PrefixPrinter
	success      pterm.PrefixPrinter
	failure      pterm.PrefixPrinter
	revealSecret bool
}

func NewConsoleReporter(out io.Writer, revealSecret bool) *ConsoleReporter {
	return &ConsoleReporter{
		info:         *pterm.Info.WithWriter(out),
		warn:         *pterm.Warning.WithWriter(out),
		success:      *pterm.Success.WithWriter(out),
		failure:      *pterm.Error.WithWriter(out),
		revealSecret: revealSecret,
	}
}

func (r *ConsoleReporter) TurnAnswered(st *game.State, question string, answer game.Answer) {
	r.info.Printfln("%d/%d  %s  %s", st.Asked, st.MaxQuestions, question, strings.ToUpper(string(answer)))
}

func (r *ConsoleReporter) TransientFailure(stage string, err error) {
	r.warn.Printfln("Temporary %s failure (%v), trying again.", stage, err)
}

func (r *ConsoleReporter) ForcedGuess(*game.State) {
	r.info.Println("No questions left. Time for the final guess.")
}

func (r *ConsoleReporter) GuessMade(guess string) {
	r.info.Printfln("Guess: %s", guess)
}

func (r *ConsoleReporter) Resolved(st *game.State) {
	switch st.Winner {
	case game.WinnerQuestioner:
		r.success.Println("The questioner wins!")
	default:
		r.failure.Println("The answerer wins!")
	}
	if r.revealSecret && st.Secret != "" {
		r.info.Printfln("The secret object was: %s", st.Secret)
	}
}
