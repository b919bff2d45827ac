package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"

	"github.com/Jawbreaker1/TwentyQBot/internal/config"
	"github.com/Jawbreaker1/TwentyQBot/internal/game"
	"github.com/Jawbreaker1/TwentyQBot/internal/llm"
	"github.com/Jawbreaker1/TwentyQBot/internal/orchestrator"
	"github.com/Jawbreaker1/TwentyQBot/internal/players"
)

type Mode string

const (
	ModeHumanQuestioner Mode = "You ask, the model answers"
	ModeHumanAnswerer   Mode = "You answer, the model guesses"
	ModeAutoMatch       Mode = "Model vs model"
	ModeQuit            Mode = "Quit"
)

// Runner wires one game mode into a playable match: it fills both seats,
// builds the orchestrator and runs it against a fresh state.
type Runner struct {
	cfg      config.Config
	client   llm.Client
	prompter *Prompter
	out      io.Writer
	log      zerolog.Logger
}

func NewRunner(cfg config.Config, client llm.Client, in io.Reader, out io.Writer, log zerolog.Logger) *Runner {
	if cfg.UI.Verbose {
		log = log.Level(zerolog.DebugLevel)
	}
	return &Runner{
		cfg:      cfg,
		client:   client,
		prompter: NewPrompter(in, out),
		out:      out,
		log:      log,
	}
}

// Run loops the mode menu, playing one match per pick, until Quit.
func (r *Runner) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions([]string{
				string(ModeHumanQuestioner),
				string(ModeHumanAnswerer),
				string(ModeAutoMatch),
				string(ModeQuit),
			}).
			WithDefaultText("Pick a game mode").
			Show()
		if err != nil {
			return fmt.Errorf("select game mode: %w", err)
		}
		if Mode(choice) == ModeQuit {
			return nil
		}
		if err := r.RunMode(ctx, Mode(choice)); err != nil {
			return err
		}
		pterm.Println()
	}
}

func (r *Runner) RunMode(ctx context.Context, mode Mode) error {
	switch mode {
	case ModeHumanQuestioner:
		return r.runHumanQuestioner(ctx)
	case ModeHumanAnswerer:
		return r.runHumanAnswerer(ctx)
	case ModeAutoMatch:
		return r.runAutoMatch(ctx)
	case ModeQuit:
		return nil
	default:
		return fmt.Errorf("unknown game mode %q", mode)
	}
}

func (r *Runner) genOptions() players.Options {
	return players.Options{
		Model:            r.cfg.LLM.Model,
		MaxOutputTokens:  r.cfg.LLM.MaxOutputTokens,
		SecretCandidates: r.cfg.Game.SecretCandidates,
		Log:              r.log,
	}
}

func (r *Runner) newState(secret string) *game.State {
	st := game.NewState(secret)
	if r.cfg.Game.MaxQuestions > 0 {
		st.MaxQuestions = r.cfg.Game.MaxQuestions
	}
	return st
}

func (r *Runner) runHumanQuestioner(ctx context.Context) error {
	pterm.Info.WithWriter(r.out).Println("The model is picking a secret object. Ask yes/no questions; your last move must be a guess.")
	pterm.Info.WithWriter(r.out).Println("Direct questions like 'Is it an apple?' count as guesses and end the game.")

	secret := players.ChooseSecret(ctx, r.client, r.genOptions())
	r.log.Debug().Msg("secret object selected")

	g := &orchestrator.Game{
		Questioner:           &HumanQuestioner{Prompter: r.prompter},
		Answerer:             &players.LLMAnswerer{Client: r.client, Secret: secret, Opts: r.genOptions()},
		Policy:               orchestrator.RetryTurn,
		ResolveDirectGuesses: true,
		Reporter:             NewConsoleReporter(r.out, true),
		Log:                  r.log,
	}
	return g.Play(ctx, r.newState(secret))
}

func (r *Runner) runHumanAnswerer(ctx context.Context) error {
	secret, err := r.prompter.ReadLine("Think of an object. Type it to enable consistency checks, or press Enter to keep it private: ")
	if err == io.EOF && secret == "" {
		return fmt.Errorf("input closed")
	}
	if err != nil && err != io.EOF {
		return err
	}

	g := &orchestrator.Game{
		Questioner: &players.LLMQuestioner{Client: r.client, Opts: r.genOptions()},
		Answerer:   &HumanAnswerer{Prompter: r.prompter},
		Policy:     orchestrator.FailMatch,
		Reporter:   NewConsoleReporter(r.out, false),
		Log:        r.log,
	}
	return g.Play(ctx, r.newState(secret))
}

func (r *Runner) runAutoMatch(ctx context.Context) error {
	secret := players.ChooseSecret(ctx, r.client, r.genOptions())
	pterm.Info.WithWriter(r.out).Printfln("Secret object (spectator view): %s", secret)

	g := &orchestrator.Game{
		Questioner: &players.LLMQuestioner{Client: r.client, Opts: r.genOptions()},
		Answerer:   &players.LLMAnswerer{Client: r.client, Secret: secret, Opts: r.genOptions()},
		Policy:     orchestrator.FailClosedNo,
		Reporter:   NewConsoleReporter(r.out, true),
		Log:        r.log,
	}
	return g.Play(ctx, r.newState(secret))
}
