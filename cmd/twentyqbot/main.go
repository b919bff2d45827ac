package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
	"github.com/rs/zerolog"

	"github.com/Jawbreaker1/TwentyQBot/internal/cli"
	"github.com/Jawbreaker1/TwentyQBot/internal/config"
	"github.com/Jawbreaker1/TwentyQBot/internal/llm"
)

const version = "0.0.0-dev"

func main() {
	var (
		showVersion bool
		configPath  string
		profileName string
		debug       bool
	)

	flag.BoolVar(&showVersion, "version", false, "Print version")
	flag.StringVar(&configPath, "config", "", "Path to default config JSON")
	flag.StringVar(&profileName, "profile", "", "Profile name under config/profiles/")
	flag.BoolVar(&debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("TwentyQBot %s\n", version)
		return
	}

	_ = godotenv.Load()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		With().Timestamp().Logger().Level(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}
	if debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	profilePath := ""
	if profileName != "" {
		profilePath = config.ProfilePath(profileName)
	}

	cfg, paths, err := config.Load(configPath, profilePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("config load failed")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("config invalid")
	}
	logger.Debug().Strs("files", paths).Msg("config loaded")

	banner, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Twenty", pterm.FgCyan.ToStyle()),
		putils.LettersFromStringWithStyle("Q", pterm.FgLightMagenta.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(banner)
	}
	pterm.Println()

	client := llm.NewGuardedClient(
		llm.NewResponsesClient(cfg),
		cfg.LLM.MaxFailures,
		time.Duration(cfg.LLM.CooldownSeconds)*time.Second,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner := cli.NewRunner(cfg, client, os.Stdin, os.Stdout, logger)
	if err := runner.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("game exited")
	}
}
