package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func writeJSON(t *testing.T, path string, payload map[string]any) {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadBuiltInDefaults(t *testing.T) {
	cfg, paths, err := Load("", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(paths) != 0 {
		t.Fatalf("expected no config files loaded, got %v", paths)
	}
	if cfg.Game.MaxQuestions != 20 {
		t.Fatalf("max_questions default mismatch: %d", cfg.Game.MaxQuestions)
	}
	if cfg.LLM.MaxOutputTokens != 512 {
		t.Fatalf("max_output_tokens default mismatch: %d", cfg.LLM.MaxOutputTokens)
	}
}

func TestLoadMergesConfigFiles(t *testing.T) {
	temp := t.TempDir()
	defaultPath := filepath.Join(temp, "default.json")
	profilePath := filepath.Join(temp, "profile.json")

	writeJSON(t, defaultPath, map[string]any{
		"llm": map[string]any{
			"model":           "gpt-5-mini-2025-08-07",
			"timeout_seconds": 45,
		},
		"game": map[string]any{
			"max_questions": 10,
		},
	})

	writeJSON(t, profilePath, map[string]any{
		"game": map[string]any{
			"max_questions": 5,
		},
		"ui": map[string]any{
			"verbose": true,
		},
	})

	cfg, paths, err := Load(defaultPath, profilePath)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 config files, got %v", paths)
	}
	if cfg.Game.MaxQuestions != 5 {
		t.Fatalf("profile should win: got %d", cfg.Game.MaxQuestions)
	}
	if cfg.LLM.TimeoutSeconds != 45 {
		t.Fatalf("timeout mismatch: %d", cfg.LLM.TimeoutSeconds)
	}
	if !cfg.UI.Verbose {
		t.Fatalf("verbose flag lost in merge")
	}
	if cfg.LLM.BaseURL == "" {
		t.Fatalf("built-in default lost in merge")
	}
}

func TestLoadExplicitMissingFileFails(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.json"), "")
	if err == nil {
		t.Fatalf("expected error for missing explicit config path")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIKey, "secret-key")
	t.Setenv(EnvModel, "gpt-5-mini-test")
	t.Setenv(EnvMaxQuestions, "12")

	cfg, _, err := Load("", "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.LLM.APIKey != "secret-key" {
		t.Fatalf("api key not applied from env")
	}
	if cfg.LLM.Model != "gpt-5-mini-test" {
		t.Fatalf("model override not applied")
	}
	if cfg.Game.MaxQuestions != 12 {
		t.Fatalf("max questions override not applied: %d", cfg.Game.MaxQuestions)
	}
}

func TestValidateRequiresAPIKey(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error without api key")
	}
	cfg.LLM.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	cfg.Game.MaxQuestions = 1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for tiny question budget")
	}
}
