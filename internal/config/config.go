package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Config struct {
	LLM struct {
		BaseURL         string `json:"base_url"`
		Model           string `json:"model"`
		APIKey          string `json:"api_key"`
		TimeoutSeconds  int    `json:"timeout_seconds"`
		MaxOutputTokens int    `json:"max_output_tokens"`
		MaxFailures     int    `json:"max_failures"`
		CooldownSeconds int    `json:"cooldown_seconds"`
	} `json:"llm"`
	Game struct {
		MaxQuestions     int `json:"max_questions"`
		SecretCandidates int `json:"secret_candidates"`
	} `json:"game"`
	UI struct {
		Verbose bool `json:"verbose"`
	} `json:"ui"`
}

func Default() Config {
	cfg := Config{}
	cfg.LLM.BaseURL = "https://candidate-llm.extraction.artificialos.com/v1"
	cfg.LLM.Model = "gpt-5-mini-2025-08-07"
	cfg.LLM.TimeoutSeconds = 30
	cfg.LLM.MaxOutputTokens = 512
	cfg.LLM.MaxFailures = 3
	cfg.LLM.CooldownSeconds = 60
	cfg.Game.MaxQuestions = 20
	cfg.Game.SecretCandidates = 10
	return cfg
}

func DefaultPath() string {
	return filepath.Join("config", "default.json")
}

func ProfilePath(profile string) string {
	return filepath.Join("config", "profiles", profile+".json")
}

// Load resolves the effective configuration: built-in defaults, then the
// default config file, then an optional profile, with environment
// overrides applied last. File paths the caller supplied explicitly must
// exist; the conventional default path may be absent.
func Load(defaultPath, profilePath string) (Config, []string, error) {
	paths := []string{}
	merged := map[string]any{}

	base, err := json.Marshal(Default())
	if err != nil {
		return Config{}, paths, fmt.Errorf("marshal default config: %w", err)
	}
	if err := json.Unmarshal(base, &merged); err != nil {
		return Config{}, paths, fmt.Errorf("unmarshal default config: %w", err)
	}

	required := defaultPath != ""
	if defaultPath == "" {
		defaultPath = DefaultPath()
	}
	loaded, err := mergeFile(merged, defaultPath, required)
	if err != nil {
		return Config{}, paths, err
	}
	if loaded {
		paths = append(paths, defaultPath)
	}

	if profilePath != "" {
		if _, err := mergeFile(merged, profilePath, true); err != nil {
			return Config{}, paths, err
		}
		paths = append(paths, profilePath)
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return Config{}, paths, fmt.Errorf("marshal merged config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, paths, fmt.Errorf("unmarshal merged config: %w", err)
	}

	applyEnv(&cfg)
	return cfg, paths, nil
}

// Validate catches configuration errors before any game state exists.
func (cfg Config) Validate() error {
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("CANDIDATE_API_KEY is not set; set it in your environment or .env file")
	}
	if cfg.LLM.BaseURL == "" {
		return fmt.Errorf("llm base URL is empty")
	}
	if cfg.LLM.Model == "" {
		return fmt.Errorf("llm model is empty")
	}
	if cfg.Game.MaxQuestions < 2 {
		return fmt.Errorf("max_questions must be at least 2, got %d", cfg.Game.MaxQuestions)
	}
	return nil
}

func mergeFile(dst map[string]any, path string, required bool) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return false, nil
		}
		return false, fmt.Errorf("config file not found: %s", path)
	}
	if info.IsDir() {
		return false, fmt.Errorf("config path is a directory: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("read config: %s: %w", path, err)
	}
	var src map[string]any
	if err := json.Unmarshal(data, &src); err != nil {
		return false, fmt.Errorf("parse config: %s: %w", path, err)
	}
	deepMerge(dst, src)
	return true, nil
}

func deepMerge(dst, src map[string]any) {
	for key, value := range src {
		srcMap, ok := value.(map[string]any)
		if !ok {
			dst[key] = value
			continue
		}
		if existing, ok := dst[key]; ok {
			if existingMap, ok := existing.(map[string]any); ok {
				deepMerge(existingMap, srcMap)
				continue
			}
		}
		newMap := map[string]any{}
		deepMerge(newMap, srcMap)
		dst[key] = newMap
	}
}
