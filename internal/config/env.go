package config

import (
	"os"
	"strconv"
	"strings"
)

const (
	EnvAPIKey          = "CANDIDATE_API_KEY"
	EnvBaseURL         = "TWENTYQBOT_BASE_URL"
	EnvModel           = "TWENTYQBOT_MODEL"
	EnvMaxOutputTokens = "TWENTYQBOT_MAX_OUTPUT_TOKENS"
	EnvMaxQuestions    = "TWENTYQBOT_MAX_QUESTIONS"
)

// applyEnv layers environment overrides on top of the merged file config.
// The transport credential only ever comes from the environment.
func applyEnv(cfg *Config) {
	if v, ok := readEnvString(EnvAPIKey); ok {
		cfg.LLM.APIKey = v
	}
	if v, ok := readEnvString(EnvBaseURL); ok {
		cfg.LLM.BaseURL = v
	}
	if v, ok := readEnvString(EnvModel); ok {
		cfg.LLM.Model = v
	}
	if v, ok := readEnvInt(EnvMaxOutputTokens); ok && v > 0 {
		cfg.LLM.MaxOutputTokens = v
	}
	if v, ok := readEnvInt(EnvMaxQuestions); ok && v > 0 {
		cfg.Game.MaxQuestions = v
	}
}

func readEnvString(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return "", false
	}
	return raw, true
}

func readEnvInt(key string) (int, bool) {
	raw, ok := readEnvString(key)
	if !ok {
		return 0, false
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return parsed, true
}
