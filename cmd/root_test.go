package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/ai/gemini"
)

func TestLoadEnvFile(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing env file must be ignored, got %v", err)
	}
	if err := loadEnvFile("  "); err != nil {
		t.Fatalf("empty path must be ignored, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("MARS_EVAL_TEST_DOTENV=from-file\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("MARS_EVAL_TEST_DOTENV") })

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("MARS_EVAL_TEST_DOTENV"); got != "from-file" {
		t.Fatalf("expected variable from env file, got %q", got)
	}
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if config.Output == nil || config.Output.Format != formatJSON {
		t.Fatalf("unexpected output defaults: %+v", config.Output)
	}
	if config.Screening == nil || !config.Screening.SelectedOnly || config.Screening.MinimumScore != 0 {
		t.Fatalf("unexpected screening defaults: %+v", config.Screening)
	}
	if config.AI == nil || config.AI.Enabled || config.AI.Gemini == nil {
		t.Fatalf("unexpected ai defaults: %+v", config.AI)
	}
	if config.AI.Gemini.Model != gemini.DefaultModel || config.AI.Gemini.MaxRetries != 3 || config.AI.Gemini.MaxLogLength != 200 {
		t.Fatalf("unexpected gemini defaults: %+v", config.AI.Gemini)
	}
}

func TestEnvironmentOverridesDefaults(t *testing.T) {
	t.Setenv("MARS_EVAL_SCREENING_MINIMUM_SCORE", "70")
	t.Setenv("MARS_EVAL_AI_GEMINI_API_KEY", "secret")

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if config.Screening.MinimumScore != 70 {
		t.Fatalf("expected minimum score from env, got %d", config.Screening.MinimumScore)
	}
	if config.AI.Gemini.APIKey != "secret" {
		t.Fatalf("expected api key from env, got %q", config.AI.Gemini.APIKey)
	}
}

func TestScreeningConfig(t *testing.T) {
	t.Parallel()

	cfg := screeningConfig(&Config{
		Screening: &ScreeningConfig{SelectedOnly: true, MinimumScore: 65, Roles: []string{"Chief Engineer"}, ExcludeFile: "ex.yaml"},
		AI:        &AIConfig{Enabled: true, Provider: "gemini", Gemini: &GeminiConfig{Model: "m", MaxRetries: 2, MaxLogLength: 50}},
	})

	if !cfg.SelectedOnly || cfg.MinimumScore != 65 || cfg.ExcludeFile != "ex.yaml" || len(cfg.Roles) != 1 {
		t.Fatalf("unexpected screening config: %+v", cfg)
	}
	if cfg.AI == nil || cfg.AI.Gemini == nil || cfg.AI.Gemini.Model != "m" || cfg.AI.Gemini.MaxRetries != 2 {
		t.Fatalf("unexpected ai config: %+v", cfg.AI)
	}

	if empty := screeningConfig(&Config{}); empty.AI != nil || empty.SelectedOnly {
		t.Fatalf("expected zero config, got %+v", empty)
	}
}

func TestNewDebrieferErrors(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	tests := []struct {
		name    string
		cfg     *AIConfig
		errPart string
	}{
		{name: "nil config", cfg: nil, errPart: errAIDisabled.Error()},
		{name: "disabled", cfg: &AIConfig{Gemini: &GeminiConfig{}}, errPart: errAIDisabled.Error()},
		{name: "unknown provider", cfg: &AIConfig{Enabled: true, Provider: "openai"}, errPart: "unsupported ai provider"},
		{name: "no gemini section", cfg: &AIConfig{Enabled: true}, errPart: "gemini configuration is required"},
		{name: "no api key", cfg: &AIConfig{Enabled: true, Gemini: &GeminiConfig{Model: "m"}}, errPart: "GEMINI_API_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newDebriefer(context.Background(), tt.cfg, zap.NewNop())
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}

	_, err := newDebriefer(context.Background(), nil, zap.NewNop())
	if !errors.Is(err, errAIDisabled) {
		t.Fatalf("expected errAIDisabled, got %v", err)
	}
}

func TestHandleActionExit(t *testing.T) {
	t.Parallel()

	if err := handleAction(PromptExit, zap.NewNop(), &Config{}, nil); !errors.Is(err, errExit) {
		t.Fatalf("expected errExit, got %v", err)
	}
	if err := handleAction("Dance", zap.NewNop(), &Config{}, nil); err == nil {
		t.Fatalf("expected error for unknown action")
	}
}
