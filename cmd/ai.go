package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/ai"
	"github.com/spigell/mars-eval/internal/ai/gemini"
	"github.com/spigell/mars-eval/internal/logger"
	"github.com/spigell/mars-eval/internal/screening"
	"github.com/spigell/mars-eval/internal/secrets"
)

const providerGemini = "gemini"

var errAIDisabled = errors.New("ai is disabled in the configuration")

// newDebriefer builds the configured debriefer or returns errAIDisabled.
func newDebriefer(ctx context.Context, cfg *AIConfig, log *zap.Logger) (ai.Debriefer, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errAIDisabled
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	if provider != "" && provider != providerGemini {
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}

	if cfg.Gemini == nil {
		return nil, errors.New("gemini configuration is required when ai is enabled")
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name:  "gemini api key",
		File:  cfg.Gemini.APIKeyFile,
		Value: cfg.Gemini.APIKey,
		Env:   []string{"GEMINI_API_KEY"},
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set ai.gemini.api-key-file, %s_AI_GEMINI_API_KEY or GEMINI_API_KEY)", err, envPrefix)
	}

	aiLogger := logger.WithCommonFields(log, providerGemini, cfg.Gemini.Model)

	generator, err := gemini.NewGenerator(ctx, apiKey, cfg.Gemini.Model, cfg.Gemini.MaxRetries,
		aiLogger.With(zap.Int("ai_retry_attempts", cfg.Gemini.MaxRetries)))
	if err != nil {
		return nil, err
	}

	return gemini.NewDebriefer(generator, cfg.Gemini.MaxLogLength, aiLogger), nil
}

func screeningConfig(cfg *Config) *screening.Config {
	out := &screening.Config{}
	if cfg.Screening != nil {
		out.SelectedOnly = cfg.Screening.SelectedOnly
		out.MinimumScore = cfg.Screening.MinimumScore
		out.Roles = cfg.Screening.Roles
		out.ExcludeFile = cfg.Screening.ExcludeFile
	}

	if cfg.AI != nil {
		out.AI = &screening.AIConfig{
			Enabled:  cfg.AI.Enabled,
			Provider: cfg.AI.Provider,
		}
		if cfg.AI.Gemini != nil {
			out.AI.Gemini = &screening.GeminiConfig{
				Model:        cfg.AI.Gemini.Model,
				MaxRetries:   cfg.AI.Gemini.MaxRetries,
				MaxLogLength: cfg.AI.Gemini.MaxLogLength,
			}
		}
	}

	return out
}
