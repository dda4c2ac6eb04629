package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/ai"
	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/logger"
	"github.com/spigell/mars-eval/internal/scoring"
	"github.com/spigell/mars-eval/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
}

//go:embed prompt.md
var systemPrompt string

const (
	defaultMaxLogLength = 200
	maxListItems        = 3
)

// Debriefer asks Gemini to narrate an already computed assessment.
type Debriefer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

var _ ai.Debriefer = (*Debriefer)(nil)

func NewDebriefer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Debriefer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Debriefer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

func (d *Debriefer) Debrief(ctx context.Context, record *candidate.Record, assessment scoring.Assessment) (*ai.Debrief, error) {
	if record == nil {
		return nil, errors.New("candidate record is required")
	}
	if d.generator == nil {
		return nil, errors.New("content generator is not configured")
	}

	_, awards := scoring.Trace(record)
	payload := map[string]any{
		"candidate":  record,
		"assessment": assessment,
		"awards":     awards,
	}

	message, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal debrief payload: %w", err)
	}

	log := logger.WithCandidate(d.logger, record)
	log.Debug("gemini debrief request",
		zap.Int("prompt_length", utf8.RuneCount(message)),
		zap.String("prompt_preview", utils.TruncateForLog(string(message), d.maxLogLen)),
	)

	raw, err := d.generator.GenerateContent(ctx, systemPrompt, string(message))
	if err != nil {
		return nil, err
	}

	log.Debug("gemini debrief response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, d.maxLogLen)),
	)

	debrief, err := parseResponse(raw)
	if err != nil {
		return nil, err
	}

	debrief.Raw = raw
	return debrief, nil
}

func parseResponse(raw string) (*ai.Debrief, error) {
	var data map[string]any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	debrief := &ai.Debrief{
		Summary:   coerceString(data["summary"]),
		Strengths: coerceStrings(data["strengths"]),
		Risks:     coerceStrings(data["risks"]),
	}

	if debrief.Summary == "" {
		return nil, errors.New("gemini response has no summary")
	}

	return debrief, nil
}

// extractJSON strips markdown fences and any chatter around the outermost object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start != -1 && end > start {
		raw = raw[start : end+1]
	}

	return strings.TrimSpace(raw)
}

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(val)
	case []any:
		return strings.Join(coerceStrings(val), " ")
	default:
		return strings.TrimSpace(fmt.Sprint(val))
	}
}

// coerceStrings accepts a list or a single string and keeps at most maxListItems non-empty entries.
func coerceStrings(v any) []string {
	var items []string

	switch val := v.(type) {
	case string:
		for _, line := range strings.Split(val, "\n") {
			items = append(items, strings.TrimLeft(strings.TrimSpace(line), "-* "))
		}
	case []any:
		for _, item := range val {
			items = append(items, coerceString(item))
		}
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item == "" {
			continue
		}
		out = append(out, item)
		if len(out) == maxListItems {
			break
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
