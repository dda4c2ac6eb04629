package logger

import (
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
)

const (
	FieldCandidateID   = "candidate_id"
	FieldCandidateName = "candidate_name"
	FieldOverallScore  = "overall_score"
	FieldStatus        = "status"
	FieldSuggestedRole = "suggested_role"

	// FieldProvider is the structured log field key for the AI provider name.
	FieldProvider = "ai_provider"
	// FieldModel is the structured log field key for the AI model identifier.
	FieldModel = "ai_model"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// A nil logger becomes a no-op logger.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// CandidateFields identifies a candidate in log entries.
func CandidateFields(record *candidate.Record) []zap.Field {
	if record == nil {
		return nil
	}
	return StringFields(
		StringField{Key: FieldCandidateID, Value: record.ID},
		StringField{Key: FieldCandidateName, Value: record.FullName},
	)
}

// AssessmentFields describes the outcome of an evaluation.
func AssessmentFields(a scoring.Assessment) []zap.Field {
	return []zap.Field{
		zap.Int(FieldOverallScore, a.OverallScore),
		zap.String(FieldStatus, string(a.Status)),
		zap.String(FieldSuggestedRole, a.SuggestedRole),
		zap.Int("physical", a.Breakdown.Physical),
		zap.Int("mental", a.Breakdown.Mental),
		zap.Int("skills", a.Breakdown.Skills),
		zap.Int("compatibility", a.Breakdown.Compatibility),
	}
}

// WithCandidate attaches the candidate identity to the logger.
func WithCandidate(logger *zap.Logger, record *candidate.Record) *zap.Logger {
	return WithFields(logger, CandidateFields(record)...)
}

// CommonFields returns standard zap fields that describe the AI provider and model.
// Empty values are ignored to keep log entries compact when information is missing.
func CommonFields(provider, model string) []zap.Field {
	return StringFields(
		StringField{Key: FieldProvider, Value: provider},
		StringField{Key: FieldModel, Value: model},
	)
}

// WithCommonFields attaches the common AI fields to the provided logger.
func WithCommonFields(logger *zap.Logger, provider, model string) *zap.Logger {
	return WithFields(logger, CommonFields(provider, model)...)
}
