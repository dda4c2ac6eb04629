package screening

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/ai"
	"github.com/spigell/mars-eval/internal/logger"
	"github.com/spigell/mars-eval/internal/scoring"
)

const (
	NameExcludeIDs   = "exclude_ids"
	NameSelectedOnly = "selected_only"
	NameMinimumScore = "minimum_score"
	NameRoles        = "roles"
	NameAIDebrief    = "ai_debrief"
)

// switchable carries the enabled state shared by every filter.
type switchable struct {
	disabled bool
	reason   string
}

func (s *switchable) Disable(reason string) {
	s.disabled = true
	s.reason = reason
}

func (s *switchable) IsEnabled() bool { return !s.disabled }

func unchanged(r *Roster) Step {
	return Step{Initial: r.Len(), Left: r.Len()}
}

type excludeIDsFilter struct {
	switchable
	path string
}

// NewExcludeIDs creates a filter that drops candidates listed in the exclude file.
func NewExcludeIDs() Filter {
	return &excludeIDsFilter{}
}

func (f *excludeIDsFilter) Name() string { return NameExcludeIDs }

func (f *excludeIDsFilter) Validate(cfg *Config) error {
	f.path = ""
	if cfg != nil {
		f.path = strings.TrimSpace(cfg.ExcludeFile)
	}
	return nil
}

func (f *excludeIDsFilter) Apply(_ context.Context, deps Deps, r *Roster) (*Roster, Step, error) {
	if f.path == "" {
		return r, unchanged(r), nil
	}

	ids, err := LoadExcludedIDs(f.path)
	if err != nil {
		return r, Step{}, fmt.Errorf("getting excluded candidates from file: %w", err)
	}

	initial := r.Len()
	removed := r.Exclude(ids)
	if len(removed) > 0 {
		deps.log().Info("excluding candidates based on exclude file",
			zap.String("path", f.path),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *excludeIDsFilter) Status() Status {
	details := map[string]string{}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type selectedOnlyFilter struct {
	switchable
	active bool
}

// NewSelectedOnly creates a filter that drops candidates who were not selected.
func NewSelectedOnly() Filter {
	return &selectedOnlyFilter{}
}

func (f *selectedOnlyFilter) Name() string { return NameSelectedOnly }

func (f *selectedOnlyFilter) Validate(cfg *Config) error {
	f.active = cfg != nil && cfg.SelectedOnly
	return nil
}

func (f *selectedOnlyFilter) Apply(_ context.Context, deps Deps, r *Roster) (*Roster, Step, error) {
	if !f.active {
		return r, unchanged(r), nil
	}

	initial := r.Len()
	removed := r.drop(func(e *Entry) bool { return !e.Assessment.Selected() })
	if len(removed) > 0 {
		deps.log().Info("excluding candidates below the selection threshold",
			zap.Int("threshold", scoring.SelectionThreshold),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *selectedOnlyFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"selected_only": strconv.FormatBool(f.active)},
	}
}

type minimumScoreFilter struct {
	switchable
	minimum int
}

// NewMinimumScore creates a filter that drops candidates whose overall score is below the configured minimum.
func NewMinimumScore() Filter {
	return &minimumScoreFilter{}
}

func (f *minimumScoreFilter) Name() string { return NameMinimumScore }

func (f *minimumScoreFilter) Validate(cfg *Config) error {
	f.minimum = 0
	if cfg == nil {
		return nil
	}
	if cfg.MinimumScore < 0 || cfg.MinimumScore > 100 {
		return fmt.Errorf("minimum score must be within 0..100, got %d", cfg.MinimumScore)
	}
	f.minimum = cfg.MinimumScore
	return nil
}

func (f *minimumScoreFilter) Apply(_ context.Context, deps Deps, r *Roster) (*Roster, Step, error) {
	if f.minimum == 0 {
		return r, unchanged(r), nil
	}

	initial := r.Len()
	removed := r.drop(func(e *Entry) bool { return e.Assessment.OverallScore < f.minimum })
	if len(removed) > 0 {
		deps.log().Info("excluding candidates by minimum score",
			zap.Int("minimum_score", f.minimum),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *minimumScoreFilter) Status() Status {
	return Status{
		Name:    f.Name(),
		Enabled: f.IsEnabled(),
		Reason:  f.reason,
		Details: map[string]string{"minimum_score": strconv.Itoa(f.minimum)},
	}
}

type rolesFilter struct {
	switchable
	roles []string
}

// NewRoles creates a filter that keeps only candidates whose suggested role is listed.
func NewRoles() Filter {
	return &rolesFilter{}
}

func (f *rolesFilter) Name() string { return NameRoles }

func (f *rolesFilter) Validate(cfg *Config) error {
	f.roles = nil
	if cfg == nil {
		return nil
	}

	for _, role := range cfg.Roles {
		role = strings.TrimSpace(role)
		if role == "" {
			continue
		}
		if !slices.Contains(scoring.Roles, role) {
			return fmt.Errorf("unknown role %q", role)
		}
		f.roles = append(f.roles, role)
	}
	return nil
}

func (f *rolesFilter) Apply(_ context.Context, deps Deps, r *Roster) (*Roster, Step, error) {
	if len(f.roles) == 0 {
		return r, unchanged(r), nil
	}

	initial := r.Len()
	removed := r.drop(func(e *Entry) bool { return !slices.Contains(f.roles, e.Assessment.SuggestedRole) })
	if len(removed) > 0 {
		deps.log().Info("excluding candidates by suggested role",
			zap.Strings("roles", f.roles),
			zap.Strings("excluded_candidates", removed),
			zap.Int("candidates_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(removed), Left: r.Len()}, nil
}

func (f *rolesFilter) Status() Status {
	details := map[string]string{}
	if len(f.roles) > 0 {
		details["roles"] = strings.Join(f.roles, ",")
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}

type aiDebriefFilter struct {
	switchable
	config *AIConfig
}

// NewAIDebrief creates the step that annotates every remaining candidate with an AI debrief.
// It never drops candidates.
func NewAIDebrief() Filter {
	return &aiDebriefFilter{}
}

func (f *aiDebriefFilter) Name() string { return NameAIDebrief }

func (f *aiDebriefFilter) Validate(cfg *Config) error {
	f.config = nil
	if cfg != nil {
		f.config = cfg.AI
	}
	if !f.IsEnabled() {
		return nil
	}
	if cfg == nil || cfg.AI == nil {
		return errors.New("ai configuration is required when ai debrief is enabled")
	}
	if cfg.AI.Gemini == nil {
		return errors.New("gemini configuration is required when ai debrief is enabled")
	}
	if strings.TrimSpace(cfg.AI.Gemini.Model) == "" {
		return errors.New("gemini model is required when ai debrief is enabled")
	}
	return nil
}

func (f *aiDebriefFilter) Apply(ctx context.Context, deps Deps, r *Roster) (*Roster, Step, error) {
	if deps.Debriefer == nil {
		deps.log().Info("ai debriefer is not configured; skipping ai_debrief step")
		return r, unchanged(r), nil
	}

	failed := 0
	for _, entry := range r.Items {
		if err := ctx.Err(); err != nil {
			return r, Step{}, err
		}

		log := logger.WithCandidate(deps.Logger, entry.Record)
		debrief, err := deps.Debriefer.Debrief(ctx, entry.Record, entry.Assessment)
		if err != nil {
			failed++
			log.Warn("AI debrief failed", zap.Error(err))
			entry.Debrief = &ai.Debrief{Error: err.Error()}
			continue
		}

		log.Debug("AI debrief attached", logger.AssessmentFields(entry.Assessment)...)
		entry.Debrief = debrief
	}

	if failed > 0 {
		deps.log().Warn("AI debrief completed with failures",
			zap.Int("candidates", r.Len()),
			zap.Int("failed", failed),
		)
	}

	return r, unchanged(r), nil
}

func (f *aiDebriefFilter) Status() Status {
	details := map[string]string{}
	if f.config != nil {
		details["provider"] = f.config.Provider
		if f.config.Gemini != nil {
			details["model"] = f.config.Gemini.Model
			details["max_retries"] = strconv.Itoa(f.config.Gemini.MaxRetries)
			details["max_log_length"] = strconv.Itoa(f.config.Gemini.MaxLogLength)
		}
	}
	return Status{Name: f.Name(), Enabled: f.IsEnabled(), Reason: f.reason, Details: details}
}
