package screening

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/mars-eval/internal/ai"
)

// Filter is a single screening step applied to a roster.
type Filter interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(cfg *Config) error
	Apply(ctx context.Context, deps Deps, r *Roster) (*Roster, Step, error)
}

// Deps aggregates dependencies shared across all screening steps.
type Deps struct {
	Logger    *zap.Logger
	Debriefer ai.Debriefer
}

func (d Deps) log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Step describes the result of executing a screening step.
type Step struct {
	Initial int
	Dropped int
	Left    int
}

// Config contains settings consumed by the filters.
type Config struct {
	SelectedOnly bool
	MinimumScore int
	Roles        []string
	ExcludeFile  string
	AI           *AIConfig
}

type AIConfig struct {
	Enabled  bool
	Provider string
	Gemini   *GeminiConfig
}

type GeminiConfig struct {
	Model        string
	MaxRetries   int
	MaxLogLength int
}

// Status represents runtime information about a filter.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// DefaultSteps returns the screening pipeline in execution order.
func DefaultSteps() []Filter {
	return []Filter{
		NewExcludeIDs(),
		NewSelectedOnly(),
		NewMinimumScore(),
		NewRoles(),
		NewAIDebrief(),
	}
}

// DisableByName marks a filter with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Filter, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step, then applies them in order and returns the surviving roster.
func Run(ctx context.Context, cfg *Config, deps Deps, steps []Filter, r *Roster) (*Roster, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(cfg); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("filter disabled", zap.String("name", step.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		next, info, err := step.Apply(ctx, deps, r)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}

		deps.Logger.Info("filter step",
			zap.String("name", step.Name()),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("left", info.Left),
		)

		r = next
	}

	return r, nil
}

// Describe returns status entries for the provided filters.
func Describe(steps []Filter) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
