package ai

import (
	"context"

	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
)

// Debrief is a narrative commentary on an assessment. It never alters scores.
type Debrief struct {
	Summary   string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Strengths []string `json:"strengths,omitempty" yaml:"strengths,omitempty"`
	Risks     []string `json:"risks,omitempty" yaml:"risks,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Raw       string   `json:"-" yaml:"-"`
}

type Debriefer interface {
	Debrief(ctx context.Context, record *candidate.Record, assessment scoring.Assessment) (*Debrief, error)
}
