package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/spigell/mars-eval/internal/ai"
	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
	"github.com/spigell/mars-eval/internal/screening"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
	formatText = "text"
)

// textRenderer is implemented by documents with a human-readable layout.
type textRenderer interface {
	renderText(w io.Writer) error
}

type axisTiers struct {
	Physical      string `json:"physical" yaml:"physical"`
	Mental        string `json:"mental" yaml:"mental"`
	Skills        string `json:"skills" yaml:"skills"`
	Compatibility string `json:"compatibility" yaml:"compatibility"`
}

type evaluationReport struct {
	ID         string             `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string             `json:"name,omitempty" yaml:"name,omitempty"`
	Assessment scoring.Assessment `json:"assessment" yaml:"assessment"`
	Tiers      axisTiers          `json:"tiers" yaml:"tiers"`
	AgeFactor  string             `json:"ageFactor" yaml:"ageFactor"`
	Awards     []scoring.Award    `json:"awards,omitempty" yaml:"awards,omitempty"`
	Debrief    *ai.Debrief        `json:"debrief,omitempty" yaml:"debrief,omitempty"`
}

func newEvaluationReport(record *candidate.Record, assessment scoring.Assessment) *evaluationReport {
	b := assessment.Breakdown
	report := &evaluationReport{
		Assessment: assessment,
		Tiers: axisTiers{
			Physical:      scoring.Tier(b.Physical),
			Mental:        scoring.Tier(b.Mental),
			Skills:        scoring.Tier(b.Skills),
			Compatibility: scoring.Tier(b.Compatibility),
		},
	}
	if record != nil {
		report.ID = record.ID
		report.Name = strings.TrimSpace(record.FullName)
		report.AgeFactor = scoring.AgeFactor(record.Age)
	} else {
		report.AgeFactor = scoring.AgeFactor(nil)
	}
	return report
}

func (r *evaluationReport) renderText(w io.Writer) error {
	a := r.Assessment
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	if r.Name != "" {
		fmt.Fprintf(tw, "Candidate:\t%s\n", r.Name)
	}
	fmt.Fprintf(tw, "Status:\t%s\n", a.Status)
	fmt.Fprintf(tw, "Overall score:\t%d\n", a.OverallScore)
	fmt.Fprintf(tw, "Suggested role:\t%s\n", a.SuggestedRole)
	fmt.Fprintf(tw, "Age factor:\t%s\n", r.AgeFactor)

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "AXIS\tSCORE\tTIER")
	for _, axis := range scoring.Axes {
		score := a.Breakdown.Get(axis)
		fmt.Fprintf(tw, "%s\t%d\t%s\n", axis, score, scoring.Tier(score))
	}

	if len(r.Awards) > 0 {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "AXIS\tRULE\tPOINTS")
		for _, award := range r.Awards {
			fmt.Fprintf(tw, "%s\t%s\t+%d\n", award.Axis, award.Rule, award.Points)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	return renderDebrief(w, r.Debrief)
}

func renderDebrief(w io.Writer, d *ai.Debrief) error {
	if d == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString("\nDebrief:\n")
	if d.Error != "" {
		fmt.Fprintf(&b, "  unavailable: %s\n", d.Error)
	}
	if d.Summary != "" {
		fmt.Fprintf(&b, "  %s\n", d.Summary)
	}
	for _, s := range d.Strengths {
		fmt.Fprintf(&b, "  + %s\n", s)
	}
	for _, s := range d.Risks {
		fmt.Fprintf(&b, "  - %s\n", s)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// rosterView adds a text layout to a roster.
type rosterView screening.Roster

func (v *rosterView) renderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tOVERALL\tSTATUS\tROLE")
	for _, e := range v.Items {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
			e.ID, e.Record.DisplayName(), e.Assessment.OverallScore, e.Assessment.Status, e.Assessment.SuggestedRole)
	}
	return tw.Flush()
}

type roleReportView []screening.RoleReport

func (v roleReportView) renderText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, group := range v {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s (%d)\n", group.Role, len(group.Candidates))
		for _, line := range group.Candidates {
			b := line.Breakdown
			fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\tP%d M%d S%d C%d\n",
				line.ID, line.Name, line.OverallScore, line.Status, b.Physical, b.Mental, b.Skills, b.Compatibility)
		}
	}
	return tw.Flush()
}

// writeDocument renders v in the configured format to the configured file or stdout.
func writeDocument(cfg *OutputConfig, v any) error {
	format := formatJSON
	path := ""
	if cfg != nil {
		if f := strings.ToLower(strings.TrimSpace(cfg.Format)); f != "" {
			format = f
		}
		path = strings.TrimSpace(cfg.File)
	}

	if path == "" {
		return render(os.Stdout, format, v)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if err := render(file, format, v); err != nil {
		return err
	}
	return file.Close()
}

func render(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		if r, ok := v.(textRenderer); ok {
			return r.renderText(w)
		}
		return render(w, formatYAML, v)
	default:
		return fmt.Errorf("unsupported output format %q (use json, yaml or text)", format)
	}
}
