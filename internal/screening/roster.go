package screening

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/spigell/mars-eval/internal/ai"
	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
)

// Roster is an ordered set of assessed candidates.
type Roster struct {
	RunID string   `json:"runId,omitempty" yaml:"runId,omitempty"`
	Items []*Entry `json:"items" yaml:"items"`
}

type Entry struct {
	ID         string             `json:"id" yaml:"id"`
	Record     *candidate.Record  `json:"record" yaml:"record"`
	Assessment scoring.Assessment `json:"assessment" yaml:"assessment"`
	Debrief    *ai.Debrief        `json:"debrief,omitempty" yaml:"debrief,omitempty"`
}

// ReportLine is one candidate row of a role report.
type ReportLine struct {
	ID           string            `json:"id" yaml:"id"`
	Name         string            `json:"name" yaml:"name"`
	OverallScore int               `json:"overallScore" yaml:"overallScore"`
	Status       scoring.Status    `json:"status" yaml:"status"`
	Breakdown    scoring.Breakdown `json:"breakdown" yaml:"breakdown"`
}

type RoleReport struct {
	Role       string       `json:"role" yaml:"role"`
	Candidates []ReportLine `json:"candidates" yaml:"candidates"`
}

// Assess evaluates every record. Records without an id get a positional one.
func Assess(records []*candidate.Record) *Roster {
	roster := &Roster{Items: make([]*Entry, 0, len(records))}
	for i, record := range records {
		if record == nil {
			continue
		}
		id := strings.TrimSpace(record.ID)
		if id == "" {
			id = fmt.Sprintf("candidate-%d", i+1)
		}
		roster.Items = append(roster.Items, &Entry{
			ID:         id,
			Record:     record,
			Assessment: scoring.Evaluate(record),
		})
	}
	return roster
}

func (r *Roster) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Items)
}

func (r *Roster) FindByID(id string) *Entry {
	if r == nil {
		return nil
	}
	for _, entry := range r.Items {
		if entry.ID == id {
			return entry
		}
	}
	return nil
}

func (r *Roster) IDs() []string {
	ids := make([]string, 0, r.Len())
	if r == nil {
		return ids
	}
	for _, entry := range r.Items {
		ids = append(ids, entry.ID)
	}
	return ids
}

// Exclude removes entries whose id is listed and returns the removed ids.
func (r *Roster) Exclude(ids []string) []string {
	return r.drop(func(e *Entry) bool { return slices.Contains(ids, e.ID) })
}

// drop removes entries matching the predicate, preserving order.
func (r *Roster) drop(match func(*Entry) bool) []string {
	if r == nil {
		return nil
	}

	var removed []string
	kept := r.Items[:0]
	for _, entry := range r.Items {
		if match(entry) {
			removed = append(removed, entry.ID)
			continue
		}
		kept = append(kept, entry)
	}
	clear(r.Items[len(kept):])
	r.Items = kept

	return removed
}

// ReportByRole groups entries by suggested role in catalog order, best score first.
func (r *Roster) ReportByRole() []RoleReport {
	groups := make(map[string][]ReportLine)
	if r != nil {
		for _, entry := range r.Items {
			role := entry.Assessment.SuggestedRole
			groups[role] = append(groups[role], ReportLine{
				ID:           entry.ID,
				Name:         entry.Record.DisplayName(),
				OverallScore: entry.Assessment.OverallScore,
				Status:       entry.Assessment.Status,
				Breakdown:    entry.Assessment.Breakdown,
			})
		}
	}

	report := make([]RoleReport, 0, len(groups))
	for _, role := range scoring.Roles {
		lines, ok := groups[role]
		if !ok {
			continue
		}
		slices.SortStableFunc(lines, func(a, b ReportLine) int {
			if a.OverallScore != b.OverallScore {
				return b.OverallScore - a.OverallScore
			}
			return strings.Compare(a.ID, b.ID)
		})
		report = append(report, RoleReport{Role: role, Candidates: lines})
	}

	return report
}

// DumpToTmpFile writes the roster as JSON into a new temporary file and returns its path.
func (r *Roster) DumpToTmpFile(pattern string) (string, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = "roster_*.json"
	}

	file, err := os.CreateTemp("", pattern)
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

// LoadExcludedIDs reads candidate ids from a YAML or JSON list. An empty file yields no ids.
func LoadExcludedIDs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil, nil
	}

	var ids []string
	if err := yaml.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("exclude file must be a list of candidate ids: %w", err)
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	if len(out) == 0 && len(ids) > 0 {
		return nil, errors.New("exclude file lists only blank ids")
	}
	return out, nil
}
