package intake

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
)

// scriptedAsker answers questions by label and records what was offered.
type scriptedAsker struct {
	text    map[string]string
	choices map[string][]string
	offered map[string][][]string
	fail    string
}

func newScriptedAsker() *scriptedAsker {
	return &scriptedAsker{
		text: map[string]string{
			"Full Legal Name":               "Ada Lovelace",
			"Country of Origin":             " UK ",
			"Native Language":               "English",
			"Current Profession":            "Research Engineer",
			"Age (years)":                   "36",
			"Height (cm, optional)":         "",
			"Weight (kg, optional)":         "55",
			"Average Sleep Hours per Night": "7.5",
		},
		choices: map[string][]string{
			"Biological Sex":                 {"Female"},
			"Blood Type":                     {"O+"},
			"General Health":                 {"Excellent"},
			"Exercise and Fitness Habits":    {"Daily intense training"},
			"Dietary Preferences":            {"Balanced/Omnivore"},
			"Substance Use and Dependencies": {"None"},
		},
		offered: map[string][][]string{},
	}
}

func (s *scriptedAsker) Ask(f Field) (string, error) {
	if f.Label == s.fail {
		return "", ErrAborted
	}
	answer, ok := s.text[f.Label]
	if !ok {
		return "", fmt.Errorf("unexpected question %q", f.Label)
	}
	if err := f.check(answer); err != nil {
		return "", fmt.Errorf("%s: %w", f.Label, err)
	}
	return answer, nil
}

func (s *scriptedAsker) Choose(label string, options []string) (string, error) {
	if label == s.fail {
		return "", ErrAborted
	}

	key := label
	if strings.HasPrefix(label, "Select a skill") {
		key = "skills"
	}
	s.offered[key] = append(s.offered[key], options)

	if q := questionByText(label); q != nil {
		return q.Options[0], nil
	}

	queue := s.choices[key]
	if len(queue) == 0 {
		return "", fmt.Errorf("no scripted choice for %q", label)
	}
	s.choices[key] = queue[1:]
	return queue[0], nil
}

func questionByText(text string) *candidate.Question {
	for i := range candidate.PsychologicalQuestions {
		if candidate.PsychologicalQuestions[i].Text == text {
			return &candidate.PsychologicalQuestions[i]
		}
	}
	return nil
}

func TestCollect(t *testing.T) {
	t.Parallel()

	asker := newScriptedAsker()
	asker.choices["skills"] = []string{candidate.SkillMedical, candidate.SkillAgriculture, DoneOption}

	record, err := Collect(asker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if record.FullName != "Ada Lovelace" || record.Country != "UK" {
		t.Fatalf("unexpected identification: %+v", record)
	}
	if record.Age == nil || *record.Age != 36 {
		t.Fatalf("unexpected age: %v", record.Age)
	}
	if record.Height != nil {
		t.Fatalf("expected blank optional height to stay absent, got %d", *record.Height)
	}
	if record.Weight == nil || *record.Weight != 55 {
		t.Fatalf("unexpected weight: %v", record.Weight)
	}
	if record.SleepHours == nil || *record.SleepHours != 7.5 {
		t.Fatalf("unexpected sleep hours: %v", record.SleepHours)
	}
	if len(record.Skills) != 2 || record.Skills[0] != candidate.SkillMedical {
		t.Fatalf("unexpected skills: %v", record.Skills)
	}
	if len(record.PsychologicalResponses) != len(candidate.PsychologicalQuestions) {
		t.Fatalf("expected every question answered, got %v", record.PsychologicalResponses)
	}
	if answer, _ := record.Response(candidate.QuestionIsolation); answer != candidate.PsychologicalQuestions[0].Options[0] {
		t.Fatalf("unexpected isolation answer: %q", answer)
	}

	offers := asker.offered["skills"]
	if len(offers) != 3 {
		t.Fatalf("expected three skill prompts, got %d", len(offers))
	}
	if slices.Contains(offers[0], DoneOption) {
		t.Fatalf("done must not be offered before the first skill")
	}
	if slices.Contains(offers[1], candidate.SkillMedical) || !slices.Contains(offers[1], DoneOption) {
		t.Fatalf("unexpected second offer: %v", offers[1])
	}

	// The collected record evaluates like any loaded one.
	if got := scoring.Evaluate(record); got.OverallScore == 0 {
		t.Fatalf("expected a non-trivial assessment, got %+v", got)
	}
}

func TestCollectAllSkillsEndsWithoutDone(t *testing.T) {
	t.Parallel()

	asker := newScriptedAsker()
	asker.choices["skills"] = append([]string(nil), candidate.Skills...)

	record, err := Collect(asker)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(record.Skills) != len(candidate.Skills) {
		t.Fatalf("expected every skill, got %d", len(record.Skills))
	}
}

func TestCollectAborted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		fail    string
		section string
	}{
		{fail: "Native Language", section: "identification"},
		{fail: "Blood Type", section: "physical"},
		{fail: "Average Sleep Hours per Night", section: "lifestyle"},
		{fail: candidate.PsychologicalQuestions[2].Text, section: "psychology"},
	}

	for _, tt := range tests {
		t.Run(tt.section, func(t *testing.T) {
			t.Parallel()

			asker := newScriptedAsker()
			asker.choices["skills"] = []string{candidate.SkillMedical, DoneOption}
			asker.fail = tt.fail

			_, err := Collect(asker)
			if !errors.Is(err, ErrAborted) {
				t.Fatalf("expected abort, got %v", err)
			}
			if !strings.HasPrefix(err.Error(), tt.section+":") {
				t.Fatalf("expected error to name section %q, got %v", tt.section, err)
			}
		})
	}
}

func TestFieldCheck(t *testing.T) {
	t.Parallel()

	age := Field{Label: "age", Required: true, Validate: intBetween(18, 65)}
	sleep := Field{Label: "sleep", Validate: floatBetween(0, 24)}

	tests := []struct {
		field Field
		input string
		ok    bool
	}{
		{field: age, input: "30", ok: true},
		{field: age, input: " 18 ", ok: true},
		{field: age, input: "", ok: false},
		{field: age, input: "17", ok: false},
		{field: age, input: "thirty", ok: false},
		{field: age, input: "30.5", ok: false},
		{field: sleep, input: "", ok: true},
		{field: sleep, input: "7.5", ok: true},
		{field: sleep, input: "25", ok: false},
		{field: Field{Required: true}, input: "anything", ok: true},
	}

	for _, tt := range tests {
		err := tt.field.check(tt.input)
		if (err == nil) != tt.ok {
			t.Fatalf("%s %q: unexpected result %v", tt.field.Label, tt.input, err)
		}
	}
}
