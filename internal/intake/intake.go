// Package intake walks a candidate through the application questionnaire
// and produces a candidate record ready for evaluation.
package intake

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/spigell/mars-eval/internal/candidate"
)

// DoneOption finishes the skills section.
const DoneOption = "Done"

// ErrAborted is returned when the candidate interrupts the questionnaire.
var ErrAborted = errors.New("questionnaire aborted")

// Field is a free-text question.
type Field struct {
	Label    string
	Required bool
	// Validate checks a non-blank answer. Nil accepts anything.
	Validate func(string) error
}

// Asker poses questions to the candidate.
type Asker interface {
	Ask(f Field) (string, error)
	Choose(label string, options []string) (string, error)
}

// Collect runs the five questionnaire sections in order.
func Collect(a Asker) (*candidate.Record, error) {
	record := &candidate.Record{}

	sections := []struct {
		name string
		run  func(Asker, *candidate.Record) error
	}{
		{name: "identification", run: identification},
		{name: "physical", run: physical},
		{name: "lifestyle", run: lifestyle},
		{name: "skills", run: skills},
		{name: "psychology", run: psychology},
	}

	for _, section := range sections {
		if err := section.run(a, record); err != nil {
			return nil, fmt.Errorf("%s: %w", section.name, err)
		}
	}

	return record, nil
}

func identification(a Asker, r *candidate.Record) error {
	answers := []struct {
		label  string
		target *string
	}{
		{label: "Full Legal Name", target: &r.FullName},
		{label: "Country of Origin", target: &r.Country},
		{label: "Native Language", target: &r.NativeLanguage},
		{label: "Current Profession", target: &r.Profession},
	}

	for _, answer := range answers {
		value, err := a.Ask(Field{Label: answer.label, Required: true})
		if err != nil {
			return err
		}
		*answer.target = strings.TrimSpace(value)
	}
	return nil
}

func physical(a Asker, r *candidate.Record) error {
	var err error

	if r.Age, err = askInt(a, "Age (years)", 18, 65, true); err != nil {
		return err
	}
	if r.Sex, err = a.Choose("Biological Sex", candidate.SexOptions); err != nil {
		return err
	}
	if r.Height, err = askInt(a, "Height (cm, optional)", 140, 220, false); err != nil {
		return err
	}
	if r.Weight, err = askInt(a, "Weight (kg, optional)", 40, 150, false); err != nil {
		return err
	}
	if r.BloodType, err = a.Choose("Blood Type", candidate.BloodTypeOptions); err != nil {
		return err
	}
	r.GeneralHealth, err = a.Choose("General Health", candidate.GeneralHealthOptions)
	return err
}

func lifestyle(a Asker, r *candidate.Record) error {
	var err error

	if r.ExerciseHabits, err = a.Choose("Exercise and Fitness Habits", candidate.ExerciseOptions); err != nil {
		return err
	}
	if r.DietType, err = a.Choose("Dietary Preferences", candidate.DietOptions); err != nil {
		return err
	}

	raw, err := a.Ask(Field{Label: "Average Sleep Hours per Night", Required: true, Validate: floatBetween(0, 24)})
	if err != nil {
		return err
	}
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("sleep hours: %w", err)
	}
	r.SleepHours = &hours

	r.Addictions, err = a.Choose("Substance Use and Dependencies", candidate.AddictionOptions)
	return err
}

// skills offers the remaining catalog entries until the candidate picks Done.
// At least one skill is required before Done is offered.
func skills(a Asker, r *candidate.Record) error {
	for {
		remaining := make([]string, 0, len(candidate.Skills)+1)
		for _, skill := range candidate.Skills {
			if !slices.Contains(r.Skills, skill) {
				remaining = append(remaining, skill)
			}
		}
		if len(remaining) == 0 {
			return nil
		}
		if len(r.Skills) > 0 {
			remaining = append(remaining, DoneOption)
		}

		label := fmt.Sprintf("Select a skill (%d chosen)", len(r.Skills))
		choice, err := a.Choose(label, remaining)
		if err != nil {
			return err
		}
		if choice == DoneOption {
			return nil
		}
		if !slices.Contains(remaining, choice) {
			return fmt.Errorf("unknown skill %q", choice)
		}
		r.Skills = append(r.Skills, choice)
	}
}

func psychology(a Asker, r *candidate.Record) error {
	r.PsychologicalResponses = make(map[string]string, len(candidate.PsychologicalQuestions))
	for _, q := range candidate.PsychologicalQuestions {
		answer, err := a.Choose(q.Text, q.Options)
		if err != nil {
			return err
		}
		r.PsychologicalResponses[q.ID] = answer
	}
	return nil
}

func askInt(a Asker, label string, low, high int, required bool) (*int, error) {
	raw, err := a.Ask(Field{Label: label, Required: required, Validate: intBetween(low, high)})
	if err != nil {
		return nil, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", label, err)
	}
	return &v, nil
}

func intBetween(low, high int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return errors.New("enter a whole number")
		}
		if v < low || v > high {
			return fmt.Errorf("enter a number between %d and %d", low, high)
		}
		return nil
	}
}

func floatBetween(low, high float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return errors.New("enter a number")
		}
		if v < low || v > high {
			return fmt.Errorf("enter a number between %g and %g", low, high)
		}
		return nil
	}
}

// check applies the field's rules to a raw answer.
func (f Field) check(s string) error {
	if strings.TrimSpace(s) == "" {
		if f.Required {
			return errors.New("an answer is required")
		}
		return nil
	}
	if f.Validate == nil {
		return nil
	}
	return f.Validate(s)
}
