package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
)

type stubGenerator struct {
	response    string
	err         error
	lastSystem  string
	lastMessage string
}

func (s *stubGenerator) GenerateContent(_ context.Context, system, message string) (string, error) {
	s.lastSystem = system
	s.lastMessage = message
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestDebrieferSendsAssessment(t *testing.T) {
	t.Parallel()

	age := 30
	record := &candidate.Record{
		ID:            "c-1",
		FullName:      "Ada",
		Age:           &age,
		GeneralHealth: "Excellent",
		Skills:        []string{candidate.SkillMedical},
	}
	assessment := scoring.Evaluate(record)

	stub := &stubGenerator{response: "```json\n{\"summary\": \" Welcome aboard \", \"strengths\": [\"health\", \"\"], \"risks\": \"- isolation\\n- sleep\"}\n```"}
	core, observed := observer.New(zapcore.DebugLevel)

	debrief, err := NewDebriefer(stub, 0, zap.New(core)).Debrief(context.Background(), record, assessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if debrief.Summary != "Welcome aboard" {
		t.Fatalf("unexpected summary: %q", debrief.Summary)
	}
	if len(debrief.Strengths) != 1 || debrief.Strengths[0] != "health" {
		t.Fatalf("unexpected strengths: %v", debrief.Strengths)
	}
	if len(debrief.Risks) != 2 || debrief.Risks[0] != "isolation" || debrief.Risks[1] != "sleep" {
		t.Fatalf("unexpected risks: %v", debrief.Risks)
	}
	if debrief.Raw != stub.response {
		t.Fatalf("expected raw response to be kept")
	}

	if stub.lastSystem != systemPrompt || !strings.Contains(stub.lastSystem, "assessment is final") {
		t.Fatalf("expected embedded system prompt to be sent")
	}

	var payload struct {
		Candidate  candidate.Record   `json:"candidate"`
		Assessment scoring.Assessment `json:"assessment"`
		Awards     []scoring.Award    `json:"awards"`
	}
	if err := json.Unmarshal([]byte(stub.lastMessage), &payload); err != nil {
		t.Fatalf("message is not json: %v", err)
	}
	if payload.Candidate.FullName != "Ada" || payload.Assessment != assessment {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if len(payload.Awards) == 0 {
		t.Fatalf("expected awards to be included")
	}

	if observed.FilterMessage("gemini debrief request").Len() != 1 {
		t.Fatalf("expected request to be logged")
	}
	entry := observed.FilterMessage("gemini debrief response").All()
	if len(entry) != 1 || entry[0].ContextMap()["candidate_id"] != "c-1" {
		t.Fatalf("expected response log with candidate id, got %+v", entry)
	}
}

func TestDebrieferErrors(t *testing.T) {
	t.Parallel()

	record := &candidate.Record{FullName: "Bob"}
	assessment := scoring.Evaluate(record)

	tests := []struct {
		name    string
		stub    *stubGenerator
		record  *candidate.Record
		errPart string
	}{
		{name: "nil record", stub: &stubGenerator{}, errPart: "record is required"},
		{name: "generator failure", stub: &stubGenerator{err: errors.New("boom")}, record: record, errPart: "boom"},
		{name: "not json", stub: &stubGenerator{response: "I cannot help"}, record: record, errPart: "parse gemini response"},
		{name: "no summary", stub: &stubGenerator{response: `{"risks": ["x"]}`}, record: record, errPart: "no summary"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewDebriefer(tt.stub, 10, nil).Debrief(context.Background(), tt.record, assessment)
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("expected error containing %q, got %v", tt.errPart, err)
			}
		})
	}
}

func TestExtractJSON(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		`{"a":1}`:                       `{"a":1}`,
		"```json\n{\"a\":1}\n```":       `{"a":1}`,
		"```\n{\"a\":1}```":             `{"a":1}`,
		"Here it is: {\"a\":1} thanks.": `{"a":1}`,
		"no object":                     "no object",
	}

	for input, expect := range tests {
		if got := extractJSON(input); got != expect {
			t.Fatalf("extractJSON(%q) = %q, want %q", input, got, expect)
		}
	}
}

func TestCoerceStringsLimitsItems(t *testing.T) {
	t.Parallel()

	got := coerceStrings([]any{"a", 1.5, nil, "b", "c", "d"})
	if len(got) != maxListItems {
		t.Fatalf("expected %d items, got %v", maxListItems, got)
	}
	if got[0] != "a" || got[1] != "1.5" || got[2] != "b" {
		t.Fatalf("unexpected items: %v", got)
	}

	if coerceStrings(42.0) != nil {
		t.Fatalf("expected nil for unsupported value")
	}
}
