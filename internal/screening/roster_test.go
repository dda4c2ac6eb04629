package screening

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spigell/mars-eval/internal/candidate"
	"github.com/spigell/mars-eval/internal/scoring"
)

func entry(id string, overall int, role string) *Entry {
	status := scoring.StatusNotSelected
	if overall >= scoring.SelectionThreshold {
		status = scoring.StatusSelected
	}
	return &Entry{
		ID:     id,
		Record: &candidate.Record{ID: id, FullName: "Name " + id},
		Assessment: scoring.Assessment{
			Breakdown:     scoring.Breakdown{Physical: overall, Mental: overall, Skills: overall, Compatibility: overall},
			OverallScore:  overall,
			Status:        status,
			SuggestedRole: role,
		},
	}
}

func testRoster() *Roster {
	return &Roster{Items: []*Entry{
		entry("a", 90, scoring.RoleMissionCommander),
		entry("b", 58, scoring.RoleMissionSpecialist),
		entry("c", 70, scoring.RoleChiefMedicalOfficer),
		entry("d", 40, scoring.RoleSupportSpecialist),
		entry("e", 95, scoring.RoleMissionCommander),
	}}
}

func TestAssess(t *testing.T) {
	t.Parallel()

	age := 30
	records := []*candidate.Record{
		{ID: "first", FullName: "First", Age: &age, GeneralHealth: "Excellent"},
		nil,
		{FullName: "Third", Skills: []string{candidate.SkillMedical}},
	}

	roster := Assess(records)
	if roster.Len() != 2 {
		t.Fatalf("expected nil records to be skipped, got %d entries", roster.Len())
	}

	if got := roster.IDs(); !slices.Equal(got, []string{"first", "candidate-3"}) {
		t.Fatalf("unexpected ids: %v", got)
	}

	for i, e := range roster.Items {
		if e.Assessment != scoring.Evaluate(e.Record) {
			t.Fatalf("entry %d: assessment differs from engine result", i)
		}
	}
}

func TestRosterExclude(t *testing.T) {
	t.Parallel()

	roster := testRoster()
	removed := roster.Exclude([]string{"b", "missing", "e"})

	if !slices.Equal(removed, []string{"b", "e"}) {
		t.Fatalf("unexpected removed ids: %v", removed)
	}
	if got := roster.IDs(); !slices.Equal(got, []string{"a", "c", "d"}) {
		t.Fatalf("unexpected remaining ids: %v", got)
	}
	if roster.FindByID("b") != nil {
		t.Fatalf("excluded entry must not be found")
	}
	if roster.FindByID("c") == nil {
		t.Fatalf("expected kept entry to be found")
	}

	var empty *Roster
	if empty.Len() != 0 || empty.FindByID("a") != nil || len(empty.Exclude([]string{"a"})) != 0 {
		t.Fatalf("nil roster must behave as empty")
	}
}

func TestReportByRole(t *testing.T) {
	t.Parallel()

	report := testRoster().ReportByRole()

	var roles []string
	for _, group := range report {
		roles = append(roles, group.Role)
	}
	expected := []string{
		scoring.RoleMissionCommander,
		scoring.RoleMissionSpecialist,
		scoring.RoleSupportSpecialist,
		scoring.RoleChiefMedicalOfficer,
	}
	if !slices.Equal(roles, expected) {
		t.Fatalf("unexpected role order: %v", roles)
	}

	commanders := report[0].Candidates
	if len(commanders) != 2 || commanders[0].ID != "e" || commanders[1].ID != "a" {
		t.Fatalf("expected best score first, got %+v", commanders)
	}
	if commanders[0].Name != "Name e" || commanders[0].Status != scoring.StatusSelected || commanders[0].Breakdown.Mental != 95 {
		t.Fatalf("unexpected report line: %+v", commanders[0])
	}
}

func TestDumpToTmpFile(t *testing.T) {
	t.Parallel()

	roster := testRoster()
	roster.RunID = "run-1"

	path, err := roster.DumpToTmpFile("roster_test_*.json")
	if err != nil {
		t.Fatalf("dump: %v", err)
	}
	t.Cleanup(func() { os.Remove(path) })

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}

	var decoded Roster
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("dump is not json: %v", err)
	}
	if decoded.RunID != "run-1" || decoded.Len() != roster.Len() {
		t.Fatalf("unexpected dump: %+v", decoded)
	}
	if decoded.Items[2].Assessment.SuggestedRole != scoring.RoleChiefMedicalOfficer {
		t.Fatalf("unexpected entry: %+v", decoded.Items[2])
	}
}

func TestLoadExcludedIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		return path
	}

	ids, err := LoadExcludedIDs(write("list.yaml", "- a\n- ' b '\n- ''\n"))
	if err != nil || !slices.Equal(ids, []string{"a", "b"}) {
		t.Fatalf("unexpected yaml result: %v, %v", ids, err)
	}

	ids, err = LoadExcludedIDs(write("list.json", `["x", "y"]`))
	if err != nil || !slices.Equal(ids, []string{"x", "y"}) {
		t.Fatalf("unexpected json result: %v, %v", ids, err)
	}

	ids, err = LoadExcludedIDs(write("empty.yaml", "\n"))
	if err != nil || len(ids) != 0 {
		t.Fatalf("expected no ids for empty file, got %v, %v", ids, err)
	}

	if _, err := LoadExcludedIDs(write("map.yaml", "a: b\n")); err == nil {
		t.Fatalf("expected error for a mapping")
	}
	if _, err := LoadExcludedIDs(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
