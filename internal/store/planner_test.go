package store

import (
	"encoding/json"
	"reflect"
	"testing"

	"listical-cli/internal/model"
)

func testStore(t *testing.T) Store {
	t.Helper()
	return Store{Dir: t.TempDir()}
}

func sampleState() *PlannerState {
	return &PlannerState{
		Rows: []model.Row{
			{ID: "t1", Kind: model.KindTask, TaskName: "write", Days: []string{"2.00", "", "", "", "", "", ""}},
		},
		TotalDays: 7,
		StartDate: "2026-01-05",
		Collapsed: map[string]bool{"g1": true},
	}
}

func TestPlannerRoundTrip(t *testing.T) {
	s := testStore(t)
	want := sampleState()
	if err := s.SavePlanner("proj1", 2026, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadPlanner("proj1", 2026)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatalf("load returned no data")
	}
	if got.Version != 1 {
		t.Fatalf("version = %d", got.Version)
	}
	if !reflect.DeepEqual(got.Rows, want.Rows) || got.TotalDays != want.TotalDays || got.StartDate != want.StartDate {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestPlannerMissingIsNoData(t *testing.T) {
	s := testStore(t)
	got, err := s.LoadPlanner("nope", 2026)
	if err != nil {
		t.Fatalf("missing blob must not error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil state, got %+v", got)
	}
}

func TestPlannerLegacyKeyFallback(t *testing.T) {
	s := testStore(t)
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	// Simulate a pre-migration blob written under the no-year key.
	b, _ := json.Marshal(sampleState())
	if err := s.openDiskv().Write(legacyPlannerKey("proj1"), b); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	got, err := s.LoadPlanner("proj1", 2026)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || got.TotalDays != 7 {
		t.Fatalf("legacy fallback not read: %+v", got)
	}
}

func TestListPlannerProjectsIncludesLegacy(t *testing.T) {
	s := testStore(t)
	if err := s.SavePlanner("alpha", 2026, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	b, _ := json.Marshal(sampleState())
	if err := s.openDiskv().Write(legacyPlannerKey("beta"), b); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	got, err := s.ListPlannerProjects(2026)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"alpha", "beta"}) {
		t.Fatalf("projects = %v", got)
	}
}

func TestListPlannerProjectsDashedIDs(t *testing.T) {
	s := testStore(t)
	// A dashed project id under a year key must not be mistaken for a legacy
	// no-year blob.
	if err := s.SavePlanner("p-3fkq8a2x", 2026, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.SavePlanner("other", 2025, sampleState()); err != nil {
		t.Fatalf("save other year: %v", err)
	}
	b, _ := json.Marshal(sampleState())
	if err := s.openDiskv().Write(legacyPlannerKey("q-7mzt0c4d"), b); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	got, err := s.ListPlannerProjects(2026)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"p-3fkq8a2x", "q-7mzt0c4d"}) {
		t.Fatalf("projects = %v", got)
	}
}

func TestIsLegacyPlannerKey(t *testing.T) {
	cases := []struct {
		key  string
		want bool
	}{
		{"planner-proj1", true},
		{"planner-p-3fkq8a2x", true},
		{"planner-2026-proj1", false},
		{"planner-2025-p-3fkq8a2x", false},
		{"planner-", false},
		{"tactics-2026-metrics", false},
	}
	for _, tc := range cases {
		if got := isLegacyPlannerKey(tc.key); got != tc.want {
			t.Fatalf("isLegacyPlannerKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestTacticsLegacyFallback(t *testing.T) {
	s := testStore(t)
	if err := s.Ensure(); err != nil {
		t.Fatalf("ensure: %v", err)
	}
	legacy := &Tactics{MinHours: map[string]string{"monday": "2.00"}}
	b, _ := json.Marshal(legacy)
	if err := s.openDiskv().Write(legacyTacticsKey, b); err != nil {
		t.Fatalf("write legacy: %v", err)
	}

	got, err := s.LoadTactics(2026)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.MinHours["monday"] != "2.00" {
		t.Fatalf("tactics = %+v", got)
	}

	// A year-scoped write then shadows the legacy blob.
	if err := s.SaveTactics(2026, &Tactics{MinHours: map[string]string{"monday": "3.00"}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err = s.LoadTactics(2026)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.MinHours["monday"] != "3.00" {
		t.Fatalf("year-scoped blob not preferred: %+v", got)
	}
}

func TestStagingRoundTrip(t *testing.T) {
	s := testStore(t)
	entries := []StagingEntry{
		{ID: "s1", Title: "learn sourdough", Plan: []PlanRow{{Label: "starter", Estimate: "0.30"}}},
	}
	if err := s.SaveStaging(2026, entries); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.LoadStaging(2026)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestKeyForPath(t *testing.T) {
	s := testStore(t)
	path := s.plannerDir() + "/planner/2026/proj1"
	if got := s.keyForPath(path); got != "planner-2026-proj1" {
		t.Fatalf("key = %q", got)
	}
	if got := s.keyForPath("/elsewhere/file"); got != "" {
		t.Fatalf("out-of-tree path must map to no key, got %q", got)
	}
}
