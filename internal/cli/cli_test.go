package cli

import (
	"bytes"
	"strings"
	"testing"

	"listical-cli/internal/model"
	"listical-cli/internal/store"
)

func runCLI(t *testing.T, args ...string) string {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		t.Fatalf("listical %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestInitPersistsScaffold(t *testing.T) {
	t.Setenv("LISTICAL_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	runCLI(t, "--dir", dir, "--planner", "p", "--year", "2026", "init")

	st, err := (store.Store{Dir: dir}).LoadPlanner("p", 2026)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if st == nil {
		t.Fatal("init left no planner blob behind")
	}
	if len(st.Rows) == 0 {
		t.Fatal("persisted scaffold has no rows")
	}
}

func TestTasksAddThenList(t *testing.T) {
	t.Setenv("LISTICAL_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	out := runCLI(t, "--dir", dir, "--planner", "p", "--year", "2026", "tasks", "add", "water the plants")
	if !strings.Contains(out, "water the plants") {
		t.Fatalf("add output missing task name: %s", out)
	}

	out = runCLI(t, "--dir", dir, "--planner", "p", "--year", "2026", "tasks", "list")
	if !strings.Contains(out, "water the plants") {
		t.Fatalf("list output missing task: %s", out)
	}
}

func TestProjectsAddPlacesAboveInbox(t *testing.T) {
	t.Setenv("LISTICAL_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	runCLI(t, "--dir", dir, "--planner", "p", "--year", "2026", "projects", "add", "Writing")
	out := runCLI(t, "--dir", dir, "--planner", "p", "--year", "2026", "projects", "list")
	if !strings.Contains(out, "Writing") {
		t.Fatalf("projects list missing new project: %s", out)
	}
}

func TestJournalRecordsCommands(t *testing.T) {
	t.Setenv("LISTICAL_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()

	runCLI(t, "--dir", dir, "--planner", "p", "--year", "2026", "tasks", "add", "x")
	out := runCLI(t, "--dir", dir, "journal", "--limit", "10")
	if !strings.Contains(out, "rows.insert") {
		t.Fatalf("journal missing rows.insert: %s", out)
	}
}

func TestFindProjectHeaderIsCaseInsensitive(t *testing.T) {
	rows := []model.Row{
		{ID: "h", Kind: model.KindProjectHeader, GroupID: "g1", Label: "Writing"},
	}
	if i := findProjectHeader(rows, "writing"); i != 0 {
		t.Fatalf("got index %d", i)
	}
	if i := findProjectHeader(rows, "reading"); i != -1 {
		t.Fatalf("expected -1, got %d", i)
	}
}

func TestEndOfProjectBlock(t *testing.T) {
	rows := []model.Row{
		{ID: "h1", Kind: model.KindProjectHeader, GroupID: "g1"},
		{ID: "gen", Kind: model.KindProjectGeneral, GroupID: "g2", ParentGroupID: "g1"},
		{ID: "t1", Kind: model.KindTask, ParentGroupID: "g2"},
		{ID: "uns", Kind: model.KindProjectUnsched, GroupID: "g3", ParentGroupID: "g1"},
		{ID: "h2", Kind: model.KindProjectHeader, GroupID: "g4"},
	}
	if end := endOfProjectBlock(rows, 0); end != 4 {
		t.Fatalf("end of block = %d, want 4", end)
	}
}

func TestParseBound(t *testing.T) {
	day, v, err := parseBound("monday=2.30")
	if err != nil || day != "monday" || v != "2.30" {
		t.Fatalf("got %q %q %v", day, v, err)
	}
	if _, _, err := parseBound("noday=2.30"); err == nil {
		t.Fatal("expected weekday error")
	}
	if _, _, err := parseBound("monday=2.75"); err == nil {
		t.Fatal("expected H.MM error")
	}
}
