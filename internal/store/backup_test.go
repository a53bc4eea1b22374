package store

import "testing"

func TestBackupToCopiesPlannerTree(t *testing.T) {
	s := testStore(t)
	if err := s.SavePlanner("proj1", 2026, sampleState()); err != nil {
		t.Fatalf("save: %v", err)
	}

	dest := t.TempDir()
	if err := s.BackupTo(dest); err != nil {
		t.Fatalf("backup: %v", err)
	}

	got, err := (Store{Dir: dest}).LoadPlanner("proj1", 2026)
	if err != nil {
		t.Fatalf("load from backup: %v", err)
	}
	if got == nil || got.TotalDays != 7 {
		t.Fatalf("backup blob missing or wrong: %+v", got)
	}

	// Re-running into the same destination refreshes the copies.
	next := sampleState()
	next.TotalDays = 14
	if err := s.SavePlanner("proj1", 2026, next); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.BackupTo(dest); err != nil {
		t.Fatalf("second backup: %v", err)
	}
	got, err = (Store{Dir: dest}).LoadPlanner("proj1", 2026)
	if err != nil || got == nil {
		t.Fatalf("reload from backup: %v, %+v", err, got)
	}
	if got.TotalDays != 14 {
		t.Fatalf("stale backup survived re-run: totalDays = %d", got.TotalDays)
	}
}
