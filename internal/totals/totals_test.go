package totals

import (
	"testing"

	"listical-cli/internal/model"
)

func TestPerProjectScheduledAndDoneOnly(t *testing.T) {
	rows := []model.Row{
		{ID: "hdr", Kind: model.KindProjectHeader, GroupID: "grp-a"},
		{ID: "t1", Kind: model.KindTask, ParentGroupID: "grp-a", Status: model.StatusScheduled, TimeValue: "2.00"},
		{ID: "t2", Kind: model.KindTask, ParentGroupID: "grp-a", Status: model.StatusDone, TimeValue: "1.30"},
		{ID: "t3", Kind: model.KindTask, ParentGroupID: "grp-a", Status: model.StatusBlocked, TimeValue: "4.00"},
		{ID: "t4", Kind: model.KindTask, ParentGroupID: "grp-b", Status: model.StatusDone, TimeValue: "1.00"},
	}
	got := PerProject(rows)
	// 2h00 + 1h30 in base-60 is 3h30.
	if got["grp-a"] != "3.30" {
		t.Fatalf("grp-a total = %q, want 3.30", got["grp-a"])
	}
	if _, ok := got["grp-b"]; ok {
		t.Fatalf("grp-b has no project header and must not appear")
	}
}

func TestPerDayCountsTokenAsTimeValue(t *testing.T) {
	rows := []model.Row{
		{ID: "t1", Kind: model.KindTask, TimeValue: "0.30", Days: []string{model.UseTimeValue, "1.00", ""}},
		{ID: "t2", Kind: model.KindTask, TimeValue: "2.00", Days: []string{"0.15", "", "junk"}},
		{ID: "hdr", Kind: model.KindProjectHeader, GroupID: "g", Days: nil},
	}
	got := PerDay(rows, 3)
	if got[0] != "0.45" || got[1] != "1.00" || got[2] != "0.00" {
		t.Fatalf("per-day = %v", got)
	}
}

func archiveFixture() []model.Row {
	return []model.Row{
		{ID: "wk", Kind: model.KindArchiveWeek, GroupID: "grp-wk"},
		{ID: "ap", Kind: model.KindArchivedProject, GroupID: "grp-ap", ParentGroupID: "grp-wk"},
		{ID: "t1", Kind: model.KindTask, Archived: true, ParentGroupID: "grp-ap", Status: model.StatusDone, TimeValue: "2.00"},
		{ID: "t2", Kind: model.KindTask, Archived: true, ParentGroupID: "grp-ap", Status: model.StatusDone, TimeValue: "1.30"},
		{ID: "t3", Kind: model.KindTask, Archived: true, ParentGroupID: "grp-ap", Status: model.StatusAbandoned, TimeValue: "9.00"},
	}
}

func TestArchiveTotalsHMM(t *testing.T) {
	perProject, perWeek := Archive(archiveFixture())
	if perProject["grp-ap"] != "3.30" {
		t.Fatalf("archived project total = %q, want 3.30", perProject["grp-ap"])
	}
	if perWeek["grp-wk"] != "3.30" {
		t.Fatalf("archive week total = %q, want 3.30", perWeek["grp-wk"])
	}
}

func TestArchiveTrailingGroupNotDropped(t *testing.T) {
	rows := archiveFixture()
	// A second week with a trailing task and no terminator row after it.
	rows = append(rows,
		model.Row{ID: "wk2", Kind: model.KindArchiveWeek, GroupID: "grp-wk2"},
		model.Row{ID: "ap2", Kind: model.KindArchivedProject, GroupID: "grp-ap2", ParentGroupID: "grp-wk2"},
		model.Row{ID: "t9", Kind: model.KindTask, Archived: true, ParentGroupID: "grp-ap2", Status: model.StatusDone, TimeValue: "0.45"},
	)
	perProject, perWeek := Archive(rows)
	if perWeek["grp-wk2"] != "0.45" || perProject["grp-ap2"] != "0.45" {
		t.Fatalf("trailing group dropped: %v %v", perWeek, perProject)
	}
	// The first week is unaffected by the second.
	if perWeek["grp-wk"] != "3.30" {
		t.Fatalf("first week total = %q", perWeek["grp-wk"])
	}
}

func TestAnnotateArchiveWeeks(t *testing.T) {
	rows := AnnotateArchiveWeeks(archiveFixture())
	if rows[0].ArchiveTotalHours != "3.30" {
		t.Fatalf("archiveTotalHours = %q, want 3.30", rows[0].ArchiveTotalHours)
	}
}
