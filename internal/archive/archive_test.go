package archive

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"listical-cli/internal/model"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("new-%d", n)
	}
}

func days(entries ...string) []string {
	d := make([]string, 14)
	copy(d, entries)
	return d
}

func fixtureInput() Input {
	rows := []model.Row{
		{ID: "tl", Kind: model.KindTimelineHeader, Timeline: model.TimelineWeek},
		{ID: "min", Kind: model.KindDailyBound, Bound: model.BoundMin, Days: days("1.00", "1.00")},
		{ID: "max", Kind: model.KindDailyBound, Bound: model.BoundMax, Days: days("8.00", "8.00")},
		{ID: "hdr", Kind: model.KindProjectHeader, GroupID: "grp-p", Label: "Home"},
		{ID: "gen", Kind: model.KindProjectGeneral, GroupID: "grp-gen", ParentGroupID: "grp-p"},
		{ID: "uns", Kind: model.KindProjectUnsched, GroupID: "grp-uns", ParentGroupID: "grp-p"},
		{ID: "done", Kind: model.KindTask, TaskName: "done one", ParentGroupID: "grp-p",
			Status: model.StatusDone, Recurring: model.RecurringNo, TimeValue: "2.00", Days: days("2.00")},
		{ID: "aband", Kind: model.KindTask, TaskName: "gave up", ParentGroupID: "grp-p",
			Status: model.StatusAbandoned, Recurring: model.RecurringNo, TimeValue: "1.30", Days: days()},
		{ID: "recur", Kind: model.KindTask, TaskName: "daily run", ParentGroupID: "grp-p",
			Status: model.StatusDone, Recurring: model.RecurringYes, TimeValue: "0.30", Days: days("0.30")},
		{ID: "open", Kind: model.KindTask, TaskName: "still going", ParentGroupID: "grp-p",
			Status: model.StatusScheduled, Recurring: model.RecurringNo, TimeValue: "1.00", Days: days("1.00")},
	}
	return Input{
		Rows:      rows,
		TotalDays: 14,
		StartDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		NewID:     seqIDs(),
	}
}

func TestWeekBuildsArchiveBlock(t *testing.T) {
	in := fixtureInput()
	res, err := Week(in)
	if err != nil {
		t.Fatalf("Week: %v", err)
	}

	if res.WeekNumber != 1 {
		t.Fatalf("week number = %d", res.WeekNumber)
	}
	if res.WeekLabel != "Week 1" {
		t.Fatalf("week label = %q", res.WeekLabel)
	}
	if res.DateRange != "Jan 5 – Jan 11, 2026" {
		t.Fatalf("date range = %q", res.DateRange)
	}

	wk := res.Rows[model.FindRow(res.Rows, res.WeekRowID)]
	if wk.Kind != model.KindArchiveWeek {
		t.Fatalf("week row kind = %q", wk.Kind)
	}
	if wk.MinHours != "2.00" || wk.MaxHours != "16.00" {
		t.Fatalf("bound rollups = %q / %q", wk.MinHours, wk.MaxHours)
	}

	// Archived weeks start collapsed.
	if !res.Collapsed[res.WeekGroupID] {
		t.Fatalf("new archive week should be collapsed")
	}

	// The input is untouched.
	if model.FindRow(in.Rows, "done") < 0 || in.Rows[8].Status != model.StatusDone {
		t.Fatalf("input mutated")
	}
}

func TestWeekRoutesDoneAndAbandoned(t *testing.T) {
	res, err := Week(fixtureInput())
	if err != nil {
		t.Fatalf("Week: %v", err)
	}

	var general, unscheduled model.Row
	for _, r := range res.Rows {
		switch r.Kind {
		case model.KindArchivedGeneral:
			general = r
		case model.KindArchivedUnsched:
			unscheduled = r
		}
	}
	if general.ID == "" || unscheduled.ID == "" {
		t.Fatalf("archived sections missing")
	}

	byName := func(name string) model.Row {
		for _, r := range res.Rows {
			if r.Kind == model.KindTask && r.Archived && r.TaskName == name {
				return r
			}
		}
		return model.Row{}
	}
	if got := byName("done one"); got.ParentGroupID != general.GroupID {
		t.Fatalf("done task parent = %q, want general %q", got.ParentGroupID, general.GroupID)
	}
	// Abandoned always routes to unscheduled; the rule is uniform on purpose.
	if got := byName("gave up"); got.ParentGroupID != unscheduled.GroupID {
		t.Fatalf("abandoned task parent = %q, want unscheduled %q", got.ParentGroupID, unscheduled.GroupID)
	}

	// Non-recurring originals are physically relocated.
	for _, r := range res.Rows {
		if (r.ID == "done" || r.ID == "aband") && !r.Archived {
			t.Fatalf("original %s still present outside the archive", r.ID)
		}
	}
	if model.FindRow(res.Rows, "done") >= 0 {
		t.Fatalf("relocated original kept its old row")
	}
}

func TestWeekResetsRecurring(t *testing.T) {
	res, err := Week(fixtureInput())
	if err != nil {
		t.Fatalf("Week: %v", err)
	}

	idx := model.FindRow(res.Rows, "recur")
	if idx < 0 {
		t.Fatalf("recurring original must stay in place")
	}
	r := res.Rows[idx]
	if r.Status != model.StatusNotScheduled {
		t.Fatalf("recurring status = %q", r.Status)
	}
	for _, d := range r.Days {
		if d != "" {
			t.Fatalf("recurring days not cleared: %v", r.Days)
		}
	}

	// And an archived snapshot copy exists with the original day entries.
	found := false
	for _, row := range res.Rows {
		if row.Archived && row.TaskName == "daily run" {
			found = true
			if row.Days[0] != "0.30" {
				t.Fatalf("snapshot copy lost day entries")
			}
			if row.ID == "recur" {
				t.Fatalf("snapshot copy must get a fresh id")
			}
		}
	}
	if !found {
		t.Fatalf("no archived copy of the recurring task")
	}
}

func TestWeekLeavesOpenTasksAlone(t *testing.T) {
	res, err := Week(fixtureInput())
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	idx := model.FindRow(res.Rows, "open")
	if idx < 0 {
		t.Fatalf("open task removed")
	}
	if res.Rows[idx].Archived || res.Rows[idx].Status != model.StatusScheduled {
		t.Fatalf("open task altered: %+v", res.Rows[idx])
	}
}

func TestSecondWeekInsertsAfterFirst(t *testing.T) {
	in := fixtureInput()
	first, err := Week(in)
	if err != nil {
		t.Fatalf("first Week: %v", err)
	}

	in2 := in
	in2.Rows = first.Rows
	in2.Collapsed = first.Collapsed
	second, err := Week(in2)
	if err != nil {
		t.Fatalf("second Week: %v", err)
	}

	firstIdx := model.FindRow(second.Rows, first.WeekRowID)
	secondIdx := model.FindRow(second.Rows, second.WeekRowID)
	if firstIdx < 0 || secondIdx < 0 || secondIdx < firstIdx {
		t.Fatalf("second archive week at %d, first at %d", secondIdx, firstIdx)
	}
	// Both weeks stay collapsed.
	if !second.Collapsed[first.WeekGroupID] || !second.Collapsed[second.WeekGroupID] {
		t.Fatalf("collapsed set lost a week")
	}
}

func TestWeekAllColumnsHiddenFails(t *testing.T) {
	in := fixtureInput()
	in.HiddenDays = map[int]bool{}
	for d := 0; d < in.TotalDays; d++ {
		in.HiddenDays[d] = true
	}
	_, err := Week(in)
	if err == nil {
		t.Fatalf("expected validating error")
	}
	var ae *Error
	if !errors.As(err, &ae) || ae.Phase != "validating" {
		t.Fatalf("error = %v", err)
	}
}

func TestHiddenColumnsShiftWeekNumber(t *testing.T) {
	in := fixtureInput()
	in.HiddenDays = map[int]bool{}
	for d := 0; d < 7; d++ {
		in.HiddenDays[d] = true
	}
	res, err := Week(in)
	if err != nil {
		t.Fatalf("Week: %v", err)
	}
	if res.WeekNumber != 2 {
		t.Fatalf("week number = %d, want 2", res.WeekNumber)
	}
}

func TestAddWeekBackfills(t *testing.T) {
	in := fixtureInput()
	rows, total := AddWeek(in.Rows, 84)
	if total != 91 {
		t.Fatalf("total = %d", total)
	}
	for _, r := range rows {
		if len(r.Days) != 91 {
			t.Fatalf("row %s has %d day entries", r.ID, len(r.Days))
		}
		for d := 84; d < 91; d++ {
			if r.Days[d] != "" {
				t.Fatalf("new day column not empty")
			}
		}
	}
	// Existing values untouched.
	idx := model.FindRow(rows, "done")
	if rows[idx].Days[0] != "2.00" {
		t.Fatalf("existing day value altered")
	}
}
