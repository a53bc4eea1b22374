package command

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"listical-cli/internal/model"
)

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%02d", n)
	}
}

func task(id, name string) model.Row {
	return model.Row{ID: id, Kind: model.KindTask, TaskName: name}
}

func testBoard(rows ...model.Row) *Board {
	return NewBoard(rows, 7, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC))
}

// snapshot captures the board for later deep-equality checks.
func snapshot(b *Board) ([]model.Row, map[string]bool) {
	return model.CloneRows(b.Rows), b.cloneCollapsed()
}

func requireRestored(t *testing.T, b *Board, rows []model.Row, collapsed map[string]bool) {
	t.Helper()
	if !reflect.DeepEqual(b.Rows, rows) {
		t.Fatalf("rows not restored:\n got %+v\nwant %+v", b.Rows, rows)
	}
	if !reflect.DeepEqual(b.Collapsed, collapsed) {
		t.Fatalf("collapsed not restored: got %v want %v", b.Collapsed, collapsed)
	}
}

func TestSetCellUndoRedo(t *testing.T) {
	b := testBoard(task("t1", "write"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewSetCell(b, CellRef{"t1", 2}, "2.00"))
	after, _ := snapshot(b)
	if b.Rows[0].Days[2] != "2.00" {
		t.Fatalf("cell = %q", b.Rows[0].Days[2])
	}
	if b.Rows[0].Status != model.StatusScheduled {
		t.Fatalf("status = %q, want derived Scheduled", b.Rows[0].Status)
	}

	if !e.Undo(b) {
		t.Fatalf("undo failed")
	}
	requireRestored(t, b, before, beforeC)

	if !e.Redo(b) {
		t.Fatalf("redo failed")
	}
	if !reflect.DeepEqual(b.Rows, after) {
		t.Fatalf("redo did not reproduce:\n got %+v\nwant %+v", b.Rows, after)
	}
}

func TestSetCellMissingRowNoops(t *testing.T) {
	b := testBoard(task("t1", "write"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewSetCell(b, CellRef{"ghost", 0}, "1.00"))
	requireRestored(t, b, before, beforeC)
}

func TestHabitPromotionUndoRestoresEstimate(t *testing.T) {
	tk := task("t1", "run")
	tk.Estimate = "1 Hour"
	b := testBoard(tk)
	e := NewExecutor()
	before, beforeC := snapshot(b)
	if before[0].TimeValue != "1.00" {
		t.Fatalf("baseline timeValue = %q", before[0].TimeValue)
	}

	e.Do(b, NewPasteCells(b, map[CellRef]string{
		{"t1", 0}: "2.00",
		{"t1", 3}: "1.30",
	}))
	r := b.Row("t1")
	if r.Estimate != model.EstimateMulti {
		t.Fatalf("estimate = %q, want Multi", r.Estimate)
	}
	if r.OriginalEstimate != "1 Hour" {
		t.Fatalf("originalEstimate = %q", r.OriginalEstimate)
	}
	if r.TimeValue != "3.30" {
		t.Fatalf("timeValue = %q, want 3.30", r.TimeValue)
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestSetFieldUndo(t *testing.T) {
	b := testBoard(task("t1", "draft"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewSetField(b, "t1", FieldTaskName, "draft v2"))
	if b.Rows[0].TaskName != "draft v2" {
		t.Fatalf("taskName = %q", b.Rows[0].TaskName)
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestSetStatusAbandonedClearsDays(t *testing.T) {
	tk := task("t1", "ship")
	tk.Days = []string{"2.00", "", "1.00"}
	b := testBoard(tk)
	e := NewExecutor()
	before, beforeC := snapshot(b)
	if before[0].Status != model.StatusScheduled {
		t.Fatalf("baseline status = %q", before[0].Status)
	}

	e.Do(b, NewSetStatus(b, "t1", model.StatusAbandoned))
	r := b.Row("t1")
	if r.Status != model.StatusAbandoned {
		t.Fatalf("status = %q", r.Status)
	}
	for d, v := range r.Days {
		if v != "" {
			t.Fatalf("day %d not cleared: %q", d, v)
		}
	}

	// One undo step brings back both the status and the cleared entries.
	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestSetTimeValuePromotesToCustom(t *testing.T) {
	tk := task("t1", "review")
	tk.Estimate = "1 Hour"
	b := testBoard(tk)
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewSetTimeValue(b, "t1", "1.30"))
	r := b.Row("t1")
	if r.Estimate != model.EstimateCustom {
		t.Fatalf("estimate = %q, want Custom", r.Estimate)
	}
	if r.TimeValue != "1.30" {
		t.Fatalf("timeValue = %q", r.TimeValue)
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestSetTimeValueMatchingEstimateKeepsLabel(t *testing.T) {
	tk := task("t1", "review")
	tk.Estimate = "1 Hour"
	b := testBoard(tk)

	c := NewSetTimeValue(b, "t1", "1.00")
	if c.NewEst != "1 Hour" {
		t.Fatalf("estimate promoted to %q for a matching value", c.NewEst)
	}
}

func TestClearCellsRestoresExactValues(t *testing.T) {
	tk := task("t1", "gym")
	tk.Days = []string{"1.00", "0.30", "", "2.15"}
	b := testBoard(tk)
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewClearCells(b, []CellRef{{"t1", 0}, {"t1", 1}, {"t1", 3}}))
	r := b.Row("t1")
	for _, d := range []int{0, 1, 3} {
		if r.Days[d] != "" {
			t.Fatalf("day %d = %q", d, r.Days[d])
		}
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestDeleteRowsRestoresOriginalIndices(t *testing.T) {
	b := testBoard(task("r1", "a"), task("r2", "b"), task("r3", "c"), task("r4", "d"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	// Ids arrive in selection order, not list order.
	e.Do(b, NewDeleteRows(b, []string{"r3", "r1"}))
	if len(b.Rows) != 2 || b.Rows[0].ID != "r2" || b.Rows[1].ID != "r4" {
		t.Fatalf("rows after delete = %+v", b.Rows)
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestInsertRowsUndoRemoves(t *testing.T) {
	b := testBoard(task("r1", "a"), task("r2", "b"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewInsertRows(1, []model.Row{task("r9", "new")}))
	if len(b.Rows) != 3 || b.Rows[1].ID != "r9" {
		t.Fatalf("rows after insert = %+v", b.Rows)
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestMoveRowsUndo(t *testing.T) {
	b := testBoard(task("r1", "a"), task("r2", "b"), task("r3", "c"), task("r4", "d"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewMoveRows(b, []string{"r1"}, 2))
	got := []string{b.Rows[0].ID, b.Rows[1].ID, b.Rows[2].ID, b.Rows[3].ID}
	want := []string{"r2", "r3", "r1", "r4"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}

	e.Undo(b)
	requireRestored(t, b, before, beforeC)
}

func TestToggleCollapseUndo(t *testing.T) {
	b := testBoard(task("r1", "a"))
	e := NewExecutor()
	_, beforeC := snapshot(b)

	e.Do(b, NewToggleCollapse(b, "g1"))
	if !b.Collapsed["g1"] {
		t.Fatalf("group not collapsed")
	}
	e.Undo(b)
	if !reflect.DeepEqual(b.Collapsed, beforeC) {
		t.Fatalf("collapsed = %v", b.Collapsed)
	}
}

func TestToggleHideDayUndo(t *testing.T) {
	b := testBoard(task("r1", "a"))
	e := NewExecutor()

	e.Do(b, NewToggleHideDay(b, 2))
	if !b.HiddenDays[2] {
		t.Fatalf("day not hidden")
	}
	e.Do(b, NewToggleHideDay(b, 2))
	if len(b.HiddenDays) != 0 {
		t.Fatalf("second toggle left hidden days: %v", b.HiddenDays)
	}
	e.Undo(b)
	if !b.HiddenDays[2] {
		t.Fatalf("undo did not restore the hidden day")
	}
	e.Undo(b)
	if len(b.HiddenDays) != 0 {
		t.Fatalf("hiddenDays = %v", b.HiddenDays)
	}
}

func TestAddWeekUndo(t *testing.T) {
	b := testBoard(task("t1", "plan"))
	e := NewExecutor()
	before, beforeC := snapshot(b)

	e.Do(b, NewAddWeek(b))
	if b.TotalDays != 14 {
		t.Fatalf("totalDays = %d", b.TotalDays)
	}
	if len(b.Rows[0].Days) != 14 {
		t.Fatalf("days not backfilled: %d", len(b.Rows[0].Days))
	}

	e.Undo(b)
	if b.TotalDays != 7 {
		t.Fatalf("totalDays after undo = %d", b.TotalDays)
	}
	requireRestored(t, b, before, beforeC)
}

func TestArchiveWeekUndoRedo(t *testing.T) {
	done := task("t1", "ship")
	done.Status = model.StatusDone
	done.Days = []string{"2.00"}
	open := task("t2", "keep going")

	b := testBoard(
		model.Row{ID: "p", Kind: model.KindProjectHeader, GroupID: "gp", Project: "Alpha"},
		model.Row{ID: "g", Kind: model.KindProjectGeneral, GroupID: "gg", ParentGroupID: "gp"},
		model.Row{ID: "u", Kind: model.KindProjectUnsched, GroupID: "gu", ParentGroupID: "gp"},
		done,
		open,
	)
	e := NewExecutor()
	before, beforeC := snapshot(b)

	cmd := NewArchiveWeek(b, seqIDs())
	e.Do(b, cmd)
	if cmd.Err != nil {
		t.Fatalf("archive failed: %v", cmd.Err)
	}
	res, ok := cmd.Result()
	if !ok {
		t.Fatalf("no result cached")
	}
	if !b.Collapsed[res.WeekGroupID] {
		t.Fatalf("archived week should start collapsed")
	}
	if model.FindRow(b.Rows, "t1") >= 0 {
		t.Fatalf("done task still in the live area")
	}
	if model.FindRow(b.Rows, "t2") < 0 {
		t.Fatalf("open task went missing")
	}
	after, afterC := snapshot(b)

	e.Undo(b)
	requireRestored(t, b, before, beforeC)

	// Redo must reproduce the identical block, ids included.
	e.Redo(b)
	requireRestored(t, b, after, afterC)
}

func TestDoClearsRedo(t *testing.T) {
	b := testBoard(task("t1", "a"))
	e := NewExecutor()

	e.Do(b, NewSetCell(b, CellRef{"t1", 0}, "1.00"))
	e.Undo(b)
	if !e.CanRedo() {
		t.Fatalf("expected a redo entry")
	}
	e.Do(b, NewSetCell(b, CellRef{"t1", 1}, "2.00"))
	if e.CanRedo() {
		t.Fatalf("redo stack must clear on a fresh command")
	}
	if e.UndoDepth() != 1 {
		t.Fatalf("undo depth = %d", e.UndoDepth())
	}
}

func TestUndoEmptyStack(t *testing.T) {
	b := testBoard(task("t1", "a"))
	e := NewExecutor()
	if e.Undo(b) || e.Redo(b) {
		t.Fatalf("undo/redo on empty stacks must report false")
	}
}

func TestJournalReceivesCommands(t *testing.T) {
	b := testBoard(task("t1", "a"))
	e := NewExecutor()
	var names []string
	e.Journal = func(name string, payload any) { names = append(names, name) }

	e.Do(b, NewSetCell(b, CellRef{"t1", 0}, "1.00"))
	e.Do(b, NewSetField(b, "t1", FieldProject, "Alpha"))
	if !reflect.DeepEqual(names, []string{"cell.set", "field.set"}) {
		t.Fatalf("journal = %v", names)
	}
}
