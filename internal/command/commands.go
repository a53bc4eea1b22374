package command

import (
	"sort"

	"listical-cli/internal/archive"
	"listical-cli/internal/model"
	"listical-cli/internal/timefmt"
)

// CellRef addresses one day cell of one row.
type CellRef struct {
	RowID string
	Day   int
}

// SetCell writes one day cell.
type SetCell struct {
	Ref CellRef
	Old string
	New string
}

func NewSetCell(b *Board, ref CellRef, value string) *SetCell {
	old := ""
	if r := b.Row(ref.RowID); r != nil && ref.Day >= 0 && ref.Day < len(r.Days) {
		old = r.Days[ref.Day]
	}
	return &SetCell{Ref: ref, Old: old, New: value}
}

func (c *SetCell) Name() string { return "cell.set" }

func (c *SetCell) Execute(b *Board) { writeCell(b, c.Ref, c.New) }
func (c *SetCell) Undo(b *Board)    { writeCell(b, c.Ref, c.Old) }

func (c *SetCell) Payload() any {
	return map[string]any{"rowId": c.Ref.RowID, "day": c.Ref.Day, "old": c.Old, "new": c.New}
}

func writeCell(b *Board, ref CellRef, value string) {
	r := b.Row(ref.RowID)
	if r == nil || ref.Day < 0 {
		return
	}
	if ref.Day >= len(r.Days) {
		padded := make([]string, b.TotalDays)
		copy(padded, r.Days)
		r.Days = padded
		if ref.Day >= len(r.Days) {
			return
		}
	}
	r.Days[ref.Day] = value
}

// Field names a plain task column for SetField.
type Field string

const (
	FieldTaskName   Field = "taskName"
	FieldProject    Field = "project"
	FieldSubproject Field = "subproject"
	FieldRecurring  Field = "recurring"
	FieldEstimate   Field = "estimate"
)

// SetField writes one plain task column.
type SetField struct {
	RowID string
	Field Field
	Old   string
	New   string
}

func NewSetField(b *Board, rowID string, field Field, value string) *SetField {
	old := ""
	if r := b.Row(rowID); r != nil {
		old = readField(r, field)
	}
	return &SetField{RowID: rowID, Field: field, Old: old, New: value}
}

func (c *SetField) Name() string { return "field.set" }

func (c *SetField) Execute(b *Board) { applyField(b, c.RowID, c.Field, c.New) }
func (c *SetField) Undo(b *Board)    { applyField(b, c.RowID, c.Field, c.Old) }

func (c *SetField) Payload() any {
	return map[string]any{"rowId": c.RowID, "field": string(c.Field), "old": c.Old, "new": c.New}
}

func readField(r *model.Row, field Field) string {
	switch field {
	case FieldTaskName:
		return r.TaskName
	case FieldProject:
		return r.Project
	case FieldSubproject:
		return r.Subproject
	case FieldRecurring:
		return string(r.Recurring)
	case FieldEstimate:
		return string(r.Estimate)
	}
	return ""
}

func applyField(b *Board, rowID string, field Field, value string) {
	r := b.Row(rowID)
	if r == nil {
		return
	}
	switch field {
	case FieldTaskName:
		r.TaskName = value
	case FieldProject:
		r.Project = value
	case FieldSubproject:
		r.Subproject = value
	case FieldRecurring:
		r.Recurring = model.Recurring(value)
	case FieldEstimate:
		r.Estimate = model.Estimate(value)
	}
}

// SetStatus writes the status column. Setting Abandoned also clears every day
// entry on the row, bundled into the same command so undo is atomic.
type SetStatus struct {
	RowID   string
	Old     model.Status
	New     model.Status
	OldDays []string // captured only when New is Abandoned
}

func NewSetStatus(b *Board, rowID string, status model.Status) *SetStatus {
	c := &SetStatus{RowID: rowID, New: status}
	if r := b.Row(rowID); r != nil {
		c.Old = r.Status
		if status == model.StatusAbandoned {
			c.OldDays = make([]string, len(r.Days))
			copy(c.OldDays, r.Days)
		}
	}
	return c
}

func (c *SetStatus) Name() string { return "status.set" }

func (c *SetStatus) Execute(b *Board) {
	r := b.Row(c.RowID)
	if r == nil {
		return
	}
	r.Status = c.New
	if c.New == model.StatusAbandoned {
		for d := range r.Days {
			r.Days[d] = ""
		}
	}
}

func (c *SetStatus) Undo(b *Board) {
	r := b.Row(c.RowID)
	if r == nil {
		return
	}
	r.Status = c.Old
	if c.OldDays != nil {
		days := make([]string, len(c.OldDays))
		copy(days, c.OldDays)
		r.Days = days
	}
}

func (c *SetStatus) Payload() any {
	return map[string]any{"rowId": c.RowID, "old": string(c.Old), "new": string(c.New)}
}

// SetTimeValue writes the timeValue column directly. When the row's estimate
// would derive a different value, the estimate is promoted to Custom in the
// same command, otherwise the next normalize pass would overwrite the edit.
type SetTimeValue struct {
	RowID  string
	Old    string
	New    string
	OldEst model.Estimate
	NewEst model.Estimate
}

func NewSetTimeValue(b *Board, rowID, value string) *SetTimeValue {
	c := &SetTimeValue{RowID: rowID, New: value}
	r := b.Row(rowID)
	if r == nil {
		return c
	}
	c.Old = r.TimeValue
	c.OldEst = r.Estimate
	c.NewEst = r.Estimate
	if m, ok := model.EstimateToMinutes(r.Estimate); !ok || timefmt.Format(m) != value {
		c.NewEst = model.EstimateCustom
	}
	return c
}

func (c *SetTimeValue) Name() string { return "timeValue.set" }

func (c *SetTimeValue) Execute(b *Board) {
	r := b.Row(c.RowID)
	if r == nil {
		return
	}
	r.TimeValue = c.New
	r.Estimate = c.NewEst
}

func (c *SetTimeValue) Undo(b *Board) {
	r := b.Row(c.RowID)
	if r == nil {
		return
	}
	r.TimeValue = c.Old
	r.Estimate = c.OldEst
}

func (c *SetTimeValue) Payload() any {
	return map[string]any{"rowId": c.RowID, "old": c.Old, "new": c.New, "estimate": string(c.NewEst)}
}

// ClearCells blanks the day columns of the selected cells. Old values are a
// captured per-row-per-column map; restore is exact.
type ClearCells struct {
	Cells []SetCell
}

func NewClearCells(b *Board, refs []CellRef) *ClearCells {
	c := &ClearCells{}
	for _, ref := range refs {
		c.Cells = append(c.Cells, *NewSetCell(b, ref, ""))
	}
	return c
}

func (c *ClearCells) Name() string { return "cells.clear" }

func (c *ClearCells) Execute(b *Board) {
	for i := range c.Cells {
		c.Cells[i].Execute(b)
	}
}

func (c *ClearCells) Undo(b *Board) {
	for i := range c.Cells {
		c.Cells[i].Undo(b)
	}
}

func (c *ClearCells) Payload() any {
	return map[string]any{"cells": len(c.Cells)}
}

// PasteCells writes a batch of day cells in one undoable step.
type PasteCells struct {
	Cells []SetCell
}

func NewPasteCells(b *Board, writes map[CellRef]string) *PasteCells {
	c := &PasteCells{}
	refs := make([]CellRef, 0, len(writes))
	for ref := range writes {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool {
		if refs[i].RowID != refs[j].RowID {
			return refs[i].RowID < refs[j].RowID
		}
		return refs[i].Day < refs[j].Day
	})
	for _, ref := range refs {
		c.Cells = append(c.Cells, *NewSetCell(b, ref, writes[ref]))
	}
	return c
}

func (c *PasteCells) Name() string { return "cells.paste" }

func (c *PasteCells) Execute(b *Board) {
	for i := range c.Cells {
		c.Cells[i].Execute(b)
	}
}

func (c *PasteCells) Undo(b *Board) {
	for i := range c.Cells {
		c.Cells[i].Undo(b)
	}
}

func (c *PasteCells) Payload() any { return map[string]any{"cells": len(c.Cells)} }

// DeleteRows removes whole rows. Undo restores them at their original
// indices, ascending, so surrounding order is preserved.
type DeleteRows struct {
	entries []deletedRow
}

type deletedRow struct {
	Index int
	Row   model.Row
}

func NewDeleteRows(b *Board, ids []string) *DeleteRows {
	c := &DeleteRows{}
	for _, id := range ids {
		if i := model.FindRow(b.Rows, id); i >= 0 {
			c.entries = append(c.entries, deletedRow{Index: i, Row: b.Rows[i].Clone()})
		}
	}
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].Index < c.entries[j].Index })
	return c
}

func (c *DeleteRows) Name() string { return "rows.delete" }

func (c *DeleteRows) Execute(b *Board) {
	drop := make(map[string]bool, len(c.entries))
	for _, e := range c.entries {
		drop[e.Row.ID] = true
	}
	out := b.Rows[:0:0]
	for i := range b.Rows {
		if !drop[b.Rows[i].ID] {
			out = append(out, b.Rows[i])
		}
	}
	b.Rows = out
}

func (c *DeleteRows) Undo(b *Board) {
	// Ascending insertion keeps each captured index valid as earlier rows
	// come back.
	for _, e := range c.entries {
		at := e.Index
		if at > len(b.Rows) {
			at = len(b.Rows)
		}
		rows := make([]model.Row, 0, len(b.Rows)+1)
		rows = append(rows, b.Rows[:at]...)
		rows = append(rows, e.Row.Clone())
		rows = append(rows, b.Rows[at:]...)
		b.Rows = rows
	}
}

func (c *DeleteRows) Payload() any {
	ids := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		ids = append(ids, e.Row.ID)
	}
	return map[string]any{"rowIds": ids}
}

// InsertRows adds new rows at a fixed position (add task, add project,
// duplicate row). Undo removes them by id.
type InsertRows struct {
	Index int
	Rows  []model.Row
}

func NewInsertRows(index int, rows []model.Row) *InsertRows {
	return &InsertRows{Index: index, Rows: model.CloneRows(rows)}
}

func (c *InsertRows) Name() string { return "rows.insert" }

func (c *InsertRows) Execute(b *Board) {
	at := c.Index
	if at < 0 || at > len(b.Rows) {
		at = len(b.Rows)
	}
	rows := make([]model.Row, 0, len(b.Rows)+len(c.Rows))
	rows = append(rows, b.Rows[:at]...)
	rows = append(rows, model.CloneRows(c.Rows)...)
	rows = append(rows, b.Rows[at:]...)
	b.Rows = rows
}

func (c *InsertRows) Undo(b *Board) {
	drop := make(map[string]bool, len(c.Rows))
	for _, r := range c.Rows {
		drop[r.ID] = true
	}
	out := b.Rows[:0:0]
	for i := range b.Rows {
		if !drop[b.Rows[i].ID] {
			out = append(out, b.Rows[i])
		}
	}
	b.Rows = out
}

func (c *InsertRows) Payload() any {
	ids := make([]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		ids = append(ids, r.ID)
	}
	return map[string]any{"index": c.Index, "rowIds": ids}
}

// MoveRows relocates a contiguous-or-not set of rows to a new position
// (drag reorder). The inverse is a wholesale restore of the captured order;
// a positional inverse transform is not worth the fragility.
type MoveRows struct {
	IDs    []string
	Target int // insertion index in the list after removal
	prev   []model.Row
}

func NewMoveRows(b *Board, ids []string, target int) *MoveRows {
	return &MoveRows{IDs: ids, Target: target, prev: model.CloneRows(b.Rows)}
}

func (c *MoveRows) Name() string { return "rows.move" }

func (c *MoveRows) Execute(b *Board) {
	moving := make(map[string]bool, len(c.IDs))
	for _, id := range c.IDs {
		moving[id] = true
	}
	var picked, rest []model.Row
	for i := range b.Rows {
		if moving[b.Rows[i].ID] {
			picked = append(picked, b.Rows[i])
		} else {
			rest = append(rest, b.Rows[i])
		}
	}
	if len(picked) == 0 {
		return
	}
	at := c.Target
	if at < 0 || at > len(rest) {
		at = len(rest)
	}
	rows := make([]model.Row, 0, len(b.Rows))
	rows = append(rows, rest[:at]...)
	rows = append(rows, picked...)
	rows = append(rows, rest[at:]...)
	b.Rows = rows
}

func (c *MoveRows) Undo(b *Board) {
	b.Rows = model.CloneRows(c.prev)
}

func (c *MoveRows) Payload() any {
	return map[string]any{"rowIds": c.IDs, "target": c.Target}
}

// ToggleCollapse flips a group's collapsed state.
type ToggleCollapse struct {
	GroupID string
	Was     bool
}

func NewToggleCollapse(b *Board, groupID string) *ToggleCollapse {
	return &ToggleCollapse{GroupID: groupID, Was: b.Collapsed[groupID]}
}

func (c *ToggleCollapse) Name() string { return "group.toggleCollapse" }

func (c *ToggleCollapse) Execute(b *Board) { setCollapsed(b, c.GroupID, !c.Was) }
func (c *ToggleCollapse) Undo(b *Board)    { setCollapsed(b, c.GroupID, c.Was) }

func (c *ToggleCollapse) Payload() any {
	return map[string]any{"groupId": c.GroupID, "collapsed": !c.Was}
}

func setCollapsed(b *Board, groupID string, collapsed bool) {
	if collapsed {
		b.Collapsed[groupID] = true
	} else {
		delete(b.Collapsed, groupID)
	}
}

// ToggleHideDay flips a day column's hidden state.
type ToggleHideDay struct {
	Day int
	Was bool
}

func NewToggleHideDay(b *Board, day int) *ToggleHideDay {
	return &ToggleHideDay{Day: day, Was: b.HiddenDays[day]}
}

func (c *ToggleHideDay) Name() string { return "day.toggleHidden" }

func (c *ToggleHideDay) Execute(b *Board) { setDayHidden(b, c.Day, !c.Was) }
func (c *ToggleHideDay) Undo(b *Board)    { setDayHidden(b, c.Day, c.Was) }

func (c *ToggleHideDay) Payload() any {
	return map[string]any{"day": c.Day, "hidden": !c.Was}
}

func setDayHidden(b *Board, day int, hidden bool) {
	if hidden {
		b.HiddenDays[day] = true
	} else {
		delete(b.HiddenDays, day)
	}
}

// AddWeek grows the timeline by seven days. Undo restores the captured state;
// shrinking is never exposed as a forward operation.
type AddWeek struct {
	prevRows  []model.Row
	prevTotal int
}

func NewAddWeek(b *Board) *AddWeek {
	return &AddWeek{prevRows: model.CloneRows(b.Rows), prevTotal: b.TotalDays}
}

func (c *AddWeek) Name() string { return "week.add" }

func (c *AddWeek) Execute(b *Board) {
	b.Rows, b.TotalDays = archive.AddWeek(b.Rows, b.TotalDays)
}

func (c *AddWeek) Undo(b *Board) {
	b.Rows = model.CloneRows(c.prevRows)
	b.TotalDays = c.prevTotal
}

func (c *AddWeek) Payload() any { return map[string]any{"totalDays": c.prevTotal + 7} }

// ArchiveWeek runs the archive engine. The snapshot is computed on the first
// Execute and cached so redo reproduces the exact same ids and order; undo is
// a wholesale restore of the captured pre-archive state.
type ArchiveWeek struct {
	NewID func() string

	prevRows      []model.Row
	prevCollapsed map[string]bool

	result *archive.Result
	Err    error
}

func NewArchiveWeek(b *Board, newID func() string) *ArchiveWeek {
	return &ArchiveWeek{
		NewID:         newID,
		prevRows:      model.CloneRows(b.Rows),
		prevCollapsed: b.cloneCollapsed(),
	}
}

func (c *ArchiveWeek) Name() string { return "week.archive" }

func (c *ArchiveWeek) Execute(b *Board) {
	if c.result == nil {
		res, err := archive.Week(archive.Input{
			Rows:       b.Rows,
			TotalDays:  b.TotalDays,
			StartDate:  b.StartDate,
			HiddenDays: b.HiddenDays,
			Collapsed:  b.Collapsed,
			NewID:      c.NewID,
		})
		if err != nil {
			c.Err = err
			return
		}
		c.result = &res
	}
	b.Rows = model.CloneRows(c.result.Rows)
	collapsed := make(map[string]bool, len(c.result.Collapsed))
	for k, v := range c.result.Collapsed {
		collapsed[k] = v
	}
	b.Collapsed = collapsed
}

func (c *ArchiveWeek) Undo(b *Board) {
	b.Rows = model.CloneRows(c.prevRows)
	collapsed := make(map[string]bool, len(c.prevCollapsed))
	for k, v := range c.prevCollapsed {
		collapsed[k] = v
	}
	b.Collapsed = collapsed
}

func (c *ArchiveWeek) Result() (archive.Result, bool) {
	if c.result == nil {
		return archive.Result{}, false
	}
	return *c.result, true
}

func (c *ArchiveWeek) Payload() any {
	if c.result == nil {
		return nil
	}
	return map[string]any{"weekLabel": c.result.WeekLabel, "dateRange": c.result.DateRange}
}
