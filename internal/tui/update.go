package tui

import (
	"fmt"
	"sort"

	"listical-cli/internal/bus"
	"listical-cli/internal/command"
	"listical-cli/internal/model"
	"listical-cli/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

// statusCycle is the order the space key walks a task's status through.
var statusCycle = []model.Status{
	model.StatusNone, model.StatusDone, model.StatusBlocked,
	model.StatusOnHold, model.StatusAbandoned,
}

func (m *gridModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case busEventMsg:
		switch bus.Event(msg).Topic {
		case bus.TopicStateReloaded:
			m.refresh()
			m.status = "reloaded (external change)"
		case bus.TopicStateSaved:
			m.status = "saved"
		}
		return m, m.listen()

	case busClosedMsg:
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.updateEditing(msg)
		}
		return m.updateNormal(msg)
	}
	return m, nil
}

func (m *gridModel) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "esc", "q", "?":
			m.showHelp = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.saveUIState()
		return m, tea.Quit

	case "up", "k":
		m.moveCursor(-1, 0)
	case "down", "j":
		m.moveCursor(1, 0)
	case "left", "h":
		m.moveCursor(0, -1)
	case "right", "l":
		m.moveCursor(0, 1)
	case "home", "g":
		m.curRow = 0
		m.ensureVisible()
	case "end", "G":
		m.curRow = len(m.rows) - 1
		m.ensureVisible()

	case "shift+up", "shift+down", "shift+left", "shift+right":
		m.extendSelection(msg.String())

	case "v":
		if r := m.currentRow(); r != nil {
			m.sel.ClickRow(r.ID)
		}
	case "V":
		if r := m.currentRow(); r != nil {
			m.sel.ShiftClickRow(m.grid(), r.ID)
		}

	case "esc":
		m.sel.Clear()
		m.status = ""

	case "enter", "i":
		m.startEdit()

	case " ":
		m.spaceAction()

	case "x", "backspace", "delete":
		m.clearCells()

	case "d":
		m.deleteRows()

	case "c", "tab":
		m.toggleCollapse()

	case "H":
		m.hideDay()
	case "ctrl+h":
		m.showAllDays()

	case "u":
		if m.ses.Undo() {
			m.refresh()
			m.status = "undo"
		} else {
			m.status = "nothing to undo"
		}
	case "ctrl+r", "R":
		if m.ses.Redo() {
			m.refresh()
			m.status = "redo"
		} else {
			m.status = "nothing to redo"
		}

	case "W":
		m.ses.Apply(command.NewAddWeek(m.ses.Board))
		m.refresh()
		m.status = fmt.Sprintf("added week (%d days)", m.ses.Board.TotalDays)

	case "A":
		c := command.NewArchiveWeek(m.ses.Board, store.NewArchiveID)
		m.ses.Apply(c)
		if c.Err != nil {
			m.status = "archive: " + c.Err.Error()
		} else if res, ok := c.Result(); ok {
			m.status = "archived " + res.WeekLabel
		}
		m.refresh()

	case "?":
		m.showHelp = true
	}
	return m, nil
}

func (m *gridModel) moveCursor(dr, dc int) {
	m.curRow += dr
	m.curCol += dc
	m.refresh()
	m.ensureVisible()
}

// ensureVisible scrolls the viewport so the cursor stays on screen.
func (m *gridModel) ensureVisible() {
	visRows := m.visibleRowCount()
	if m.curRow < m.rowOffset {
		m.rowOffset = m.curRow
	}
	if visRows > 0 && m.curRow >= m.rowOffset+visRows {
		m.rowOffset = m.curRow - visRows + 1
	}

	// The task column is pinned; scrolling applies to the rest.
	if m.curCol > 0 {
		if m.curCol-1 < m.colOffset {
			m.colOffset = m.curCol - 1
		}
		for m.colOffset < m.curCol-1 && !m.columnOnScreen(m.curCol) {
			m.colOffset++
		}
	}
}

func (m *gridModel) extendSelection(key string) {
	k, ok := m.cursorKey()
	if !ok {
		return
	}
	if m.sel.AnchorCell == nil {
		m.sel.ClickCell(k)
	}
	switch key {
	case "shift+up":
		m.curRow--
	case "shift+down":
		m.curRow++
	case "shift+left":
		m.curCol--
	case "shift+right":
		m.curCol++
	}
	m.refresh()
	m.ensureVisible()
	if k2, ok := m.cursorKey(); ok {
		m.sel.ShiftClickCell(m.grid(), k2)
	}
}

// spaceAction is the quick-toggle: day cells flip between empty and the row's
// time value; the status column cycles.
func (m *gridModel) spaceAction() {
	r := m.currentRow()
	if r == nil {
		return
	}
	col := m.currentColumn()

	if day := parseDayColumn(col); day >= 0 {
		if r.Kind != model.KindTask && r.Kind != model.KindDailyBound {
			return
		}
		cur := ""
		if day < len(r.Days) {
			cur = r.Days[day]
		}
		next := model.UseTimeValue
		if cur != "" {
			next = ""
		}
		m.ses.Apply(command.NewSetCell(m.ses.Board, command.CellRef{RowID: r.ID, Day: day}, next))
		m.refresh()
		return
	}

	if col == colStatus && r.Kind == model.KindTask {
		next := statusCycle[0]
		for i, s := range statusCycle {
			if s == r.Status {
				next = statusCycle[(i+1)%len(statusCycle)]
				break
			}
		}
		m.ses.Apply(command.NewSetStatus(m.ses.Board, r.ID, next))
		m.refresh()
		return
	}

	if col == colEstimate && r.Kind == model.KindTask {
		labels := model.EstimateLabels()
		next := labels[0]
		for i, e := range labels {
			if e == r.Estimate {
				next = labels[(i+1)%len(labels)]
				break
			}
		}
		m.ses.Apply(command.NewSetField(m.ses.Board, r.ID, command.FieldEstimate, string(next)))
		m.refresh()
	}
}

func (m *gridModel) clearCells() {
	refs := m.selectedDayRefs()
	if len(refs) == 0 {
		r := m.currentRow()
		day := parseDayColumn(m.currentColumn())
		if r == nil || day < 0 {
			return
		}
		refs = []command.CellRef{{RowID: r.ID, Day: day}}
	}
	m.ses.Apply(command.NewClearCells(m.ses.Board, refs))
	m.sel.Clear()
	m.refresh()
	m.status = fmt.Sprintf("cleared %d cell(s)", len(refs))
}

// selectedDayRefs maps the cell selection to day-cell refs, dropping non-day
// columns and non-task rows.
func (m *gridModel) selectedDayRefs() []command.CellRef {
	var refs []command.CellRef
	for _, k := range m.sel.SelectedCells(m.grid()) {
		day := parseDayColumn(k.Column)
		if day < 0 {
			continue
		}
		r := m.ses.Board.Row(k.RowID)
		if r == nil || (r.Kind != model.KindTask && r.Kind != model.KindDailyBound) {
			continue
		}
		refs = append(refs, command.CellRef{RowID: k.RowID, Day: day})
	}
	return refs
}

func (m *gridModel) deleteRows() {
	ids := m.sel.SelectedRows(m.grid())
	if len(ids) == 0 {
		r := m.currentRow()
		if r == nil {
			return
		}
		ids = []string{r.ID}
	}
	// Scaffolding is not deletable.
	kept := ids[:0]
	for _, id := range ids {
		if r := m.ses.Board.Row(id); r != nil && !r.IsSpecial() {
			kept = append(kept, id)
		}
	}
	if len(kept) == 0 {
		m.status = "nothing deletable selected"
		return
	}
	m.ses.Apply(command.NewDeleteRows(m.ses.Board, kept))
	m.sel.Clear()
	m.refresh()
	m.status = fmt.Sprintf("deleted %d row(s)", len(kept))
}

// hideDay hides the day column under the cursor. Hidden columns leave the
// column order, so unhiding goes through showAllDays (or undo).
func (m *gridModel) hideDay() {
	day := parseDayColumn(m.currentColumn())
	if day < 0 {
		m.status = "cursor is not on a day column"
		return
	}
	m.ses.Apply(command.NewToggleHideDay(m.ses.Board, day))
	m.refresh()
	m.status = fmt.Sprintf("hid day %d", day)
}

func (m *gridModel) showAllDays() {
	hidden := m.ses.Board.HiddenDays
	if len(hidden) == 0 {
		m.status = "no hidden days"
		return
	}
	days := make([]int, 0, len(hidden))
	for d := range hidden {
		days = append(days, d)
	}
	sort.Ints(days)
	for _, d := range days {
		m.ses.Apply(command.NewToggleHideDay(m.ses.Board, d))
	}
	m.refresh()
	m.status = fmt.Sprintf("unhid %d day(s)", len(days))
}

func (m *gridModel) toggleCollapse() {
	r := m.currentRow()
	if r == nil || !r.IsStructural() || r.GroupID == "" {
		return
	}
	m.ses.Apply(command.NewToggleCollapse(m.ses.Board, r.GroupID))
	m.refresh()
}

// startEdit opens the inline editor on the cursor cell with its raw value.
func (m *gridModel) startEdit() {
	r := m.currentRow()
	if r == nil {
		return
	}
	col := m.currentColumn()
	raw, editable := rawCellValue(r, col)
	if !editable {
		return
	}
	k, _ := m.cursorKey()
	m.sel.StartEdit(k)
	m.input.SetValue(raw)
	m.input.CursorEnd()
	m.input.Focus()
	m.editing = true
}

// rawCellValue returns the editable raw value of a cell, and whether the cell
// accepts edits at all.
func rawCellValue(r *model.Row, col string) (string, bool) {
	if day := parseDayColumn(col); day >= 0 {
		if r.Kind != model.KindTask && r.Kind != model.KindDailyBound {
			return "", false
		}
		v := ""
		if day < len(r.Days) {
			v = r.Days[day]
		}
		if v == model.UseTimeValue {
			v = "="
		}
		return v, true
	}
	if r.Kind != model.KindTask {
		// Structural labels are edited via the task column.
		if col == colTask && (r.Kind == model.KindProjectHeader || r.Kind == model.KindSubprojectHeader) {
			return r.Label, false // renaming projects is a CLI operation for now
		}
		return "", false
	}
	switch col {
	case colTask:
		return r.TaskName, true
	case colProject:
		return r.Project, true
	case colSubproject:
		return r.Subproject, true
	case colStatus:
		return string(r.Status), true
	case colRecurring:
		return string(r.Recurring), true
	case colEstimate:
		return string(r.Estimate), true
	case colTime:
		return r.TimeValue, true
	}
	return "", false
}

func (m *gridModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopEdit()
		return m, nil
	case "enter":
		m.commitEdit()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *gridModel) stopEdit() {
	m.editing = false
	m.input.Blur()
	m.sel.StopEdit()
}

// commitEdit maps the edited text onto the right command for the column.
func (m *gridModel) commitEdit() {
	defer m.stopEdit()
	r := m.currentRow()
	if r == nil {
		return
	}
	col := m.currentColumn()
	value := m.input.Value()

	if day := parseDayColumn(col); day >= 0 {
		if value == "=" {
			value = model.UseTimeValue
		}
		m.ses.Apply(command.NewSetCell(m.ses.Board, command.CellRef{RowID: r.ID, Day: day}, value))
		m.refresh()
		return
	}

	switch col {
	case colTask:
		m.ses.Apply(command.NewSetField(m.ses.Board, r.ID, command.FieldTaskName, value))
	case colProject:
		m.ses.Apply(command.NewSetField(m.ses.Board, r.ID, command.FieldProject, value))
	case colSubproject:
		m.ses.Apply(command.NewSetField(m.ses.Board, r.ID, command.FieldSubproject, value))
	case colStatus:
		st, ok := model.ParseStatus(value)
		if !ok {
			m.status = "unknown status: " + value
			return
		}
		m.ses.Apply(command.NewSetStatus(m.ses.Board, r.ID, st))
	case colRecurring:
		v := model.RecurringNo
		if value == "yes" || value == "true" || value == string(model.RecurringYes) {
			v = model.RecurringYes
		}
		m.ses.Apply(command.NewSetField(m.ses.Board, r.ID, command.FieldRecurring, string(v)))
	case colEstimate:
		est, ok := m.aliases.Resolve(value)
		if !ok {
			m.status = "unknown estimate: " + value
			return
		}
		m.ses.Apply(command.NewSetField(m.ses.Board, r.ID, command.FieldEstimate, string(est)))
	case colTime:
		m.ses.Apply(command.NewSetTimeValue(m.ses.Board, r.ID, value))
	default:
		return
	}
	m.refresh()
}
