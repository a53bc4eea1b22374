package tui

import (
	"fmt"
	"strings"
	"time"

	"listical-cli/internal/docs"
	"listical-cli/internal/model"
	"listical-cli/internal/selection"
	"listical-cli/internal/timefmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

const chromeLines = 4 // title + column header + status + footer

func (m *gridModel) visibleRowCount() int {
	n := m.height - chromeLines
	if n < 1 {
		n = 1
	}
	return n
}

// visibleColumns returns the column indices that fit on screen: the pinned
// task column, then a window of the rest starting at colOffset.
func (m *gridModel) visibleColumns() []int {
	if len(m.cols) == 0 {
		return nil
	}
	width := m.width
	if width <= 0 {
		width = 120
	}
	out := []int{0}
	budget := width - columnWidth(m.cols[0], m.columnWidths()) - 1
	for i := 1 + m.colOffset; i < len(m.cols); i++ {
		w := columnWidth(m.cols[i], m.columnWidths()) + 1
		if w > budget {
			break
		}
		out = append(out, i)
		budget -= w
	}
	return out
}

func (m *gridModel) columnOnScreen(idx int) bool {
	for _, i := range m.visibleColumns() {
		if i == idx {
			return true
		}
	}
	return false
}

func (m *gridModel) columnWidths() map[string]int {
	return nil // per-column overrides come from saved state later
}

func (m *gridModel) View() string {
	if m.showHelp {
		return m.helpView()
	}

	var b strings.Builder
	b.WriteString(m.titleView())
	b.WriteByte('\n')
	b.WriteString(m.headerView())
	b.WriteByte('\n')

	vis := m.visibleColumns()
	end := m.rowOffset + m.visibleRowCount()
	if end > len(m.rows) {
		end = len(m.rows)
	}
	for i := m.rowOffset; i < end; i++ {
		b.WriteString(m.rowView(i, vis))
		b.WriteByte('\n')
	}
	for i := end - m.rowOffset; i < m.visibleRowCount(); i++ {
		b.WriteByte('\n')
	}

	b.WriteString(m.statusView())
	b.WriteByte('\n')
	b.WriteString(m.footerView())
	return b.String()
}

func (m *gridModel) titleView() string {
	title := fmt.Sprintf("listical  %s · %d", m.ses.ProjectID, m.ses.Year)
	return styleHeader().Render(title)
}

func (m *gridModel) headerView() string {
	var parts []string
	for _, ci := range m.visibleColumns() {
		col := m.cols[ci]
		w := columnWidth(col, m.columnWidths())
		label := fixedColumnLabels[col]
		if day := parseDayColumn(col); day >= 0 {
			label = m.ses.Board.StartDate.AddDate(0, 0, day).Format("2")
		}
		parts = append(parts, cell(label, w, styleMuted().Bold(true)))
	}
	return strings.Join(parts, " ")
}

func (m *gridModel) statusView() string {
	if m.editing {
		return styleMuted().Render("editing: ") + m.input.View()
	}
	return styleMuted().Render(m.status)
}

func (m *gridModel) footerView() string {
	hints := "move: hjkl  edit: enter  toggle: space  clear: x  delete: d  collapse: c  hide day: H  undo: u  redo: R  +week: W  archive: A  help: ?  quit: q"
	return styleMuted().Render(ansi.Truncate(hints, maxInt(m.width, 20), "…"))
}

func (m *gridModel) rowView(i int, vis []int) string {
	r := &m.rows[i]

	if r.Kind == model.KindSectionDivider {
		w := maxInt(m.width, 20)
		label := " inbox "
		if r.Divider == model.DividerArchive {
			label = " archive "
		}
		rule := strings.Repeat(glyphHRule(), 4) + label
		rule += strings.Repeat(glyphHRule(), maxInt(w-lipgloss.Width(rule), 0))
		return styleMuted().Render(rule)
	}

	var parts []string
	for _, ci := range vis {
		col := m.cols[ci]
		w := columnWidth(col, m.columnWidths())

		if m.editing && i == m.curRow && ci == m.curCol {
			parts = append(parts, cell(m.input.Value()+"_", w, styleCursor()))
			continue
		}

		text := m.cellText(r, col)
		st := m.cellStyle(r, col)
		key := selection.CellKey{RowID: r.ID, Column: col}
		switch {
		case i == m.curRow && ci == m.curCol:
			st = styleCursor()
		case m.sel.Cells[key] || m.sel.Rows[r.ID]:
			st = styleSelected()
		}
		parts = append(parts, cell(text, w, st))
	}
	return strings.Join(parts, " ")
}

// cellText renders the raw display text of one cell, per row kind.
func (m *gridModel) cellText(r *model.Row, col string) string {
	day := parseDayColumn(col)

	switch r.Kind {
	case model.KindTimelineHeader:
		return m.timelineCell(r.Timeline, col, day)

	case model.KindFilterRow:
		if col == colTask {
			return "Filters"
		}
		if day >= 0 && m.ses.Filters.DayColumns[day] {
			return glyphBullet()
		}
		return ""

	case model.KindDailyBound:
		if col == colTask {
			if r.Bound == model.BoundMin {
				return "Min hours"
			}
			return "Max hours"
		}
		if day >= 0 && day < len(r.Days) {
			return r.Days[day]
		}
		return ""

	case model.KindProjectHeader, model.KindArchivedProject:
		if col == colTask {
			return m.twisty(r.GroupID) + " " + r.Label
		}
		if col == colTime && r.Kind == model.KindProjectHeader {
			return m.projTotals[r.GroupID]
		}
		return ""

	case model.KindProjectGeneral, model.KindArchivedGeneral:
		if col == colTask {
			return "  General"
		}
		return ""

	case model.KindProjectUnsched, model.KindArchivedUnsched:
		if col == colTask {
			return "  Unscheduled"
		}
		return ""

	case model.KindSubprojectHeader, model.KindArchivedSubproj:
		if col == colTask {
			return " " + m.twisty(r.GroupID) + " " + r.Label
		}
		return ""

	case model.KindArchiveWeek:
		switch col {
		case colTask:
			return m.twisty(r.GroupID) + " " + r.Label
		case colProject:
			return r.DateRange
		case colTime:
			return r.ArchiveTotalHours
		}
		return ""
	}

	// Task rows.
	switch col {
	case colTask:
		return r.TaskName
	case colProject:
		return r.Project
	case colSubproject:
		return r.Subproject
	case colStatus:
		return string(r.Status)
	case colRecurring:
		if r.Recurring == model.RecurringYes {
			return "yes"
		}
		return ""
	case colEstimate:
		return string(r.Estimate)
	case colTime:
		return r.TimeValue
	}
	if day >= 0 && day < len(r.Days) {
		v := r.Days[day]
		if v == model.UseTimeValue {
			return glyphBullet() + r.TimeValue
		}
		return v
	}
	return ""
}

func (m *gridModel) timelineCell(level model.TimelineLevel, col string, day int) string {
	if col == colTask {
		switch level {
		case model.TimelineMonth:
			return "Month"
		case model.TimelineWeek:
			return "Week"
		case model.TimelineDay:
			return "Day"
		default:
			return ""
		}
	}
	if day < 0 {
		return ""
	}
	d := m.ses.Board.StartDate.AddDate(0, 0, day)
	switch level {
	case model.TimelineMonth:
		if d.Day() == 1 || day == 0 {
			return d.Format("Jan")
		}
		return ""
	case model.TimelineWeek:
		if d.Weekday() == time.Monday || day == 0 {
			_, wk := d.ISOWeek()
			return fmt.Sprintf("W%d", wk)
		}
		return ""
	case model.TimelineDay:
		return d.Format("2")
	case model.TimelineDayOfWeek:
		return d.Format("Mon")[:2]
	}
	return ""
}

func (m *gridModel) cellStyle(r *model.Row, col string) lipgloss.Style {
	switch r.Kind {
	case model.KindTimelineHeader, model.KindFilterRow:
		return styleMuted()
	case model.KindDailyBound:
		if col == colTask {
			return styleMuted()
		}
		return lipgloss.NewStyle().Foreground(colorAccent)
	case model.KindProjectHeader, model.KindSubprojectHeader, model.KindArchiveWeek:
		return styleHeader()
	case model.KindArchivedProject, model.KindArchivedGeneral,
		model.KindArchivedUnsched, model.KindArchivedSubproj,
		model.KindProjectGeneral, model.KindProjectUnsched:
		return faintIfDark(lipgloss.NewStyle().Foreground(colorArchivedFg))
	}
	if r.Archived {
		return faintIfDark(lipgloss.NewStyle().Foreground(colorArchivedFg))
	}
	if col == colStatus {
		return styleStatus(string(r.Status))
	}
	if day := parseDayColumn(col); day >= 0 {
		if day < len(r.Days) && r.Days[day] == model.UseTimeValue {
			return lipgloss.NewStyle().Foreground(colorAccent)
		}
		if day < len(r.Days) && timefmt.IsNonZero(r.Days[day]) {
			return lipgloss.NewStyle().Foreground(colorAccent)
		}
	}
	return lipgloss.NewStyle().Foreground(colorChromeFg)
}

func (m *gridModel) twisty(groupID string) string {
	if m.ses.Board.Collapsed[groupID] {
		return glyphTwistyCollapsed()
	}
	return glyphTwistyExpanded()
}

func (m *gridModel) helpView() string {
	md, _ := docs.Get("guide")
	keys := `
## Keys

| Key | Action |
| --- | --- |
| hjkl / arrows | move |
| shift+arrows | extend selection |
| v / V | select row / row range |
| enter, i | edit cell |
| space | toggle day cell, cycle status |
| x | clear selected cells |
| d | delete selected rows |
| c, tab | collapse/expand group |
| H / ctrl+h | hide day column / unhide all |
| u / R | undo / redo |
| W | add a week |
| A | archive the first week |
| q | quit |
`
	return docs.Render(md+keys, maxInt(m.width-2, 40))
}

// cell truncates-and-pads text to an exact width, then styles it.
func cell(text string, width int, st lipgloss.Style) string {
	text = ansi.Truncate(text, width, "…")
	if pad := width - lipgloss.Width(text); pad > 0 {
		text += strings.Repeat(" ", pad)
	}
	return st.Render(text)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
