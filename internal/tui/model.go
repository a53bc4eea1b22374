package tui

import (
	"fmt"
	"os"

	"listical-cli/internal/bus"
	"listical-cli/internal/model"
	"listical-cli/internal/planner"
	"listical-cli/internal/selection"
	"listical-cli/internal/store"
	"listical-cli/internal/totals"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// busEventMsg wraps a session bus event for the tea loop.
type busEventMsg bus.Event

// busClosedMsg signals the subscription channel closed.
type busClosedMsg struct{}

type gridModel struct {
	ses    *planner.Session
	events <-chan bus.Event

	width  int
	height int

	// rows is the visible-row cache; cols the current column order. Both are
	// rebuilt after every mutation and reload.
	rows []model.Row
	cols []string

	curRow int
	curCol int
	// scroll offsets, in visible-row / column index space
	rowOffset int
	colOffset int

	sel     *selection.State
	input   textinput.Model
	editing bool

	aliases store.EstimateAliases

	// projTotals is recomputed on refresh; the view reads it per header row.
	projTotals map[string]string

	showHelp bool
	status   string
}

func newGridModel(ses *planner.Session, events <-chan bus.Event) *gridModel {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 120

	m := &gridModel{
		ses:    ses,
		events: events,
		sel:    selection.New(),
		input:  ti,
	}
	if aliases, err := store.LoadEstimateAliases(); err == nil {
		m.aliases = aliases
	}
	m.refresh()
	m.restoreUIState()
	return m
}

func (m *gridModel) Init() tea.Cmd {
	return m.listen()
}

func (m *gridModel) listen() tea.Cmd {
	return func() tea.Msg {
		e, ok := <-m.events
		if !ok {
			return busClosedMsg{}
		}
		return busEventMsg(e)
	}
}

// refresh rebuilds the visible rows and columns from the board and clamps the
// cursor back into range.
func (m *gridModel) refresh() {
	m.rows = m.ses.VisibleRows()
	m.cols = buildColumns(m.ses.Board.TotalDays, m.ses.Board.HiddenDays)
	m.projTotals = totals.PerProject(m.ses.Board.Rows)
	if m.curRow >= len(m.rows) {
		m.curRow = len(m.rows) - 1
	}
	if m.curRow < 0 {
		m.curRow = 0
	}
	if m.curCol >= len(m.cols) {
		m.curCol = len(m.cols) - 1
	}
	if m.curCol < 0 {
		m.curCol = 0
	}
}

func (m *gridModel) grid() selection.Grid {
	ids := make([]string, len(m.rows))
	for i := range m.rows {
		ids[i] = m.rows[i].ID
	}
	return selection.Grid{RowIDs: ids, Columns: m.cols}
}

func (m *gridModel) currentRow() *model.Row {
	if m.curRow < 0 || m.curRow >= len(m.rows) {
		return nil
	}
	return &m.rows[m.curRow]
}

func (m *gridModel) currentColumn() string {
	if m.curCol < 0 || m.curCol >= len(m.cols) {
		return ""
	}
	return m.cols[m.curCol]
}

func (m *gridModel) cursorKey() (selection.CellKey, bool) {
	r := m.currentRow()
	col := m.currentColumn()
	if r == nil || col == "" {
		return selection.CellKey{}, false
	}
	return selection.CellKey{RowID: r.ID, Column: col}, true
}

// restoreUIState puts the cursor back where the last session left it.
func (m *gridModel) restoreUIState() {
	st, err := m.ses.Store.LoadTUIState()
	if err != nil || st == nil {
		return
	}
	if st.CursorRowID != "" {
		for i := range m.rows {
			if m.rows[i].ID == st.CursorRowID {
				m.curRow = i
				break
			}
		}
	}
	for i, col := range m.cols {
		if parseDayColumn(col) == st.CursorDay && st.CursorDay >= 0 {
			m.curCol = i
			break
		}
	}
}

func (m *gridModel) saveUIState() {
	st := &store.TUIState{
		Version:       1,
		LastProjectID: m.ses.ProjectID,
		LastYear:      m.ses.Year,
	}
	if r := m.currentRow(); r != nil {
		st.CursorRowID = r.ID
	}
	if d := parseDayColumn(m.currentColumn()); d >= 0 {
		st.CursorDay = d
	}
	if err := m.ses.Store.SaveTUIState(st); err != nil {
		fmt.Fprintf(os.Stderr, "tui: save ui state: %v\n", err)
	}
}
