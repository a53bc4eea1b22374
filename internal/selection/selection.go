// Package selection tracks which cells and rows are selected in the grid,
// with anchor-based range extension and live drag. It is pure state; the
// command engine reads it to decide what a mutation targets.
package selection

import (
	"fmt"
	"strings"
)

// CellKey identifies one grid cell as "rowID|columnID".
type CellKey struct {
	RowID  string
	Column string
}

func (k CellKey) String() string { return k.RowID + "|" + k.Column }

// ParseCellKey splits a "rowID|columnID" key.
func ParseCellKey(s string) (CellKey, error) {
	i := strings.LastIndex(s, "|")
	if i <= 0 || i == len(s)-1 {
		return CellKey{}, fmt.Errorf("invalid cell key: %q", s)
	}
	return CellKey{RowID: s[:i], Column: s[i+1:]}, nil
}

// State is the full selection state. At most one cell is being edited.
type State struct {
	Cells map[CellKey]bool
	Rows  map[string]bool

	AnchorCell  *CellKey
	AnchorRow   string
	EditingCell *CellKey

	dragging bool
}

func New() *State {
	return &State{
		Cells: map[CellKey]bool{},
		Rows:  map[string]bool{},
	}
}

// Grid describes the visible row/column order, needed to turn an anchor and a
// target into a rectangular or contiguous range.
type Grid struct {
	RowIDs  []string
	Columns []string
}

func (g Grid) rowIndex(id string) int {
	for i, r := range g.RowIDs {
		if r == id {
			return i
		}
	}
	return -1
}

func (g Grid) colIndex(id string) int {
	for i, c := range g.Columns {
		if c == id {
			return i
		}
	}
	return -1
}

// ClickCell selects a single cell and anchors on it.
func (s *State) ClickCell(k CellKey) {
	s.Cells = map[CellKey]bool{k: true}
	s.Rows = map[string]bool{}
	anchor := k
	s.AnchorCell = &anchor
	s.AnchorRow = ""
}

// ShiftClickCell replaces the selection with the rectangle between the anchor
// and the target. The anchor does not move. Without an anchor it degrades to
// a plain click.
func (s *State) ShiftClickCell(g Grid, k CellKey) {
	if s.AnchorCell == nil {
		s.ClickCell(k)
		return
	}
	s.Cells = rectangle(g, *s.AnchorCell, k)
	s.Rows = map[string]bool{}
}

// ToggleCell flips membership (ctrl/cmd-click) and moves the anchor.
func (s *State) ToggleCell(k CellKey) {
	if s.Cells[k] {
		delete(s.Cells, k)
	} else {
		s.Cells[k] = true
	}
	anchor := k
	s.AnchorCell = &anchor
}

// ClickRow selects a single row and anchors on it.
func (s *State) ClickRow(id string) {
	s.Rows = map[string]bool{id: true}
	s.Cells = map[CellKey]bool{}
	s.AnchorRow = id
	s.AnchorCell = nil
}

// ShiftClickRow replaces the selection with the contiguous run between the
// anchor row and the target. The anchor does not move.
func (s *State) ShiftClickRow(g Grid, id string) {
	if s.AnchorRow == "" {
		s.ClickRow(id)
		return
	}
	a, b := g.rowIndex(s.AnchorRow), g.rowIndex(id)
	if a < 0 || b < 0 {
		// Either side left the grid mid-interaction; treat as a plain click.
		s.ClickRow(id)
		return
	}
	if a > b {
		a, b = b, a
	}
	s.Rows = map[string]bool{}
	s.Cells = map[CellKey]bool{}
	for i := a; i <= b; i++ {
		s.Rows[g.RowIDs[i]] = true
	}
}

// ToggleRow flips membership and moves the anchor.
func (s *State) ToggleRow(id string) {
	if s.Rows[id] {
		delete(s.Rows, id)
	} else {
		s.Rows[id] = true
	}
	s.AnchorRow = id
}

// BeginDrag starts a live cell-range drag from k.
func (s *State) BeginDrag(k CellKey) {
	s.ClickCell(k)
	s.dragging = true
}

// DragOver extends the live selection to the hovered cell.
func (s *State) DragOver(g Grid, k CellKey) {
	if !s.dragging || s.AnchorCell == nil {
		return
	}
	s.Cells = rectangle(g, *s.AnchorCell, k)
}

// EndDrag terminates a drag (global mouse-up analogue).
func (s *State) EndDrag() { s.dragging = false }

// Dragging reports whether a drag is in flight.
func (s *State) Dragging() bool { return s.dragging }

// StartEdit marks one cell as being edited; any previous edit ends.
func (s *State) StartEdit(k CellKey) {
	edit := k
	s.EditingCell = &edit
}

// StopEdit ends editing.
func (s *State) StopEdit() { s.EditingCell = nil }

// Clear empties the selection entirely.
func (s *State) Clear() {
	s.Cells = map[CellKey]bool{}
	s.Rows = map[string]bool{}
	s.AnchorCell = nil
	s.AnchorRow = ""
	s.dragging = false
}

// SelectedCells returns the selected cell keys in grid order.
func (s *State) SelectedCells(g Grid) []CellKey {
	var out []CellKey
	for _, row := range g.RowIDs {
		for _, col := range g.Columns {
			k := CellKey{RowID: row, Column: col}
			if s.Cells[k] {
				out = append(out, k)
			}
		}
	}
	return out
}

// SelectedRows returns the selected row ids in grid order.
func (s *State) SelectedRows(g Grid) []string {
	var out []string
	for _, row := range g.RowIDs {
		if s.Rows[row] {
			out = append(out, row)
		}
	}
	return out
}

func rectangle(g Grid, a, b CellKey) map[CellKey]bool {
	r1, r2 := g.rowIndex(a.RowID), g.rowIndex(b.RowID)
	c1, c2 := g.colIndex(a.Column), g.colIndex(b.Column)
	out := map[CellKey]bool{}
	if r1 < 0 || r2 < 0 || c1 < 0 || c2 < 0 {
		out[b] = true
		return out
	}
	if r1 > r2 {
		r1, r2 = r2, r1
	}
	if c1 > c2 {
		c1, c2 = c2, c1
	}
	for r := r1; r <= r2; r++ {
		for c := c1; c <= c2; c++ {
			out[CellKey{RowID: g.RowIDs[r], Column: g.Columns[c]}] = true
		}
	}
	return out
}
