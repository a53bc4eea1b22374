package command

import (
	"time"

	"listical-cli/internal/derive"
	"listical-cli/internal/model"
)

// Board is the mutable planner state commands operate on. All mutation is
// serialized by the single-threaded event loop; commands run synchronously.
type Board struct {
	Rows       []model.Row
	TotalDays  int
	StartDate  time.Time
	Collapsed  map[string]bool
	HiddenDays map[int]bool
}

func NewBoard(rows []model.Row, totalDays int, start time.Time) *Board {
	b := &Board{
		Rows:       rows,
		TotalDays:  totalDays,
		StartDate:  start,
		Collapsed:  map[string]bool{},
		HiddenDays: map[int]bool{},
	}
	b.Renormalize()
	return b
}

// Renormalize recomputes derived fields. It runs after every command (and
// after undo/redo) so the visible tuple is always self-consistent.
func (b *Board) Renormalize() {
	b.Rows = derive.Normalize(b.Rows, b.TotalDays)
}

// Row returns a pointer into the live list, or nil. Lookup misses are normal
// during command replay and are handled as no-ops by callers.
func (b *Board) Row(id string) *model.Row {
	if i := model.FindRow(b.Rows, id); i >= 0 {
		return &b.Rows[i]
	}
	return nil
}

func (b *Board) cloneCollapsed() map[string]bool {
	out := make(map[string]bool, len(b.Collapsed))
	for k, v := range b.Collapsed {
		out[k] = v
	}
	return out
}
