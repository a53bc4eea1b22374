package tui

import (
	"strconv"
	"strings"
)

// Column ids. The fixed columns come first, then one "day-N" column per day
// index. Selection keys and cursor positions use these ids, so they must stay
// stable across sessions.
const (
	colTask       = "task"
	colProject    = "project"
	colSubproject = "subproject"
	colStatus     = "status"
	colRecurring  = "recurring"
	colEstimate   = "estimate"
	colTime       = "time"

	dayColPrefix = "day-"
)

var fixedColumns = []string{
	colTask, colProject, colSubproject, colStatus, colRecurring, colEstimate, colTime,
}

var fixedColumnLabels = map[string]string{
	colTask:       "Task",
	colProject:    "Project",
	colSubproject: "Subproject",
	colStatus:     "Status",
	colRecurring:  "Recurring",
	colEstimate:   "Estimate",
	colTime:       "Time",
}

var defaultColumnWidths = map[string]int{
	colTask:       28,
	colProject:    14,
	colSubproject: 12,
	colStatus:     13,
	colRecurring:  9,
	colEstimate:   10,
	colTime:       6,
}

const dayColWidth = 6

func dayColumn(day int) string { return dayColPrefix + strconv.Itoa(day) }

// parseDayColumn returns the day index of a "day-N" column id, or -1.
func parseDayColumn(col string) int {
	if !strings.HasPrefix(col, dayColPrefix) {
		return -1
	}
	n, err := strconv.Atoi(col[len(dayColPrefix):])
	if err != nil || n < 0 {
		return -1
	}
	return n
}

// buildColumns returns the full column order for a board, honoring hidden
// days.
func buildColumns(totalDays int, hiddenDays map[int]bool) []string {
	cols := make([]string, 0, len(fixedColumns)+totalDays)
	cols = append(cols, fixedColumns...)
	for d := 0; d < totalDays; d++ {
		if hiddenDays[d] {
			continue
		}
		cols = append(cols, dayColumn(d))
	}
	return cols
}

func columnWidth(col string, overrides map[string]int) int {
	if w, ok := overrides[col]; ok && w > 0 {
		return w
	}
	if parseDayColumn(col) >= 0 {
		return dayColWidth
	}
	if w, ok := defaultColumnWidths[col]; ok {
		return w
	}
	return 10
}
