// Package archive snapshots one completed week into an archived sub-tree:
// a new archiveWeek row, archived copies of the project structure, and the
// week's Done/Abandoned tasks relocated (or, for recurring tasks, copied)
// underneath it. The engine builds the full new row list before handing it
// back; the caller swaps state atomically, so a failure never leaves partial
// mutation behind.
package archive

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"listical-cli/internal/model"
	"listical-cli/internal/timefmt"
)

// Input is everything the engine reads. Rows are never mutated.
type Input struct {
	Rows       []model.Row
	TotalDays  int
	StartDate  time.Time
	HiddenDays map[int]bool
	Collapsed  map[string]bool

	// NewID overrides id generation (tests). Defaults to ULIDs.
	NewID func() string
}

// Result is the fully built replacement state.
type Result struct {
	Rows      []model.Row
	Collapsed map[string]bool

	WeekNumber  int
	WeekLabel   string
	DateRange   string
	WeekRowID   string
	WeekGroupID string
}

// Error wraps a failure with the state-machine phase it occurred in.
type Error struct {
	Phase string // validating | computing-snapshot | mutating
	Err   error
}

func (e *Error) Error() string { return fmt.Sprintf("archive %s: %v", e.Phase, e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func shouldArchive(r model.Row) bool {
	if r.Kind != model.KindTask || r.Archived {
		return false
	}
	return r.Status == model.StatusDone || r.Status == model.StatusAbandoned
}

// Week archives the currently displayed week.
func Week(in Input) (Result, error) {
	newID := in.NewID
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}

	// validating: find the first visible day column to name the week.
	firstVisible := -1
	for day := 0; day < in.TotalDays; day++ {
		if !in.HiddenDays[day] {
			firstVisible = day
			break
		}
	}
	if firstVisible < 0 {
		return Result{}, &Error{Phase: "validating", Err: fmt.Errorf("no visible day columns")}
	}
	weekNumber := firstVisible/7 + 1
	rangeStart := in.StartDate.AddDate(0, 0, firstVisible)
	rangeEnd := rangeStart.AddDate(0, 0, 6)
	dateRange := fmt.Sprintf("%s – %s", rangeStart.Format("Jan 2"), rangeEnd.Format("Jan 2, 2006"))

	// computing-snapshot: build the archive week row and the archived copies.
	weekRow := model.Row{
		ID:        newID(),
		Kind:      model.KindArchiveWeek,
		GroupID:   newID(),
		Label:     fmt.Sprintf("Week %d", weekNumber),
		DateRange: dateRange,
		MinHours:  boundRollup(in.Rows, model.BoundMin, firstVisible),
		MaxHours:  boundRollup(in.Rows, model.BoundMax, firstVisible),
	}

	// Archived copies of the live project/subproject structure, re-rooted
	// under the new week. groupMap maps live group ids to archived ones;
	// sectionMap finds the archived general/unscheduled section for a live
	// project group.
	type sections struct{ general, unscheduled string }
	groupMap := map[string]string{}
	sectionMap := map[string]sections{}

	var block []model.Row
	block = append(block, weekRow)

	currentProject := "" // live group id of the enclosing project header
	for i := range in.Rows {
		r := in.Rows[i]
		var kind model.RowKind
		switch r.Kind {
		case model.KindProjectHeader:
			kind = model.KindArchivedProject
			currentProject = r.GroupID
		case model.KindProjectGeneral:
			kind = model.KindArchivedGeneral
		case model.KindProjectUnsched:
			kind = model.KindArchivedUnsched
		case model.KindSubprojectHeader:
			kind = model.KindArchivedSubproj
		default:
			continue
		}

		cp := r.Clone()
		cp.ID = newID()
		cp.Kind = kind
		cp.GroupID = newID()
		groupMap[r.GroupID] = cp.GroupID
		if kind == model.KindArchivedProject {
			cp.ParentGroupID = weekRow.GroupID
		} else if mapped, ok := groupMap[r.ParentGroupID]; ok {
			cp.ParentGroupID = mapped
		} else {
			cp.ParentGroupID = weekRow.GroupID
		}

		switch kind {
		case model.KindArchivedGeneral:
			s := sectionMap[currentProject]
			s.general = cp.GroupID
			sectionMap[currentProject] = s
		case model.KindArchivedUnsched:
			s := sectionMap[currentProject]
			s.unscheduled = cp.GroupID
			sectionMap[currentProject] = s
		}
		block = append(block, cp)
	}

	// Partition the week's finished tasks.
	relocated := map[string]bool{} // row ids physically moved under the archive
	var archivedTasks []model.Row
	for i := range in.Rows {
		r := in.Rows[i]
		if !shouldArchive(r) {
			continue
		}
		cp := r.Clone()
		cp.ID = newID()
		cp.Archived = true

		secs := sectionMap[r.ParentGroupID]
		// Done routes to the general section, everything else archived goes
		// to unscheduled. Only Done/Abandoned ever get here, so Abandoned
		// always lands in unscheduled; the uniform rule is intentional.
		target := secs.unscheduled
		if r.Status == model.StatusDone {
			target = secs.general
		}
		if target == "" {
			target = weekRow.GroupID
		}
		cp.ParentGroupID = target

		if r.Recurring == model.RecurringYes {
			// Recurring originals stay in place (reset below); archive a copy.
			archivedTasks = append(archivedTasks, cp)
			continue
		}
		relocated[r.ID] = true
		archivedTasks = append(archivedTasks, cp)
	}

	for _, task := range archivedTasks {
		block = insertUnderGroup(block, task)
	}

	// mutating: assemble the replacement list in one pass.
	insertAt := len(in.Rows)
	for i := len(in.Rows) - 1; i >= 0; i-- {
		if in.Rows[i].IsArchiveKind() {
			insertAt = i + 1
			break
		}
	}

	out := make([]model.Row, 0, len(in.Rows)+len(block))
	for i := range in.Rows {
		if i == insertAt {
			out = append(out, block...)
		}
		r := in.Rows[i]
		if relocated[r.ID] {
			continue
		}
		if shouldArchive(r) && r.Recurring == model.RecurringYes {
			reset := r.Clone()
			reset.Status = model.StatusNotScheduled
			for d := range reset.Days {
				reset.Days[d] = ""
			}
			out = append(out, reset)
			continue
		}
		out = append(out, r.Clone())
	}
	if insertAt == len(in.Rows) {
		out = append(out, block...)
	}

	// committed: archived weeks start collapsed.
	collapsed := make(map[string]bool, len(in.Collapsed)+1)
	for k, v := range in.Collapsed {
		collapsed[k] = v
	}
	collapsed[weekRow.GroupID] = true

	return Result{
		Rows:        out,
		Collapsed:   collapsed,
		WeekNumber:  weekNumber,
		WeekLabel:   weekRow.Label,
		DateRange:   dateRange,
		WeekRowID:   weekRow.ID,
		WeekGroupID: weekRow.GroupID,
	}, nil
}

// insertUnderGroup places a task immediately after its parent section row,
// past any tasks already inserted under the same section. An unknown parent
// appends at the end; lookup misses are not errors.
func insertUnderGroup(block []model.Row, task model.Row) []model.Row {
	at := -1
	for i := range block {
		if block[i].GroupID != "" && block[i].GroupID == task.ParentGroupID {
			at = i + 1
			continue
		}
		if at >= 0 && i >= at && block[i].ParentGroupID == task.ParentGroupID {
			at = i + 1
		}
	}
	if at < 0 {
		return append(block, task)
	}
	out := make([]model.Row, 0, len(block)+1)
	out = append(out, block[:at]...)
	out = append(out, task)
	out = append(out, block[at:]...)
	return out
}

// boundRollup sums a daily-bound row's entries over the archived week.
func boundRollup(rows []model.Row, kind model.BoundKind, firstDay int) string {
	for i := range rows {
		r := rows[i]
		if r.Kind != model.KindDailyBound || r.Bound != kind {
			continue
		}
		total := 0
		for d := firstDay; d < firstDay+7 && d < len(r.Days); d++ {
			if m, ok := timefmt.Parse(r.Days[d]); ok {
				total += m
			}
		}
		return timefmt.Format(total)
	}
	return ""
}

// AddWeek grows the timeline by seven days, backfilling empty day entries on
// every row. Shrinking is not supported.
func AddWeek(rows []model.Row, totalDays int) ([]model.Row, int) {
	newTotal := totalDays + 7
	out := make([]model.Row, len(rows))
	for i := range rows {
		r := rows[i].Clone()
		padded := make([]string, newTotal)
		copy(padded, r.Days)
		r.Days = padded
		out[i] = r
	}
	return out, newTotal
}
