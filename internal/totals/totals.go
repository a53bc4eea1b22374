// Package totals computes the planner's rollups: per-project hours, per-day
// hours, and archive-week/archived-project hours. All sums are H.MM base-60
// minute arithmetic, formatted back to two-decimal H.MM strings. Totals
// always reflect the unfiltered row list.
package totals

import (
	"listical-cli/internal/model"
	"listical-cli/internal/timefmt"
)

func countsTowardTotals(s model.Status) bool {
	return s == model.StatusScheduled || s == model.StatusDone
}

// PerProject sums TimeValue across the task rows directly enclosed by each
// project header (ParentGroupID == header.GroupID) with status Scheduled or
// Done. Keyed by the header's GroupID.
func PerProject(rows []model.Row) map[string]string {
	minutes := map[string]int{}
	for i := range rows {
		if rows[i].Kind == model.KindProjectHeader && rows[i].GroupID != "" {
			minutes[rows[i].GroupID] = 0
		}
	}
	for i := range rows {
		r := &rows[i]
		if r.Kind != model.KindTask || r.Archived {
			continue
		}
		if !countsTowardTotals(r.Status) {
			continue
		}
		if _, isProject := minutes[r.ParentGroupID]; !isProject {
			continue
		}
		if m, ok := timefmt.Parse(r.TimeValue); ok {
			minutes[r.ParentGroupID] += m
		}
	}

	out := make(map[string]string, len(minutes))
	for gid, m := range minutes {
		out[gid] = timefmt.Format(m)
	}
	return out
}

// PerDay sums each day column across all non-special rows, regardless of
// active filters. A use-time-value cell contributes the row's TimeValue.
func PerDay(rows []model.Row, totalDays int) []string {
	minutes := make([]int, totalDays)
	for i := range rows {
		r := &rows[i]
		if r.Kind != model.KindTask {
			continue
		}
		for day := 0; day < totalDays && day < len(r.Days); day++ {
			d := r.Days[day]
			if d == model.UseTimeValue {
				if m, ok := timefmt.Parse(r.TimeValue); ok {
					minutes[day] += m
				}
				continue
			}
			if m, ok := timefmt.Parse(d); ok {
				minutes[day] += m
			}
		}
	}

	out := make([]string, totalDays)
	for i, m := range minutes {
		out[i] = timefmt.Format(m)
	}
	return out
}

// Archive computes per-archived-project and per-archive-week sums in a single
// forward scan. The accumulator resets whenever a header of the relevant kind
// is encountered and flushes both on the next header and at end of scan, so
// no trailing group is dropped.
func Archive(rows []model.Row) (perProject, perWeek map[string]string) {
	perProject = map[string]string{}
	perWeek = map[string]string{}

	projGroup, weekGroup := "", ""
	projMin, weekMin := 0, 0

	flushProj := func() {
		if projGroup != "" {
			perProject[projGroup] = timefmt.Format(projMin)
		}
	}
	flushWeek := func() {
		if weekGroup != "" {
			perWeek[weekGroup] = timefmt.Format(weekMin)
		}
	}

	for i := range rows {
		r := &rows[i]
		switch r.Kind {
		case model.KindArchiveWeek:
			flushProj()
			flushWeek()
			projGroup, projMin = "", 0
			weekGroup, weekMin = r.GroupID, 0
		case model.KindArchivedProject:
			flushProj()
			projGroup, projMin = r.GroupID, 0
		case model.KindTask:
			if !r.Archived || !countsTowardTotals(r.Status) {
				continue
			}
			m, ok := timefmt.Parse(r.TimeValue)
			if !ok {
				continue
			}
			if projGroup != "" {
				projMin += m
			}
			if weekGroup != "" {
				weekMin += m
			}
		}
	}
	flushProj()
	flushWeek()
	return perProject, perWeek
}

// AnnotateArchiveWeeks writes recomputed archive totals back onto the
// archiveWeek rows of a fresh copy of the list.
func AnnotateArchiveWeeks(rows []model.Row) []model.Row {
	_, perWeek := Archive(rows)
	out := model.CloneRows(rows)
	for i := range out {
		if out[i].Kind != model.KindArchiveWeek {
			continue
		}
		if total, ok := perWeek[out[i].GroupID]; ok {
			out[i].ArchiveTotalHours = total
		}
	}
	return out
}
