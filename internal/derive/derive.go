// Package derive recomputes the derived fields of every task row: estimate,
// timeValue, status, and parentGroupId. The derivation is one-directional and
// pure; callers persist raw fields only and re-run Normalize after any edit.
package derive

import (
	"listical-cli/internal/model"
	"listical-cli/internal/timefmt"
)

const habitWindow = 7

// Normalize returns a new row list where every task row carries a
// self-consistent (estimate, timeValue, status, parentGroupId) tuple.
// The input is never mutated.
func Normalize(rows []model.Row, totalDays int) []model.Row {
	out := make([]model.Row, len(rows))

	// Traversal state: the enclosing project's group id. Set on a project
	// header, cleared on a section divider (inbox/archive).
	enclosing := ""

	for i := range rows {
		r := rows[i].Clone()

		switch r.Kind {
		case model.KindProjectHeader:
			enclosing = r.GroupID
		case model.KindSectionDivider:
			enclosing = ""
		}

		if !r.IsTaskLike() || r.Archived {
			out[i] = r
			continue
		}

		if len(r.Days) < totalDays {
			padded := make([]string, totalDays)
			copy(padded, r.Days)
			r.Days = padded
		}

		deriveEstimate(&r)
		deriveTimeValue(&r)
		deriveStatus(&r)
		if r.ParentGroupID == "" && enclosing != "" {
			r.ParentGroupID = enclosing
		}

		out[i] = r
	}
	return out
}

// IsHabit reports whether any consecutive 7-entry window of the day entries
// holds more than one valid numeric value (nonzero H.MM, or the
// use-time-value token).
func IsHabit(days []string) bool {
	for start := 0; start < len(days); start += habitWindow {
		end := start + habitWindow
		if end > len(days) {
			end = len(days)
		}
		n := 0
		for _, d := range days[start:end] {
			if validDayEntry(d) {
				n++
				if n > 1 {
					return true
				}
			}
		}
	}
	return false
}

func validDayEntry(d string) bool {
	if d == model.UseTimeValue {
		return true
	}
	return timefmt.IsNonZero(d)
}

func deriveEstimate(r *model.Row) {
	if IsHabit(r.Days) {
		if r.Estimate != model.EstimateMulti {
			r.OriginalEstimate = r.Estimate
			r.Estimate = model.EstimateMulti
		}
		return
	}
	if r.Estimate == model.EstimateMulti {
		// Habit pattern gone; restore whatever the user had before.
		r.Estimate = r.OriginalEstimate
		r.OriginalEstimate = ""
	}
}

func deriveTimeValue(r *model.Row) {
	switch r.Estimate {
	case model.EstimateMulti:
		// Sum real entries only. Cells holding the use-time-value token are
		// already synced to TimeValue and would double count.
		total := 0
		for _, d := range r.Days {
			if d == model.UseTimeValue {
				continue
			}
			if m, ok := timefmt.Parse(d); ok {
				total += m
			}
		}
		r.TimeValue = timefmt.Format(total)
	case model.EstimateCustom:
		// Free-form user input; leave as-is.
	default:
		if m, ok := model.EstimateToMinutes(r.Estimate); ok {
			r.TimeValue = timefmt.Format(m)
		}
	}
}

func deriveStatus(r *model.Row) {
	if r.Status.Sticky() || r.Status == model.StatusSpecial {
		return
	}
	if r.TaskName == "" {
		r.Status = model.StatusNone
		return
	}
	for _, d := range r.Days {
		if validDayEntry(d) {
			r.Status = model.StatusScheduled
			return
		}
	}
	r.Status = model.StatusNotScheduled
}

// Change identifies one row whose derived tuple differs between two lists.
type Change struct {
	Index int
	ID    string
}

// Diff reports the rows whose derived fields genuinely changed. Callers use
// this to avoid rewriting state (and re-triggering derivation) when nothing
// moved.
func Diff(before, after []model.Row) []Change {
	var out []Change
	n := len(before)
	if len(after) < n {
		n = len(after)
	}
	for i := 0; i < n; i++ {
		a, b := before[i], after[i]
		if a.Estimate != b.Estimate || a.TimeValue != b.TimeValue ||
			a.Status != b.Status || a.ParentGroupID != b.ParentGroupID {
			out = append(out, Change{Index: i, ID: b.ID})
		}
	}
	return out
}
