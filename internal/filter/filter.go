// Package filter selects the visible subsequence of planner rows under the
// active facet filters, day-column filters, and collapsed groups.
package filter

import (
	"listical-cli/internal/model"
	"listical-cli/internal/timefmt"
)

// Set is a facet filter: the accepted values for one column. Empty means
// "matches everything".
type Set map[string]bool

// Facets holds one accepted-value set per filterable column.
type Facets struct {
	Project    Set
	Subproject Set
	Status     Set
	Recurring  Set
	Estimate   Set
}

func (f Facets) active() bool {
	return len(f.Project) > 0 || len(f.Subproject) > 0 || len(f.Status) > 0 ||
		len(f.Recurring) > 0 || len(f.Estimate) > 0
}

// Filters is the full filter state applied to a row list.
type Filters struct {
	Facets Facets
	// DayColumns lists day indices that must hold a numeric value.
	DayColumns map[int]bool
	// Collapsed lists group ids whose descendants are hidden.
	Collapsed map[string]bool
}

// Active reports whether any filter of any kind is set.
func (f Filters) Active() bool {
	return f.Facets.active() || len(f.DayColumns) > 0 || len(f.Collapsed) > 0
}

// Apply returns the rows that should be visible.
//
// With no active filters the input slice is returned unchanged (identity, no
// copy): headers with no day entries must never be dropped, and callers can
// memoize on slice identity.
func Apply(rows []model.Row, f Filters) []model.Row {
	if !f.Active() {
		return rows
	}

	out := make([]model.Row, 0, len(rows))
	for i := range rows {
		if visible(rows[i], f) {
			out = append(out, rows[i])
		}
	}
	return out
}

func visible(r model.Row, f Filters) bool {
	// Collapsed-group membership drops a row unconditionally.
	if r.ParentGroupID != "" && f.Collapsed[r.ParentGroupID] {
		return false
	}

	if r.BypassesFilters() {
		// Bypass rows skip day-column filtering, but active facet filters
		// still hide dividers and project structure: only the very top-level
		// scaffolding survives a facet-filtered view.
		if f.Facets.active() {
			if r.Kind == model.KindSectionDivider || r.IsProjectStructure() {
				return false
			}
		}
		return true
	}

	if !matchFacet(f.Facets.Project, r.Project) {
		return false
	}
	if !matchFacet(f.Facets.Subproject, r.Subproject) {
		return false
	}
	if !matchFacet(f.Facets.Status, string(r.Status)) {
		return false
	}
	if !matchFacet(f.Facets.Recurring, string(r.Recurring)) {
		return false
	}
	if !matchFacet(f.Facets.Estimate, string(r.Estimate)) {
		return false
	}

	for day := range f.DayColumns {
		if day < 0 || day >= len(r.Days) {
			return false
		}
		d := r.Days[day]
		if d != model.UseTimeValue && !timefmt.IsNonZero(d) {
			return false
		}
	}
	return true
}

func matchFacet(s Set, value string) bool {
	if len(s) == 0 {
		return true
	}
	return s[value]
}
