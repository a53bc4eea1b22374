package planner

import "listical-cli/internal/model"

// Fixed ids for the singleton scaffolding rows. One of each exists per board,
// so stable ids keep cross-process reloads and saved cursor positions honest.
const (
	rowIDTimelineMonth     = "timeline-month"
	rowIDTimelineWeek      = "timeline-week"
	rowIDTimelineDay       = "timeline-day"
	rowIDTimelineDayOfWeek = "timeline-dayofweek"
	rowIDFilterRow         = "filter-row"
	rowIDBoundMin          = "bound-min"
	rowIDBoundMax          = "bound-max"
	rowIDDividerInbox      = "divider-inbox"
)

// DividerInboxID is exported for callers that insert project blocks above the
// inbox section.
const DividerInboxID = rowIDDividerInbox

// Scaffold builds the non-task rows of a fresh board: the stacked timeline
// headers, the filter row, and the daily-bound rows. A toggled-off bound row
// is never inserted, not inserted-and-hidden.
func Scaffold(totalDays int, showMinBound, showMaxBound bool) []model.Row {
	rows := []model.Row{
		{ID: rowIDTimelineMonth, Kind: model.KindTimelineHeader, Timeline: model.TimelineMonth},
		{ID: rowIDTimelineWeek, Kind: model.KindTimelineHeader, Timeline: model.TimelineWeek},
		{ID: rowIDTimelineDay, Kind: model.KindTimelineHeader, Timeline: model.TimelineDay},
		{ID: rowIDTimelineDayOfWeek, Kind: model.KindTimelineHeader, Timeline: model.TimelineDayOfWeek},
		{ID: rowIDFilterRow, Kind: model.KindFilterRow},
	}
	if showMinBound {
		rows = append(rows, model.Row{
			ID:    rowIDBoundMin,
			Kind:  model.KindDailyBound,
			Bound: model.BoundMin,
			Days:  make([]string, totalDays),
		})
	}
	if showMaxBound {
		rows = append(rows, model.Row{
			ID:    rowIDBoundMax,
			Kind:  model.KindDailyBound,
			Bound: model.BoundMax,
			Days:  make([]string, totalDays),
		})
	}
	rows = append(rows, model.Row{
		ID:      rowIDDividerInbox,
		Kind:    model.KindSectionDivider,
		Divider: model.DividerInbox,
	})
	return rows
}

// NewProjectBlock builds a project header with its general and unscheduled
// sections. Callers insert it with an InsertRows command.
func NewProjectBlock(name string, newID func() string) []model.Row {
	headerGroup := newID()
	return []model.Row{
		{ID: newID(), Kind: model.KindProjectHeader, GroupID: headerGroup, Project: name, Label: name},
		{ID: newID(), Kind: model.KindProjectGeneral, GroupID: newID(), ParentGroupID: headerGroup},
		{ID: newID(), Kind: model.KindProjectUnsched, GroupID: newID(), ParentGroupID: headerGroup},
	}
}
