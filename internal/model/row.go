package model

// RowKind discriminates the row variants in the flat planner list. Hierarchy
// is positional (a structural row is followed by its descendants) plus
// ParentGroupID back-references; there is no explicit tree.
type RowKind string

const (
	KindTask             RowKind = "task"
	KindProjectHeader    RowKind = "projectHeader"
	KindProjectGeneral   RowKind = "projectGeneral"
	KindProjectUnsched   RowKind = "projectUnscheduled"
	KindSubprojectHeader RowKind = "subprojectHeader"
	KindTimelineHeader   RowKind = "timelineHeader"
	KindFilterRow        RowKind = "filterRow"
	KindDailyBound       RowKind = "dailyBound"
	KindSectionDivider   RowKind = "sectionDivider"
	KindArchiveWeek      RowKind = "archiveWeek"
	KindArchivedProject  RowKind = "archivedProjectHeader"
	KindArchivedGeneral  RowKind = "archivedProjectGeneral"
	KindArchivedUnsched  RowKind = "archivedProjectUnscheduled"
	KindArchivedSubproj  RowKind = "archivedSubprojectHeader"
)

// TimelineLevel distinguishes the four stacked timeline header rows.
type TimelineLevel string

const (
	TimelineMonth     TimelineLevel = "month"
	TimelineWeek      TimelineLevel = "week"
	TimelineDay       TimelineLevel = "day"
	TimelineDayOfWeek TimelineLevel = "dayOfWeek"
)

// BoundKind distinguishes the two daily-bound rows.
type BoundKind string

const (
	BoundMin BoundKind = "min"
	BoundMax BoundKind = "max"
)

// DividerKind distinguishes section divider rows.
type DividerKind string

const (
	DividerInbox   DividerKind = "inbox"
	DividerArchive DividerKind = "archive"
)

type Status string

const (
	StatusNone         Status = "-"
	StatusNotScheduled Status = "Not Scheduled"
	StatusScheduled    Status = "Scheduled"
	StatusDone         Status = "Done"
	StatusBlocked      Status = "Blocked"
	StatusOnHold       Status = "On Hold"
	StatusAbandoned    Status = "Abandoned"
	StatusSpecial      Status = "Special"
)

// Sticky reports whether a user-set status survives auto-derivation.
func (s Status) Sticky() bool {
	switch s {
	case StatusDone, StatusBlocked, StatusOnHold, StatusAbandoned:
		return true
	default:
		return false
	}
}

type Recurring string

const (
	RecurringYes Recurring = "Recurring"
	RecurringNo  Recurring = "Not Recurring"
)

// UseTimeValue is the internal day-entry token meaning "this cell carries the
// row's TimeValue". It never reaches user-visible output verbatim.
const UseTimeValue = "use-time-value"

// Row is one record in the flat ordered planner list; the unit of storage and
// display. Non-task kinds leave the task fields zero.
type Row struct {
	ID   string  `json:"id"`
	Kind RowKind `json:"kind"`

	// GroupID is the row's own grouping identity (structural rows only).
	// ParentGroupID is a back-reference to the structural ancestor's GroupID,
	// not an ownership pointer. Dangling references are tolerated and never
	// auto-healed.
	GroupID       string `json:"groupId,omitempty"`
	ParentGroupID string `json:"parentGroupId,omitempty"`

	// Archived marks task rows relocated or snapshotted under an archive week.
	Archived bool `json:"archived,omitempty"`

	// Timeline header payload.
	Timeline TimelineLevel `json:"timeline,omitempty"`
	// Daily bound payload.
	Bound BoundKind `json:"bound,omitempty"`
	// Section divider payload.
	Divider DividerKind `json:"divider,omitempty"`

	// Structural label (project/subproject/archive-week title, week date range).
	Label     string `json:"label,omitempty"`
	DateRange string `json:"dateRange,omitempty"`
	// Archive week rollups, recomputed by totals.
	ArchiveTotalHours string `json:"archiveTotalHours,omitempty"`
	MinHours          string `json:"minHours,omitempty"`
	MaxHours          string `json:"maxHours,omitempty"`

	// Task payload.
	Project          string    `json:"project,omitempty"`
	Subproject       string    `json:"subproject,omitempty"`
	TaskName         string    `json:"taskName,omitempty"`
	Status           Status    `json:"status,omitempty"`
	Recurring        Recurring `json:"recurring,omitempty"`
	Estimate         Estimate  `json:"estimate,omitempty"`
	OriginalEstimate Estimate  `json:"originalEstimate,omitempty"`
	// TimeValue is an H.MM duration string derived from Estimate unless the
	// estimate is Custom (free-form user input).
	TimeValue string `json:"timeValue,omitempty"`
	// Days holds one entry per day index: "" | "H.MM" | UseTimeValue.
	Days []string `json:"days,omitempty"`
}

// IsTaskLike reports whether derived-field computation applies to the row.
func (r Row) IsTaskLike() bool {
	return r.Kind == KindTask
}

// IsStructural reports whether the row carries a GroupID that descendants
// reference.
func (r Row) IsStructural() bool {
	switch r.Kind {
	case KindProjectHeader, KindProjectGeneral, KindProjectUnsched,
		KindSubprojectHeader, KindArchiveWeek, KindArchivedProject,
		KindArchivedGeneral, KindArchivedUnsched, KindArchivedSubproj:
		return true
	default:
		return false
	}
}

// IsSpecial reports whether the row is scaffolding rather than user data:
// timeline headers, the filter row, daily bounds, and section dividers.
func (r Row) IsSpecial() bool {
	switch r.Kind {
	case KindTimelineHeader, KindFilterRow, KindDailyBound, KindSectionDivider:
		return true
	default:
		return false
	}
}

// BypassesFilters reports whether the row is exempt from day-column filtering.
func (r Row) BypassesFilters() bool {
	return r.Kind != KindTask
}

// IsProjectStructure reports whether the row is plain or archived project
// structure. Under active facet filtering these do not survive.
func (r Row) IsProjectStructure() bool {
	switch r.Kind {
	case KindProjectHeader, KindProjectGeneral, KindProjectUnsched,
		KindSubprojectHeader, KindArchivedProject, KindArchivedGeneral,
		KindArchivedUnsched, KindArchivedSubproj, KindArchiveWeek:
		return true
	default:
		return false
	}
}

// IsArchiveKind reports whether the row belongs to an archive block.
func (r Row) IsArchiveKind() bool {
	switch r.Kind {
	case KindArchiveWeek, KindArchivedProject, KindArchivedGeneral,
		KindArchivedUnsched, KindArchivedSubproj:
		return true
	default:
		return r.Kind == KindTask && r.Archived
	}
}

// Clone returns a deep copy (Days included).
func (r Row) Clone() Row {
	out := r
	if r.Days != nil {
		out.Days = make([]string, len(r.Days))
		copy(out.Days, r.Days)
	}
	return out
}

// CloneRows deep-copies a row slice.
func CloneRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i := range rows {
		out[i] = rows[i].Clone()
	}
	return out
}

// FindRow returns the index of the row with the given id, or -1.
func FindRow(rows []Row, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}

// FindGroup returns the index of the structural row owning groupID, or -1.
func FindGroup(rows []Row, groupID string) int {
	if groupID == "" {
		return -1
	}
	for i := range rows {
		if rows[i].GroupID == groupID {
			return i
		}
	}
	return -1
}
