package store

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"listical-cli/internal/model"
)

// PlannerState is the per-project, per-year blob: the raw row array plus the
// board-level settings the TUI needs to rebuild its view. Derived row fields
// are recomputed on load, never trusted from disk.
type PlannerState struct {
	Version   int         `json:"version"`
	Rows      []model.Row `json:"rows"`
	TotalDays int         `json:"totalDays"`

	// StartDate anchors day column 0, ISO date ("2026-01-05").
	StartDate string `json:"startDate,omitempty"`

	ColumnWidths map[string]int  `json:"columnWidths,omitempty"`
	UIScale      float64         `json:"uiScale,omitempty"`
	ShowColumns  map[string]bool `json:"showColumns,omitempty"`

	// StatusFilter holds the sort-filter status selections.
	StatusFilter []string `json:"statusFilter,omitempty"`

	// HiddenDays marks day columns hidden from view, keyed by index.
	HiddenDays map[int]bool `json:"hiddenDays,omitempty"`

	Collapsed map[string]bool `json:"collapsed,omitempty"`
}

// LoadPlanner reads one project-year blob. A missing key falls back to the
// legacy no-year key; missing both means no data (nil, nil). A corrupt blob
// is logged and treated as missing.
func (s Store) LoadPlanner(projectID string, year int) (*PlannerState, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	d := s.openDiskv()

	b, err := d.Read(plannerKey(projectID, year))
	if err != nil {
		b, err = d.Read(legacyPlannerKey(projectID))
		if err != nil {
			return nil, nil
		}
	}
	var st PlannerState
	if err := json.Unmarshal(b, &st); err != nil {
		fmt.Fprintf(os.Stderr, "store: planner blob for %s/%d unreadable: %v\n", projectID, year, err)
		return nil, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

// SavePlanner writes the project-year blob. diskv's write is already
// tmp+rename atomic per key.
func (s Store) SavePlanner(projectID string, year int, st *PlannerState) error {
	if st == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.openDiskv().Write(plannerKey(projectID, year), b)
}

// DeletePlanner erases both the year-scoped and legacy blobs for a project.
func (s Store) DeletePlanner(projectID string, year int) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	d := s.openDiskv()
	err := d.Erase(plannerKey(projectID, year))
	if legacyErr := d.Erase(legacyPlannerKey(projectID)); legacyErr == nil {
		err = nil
	}
	return err
}

// ListPlannerProjects enumerates the project ids with a blob for the given
// year, including legacy blobs not yet migrated.
func (s Store) ListPlannerProjects(year int) ([]string, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	d := s.openDiskv()

	prefix := fmt.Sprintf("planner-%d-", year)
	seen := map[string]bool{}
	for key := range d.Keys(nil) {
		switch {
		case strings.HasPrefix(key, prefix):
			seen[strings.TrimPrefix(key, prefix)] = true
		case isLegacyPlannerKey(key):
			seen[strings.TrimPrefix(key, "planner-")] = true
		}
	}
	out := make([]string, 0, len(seen))
	for id := range seen {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

// isLegacyPlannerKey reports whether key is a pre-migration planner key with
// no year segment. Year-scoped keys carry a four-digit year right after the
// prefix; project ids may themselves contain dashes, so the year segment is
// the only reliable anchor.
func isLegacyPlannerKey(key string) bool {
	rest, ok := strings.CutPrefix(key, "planner-")
	if !ok || rest == "" {
		return false
	}
	seg, _, _ := strings.Cut(rest, "-")
	if len(seg) == 4 {
		if _, err := strconv.Atoi(seg); err == nil {
			return false
		}
	}
	return true
}
