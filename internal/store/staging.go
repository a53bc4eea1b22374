package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// StagingEntry is one shortlisted idea waiting to become scheduled work, with
// an optional nested plan table.
type StagingEntry struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Notes string    `json:"notes,omitempty"`
	Plan  []PlanRow `json:"plan,omitempty"`
}

// PlanRow is one row of a staging entry's plan table.
type PlanRow struct {
	Label    string `json:"label"`
	Estimate string `json:"estimate,omitempty"` // H.MM
	Done     bool   `json:"done,omitempty"`
}

// LoadStaging reads the year's shortlist. Missing or corrupt data is an empty
// list.
func (s Store) LoadStaging(year int) ([]StagingEntry, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	b, err := s.openDiskv().Read(stagingKey(year))
	if err != nil {
		return []StagingEntry{}, nil
	}
	var out []StagingEntry
	if err := json.Unmarshal(b, &out); err != nil {
		fmt.Fprintf(os.Stderr, "store: staging blob for %d unreadable: %v\n", year, err)
		return []StagingEntry{}, nil
	}
	return out, nil
}

func (s Store) SaveStaging(year int, entries []StagingEntry) error {
	if err := s.Ensure(); err != nil {
		return err
	}
	if entries == nil {
		entries = []StagingEntry{}
	}
	b, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return s.openDiskv().Write(stagingKey(year), b)
}
