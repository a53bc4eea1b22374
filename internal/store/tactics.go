package store

import (
	"encoding/json"
	"fmt"
	"os"
)

// Tactics holds the planning metrics that sit outside any single project:
// per-weekday hour bounds and per-project weekly quotas, all H.MM strings.
type Tactics struct {
	Version int `json:"version"`

	// MinHours/MaxHours are keyed by weekday name ("monday".."sunday").
	MinHours map[string]string `json:"minHours,omitempty"`
	MaxHours map[string]string `json:"maxHours,omitempty"`

	// WeeklyQuotas are keyed by project id.
	WeeklyQuotas map[string]string `json:"weeklyQuotas,omitempty"`
}

// LoadTactics reads the year's metrics, falling back to the legacy unscoped
// key. Missing or corrupt data means empty metrics, not an error.
func (s Store) LoadTactics(year int) (*Tactics, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	d := s.openDiskv()

	b, err := d.Read(tacticsKey(year))
	if err != nil {
		b, err = d.Read(legacyTacticsKey)
		if err != nil {
			return &Tactics{Version: 1}, nil
		}
	}
	var t Tactics
	if err := json.Unmarshal(b, &t); err != nil {
		fmt.Fprintf(os.Stderr, "store: tactics blob for %d unreadable: %v\n", year, err)
		return &Tactics{Version: 1}, nil
	}
	if t.Version == 0 {
		t.Version = 1
	}
	return &t, nil
}

func (s Store) SaveTactics(year int, t *Tactics) error {
	if t == nil {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if t.Version == 0 {
		t.Version = 1
	}
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.openDiskv().Write(tacticsKey(year), b)
}
