package store

import (
	"fmt"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// Keys are dash-separated path segments; the last segment is the file name.
// "planner-2026-01jx..." lands at planner/2026/01jx... on disk.
func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

func (s Store) openDiskv() *diskv.Diskv {
	return diskv.New(diskv.Options{
		BasePath:          s.plannerDir(),
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})
}

// plannerKey is the per-year blob key. Project ids may contain dashes; the
// inverse transform joins path segments back with dashes, so such keys still
// round-trip. Only the prefix and the year segment are structural.
func plannerKey(projectID string, year int) string {
	return fmt.Sprintf("planner-%d-%s", year, projectID)
}

// legacyPlannerKey is the pre-migration key shape without a year segment.
func legacyPlannerKey(projectID string) string {
	return "planner-" + projectID
}

func tacticsKey(year int) string {
	return fmt.Sprintf("tactics-%d-metrics", year)
}

const legacyTacticsKey = "tactics-metrics"

func stagingKey(year int) string {
	return fmt.Sprintf("staging-%d-entries", year)
}
