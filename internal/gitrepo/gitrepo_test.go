package gitrepo

import (
	"testing"
	"time"
)

func TestParsePorcelain(t *testing.T) {
	cases := []struct {
		name     string
		out      string
		dirty    bool
		unmerged bool
	}{
		{"clean", "", false, false},
		{"modified", " M planner/2026/main\n", true, false},
		{"untracked", "?? planner/2026/side\n", true, false},
		{"unmerged both", "UU planner/2026/main\n", true, true},
		{"unmerged added", "AA planner/2026/main\n", true, true},
		{"mixed", " M a\nUU b\n", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			dirty, unmerged := parsePorcelain(tc.out)
			if dirty != tc.dirty || unmerged != tc.unmerged {
				t.Fatalf("got dirty=%v unmerged=%v, want dirty=%v unmerged=%v",
					dirty, unmerged, tc.dirty, tc.unmerged)
			}
		})
	}
}

func TestDefaultCommitMessage(t *testing.T) {
	at := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	if got := DefaultCommitMessage(at); got != "planner sync 2026-08-31 12:00" {
		t.Fatalf("got %q", got)
	}
}
