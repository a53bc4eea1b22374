package store

import (
	"path/filepath"
	"testing"
)

func TestWorkspaceDirPrefersRegistry(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("LISTICAL_CONFIG_DIR", cfgDir)

	custom := filepath.Join(t.TempDir(), "planner-work")
	if err := SaveConfig(&GlobalConfig{
		Workspaces: map[string]WorkspaceRef{"work": {Path: custom}},
	}); err != nil {
		t.Fatalf("save config: %v", err)
	}

	got, err := WorkspaceDir("work")
	if err != nil {
		t.Fatalf("workspace dir: %v", err)
	}
	if got != custom {
		t.Fatalf("registered path ignored: got %q, want %q", got, custom)
	}

	// Unregistered names still map to the conventional directory.
	got, err = WorkspaceDir("other")
	if err != nil {
		t.Fatalf("workspace dir: %v", err)
	}
	if want := filepath.Join(cfgDir, "workspaces", "other"); got != want {
		t.Fatalf("fallback dir: got %q, want %q", got, want)
	}
}

func TestWorkspaceDirIgnoresEmptyRegistryPath(t *testing.T) {
	cfgDir := t.TempDir()
	t.Setenv("LISTICAL_CONFIG_DIR", cfgDir)

	if err := SaveConfig(&GlobalConfig{
		Workspaces: map[string]WorkspaceRef{"work": {Path: "  "}},
	}); err != nil {
		t.Fatalf("save config: %v", err)
	}

	got, err := WorkspaceDir("work")
	if err != nil {
		t.Fatalf("workspace dir: %v", err)
	}
	if want := filepath.Join(cfgDir, "workspaces", "work"); got != want {
		t.Fatalf("blank registry path must fall back: got %q, want %q", got, want)
	}
}
