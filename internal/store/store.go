package store

import (
	"os"
	"path/filepath"
	"strings"
)

// Store is a workspace-rooted persistence handle. Planner blobs live in a
// diskv tree under planner/, small JSON side files and the sqlite journal in
// .listical/.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing workspace marker.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".listical")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return dir, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the workspace for a bare invocation: an enclosing
// workspace if one exists, otherwise the configured current workspace,
// otherwise the working directory itself.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	if cfg, err := LoadConfig(); err == nil && strings.TrimSpace(cfg.CurrentWorkspace) != "" {
		return WorkspaceDir(cfg.CurrentWorkspace)
	}
	return cwd, nil
}

// WorkspaceDir maps a workspace name to its directory: the registry entry in
// config.json when one exists, otherwise the conventional directory under the
// config root.
func WorkspaceDir(name string) (string, error) {
	name, err := NormalizeWorkspaceName(name)
	if err != nil {
		return "", err
	}
	cfg, err := LoadConfig()
	if err != nil {
		return "", err
	}
	if ref, ok := cfg.Workspaces[name]; ok && strings.TrimSpace(ref.Path) != "" {
		return ref.Path, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "workspaces", name), nil
}

func (s Store) Ensure() error {
	if err := os.MkdirAll(s.localDir(), 0o755); err != nil {
		return err
	}
	return os.MkdirAll(s.plannerDir(), 0o755)
}

func (s Store) localDir() string {
	return filepath.Join(filepath.Clean(s.Dir), ".listical")
}

func (s Store) plannerDir() string {
	return filepath.Join(filepath.Clean(s.Dir), "planner")
}
