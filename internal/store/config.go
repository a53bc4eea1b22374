package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

type GlobalConfig struct {
	CurrentWorkspace string `json:"currentWorkspace,omitempty"`

	// Workspaces is an optional registry of named workspace roots.
	// When set, these entries take precedence over ~/.listical/workspaces/<name>.
	Workspaces map[string]WorkspaceRef `json:"workspaces,omitempty"`

	// DefaultProject is the project opened by a bare `listical` invocation.
	DefaultProject string `json:"defaultProject,omitempty"`

	// TUI holds optional user preferences for the interactive TUI.
	TUI *TUIConfig `json:"tui,omitempty"`
}

type TUIConfig struct {
	// Profile is the appearance profile id (e.g. "default", "mono").
	Profile string `json:"profile,omitempty"`
	// Glyphs selects the glyph set (e.g. "unicode", "ascii").
	Glyphs string `json:"glyphs,omitempty"`
}

type WorkspaceRef struct {
	// Path is the workspace root directory.
	Path string `json:"path"`

	// LastOpened is an optional timestamp for MRU selection in UIs.
	LastOpened string `json:"lastOpened,omitempty"`
}

func ConfigDir() (string, error) {
	// Test/advanced override (keeps unit tests from touching ~/.listical).
	if v := strings.TrimSpace(os.Getenv("LISTICAL_CONFIG_DIR")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".listical"), nil
}

func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func LoadConfig() (*GlobalConfig, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &GlobalConfig{}, nil
		}
		return nil, err
	}
	var cfg GlobalConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}

func SaveConfig(cfg *GlobalConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	// Keep a copy of the previous config to make recovery from accidental
	// overwrites easier. Ignore errors to avoid blocking normal usage.
	if prev, err := os.ReadFile(path); err == nil && len(prev) > 0 {
		_ = atomicWriteFile(dir, "config.json.bak.*.tmp", path+".bak", prev, 0o644)
	}

	// Unique temp file name: multiple listical processes may write config
	// concurrently (CLI + TUI).
	return atomicWriteFile(dir, "config.json.*.tmp", path, b, 0o600)
}

func NormalizeWorkspaceName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("workspace name is empty")
	}
	return name, nil
}

// ListWorkspaces unions directory-based workspaces under the config root with
// the registry entries in config.json.
func ListWorkspaces() ([]string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return nil, err
	}
	outSet := map[string]struct{}{}

	wsRoot := filepath.Join(dir, "workspaces")
	if ents, err := os.ReadDir(wsRoot); err == nil {
		for _, e := range ents {
			if e.IsDir() {
				outSet[e.Name()] = struct{}{}
			}
		}
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	for name := range cfg.Workspaces {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		outSet[name] = struct{}{}
	}

	out := make([]string, 0, len(outSet))
	for name := range outSet {
		out = append(out, name)
	}
	sort.Strings(out)
	if out == nil {
		out = []string{}
	}
	return out, nil
}
