package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// BackupTo copies the planner tree and the sqlite file into destDir. The copy
// is file-by-file and read-only with respect to the source; a live workspace
// can be backed up while open.
func (s Store) BackupTo(destDir string) error {
	destDir = filepath.Clean(destDir)
	if destDir == "" || destDir == "." {
		return errors.New("backup: missing destination")
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return err
	}

	base := s.plannerDir()
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}
		return copyFile(path, filepath.Join(destDir, "planner", rel))
	})
	if err != nil {
		return fmt.Errorf("backup planner tree: %w", err)
	}

	if _, err := os.Stat(s.sqlitePath()); err == nil {
		if err := copyFile(s.sqlitePath(), filepath.Join(destDir, sqliteFileName)); err != nil {
			return fmt.Errorf("backup journal: %w", err)
		}
	}
	return nil
}
