// Package gitrepo versions a workspace with plain git. Only the durable
// planner data is committed; the .listical dir (sqlite journal, tui state,
// backups) is local-only and stays out of history.
package gitrepo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// Status is the subset of git state the sync path needs.
type Status struct {
	IsRepo bool   `json:"isRepo"`
	Root   string `json:"root,omitempty"`
	Branch string `json:"branch,omitempty"`
	Head   string `json:"head,omitempty"`

	Dirty    bool `json:"dirty"`
	Unmerged bool `json:"unmerged"`
	// InProgress reports a merge/rebase/cherry-pick/revert in flight.
	InProgress bool `json:"inProgress"`
}

func GetStatus(ctx context.Context, dir string) (Status, error) {
	root, err := git(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		// "not a git repository" is common; treat as non-repo rather than error.
		return Status{IsRepo: false}, nil
	}
	root = strings.TrimSpace(root)
	if root == "" {
		return Status{}, errors.New("git rev-parse returned empty root")
	}

	branch, _ := git(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
	head, _ := git(ctx, dir, "rev-parse", "--short", "HEAD")

	porcelain, _ := git(ctx, dir, "status", "--porcelain=v1")
	dirty, unmerged := parsePorcelain(porcelain)

	return Status{
		IsRepo:     true,
		Root:       root,
		Branch:     strings.TrimSpace(branch),
		Head:       strings.TrimSpace(head),
		Dirty:      dirty,
		Unmerged:   unmerged,
		InProgress: detectInProgress(ctx, dir),
	}, nil
}

// CommitWorkspace stages the workspace's planner data and commits it. Returns
// committed=false when the dir is not a repo or nothing changed.
func CommitWorkspace(ctx context.Context, workspaceDir, message string) (committed bool, err error) {
	workspaceDir = filepath.Clean(workspaceDir)

	st, err := GetStatus(ctx, workspaceDir)
	if err != nil {
		return false, err
	}
	if !st.IsRepo {
		return false, nil
	}
	if st.Unmerged || st.InProgress {
		return false, errors.New("git repo has an in-progress merge/rebase; resolve first")
	}

	// Stage only the durable data. ":(exclude).listical" keeps the local-only
	// dir out even when it is not gitignored.
	if _, err := git(ctx, workspaceDir, "add", "-A", "--", ".", ":(exclude).listical"); err != nil {
		return false, err
	}
	if err := gitRun(ctx, workspaceDir, "diff", "--cached", "--quiet"); err == nil {
		return false, nil // nothing staged
	}

	if strings.TrimSpace(message) == "" {
		message = DefaultCommitMessage(time.Now())
	}
	if _, err := git(ctx, workspaceDir, "commit", "-m", message); err != nil {
		return false, err
	}
	return true, nil
}

// DefaultCommitMessage is what autosync commits carry.
func DefaultCommitMessage(t time.Time) string {
	return "planner sync " + t.UTC().Format("2006-01-02 15:04")
}

func git(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("git %s: %s", strings.Join(args, " "), msg)
	}
	return stdout.String(), nil
}

// gitRun returns only the exit error, for commands used as predicates.
func gitRun(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	return cmd.Run()
}

func parsePorcelain(out string) (dirty bool, unmerged bool) {
	for _, ln := range strings.Split(out, "\n") {
		ln = strings.TrimRight(ln, "\r")
		if len(ln) < 2 {
			continue
		}
		xy := ln[:2]
		if strings.TrimSpace(xy) == "" {
			continue
		}
		dirty = true
		if isUnmergedXY(xy) {
			unmerged = true
		}
	}
	return dirty, unmerged
}

func detectInProgress(ctx context.Context, dir string) bool {
	for _, ref := range []string{"MERGE_HEAD", "REBASE_HEAD", "CHERRY_PICK_HEAD", "REVERT_HEAD"} {
		if gitRun(ctx, dir, "rev-parse", "--verify", "-q", ref) == nil {
			return true
		}
	}
	return false
}

func isUnmergedXY(xy string) bool {
	if len(xy) != 2 {
		return false
	}
	switch xy {
	case "DD", "AA":
		return true
	}
	return xy[0] == 'U' || xy[1] == 'U'
}
