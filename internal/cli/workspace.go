package cli

import (
	"fmt"

	"listical-cli/internal/gitrepo"
	"listical-cli/internal/store"

	"github.com/spf13/cobra"
)

func newWorkspaceCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}
	cmd.AddCommand(newWorkspaceListCmd(app))
	cmd.AddCommand(newWorkspaceUseCmd(app))
	cmd.AddCommand(newWorkspaceBackupCmd(app))
	cmd.AddCommand(newWorkspaceSyncCmd(app))
	return cmd
}

func newWorkspaceSyncCmd(app *App) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Commit the workspace's planner data to its git repo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := gitrepo.GetStatus(cmd.Context(), s.Dir)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !st.IsRepo {
				return writeErr(cmd, fmt.Errorf("%s is not a git repository", s.Dir))
			}
			committed, err := gitrepo.CommitWorkspace(cmd.Context(), s.Dir, message)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"committed": committed, "branch": st.Branch},
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "Commit message")
	return cmd
}

func newWorkspaceListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List known workspaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := store.ListWorkspaces()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, _ := store.LoadConfig()
			current := ""
			if cfg != nil {
				current = cfg.CurrentWorkspace
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"workspaces": names, "current": current},
			})
		},
	}
}

func newWorkspaceUseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "use <name>",
		Short: "Set the current workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := store.NormalizeWorkspaceName(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			cfg.CurrentWorkspace = name
			if err := store.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"current": name},
			})
		},
	}
}

func newWorkspaceBackupCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dest-dir>",
		Short: "Copy the workspace's planner blobs and journal to a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.BackupTo(args[0]); err != nil {
				return writeErr(cmd, fmt.Errorf("backup: %w", err))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"source": s.Dir, "dest": args[0]},
			})
		},
	}
}
