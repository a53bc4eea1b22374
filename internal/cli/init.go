package cli

import (
	"path/filepath"

	"listical-cli/internal/store"

	"github.com/spf13/cobra"
)

func newInitCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize local storage (workspace-first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.Ensure(); err != nil {
				return writeErr(cmd, err)
			}

			// Opening scaffolds the board and queues its first save; Flush
			// materializes the blob before the command returns.
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ses.Flush()
			ses.Close()

			// If we're in workspace mode but no current workspace is set, set it.
			if app.Workspace != "" {
				cfg, err := store.LoadConfig()
				if err == nil && cfg.CurrentWorkspace == "" {
					cfg.CurrentWorkspace = app.Workspace
					_ = store.SaveConfig(cfg)
				}
			}

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"dir":        app.Dir,
					"planner":    plannerID(app),
					"year":       plannerYear(app),
					"sqlitePath": filepath.Join(app.Dir, ".listical", "listical.sqlite"),
				},
			})
		},
	}
	return cmd
}
