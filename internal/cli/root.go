package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"listical-cli/internal/format"
	"listical-cli/internal/planner"
	"listical-cli/internal/store"
	"listical-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	Workspace  string
	Planner    string
	Year       int
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "listical",
		Short:        "Listical (local-first) planner CLI + TUI",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive planner grid
  listical

  # Scriptable commands
  listical tasks list
  listical tasks add --project Writing "draft chapter 3"

  # Close out the displayed week
  listical archive week
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("LISTICAL_DIR", ""), "Path to workspace dir (advanced: overrides workspace resolution; use for fixtures/tests)")
	cmd.PersistentFlags().StringVar(&app.Workspace, "workspace", envOr("LISTICAL_WORKSPACE", ""), "Workspace name (default: 'default')")
	cmd.PersistentFlags().StringVar(&app.Planner, "planner", envOr("LISTICAL_PLANNER", ""), "Planner id (default: configured default, else 'main')")
	cmd.PersistentFlags().IntVar(&app.Year, "year", 0, "Planner year (default: current year)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("LISTICAL_FORMAT", "json"), "Output format (json|table)")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newWorkspaceCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newWeeksCmd(app))
	cmd.AddCommand(newArchiveCmd(app))
	cmd.AddCommand(newTotalsCmd(app))
	cmd.AddCommand(newJournalCmd(app))
	cmd.AddCommand(newTacticsCmd(app))
	cmd.AddCommand(newStagingCmd(app))
	cmd.AddCommand(newAccountCmd(app))

	return cmd
}

func runTUI(app *App) error {
	ses, err := openSession(app)
	if err != nil {
		return err
	}
	defer ses.Close()
	return tui.Run(ses)
}

// resolveStore maps --dir/--workspace to a store, workspace-first:
// 1) --dir
// 2) --workspace
// 3) ~/.listical/config.json currentWorkspace
// 4) the implicit "default" workspace
func resolveStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		if app.Workspace == "" {
			if cfg, err := store.LoadConfig(); err == nil && cfg.CurrentWorkspace != "" {
				app.Workspace = cfg.CurrentWorkspace
			} else {
				app.Workspace = "default"
			}
		}
		d, err := store.WorkspaceDir(app.Workspace)
		if err != nil {
			return store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	return store.Store{Dir: dir}, nil
}

func plannerID(app *App) string {
	if app.Planner != "" {
		return app.Planner
	}
	if cfg, err := store.LoadConfig(); err == nil && cfg.DefaultProject != "" {
		return cfg.DefaultProject
	}
	return "main"
}

func plannerYear(app *App) int {
	if app.Year != 0 {
		return app.Year
	}
	return time.Now().Year()
}

func openSession(app *App) (*planner.Session, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	return planner.Open(planner.Options{
		Store:        s,
		ProjectID:    plannerID(app),
		Year:         plannerYear(app),
		ShowMinBound: true,
		ShowMaxBound: true,
	})
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
