package cli

import (
	"listical-cli/internal/command"
	"listical-cli/internal/format"
	"listical-cli/internal/model"
	"listical-cli/internal/planner"
	"listical-cli/internal/store"
	"listical-cli/internal/totals"

	"github.com/spf13/cobra"
)

func newProjectsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Manage project blocks on the planner",
	}
	cmd.AddCommand(newProjectsListCmd(app))
	cmd.AddCommand(newProjectsAddCmd(app))
	return cmd
}

func newProjectsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List project headers with their scheduled totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			perProject := totals.PerProject(ses.Board.Rows)

			type projectRow struct {
				GroupID string `json:"groupId"`
				Name    string `json:"name"`
				Total   string `json:"total"`
			}
			var out []projectRow
			for i := range ses.Board.Rows {
				r := &ses.Board.Rows[i]
				if r.Kind != model.KindProjectHeader {
					continue
				}
				out = append(out, projectRow{
					GroupID: r.GroupID,
					Name:    r.Label,
					Total:   perProject[r.GroupID],
				})
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"GROUP", "PROJECT", "TOTAL"}}
				for _, p := range out {
					t.Rows = append(t.Rows, []string{p.GroupID, p.Name, p.Total})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"projects": out}})
		},
	}
}

func newProjectsAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a project block (header + general + unscheduled)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			var idErr error
			newID := func() string {
				id, err := store.NewRowID("p")
				if err != nil && idErr == nil {
					idErr = err
				}
				return id
			}
			block := planner.NewProjectBlock(args[0], newID)
			if idErr != nil {
				return writeErr(cmd, idErr)
			}

			// Project blocks live above the inbox divider.
			at := model.FindRow(ses.Board.Rows, planner.DividerInboxID)
			if at < 0 {
				at = len(ses.Board.Rows)
			}
			ses.Apply(command.NewInsertRows(at, block))
			ses.Flush()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"name": args[0], "groupId": block[0].GroupID, "rowId": block[0].ID},
			})
		},
	}
}
