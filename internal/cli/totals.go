package cli

import (
	"strconv"

	"listical-cli/internal/format"
	"listical-cli/internal/model"
	"listical-cli/internal/totals"

	"github.com/spf13/cobra"
)

func newTotalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "totals",
		Short: "Show the planner's rollups",
	}
	cmd.AddCommand(newTotalsProjectsCmd(app))
	cmd.AddCommand(newTotalsDaysCmd(app))
	cmd.AddCommand(newTotalsArchiveCmd(app))
	return cmd
}

func newTotalsProjectsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Scheduled+Done hours per project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			perProject := totals.PerProject(ses.Board.Rows)

			if app.Format == "table" {
				t := format.Table{Headers: []string{"PROJECT", "TOTAL"}}
				for i := range ses.Board.Rows {
					r := &ses.Board.Rows[i]
					if r.Kind != model.KindProjectHeader {
						continue
					}
					t.Rows = append(t.Rows, []string{r.Label, perProject[r.GroupID]})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"perProject": perProject}})
		},
	}
}

func newTotalsDaysCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "days",
		Short: "Hours per day column",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			perDay := totals.PerDay(ses.Board.Rows, ses.Board.TotalDays)

			if app.Format == "table" {
				t := format.Table{Headers: []string{"DAY", "DATE", "TOTAL"}}
				for i, total := range perDay {
					date := ses.Board.StartDate.AddDate(0, 0, i).Format("2006-01-02")
					t.Rows = append(t.Rows, []string{strconv.Itoa(i), date, total})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"perDay": perDay}})
		},
	}
}

func newTotalsArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Hours per archived project and archived week",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			perProject, perWeek := totals.Archive(ses.Board.Rows)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"perProject": perProject, "perWeek": perWeek},
			})
		},
	}
}
