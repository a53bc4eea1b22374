package cli

import (
	"listical-cli/internal/command"
	"listical-cli/internal/format"
	"listical-cli/internal/model"
	"listical-cli/internal/store"
	"listical-cli/internal/totals"

	"github.com/spf13/cobra"
)

func newArchiveCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Close out weeks and inspect the archive",
	}
	cmd.AddCommand(newArchiveWeekCmd(app))
	cmd.AddCommand(newArchiveListCmd(app))
	return cmd
}

func newArchiveWeekCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Archive the first week on the timeline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			c := command.NewArchiveWeek(ses.Board, store.NewArchiveID)
			ses.Apply(c)
			if c.Err != nil {
				return writeErr(cmd, c.Err)
			}
			ses.Flush()

			res, _ := c.Result()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"weekLabel": res.WeekLabel,
					"dateRange": res.DateRange,
					"totalDays": ses.Board.TotalDays,
				},
			})
		},
	}
}

func newArchiveListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived weeks with their totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			_, perWeek := totals.Archive(ses.Board.Rows)

			type weekRow struct {
				GroupID   string `json:"groupId"`
				Label     string `json:"label"`
				DateRange string `json:"dateRange"`
				Total     string `json:"total"`
			}
			var out []weekRow
			for i := range ses.Board.Rows {
				r := &ses.Board.Rows[i]
				if r.Kind != model.KindArchiveWeek {
					continue
				}
				out = append(out, weekRow{
					GroupID:   r.GroupID,
					Label:     r.Label,
					DateRange: r.DateRange,
					Total:     perWeek[r.GroupID],
				})
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"GROUP", "WEEK", "DATES", "TOTAL"}}
				for _, w := range out {
					t.Rows = append(t.Rows, []string{w.GroupID, w.Label, w.DateRange, w.Total})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"weeks": out}})
		},
	}
}
