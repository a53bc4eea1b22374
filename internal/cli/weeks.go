package cli

import (
	"strconv"

	"listical-cli/internal/command"
	"listical-cli/internal/format"

	"github.com/spf13/cobra"
)

func newWeeksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weeks",
		Short: "Manage the planning horizon",
	}
	cmd.AddCommand(newWeeksListCmd(app))
	cmd.AddCommand(newWeeksAddCmd(app))
	return cmd
}

func newWeeksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the weeks on the timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			type week struct {
				Index int    `json:"index"`
				Start string `json:"start"`
				End   string `json:"end"`
			}
			var out []week
			for d := 0; d < ses.Board.TotalDays; d += 7 {
				start := ses.Board.StartDate.AddDate(0, 0, d)
				end := start.AddDate(0, 0, 6)
				out = append(out, week{
					Index: d / 7,
					Start: start.Format("2006-01-02"),
					End:   end.Format("2006-01-02"),
				})
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"WEEK", "START", "END"}}
				for _, w := range out {
					t.Rows = append(t.Rows, []string{strconv.Itoa(w.Index), w.Start, w.End})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"weeks": out, "totalDays": ses.Board.TotalDays},
			})
		},
	}
}

func newWeeksAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add",
		Short: "Extend the timeline by one week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			ses.Apply(command.NewAddWeek(ses.Board))
			ses.Flush()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"totalDays": ses.Board.TotalDays,
					"lastDay":   ses.Board.StartDate.AddDate(0, 0, ses.Board.TotalDays-1).Format("2006-01-02"),
				},
			})
		},
	}
}
