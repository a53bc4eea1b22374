package cli

import (
	"time"

	"listical-cli/internal/format"

	"github.com/spf13/cobra"
)

func newJournalCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Show the command journal",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			records, err := s.ReadCommands(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"TS", "PLANNER", "COMMAND"}}
				for _, r := range records {
					t.Rows = append(t.Rows, []string{r.TS.Format(time.RFC3339), r.ProjectID, r.Name})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"commands": records}})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "Most recent records to show (0 = all)")
	return cmd
}
