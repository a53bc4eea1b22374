package cli

import (
	"listical-cli/internal/format"
	"listical-cli/internal/store"

	"github.com/spf13/cobra"
)

func newStagingCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staging",
		Short: "Shortlist ideas before they become scheduled work",
	}
	cmd.AddCommand(newStagingListCmd(app))
	cmd.AddCommand(newStagingAddCmd(app))
	cmd.AddCommand(newStagingRmCmd(app))
	return cmd
}

func newStagingListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staged entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries, err := s.LoadStaging(plannerYear(app))
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"ID", "TITLE", "NOTES"}}
				for _, e := range entries {
					t.Rows = append(t.Rows, []string{e.ID, e.Title, e.Notes})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"entries": entries}})
		},
	}
}

func newStagingAddCmd(app *App) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Stage an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			year := plannerYear(app)
			entries, err := s.LoadStaging(year)
			if err != nil {
				return writeErr(cmd, err)
			}
			id, err := store.NewRowID("stage")
			if err != nil {
				return writeErr(cmd, err)
			}
			entries = append(entries, store.StagingEntry{ID: id, Title: args[0], Notes: notes})
			if err := s.SaveStaging(year, entries); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": id, "title": args[0]},
			})
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newStagingRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Drop a staged entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			year := plannerYear(app)
			entries, err := s.LoadStaging(year)
			if err != nil {
				return writeErr(cmd, err)
			}
			kept := entries[:0]
			found := false
			for _, e := range entries {
				if e.ID == args[0] {
					found = true
					continue
				}
				kept = append(kept, e)
			}
			if !found {
				return writeErr(cmd, errNotFound("staging entry", args[0]))
			}
			if err := s.SaveStaging(year, kept); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[0]}})
		},
	}
}
