package cli

import (
	"time"

	"listical-cli/internal/account"
	"listical-cli/internal/format"

	"github.com/spf13/cobra"
)

func newAccountCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Profile and deletion lifecycle",
	}
	cmd.AddCommand(newAccountEnsureCmd(app))
	cmd.AddCommand(newAccountRequestDeleteCmd(app))
	cmd.AddCommand(newAccountCancelDeleteCmd(app))
	cmd.AddCommand(newAccountPurgeCmd(app))
	cmd.AddCommand(newAccountAuditCmd(app))
	return cmd
}

func accountService(app *App) (*account.Service, error) {
	s, err := resolveStore(app)
	if err != nil {
		return nil, err
	}
	return account.NewService(s), nil
}

func newAccountEnsureCmd(app *App) *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "ensure <user-id>",
		Short: "Create or update a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := accountService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := svc.EnsureProfile(cmd.Context(), args[0], displayName); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"userId": args[0], "displayName": displayName},
			})
		},
	}
	cmd.Flags().StringVar(&displayName, "display-name", "", "Display name")
	return cmd
}

func newAccountRequestDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "request-delete <user-id>",
		Short: "Mark a profile for deletion after the grace period",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := accountService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := svc.RequestDeletion(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"userId": args[0],
					"dueAt":  time.Now().UTC().Add(svc.GracePeriod).Format(time.RFC3339),
				},
			})
		},
	}
}

func newAccountCancelDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel-delete <user-id>",
		Short: "Withdraw a pending deletion request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := accountService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := svc.CancelDeletion(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"userId": args[0], "cancelled": true},
			})
		},
	}
}

func newAccountPurgeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Hard-delete every profile whose grace period has lapsed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := accountService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			res, err := svc.PurgeDue(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"processed": res.Processed,
					"succeeded": res.Succeeded,
					"failed":    res.Failed,
					"errors":    res.Errors,
				},
			})
		},
	}
}

func newAccountAuditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "audit <user-id>",
		Short: "Show the audit trail for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := accountService(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			entries, err := svc.AuditTrail(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"TS", "ACTION", "DETAIL"}}
				for _, e := range entries {
					t.Rows = append(t.Rows, []string{e.TS.Format(time.RFC3339), e.Action, e.Detail})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"entries": entries}})
		},
	}
}
