package cli

import (
	"fmt"
	"strings"

	"listical-cli/internal/docs"

	"github.com/spf13/cobra"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show the built-in guide",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"topics": docs.Topics()},
				})
			}
			topic := args[0]
			md, ok := docs.Get(topic)
			if !ok {
				return writeErr(cmd, errNotFound("topic", topic))
			}
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(md, "\n"))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), docs.Render(md, 100))
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown instead of rendering")
	return cmd
}
