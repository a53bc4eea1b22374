package cli

import (
	"fmt"
	"strings"

	"listical-cli/internal/timefmt"

	"github.com/spf13/cobra"
)

var weekdays = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

func newTacticsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tactics",
		Short: "Per-weekday hour bounds and weekly quotas",
	}
	cmd.AddCommand(newTacticsGetCmd(app))
	cmd.AddCommand(newTacticsSetCmd(app))
	return cmd
}

func newTacticsGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get",
		Short: "Show the year's planning metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := s.LoadTactics(plannerYear(app))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTacticsSetCmd(app *App) *cobra.Command {
	var mins, maxs, quotas []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update the year's planning metrics",
		Example: strings.TrimSpace(`
  listical tactics set --min monday=2.00 --min saturday=0.00
  listical tactics set --max monday=6.00 --quota writing=10.00
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := resolveStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			year := plannerYear(app)
			t, err := s.LoadTactics(year)
			if err != nil {
				return writeErr(cmd, err)
			}

			for _, raw := range mins {
				day, v, err := parseBound(raw)
				if err != nil {
					return writeErr(cmd, err)
				}
				if t.MinHours == nil {
					t.MinHours = map[string]string{}
				}
				t.MinHours[day] = v
			}
			for _, raw := range maxs {
				day, v, err := parseBound(raw)
				if err != nil {
					return writeErr(cmd, err)
				}
				if t.MaxHours == nil {
					t.MaxHours = map[string]string{}
				}
				t.MaxHours[day] = v
			}
			for _, raw := range quotas {
				k, v, ok := strings.Cut(raw, "=")
				if !ok {
					return writeErr(cmd, fmt.Errorf("bad quota %q, want project=H.MM", raw))
				}
				if _, ok := timefmt.Parse(v); !ok {
					return writeErr(cmd, fmt.Errorf("bad quota value %q, want H.MM", v))
				}
				if t.WeeklyQuotas == nil {
					t.WeeklyQuotas = map[string]string{}
				}
				t.WeeklyQuotas[strings.TrimSpace(k)] = v
			}

			if err := s.SaveTactics(year, t); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
	cmd.Flags().StringArrayVar(&mins, "min", nil, "Minimum hours, weekday=H.MM (repeatable)")
	cmd.Flags().StringArrayVar(&maxs, "max", nil, "Maximum hours, weekday=H.MM (repeatable)")
	cmd.Flags().StringArrayVar(&quotas, "quota", nil, "Weekly quota, project=H.MM (repeatable)")
	return cmd
}

func parseBound(raw string) (day, value string, err error) {
	k, v, ok := strings.Cut(raw, "=")
	if !ok {
		return "", "", fmt.Errorf("bad bound %q, want weekday=H.MM", raw)
	}
	day = strings.ToLower(strings.TrimSpace(k))
	valid := false
	for _, wd := range weekdays {
		if day == wd {
			valid = true
			break
		}
	}
	if !valid {
		return "", "", fmt.Errorf("unknown weekday %q", k)
	}
	if _, ok := timefmt.Parse(v); !ok {
		return "", "", fmt.Errorf("bad bound value %q, want H.MM", v)
	}
	return day, v, nil
}
