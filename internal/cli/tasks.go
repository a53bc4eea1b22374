package cli

import (
	"fmt"
	"strconv"
	"strings"

	"listical-cli/internal/command"
	"listical-cli/internal/format"
	"listical-cli/internal/model"
	"listical-cli/internal/store"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Manage task rows",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksAddCmd(app))
	cmd.AddCommand(newTasksSetCmd(app))
	cmd.AddCommand(newTasksCellCmd(app))
	cmd.AddCommand(newTasksClearCmd(app))
	cmd.AddCommand(newTasksRmCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var includeArchived bool
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List task rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			var out []model.Row
			for i := range ses.Board.Rows {
				r := ses.Board.Rows[i]
				if r.Kind != model.KindTask {
					continue
				}
				if r.Archived && !includeArchived {
					continue
				}
				if status != "" && !strings.EqualFold(string(r.Status), status) {
					continue
				}
				out = append(out, r)
			}

			if app.Format == "table" {
				t := format.Table{Headers: []string{"ID", "PROJECT", "SUBPROJECT", "TASK", "STATUS", "ESTIMATE", "TIME"}}
				for _, r := range out {
					t.Rows = append(t.Rows, []string{
						r.ID, r.Project, r.Subproject, r.TaskName,
						string(r.Status), string(r.Estimate), r.TimeValue,
					})
				}
				return writeOut(cmd, app, t)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"tasks": out}})
		},
	}
	cmd.Flags().BoolVar(&includeArchived, "archived", false, "Include archived tasks")
	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	return cmd
}

func newTasksAddCmd(app *App) *cobra.Command {
	var project, subproject, estimate string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task (to a project's block, or the inbox)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			id, err := store.NewRowID("task")
			if err != nil {
				return writeErr(cmd, err)
			}
			row := model.Row{
				ID:         id,
				Kind:       model.KindTask,
				TaskName:   args[0],
				Project:    project,
				Subproject: subproject,
				Days:       make([]string, ses.Board.TotalDays),
			}

			if estimate != "" {
				aliases, err := store.LoadEstimateAliases()
				if err != nil {
					return writeErr(cmd, err)
				}
				est, ok := aliases.Resolve(estimate)
				if !ok {
					return writeErr(cmd, fmt.Errorf("unknown estimate %q", estimate))
				}
				row.Estimate = est
			}

			// A named project anchors the task inside that project's block,
			// directly after the header; otherwise the task lands in the inbox
			// at the bottom.
			at := len(ses.Board.Rows)
			if project != "" {
				hi := findProjectHeader(ses.Board.Rows, project)
				if hi < 0 {
					return writeErr(cmd, errNotFound("project", project))
				}
				row.ParentGroupID = ses.Board.Rows[hi].GroupID
				at = endOfProjectBlock(ses.Board.Rows, hi)
			}
			ses.Apply(command.NewInsertRows(at, []model.Row{row}))
			ses.Flush()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"rowId": id, "taskName": args[0], "project": project},
			})
		},
	}
	cmd.Flags().StringVar(&project, "project", "", "Project name (header label)")
	cmd.Flags().StringVar(&subproject, "subproject", "", "Subproject name")
	cmd.Flags().StringVar(&estimate, "estimate", "", "Estimate label or alias (e.g. '1 Hour', '1h')")
	return cmd
}

func newTasksSetCmd(app *App) *cobra.Command {
	var name, project, subproject, recurring, estimate, status, timeValue string

	cmd := &cobra.Command{
		Use:   "set <row-id>",
		Short: "Edit a task's columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			rowID := args[0]
			if ses.Board.Row(rowID) == nil {
				return writeErr(cmd, errNotFound("row", rowID))
			}

			applied := []string{}
			if cmd.Flags().Changed("name") {
				ses.Apply(command.NewSetField(ses.Board, rowID, command.FieldTaskName, name))
				applied = append(applied, "name")
			}
			if cmd.Flags().Changed("project") {
				ses.Apply(command.NewSetField(ses.Board, rowID, command.FieldProject, project))
				applied = append(applied, "project")
			}
			if cmd.Flags().Changed("subproject") {
				ses.Apply(command.NewSetField(ses.Board, rowID, command.FieldSubproject, subproject))
				applied = append(applied, "subproject")
			}
			if cmd.Flags().Changed("recurring") {
				v := model.RecurringNo
				if b, err := strconv.ParseBool(recurring); err == nil && b {
					v = model.RecurringYes
				}
				ses.Apply(command.NewSetField(ses.Board, rowID, command.FieldRecurring, string(v)))
				applied = append(applied, "recurring")
			}
			if cmd.Flags().Changed("estimate") {
				aliases, err := store.LoadEstimateAliases()
				if err != nil {
					return writeErr(cmd, err)
				}
				est, ok := aliases.Resolve(estimate)
				if !ok {
					return writeErr(cmd, fmt.Errorf("unknown estimate %q", estimate))
				}
				ses.Apply(command.NewSetField(ses.Board, rowID, command.FieldEstimate, string(est)))
				applied = append(applied, "estimate")
			}
			if cmd.Flags().Changed("status") {
				st, ok := model.ParseStatus(status)
				if !ok {
					return writeErr(cmd, fmt.Errorf("unknown status %q", status))
				}
				ses.Apply(command.NewSetStatus(ses.Board, rowID, st))
				applied = append(applied, "status")
			}
			if cmd.Flags().Changed("time-value") {
				ses.Apply(command.NewSetTimeValue(ses.Board, rowID, timeValue))
				applied = append(applied, "time-value")
			}
			ses.Flush()

			if len(applied) == 0 {
				return writeErr(cmd, fmt.Errorf("nothing to set; pass at least one flag"))
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"rowId": rowID, "applied": applied, "row": ses.Board.Row(rowID)},
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().StringVar(&project, "project", "", "Project column")
	cmd.Flags().StringVar(&subproject, "subproject", "", "Subproject column")
	cmd.Flags().StringVar(&recurring, "recurring", "", "Recurring (true|false)")
	cmd.Flags().StringVar(&estimate, "estimate", "", "Estimate label or alias")
	cmd.Flags().StringVar(&status, "status", "", "Status (Done, Blocked, On Hold, Abandoned, ...)")
	cmd.Flags().StringVar(&timeValue, "time-value", "", "Time value (H.MM)")
	return cmd
}

func newTasksCellCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cell <row-id> <day> <value>",
		Short: "Write one day cell (H.MM, or '=' for the row's time value)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := strconv.Atoi(args[1])
			if err != nil || day < 0 {
				return writeErr(cmd, fmt.Errorf("bad day index %q", args[1]))
			}
			value := args[2]
			if value == "=" {
				value = model.UseTimeValue
			}

			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			if ses.Board.Row(args[0]) == nil {
				return writeErr(cmd, errNotFound("row", args[0]))
			}
			ses.Apply(command.NewSetCell(ses.Board, command.CellRef{RowID: args[0], Day: day}, value))
			ses.Flush()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"rowId": args[0], "day": day, "value": value},
			})
		},
	}
}

func newTasksClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear <row-id> <day>...",
		Short: "Blank one or more day cells",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var refs []command.CellRef
			for _, a := range args[1:] {
				day, err := strconv.Atoi(a)
				if err != nil || day < 0 {
					return writeErr(cmd, fmt.Errorf("bad day index %q", a))
				}
				refs = append(refs, command.CellRef{RowID: args[0], Day: day})
			}

			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			if ses.Board.Row(args[0]) == nil {
				return writeErr(cmd, errNotFound("row", args[0]))
			}
			ses.Apply(command.NewClearCells(ses.Board, refs))
			ses.Flush()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"rowId": args[0], "cleared": len(refs)},
			})
		},
	}
}

func newTasksRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <row-id>...",
		Short: "Delete rows",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ses, err := openSession(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer ses.Close()

			for _, id := range args {
				if ses.Board.Row(id) == nil {
					return writeErr(cmd, errNotFound("row", id))
				}
			}
			ses.Apply(command.NewDeleteRows(ses.Board, args))
			ses.Flush()

			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"deleted": args},
			})
		},
	}
}

// findProjectHeader matches a project header by label, case-insensitive.
func findProjectHeader(rows []model.Row, name string) int {
	for i := range rows {
		if rows[i].Kind == model.KindProjectHeader && strings.EqualFold(rows[i].Label, name) {
			return i
		}
	}
	return -1
}

// endOfProjectBlock returns the index just past the header's block: the header
// row, its structural sections, and every row referencing any of their groups.
func endOfProjectBlock(rows []model.Row, headerIdx int) int {
	groups := map[string]bool{rows[headerIdx].GroupID: true}
	i := headerIdx + 1
	for ; i < len(rows); i++ {
		r := &rows[i]
		if groups[r.ParentGroupID] {
			if r.IsStructural() && r.GroupID != "" {
				groups[r.GroupID] = true
			}
			continue
		}
		break
	}
	return i
}
