package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fastygo/tasklist/domain"
	"github.com/fastygo/tasklist/internal/config"
	pgInfra "github.com/fastygo/tasklist/internal/infrastructure/postgres"
	taskUC "github.com/fastygo/tasklist/usecase/task"
)

type runFunc func(cmd *cobra.Command, args []string, rt *Runtime) error

// NewRootCommand assembles the tasks CLI. open is called once per command.
func NewRootCommand(open OpenFunc) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tasks",
		Short:        "Manage the personal task list",
		Long:         "tasks edits the same task list slot the HTTP server serves.",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		NewListCommand(open),
		NewAddCommand(open),
		NewToggleCommand(open),
		NewRemoveCommand(open),
		NewEditCommand(open),
		NewMoveCommand(open),
		NewStatsCommand(open),
		NewSnapshotCommand(open),
		NewRestoreCommand(open),
		NewMigrateCommand(),
	)
	return rootCmd
}

func withRuntime(open OpenFunc, run runFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		rt, err := open(ctx)
		if err != nil {
			return err
		}
		defer rt.Close()
		return run(cmd, args, rt)
	}
}

// NewListCommand prints the filtered view.
func NewListCommand(open OpenFunc) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			filterName, _ := cmd.Flags().GetString("filter")
			search, _ := cmd.Flags().GetString("search")

			tasks := rt.Tasks.FilteredView(domain.ParseFilter(filterName), search)
			printTasks(cmd.OutOrStdout(), tasks, rt.Tasks)
			return nil
		}),
	}
	listCmd.Flags().String("filter", "all", "all, pending, completed, overdue or a category name")
	listCmd.Flags().String("search", "", "case-insensitive text matched against title and description")
	return listCmd
}

// NewAddCommand creates a task at the top of the list.
func NewAddCommand(open OpenFunc) *cobra.Command {
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a task",
		Args:  cobra.NoArgs,
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			draft, err := draftFromFlags(cmd, domain.Draft{})
			if err != nil {
				return err
			}
			task, err := rt.Tasks.Add(cmd.Context(), draft)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", taskUC.NoticeAdded.Message, task.ID)
			return nil
		}),
	}
	addDraftFlags(addCmd)
	return addCmd
}

// NewToggleCommand flips the completion state of a task.
func NewToggleCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle ID",
		Short: "Mark a task done or reopen it",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			task, found, err := rt.Tasks.ToggleComplete(cmd.Context(), id)
			if err != nil {
				return err
			}
			if found {
				fmt.Fprintln(cmd.OutOrStdout(), taskUC.ToggleNotice(task.Completed).Message)
			}
			return nil
		}),
	}
}

// NewRemoveCommand deletes a task.
func NewRemoveCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			removed, err := rt.Tasks.Remove(cmd.Context(), id)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintln(cmd.OutOrStdout(), taskUC.NoticeDeleted.Message)
			}
			return nil
		}),
	}
}

// NewEditCommand rewrites the fields given as flags and keeps the rest.
func NewEditCommand(open OpenFunc) *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			current, found := rt.Tasks.Edit(id)
			if !found {
				return domain.ErrTaskNotFound
			}
			draft, err := draftFromFlags(cmd, current)
			if err != nil {
				return err
			}
			if _, _, err := rt.Tasks.Update(cmd.Context(), id, draft); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), taskUC.NoticeUpdated.Message)
			return nil
		}),
	}
	addDraftFlags(editCmd)
	return editCmd
}

// NewMoveCommand places DRAGGED where TARGET currently sits.
func NewMoveCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "mv DRAGGED TARGET",
		Short: "Move a task to another task's position",
		Args:  cobra.ExactArgs(2),
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			dragged, err := parseID(args[0])
			if err != nil {
				return err
			}
			target, err := parseID(args[1])
			if err != nil {
				return err
			}
			moved, err := rt.Tasks.Reorder(cmd.Context(), dragged, target)
			if err != nil {
				return err
			}
			if moved {
				fmt.Fprintln(cmd.OutOrStdout(), taskUC.NoticeReordered.Message)
			}
			return nil
		}),
	}
}

// NewStatsCommand prints the counters.
func NewStatsCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show task counts",
		Args:  cobra.NoArgs,
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			s := rt.Tasks.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "total %d  completed %d  pending %d  overdue %d\n",
				s.Total, s.Completed, s.Pending, s.Overdue)
			return nil
		}),
	}
}

// NewSnapshotCommand captures a backup of the slot right now.
func NewSnapshotCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Back up the task list",
		Args:  cobra.NoArgs,
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			snapshotter, err := rt.Snapshotter()
			if err != nil {
				return err
			}
			snap, err := snapshotter.Capture(cmd.Context())
			if err != nil {
				return err
			}
			if snap.ID == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to back up")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "snapshot %s: %d tasks\n", snap.ID, snap.TaskCount)
			return nil
		}),
	}
}

// NewRestoreCommand writes the newest snapshot back into the slot.
func NewRestoreCommand(open OpenFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "restore",
		Short: "Restore the newest backup",
		Args:  cobra.NoArgs,
		RunE: withRuntime(open, func(cmd *cobra.Command, args []string, rt *Runtime) error {
			snapshotter, err := rt.Snapshotter()
			if err != nil {
				return err
			}
			snap, err := snapshotter.Restore(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "restored snapshot %s from %s (%d tasks)\n",
				snap.ID, snap.Timestamp.Format("2006-01-02 15:04:05"), snap.TaskCount)
			return nil
		}),
	}
}

// NewMigrateCommand manages the postgres schema used by the postgres backend.
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all up migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			mig := cfg.Migrations
			mig.Enabled = true
			if err := pgInfra.RunMigrations(cfg.Database, mig, nil); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			version, dirty, err := pgInfra.MigrationVersion(cfg.Database, cfg.Migrations)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version %d (dirty: %t)\n", version, dirty)
			return nil
		},
	})

	return migrateCmd
}

func addDraftFlags(cmd *cobra.Command) {
	cmd.Flags().String("title", "", "task title")
	cmd.Flags().String("description", "", "longer description")
	cmd.Flags().String("priority", "", "low, medium or high")
	cmd.Flags().String("category", "", "free-form category")
	cmd.Flags().String("due", "", "due date, e.g. 2025-07-15T09:00")
}

// draftFromFlags overlays the flags the user actually set onto base.
func draftFromFlags(cmd *cobra.Command, base domain.Draft) (domain.Draft, error) {
	fields := []struct {
		flag string
		dst  *string
	}{
		{"title", &base.Title},
		{"description", &base.Description},
		{"category", &base.Category},
		{"due", &base.DueDate},
	}
	for _, f := range fields {
		if cmd.Flags().Changed(f.flag) {
			*f.dst, _ = cmd.Flags().GetString(f.flag)
		}
	}
	if cmd.Flags().Changed("priority") {
		raw, _ := cmd.Flags().GetString("priority")
		priority, err := domain.ParsePriority(raw)
		if err != nil {
			return base, err
		}
		base.Priority = priority
	}
	return base, nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, domain.NewError(domain.ErrCodeInvalid, fmt.Sprintf("invalid task id %q", raw))
	}
	return id, nil
}

func printTasks(out io.Writer, tasks []domain.Task, uc *taskUC.UseCase) {
	if len(tasks) == 0 {
		fmt.Fprintln(out, "no tasks")
		return
	}
	now := uc.Now()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDONE\tTITLE\tPRIORITY\tCATEGORY\tDUE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		due := t.DueDate
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", t.ID, done, t.Title, t.Priority, t.Category, due)
	}
	_ = w.Flush()
}
