package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/quickadd"
	"github.com/dori/trackboard/internal/repo"
	"github.com/dori/trackboard/internal/view"
	"github.com/spf13/cobra"
)

func taskCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage a project's tasks",
	}

	cmd.AddCommand(taskAddCmd(opts))
	cmd.AddCommand(taskEditCmd(opts))
	cmd.AddCommand(taskListCmd(opts))
	cmd.AddCommand(taskDoneCmd(opts))
	cmd.AddCommand(taskRmCmd(opts))

	return cmd
}

func taskAddCmd(opts *globalOptions) *cobra.Command {
	var (
		notes string
		done  bool
	)

	cmd := &cobra.Command{
		Use:   "add PROJECT TEXT...",
		Short: "Add a task using quick-add syntax",
		Long: `Add a task using quick-add syntax.

  trackboard task add Launch "Write release notes !high due:friday @Jane_Doe email:jane@example.com"

  Priority:  !low !medium !high
  Due date:  due:today due:tomorrow due:friday due:2024-01-15
  Assignee:  @name (underscores become spaces), email:<address>`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := quickadd.Parse(strings.Join(args[1:], " "), time.Now())
			draft.Notes = notes
			draft.Done = done

			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}

			task, err := a.Repo.AddTask(p.ID, draft)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created: %s\n", task.Title)
			if task.DueDate != "" {
				fmt.Fprintf(out, "Due: %s\n", view.FormatDate(task.DueDate))
			}
			if task.Priority != model.PriorityMedium {
				fmt.Fprintf(out, "Priority: %s\n", task.Priority)
			}
			if task.HasAssignee() {
				fmt.Fprintf(out, "Assignee: %s\n", view.AssigneeLabel(task))
			}
			return printProgress(cmd, a.Repo, p.ID)
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Task notes")
	cmd.Flags().BoolVar(&done, "done", false, "Create the task already done")

	return cmd
}

func taskEditCmd(opts *globalOptions) *cobra.Command {
	var (
		title    string
		notes    string
		priority string
		due      string
		assignee string
		email    string
		done     bool
	)

	cmd := &cobra.Command{
		Use:   "edit PROJECT INDEX",
		Short: "Change a task's fields; unset flags keep their value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}
			if index >= len(p.Tasks) {
				return fmt.Errorf("project %q has %d tasks", p.Name, len(p.Tasks))
			}

			draft := model.TaskDraftFrom(p.Tasks[index])
			changed := cmd.Flags().Changed
			if changed("title") {
				draft.Title = title
			}
			if changed("notes") {
				draft.Notes = notes
			}
			if changed("priority") {
				parsed, ok := quickadd.ParsePriority(priority)
				if !ok {
					return fmt.Errorf("unknown priority %q", priority)
				}
				draft.Priority = parsed
			}
			if changed("due") {
				draft.DueDate = cliDate(due, time.Now())
			}
			if changed("assignee") {
				draft.Assignee = assignee
			}
			if changed("email") {
				draft.AssigneeEmail = email
			}
			if changed("done") {
				draft.Done = done
			}

			task, err := a.Repo.UpdateTask(p.ID, index, draft)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s\n", task.Title)
			return printProgress(cmd, a.Repo, p.ID)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&notes, "notes", "", "Notes")
	cmd.Flags().StringVar(&priority, "priority", "", "Priority (low, medium, high)")
	cmd.Flags().StringVar(&due, "due", "", "Due date, empty to clear")
	cmd.Flags().StringVar(&assignee, "assignee", "", "Assignee name")
	cmd.Flags().StringVar(&email, "email", "", "Assignee email")
	cmd.Flags().BoolVar(&done, "done", false, "Done state")

	return cmd
}

func taskListCmd(opts *globalOptions) *cobra.Command {
	var (
		status string
		mine   bool
		search string
	)

	cmd := &cobra.Command{
		Use:     "list PROJECT",
		Aliases: []string{"ls"},
		Short:   "List a project's tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			filter := view.DefaultTaskFilter(a.Config.UserEmail)
			switch view.TaskStatusFilter(status) {
			case view.TaskStatusAll, view.TaskStatusOpen, view.TaskStatusDone:
				filter.Status = view.TaskStatusFilter(status)
			default:
				return fmt.Errorf("unknown status %q (all, open, done)", status)
			}
			if mine {
				filter.Assignee = view.AssigneeMe
			}
			filter.Search = search

			p, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}

			page := view.TaskPage(p, filter)
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s (%s)\n", page.ProjectName, page.ProjectStatus.Label())
			fmt.Fprintf(out, "%d%% complete, %d of %d tasks done\n\n", page.Stats.Percent, page.Stats.Completed, page.Stats.Total)

			if page.Empty != "" {
				fmt.Fprintln(out, page.Empty)
				return nil
			}

			for _, row := range page.Rows {
				check := "[ ]"
				if row.Done {
					check = "[x]"
				}
				due := row.DueLabel
				if row.Overdue {
					due += " (overdue)"
				}
				fmt.Fprintf(out, "%3d. %s %s\n", row.Index+1, check, row.Title)
				fmt.Fprintf(out, "       %s · %s · %s\n", row.PriorityLabel, row.StatusLabel, due)
				if row.AssigneeLabel != "" {
					fmt.Fprintf(out, "       %s\n", row.AssigneeLabel)
				}
				if row.Notes != "" {
					fmt.Fprintf(out, "       %s\n", row.Notes)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "all", "all, open or done")
	cmd.Flags().BoolVar(&mine, "mine", false, "Only tasks assigned to user_email")
	cmd.Flags().StringVar(&search, "search", "", "Match title, notes, assignee or email")

	return cmd
}

func taskDoneCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done PROJECT INDEX",
		Short: "Toggle a task between open and done",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}

			task, err := a.Repo.ToggleTaskDone(p.ID, index)
			if err != nil {
				return err
			}

			if task.Done {
				fmt.Fprintf(cmd.OutOrStdout(), "Done: %s\n", task.Title)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Reopened: %s\n", task.Title)
			}
			return printProgress(cmd, a.Repo, p.ID)
		},
	}
}

func taskRmCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm PROJECT INDEX",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := parseIndex(args[1])
			if err != nil {
				return err
			}

			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}

			action, err := a.Repo.RequestDeleteTask(p.ID, index)
			if err != nil {
				return err
			}

			ok := yes
			if !ok {
				if ok, err = confirm(cmd, action.Prompt); err != nil {
					return err
				}
			}
			if !ok {
				action.Cancel()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}

			if err := action.Confirm(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Task deleted")
			return printProgress(cmd, a.Repo, p.ID)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// printProgress reports the project's state after a task mutation
func printProgress(cmd *cobra.Command, r *repo.Repository, projectID string) error {
	p, ok := r.FindByID(projectID)
	if !ok {
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d%% (%s)\n", p.Name, p.Progress, p.Status.Label())
	return nil
}
