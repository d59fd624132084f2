package main

import (
	"fmt"
	"time"

	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/quickadd"
	"github.com/dori/trackboard/internal/view"
	"github.com/spf13/cobra"
)

func projectCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(projectAddCmd(opts))
	cmd.AddCommand(projectEditCmd(opts))
	cmd.AddCommand(projectListCmd(opts))
	cmd.AddCommand(projectRmCmd(opts))

	return cmd
}

type projectFlags struct {
	name        string
	description string
	start       string
	end         string
	status      string
	progress    int
}

func (f *projectFlags) register(cmd *cobra.Command, withName bool) {
	if withName {
		cmd.Flags().StringVar(&f.name, "name", "", "Project name")
	}
	cmd.Flags().StringVar(&f.description, "desc", "", "Description")
	cmd.Flags().StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD, today, friday, ...)")
	cmd.Flags().StringVar(&f.end, "end", "", "End date (YYYY-MM-DD, today, friday, ...)")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (ongoing, completed, upcoming)")
	cmd.Flags().IntVar(&f.progress, "progress", 0, "Manual progress 0-100, used while the project has no tasks")
}

// apply copies the flags the user set onto d
func (f *projectFlags) apply(cmd *cobra.Command, d model.ProjectDraft, now time.Time) model.ProjectDraft {
	changed := cmd.Flags().Changed
	if changed("name") {
		d.Name = f.name
	}
	if changed("desc") {
		d.Description = f.description
	}
	if changed("start") {
		d.StartDate = cliDate(f.start, now)
	}
	if changed("end") {
		d.EndDate = cliDate(f.end, now)
	}
	if changed("status") {
		d.Status = model.Status(f.status)
	}
	if changed("progress") {
		d.Progress = f.progress
	}
	return d
}

// cliDate resolves natural dates and leaves anything else for validation to reject
func cliDate(s string, now time.Time) string {
	if date, ok := quickadd.ParseDate(s, now); ok {
		return date
	}
	return s
}

func projectAddCmd(opts *globalOptions) *cobra.Command {
	flags := &projectFlags{}

	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			draft := flags.apply(cmd, model.ProjectDraft{Name: args[0]}, time.Now())
			p, err := a.Repo.CreateProject(draft)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created: %s\n", p.Name)
			fmt.Fprintf(out, "ID: %s\n", p.ID)
			fmt.Fprintf(out, "Status: %s (%d%%)\n", p.Status.Label(), p.Progress)
			return nil
		},
	}
	flags.register(cmd, false)

	return cmd
}

func projectEditCmd(opts *globalOptions) *cobra.Command {
	flags := &projectFlags{}

	cmd := &cobra.Command{
		Use:   "edit PROJECT",
		Short: "Change a project's fields; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			current, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}

			draft := flags.apply(cmd, model.ProjectDraftFrom(current), time.Now())
			p, err := a.Repo.UpdateProject(current.ID, draft)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Saved: %s (%s, %d%%)\n", p.Name, p.Status.Label(), p.Progress)
			return nil
		},
	}
	flags.register(cmd, true)

	return cmd
}

func projectListCmd(opts *globalOptions) *cobra.Command {
	var (
		status string
		search string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List projects",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := view.ProjectFilter{Status: model.Status(status)}
			if status != "" && !filter.Status.IsValid() {
				return fmt.Errorf("unknown status %q", status)
			}

			a, err := openApp(opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			projects := a.Repo.All(nil)
			matched := projects[:0]
			for _, p := range projects {
				if p.Matches(search) {
					matched = append(matched, p)
				}
			}

			dash := view.Dashboard(matched, filter)
			out := cmd.OutOrStdout()
			if dash.Empty != "" {
				fmt.Fprintln(out, dash.Empty)
				return nil
			}

			for _, card := range dash.Cards {
				fmt.Fprintf(out, "%-36s  %-10s %3d%%  %s\n", card.ID, card.StatusLabel, card.Progress, card.Name)
				if card.HasTimeline {
					fmt.Fprintf(out, "%38s%s → %s\n", "", card.Start, card.End)
				}
				if card.TaskTotal > 0 {
					fmt.Fprintf(out, "%38s%d/%d tasks done\n", "", card.TaskDone, card.TaskTotal)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only show ongoing, completed or upcoming projects")
	cmd.Flags().StringVar(&search, "search", "", "Filter by name or description")

	return cmd
}

func projectRmCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm PROJECT",
		Aliases: []string{"delete"},
		Short:   "Delete a project and all its tasks",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			p, err := resolveProject(a.Repo, args[0])
			if err != nil {
				return err
			}

			action, err := a.Repo.RequestDeleteProject(p.ID)
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
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted: %s\n", p.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
