package main

import (
	"fmt"
	"time"

	"github.com/dori/trackboard/internal/transfer"
	"github.com/dori/trackboard/internal/view"
	"github.com/spf13/cobra"
)

func statsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show dashboard statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			// read-only: normalize copies, never write back
			dash := view.Dashboard(a.Repo.All(nil), view.ProjectFilter{})
			stats := dash.Stats

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Projects:     %d\n", stats.Total)
			fmt.Fprintf(out, "  Ongoing:    %d\n", stats.Ongoing)
			fmt.Fprintf(out, "  Completed:  %d\n", stats.Completed)
			fmt.Fprintf(out, "  Upcoming:   %d\n", stats.Upcoming)
			fmt.Fprintf(out, "Avg progress: %d%%\n", stats.AvgProgress)
			fmt.Fprintf(out, "Overdue:      %d\n", view.CountOverdue(dash.Projects, time.Now()))

			saved, ok, err := a.Store.LastSaved()
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "Last saved:   %s\n", saved.Local().Format("Jan 2, 2006 15:04"))
			}
			return nil
		},
	}
}

func exportCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write all projects to a .json or .xlsx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := transfer.FormatFor(args[0]); err != nil {
				return err
			}

			a, err := openApp(opts, true)
			if err != nil {
				return err
			}
			defer a.Close()

			projects := view.Dashboard(a.Repo.All(nil), view.ProjectFilter{}).Projects
			if err := transfer.Export(args[0], projects); err != nil {
				return err
			}

			a.Log.Info().Str("file", args[0]).Int("projects", len(projects)).Msg("exported projects")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d projects to %s\n", len(projects), args[0])
			return nil
		},
	}
}

func importCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Replace all projects with the contents of a JSON or JSON5 file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, report, err := transfer.Import(args[0])
			if err != nil {
				return err
			}

			a, err := openApp(opts, false)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.OutOrStdout()
			if !yes && a.Repo.Len() > 0 {
				prompt := fmt.Sprintf("Replace %d existing projects with %d from %s?", a.Repo.Len(), len(projects), args[0])
				ok, err := confirm(cmd, prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(out, "Cancelled")
					return nil
				}
			}

			if err := a.Repo.ReplaceAll(projects); err != nil {
				return err
			}

			a.Log.Info().
				Str("file", args[0]).
				Int("projects", len(projects)).
				Int("dropped_projects", report.DroppedProjects).
				Int("dropped_tasks", report.DroppedTasks).
				Msg("imported projects")

			fmt.Fprintf(out, "Imported %d projects\n", len(projects))
			if !report.Clean() {
				fmt.Fprintf(out, "Dropped %d projects and %d tasks, repaired %d entries\n",
					report.DroppedProjects, report.DroppedTasks, report.Repaired)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
