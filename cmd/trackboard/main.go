package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dori/trackboard/internal/app"
	"github.com/dori/trackboard/internal/config"
	"github.com/dori/trackboard/internal/model"
	"github.com/dori/trackboard/internal/repo"
	"github.com/dori/trackboard/internal/ui"
	"github.com/dori/trackboard/internal/ui/theme"
	"github.com/spf13/cobra"
)

var (
	version = "0.1.0"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// globalOptions are the flags shared by every command
type globalOptions struct {
	dataDir string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	var (
		viewName  string
		projectID string
		themeName string
	)

	root := &cobra.Command{
		Use:   "trackboard",
		Short: "trackboard - projects and tasks in the terminal",
		Long: `trackboard keeps projects and their tasks in one local collection.

Run without a command to start the TUI.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(opts, viewName, projectID, themeName)
		},
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "Directory holding the database (overrides config)")
	root.Flags().StringVar(&viewName, "view", "", "Starting view (dashboard, projects, tasks)")
	root.Flags().StringVar(&projectID, "project", "", "Project to open in the tasks view (id or name)")
	root.Flags().StringVar(&themeName, "theme", "", "Theme name (nord, dracula, gruvbox, catppuccin)")

	root.AddCommand(projectCmd(opts))
	root.AddCommand(taskCmd(opts))
	root.AddCommand(statsCmd(opts))
	root.AddCommand(exportCmd(opts))
	root.AddCommand(importCmd(opts))
	root.AddCommand(initConfigCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "trackboard v%s\n", version)
		},
	})

	return root
}

func initConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init-config [path]",
		Short: "Write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.GlobalConfigPath()
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return fmt.Errorf("failed to create config directory: %w", err)
			}
			if err := config.WriteDefault(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
}

func loadConfig(opts *globalOptions) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if opts.dataDir != "" {
		cfg.DataDir = opts.dataDir
	}
	return cfg, nil
}

// openApp opens the collection. Commands that only read skip the
// single-instance lock so they work while the TUI is running.
func openApp(opts *globalOptions, readOnly bool) (*app.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	var appOpts []app.Option
	if readOnly {
		appOpts = append(appOpts, app.ReadOnly())
	}
	return app.New(cfg, appOpts...)
}

func runTUI(opts *globalOptions, viewName, projectRef, themeName string) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	if themeName == "" {
		themeName = cfg.Theme
	}
	t, ok := theme.ByName(themeName)
	if !ok {
		return fmt.Errorf("unknown theme %q", themeName)
	}
	theme.SetTheme(t)

	if viewName == "" {
		viewName = cfg.StartView
	}
	start, ok := ui.ParseView(viewName)
	if !ok {
		return fmt.Errorf("unknown view %q", viewName)
	}

	application, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer application.Close()

	projectID := ""
	if projectRef != "" {
		p, err := resolveProject(application.Repo, projectRef)
		if err != nil {
			return err
		}
		projectID = p.ID
		start = ui.ViewTasks
	}

	p := tea.NewProgram(
		ui.NewRootModel(application, start, projectID),
		tea.WithAltScreen(),
	)

	_, err = p.Run()
	return err
}

// resolveProject finds a project by id, then by case-insensitive name
func resolveProject(r *repo.Repository, ref string) (model.Project, error) {
	if p, ok := r.FindByID(ref); ok {
		return p, nil
	}

	matches := r.All(func(p model.Project) bool {
		return strings.EqualFold(p.Name, strings.TrimSpace(ref))
	})
	switch len(matches) {
	case 0:
		return model.Project{}, fmt.Errorf("project %s %w", ref, repo.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return model.Project{}, fmt.Errorf("%d projects are named %q, use the id", len(matches), ref)
	}
}

// parseIndex turns a 1-based INDEX argument into a task position
func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid task index %q (use the number shown by task list)", s)
	}
	return n - 1, nil
}

// confirm asks a y/N question on the command's input
func confirm(cmd *cobra.Command, prompt string) (bool, error) {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)

	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
