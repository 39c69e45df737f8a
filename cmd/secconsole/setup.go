package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/secconsole/internal/config"
	"github.com/mark3labs/secconsole/internal/tui/theme"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create secconsole configuration file",
	Long: `Create a secconsole configuration file with sensible defaults.

By default, creates a global config at ~/.config/secconsole/secconsole.yml.
Use --project to create a project-local config in the current directory.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVarP(&setupFlags.force, "force", "f", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	var err error
	if setupFlags.project {
		err = config.WriteProject(config.Default())
	} else {
		err = config.WriteGlobal(config.Default())
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	s := theme.NewCatppuccinMocha().S()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n\n", s.Success.Render("Config written to:"), targetPath)
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'secconsole onboard' to add your first log source.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
