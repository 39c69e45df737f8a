package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/secconsole/internal/config"
	"github.com/mark3labs/secconsole/internal/logger"
	"github.com/mark3labs/secconsole/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█▀▀ █▀▀ █▀▀ █▀▀ █▀█ █▄ █ █▀▀ █▀█ █   █▀▀"
	logoText2 = "▄▄█ ██▄ █▄▄ █▄▄ █▄█ █ ▀█ ▄▄█ █▄█ █▄▄ ██▄"
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootFlags struct {
	dataDir  string
	logLevel string
}

func main() {
	// Ensure logger is closed on exit
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "secconsole",
	Short:             "Security console for onboarding log sources",
	PersistentPreRunE: loadConfig,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.NewCatppuccinMocha()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Secondary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Secondary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

secconsole onboards log sources through a step-by-step terminal wizard and
keeps per-page filter state in query strings that survive between runs.
Wizard drafts are stored in an embedded NATS JetStream server so an
interrupted onboarding can be resumed.`

	rootCmd.PersistentFlags().StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory for UI state and drafts (overrides config)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves configuration with flags taking precedence over
// env, files and defaults, then configures logging.
func loadConfig(cmd *cobra.Command, args []string) error {
	c, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("data-dir") {
		c.DataDir = rootFlags.dataDir
	}
	if cmd.Flags().Changed("log-level") {
		c.LogLevel = rootFlags.logLevel
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(c.LogLevel, c.LogFile); err != nil {
		return fmt.Errorf("failed to configure logger: %w", err)
	}

	logger.Debug("Config loaded: data_dir=%s sources_dir=%s", c.DataDir, c.SourcesDir)
	cfg = c
	return nil
}
