package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/secconsole/internal/logger"
	"github.com/mark3labs/secconsole/internal/nats"
	"github.com/mark3labs/secconsole/internal/session"
	"github.com/mark3labs/secconsole/internal/tui/onboard"
	"github.com/mark3labs/secconsole/internal/tui/theme"
	"github.com/spf13/cobra"
)

var onboardFlags struct {
	resume bool
	id     string
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Onboard a log source with the step-by-step wizard",
	Long: `Onboard a log source with the step-by-step wizard.

The wizard asks for a name and a source type, then shows a review before
writing <sources_dir>/<id>.yaml. When persist_drafts is enabled every change
is saved as a draft; --resume picks the wizard up where it was left.`,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().BoolVarP(&onboardFlags.resume, "resume", "r", false, "Resume from the stored draft")
	onboardCmd.Flags().StringVar(&onboardFlags.id, "id", "onboard", "Draft name, lets several onboardings run side by side")
}

func runOnboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	opts := onboard.Options{
		WizardID:     onboardFlags.id,
		Resume:       onboardFlags.resume,
		StrictBounds: cfg.StrictBounds,
		SourcesDir:   cfg.SourcesDir,
	}

	if cfg.PersistDrafts {
		emb, err := nats.Start(ctx, cfg.NATSDir())
		if err != nil {
			return fmt.Errorf("failed to start draft store: %w", err)
		}
		defer func() {
			if err := emb.Close(); err != nil {
				logger.Warn("Draft store shutdown: %v", err)
			}
		}()
		opts.Store = session.NewStore(emb.JetStream, emb.Stream)
	} else if onboardFlags.resume {
		return fmt.Errorf("--resume needs persist_drafts enabled")
	}

	res, err := onboard.Run(ctx, opts)
	if errors.Is(err, onboard.ErrCancelled) {
		if opts.Store != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "Onboarding cancelled. Run 'secconsole onboard --resume --id %s' to continue.\n", opts.WizardID)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "Onboarding cancelled.")
		}
		return nil
	}
	if err != nil {
		return err
	}

	s := theme.NewCatppuccinMocha().S()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", s.Success.Render("Log source created:"), res.Source.Name, res.Source.Kind)
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.Muted.Render("Written to"), res.Path)
	return nil
}
