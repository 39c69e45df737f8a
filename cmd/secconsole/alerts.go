package main

import (
	"fmt"
	"strings"

	"github.com/mark3labs/secconsole/internal/state"
	"github.com/mark3labs/secconsole/internal/urlparams"
	"github.com/spf13/cobra"
)

const alertsPage = "alerts"

// alertFilters is the typed view of the alerts page query string.
type alertFilters struct {
	Query    string   `query:"q" json:"q"`
	Page     int      `query:"page" json:"page"`
	Severity []string `query:"severity" json:"severity"`
	Resolved bool     `query:"resolved" json:"resolved"`
}

// alertFiltersPatch holds the filters named on the command line. Nil fields
// are left alone; a set pointer to an empty value clears the param.
type alertFiltersPatch struct {
	Query    *string   `query:"q,omitempty"`
	Page     *int      `query:"page,omitempty"`
	Severity *[]string `query:"severity,omitempty"`
	Resolved *bool     `query:"resolved,omitempty"`
}

func (p alertFiltersPatch) empty() bool {
	return p.Query == nil && p.Page == nil && p.Severity == nil && p.Resolved == nil
}

var alertsFlags struct {
	query      string
	resultPage int
	severity   []string
	resolved   bool
}

var paramsAlertsCmd = &cobra.Command{
	Use:   "alerts",
	Short: "Show or change the alerts page filters",
	Long: `Show or change the alerts page filters.

Without flags the stored filters are printed. Flags given update only the
filters they name; an empty value ("--q=" or "--severity=") clears one.`,
	Example: `  secconsole params alerts
  secconsole params alerts --severity HIGH,CRITICAL --result-page 1
  secconsole params alerts --q= --resolved=false`,
	Args: cobra.NoArgs,
	RunE: runParamsAlerts,
}

func init() {
	addAlertsFlags(paramsAlertsCmd)
}

func addAlertsFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&alertsFlags.query, "q", "", "Free text search")
	f.IntVar(&alertsFlags.resultPage, "result-page", 0, "Result page number")
	f.StringSliceVar(&alertsFlags.severity, "severity", nil, "Severities to show")
	f.BoolVar(&alertsFlags.resolved, "resolved", false, "Show resolved alerts")
}

// patchFromFlags builds a patch from the flags the user actually set.
func patchFromFlags(cmd *cobra.Command) alertFiltersPatch {
	var p alertFiltersPatch
	flags := cmd.Flags()
	if flags.Changed("q") {
		p.Query = &alertsFlags.query
	}
	if flags.Changed("result-page") {
		p.Page = &alertsFlags.resultPage
	}
	if flags.Changed("severity") {
		sev := make([]string, 0, len(alertsFlags.severity))
		for _, s := range alertsFlags.severity {
			if s = strings.ToUpper(strings.TrimSpace(s)); s != "" {
				sev = append(sev, s)
			}
		}
		p.Severity = &sev
	}
	if flags.Changed("resolved") {
		p.Resolved = &alertsFlags.resolved
	}
	return p
}

func runParamsAlerts(cmd *cobra.Command, args []string) error {
	loc := pageLocation(cfg.StateDir(), alertsPage)
	filters, err := applyAlertFilters(loc, patchFromFlags(cmd))
	if err != nil {
		return err
	}
	return printParams(cmd.OutOrStdout(), filters)
}

// applyAlertFilters applies patch to the alerts location and returns the
// filters it now holds. An empty patch only reads.
func applyAlertFilters(loc *state.FileLocation, patch alertFiltersPatch) (alertFilters, error) {
	typed := urlparams.NewTyped[alertFilters](loc)
	defer typed.Close()

	if !patch.empty() {
		if err := typed.UpdateFrom(patch); err != nil {
			return alertFilters{}, err
		}
		if err := loc.Err(); err != nil {
			return alertFilters{}, fmt.Errorf("failed to save location: %w", err)
		}
	}

	filters, err := typed.Value()
	if err != nil {
		return alertFilters{}, fmt.Errorf("alerts filters: %w", err)
	}
	return filters, nil
}
