package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/charmbracelet/colorprofile"
	"github.com/mark3labs/secconsole/internal/state"
	"github.com/mark3labs/secconsole/internal/tui/theme"
	"github.com/mark3labs/secconsole/internal/urlparams"
	"github.com/spf13/cobra"
)

var paramsFlags struct {
	page  string
	plain bool
}

var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Inspect and edit the stored query params of a console page",
	Long: `Inspect and edit the stored query params of a console page.

Each page keeps its last location, query string included, in the UI state
file under the data directory. These commands read and update that query
string the same way the page itself does.`,
}

var paramsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the params of a page as JSON",
	Args:  cobra.NoArgs,
	RunE:  runParamsGet,
}

var paramsSetCmd = &cobra.Command{
	Use:   "set key=value...",
	Short: "Update params of a page",
	Long: `Update params of a page.

Values are typed the way the query string is: integers, decimals and
true/false decode to numbers and booleans. "key=" clears a param and
repeating "key[]=value" builds an array. Params not named keep their value.`,
	Example: `  secconsole params set --page alerts page=2 q=
  secconsole params set --page alerts 'tags[]=auth' 'tags[]=iam' active=false`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParamsSet,
}

var paramsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the stored location of a page",
	Args:  cobra.NoArgs,
	RunE:  runParamsReset,
}

var paramsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pages with a stored location",
	Args:  cobra.NoArgs,
	RunE:  runParamsList,
}

func init() {
	paramsCmd.PersistentFlags().StringVar(&paramsFlags.page, "page", "alerts", "Console page name")
	paramsCmd.PersistentFlags().BoolVar(&paramsFlags.plain, "plain", false, "Disable JSON highlighting")

	paramsCmd.AddCommand(paramsGetCmd)
	paramsCmd.AddCommand(paramsSetCmd)
	paramsCmd.AddCommand(paramsResetCmd)
	paramsCmd.AddCommand(paramsListCmd)
	paramsCmd.AddCommand(paramsAlertsCmd)
}

// pageLocation returns the stored location of page, "/<page>" when unset.
func pageLocation(dataDir, page string) *state.FileLocation {
	return state.NewFileLocation(dataDir, page, "/"+strings.Trim(page, "/"))
}

func runParamsGet(cmd *cobra.Command, args []string) error {
	loc := pageLocation(cfg.StateDir(), paramsFlags.page)
	ps := urlparams.New(loc)
	defer ps.Close()

	return printParams(cmd.OutOrStdout(), ps.Params())
}

func runParamsSet(cmd *cobra.Command, args []string) error {
	loc := pageLocation(cfg.StateDir(), paramsFlags.page)
	params, err := applyAssignments(loc, args)
	if err != nil {
		return err
	}

	s := theme.NewCatppuccinMocha().S()
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.Key.Render("location:"), loc.Current())
	return printParams(cmd.OutOrStdout(), params)
}

func runParamsReset(cmd *cobra.Command, args []string) error {
	loc := pageLocation(cfg.StateDir(), paramsFlags.page)
	if err := loc.Clear(); err != nil {
		return fmt.Errorf("failed to reset %s: %w", paramsFlags.page, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Params of %s cleared\n", paramsFlags.page)
	return nil
}

func runParamsList(cmd *cobra.Command, args []string) error {
	st := state.Load(cfg.StateDir())
	pages := st.Pages()
	if len(pages) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No stored locations")
		return nil
	}

	s := theme.NewCatppuccinMocha().S()
	for _, page := range pages {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", s.Key.Render(page+":"), st.Locations[page])
	}
	return nil
}

// applyAssignments parses key=value arguments, merges them into the query
// string of loc and returns the resulting params.
func applyAssignments(loc *state.FileLocation, args []string) (urlparams.Params, error) {
	partial, err := parseAssignments(args)
	if err != nil {
		return nil, err
	}

	ps := urlparams.New(loc)
	defer ps.Close()

	ps.Update(partial)
	if err := loc.Err(); err != nil {
		return nil, fmt.Errorf("failed to save location: %w", err)
	}
	return ps.Params(), nil
}

// parseAssignments turns key=value arguments into params using the query
// string rules, so "n=2" is an int and "tags[]=a" an array.
func parseAssignments(args []string) (urlparams.Params, error) {
	segments := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || strings.TrimSuffix(key, "[]") == "" {
			return nil, fmt.Errorf("invalid assignment %q, expected key=value", arg)
		}
		segments = append(segments, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return urlparams.Parse(strings.Join(segments, "&")), nil
}

// printParams writes params, or a typed view of them, as indented JSON,
// highlighted when w is a color terminal.
func printParams(w io.Writer, params any) error {
	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode params: %w", err)
	}

	out := string(data)
	if !paramsFlags.plain {
		out = highlightJSON(out, colorprofile.Detect(w, os.Environ()))
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
