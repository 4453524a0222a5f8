package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"macroemu/internal/config"
	"macroemu/internal/diagfmt"
	"macroemu/internal/driver"
	"macroemu/internal/invocation"
	"macroemu/internal/pipeline"
	"macroemu/internal/ui"
)

var scanCmd = &cobra.Command{
	Use:   "scan [flags] [path...]",
	Short: "List macro invocation sites and their reconstructed inputs",
	Long: `Scan finds the invocation sites of the given macros in fixture files and
prints each site with the tokens the macro would receive. Paths may be files
or directories; without paths the fixture root of macroemu.toml is scanned.
Macros come from --macro or from the [[macro]] entries of macroemu.toml.`,
	RunE: runScan,
}

func init() {
	f := scanCmd.Flags()
	f.StringSlice("macro", nil, "macro name to look for (repeatable); overrides macroemu.toml")
	f.String("shape", "function", "shape of --macro (function|attribute|derive)")
	f.StringSlice("helpers", nil, "helper attributes of a derive --macro")
	f.String("format", "pretty", "output format (pretty|json)")
	f.String("ui", "auto", "progress view on stderr (auto|on|off)")
	f.String("config", "", "path to macroemu.toml (default: search upwards)")
	f.Bool("cache", false, "reuse site lists cached by file content")
	f.String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/macroemu)")
	f.Int("jobs", 0, "files scanned in parallel (0 = GOMAXPROCS)")
}

var errNoMacros = errors.New("no macros to scan for: pass --macro or run `macroemu init`")

type scanPlan struct {
	base  string
	files []string
	sel   driver.Selector
	opts  driver.Options
}

func runScan(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	plan, err := planScan(cmd, args)
	if err != nil {
		return err
	}

	var scans []*driver.FileScan
	if format == "pretty" && !quiet(cmd) && len(plan.files) > 1 && shouldUseTUI(mode) {
		scans, err = scanWithUI(cmd.Context(), plan)
	} else {
		scans, err = driver.ScanPaths(cmd.Context(), plan.base, plan.files, plan.sel, plan.opts)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	jsonOpts := diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true, BaseDir: plan.base}
	if format == "json" {
		if err := diagfmt.FormatSitesJSON(out, scans, jsonOpts); err != nil {
			return err
		}
	} else {
		diagnostics := prettyOpts(cmd)
		diagnostics.Color = useColor(cmd, os.Stdout)
		diagfmt.FormatSitesPretty(out, scans, diagfmt.SitesOpts{
			Color:       useColor(cmd, os.Stdout),
			Quiet:       quiet(cmd),
			Diagnostics: diagnostics,
		})
	}
	printTimings(cmd, plan.opts)

	failed := 0
	for _, s := range scans {
		if s.Failed() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be scanned", failed, len(scans))
	}
	return nil
}

// planScan resolves macros, files and options from flags and the manifest.
func planScan(cmd *cobra.Command, args []string) (*scanPlan, error) {
	flags := cmd.Flags()
	macros, err := flags.GetStringSlice("macro")
	if err != nil {
		return nil, fmt.Errorf("failed to get macro flag: %w", err)
	}
	opts, err := driverOptions(cmd)
	if err != nil {
		return nil, err
	}
	plan := &scanPlan{opts: opts}

	var manifest *config.Manifest
	if len(macros) > 0 {
		if plan.sel, err = flagSelector(cmd, macros); err != nil {
			return nil, err
		}
	} else {
		if manifest, err = loadManifest(cmd); err != nil {
			return nil, err
		}
		if manifest == nil {
			return nil, errNoMacros
		}
		if plan.sel, err = manifestSelector(manifest); err != nil {
			return nil, err
		}
		plan.base = displayDir(manifest.RootDir())
		plan.opts.Extensions = manifest.Scan.Extensions
		plan.opts.Jobs = manifest.Scan.Jobs
	}

	if flags.Changed("jobs") {
		if plan.opts.Jobs, err = flags.GetInt("jobs"); err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
	}
	if err := openCache(cmd, manifest, &plan.opts); err != nil {
		return nil, err
	}

	if len(args) == 0 {
		if manifest == nil {
			return nil, errors.New("no paths given")
		}
		args = []string{plan.base}
	}
	for _, arg := range args {
		if filepath.IsAbs(plan.base) {
			if abs, err := filepath.Abs(arg); err == nil {
				arg = abs
			}
		}
		st, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			plan.files = append(plan.files, filepath.Clean(arg))
			continue
		}
		if plan.base == "" && len(args) == 1 {
			plan.base = arg
		}
		fixtures, err := driver.ListFixtures(arg, plan.opts.Extensions)
		if err != nil {
			return nil, err
		}
		plan.files = append(plan.files, fixtures...)
	}
	return plan, nil
}

// displayDir returns dir relative to the working directory when it lies
// below it, so printed fixture paths stay short.
func displayDir(dir string) string {
	wd, err := os.Getwd()
	if err != nil {
		return dir
	}
	rel, err := filepath.Rel(wd, dir)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return dir
	}
	return rel
}

func loadManifest(cmd *cobra.Command) (*config.Manifest, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if path != "" {
		return config.Load(path)
	}
	m, ok, err := config.Discover(".")
	if err != nil || !ok {
		return nil, err
	}
	return m, nil
}

// flagSelector builds requests for --macro, --shape and --helpers. The
// entries go through the same validation as manifest entries.
func flagSelector(cmd *cobra.Command, macros []string) (driver.Selector, error) {
	shape, err := cmd.Flags().GetString("shape")
	if err != nil {
		return nil, fmt.Errorf("failed to get shape flag: %w", err)
	}
	helpers, err := cmd.Flags().GetStringSlice("helpers")
	if err != nil {
		return nil, fmt.Errorf("failed to get helpers flag: %w", err)
	}
	reqs := make([]invocation.Request, 0, len(macros))
	for _, name := range macros {
		req, err := config.Macro{Name: name, Shape: shape, Helpers: helpers}.Request()
		if err != nil {
			return nil, fmt.Errorf("--macro %s: %w", name, err)
		}
		reqs = append(reqs, req)
	}
	return driver.Static(reqs...), nil
}

// manifestSelector picks, per file, the [[macro]] entries whose files
// patterns match it.
func manifestSelector(m *config.Manifest) (driver.Selector, error) {
	reqs := make([]invocation.Request, len(m.Macros))
	for i, mc := range m.Macros {
		req, err := mc.Request()
		if err != nil {
			return nil, err
		}
		reqs[i] = req
	}
	return func(rel string) []invocation.Request {
		var out []invocation.Request
		for i, mc := range m.Macros {
			if mc.AppliesTo(rel) {
				out = append(out, reqs[i])
			}
		}
		return out
	}, nil
}

func openCache(cmd *cobra.Command, m *config.Manifest, opts *driver.Options) error {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	if !cmd.Flags().Changed("cache") && m != nil {
		enabled = m.Scan.Cache
	}
	if !enabled {
		return nil
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	cache, err := driver.OpenSiteCache(dir)
	if err != nil {
		return fmt.Errorf("failed to open site cache: %w", err)
	}
	opts.Cache = cache
	return nil
}

type scanOutcome struct {
	scans []*driver.FileScan
	err   error
}

// scanWithUI runs the scan while the progress view draws on stderr.
func scanWithUI(ctx context.Context, plan *scanPlan) ([]*driver.FileScan, error) {
	events := make(chan pipeline.Event, 256)
	outcomeCh := make(chan scanOutcome, 1)

	go func() {
		opts := plan.opts
		opts.Progress = pipeline.ChannelSink{Ch: events}
		scans, err := driver.ScanPaths(ctx, plan.base, plan.files, plan.sel, opts)
		outcomeCh <- scanOutcome{scans: scans, err: err}
		close(events)
	}()

	uiErr := ui.Run(ctx, os.Stderr, "scan", plan.files, events)
	// вид мог завершиться раньше (Ctrl-C): не блокируем сканирование
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.scans, uiErr
	}
	return outcome.scans, outcome.err
}
