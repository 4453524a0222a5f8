package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"macroemu/internal/driver"
)

// SitesOpts configures the output of scan results.
type SitesOpts struct {
	Color bool
	// Quiet suppresses the reconstructed inputs; only site headers are printed.
	Quiet       bool
	Diagnostics PrettyOpts
}

// FileSitesJSON is the JSON form of one scanned file.
type FileSitesJSON struct {
	Path        string              `json:"path"`
	Cached      bool                `json:"cached,omitempty"`
	Sites       []driver.SiteRecord `json:"sites"`
	Diagnostics []DiagnosticJSON    `json:"diagnostics,omitempty"`
}

// SitesOutput is the root of the JSON scan output.
type SitesOutput struct {
	Files  []FileSitesJSON `json:"files"`
	Sites  int             `json:"sites"`
	Failed int             `json:"failed"`
}

// FormatSitesPretty prints every site with its reconstructed input, followed
// by the diagnostics of files that failed to parse and a summary line.
func FormatSitesPretty(w io.Writer, scans []*driver.FileScan, opts SitesOpts) {
	header := color.New(color.Bold)
	shape := color.New(color.FgGreen)
	label := color.New(color.FgBlue)
	for _, c := range []*color.Color{header, shape, label} {
		if opts.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	total, failed, cached := 0, 0, 0
	for _, scan := range scans {
		if scan == nil {
			continue
		}
		if scan.Cached {
			cached++
		}
		if scan.Failed() {
			failed++
			Pretty(w, scan.Bag, scan.FileSet, opts.Diagnostics)
			continue
		}
		for _, s := range scan.Sites {
			total++
			// путь макроса как записан в исходнике
			name := s.Path
			if name == "" {
				name = s.Macro
			}
			if s.Item != "" {
				name += " on " + s.Item
			}
			fmt.Fprintf(w, "%s %s %s\n", header.Sprintf("%s:%d:%d:", scan.Path, s.Line, s.Column), shape.Sprint(s.Shape), name)
			if opts.Quiet {
				continue
			}
			if s.Shape != "derive-like" {
				fmt.Fprintf(w, "    %s %s\n", label.Sprint("args: "), strings.Join(s.Args, " "))
			}
			if len(s.Input) > 0 {
				fmt.Fprintf(w, "    %s %s\n", label.Sprint("input:"), strings.Join(s.Input, " "))
			}
		}
	}
	fmt.Fprintf(w, "%d site(s) in %d file(s)", total, len(scans))
	if cached > 0 {
		fmt.Fprintf(w, ", %d cached", cached)
	}
	if failed > 0 {
		fmt.Fprintf(w, ", %d failed", failed)
	}
	fmt.Fprintln(w)
}

// BuildSitesOutput формирует структуру JSON-вывода без сериализации.
func BuildSitesOutput(scans []*driver.FileScan, opts JSONOpts) SitesOutput {
	out := SitesOutput{Files: make([]FileSitesJSON, 0, len(scans))}
	for _, scan := range scans {
		if scan == nil {
			continue
		}
		file := FileSitesJSON{Path: scan.Path, Cached: scan.Cached, Sites: scan.Sites}
		if file.Sites == nil {
			file.Sites = []driver.SiteRecord{}
		}
		if scan.Bag != nil && scan.Bag.Len() > 0 {
			file.Diagnostics = BuildDiagnosticsOutput(scan.Bag, scan.FileSet, opts).Diagnostics
		}
		if scan.Failed() {
			out.Failed++
		}
		out.Sites += len(scan.Sites)
		out.Files = append(out.Files, file)
	}
	return out
}

// FormatSitesJSON prints the scan results as JSON.
func FormatSitesJSON(w io.Writer, scans []*driver.FileScan, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildSitesOutput(scans, opts))
}
