// Package config loads macroemu.toml, the manifest that lists which macros
// a fixture tree should be scanned for.
//
//	[project]
//	name = "custom_derive"
//	root = "tests"
//
//	[[macro]]
//	name = "HelloWorld"
//	shape = "derive"
//	helpers = ["hello"]
//	files = ["*.rs"]
package config

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	"macroemu/internal/invocation"
)

// FileName is the manifest name looked up by Find.
const FileName = "macroemu.toml"

var (
	// ErrProjectSectionMissing is returned when [project] is absent.
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrNoMacros is returned when no [[macro]] entry is declared.
	ErrNoMacros = errors.New("no [[macro]] entries")
)

// Manifest is a parsed macroemu.toml.
type Manifest struct {
	// Path is the manifest file; Dir is its directory.
	Path string `toml:"-"`
	Dir  string `toml:"-"`

	Project Project `toml:"project"`
	Macros  []Macro `toml:"macro"`
	Scan    Scan    `toml:"scan"`
}

type Project struct {
	Name string `toml:"name"`
	// Root is the fixture directory relative to the manifest, "." by default.
	Root string `toml:"root"`
}

// Macro declares one macro to emulate.
type Macro struct {
	Name    string   `toml:"name"`
	Shape   string   `toml:"shape"`
	Helpers []string `toml:"helpers"`
	// Files are slash-separated glob patterns relative to the project root;
	// empty means every fixture. "**" crosses directories, "*" does not.
	// A pattern without '/' is matched against the base name.
	Files []string `toml:"files"`

	globs []glob.Glob
}

type Scan struct {
	Jobs  int  `toml:"jobs"`
	Cache bool `toml:"cache"`
	// Extensions lists fixture file extensions, [".rs"] by default.
	Extensions []string `toml:"extensions"`
}

// Find walks up from startDir to locate macroemu.toml.
func Find(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// Load parses and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	m.Dir = filepath.Dir(path)
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// Discover finds and loads the manifest above startDir. ok is false when
// there is none.
func Discover(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := Find(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = Load(path)
	return m, true, err
}

func (m *Manifest) validate() error {
	m.Project.Name = strings.TrimSpace(m.Project.Name)
	if m.Project.Root == "" {
		m.Project.Root = "."
	}
	if filepath.IsAbs(m.Project.Root) {
		return fmt.Errorf("invalid [project].root %q: must be relative", m.Project.Root)
	}
	if len(m.Macros) == 0 {
		return ErrNoMacros
	}
	for i := range m.Macros {
		if _, err := m.Macros[i].Request(); err != nil {
			return fmt.Errorf("[[macro]] #%d: %w", i+1, err)
		}
		globs, err := compileFiles(m.Macros[i].Files)
		if err != nil {
			return fmt.Errorf("[[macro]] %s: %w", m.Macros[i].Name, err)
		}
		m.Macros[i].globs = globs
	}
	if m.Scan.Jobs < 0 {
		return fmt.Errorf("invalid [scan].jobs %d", m.Scan.Jobs)
	}
	if len(m.Scan.Extensions) == 0 {
		m.Scan.Extensions = []string{".rs"}
	}
	return nil
}

// RootDir returns the absolute fixture directory.
func (m *Manifest) RootDir() string {
	return filepath.Join(m.Dir, filepath.FromSlash(m.Project.Root))
}

// Request converts the entry into a matcher request.
func (mc Macro) Request() (invocation.Request, error) {
	name, err := invocation.ParseMacroName(mc.Name)
	if err != nil {
		return invocation.Request{}, err
	}
	shape := invocation.FunctionLike
	if strings.TrimSpace(mc.Shape) != "" {
		if shape, err = invocation.ParseShape(mc.Shape); err != nil {
			return invocation.Request{}, err
		}
	}
	if shape != invocation.DeriveLike && len(mc.Helpers) > 0 {
		return invocation.Request{}, fmt.Errorf("macro %s: helpers are only valid for derive macros", mc.Name)
	}
	return invocation.Request{Shape: shape, Name: name, Helpers: mc.Helpers}, nil
}

// AppliesTo reports whether rel (slash-separated, relative to the project
// root) is selected by Files.
func (mc Macro) AppliesTo(rel string) bool {
	if len(mc.Files) == 0 {
		return true
	}
	globs := mc.globs
	if globs == nil {
		// Macro собран вручную, без Load: битые шаблоны просто не совпадают.
		globs, _ = compileFiles(mc.Files) //nolint:errcheck
	}
	rel = filepath.ToSlash(rel)
	base := path.Base(rel)
	for _, g := range globs {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// compileFiles compiles every pattern with '/' as the separator. "a/**/b"
// also gets the zero-directory variant "a/b", and a leading "**/" the variant
// without it. Patterns without '/' only ever see base names.
func compileFiles(patterns []string) ([]glob.Glob, error) {
	var globs []glob.Glob
	for _, pat := range patterns {
		variants := []string{pat}
		if strings.Contains(pat, "/**/") {
			variants = append(variants, strings.ReplaceAll(pat, "/**/", "/"))
		}
		if rest, ok := strings.CutPrefix(pat, "**/"); ok {
			variants = append(variants, rest)
		}
		for _, v := range variants {
			g, err := glob.Compile(v, '/')
			if err != nil {
				return nil, fmt.Errorf("bad files pattern %q: %w", pat, err)
			}
			if !strings.Contains(v, "/") {
				g = baseOnly{g}
			}
			globs = append(globs, g)
		}
	}
	return globs, nil
}

// baseOnly restricts a pattern without '/' to base names.
type baseOnly struct{ glob.Glob }

func (b baseOnly) Match(s string) bool {
	return !strings.Contains(s, "/") && b.Glob.Match(s)
}

// Template returns the manifest written by `macroemu init`.
func Template(project, macro, shape string) string {
	if shape == "" {
		shape = "function"
	}
	return fmt.Sprintf(`[project]
name = %q
root = "tests"

[[macro]]
name = %q
shape = %q
# helpers = ["helper_attr"]   # derive macros only
# files = ["*.rs"]

[scan]
jobs = 0
cache = false
`, project, macro, shape)
}
