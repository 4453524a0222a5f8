package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"macroemu/internal/diag"
	"macroemu/internal/invocation"
	"macroemu/internal/pipeline"
	"macroemu/internal/source"
	"macroemu/internal/trace"
)

// Selector returns the requests that apply to a file; rel is the
// slash-separated path relative to the scan root.
type Selector func(rel string) []invocation.Request

// Static applies the same requests to every file.
func Static(reqs ...invocation.Request) Selector {
	return func(string) []invocation.Request { return reqs }
}

// ListFixtures returns the sorted files under dir whose extension is in exts
// (".rs" when empty).
func ListFixtures(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = []string{".rs"}
	}
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		for _, ext := range exts {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// ScanDir scans every fixture under dir in parallel. Results are in path
// order regardless of completion order.
func ScanDir(ctx context.Context, dir string, sel Selector, opts Options) ([]*FileScan, error) {
	files, err := ListFixtures(dir, opts.Extensions)
	if err != nil {
		return nil, err
	}
	return ScanPaths(ctx, dir, files, sel, opts)
}

// ScanPaths scans the given files in parallel; base is used to compute the
// paths handed to sel. A file that cannot be read yields a FileScan with an
// IO diagnostic, not an error; the returned error is only for cancellation.
func ScanPaths(ctx context.Context, base string, files []string, sel Selector, opts Options) ([]*FileScan, error) {
	if len(files) == 0 {
		return nil, nil
	}
	t := trace.FromContext(ctx)
	root := trace.Begin(t, trace.ScopeDriver, "scan", trace.CurrentSpan(ctx))
	defer root.End("")
	ctx = trace.WithSpan(ctx, root)

	// Files are loaded up front: FileSet is not safe for concurrent Add.
	fileSet := source.NewFileSet()
	ids := make([]source.FileID, len(files))
	loadErrs := make([]error, len(files))
	for i, path := range files {
		pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusQueued})
		ids[i], loadErrs[i] = fileSet.Load(path)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*FileScan, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErrs[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				loadError(bag, path, loadErrs[i])
				results[i] = &FileScan{Path: path, Bag: bag}
				pipeline.Emit(opts.Progress, pipeline.Event{File: path, Stage: pipeline.StageLoad, Status: pipeline.StatusError, Err: loadErrs[i]})
				return nil
			}
			span := trace.Begin(t, trace.ScopeFile, "file:"+path, root.ID())
			fctx := trace.WithSpan(gctx, span)
			results[i] = ScanFile(fctx, fileSet, ids[i], sel(relPath(base, path)), opts)
			span.WithExtra("sites", itoa(len(results[i].Sites))).End("")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	root.WithExtra("files", itoa(len(files)))
	return results, nil
}

func relPath(base, path string) string {
	if base == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
