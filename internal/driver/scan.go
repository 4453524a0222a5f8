package driver

import (
	"context"
	"sort"

	"macroemu/internal/ast"
	"macroemu/internal/diag"
	"macroemu/internal/invocation"
	"macroemu/internal/pipeline"
	"macroemu/internal/reconstruct"
	"macroemu/internal/source"
	"macroemu/internal/token"
	"macroemu/internal/trace"
)

// SiteRecord is a found site with its reconstructed input, flattened to
// token texts so it can be printed and cached.
type SiteRecord struct {
	Macro  string `msgpack:"macro" json:"macro"`
	Shape  string `msgpack:"shape" json:"shape"`
	Path   string `msgpack:"path" json:"path"`
	Line   uint32 `msgpack:"line" json:"line"`
	Column uint32 `msgpack:"col" json:"column"`
	Item   string `msgpack:"item,omitempty" json:"item,omitempty"`
	// Args are the call or attribute arguments; empty for derive sites.
	Args []string `msgpack:"args" json:"args"`
	// Input is the declaration input of attribute and derive sites.
	Input []string `msgpack:"input,omitempty" json:"input,omitempty"`
}

// FileScan is the result of scanning one file.
type FileScan struct {
	Path  string
	Sites []SiteRecord
	Bag   *diag.Bag
	// FileSet resolves the spans in Bag; nil when the file was never loaded.
	FileSet *source.FileSet
	Cached  bool
}

// Failed reports whether the file could not be scanned.
func (s *FileScan) Failed() bool { return s.Bag != nil && s.Bag.HasErrors() }

// ScanFile parses a file in fs and collects the sites of every request,
// ordered by position and then by request order.
func ScanFile(ctx context.Context, fs *source.FileSet, id source.FileID, reqs []invocation.Request, opts Options) *FileScan {
	file := fs.Get(id)
	key := cacheKey(file.Hash, reqs)
	if entry, ok := opts.Cache.lookup(key); ok {
		bag := diag.NewBag(opts.MaxDiagnostics)
		entry.restore(bag, id)
		pipeline.Emit(opts.Progress, pipeline.Event{File: file.Path, Stage: pipeline.StageLoad, Status: pipeline.StatusCached, Sites: len(entry.Sites)})
		return &FileScan{Path: file.Path, Sites: entry.Sites, Bag: bag, FileSet: fs, Cached: true}
	}

	pipeline.Emit(opts.Progress, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	pr := ParseFile(ctx, fs, id, opts)
	if pr.Failed() {
		pipeline.Emit(opts.Progress, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusError})
		return &FileScan{Path: file.Path, Bag: pr.Bag, FileSet: fs}
	}

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "match", trace.CurrentSpan(ctx))
	idx := opts.Timer.Begin("match " + file.Path)
	var sites []SiteRecord
	for _, req := range reqs {
		found, err := invocation.Collect(pr.Syntax, req)
		if err != nil {
			opts.Timer.End(idx, "failed")
			span.End(err.Error())
			pr.Bag.Add(diag.NewError(diag.UnknownCode, source.Span{File: id}, err.Error()))
			pipeline.Emit(opts.Progress, pipeline.Event{File: file.Path, Stage: pipeline.StageMatch, Status: pipeline.StatusError, Err: err})
			return &FileScan{Path: file.Path, Bag: pr.Bag, FileSet: fs}
		}
		for _, site := range found {
			sites = append(sites, Record(pr.Syntax, req, site))
		}
	}
	sort.SliceStable(sites, func(i, j int) bool {
		if sites[i].Line != sites[j].Line {
			return sites[i].Line < sites[j].Line
		}
		return sites[i].Column < sites[j].Column
	})
	opts.Timer.End(idx, itoa(len(sites))+" sites")
	span.WithExtra("sites", itoa(len(sites))).End("")

	opts.Cache.store(key, CacheEntry{Sites: sites, Warnings: cacheWarnings(pr.Bag)})
	pipeline.Emit(opts.Progress, pipeline.Event{File: file.Path, Stage: pipeline.StageMatch, Status: pipeline.StatusDone, Sites: len(sites)})
	return &FileScan{Path: file.Path, Sites: sites, Bag: pr.Bag, FileSet: fs}
}

// Record flattens site into a SiteRecord.
func Record(f *ast.File, req invocation.Request, site invocation.Site) SiteRecord {
	pos := f.Source.Position(site.Span.Start)
	rec := SiteRecord{
		Macro:  req.Name.String(),
		Shape:  site.Shape.String(),
		Path:   site.Path.String(),
		Line:   pos.Line,
		Column: pos.Col,
		Item:   site.ItemName,
	}
	if site.Shape != invocation.DeriveLike {
		rec.Args = texts(reconstruct.Copy(f.Tokens, site.Args))
	}
	if site.Shape != invocation.FunctionLike {
		rec.Input = texts(reconstruct.Subtract(f.Tokens, site.Item, site.Exclude...))
	}
	return rec
}

func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}
