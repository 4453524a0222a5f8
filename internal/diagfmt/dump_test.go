package diagfmt

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"macroemu/internal/diag"
	"macroemu/internal/driver"
	"macroemu/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.rs", []byte("foo!(\n  a) // done\n"))
	res := driver.TokenizeFile(context.Background(), fs, id, driver.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, res.Tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 6 {
		t.Fatalf("expected 6 lines, got %d:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[0], "  1: Ident") || !strings.Contains(lines[0], `"foo" at 1:1-1:4`) {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[3], `"a" at 2:3-2:4 (leading: Newline, Space)`) {
		t.Errorf("fourth line = %q", lines[3])
	}
	if !strings.Contains(lines[5], "EOF") {
		t.Errorf("last line = %q", lines[5])
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, res.Tokens, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 6 || out[1].Kind != "Bang" || out[3].Text != "a" || out[3].Line != 2 || out[3].Col != 3 {
		t.Errorf("unexpected tokens %+v", out)
	}
}

const treeSource = `#![allow(dead_code)]
#[derive(Debug, Clone)]
struct Foo;

fn main() {
    bar!(1, 2);
}
`

func TestFormatASTPretty(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("tree.rs", []byte(treeSource))
	res := driver.ParseFile(context.Background(), fs, id, driver.Options{})
	if res.Failed() {
		t.Fatalf("parse failed: %+v", res.Bag.Items())
	}

	var buf bytes.Buffer
	if err := FormatASTPretty(&buf, res.Syntax, fs); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"tree.rs (span: 1:1-",
		"├─ InnerAttr allow(dead_code)",
		"├─ Item[0]: struct Foo",
		"│  └─ Derive [Debug, Clone]",
		"└─ Item[1]: fn main",
		"└─ Block",
		"└─ Stmt[0]: expr",
		"└─ MacroCall bar!(1 , 2) (span: 6:5-6:15)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestFormatASTJSON(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("tree.rs", []byte(treeSource))
	res := driver.ParseFile(context.Background(), fs, id, driver.Options{})

	var buf bytes.Buffer
	if err := FormatASTJSON(&buf, res.Syntax, fs); err != nil {
		t.Fatal(err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if root.Type != "File" || len(root.Children) != 3 {
		t.Fatalf("unexpected root %+v", root)
	}
	if got := root.Children[1].Children[0].Label; got != "Derive [Debug, Clone]" {
		t.Errorf("derive label = %q", got)
	}
	if FormatASTJSON(&buf, nil, fs) == nil {
		t.Error("nil file accepted")
	}
}

func TestFormatSites(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("bad.rs", []byte("struct S {\n"))
	bag := diag.NewBag(0)
	bag.Add(diag.NewError(diag.SynUnclosedDelimiter, source.Span{File: id, Start: 9, End: 10}, "unclosed delimiter"))

	scans := []*driver.FileScan{
		{
			Path: "ok.rs",
			Sites: []driver.SiteRecord{
				{Macro: "assert_eq", Shape: "function-like", Path: "std::assert_eq", Line: 2, Column: 5, Args: []string{"a", ",", "b"}},
				{Macro: "Pod", Shape: "derive-like", Path: "Pod", Line: 5, Column: 10, Item: "Point", Input: []string{"struct", "Point", ";"}},
			},
			Bag:    diag.NewBag(0),
			Cached: true,
		},
		{Path: "bad.rs", Bag: bag, FileSet: fs},
	}

	var buf bytes.Buffer
	FormatSitesPretty(&buf, scans, SitesOpts{})
	want := strings.Join([]string{
		"ok.rs:2:5: function-like std::assert_eq",
		"    args:  a , b",
		"ok.rs:5:10: derive-like Pod on Point",
		"    input: struct Point ;",
		"bad.rs:1:10: ERROR SYN2002: unclosed delimiter",
		"1 | struct S {",
		"  |          ^",
		"2 site(s) in 2 file(s), 1 cached, 1 failed",
	}, "\n") + "\n"
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}

	out := BuildSitesOutput(scans, JSONOpts{IncludePositions: true})
	if out.Sites != 2 || out.Failed != 1 || len(out.Files) != 2 {
		t.Fatalf("unexpected summary %+v", out)
	}
	if len(out.Files[1].Sites) != 0 || out.Files[1].Sites == nil {
		t.Errorf("failed file sites = %#v, want empty slice", out.Files[1].Sites)
	}
	if loc := out.Files[1].Diagnostics[0].Location; loc == nil || loc.StartLine != 1 || loc.StartCol != 10 {
		t.Errorf("diagnostic location = %+v", loc)
	}
}
