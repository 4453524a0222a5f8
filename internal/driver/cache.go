package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"macroemu/internal/diag"
	"macroemu/internal/invocation"
	"macroemu/internal/source"
	"macroemu/internal/version"
)

// bump when CacheEntry changes shape; parser changes are covered by the
// version in the key
const siteCacheSchema uint16 = 2

// Digest is a sha256 over file content and the request set.
type Digest [32]byte

// SiteCache stores scan results on disk, keyed by file content and the
// requested macros. Safe for concurrent use; a nil cache is disabled.
type SiteCache struct {
	mu  sync.RWMutex
	dir string
}

// CacheEntry is what a successful scan leaves behind: the sites and the
// warnings of the parse (an NFC warning must survive a cache hit).
type CacheEntry struct {
	Sites    []SiteRecord       `msgpack:"sites"`
	Warnings []CachedDiagnostic `msgpack:"warnings,omitempty"`
}

// CachedDiagnostic is a diagnostic with its span reduced to byte offsets
// in the scanned file. Notes are not kept.
type CachedDiagnostic struct {
	Code     diag.Code     `msgpack:"code"`
	Severity diag.Severity `msgpack:"sev"`
	Start    uint32        `msgpack:"start"`
	End      uint32        `msgpack:"end"`
	Message  string        `msgpack:"msg"`
}

type sitePayload struct {
	Schema uint16
	Entry  CacheEntry
}

func cacheWarnings(bag *diag.Bag) []CachedDiagnostic {
	var out []CachedDiagnostic
	for _, d := range bag.Items() {
		if d.Severity.Fatal() {
			continue
		}
		out = append(out, CachedDiagnostic{
			Code:     d.Code,
			Severity: d.Severity,
			Start:    d.Primary.Start,
			End:      d.Primary.End,
			Message:  d.Message,
		})
	}
	return out
}

// restore adds the cached warnings of e to bag, as diagnostics of file id.
func (e CacheEntry) restore(bag *diag.Bag, id source.FileID) {
	for _, w := range e.Warnings {
		bag.Add(diag.New(w.Severity, w.Code, source.Span{File: id, Start: w.Start, End: w.End}, w.Message))
	}
}

// OpenSiteCache uses dir, or $XDG_CACHE_HOME/macroemu (~/.cache/macroemu)
// when dir is empty.
func OpenSiteCache(dir string) (*SiteCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "macroemu")
	}
	if err := os.MkdirAll(filepath.Join(dir, "sites"), 0o755); err != nil {
		return nil, err
	}
	return &SiteCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *SiteCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *SiteCache) pathFor(key Digest) string {
	return filepath.Join(c.dir, "sites", hex.EncodeToString(key[:])+".mp")
}

// Put writes entry under key, replacing the previous one atomically.
func (c *SiteCache) Put(key Digest, entry CacheEntry) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()
	if err := msgpack.NewEncoder(f).Encode(&sitePayload{Schema: siteCacheSchema, Entry: entry}); err != nil {
		_ = f.Close() //nolint:errcheck
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads the entry for key. Entries of another schema are misses.
func (c *SiteCache) Get(key Digest) (CacheEntry, bool, error) {
	if c == nil {
		return CacheEntry{}, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return CacheEntry{}, false, nil
		}
		return CacheEntry{}, false, err
	}
	var payload sitePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return CacheEntry{}, false, err
	}
	if payload.Schema != siteCacheSchema {
		return CacheEntry{}, false, nil
	}
	return payload.Entry, true, nil
}

// lookup and store ignore cache errors: a broken cache only costs a re-parse.
func (c *SiteCache) lookup(key Digest) (CacheEntry, bool) {
	entry, ok, err := c.Get(key)
	if err != nil {
		return CacheEntry{}, false
	}
	return entry, ok
}

func (c *SiteCache) store(key Digest, entry CacheEntry) {
	_ = c.Put(key, entry) //nolint:errcheck
}

// cacheKey: H(schema || tool version || content || shape name helpers... per request).
func cacheKey(content [32]byte, reqs []invocation.Request) Digest {
	return cacheKeyFor(version.Version+"+"+version.GitCommit, content, reqs)
}

func cacheKeyFor(tool string, content [32]byte, reqs []invocation.Request) Digest {
	h := sha256.New()
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], siteCacheSchema)
	h.Write(buf[:])
	h.Write([]byte(tool))
	h.Write([]byte{0})
	h.Write(content[:])
	for _, req := range reqs {
		helpers := append([]string(nil), req.Helpers...)
		sort.Strings(helpers)
		h.Write([]byte{0, byte(req.Shape)})
		h.Write([]byte(req.Name.String()))
		for _, hp := range helpers {
			h.Write([]byte{0})
			h.Write([]byte(hp))
		}
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}
