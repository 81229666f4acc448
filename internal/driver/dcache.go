package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"jsvet/internal/diag"
	"jsvet/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores the lint result of a file on disk, keyed by the
// digest of its content and the rule configuration.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached lint result of one file. Spans carry no file
// id; it is restored on load.
type DiskPayload struct {
	Schema      uint16
	Path        string
	Diagnostics []CachedDiagnostic
}

type CachedSpan struct {
	Start, End uint32
}

type CachedLabel struct {
	Span CachedSpan
	Msg  string
}

type CachedFix struct {
	Title         string
	Applicability uint8
	Span          CachedSpan
	NewText       string
}

type CachedDiagnostic struct {
	Severity uint8
	Code     string
	Message  string
	Primary  CachedSpan
	Labels   []CachedLabel
	Help     string
	Fix      *CachedFix
}

// OpenDiskCache opens the cache under dir, or under the user cache
// directory when dir is empty.
func OpenDiskCache(dir, app string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "lint", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	// atomic replace
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get reads a payload. A payload of another schema is a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, fmt.Errorf("decode cache entry: %w", err)
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll invalidates the cache.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.RemoveAll(old); err != nil {
		return err
	}
	return os.MkdirAll(c.dir, 0o755)
}

func cacheSpan(sp source.Span) CachedSpan { return CachedSpan{Start: sp.Start, End: sp.End} }

func (s CachedSpan) span(file source.FileID) source.Span {
	return source.Span{File: file, Start: s.Start, End: s.End}
}

// bagToPayload converts the diagnostics of one file for caching.
func bagToPayload(path string, bag *diag.Bag) *DiskPayload {
	payload := &DiskPayload{
		Schema:      diskCacheSchemaVersion,
		Path:        path,
		Diagnostics: make([]CachedDiagnostic, 0, bag.Len()),
	}
	for _, d := range bag.Items() {
		cd := CachedDiagnostic{
			Severity: uint8(d.Severity),
			Code:     string(d.Code),
			Message:  d.Message,
			Primary:  cacheSpan(d.Primary),
			Help:     d.Help,
		}
		for _, l := range d.Labels {
			cd.Labels = append(cd.Labels, CachedLabel{Span: cacheSpan(l.Span), Msg: l.Msg})
		}
		if d.Fix != nil {
			cd.Fix = &CachedFix{
				Title:         d.Fix.Title,
				Applicability: uint8(d.Fix.Applicability),
				Span:          cacheSpan(d.Fix.Span),
				NewText:       d.Fix.NewText,
			}
		}
		payload.Diagnostics = append(payload.Diagnostics, cd)
	}
	return payload
}

// payloadToBag restores the diagnostics of payload against file.
func payloadToBag(payload *DiskPayload, file source.FileID) *diag.Bag {
	bag := diag.NewBag(0)
	for _, cd := range payload.Diagnostics {
		d := diag.New(diag.Severity(cd.Severity), diag.Code(cd.Code), cd.Primary.span(file), cd.Message)
		for _, l := range cd.Labels {
			d = d.WithLabel(l.Span.span(file), l.Msg)
		}
		d.Help = cd.Help
		if cd.Fix != nil {
			d = d.WithFix(diag.Fix{
				Title:         cd.Fix.Title,
				Applicability: diag.Applicability(cd.Fix.Applicability),
				Span:          cd.Fix.Span.span(file),
				NewText:       cd.Fix.NewText,
			})
		}
		bag.Add(d)
	}
	return bag
}
