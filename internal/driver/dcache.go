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

	"tuplex/internal/project"
	"tuplex/internal/version"
)

// Current schema version - increment when cachePayload format changes.
const diskCacheSchemaVersion uint16 = 1

// cacheApp names the XDG cache subdirectory.
const cacheApp = "tuplex"

// DiskCache stores analysis reports by manifest digest on disk.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// cachePayload is the serialized form of a Report.
type cachePayload struct {
	Schema    uint16
	Package   string
	Callsites []CallsiteReport
}

// OpenDiskCache initializes a disk cache. An empty dir selects the standard
// XDG location.
func OpenDiskCache(app, dir string) (*DiskCache, error) {
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

func (c *DiskCache) pathFor(key project.Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Reports live in a subdirectory for easy cleanup.
	return filepath.Join(c.dir, "reports", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key project.Digest, payload *cachePayload) error {
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
	defer func() {
		_ = os.Remove(f.Name())
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key project.Digest, out *cachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	p := c.pathFor(key)
	f, err := os.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		_ = f.Close()
	}()
	dec := msgpack.NewDecoder(f)
	if err := dec.Decode(out); err != nil {
		return false, err
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
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
	return os.RemoveAll(old)
}

// cacheKey mixes the manifest digest with the tool version so upgrades
// invalidate stale reports.
func cacheKey(manifest *project.Manifest) project.Digest {
	return project.Combine(manifest.Digest, project.HashBytes([]byte(version.Semver)))
}

func cachedReport(cache *DiskCache, key project.Digest) (*Report, bool, error) {
	var payload cachePayload
	ok, err := cache.Get(key, &payload)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}
	if !ok || payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	return &Report{
		Package:   payload.Package,
		Callsites: payload.Callsites,
		FromCache: true,
	}, true, nil
}

func storeReport(cache *DiskCache, key project.Digest, report *Report) error {
	return cache.Put(key, &cachePayload{
		Schema:    diskCacheSchemaVersion,
		Package:   report.Package,
		Callsites: report.Callsites,
	})
}
