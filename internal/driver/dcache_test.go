package driver

import (
	"testing"

	"tuplex/internal/decay"
	"tuplex/internal/project"
)

func TestDiskCacheRoundtrip(t *testing.T) {
	cache, err := OpenDiskCache("tuplex-test", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	key := project.HashBytes([]byte("manifest"))
	payload := &cachePayload{
		Schema:  diskCacheSchemaVersion,
		Package: "demo",
		Callsites: []CallsiteReport{{
			Name:     "make_point",
			Args:     []ArgReport{{Decl: "int", Binding: "value", Storage: "int", Class: decay.ClassValue}},
			Elements: []string{"int"},
			Tuple:    "(int)",
		}},
	}
	if err := cache.Put(key, payload); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	var out cachePayload
	ok, err := cache.Get(key, &out)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if out.Package != "demo" || len(out.Callsites) != 1 || out.Callsites[0].Tuple != "(int)" {
		t.Fatalf("unexpected payload: %+v", out)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := OpenDiskCache("tuplex-test", t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var out cachePayload
	ok, err := cache.Get(project.HashBytes([]byte("absent")), &out)
	if err != nil {
		t.Fatalf("a miss is not an error: %v", err)
	}
	if ok {
		t.Fatalf("expected a cache miss")
	}
}

func TestCacheKeyMixesVersion(t *testing.T) {
	content := project.HashBytes([]byte("manifest"))
	m := &project.Manifest{Digest: content}
	if cacheKey(m) == content {
		t.Fatalf("cache key must not equal the raw manifest digest")
	}
}
