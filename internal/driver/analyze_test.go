package driver

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"tuplex/internal/decay"
	"tuplex/internal/project"
	"tuplex/internal/types"
)

const testManifest = `[package]
name = "demo"

[[callsite]]
name = "make_point"

  [[callsite.arg]]
  kind = "named"
  name = "int"

  [[callsite.arg]]
  kind = "named"
  name = "int"
  quals = ["const"]
  binding = "lvalue"

  [[callsite.arg]]
  kind = "ref"
    [callsite.arg.target]
    kind = "named"
    name = "double"

[[callsite]]
name = "make_buffer"

  [[callsite.arg]]
  kind = "array"
  count = 5
    [callsite.arg.elem]
    kind = "named"
    name = "int"
`

func loadTestManifest(t *testing.T, content string) *project.Manifest {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write manifest: %v", err)
	}
	m, err := project.Load(path)
	if err != nil {
		t.Fatalf("failed to load manifest: %v", err)
	}
	return m
}

func TestAnalyzeEndToEnd(t *testing.T) {
	manifest := loadTestManifest(t, testManifest)
	report, err := Analyze(context.Background(), manifest, Options{
		CacheDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Package != "demo" || report.FromCache {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if len(report.Callsites) != 2 {
		t.Fatalf("expected 2 callsites, got %d", len(report.Callsites))
	}

	point := report.Callsites[0]
	if point.Name != "make_point" || len(point.Args) != 3 {
		t.Fatalf("unexpected callsite: %+v", point)
	}
	if point.Args[0].Storage != "int" || point.Args[0].Class != decay.ClassValue {
		t.Fatalf("arg 0: expected value int, got %+v", point.Args[0])
	}
	if point.Args[1].Decl != "const int" || point.Args[1].Storage != "int" {
		t.Fatalf("arg 1: qualifiers must strip to value int, got %+v", point.Args[1])
	}
	if point.Args[2].Class != decay.ClassReference || point.Args[2].Storage != "&mut double" {
		t.Fatalf("arg 2: expected reference to double, got %+v", point.Args[2])
	}
	if point.Tuple != "(int, int, &mut double)" {
		t.Fatalf("unexpected tuple type: %q", point.Tuple)
	}

	buffer := report.Callsites[1]
	if len(buffer.Args) != 1 || buffer.Args[0].Storage != "*int" {
		t.Fatalf("array argument must decay to *int, got %+v", buffer.Args)
	}
}

func TestAnalyzeUsesCache(t *testing.T) {
	manifest := loadTestManifest(t, testManifest)
	cacheDir := t.TempDir()

	first, err := Analyze(context.Background(), manifest, Options{CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.FromCache {
		t.Fatalf("first run must not come from cache")
	}

	second, err := Analyze(context.Background(), manifest, Options{CacheDir: cacheDir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.FromCache {
		t.Fatalf("second run should come from cache")
	}
	if len(second.Callsites) != len(first.Callsites) {
		t.Fatalf("cached report should match: %d vs %d", len(second.Callsites), len(first.Callsites))
	}
	if second.Callsites[0].Tuple != first.Callsites[0].Tuple {
		t.Fatalf("cached tuple mismatch: %q vs %q", second.Callsites[0].Tuple, first.Callsites[0].Tuple)
	}
}

func TestAnalyzeNoCache(t *testing.T) {
	manifest := loadTestManifest(t, testManifest)

	for i := 0; i < 2; i++ {
		report, err := Analyze(context.Background(), manifest, Options{NoCache: true})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.FromCache {
			t.Fatalf("no-cache runs must never come from cache")
		}
	}
}

func TestAnalyzeRejectsInvalidSpec(t *testing.T) {
	manifest := loadTestManifest(t, `[package]
name = "demo"

[[callsite]]
name = "broken"

  [[callsite.arg]]
  kind = "matrix"
`)
	_, err := Analyze(context.Background(), manifest, Options{NoCache: true})
	if err == nil {
		t.Fatalf("expected an error for an invalid type kind")
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []Event
}

func (s *recordingSink) OnEvent(evt Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestAnalyzeEmitsProgress(t *testing.T) {
	manifest := loadTestManifest(t, testManifest)
	sink := &recordingSink{}

	_, err := Analyze(context.Background(), manifest, Options{NoCache: true, Progress: sink})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	done := map[string]bool{}
	for _, evt := range sink.events {
		if evt.Status == StatusDone {
			done[evt.Callsite] = true
		}
	}
	if !done["make_point"] || !done["make_buffer"] {
		t.Fatalf("expected done events for all callsites, got %+v", sink.events)
	}
}

func TestLowerTypeBuiltins(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	cases := map[string]types.TypeID{
		"int":    b.Int,
		"uint":   b.Uint,
		"bool":   b.Bool,
		"string": b.String,
		"unit":   b.Unit,
		"double": b.Double,
		"float":  b.Float,
	}
	for name, want := range cases {
		got, err := lowerType(in, project.TypeSpec{Kind: "named", Name: name})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if got != want {
			t.Fatalf("%s: expected %v, got %v", name, want, got)
		}
	}

	i32, err := lowerType(in, project.TypeSpec{Kind: "named", Name: "int32"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tt := in.MustLookup(i32); tt.Kind != types.KindInt || tt.Width != types.Width32 {
		t.Fatalf("expected 32-bit int, got %+v", tt)
	}

	opaque, err := lowerType(in, project.TypeSpec{Kind: "named", Name: "Widget"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info, ok := in.NamedInfo(opaque); !ok || info.Name != "Widget" {
		t.Fatalf("expected opaque named type, got %+v (%v)", info, ok)
	}
}

func TestLowerTypeNested(t *testing.T) {
	in := types.NewInterner()
	b := in.Builtins()

	// ref[const int] keeps its target qualified.
	id, err := lowerType(in, project.TypeSpec{
		Kind:   "ref",
		Target: &project.TypeSpec{Kind: "named", Name: "int", Quals: []string{"const"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	target, ok := in.RefTarget(id)
	if !ok {
		t.Fatalf("expected a ref wrapper")
	}
	if target != in.Qualify(b.Int, types.QualConst) {
		t.Fatalf("expected const int target, got %v", target)
	}

	// fn(int) -> bool
	fn, err := lowerType(in, project.TypeSpec{
		Kind:   "fn",
		Params: []project.TypeSpec{{Kind: "named", Name: "int"}},
		Result: &project.TypeSpec{Kind: "named", Name: "bool"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, ok := in.FnInfo(fn)
	if !ok || len(info.Params) != 1 || info.Result != b.Bool {
		t.Fatalf("unexpected fn info: %+v (%v)", info, ok)
	}
}
