// Package driver orchestrates the analysis pipeline: manifest call sites
// are lowered into interned descriptors, normalized into storage types, and
// rendered into a report. Call sites are independent, so the driver fans
// them out across workers, each with its own interner.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"tuplex/internal/decay"
	"tuplex/internal/diagfmt"
	"tuplex/internal/observ"
	"tuplex/internal/project"
	"tuplex/internal/trace"
	"tuplex/internal/types"
)

// Options configures an analysis run.
type Options struct {
	Jobs     int    // worker limit (<=0 means GOMAXPROCS)
	NoCache  bool   // skip the disk cache entirely
	CacheDir string // cache directory override (tests); "" uses the default
	Timer    *observ.Timer
	Progress ProgressSink
}

// ArgReport is the per-argument slice of a call-site report. Types are
// rendered to strings so reports aggregate across per-worker interners and
// serialize for the cache.
type ArgReport struct {
	Decl    string      // declared type as rendered
	Binding string      // value|lvalue|rvalue
	Storage string      // computed storage as rendered
	Class   decay.Class // value or reference
}

// CallsiteReport is the analysis result for one call site.
type CallsiteReport struct {
	Name     string
	Args     []ArgReport
	Elements []string // container element types, in argument order
	Tuple    string   // the instantiated tuple type
}

// Report is the result of analyzing a whole manifest.
type Report struct {
	Package   string
	Callsites []CallsiteReport
	FromCache bool
}

func (o Options) jobs(n int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return min(jobs, n)
}

// Analyze runs the pipeline over every call site in the manifest.
func Analyze(ctx context.Context, manifest *project.Manifest, opts Options) (*Report, error) {
	tracer := trace.FromContext(ctx)
	tracer.Emit(&trace.Event{Scope: trace.ScopeDriver, Name: "analyze", Detail: manifest.Config.Package.Name})

	var cache *DiskCache
	key := cacheKey(manifest)
	if !opts.NoCache {
		var err error
		cache, err = OpenDiskCache(cacheApp, opts.CacheDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open cache: %w", err)
		}
		if report, ok, err := cachedReport(cache, key); err != nil {
			return nil, err
		} else if ok {
			tracer.Emit(&trace.Event{Scope: trace.ScopePass, Name: "cache", Detail: "hit"})
			return report, nil
		}
	}

	callsites := manifest.Config.Callsites
	results := make([]CallsiteReport, len(callsites))

	for _, cs := range callsites {
		emit(opts.Progress, Event{Callsite: cs.Name, Stage: StageLower, Status: StatusQueued})
	}

	var normPhase int
	if opts.Timer != nil {
		normPhase = opts.Timer.Begin("normalize")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs(len(callsites)))

	for i, cs := range callsites {
		i, cs := i, cs
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			// Each worker owns an interner: normalization is pure, so the
			// only shared state would be the interner itself.
			in := types.NewInterner()
			emit(opts.Progress, Event{Callsite: cs.Name, Stage: StageLower, Status: StatusWorking})

			report, err := analyzeCallsite(gctx, in, cs, opts.Progress)
			if err != nil {
				emit(opts.Progress, Event{Callsite: cs.Name, Status: StatusError, Err: err})
				return fmt.Errorf("callsite %s: %w", cs.Name, err)
			}
			results[i] = report
			emit(opts.Progress, Event{Callsite: cs.Name, Stage: StageRender, Status: StatusDone})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if opts.Timer != nil {
		opts.Timer.End(normPhase, fmt.Sprintf("%d callsites", len(callsites)))
	}

	report := &Report{
		Package:   manifest.Config.Package.Name,
		Callsites: results,
	}

	if cache != nil {
		var cachePhase int
		if opts.Timer != nil {
			cachePhase = opts.Timer.Begin("cache")
		}
		if err := storeReport(cache, key, report); err != nil {
			// A failed cache write must not fail the run.
			tracer.Emit(&trace.Event{Scope: trace.ScopePass, Name: "cache", Detail: "write failed: " + err.Error()})
		}
		if opts.Timer != nil {
			opts.Timer.End(cachePhase, "")
		}
	}
	return report, nil
}

func analyzeCallsite(ctx context.Context, in *types.Interner, cs project.CallsiteConfig, sink ProgressSink) (CallsiteReport, error) {
	tracer := trace.FromContext(ctx)
	tracer.Emit(&trace.Event{Scope: trace.ScopeCallsite, Name: "callsite:" + cs.Name})

	args := make([]types.ArgDescriptor, len(cs.Args))
	for i, spec := range cs.Args {
		arg, err := lowerArg(in, spec)
		if err != nil {
			return CallsiteReport{}, fmt.Errorf("argument %d: %w", i, err)
		}
		args[i] = arg
	}

	emit(sink, Event{Callsite: cs.Name, Stage: StageNormalize, Status: StatusWorking})
	storages, tupleID := decay.Build(in, decay.TupleInstantiator{Interner: in}, args)

	report := CallsiteReport{
		Name:     cs.Name,
		Args:     make([]ArgReport, len(args)),
		Elements: make([]string, len(storages)),
		Tuple:    diagfmt.Type(in, tupleID),
	}
	for i, s := range storages {
		tracer.Emit(&trace.Event{
			Scope:  trace.ScopeArg,
			Name:   fmt.Sprintf("arg %d", i),
			Detail: diagfmt.Storage(in, s),
		})
		report.Args[i] = ArgReport{
			Decl:    diagfmt.Type(in, args[i].Type),
			Binding: args[i].Binding.String(),
			Storage: diagfmt.Storage(in, s),
			Class:   s.Class,
		}
		report.Elements[i] = diagfmt.Type(in, s.ElementType(in))
	}
	return report, nil
}
