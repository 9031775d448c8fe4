package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tuplex/internal/decay"
	"tuplex/internal/driver"
	"tuplex/internal/observ"
	"tuplex/internal/project"
	"tuplex/internal/trace"
)

var (
	analyzeJobs       int
	analyzeNoCache    bool
	analyzeTimings    bool
	analyzeUI         bool
	analyzeTracePath  string
	analyzeTraceLevel string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [path]",
	Short: "Compute storage types for every call site in tuplex.toml",
	Long: `Analyze loads the tuplex.toml manifest, normalizes each call-site
argument into its storage type, and reports the element types the tuple
factory would infer.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().IntVar(&analyzeJobs, "jobs", 0, "number of parallel workers (0 = GOMAXPROCS)")
	analyzeCmd.Flags().BoolVar(&analyzeNoCache, "no-cache", false, "skip the analysis cache")
	analyzeCmd.Flags().BoolVar(&analyzeTimings, "timings", false, "show timing information")
	analyzeCmd.Flags().BoolVar(&analyzeUI, "ui", false, "show interactive progress")
	analyzeCmd.Flags().StringVar(&analyzeTracePath, "trace", "", "trace output path (\"-\" for stderr)")
	analyzeCmd.Flags().StringVar(&analyzeTraceLevel, "trace-level", "off", "trace level (off|phase|detail|debug)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) > 0 && args[0] != "" {
		startDir = args[0]
	}

	useColor, err := resolveColorMode(cmd)
	if err != nil {
		return err
	}
	color.NoColor = !useColor

	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	level, err := trace.ParseLevel(analyzeTraceLevel)
	if err != nil {
		return err
	}
	tracer, err := trace.New(trace.Config{Level: level, OutputPath: analyzeTracePath})
	if err != nil {
		return err
	}
	defer func() {
		_ = tracer.Close()
	}()
	ctx := trace.WithTracer(cmd.Context(), tracer)

	timer := observ.NewTimer()
	loadPhase := timer.Begin("load")
	manifestPath, ok, err := project.Find(startDir)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no %s found under %q", project.ManifestName, startDir)
	}
	manifest, err := project.Load(manifestPath)
	if err != nil {
		return err
	}
	timer.End(loadPhase, manifest.Config.Package.Name)

	opts := driver.Options{
		Jobs:    analyzeJobs,
		NoCache: analyzeNoCache,
		Timer:   timer,
	}

	var report *driver.Report
	if analyzeUI && isTerminal(os.Stdout) {
		report, err = runAnalyzeWithUI(ctx, manifest, opts)
	} else {
		report, err = driver.Analyze(ctx, manifest, opts)
	}
	if err != nil {
		return err
	}

	printReport(report, quiet)
	if analyzeTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}
	return nil
}

func printReport(report *driver.Report, quiet bool) {
	header := color.New(color.Bold)
	if !quiet {
		suffix := ""
		if report.FromCache {
			suffix = " (cached)"
		}
		header.Printf("package %s%s\n", report.Package, suffix)
	}
	for _, cs := range report.Callsites {
		fmt.Printf("\n%s -> %s\n", header.Sprint(cs.Name), cs.Tuple)
		for i, arg := range cs.Args {
			fmt.Printf("  arg %d: %-24s [%s] stores %s\n", i, arg.Decl, arg.Binding, colorizeStorage(arg))
		}
	}
}

func colorizeStorage(arg driver.ArgReport) string {
	if arg.Class == decay.ClassReference {
		return color.New(color.FgMagenta).Sprint(arg.Storage)
	}
	return color.New(color.FgGreen).Sprint(arg.Storage)
}

func resolveColorMode(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, err
	}
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout)), nil
}
