package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tuplex/internal/driver"
	"tuplex/internal/project"
	"tuplex/internal/ui"
)

type analyzeOutcome struct {
	report *driver.Report
	err    error
}

func runAnalyzeWithUI(ctx context.Context, manifest *project.Manifest, opts driver.Options) (*driver.Report, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan analyzeOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		report, err := driver.Analyze(ctx, manifest, optsCopy)
		outcomeCh <- analyzeOutcome{report: report, err: err}
		close(events)
	}()

	names := make([]string, len(manifest.Config.Callsites))
	for i, cs := range manifest.Config.Callsites {
		names[i] = cs.Name
	}

	model := ui.NewProgressModel("analyzing "+manifest.Config.Package.Name, names, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}
