package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"estlint/internal/driver"
	"estlint/internal/source"
	"estlint/internal/ui"
)

type checkOutcome struct {
	fs      *source.FileSet
	results []driver.Result
	err     error
}

// runCheckDirWithUI гоняет CheckDir в фоне и рисует прогресс через
// bubbletea. Список файлов модель узнаёт из queued-событий, поэтому
// заранее его передавать не нужно.
func runCheckDirWithUI(ctx context.Context, title, dir string, opts driver.Options) (*source.FileSet, []driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.CheckDir(ctx, dir, optsCopy)
		outcomeCh <- checkOutcome{fs: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, nil, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fs, outcome.results, uiErr
	}
	return outcome.fs, outcome.results, outcome.err
}
