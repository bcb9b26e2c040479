package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/telepair/lifesrc/engine/rule"
	"github.com/telepair/lifesrc/engine/search"
	"github.com/telepair/lifesrc/ui"
	"github.com/telepair/lifesrc/webstatus"
)

// runStepBudget is the number of decisions/deductions one headless
// Step call performs before status is re-checked; small enough that a
// status server receives regular progress updates.
const runStepBudget = 10_000

// runOptions controls how a constructed Searcher is driven to
// completion by runSearcher.
type runOptions struct {
	interactive bool
	statusAddr  string
	savePath    string
}

// runSearcher drives s to a terminal status (Found or
// NoMoreSolutions), either via the interactive TUI or headlessly, and
// returns the CLI exit code the outcome maps to. It is the single
// place new and load converge after constructing a Searcher.
func runSearcher(s *search.Searcher, opts runOptions) int {
	if opts.statusAddr != "" {
		srv := webstatus.NewServer(slog.Default())
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			if err := srv.ListenAndServe(ctx, opts.statusAddr); err != nil {
				slog.Error("status server stopped", "error", err)
			}
		}()
		publish := func(status search.Status) {
			srv.Publish(webstatus.Update{
				Status:     status,
				Stats:      s.Stats(),
				Population: s.Population(),
				Ceiling:    s.Ceiling(),
				Snapshot:   s.Snapshot(0),
			})
		}
		return runHeadless(s, opts.savePath, publish)
	}

	if opts.interactive {
		engine := ui.NewSearcherEngine(s, ui.DefaultStepBudget, slog.Default())
		if err := ui.RunModel("lifesrc", engine, lang, refreshInterval); err != nil {
			slog.Error("interactive search failed", "error", err)
			return exitIOError
		}
		if opts.savePath != "" {
			if err := saveSearcher(s, opts.savePath); err != nil {
				slog.Error("failed to save search state", "error", err)
				return exitIOError
			}
		}
		return exitCodeForStatus(s.Status())
	}

	return runHeadless(s, opts.savePath, func(search.Status) {})
}

func runHeadless(s *search.Searcher, savePath string, publish func(search.Status)) int {
	status := s.Status()
	for status != search.Found && status != search.NoMoreSolutions {
		status = s.Step(runStepBudget)
		publish(status)
	}

	fmt.Println(renderSnapshots(s))
	fmt.Printf("status: %s  steps: %d  decisions: %d  conflicts: %d  population: %d\n",
		status, s.Stats().Steps, s.Stats().Decisions, s.Stats().Conflicts, s.Population())

	if savePath != "" {
		if err := saveSearcher(s, savePath); err != nil {
			slog.Error("failed to save search state", "error", err)
			return exitIOError
		}
	}

	return exitCodeForStatus(status)
}

func saveSearcher(s *search.Searcher, path string) error {
	f, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("create save file %s: %w", path, err)
	}
	defer f.Close()
	return s.SaveState(f)
}

func exitCodeForStatus(status search.Status) int {
	switch status {
	case search.Found:
		return exitSolutionFound
	case search.NoMoreSolutions:
		return exitExhausted
	default:
		return exitInvalidConfig
	}
}

// renderSnapshots renders every phase of the front box as a plain
// text grid, for headless runs that have no TUI to draw to.
func renderSnapshots(s *search.Searcher) string {
	var out string
	for phase := 0; phase < s.Period(); phase++ {
		snap := s.Snapshot(phase)
		out += fmt.Sprintf("phase %d/%d\n", phase, s.Period())
		for y := 0; y < snap.Height; y++ {
			for x := 0; x < snap.Width; x++ {
				out += string(glyphFor(snap.At(x, y)))
			}
			out += "\n"
		}
	}
	return out
}

func glyphFor(s rule.CellState) rune {
	switch s {
	case rule.Alive:
		return '#'
	case rule.Dead:
		return '.'
	default:
		return '?'
	}
}
