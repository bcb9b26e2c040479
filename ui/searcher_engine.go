package ui

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/lipgloss"

	"github.com/telepair/lifesrc/engine/rule"
	"github.com/telepair/lifesrc/engine/search"
)

// Default glyphs and colors for the three cell states.
const (
	DefaultAliveChar   rune = '█'
	DefaultDeadChar    rune = ' '
	DefaultUnknownChar rune = '·'

	DefaultAliveColor   = lipgloss.Color("#00FF5F")
	DefaultUnknownColor = lipgloss.Color("#5C6773")
)

// DefaultStepBudget is the number of propagation/decision steps a
// single tick asks the Searcher to perform before rendering again.
const DefaultStepBudget = 200

// SearcherEngine adapts a search.Searcher to the StepEngine contract:
// every tick it asks the Searcher for a bounded amount of work, and it
// renders whichever phase is currently selected.
type SearcherEngine struct {
	searcher *search.Searcher
	log      *slog.Logger

	stepBudget int
	totalSteps int

	phase   int
	screen  *Screen
	stopped bool
}

// NewSearcherEngine wraps an already-constructed Searcher. stepBudget
// is the amount of work requested per tick; a non-positive value falls
// back to DefaultStepBudget.
func NewSearcherEngine(s *search.Searcher, stepBudget int, log *slog.Logger) *SearcherEngine {
	if stepBudget <= 0 {
		stepBudget = DefaultStepBudget
	}
	if log == nil {
		log = slog.Default()
	}
	e := &SearcherEngine{
		searcher:   s,
		log:        log,
		stepBudget: stepBudget,
		screen:     NewScreen(s.Snapshot(0).Height, s.Snapshot(0).Width),
	}
	e.paintScreen()
	return e
}

// Step advances the search by one tick's budget and repaints the
// current phase. It returns false once the search reports Found or a
// terminal status (NoMoreSolutions, InvalidConfig), so the caller
// pauses rather than spinning on an already-decided outcome.
func (e *SearcherEngine) Step() (int, bool) {
	if e.stopped || e.searcher.Status() == search.NoMoreSolutions {
		return e.totalSteps, false
	}
	status := e.searcher.Step(e.stepBudget)
	e.totalSteps++
	e.paintScreen()
	switch status {
	case search.Found, search.NoMoreSolutions, search.InvalidConfig:
		return e.totalSteps, false
	default:
		return e.totalSteps, true
	}
}

// View renders the currently selected phase.
func (e *SearcherEngine) View() string {
	return e.screen.View()
}

func (e *SearcherEngine) paintScreen() {
	snap := e.searcher.Snapshot(e.phase)
	for y := 0; y < snap.Height; y++ {
		row := make([]rune, snap.Width)
		for x := 0; x < snap.Width; x++ {
			row[x] = glyphFor(snap.At(x, y))
		}
		e.screen.SetRow(y, row)
	}
}

func glyphFor(s rule.CellState) rune {
	switch s {
	case rule.Alive:
		return DefaultAliveChar
	case rule.Unknown:
		return DefaultUnknownChar
	default:
		return DefaultDeadChar
	}
}

// Header reports the phase currently shown, out of the last phase
// index (Period-1).
func (e *SearcherEngine) Header(lang Language) string {
	if lang == Chinese {
		return fmt.Sprintf("模式搜索 — 第 %d/%d 相", e.phase, e.searcher.Period()-1)
	}
	return fmt.Sprintf("pattern search — phase %d/%d", e.phase, e.searcher.Period()-1)
}

// Status reports search progress: outcome status, population, and
// node-visit counters.
func (e *SearcherEngine) Status(lang Language) []Status {
	stats := e.searcher.Stats()
	status := e.searcher.Status()
	if lang == Chinese {
		return []Status{
			{Label: "状态", Value: status.String()},
			{Label: "种群", Value: fmt.Sprintf("%d", e.searcher.Population())},
			{Label: "决策", Value: fmt.Sprintf("%d", stats.Decisions)},
			{Label: "冲突", Value: fmt.Sprintf("%d", stats.Conflicts)},
		}
	}
	return []Status{
		{Label: "Status", Value: status.String()},
		{Label: "Population", Value: fmt.Sprintf("%d", e.searcher.Population())},
		{Label: "Decisions", Value: fmt.Sprintf("%d", stats.Decisions)},
		{Label: "Conflicts", Value: fmt.Sprintf("%d", stats.Conflicts)},
	}
}

// HandleKeys advertises the phase-cycling bindings.
func (e *SearcherEngine) HandleKeys(lang Language) []Control {
	if lang == Chinese {
		return []Control{
			{Keys: []string{"]", "n"}, Label: "下一相"},
			{Keys: []string{"[", "p"}, Label: "上一相"},
		}
	}
	return []Control{
		{Keys: []string{"]", "n"}, Label: "Next phase"},
		{Keys: []string{"[", "p"}, Label: "Prev phase"},
	}
}

// Handle cycles the rendered phase on the bound keys.
func (e *SearcherEngine) Handle(key string) (bool, error) {
	period := e.searcher.Period()
	switch key {
	case "]", "n":
		e.phase = (e.phase + 1) % period
		e.paintScreen()
		return true, nil
	case "[", "p":
		e.phase = (e.phase - 1 + period) % period
		e.paintScreen()
		return true, nil
	}
	return false, nil
}

// Reset adjusts the rendered viewport; the search box itself is fixed
// at construction time and is never resized mid-search.
func (e *SearcherEngine) Reset(height, width int) error {
	e.screen.SetSize(width, height)
	e.paintScreen()
	return nil
}

// IsFinished reports whether the search has reached a terminal status.
func (e *SearcherEngine) IsFinished() bool {
	status := e.searcher.Status()
	return status == search.NoMoreSolutions || status == search.InvalidConfig
}

// Stop marks the engine as no longer steppable. The underlying
// Searcher holds no external resources to release.
func (e *SearcherEngine) Stop() {
	e.stopped = true
	e.log.Debug("searcher engine stopped", "steps", e.totalSteps)
}
