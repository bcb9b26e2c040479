package ui

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	// DefaultLang is the default language setting.
	DefaultLang = "en"
	// DefaultRefreshInterval is the default tick interval driving Step.
	DefaultRefreshInterval = 150 * time.Millisecond
	// MinRefreshInterval bounds how fast the tick rate can be sped up to.
	MinRefreshInterval = 10 * time.Millisecond

	// DefaultWidth and DefaultHeight seed the viewport before the first
	// tea.WindowSizeMsg arrives.
	DefaultWidth  = 80
	DefaultHeight = 24
)

var (
	keepHeight = 5 // header, status, control line, plus one line of padding each side

	headerLineStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFFFFF")).
				Background(lipgloss.Color("#16213E")).
				MarginBottom(1).
				Align(lipgloss.Center)
	statusLineStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.Color("#94A3B8")).
				Background(lipgloss.Color("#0F3460")).
				Bold(true)
	controlLineStyle = lipgloss.NewStyle().
				Padding(0, 2).
				Foreground(lipgloss.Color("#94A3B8")).
				Background(lipgloss.Color("#0F3460")).
				Bold(true)

	statusKVSplit    = ": "
	statusItemSplit  = " | "
	controlKVSplit   = ": "
	controlItemSplit = " | "
)

// Model is a bubbletea model that drives a StepEngine on a timer and
// lets the terminal user pause, rewind phases, and adjust speed.
type Model struct {
	engine StepEngine

	language    Language
	refreshRate time.Duration

	totalSteps int
	paused     bool
	height     int
	width      int

	buffer        strings.Builder
	statusBuffer  strings.Builder
	controlBuffer strings.Builder
	controlKeys   map[string]struct{}
	logger        *slog.Logger
}

// RunModel runs engine inside a full-screen bubbletea program until the
// user quits.
func RunModel(appName string, engine StepEngine, defaultLang string, defaultRefreshInterval time.Duration) error {
	if appName == "" {
		return fmt.Errorf("ui: appName cannot be empty")
	}
	if engine == nil {
		return fmt.Errorf("ui: engine cannot be nil")
	}
	if defaultRefreshInterval <= 0 {
		defaultRefreshInterval = DefaultRefreshInterval
	}

	logger := slog.With("app", appName)
	model := &Model{
		engine:      engine,
		language:    ToLanguage(defaultLang),
		refreshRate: defaultRefreshInterval,
		width:       DefaultWidth,
		height:      DefaultHeight,
		controlKeys: make(map[string]struct{}),
		logger:      logger,
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited with error", "error", err)
		return fmt.Errorf("ui: run: %w", err)
	}
	logger.Debug("tui finished")
	return nil
}

type tickMsg time.Time

// Init starts the tick loop.
func (m *Model) Init() tea.Cmd {
	return tea.Tick(m.refreshRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Update dispatches bubbletea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tickMsg:
		return m.handleTick()
	}
	return m, nil
}

// View renders the full screen.
func (m *Model) View() string {
	return m.render()
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.height = msg.Height
	m.width = msg.Width

	engineHeight := max(m.height-keepHeight, 1)
	engineWidth := max(m.width, 1)
	if err := m.engine.Reset(engineHeight, engineWidth); err != nil {
		m.logger.Error("engine viewport resize failed", "height", engineHeight, "width", engineWidth, "error", err)
	}
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := strings.ToLower(msg.String())

	if _, ok := m.controlKeys[key]; ok {
		if handled, err := m.engine.Handle(key); err != nil {
			m.logger.Error("engine key handler failed", "key", key, "error", err)
			return m, tea.Quit
		} else if handled {
			return m, nil
		}
	}

	switch key {
	case "ctrl+c", "q", "esc":
		m.engine.Stop()
		return m, tea.Quit
	case " ", "enter":
		m.paused = !m.paused
	case "l":
		if m.language == English {
			m.language = Chinese
		} else {
			m.language = English
		}
	case "+", "=", "up":
		m.refreshRate = max(m.refreshRate/2, MinRefreshInterval)
	case "-", "_", "down":
		m.refreshRate = m.refreshRate * 2
	}

	return m, nil
}

func (m *Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.paused {
		totalSteps, ok := m.engine.Step()
		m.totalSteps = totalSteps
		if !ok || m.engine.IsFinished() {
			m.paused = true
		}
	}
	return m, tea.Tick(m.refreshRate, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) render() string {
	m.buffer.Reset()
	m.buffer.WriteString(headerLineStyle.Width(m.width).Render(m.engine.Header(m.language)))
	m.buffer.WriteString("\n")
	m.buffer.WriteString(m.renderStatus())
	m.buffer.WriteString("\n")
	m.buffer.WriteString(m.engine.View())
	m.buffer.WriteString("\n")
	m.buffer.WriteString(m.renderControlLine())
	return m.buffer.String()
}

func (m *Model) renderStatus() string {
	m.statusBuffer.Reset()

	allStatus := append(m.engine.Status(m.language), m.modelStatus(m.language)...)
	if len(allStatus) == 0 {
		return ""
	}

	writeStatusItem := func(item Status) {
		m.statusBuffer.WriteString(item.Label)
		m.statusBuffer.WriteString(statusKVSplit)
		m.statusBuffer.WriteString(item.Value)
	}
	writeStatusItem(allStatus[0])
	for _, item := range allStatus[1:] {
		m.statusBuffer.WriteString(statusItemSplit)
		writeStatusItem(item)
	}
	return statusLineStyle.Width(m.width).Render(m.statusBuffer.String())
}

func (m *Model) modelStatus(lang Language) []Status {
	var statusText string
	switch {
	case m.paused && lang == Chinese:
		statusText = "已暂停"
	case m.paused:
		statusText = "Paused"
	case lang == Chinese:
		statusText = "运行中"
	default:
		statusText = "Running"
	}

	if lang == Chinese {
		return []Status{
			{Label: "节拍", Value: strconv.Itoa(m.totalSteps)},
			{Label: "刷新", Value: m.refreshRate.String()},
			{Label: "模型状态", Value: statusText},
		}
	}
	return []Status{
		{Label: "Ticks", Value: strconv.Itoa(m.totalSteps)},
		{Label: "Refresh", Value: m.refreshRate.String()},
		{Label: "Model", Value: statusText},
	}
}

func (m *Model) renderControlLine() string {
	m.controlBuffer.Reset()
	first := true

	writeControl := func(item Control) {
		if !first {
			m.controlBuffer.WriteString(controlItemSplit)
		}
		m.controlBuffer.WriteString(strings.Join(item.Keys, "/"))
		m.controlBuffer.WriteString(controlKVSplit)
		m.controlBuffer.WriteString(item.Label)
		first = false
	}

	for _, item := range m.engine.HandleKeys(m.language) {
		for _, key := range item.Keys {
			m.controlKeys[strings.ToLower(key)] = struct{}{}
		}
		writeControl(item)
	}
	for _, item := range m.commonControls(m.language) {
		writeControl(item)
	}
	return controlLineStyle.Width(m.width).Render(m.controlBuffer.String())
}

func (m *Model) commonControls(lang Language) []Control {
	if lang == Chinese {
		return []Control{
			{Keys: []string{"L"}, Label: "语言"},
			{Keys: []string{"+", "up"}, Label: "加速"},
			{Keys: []string{"-", "down"}, Label: "减速"},
			{Keys: []string{"Space"}, Label: "暂停/继续"},
			{Keys: []string{"Q"}, Label: "退出"},
		}
	}
	return []Control{
		{Keys: []string{"L"}, Label: "Language"},
		{Keys: []string{"+", "Up"}, Label: "Speed +"},
		{Keys: []string{"-", "Down"}, Label: "Speed -"},
		{Keys: []string{"Space"}, Label: "Pause/Continue"},
		{Keys: []string{"Q"}, Label: "Quit"},
	}
}
