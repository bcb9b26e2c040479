package ui

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockStepEngine is a mock StepEngine used to exercise Model in
// isolation from any real searcher.
type mockStepEngine struct {
	mock.Mock
}

func (m *mockStepEngine) Step() (int, bool) {
	args := m.Called()
	return args.Int(0), args.Bool(1)
}

func (m *mockStepEngine) Header(lang Language) string {
	args := m.Called(lang)
	return args.String(0)
}

func (m *mockStepEngine) Status(lang Language) []Status {
	args := m.Called(lang)
	return args.Get(0).([]Status)
}

func (m *mockStepEngine) HandleKeys(lang Language) []Control {
	args := m.Called(lang)
	return args.Get(0).([]Control)
}

func (m *mockStepEngine) Handle(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

func (m *mockStepEngine) Reset(height, width int) error {
	args := m.Called(height, width)
	return args.Error(0)
}

func (m *mockStepEngine) IsFinished() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockStepEngine) Stop() {
	m.Called()
}

func (m *mockStepEngine) View() string {
	args := m.Called()
	return args.String(0)
}

func newTestModel(engine StepEngine) *Model {
	return &Model{
		engine:      engine,
		language:    English,
		refreshRate: DefaultRefreshInterval,
		width:       DefaultWidth,
		height:      DefaultHeight,
		controlKeys: make(map[string]struct{}),
		logger:      slog.Default(),
	}
}

func TestLanguageConversion(t *testing.T) {
	tests := []struct {
		input    string
		expected Language
	}{
		{"en", English}, {"EN", English}, {"english", English},
		{"zh", Chinese}, {"ZH", Chinese}, {"chinese", Chinese},
		{"", English}, {"fr", English},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ToLanguage(tt.input))
	}
}

func TestModelViewIncludesEngineHeaderAndView(t *testing.T) {
	mockEngine := new(mockStepEngine)
	mockEngine.On("View").Return("::grid::")
	mockEngine.On("Header", English).Return("Search Header")
	mockEngine.On("Status", English).Return([]Status{{Label: "Status", Value: "searching"}})
	mockEngine.On("HandleKeys", English).Return([]Control{{Keys: []string{"n"}, Label: "Next"}})

	m := newTestModel(mockEngine)
	cmd := m.Init()
	assert.NotNil(t, cmd)

	view := m.View()
	assert.Contains(t, view, "Search Header")
	assert.Contains(t, view, "::grid::")
	assert.Contains(t, view, "searching")
}

func TestHandleWindowResizeShrinksByKeepHeight(t *testing.T) {
	mockEngine := new(mockStepEngine)
	mockEngine.On("Reset", 30-keepHeight, 100).Return(nil)

	m := newTestModel(mockEngine)
	updated, cmd := m.handleWindowResize(tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, updated.(*Model).width)
	assert.Equal(t, 30, updated.(*Model).height)
	assert.Nil(t, cmd)
	mockEngine.AssertCalled(t, "Reset", 30-keepHeight, 100)
}

func TestHandleKeyPressTogglesPauseAndSpeed(t *testing.T) {
	tests := []struct {
		name           string
		key            string
		initialPaused  bool
		initialRate    time.Duration
		expectedPaused bool
		expectedRate   time.Duration
	}{
		{"pause with space", " ", false, DefaultRefreshInterval, true, DefaultRefreshInterval},
		{"resume with enter", "enter", true, DefaultRefreshInterval, false, DefaultRefreshInterval},
		{"speed up", "+", false, DefaultRefreshInterval, false, DefaultRefreshInterval / 2},
		{"slow down", "-", false, DefaultRefreshInterval, false, DefaultRefreshInterval * 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(new(mockStepEngine))
			m.paused = tt.initialPaused
			m.refreshRate = tt.initialRate

			_, _ = m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(tt.key)})

			assert.Equal(t, tt.expectedPaused, m.paused)
			assert.Equal(t, tt.expectedRate, m.refreshRate)
		})
	}
}

func TestHandleKeyPressQuitStopsEngine(t *testing.T) {
	mockEngine := new(mockStepEngine)
	mockEngine.On("Stop").Return()
	m := newTestModel(mockEngine)

	_, cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
	mockEngine.AssertCalled(t, "Stop")
}

func TestHandleKeyPressDelegatesBoundKeysToEngine(t *testing.T) {
	mockEngine := new(mockStepEngine)
	mockEngine.On("Handle", "n").Return(true, nil)
	m := newTestModel(mockEngine)
	m.controlKeys["n"] = struct{}{}

	_, cmd := m.handleKeyPress(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	assert.Nil(t, cmd)
	mockEngine.AssertCalled(t, "Handle", "n")
}

func TestHandleTickPausesWhenEngineReportsNotOk(t *testing.T) {
	mockEngine := new(mockStepEngine)
	mockEngine.On("Step").Return(5, false)
	mockEngine.On("IsFinished").Return(false)
	m := newTestModel(mockEngine)

	_, cmd := m.handleTick()
	assert.NotNil(t, cmd)
	assert.True(t, m.paused)
	assert.Equal(t, 5, m.totalSteps)
}

func TestHandleTickSkipsStepWhilePaused(t *testing.T) {
	mockEngine := new(mockStepEngine)
	m := newTestModel(mockEngine)
	m.paused = true

	_, _ = m.handleTick()
	mockEngine.AssertNotCalled(t, "Step")
}

func TestRenderControlLineCollectsEngineAndCommonControls(t *testing.T) {
	mockEngine := new(mockStepEngine)
	mockEngine.On("HandleKeys", English).Return([]Control{{Keys: []string{"n"}, Label: "Next phase"}})
	m := newTestModel(mockEngine)

	line := m.renderControlLine()
	assert.True(t, strings.Contains(line, "Next phase"))
	assert.True(t, strings.Contains(line, "Quit"))
	_, bound := m.controlKeys["n"]
	assert.True(t, bound)
}
