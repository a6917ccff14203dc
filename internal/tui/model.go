package tui

import (
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/app"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Screen represents the current active screen
type Screen int

const (
	ScreenEditor Screen = iota
	ScreenDrafts
)

// String returns the screen name
func (s Screen) String() string {
	switch s {
	case ScreenEditor:
		return "Editor"
	case ScreenDrafts:
		return "Drafts"
	default:
		return "Unknown"
	}
}

// Model is the root Bubble Tea model
type Model struct {
	app           *app.App
	currentScreen Screen
	width         int
	height        int

	// Screen models (lazy initialized)
	editor tea.Model
	drafts tea.Model

	// Draft store change notifications
	draftEvents <-chan struct{}
	unsubscribe func()

	// Error state
	err error
}

// New creates a new root model
func New(a *app.App) Model {
	ch, cancel := a.Drafts.Notifier().Subscribe()
	ed := NewEditorModel(a)
	return Model{
		app:           a,
		currentScreen: ScreenEditor,
		editor:        ed,
		draftEvents:   ch,
		unsubscribe:   cancel,
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.listenForDraftChanges(),
	}
	if m.editor != nil {
		cmds = append(cmds, m.editor.Init())
	}
	return tea.Batch(cmds...)
}

// listenForDraftChanges blocks on the notifier channel and converts a wakeup
// into a DraftsChangedMsg. Re-issued after every delivery so the subscription
// stays live for the life of the program.
func (m *Model) listenForDraftChanges() tea.Cmd {
	ch := m.draftEvents
	return func() tea.Msg {
		_, ok := <-ch
		if !ok {
			return nil
		}
		return DraftsChangedMsg{}
	}
}

// initScreen lazy-initializes a screen on first visit,
// and sends a RefreshDataMsg on subsequent visits so screens reload data.
func (m *Model) initScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenEditor:
		if m.editor == nil {
			m.editor = NewEditorModel(m.app)
			return m.editor.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	case ScreenDrafts:
		if m.drafts == nil {
			m.drafts = NewDraftsModel(m.app)
			return m.drafts.Init()
		}
		return func() tea.Msg { return RefreshDataMsg{} }
	}
	return nil
}

// InputCapturer is implemented by screens that capture keyboard input (e.g. text forms).
// When active, global navigation keys (E, D, Q) are suppressed.
type InputCapturer interface {
	IsCapturingInput() bool
}

// activeScreenCapturingInput returns true if the current screen is capturing text input
func (m *Model) activeScreenCapturingInput() bool {
	var screen tea.Model
	switch m.currentScreen {
	case ScreenEditor:
		screen = m.editor
	case ScreenDrafts:
		screen = m.drafts
	}
	if ic, ok := screen.(InputCapturer); ok {
		return ic.IsCapturingInput()
	}
	return false
}

// Update implements tea.Model - routes keys to screens
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Skip global navigation when a screen is capturing text input
		if !m.activeScreenCapturingInput() {
			switch {
			case key.Matches(msg, DefaultKeyMap.Quit):
				if m.unsubscribe != nil {
					m.unsubscribe()
				}
				return m, tea.Quit

			case key.Matches(msg, DefaultKeyMap.Editor):
				m.currentScreen = ScreenEditor
				cmd := m.initScreen(ScreenEditor)
				return m, cmd

			case key.Matches(msg, DefaultKeyMap.Drafts):
				m.currentScreen = ScreenDrafts
				cmd := m.initScreen(ScreenDrafts)
				return m, cmd
			}
		}

	case SwitchScreenMsg:
		m.currentScreen = msg.Screen
		cmd := m.initScreen(msg.Screen)
		return m, cmd

	case DraftsChangedMsg:
		// Fan the change out to every initialized screen, then re-arm the listener
		cmds := []tea.Cmd{m.listenForDraftChanges()}
		var cmd tea.Cmd
		if m.editor != nil {
			m.editor, cmd = m.editor.Update(msg)
			cmds = append(cmds, cmd)
		}
		if m.drafts != nil {
			m.drafts, cmd = m.drafts.Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case LoadDraftMsg:
		// Draft selection always lands on the editor screen
		m.currentScreen = ScreenEditor
		if m.editor == nil {
			m.editor = NewEditorModel(m.app)
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	// Route message to current screen
	var cmd tea.Cmd
	switch m.currentScreen {
	case ScreenEditor:
		if m.editor != nil {
			m.editor, cmd = m.editor.Update(msg)
		}
	case ScreenDrafts:
		if m.drafts != nil {
			m.drafts, cmd = m.drafts.Update(msg)
		}
	}

	return m, cmd
}

// View implements tea.Model - renders header + current screen + footer
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("billcraft - %s", m.currentScreen.String()))

	footer := footerStyle.Render("[E]ditor  [D]rafts  [Q]uit")
	if m.activeScreenCapturingInput() {
		footer = footerStyle.Render("esc to leave the form, then [E]ditor  [D]rafts  [Q]uit")
	}

	var content string
	switch m.currentScreen {
	case ScreenEditor:
		if m.editor != nil {
			content = m.editor.View()
		} else {
			content = "Loading..."
		}
	case ScreenDrafts:
		if m.drafts != nil {
			content = m.drafts.View()
		} else {
			content = "Loading..."
		}
	}

	errorDisplay := ""
	if m.err != nil {
		errorDisplay = lipgloss.NewStyle().
			Foreground(errorColor).
			Render(fmt.Sprintf("\nError: %s", m.err.Error()))
	}

	// Divider line between header and content
	innerWidth := m.width - 6 // account for border (2) + padding (4)
	if innerWidth < 20 {
		innerWidth = 20
	}
	dividerWidth := innerWidth - 12
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().Foreground(borderColor).Render(
		strings.Repeat("─", dividerWidth),
	)

	body := fmt.Sprintf("%s\n%s\n\n%s%s\n\n%s\n%s", header, divider, content, errorDisplay, divider, footer)

	frame := appBorderStyle.
		Width(innerWidth).
		Height(m.height - 4) // leave room for border top/bottom
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, frame.Render(body))
}

// Run starts the TUI
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
