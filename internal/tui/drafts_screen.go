package tui

import (
	"context"
	"fmt"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/render"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// DraftsModel displays the saved drafts with load and delete actions. Deletes
// are two-step: the first press arms a confirmation, y/enter commits it.
type DraftsModel struct {
	app     *app.App
	drafts  []domain.Invoice
	cursor  int
	loading bool
	err     error

	// ID of the draft pending delete confirmation, "" when none
	confirmDelete string

	statusMsg string
}

type draftsDataMsg struct {
	drafts []domain.Invoice
}

type draftDeletedMsg struct {
	number string
}

// NewDraftsModel creates the drafts screen model
func NewDraftsModel(a *app.App) tea.Model {
	return &DraftsModel{
		app:     a,
		loading: true,
	}
}

func (m *DraftsModel) Init() tea.Cmd {
	return m.loadDrafts()
}

func (m *DraftsModel) loadDrafts() tea.Cmd {
	return func() tea.Msg {
		drafts := m.app.Drafts.List(context.Background())
		return draftsDataMsg{drafts: drafts}
	}
}

func (m *DraftsModel) deleteDraft(d domain.Invoice) tea.Cmd {
	return func() tea.Msg {
		m.app.Drafts.Delete(context.Background(), d.ID)
		return draftDeletedMsg{number: d.InvoiceNumber}
	}
}

func (m *DraftsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshDataMsg, DraftsChangedMsg:
		m.loading = true
		return m, m.loadDrafts()

	case draftsDataMsg:
		m.loading = false
		m.drafts = msg.drafts
		if m.cursor >= len(m.drafts) {
			m.cursor = max(0, len(m.drafts)-1)
		}
		// Drop a stale confirmation if the draft vanished underneath it
		if m.confirmDelete != "" && m.findDraft(m.confirmDelete) == nil {
			m.confirmDelete = ""
		}
		return m, nil

	case draftDeletedMsg:
		m.statusMsg = fmt.Sprintf("Deleted draft %s", msg.number)
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		m.statusMsg = ""
		m.err = nil

		// Confirmation takes over the keyboard until resolved
		if m.confirmDelete != "" {
			switch msg.String() {
			case "y", "enter":
				d := m.findDraft(m.confirmDelete)
				m.confirmDelete = ""
				if d == nil {
					return m, nil
				}
				return m, m.deleteDraft(*d)
			case "n", "esc":
				m.confirmDelete = ""
				return m, nil
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.drafts)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.drafts) > 0 && m.cursor < len(m.drafts) {
				draft := m.drafts[m.cursor].Clone()
				return m, func() tea.Msg { return LoadDraftMsg{Draft: *draft} }
			}
		case key.Matches(msg, DefaultKeyMap.Delete):
			if len(m.drafts) > 0 && m.cursor < len(m.drafts) {
				m.confirmDelete = m.drafts[m.cursor].ID
			}
		}
	}

	return m, nil
}

func (m *DraftsModel) findDraft(id string) *domain.Invoice {
	for i := range m.drafts {
		if m.drafts[i].ID == id {
			return &m.drafts[i]
		}
	}
	return nil
}

func (m *DraftsModel) View() string {
	if m.loading {
		return "Loading drafts..."
	}

	var s string
	s += titleStyle.Render("Saved Drafts") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	if m.err != nil {
		s += lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  Error: %v", m.err)) + "\n\n"
	}

	if len(m.drafts) == 0 {
		s += subtitleStyle.Render("  No drafts yet. Save one from the editor with ctrl+s.") + "\n"
		return s
	}

	for i := range m.drafts {
		s += m.renderDraft(i, &m.drafts[i]) + "\n"
	}

	s += "\n" + helpStyle.Render("  j/k: navigate  enter: open in editor  x: delete")

	return s
}

func (m *DraftsModel) renderDraft(index int, d *domain.Invoice) string {
	selected := index == m.cursor

	indicator := "  "
	if selected {
		indicator = "> "
	}

	client := d.Client.Name
	if client == "" {
		client = "(no client)"
	}

	line1 := fmt.Sprintf("%s%s  %s", indicator, d.InvoiceNumber, truncateStr(client, 30))
	line2 := fmt.Sprintf("    %d item(s)  %s  edited %s",
		len(d.Items), render.Money(d.Total), formatEdited(d.LastEdited))

	if m.confirmDelete == d.ID {
		warn := lipgloss.NewStyle().Foreground(warningColor).
			Render(fmt.Sprintf("    Delete draft %s? y/n", d.InvoiceNumber))
		return line1 + "\n" + warn
	}

	nameStyle := lipgloss.NewStyle()
	if selected {
		nameStyle = nameStyle.Bold(true).Foreground(primaryColor)
	}

	return nameStyle.Render(line1) + "\n" + subtitleStyle.Render(line2)
}
