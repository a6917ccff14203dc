package tui

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/andy/billcraft/internal/app"
	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/editor"
	"github.com/andy/billcraft/internal/render"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// fieldRef maps a form input back to the invoice field it edits. Scalar
// fields carry a domain field key; line-item fields carry the item ID and
// column instead.
type fieldRef struct {
	key    string // domain field key, "" for item fields
	itemID int    // >0 for item fields
	column editor.ItemColumn
	label  string
	errKey string // validation error key, "" when the field is never flagged
}

// EditorModel is the invoice editing screen: a form over the working invoice
// in editing mode, a rendered invoice in preview mode.
type EditorModel struct {
	app *app.App

	fields []textinput.Model
	refs   []fieldRef
	focus  int

	// capturing is true while a text input has focus; esc releases it so the
	// global navigation keys work again
	capturing bool

	statusMsg string
	err       error
}

type pdfExportedMsg struct {
	path string
	err  error
}

// NewEditorModel creates the editor screen model
func NewEditorModel(a *app.App) tea.Model {
	m := &EditorModel{app: a}
	m.buildForm()
	return m
}

// IsCapturingInput returns true while a form field has focus. Preview mode
// always captures: its keys (e, s, x) collide with the global navigation.
func (m *EditorModel) IsCapturingInput() bool {
	if m.app.Editor.Mode() == editor.ModePreviewing {
		return true
	}
	return m.capturing
}

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

func newInput(placeholder string, limit, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = width
	return ti
}

// buildForm rebuilds the whole input set from the working invoice. Called on
// creation and after anything that changes the form's shape: add/remove item,
// loading a draft, a successful submit.
func (m *EditorModel) buildForm() {
	inv := m.app.Editor.Invoice()

	m.fields = m.fields[:0]
	m.refs = m.refs[:0]

	add := func(ref fieldRef, ti textinput.Model, value string) {
		ti.SetValue(value)
		m.refs = append(m.refs, ref)
		m.fields = append(m.fields, ti)
	}

	add(fieldRef{key: domain.FieldInvoiceNumber, label: "Invoice #:", errKey: domain.FieldInvoiceNumber},
		newInput("INV-0001", 40, 20), inv.InvoiceNumber)
	add(fieldRef{key: domain.FieldDate, label: "Date:", errKey: domain.FieldDate},
		newInput(domain.DateLayout, 10, 14), inv.Date)
	add(fieldRef{key: domain.FieldDueDate, label: "Due date:", errKey: domain.FieldDueDate},
		newInput(domain.DateLayout, 10, 14), inv.DueDate)
	add(fieldRef{key: domain.FieldClientName, label: "Client name:", errKey: domain.FieldClientName},
		newInput("Acme Corp", 100, 40), inv.Client.Name)
	add(fieldRef{key: domain.FieldClientEmail, label: "Client email:"},
		newInput("billing@example.com", 100, 40), inv.Client.Email)
	add(fieldRef{key: domain.FieldClientAddress, label: "Client address:"},
		newInput("123 Main St", 200, 50), inv.Client.Address)

	for i, item := range inv.Items {
		add(fieldRef{itemID: item.ID, column: editor.ItemDescription,
			label:  fmt.Sprintf("Item %d description:", i+1),
			errKey: domain.ItemDescriptionKey(i)},
			newInput("Consulting", 200, 50), item.Description)
		add(fieldRef{itemID: item.ID, column: editor.ItemQuantity,
			label: fmt.Sprintf("Item %d quantity:", i+1)},
			newInput("1", 10, 10), render.Quantity(item.Quantity))
		add(fieldRef{itemID: item.ID, column: editor.ItemPrice,
			label: fmt.Sprintf("Item %d price:", i+1)},
			newInput("0.00", 12, 12), fmt.Sprintf("%g", item.Price))
	}

	add(fieldRef{key: domain.FieldNotes, label: "Notes:"},
		newInput("Payment terms, thanks, etc.", 500, 60), inv.Notes)
	add(fieldRef{key: domain.FieldTaxRate, label: "Tax rate (%):"},
		newInput("0", 8, 8), fmt.Sprintf("%g", inv.TaxRate))
	add(fieldRef{key: domain.FieldDiscount, label: "Discount ($):"},
		newInput("0.00", 12, 12), fmt.Sprintf("%g", inv.Discount))

	if m.focus >= len(m.fields) {
		m.focus = 0
	}
	m.capturing = false
}

// pushFocused writes the focused input's current value into the editor so
// totals and error state stay in sync on every keystroke.
func (m *EditorModel) pushFocused() {
	ref := m.refs[m.focus]
	value := m.fields[m.focus].Value()
	if ref.itemID > 0 {
		m.app.Editor.UpdateItem(ref.itemID, ref.column, value)
		return
	}
	m.app.Editor.SetField(ref.key, value)
}

func (m *EditorModel) setFocus(idx int) tea.Cmd {
	m.fields[m.focus].Blur()
	m.focus = idx
	m.capturing = true
	return m.fields[m.focus].Focus()
}

// currentItemID returns the item ID of the focused row, or 0 when the focus
// is not on a line-item field.
func (m *EditorModel) currentItemID() int {
	return m.refs[m.focus].itemID
}

func (m *EditorModel) exportPDF() tea.Cmd {
	inv := m.app.Editor.Invoice().Clone()
	biz := m.app.Business()
	dir := m.app.Config.Invoice.OutputDir
	return func() tea.Msg {
		path := filepath.Join(dir, fmt.Sprintf("%s.pdf", inv.InvoiceNumber))
		err := render.PDF(inv, biz, path)
		return pdfExportedMsg{path: path, err: err}
	}
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadDraftMsg:
		m.app.Editor.LoadDraft(&msg.Draft)
		m.buildForm()
		m.statusMsg = fmt.Sprintf("Loaded draft %s", msg.Draft.InvoiceNumber)
		m.err = nil
		return m, nil

	case RefreshDataMsg:
		// Returning to the screen; re-sync the form with the working invoice
		m.buildForm()
		return m, nil

	case pdfExportedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Exported %s", msg.path)
		return m, nil

	case tea.KeyMsg:
		m.statusMsg = ""
		m.err = nil

		if m.app.Editor.Mode() == editor.ModePreviewing {
			return m.updatePreview(msg)
		}
		return m.updateForm(msg)
	}

	return m, nil
}

func (m *EditorModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "e", "esc":
		m.app.Editor.Edit()
		m.buildForm()
		return m, nil

	case "s":
		finalized, ok := m.app.Editor.Submit(context.Background())
		if !ok {
			// Validation passed to enter preview, but the gate runs again
			m.app.Editor.Edit()
			m.buildForm()
			return m, nil
		}
		m.statusMsg = fmt.Sprintf("Submitted %s (%s)", finalized.InvoiceNumber, render.Money(finalized.Total))
		m.buildForm()
		return m, nil

	case "x":
		return m, m.exportPDF()

	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *EditorModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fieldCount := len(m.fields)

	switch msg.String() {
	case "esc":
		// Release focus so the global navigation keys work
		m.fields[m.focus].Blur()
		m.capturing = false
		return m, nil

	case "tab", "down":
		if !m.capturing {
			return m, m.setFocus(m.focus)
		}
		return m, m.setFocus((m.focus + 1) % fieldCount)

	case "shift+tab", "up":
		if !m.capturing {
			return m, m.setFocus(m.focus)
		}
		return m, m.setFocus((m.focus - 1 + fieldCount) % fieldCount)

	case "enter":
		if !m.capturing {
			return m, m.setFocus(m.focus)
		}
		if m.focus == fieldCount-1 {
			return m, m.setFocus(0)
		}
		return m, m.setFocus(m.focus + 1)

	case "ctrl+s":
		m.app.Editor.SaveDraft(context.Background())
		m.statusMsg = "Draft saved"
		return m, nil

	case "ctrl+p":
		if !m.app.Editor.Preview() {
			m.err = fmt.Errorf("fix the highlighted fields before previewing")
		}
		return m, nil

	case "ctrl+n":
		id := m.app.Editor.AddItem()
		m.buildForm()
		// Land on the new item's description field
		for i, ref := range m.refs {
			if ref.itemID == id && ref.column == editor.ItemDescription {
				return m, m.setFocus(i)
			}
		}
		return m, nil

	case "ctrl+r":
		id := m.currentItemID()
		if id == 0 {
			return m, nil
		}
		if !m.app.Editor.RemoveItem(id) {
			m.err = fmt.Errorf("an invoice needs at least one line item")
			return m, nil
		}
		m.buildForm()
		return m, m.setFocus(0)
	}

	if !m.capturing {
		// Any printable key starts editing the current field
		if msg.Type == tea.KeyRunes {
			cmd := m.setFocus(m.focus)
			var inputCmd tea.Cmd
			m.fields[m.focus], inputCmd = m.fields[m.focus].Update(msg)
			m.pushFocused()
			return m, tea.Batch(cmd, inputCmd)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.fields[m.focus], cmd = m.fields[m.focus].Update(msg)
	m.pushFocused()
	return m, cmd
}

func (m *EditorModel) View() string {
	if m.app.Editor.Mode() == editor.ModePreviewing {
		return m.viewPreview()
	}
	return m.viewForm()
}

func (m *EditorModel) viewForm() string {
	inv := m.app.Editor.Invoice()

	var s string
	s += titleStyle.Render(fmt.Sprintf("Invoice %s", inv.InvoiceNumber)) + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	for i, ref := range m.refs {
		indicator := "  "
		labelStyle := subtitleStyle
		if i == m.focus {
			indicator = "> "
			labelStyle = lipgloss.NewStyle().Bold(true).Foreground(primaryColor)
		}
		s += fmt.Sprintf("%s%s %s", indicator, labelStyle.Render(ref.label), m.fields[i].View())
		if ref.errKey != "" {
			if errMsg := m.app.Editor.FieldError(ref.errKey); errMsg != "" {
				s += "  " + fieldErrorStyle.Render(errMsg)
			}
		}
		s += "\n"
	}

	s += "\n" + m.viewTotals(inv)

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  tab/enter: next field  ctrl+n: add item  ctrl+r: remove item\n"+
		"  ctrl+s: save draft  ctrl+p: preview  esc: leave form")

	return s
}

func (m *EditorModel) viewTotals(inv *domain.Invoice) string {
	var s string
	s += fmt.Sprintf("  Subtotal:   %s\n", render.Money(inv.Subtotal))
	s += fmt.Sprintf("  Tax (%s%%):  %s\n", render.Quantity(inv.TaxRate), render.Money(inv.TaxAmount))
	if inv.Discount != 0 {
		s += fmt.Sprintf("  Discount:  -%s\n", render.Money(inv.Discount))
	}
	s += totalStyle.Render(fmt.Sprintf("  Total:      %s", render.Money(inv.Total)))
	return boxStyle.Render(s)
}

func (m *EditorModel) viewPreview() string {
	inv := m.app.Editor.Invoice()

	var s string
	s += titleStyle.Render("Preview") + "\n\n"

	if m.statusMsg != "" {
		s += lipgloss.NewStyle().Foreground(successColor).
			Render("  "+m.statusMsg) + "\n\n"
	}

	s += boxStyle.Render(render.Text(inv, m.app.Business())) + "\n"

	if m.err != nil {
		s += "\n" + lipgloss.NewStyle().Foreground(errorColor).
			Render(fmt.Sprintf("  %v", m.err)) + "\n"
	}

	s += "\n" + helpStyle.Render("  s: submit  x: export PDF  e/esc: back to editing  q: quit")

	return s
}
