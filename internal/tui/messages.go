package tui

import "github.com/andy/billcraft/internal/domain"

// SwitchScreenMsg requests a screen change
type SwitchScreenMsg struct {
	Screen Screen
}

// RefreshDataMsg requests data refresh
type RefreshDataMsg struct{}

// ErrorMsg carries error information
type ErrorMsg struct {
	Err error
}

// DraftsChangedMsg signals that the draft store changed; views holding draft
// data should re-read it. Emitted by the notifier listener in the root model.
type DraftsChangedMsg struct{}

// LoadDraftMsg asks the editor screen to replace its invoice with a draft
type LoadDraftMsg struct {
	Draft domain.Invoice
}
