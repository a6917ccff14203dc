// Package editor owns the working invoice and its editing lifecycle: field
// and item mutation with synchronous total recomputation, the
// editing/previewing mode switch, and the validation gates in front of
// preview and submit.
package editor

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/andy/billcraft/internal/domain"
	"github.com/andy/billcraft/internal/store"
	"github.com/sirupsen/logrus"
)

// Mode is the editor's current state.
type Mode int

const (
	ModeEditing Mode = iota
	ModePreviewing
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeEditing:
		return "Editing"
	case ModePreviewing:
		return "Previewing"
	default:
		return "Unknown"
	}
}

// ItemColumn identifies which line-item column a form edit targets.
type ItemColumn int

const (
	ItemDescription ItemColumn = iota
	ItemQuantity
	ItemPrice
)

// Config carries the invoice defaults the editor seeds new invoices with.
type Config struct {
	NumberPrefix   string  // e.g. "INV"
	DueDays        int     // due date offset for new invoices
	DefaultTaxRate float64 // percent
}

// Editor is the invoice editing state machine. It is single-threaded by
// design: the TUI event loop is the only caller.
type Editor struct {
	cfg     Config
	drafts  *store.DraftStore
	log     *logrus.Logger
	invoice *domain.Invoice
	mode    Mode
	errors  domain.FieldErrors
}

// New creates an editor holding a fresh blank invoice.
func New(drafts *store.DraftStore, logger *logrus.Logger, cfg Config) *Editor {
	if cfg.DueDays <= 0 {
		cfg.DueDays = 30
	}
	e := &Editor{
		cfg:    cfg,
		drafts: drafts,
		log:    logger,
		errors: make(domain.FieldErrors),
	}
	e.reset(e.nextNumber())
	return e
}

func (e *Editor) reset(invoiceNumber string) {
	inv := domain.NewInvoice(invoiceNumber, e.cfg.DueDays)
	inv.TaxRate = e.cfg.DefaultTaxRate
	inv.Recalculate()
	e.invoice = inv
	e.errors = make(domain.FieldErrors)
	e.mode = ModeEditing
}

// nextNumber generates a human-facing invoice number; the user can overwrite
// it freely.
func (e *Editor) nextNumber() string {
	prefix := e.cfg.NumberPrefix
	if prefix == "" {
		prefix = "INV"
	}
	return fmt.Sprintf("%s-%04d", prefix, rand.Intn(10000))
}

// Invoice returns the working invoice.
func (e *Editor) Invoice() *domain.Invoice {
	return e.invoice
}

// Mode returns the current editor mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Errors returns the field errors recorded by the last failed gate.
func (e *Editor) Errors() domain.FieldErrors {
	return e.errors
}

// FieldError returns the recorded error for one field key, if any.
func (e *Editor) FieldError(key string) string {
	return e.errors[key]
}

// ParseAmount is the explicit input-sanitization boundary for numeric form
// fields: input that fails to parse becomes 0 rather than an error.
func ParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// SetField updates one scalar or nested field from form input, clears any
// validation error recorded for it, and stamps the edit time. Numeric fields
// are coerced through ParseAmount and trigger recomputation of the derived
// totals.
func (e *Editor) SetField(field, value string) {
	inv := e.invoice
	switch field {
	case domain.FieldInvoiceNumber:
		inv.InvoiceNumber = value
	case domain.FieldDate:
		inv.Date = value
	case domain.FieldDueDate:
		inv.DueDate = value
	case domain.FieldClientName:
		inv.Client.Name = value
	case domain.FieldClientEmail:
		inv.Client.Email = value
	case domain.FieldClientAddress:
		inv.Client.Address = value
	case domain.FieldNotes:
		inv.Notes = value
	case domain.FieldTaxRate:
		inv.TaxRate = ParseAmount(value)
		inv.Recalculate()
	case domain.FieldDiscount:
		inv.Discount = ParseAmount(value)
		inv.Recalculate()
	default:
		e.log.WithField("field", field).Debug("ignoring unknown field")
		return
	}

	delete(e.errors, field)
	inv.Touch()
}

// UpdateItem edits one column of the line item with the given ID and
// recomputes all derived totals.
func (e *Editor) UpdateItem(id int, column ItemColumn, value string) {
	item := e.invoice.Item(id)
	if item == nil {
		return
	}

	switch column {
	case ItemDescription:
		item.Description = value
		e.clearItemError(id)
	case ItemQuantity:
		item.Quantity = ParseAmount(value)
	case ItemPrice:
		item.Price = ParseAmount(value)
	}

	e.invoice.Recalculate()
	e.invoice.Touch()
}

func (e *Editor) clearItemError(id int) {
	for idx, item := range e.invoice.Items {
		if item.ID == id {
			delete(e.errors, domain.ItemDescriptionKey(idx))
			return
		}
	}
}

// AddItem appends a blank line item and returns its ID.
func (e *Editor) AddItem() int {
	id := e.invoice.AddItem()
	e.invoice.Recalculate()
	e.invoice.Touch()
	return id
}

// RemoveItem deletes a line item. Removing the last remaining item is
// rejected (no-op). Returns whether an item was removed.
func (e *Editor) RemoveItem(id int) bool {
	if !e.invoice.RemoveItem(id) {
		return false
	}
	e.invoice.Recalculate()
	e.invoice.Touch()
	return true
}

// Preview attempts the Editing -> Previewing transition. It is gated by
// validation: on failure the editor stays in Editing with the full error set
// recorded, and false is returned.
func (e *Editor) Preview() bool {
	if e.mode != ModeEditing {
		return true
	}
	if errs := e.invoice.Validate(); !errs.OK() {
		e.errors = errs
		return false
	}
	e.errors = make(domain.FieldErrors)
	e.mode = ModePreviewing
	return true
}

// Edit returns to Editing mode unconditionally.
func (e *Editor) Edit() {
	e.mode = ModeEditing
}

// SaveDraft snapshots the current invoice into the draft store. There is no
// validation gate; incomplete invoices are exactly what drafts are for.
func (e *Editor) SaveDraft(ctx context.Context) {
	e.invoice.Touch()
	e.drafts.Upsert(ctx, e.invoice.Clone())
}

// LoadDraft replaces the working invoice with a stored draft and returns to
// Editing mode. The draft's derived totals are recomputed so a hand-edited or
// stale blob cannot smuggle in inconsistent totals.
func (e *Editor) LoadDraft(d *domain.Invoice) {
	inv := d.Clone()
	if len(inv.Items) == 0 {
		inv.Items = []domain.LineItem{{ID: 1, Quantity: 1}}
	}
	inv.Recalculate()
	inv.Touch()
	e.invoice = inv
	e.errors = make(domain.FieldErrors)
	e.mode = ModeEditing
}

// Submit finalizes the invoice. It is gated by the same validation as
// Preview. On success the finalized invoice is logged, its draft (if any) is
// removed from the store, and the editor resets to a fresh invoice with the
// next generated number — client and dates are kept for the common
// same-client follow-up, while items, totals and notes reset. The finalized
// snapshot is returned so the caller can surface a success message.
func (e *Editor) Submit(ctx context.Context) (*domain.Invoice, bool) {
	if errs := e.invoice.Validate(); !errs.OK() {
		e.errors = errs
		return nil, false
	}

	finalized := e.invoice.Clone()
	e.log.WithFields(logrus.Fields{
		"id":            finalized.ID,
		"invoiceNumber": finalized.InvoiceNumber,
		"client":        finalized.Client.Name,
		"total":         finalized.Total,
	}).Info("invoice submitted")

	e.drafts.Delete(ctx, finalized.ID)

	client := e.invoice.Client
	date, dueDate := e.invoice.Date, e.invoice.DueDate
	e.reset(e.nextNumber())
	e.invoice.Client = client
	e.invoice.Date = date
	e.invoice.DueDate = dueDate

	return finalized, true
}
