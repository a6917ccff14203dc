package domain

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// DateLayout is the calendar-date format used throughout the invoice
// (issue date, due date, persisted drafts).
const DateLayout = "2006-01-02"

// Client is the party being billed, embedded in the invoice.
type Client struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// LineItem is a single billable row. ID is unique within the invoice only.
// Total is derived (Quantity * Price) and maintained by Recalculate.
type LineItem struct {
	ID          int     `json:"id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	Price       float64 `json:"price"`
	Total       float64 `json:"total"`
}

// Invoice is the central entity of the editor. Subtotal, TaxAmount and Total
// are derived fields; TaxRate (percent) and Discount (absolute amount) are
// user inputs. The JSON shape doubles as the persisted draft layout.
type Invoice struct {
	ID            string     `json:"id"`
	InvoiceNumber string     `json:"invoiceNumber"`
	Date          string     `json:"date"`
	DueDate       string     `json:"dueDate"`
	Client        Client     `json:"client"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	TaxRate       float64    `json:"taxRate"`
	TaxAmount     float64    `json:"taxAmount"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	Notes         string     `json:"notes"`
	LastEdited    time.Time  `json:"lastEdited"`
}

// NewID generates an opaque invoice identifier.
func NewID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to a
		// timestamp so creation still works.
		return hex.EncodeToString([]byte(time.Now().Format("20060102150405.000")))
	}
	return hex.EncodeToString(b)
}

// NewInvoice creates a blank invoice: fresh ID, today's issue date, due date
// dueDays out, and a single empty line item.
func NewInvoice(invoiceNumber string, dueDays int) *Invoice {
	now := time.Now()
	return &Invoice{
		ID:            NewID(),
		InvoiceNumber: invoiceNumber,
		Date:          now.Format(DateLayout),
		DueDate:       now.AddDate(0, 0, dueDays).Format(DateLayout),
		Items: []LineItem{
			{ID: 1, Quantity: 1},
		},
		LastEdited: now,
	}
}

// Recalculate rebuilds every derived field in one pass: each item's total,
// then subtotal, tax amount and grand total. Callers must invoke it after any
// change to items, tax rate or discount so the derived fields never go stale
// against each other.
func (i *Invoice) Recalculate() {
	for idx := range i.Items {
		item := &i.Items[idx]
		item.Total = ItemTotal(item.Quantity, item.Price)
	}
	i.Subtotal = Subtotal(i.Items)
	i.TaxAmount = TaxAmount(i.Subtotal, i.TaxRate)
	i.Total = GrandTotal(i.Subtotal, i.TaxAmount, i.Discount)
}

// Touch stamps the last-edited time.
func (i *Invoice) Touch() {
	i.LastEdited = time.Now()
}

// NextItemID returns max(existing ids, 0) + 1. IDs are never reused while
// items are only appended.
func (i *Invoice) NextItemID() int {
	maxID := 0
	for _, item := range i.Items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	return maxID + 1
}

// AddItem appends a new empty line item (quantity 1) and returns its ID.
func (i *Invoice) AddItem() int {
	id := i.NextItemID()
	i.Items = append(i.Items, LineItem{ID: id, Quantity: 1})
	return id
}

// RemoveItem deletes the item with the given ID. Removing the last remaining
// item is a no-op; the invoice always keeps at least one row. Returns whether
// an item was removed.
func (i *Invoice) RemoveItem(id int) bool {
	if len(i.Items) <= 1 {
		return false
	}
	for idx, item := range i.Items {
		if item.ID == id {
			i.Items = append(i.Items[:idx], i.Items[idx+1:]...)
			return true
		}
	}
	return false
}

// Item returns a pointer to the item with the given ID, or nil.
func (i *Invoice) Item(id int) *LineItem {
	for idx := range i.Items {
		if i.Items[idx].ID == id {
			return &i.Items[idx]
		}
	}
	return nil
}

// Clone returns a deep copy, so a draft snapshot is isolated from further
// edits to the working invoice.
func (i *Invoice) Clone() *Invoice {
	cp := *i
	cp.Items = make([]LineItem, len(i.Items))
	copy(cp.Items, i.Items)
	return &cp
}
