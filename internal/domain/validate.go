package domain

import (
	"fmt"
	"strings"
)

// Field keys used in validation error maps and by the editor when clearing
// per-field errors. Item descriptions use ItemDescriptionKey.
const (
	FieldInvoiceNumber = "invoiceNumber"
	FieldDate          = "date"
	FieldDueDate       = "dueDate"
	FieldClientName    = "client.name"
	FieldClientEmail   = "client.email"
	FieldClientAddress = "client.address"
	FieldNotes         = "notes"
	FieldTaxRate       = "taxRate"
	FieldDiscount      = "discount"
)

// ItemDescriptionKey returns the error-map key for the description of the
// item at the given display position.
func ItemDescriptionKey(index int) string {
	return fmt.Sprintf("items[%d].description", index)
}

// FieldErrors maps field keys to user-facing messages. An empty map means
// the invoice passed validation.
type FieldErrors map[string]string

// OK reports whether no field failed.
func (e FieldErrors) OK() bool {
	return len(e) == 0
}

// Validate checks the submission requirements: invoice number, client name,
// and every item description must be non-blank. All violations are collected
// in a single pass so the caller can surface the complete set at once.
func (i *Invoice) Validate() FieldErrors {
	errs := make(FieldErrors)

	if strings.TrimSpace(i.InvoiceNumber) == "" {
		errs[FieldInvoiceNumber] = "Invoice number is required"
	}
	if strings.TrimSpace(i.Client.Name) == "" {
		errs[FieldClientName] = "Client name is required"
	}
	for idx, item := range i.Items {
		if strings.TrimSpace(item.Description) == "" {
			errs[ItemDescriptionKey(idx)] = "Description is required"
		}
	}

	return errs
}
