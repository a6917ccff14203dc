package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInvoice() *Invoice {
	inv := NewInvoice("INV-0001", 30)
	inv.Client.Name = "ACME Corp"
	inv.Items[0].Description = "Consulting"
	return inv
}

func TestValidate_Passes(t *testing.T) {
	errs := validInvoice().Validate()
	assert.True(t, errs.OK())
}

func TestValidate_CollectsAllViolations(t *testing.T) {
	inv := NewInvoice("", 30)
	inv.AddItem()

	errs := inv.Validate()
	require.False(t, errs.OK())
	assert.Len(t, errs, 4)
	assert.Contains(t, errs, FieldInvoiceNumber)
	assert.Contains(t, errs, FieldClientName)
	assert.Contains(t, errs, ItemDescriptionKey(0))
	assert.Contains(t, errs, ItemDescriptionKey(1))
}

func TestValidate_WhitespaceIsEmpty(t *testing.T) {
	inv := validInvoice()
	inv.InvoiceNumber = "   "
	inv.Client.Name = "\t"
	inv.Items[0].Description = " \n "

	errs := inv.Validate()
	assert.Len(t, errs, 3)
}

func TestValidate_FlagsOnlyBlankItems(t *testing.T) {
	inv := validInvoice()
	inv.AddItem() // second item, blank description

	errs := inv.Validate()
	require.Len(t, errs, 1)
	assert.Contains(t, errs, ItemDescriptionKey(1))
	assert.NotContains(t, errs, ItemDescriptionKey(0))
}

func TestValidate_OptionalFieldsIgnored(t *testing.T) {
	inv := validInvoice()
	inv.Client.Email = ""
	inv.Client.Address = ""
	inv.Notes = ""

	assert.True(t, inv.Validate().OK())
}
