package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInvoice_Blank(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)

	assert.NotEmpty(t, inv.ID)
	assert.Equal(t, "INV-0001", inv.InvoiceNumber)
	assert.Equal(t, time.Now().Format(DateLayout), inv.Date)
	assert.Equal(t, time.Now().AddDate(0, 0, 30).Format(DateLayout), inv.DueDate)

	require.Len(t, inv.Items, 1)
	assert.Equal(t, 1, inv.Items[0].ID)
	assert.Equal(t, 1.0, inv.Items[0].Quantity)
	assert.Zero(t, inv.Subtotal)
	assert.Zero(t, inv.Total)
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRecalculate_Scenario(t *testing.T) {
	// items [{qty:2, price:10}, {qty:1, price:5}], taxRate=10, discount=3
	// => subtotal=25, taxAmount=2.5, total=24.5
	inv := NewInvoice("INV-0001", 30)
	inv.Items = []LineItem{
		{ID: 1, Description: "Design", Quantity: 2, Price: 10},
		{ID: 2, Description: "Hosting", Quantity: 1, Price: 5},
	}
	inv.TaxRate = 10
	inv.Discount = 3
	inv.Recalculate()

	assert.Equal(t, 20.0, inv.Items[0].Total)
	assert.Equal(t, 5.0, inv.Items[1].Total)
	assert.Equal(t, 25.0, inv.Subtotal)
	assert.Equal(t, 2.5, inv.TaxAmount)
	assert.Equal(t, 24.5, inv.Total)
}

func TestRecalculate_DerivedFieldsMoveTogether(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)
	inv.Items = []LineItem{{ID: 1, Quantity: 3, Price: 100}}
	inv.TaxRate = 20
	inv.Recalculate()

	require.Equal(t, 300.0, inv.Subtotal)
	require.Equal(t, 60.0, inv.TaxAmount)
	require.Equal(t, 360.0, inv.Total)

	// Changing an input and recalculating must refresh all three.
	inv.Items[0].Price = 50
	inv.Discount = 10
	inv.Recalculate()

	assert.Equal(t, 150.0, inv.Subtotal)
	assert.Equal(t, 30.0, inv.TaxAmount)
	assert.Equal(t, 170.0, inv.Total)
}

func TestRecalculate_ZeroRateAndDiscount(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)
	inv.Items = []LineItem{{ID: 1, Quantity: 4, Price: 2.5}}
	inv.Recalculate()

	assert.Equal(t, 10.0, inv.Subtotal)
	assert.Zero(t, inv.TaxAmount)
	assert.Equal(t, 10.0, inv.Total)
}

func TestAddItem_AssignsNextID(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)
	assert.Equal(t, 2, inv.AddItem())
	assert.Equal(t, 3, inv.AddItem())

	// IDs are max+1, so removing a middle item never causes reuse.
	require.True(t, inv.RemoveItem(2))
	assert.Equal(t, 4, inv.AddItem())
}

func TestRemoveItem_LastItemIsNoOp(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)
	assert.False(t, inv.RemoveItem(1))
	assert.Len(t, inv.Items, 1)
}

func TestRemoveItem_UnknownID(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)
	inv.AddItem()
	assert.False(t, inv.RemoveItem(99))
	assert.Len(t, inv.Items, 2)
}

func TestClone_Isolated(t *testing.T) {
	inv := NewInvoice("INV-0001", 30)
	inv.Items[0].Description = "original"

	cp := inv.Clone()
	cp.Items[0].Description = "copy"
	cp.AddItem()

	assert.Equal(t, "original", inv.Items[0].Description)
	assert.Len(t, inv.Items, 1)
	assert.Len(t, cp.Items, 2)
}
