package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemTotal(t *testing.T) {
	assert.Equal(t, 20.0, ItemTotal(2, 10))
	assert.Equal(t, 0.0, ItemTotal(0, 99))
	assert.Equal(t, 12.5, ItemTotal(2.5, 5))
}

func TestSubtotal(t *testing.T) {
	items := []LineItem{
		{Total: 20},
		{Total: 5},
		{Total: 0.5},
	}
	assert.Equal(t, 25.5, Subtotal(items))
	assert.Zero(t, Subtotal(nil))
}

func TestTaxAmount(t *testing.T) {
	assert.Equal(t, 2.5, TaxAmount(25, 10))
	assert.Zero(t, TaxAmount(25, 0))
	assert.Zero(t, TaxAmount(0, 10))
}

func TestGrandTotal(t *testing.T) {
	assert.Equal(t, 24.5, GrandTotal(25, 2.5, 3))
	assert.Equal(t, 25.0, GrandTotal(25, 0, 0))
	// A discount larger than the subtotal goes negative; the calculator
	// does not clamp.
	assert.Equal(t, -5.0, GrandTotal(10, 0, 15))
}
