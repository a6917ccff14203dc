package domain

// Pure totals arithmetic. No rounding happens here; formatting to two
// decimals is a presentation concern.

// ItemTotal returns the extended amount for one line item.
func ItemTotal(quantity, price float64) float64 {
	return quantity * price
}

// Subtotal sums the extended totals of all line items.
func Subtotal(items []LineItem) float64 {
	var sum float64
	for _, item := range items {
		sum += item.Total
	}
	return sum
}

// TaxAmount applies a percentage tax rate to a subtotal.
func TaxAmount(subtotal, taxRate float64) float64 {
	return subtotal * taxRate / 100
}

// GrandTotal combines subtotal, tax and discount into the amount due.
func GrandTotal(subtotal, taxAmount, discount float64) float64 {
	return subtotal + taxAmount - discount
}
