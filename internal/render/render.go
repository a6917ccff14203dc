// Package render produces the printable invoice surfaces: a plain-text
// region for the preview and CLI, and a PDF export. Two-decimal money
// formatting lives here; stored amounts are never rounded.
package render

import (
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/domain"
)

// Business is the issuing party shown in the invoice header.
type Business struct {
	Name    string
	Email   string
	Address string
	Phone   string
}

// Money formats an amount as "$X,XXX.XX" with comma separators.
func Money(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := "$"
	if negative {
		prefix = "-$"
	}
	return prefix + string(result) + decPart
}

// Quantity formats a quantity without trailing zero noise (2 not 2.00,
// but 2.5 stays 2.5).
func Quantity(q float64) string {
	s := fmt.Sprintf("%.2f", q)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

// Text renders the invoice as a plain-text region suitable for the terminal
// preview or piping to a printer.
func Text(inv *domain.Invoice, biz Business) string {
	var b strings.Builder

	if biz.Name != "" {
		b.WriteString(biz.Name + "\n")
	}
	for _, line := range strings.Split(biz.Address, "\n") {
		if line != "" {
			b.WriteString(line + "\n")
		}
	}
	if biz.Email != "" {
		b.WriteString(biz.Email + "\n")
	}
	if biz.Phone != "" {
		b.WriteString(biz.Phone + "\n")
	}
	if biz.Name != "" || biz.Email != "" {
		b.WriteString("\n")
	}

	b.WriteString("INVOICE\n")
	b.WriteString(fmt.Sprintf("Number:     %s\n", inv.InvoiceNumber))
	b.WriteString(fmt.Sprintf("Issue Date: %s\n", inv.Date))
	b.WriteString(fmt.Sprintf("Due Date:   %s\n\n", inv.DueDate))

	b.WriteString("BILL TO\n")
	b.WriteString(inv.Client.Name + "\n")
	if inv.Client.Email != "" {
		b.WriteString(inv.Client.Email + "\n")
	}
	for _, line := range strings.Split(inv.Client.Address, "\n") {
		if line != "" {
			b.WriteString(line + "\n")
		}
	}
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("%-40s %10s %12s %12s\n", "Description", "Quantity", "Price", "Total"))
	b.WriteString(strings.Repeat("-", 77) + "\n")
	for _, item := range inv.Items {
		b.WriteString(fmt.Sprintf("%-40s %10s %12s %12s\n",
			truncate(item.Description, 40),
			Quantity(item.Quantity),
			Money(item.Price),
			Money(item.Total),
		))
	}
	b.WriteString(strings.Repeat("-", 77) + "\n")

	b.WriteString(fmt.Sprintf("%64s %12s\n", "Subtotal:", Money(inv.Subtotal)))
	b.WriteString(fmt.Sprintf("%64s %12s\n", fmt.Sprintf("Tax (%s%%):", Quantity(inv.TaxRate)), Money(inv.TaxAmount)))
	if inv.Discount > 0 {
		b.WriteString(fmt.Sprintf("%64s %12s\n", "Discount:", "-"+Money(inv.Discount)))
	}
	b.WriteString(fmt.Sprintf("%64s %12s\n", "Total:", Money(inv.Total)))

	if inv.Notes != "" {
		b.WriteString("\nNotes\n")
		b.WriteString(inv.Notes + "\n")
	}

	return b.String()
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
