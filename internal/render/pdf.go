package render

import (
	"fmt"
	"strings"

	"github.com/andy/billcraft/internal/domain"
	"github.com/jung-kurt/gofpdf"
)

// PDF writes the invoice to an A4 PDF at the given path.
func PDF(inv *domain.Invoice, biz Business, path string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	// Business header
	pdf.SetFont("Helvetica", "B", 14)
	if biz.Name != "" {
		pdf.CellFormat(0, 7, biz.Name, "", 1, "L", false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range strings.Split(biz.Address, "\n") {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
	if biz.Email != "" {
		pdf.CellFormat(0, 5, biz.Email, "", 1, "L", false, 0, "")
	}
	if biz.Phone != "" {
		pdf.CellFormat(0, 5, biz.Phone, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Invoice identity
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, "Number: "+inv.InvoiceNumber, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Issue Date: "+inv.Date, "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, "Due Date: "+inv.DueDate, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Bill-to block
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "BILL TO", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 5, inv.Client.Name, "", 1, "L", false, 0, "")
	if inv.Client.Email != "" {
		pdf.CellFormat(0, 5, inv.Client.Email, "", 1, "L", false, 0, "")
	}
	for _, line := range strings.Split(inv.Client.Address, "\n") {
		if line != "" {
			pdf.CellFormat(0, 5, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)

	// Items table
	colW := []float64{90.0, 25.0, 32.0, 33.0}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(colW[0], 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colW[1], 7, "Quantity", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[2], 7, "Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colW[3], 7, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range inv.Items {
		pdf.CellFormat(colW[0], 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colW[1], 7, Quantity(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[2], 7, Money(item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colW[3], 7, Money(item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)

	// Summary
	labelW, valueW := 147.0, 33.0
	pdf.CellFormat(labelW, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, Money(inv.Subtotal), "", 1, "R", false, 0, "")
	pdf.CellFormat(labelW, 6, fmt.Sprintf("Tax (%s%%):", Quantity(inv.TaxRate)), "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 6, Money(inv.TaxAmount), "", 1, "R", false, 0, "")
	if inv.Discount > 0 {
		pdf.CellFormat(labelW, 6, "Discount:", "", 0, "R", false, 0, "")
		pdf.CellFormat(valueW, 6, "-"+Money(inv.Discount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(labelW, 7, "Total:", "", 0, "R", false, 0, "")
	pdf.CellFormat(valueW, 7, Money(inv.Total), "", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(0, 6, "Notes", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, inv.Notes, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}
