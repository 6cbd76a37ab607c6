// Package invoice renders a bill as a paginated US Letter PDF.
package invoice

import (
	"bytes"
	"strconv"
	"time"

	"HospitalMgmt/billing"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Page geometry in points, measured from the top edge of a Letter page.
const (
	PageHeight = 792.0

	titleY       = 32.0
	headerStartY = 52.0
	headerStep   = 15.0
	tableHeaderY = 122.0
	firstRowY    = tableHeaderY + 20
	rowStep      = 18.0
	// A row below this line moves to a new page.
	bottomLimit = PageHeight - 100
	topRowY     = titleY

	itemX      = 50.0
	qtyX       = 300.0
	unitPriceX = 350.0
	totalX     = 450.0
)

var totalsOffsets = []float64{20, 35, 50, 65, 80}

// Header is the bill-level data printed above the table.
type Header struct {
	InvoiceNumber string
	PatientName   string
	BillingDate   time.Time
	Totals        billing.Totals
}

// Line is one printed table row.
type Line struct {
	Label     string
	Quantity  int
	UnitPrice decimal.Decimal
	Total     decimal.Decimal
}

// Position places a block on a page. Page is 1-based.
type Position struct {
	Page int
	Y    float64
}

// Layout is where each row and the totals block land.
type Layout struct {
	Rows   []Position
	Totals Position
	Pages  int
}

// Plan lays out a table of rows lines without drawing anything.
func Plan(rows int) Layout {
	layout := Layout{Rows: make([]Position, 0, rows)}
	page, y := 1, firstRowY
	for i := 0; i < rows; i++ {
		layout.Rows = append(layout.Rows, Position{Page: page, Y: y})
		y += rowStep
		if y > bottomLimit {
			page++
			y = topRowY
		}
	}
	layout.Totals = Position{Page: page, Y: y}
	layout.Pages = page
	return layout
}

// FileName is the attachment name of an invoice.
func FileName(invoiceNumber string) string {
	return invoiceNumber + ".pdf"
}

// Money formats an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(billing.MoneyPlaces)
}

// Render draws the invoice. Identical input yields identical bytes: the
// document dates are pinned to the billing date.
func Render(title string, header Header, lines []Line) ([]byte, error) {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		SizeStr:        "Letter",
	})
	stamp := header.BillingDate.UTC()
	pdf.SetCreationDate(stamp)
	pdf.SetModificationDate(stamp)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(title, false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Text(itemX, titleY, tr(title))

	pdf.SetFont("Helvetica", "", 10)
	headerLines := []string{
		"Invoice: " + header.InvoiceNumber,
		"Patient: " + header.PatientName,
		"Billing Date: " + header.BillingDate.Format("2006-01-02"),
		"Payment Status: " + string(header.Totals.Status),
	}
	for i, text := range headerLines {
		pdf.Text(itemX, headerStartY+float64(i)*headerStep, tr(text))
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Text(itemX, tableHeaderY, "Item")
	pdf.Text(qtyX, tableHeaderY, "Qty")
	pdf.Text(unitPriceX, tableHeaderY, "Unit Price")
	pdf.Text(totalX, tableHeaderY, "Total")

	layout := Plan(len(lines))
	pdf.SetFont("Helvetica", "", 10)
	page := 1
	for i, line := range lines {
		pos := layout.Rows[i]
		for page < pos.Page {
			pdf.AddPage()
			pdf.SetFont("Helvetica", "", 10)
			page++
		}
		pdf.Text(itemX, pos.Y, tr(line.Label))
		pdf.Text(qtyX, pos.Y, strconv.Itoa(line.Quantity))
		pdf.Text(unitPriceX, pos.Y, Money(line.UnitPrice))
		pdf.Text(totalX, pos.Y, Money(line.Total))
	}
	for page < layout.Totals.Page {
		pdf.AddPage()
		page++
	}

	t := header.Totals
	pdf.SetFont("Helvetica", "B", 10)
	totals := []struct {
		label string
		value decimal.Decimal
	}{
		{"Subtotal:", t.Subtotal},
		{"Discount:", t.Discount},
		{"Total:", t.Total},
		{"Paid:", t.Paid},
		{"Due:", t.Due},
	}
	for i, row := range totals {
		y := layout.Totals.Y + totalsOffsets[i]
		pdf.Text(unitPriceX, y, row.label)
		pdf.Text(totalX, y, Money(row.value))
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to render invoice")
	}
	return buf.Bytes(), nil
}
