// internal/pdf/export.go
package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/stockflow/stockflow-backend/internal/metrics"
	"github.com/stockflow/stockflow-backend/internal/models"
)

const transactionsInExport = 50

// CleanReportText strips the markdown the report generator emits so the
// embedded text reads as plain prose: emphasis markers, heading markers,
// and double line breaks.
func CleanReportText(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "#", "")
	text = strings.ReplaceAll(text, "\n\n", "\n")
	return text
}

// Export renders the inventory report document: header, key metrics, the
// optional AI analysis, the product table and the recent transaction log.
func Export(products []models.Product, transactions []models.Transaction, reportText string) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetAutoPageBreak(true, 15)
	doc.AddPage()
	pageWidth, _ := doc.GetPageSize()

	// Header band
	doc.SetFillColor(30, 41, 59)
	doc.Rect(0, 0, pageWidth, 40, "F")
	doc.SetTextColor(255, 255, 255)
	doc.SetFont("Helvetica", "B", 22)
	doc.Text(14, 20, "StockFlow AI")
	doc.SetFont("Helvetica", "", 12)
	doc.Text(14, 30, "Inventory & Operations Report")
	doc.SetFont("Helvetica", "", 10)
	stamp := time.Now().Format("2006-01-02 15:04")
	doc.Text(pageWidth-14-doc.GetStringWidth(stamp), 30, stamp)

	y := 50.0

	// Key metrics
	doc.SetTextColor(0, 0, 0)
	doc.SetFont("Helvetica", "B", 14)
	doc.Text(14, y, "Executive Summary")
	y += 10

	overview := metrics.Summarize(products, transactions)
	doc.SetFont("Helvetica", "", 10)
	doc.Text(14, y, fmt.Sprintf("Total Asset Value: $%.2f", overview.TotalValue))
	doc.Text(80, y, fmt.Sprintf("Total Stock Count: %d units", overview.TotalUnits))
	if overview.LowStockCount > 0 {
		doc.SetTextColor(220, 38, 38)
	}
	doc.Text(150, y, fmt.Sprintf("Low Stock Alerts: %d", overview.LowStockCount))
	doc.SetTextColor(0, 0, 0)
	y += 15

	// AI analysis
	if reportText != "" {
		doc.SetFont("Helvetica", "B", 14)
		doc.Text(14, y, "AI Analysis")
		y += 8

		doc.SetFont("Helvetica", "", 10)
		doc.SetXY(14, y-4)
		doc.MultiCell(pageWidth-28, 5, CleanReportText(reportText), "", "L", false)
		y = doc.GetY() + 10
	}

	doc.SetXY(14, y)
	writeProductTable(doc, products)
	doc.SetY(doc.GetY() + 10)
	writeTransactionTable(doc, metrics.Recent(transactions, transactionsInExport))

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func writeProductTable(doc *fpdf.Fpdf, products []models.Product) {
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "Current Inventory Status", "", 1, "L", false, 0, "")

	headers := []string{"Item Name", "Category", "SKU", "Qty", "Unit Price", "Total Value", "Status"}
	widths := []float64{45, 28, 25, 15, 23, 26, 18}

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(59, 130, 246)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetFillColor(241, 245, 249)
	fill := false
	for _, p := range products {
		status := "OK"
		if metrics.IsLowStock(p) {
			status = "LOW"
		}

		doc.SetTextColor(0, 0, 0)
		doc.CellFormat(widths[0], 6, p.Name, "1", 0, "L", fill, 0, "")
		doc.CellFormat(widths[1], 6, p.Category, "1", 0, "L", fill, 0, "")
		doc.CellFormat(widths[2], 6, p.SKU, "1", 0, "L", fill, 0, "")
		doc.CellFormat(widths[3], 6, fmt.Sprintf("%d", p.Quantity), "1", 0, "R", fill, 0, "")
		doc.CellFormat(widths[4], 6, fmt.Sprintf("$%.2f", p.Price), "1", 0, "R", fill, 0, "")
		doc.CellFormat(widths[5], 6, fmt.Sprintf("$%.2f", p.Price*float64(p.Quantity)), "1", 0, "R", fill, 0, "")
		if status == "LOW" {
			doc.SetTextColor(220, 38, 38)
		} else {
			doc.SetTextColor(22, 163, 74)
		}
		doc.CellFormat(widths[6], 6, status, "1", 1, "C", fill, 0, "")
		doc.SetTextColor(0, 0, 0)
		fill = !fill
	}
}

func writeTransactionTable(doc *fpdf.Fpdf, transactions []models.Transaction) {
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, "Recent Transactions", "", 1, "L", false, 0, "")

	headers := []string{"Date", "Product", "Type", "Qty", "Notes"}
	widths := []float64{35, 55, 25, 15, 50}

	doc.SetFont("Helvetica", "B", 8)
	doc.SetFillColor(59, 130, 246)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], 7, h, "1", 0, "L", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 8)
	doc.SetTextColor(0, 0, 0)
	doc.SetFillColor(241, 245, 249)
	fill := false
	for _, t := range transactions {
		doc.CellFormat(widths[0], 6, t.Date, "1", 0, "L", fill, 0, "")
		doc.CellFormat(widths[1], 6, t.ProductName, "1", 0, "L", fill, 0, "")
		doc.CellFormat(widths[2], 6, string(t.Type), "1", 0, "L", fill, 0, "")
		doc.CellFormat(widths[3], 6, fmt.Sprintf("%d", t.Quantity), "1", 0, "R", fill, 0, "")
		doc.CellFormat(widths[4], 6, t.Notes, "1", 1, "L", fill, 0, "")
		fill = !fill
	}
}
