package service

import (
	"fmt"
	"io"
	"time"

	"github.com/Innie12/Inventory-Management-System/internal/model"
	"github.com/Innie12/Inventory-Management-System/internal/repository"

	"github.com/go-pdf/fpdf"
	"github.com/xuri/excelize/v2"
)

// Letterhead is printed at the top of every report.
type Letterhead struct {
	CompanyName    string
	CompanyAddress string
	CompanyPhone   string
}

// ReportService renders inventory state and ledger history as downloadable
// PDF and Excel documents. Reports stream straight to the response writer.
type ReportService struct {
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	letterhead      Letterhead
	currency        string
}

func NewReportService(
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	letterhead Letterhead,
	currency string,
) *ReportService {
	return &ReportService{
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		letterhead:      letterhead,
		currency:        currency,
	}
}

func (s *ReportService) newPDF(title string) *fpdf.Fpdf {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, s.letterhead.CompanyName, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	if s.letterhead.CompanyAddress != "" {
		pdf.CellFormat(0, 5, s.letterhead.CompanyAddress, "", 1, "C", false, 0, "")
	}
	if s.letterhead.CompanyPhone != "" {
		pdf.CellFormat(0, 5, s.letterhead.CompanyPhone, "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 8)
	pdf.CellFormat(0, 5, "Generated "+time.Now().Format("2006-01-02 15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	return pdf
}

func pdfTableHeader(pdf *fpdf.Fpdf, widths []float64, headers []string) {
	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 8)
}

func categoryName(p *model.Product) string {
	if p.Category != nil {
		return p.Category.Name
	}
	return "-"
}

// InventoryPDF renders the full active catalog with a stock valuation total.
func (s *ReportService) InventoryPDF(w io.Writer) error {
	products, err := s.productRepo.FindAllActive()
	if err != nil {
		return err
	}

	pdf := s.newPDF("Inventory Report")
	widths := []float64{35, 75, 40, 20, 25, 25, 30}
	pdfTableHeader(pdf, widths, []string{"SKU", "Name", "Category", "Qty", "Cost", "Price", "Stock Value"})

	var totalValue float64
	for i := range products {
		p := &products[i]
		totalValue += p.StockValue()
		pdf.CellFormat(widths[0], 6, p.SKU, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, categoryName(p), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", p.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%.2f", p.CostPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%.2f", p.SellingPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, fmt.Sprintf("%.2f", p.StockValue()), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(widths[0]+widths[1]+widths[2]+widths[3]+widths[4]+widths[5], 7,
		fmt.Sprintf("Total stock value (%s)", s.currency), "1", 0, "R", false, 0, "")
	pdf.CellFormat(widths[6], 7, fmt.Sprintf("%.2f", totalValue), "1", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// LowStockPDF lists every product at or below its reorder level, with the
// suggested reorder quantity.
func (s *ReportService) LowStockPDF(w io.Writer) error {
	products, err := s.productRepo.FindLowStock()
	if err != nil {
		return err
	}

	pdf := s.newPDF("Low Stock Report")
	widths := []float64{35, 85, 45, 25, 30, 30}
	pdfTableHeader(pdf, widths, []string{"SKU", "Name", "Category", "Qty", "Reorder Level", "Reorder Qty"})

	for i := range products {
		p := &products[i]
		pdf.CellFormat(widths[0], 6, p.SKU, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, p.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, categoryName(p), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", p.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d", p.ReorderLevel), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%d", p.ReorderQuantity), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	if len(products) == 0 {
		pdf.CellFormat(0, 8, "No products below reorder level.", "", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

// TransactionsPDF renders the ledger between two dates, newest first.
func (s *ReportService) TransactionsPDF(w io.Writer, start, end time.Time) error {
	transactions, err := s.transactionRepo.FindBetween(start, end)
	if err != nil {
		return err
	}

	pdf := s.newPDF(fmt.Sprintf("Stock Transactions %s to %s",
		start.Format("2006-01-02"), end.Format("2006-01-02")))
	widths := []float64{35, 70, 15, 20, 25, 25, 35, 35}
	pdfTableHeader(pdf, widths, []string{"Date", "Product", "Type", "Qty", "Before", "After", "Reference", "By"})

	for i := range transactions {
		tx := &transactions[i]
		byUser := "-"
		if tx.User != nil {
			byUser = tx.User.Username
		}
		pdf.CellFormat(widths[0], 6, tx.CreatedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tx.Product.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, string(tx.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%d", tx.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[4], 6, fmt.Sprintf("%d", tx.QuantityBefore), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[5], 6, fmt.Sprintf("%d", tx.QuantityAfter), "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[6], 6, tx.Reference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[7], 6, byUser, "1", 0, "L", false, 0, "")
		pdf.Ln(-1)
	}

	if len(transactions) == 0 {
		pdf.CellFormat(0, 8, "No transactions in this period.", "", 1, "C", false, 0, "")
	}

	return pdf.Output(w)
}

// InventoryExcel exports the active catalog as a workbook for spreadsheet
// users.
func (s *ReportService) InventoryExcel(w io.Writer) error {
	products, err := s.productRepo.FindAllActive()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"SKU", "Barcode", "Name", "Category", "Supplier", "Quantity",
		"Reorder Level", "Cost Price", "Selling Price", "Stock Value", "Low Stock"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDDDDD"}, Pattern: 1},
	})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", endCell, headerStyle)
	}

	for i := range products {
		p := &products[i]
		row := i + 2
		barcode := ""
		if p.Barcode != nil {
			barcode = *p.Barcode
		}
		supplier := ""
		if p.Supplier != nil {
			supplier = p.Supplier.Name
		}
		lowStock := "No"
		if p.IsLowStock() {
			lowStock = "Yes"
		}

		values := []interface{}{p.SKU, barcode, p.Name, categoryName(p), supplier,
			p.Quantity, p.ReorderLevel, p.CostPrice, p.SellingPrice, p.StockValue(), lowStock}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "B", 18)
	f.SetColWidth(sheet, "C", "C", 36)
	f.SetColWidth(sheet, "D", "E", 22)
	f.SetColWidth(sheet, "F", "K", 14)

	return f.Write(w)
}
