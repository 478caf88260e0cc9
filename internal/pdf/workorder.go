package pdf

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// WorkOrderData is everything printed on the signed intake sheet.
type WorkOrderData struct {
	Shop            ShopInfo
	OrderNumber     string
	Status          string
	Priority        string
	CreatedAt       time.Time
	GeneratedAt     time.Time
	CustomerName    string
	CustomerPhone   string
	CustomerEmail   string
	Devices         []DeviceInfo
	Checklist       []ChecklistAnswer
	Services        []ServiceLine
	ReplacementCost string
	LaborCost       string
	TotalCost       string
	ReceiptNumber   string
	CommitmentDate  *time.Time
	WarrantyDays    int32
}

// BuildWorkOrder renders the full-page work order document.
func BuildWorkOrder(data WorkOrderData) ([]byte, error) {
	doc := newA4(data.GeneratedAt)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	// Letterhead
	doc.SetFont("Helvetica", "B", 16)
	doc.CellFormat(120, 8, tr(data.Shop.Name), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(60, 8, tr("Orden "+data.OrderNumber), "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(120, 5, tr(data.Shop.Address), "", 0, "L", false, 0, "")
	doc.CellFormat(60, 5, data.CreatedAt.Format("02/01/2006 15:04"), "", 1, "R", false, 0, "")
	doc.CellFormat(120, 5, tr(data.Shop.Phone), "", 0, "L", false, 0, "")
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(60, 5, tr(data.Status+" / "+data.Priority), "", 1, "R", false, 0, "")
	doc.Ln(4)

	// Customer block
	sectionTitle(doc, tr, "Cliente")
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(0, 6, tr(data.CustomerName), "", 1, "L", false, 0, "")
	contact := data.CustomerPhone
	if data.CustomerEmail != "" {
		contact += "  -  " + data.CustomerEmail
	}
	doc.CellFormat(0, 6, tr(contact), "", 1, "L", false, 0, "")
	doc.Ln(2)

	// Devices
	sectionTitle(doc, tr, "Equipos")
	doc.SetFont("Helvetica", "", 10)
	for i, d := range data.Devices {
		line := fmt.Sprintf("%d. %s %s", i+1, d.Brand, d.Model)
		if d.Serial != "" {
			line += "  (serie " + d.Serial + ")"
		}
		doc.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	doc.Ln(2)

	// Intake checklist
	if len(data.Checklist) > 0 {
		sectionTitle(doc, tr, "Estado de recepción")
		doc.SetFont("Helvetica", "", 10)
		for _, c := range data.Checklist {
			doc.CellFormat(110, 6, tr(c.Item), "B", 0, "L", false, 0, "")
			doc.CellFormat(0, 6, tr(c.Answer), "B", 1, "R", false, 0, "")
		}
		doc.Ln(2)
	}

	// Services
	sectionTitle(doc, tr, "Servicios")
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(15, 6, "Eq.", "B", 0, "L", false, 0, "")
	doc.CellFormat(115, 6, tr("Descripción"), "B", 0, "L", false, 0, "")
	doc.CellFormat(0, 6, "Precio", "B", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, s := range data.Services {
		doc.CellFormat(15, 6, fmt.Sprintf("%d", s.DeviceIndex+1), "", 0, "L", false, 0, "")
		doc.CellFormat(115, 6, tr(s.Name), "", 0, "L", false, 0, "")
		doc.CellFormat(0, 6, "$"+s.Price, "", 1, "R", false, 0, "")
	}
	doc.Ln(2)

	// Totals
	doc.SetFont("Helvetica", "", 10)
	doc.CellFormat(130, 6, tr("Repuestos"), "", 0, "R", false, 0, "")
	doc.CellFormat(0, 6, "$"+data.ReplacementCost, "", 1, "R", false, 0, "")
	doc.CellFormat(130, 6, tr("Mano de obra"), "", 0, "R", false, 0, "")
	doc.CellFormat(0, 6, "$"+data.LaborCost, "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(130, 7, "TOTAL", "T", 0, "R", false, 0, "")
	doc.CellFormat(0, 7, "$"+data.TotalCost, "T", 1, "R", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 9)
	if data.ReceiptNumber != "" {
		doc.CellFormat(0, 5, tr("Boleta asociada: "+data.ReceiptNumber), "", 1, "L", false, 0, "")
	}
	if data.CommitmentDate != nil {
		doc.CellFormat(0, 5, tr("Fecha comprometida: "+data.CommitmentDate.Format("02/01/2006")), "", 1, "L", false, 0, "")
	}
	if data.WarrantyDays > 0 {
		doc.CellFormat(0, 5, tr(fmt.Sprintf("Garantía: %d días desde la entrega", data.WarrantyDays)), "", 1, "L", false, 0, "")
	}
	doc.Ln(10)

	// Signature line
	doc.CellFormat(80, 6, "", "T", 0, "C", false, 0, "")
	doc.CellFormat(20, 6, "", "", 0, "C", false, 0, "")
	doc.CellFormat(80, 6, "", "T", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(80, 5, tr("Firma cliente"), "", 0, "C", false, 0, "")
	doc.CellFormat(20, 5, "", "", 0, "C", false, 0, "")
	doc.CellFormat(80, 5, tr("Recibido por"), "", 1, "C", false, 0, "")

	return output(doc)
}

func sectionTitle(doc *gofpdf.Fpdf, tr func(string) string, title string) {
	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 7, tr(title), "B", 1, "L", false, 0, "")
	doc.Ln(1)
}
