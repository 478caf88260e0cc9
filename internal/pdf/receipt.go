package pdf

import (
	"fmt"
	"time"
)

// OrderReceiptData is the 80mm intake stub handed to the customer.
type OrderReceiptData struct {
	Shop           ShopInfo
	OrderNumber    string
	CreatedAt      time.Time
	GeneratedAt    time.Time
	CustomerName   string
	Device         string
	Services       []ServiceLine
	TotalCost      string
	CommitmentDate *time.Time
	WarrantyDays   int32
}

// BuildOrderReceipt renders the thermal intake stub.
func BuildOrderReceipt(data OrderReceiptData) ([]byte, error) {
	doc := newThermal(data.GeneratedAt, 200)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 5, tr(data.Shop.Name), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 7)
	doc.CellFormat(0, 4, tr(data.Shop.Address), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 4, tr(data.Shop.Phone), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, tr("Orden "+data.OrderNumber), "T", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(0, 4, data.CreatedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.CellFormat(0, 4, tr("Cliente: "+data.CustomerName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 4, tr("Equipo: "+data.Device), "", 1, "L", false, 0, "")
	doc.Ln(2)

	for _, s := range data.Services {
		doc.CellFormat(52, 4, tr(s.Name), "", 0, "L", false, 0, "")
		doc.CellFormat(0, 4, "$"+s.Price, "", 1, "R", false, 0, "")
	}
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(52, 5, "TOTAL", "T", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "$"+data.TotalCost, "T", 1, "R", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 7)
	if data.CommitmentDate != nil {
		doc.CellFormat(0, 4, tr("Entrega estimada: "+data.CommitmentDate.Format("02/01/2006")), "", 1, "L", false, 0, "")
	}
	if data.WarrantyDays > 0 {
		doc.CellFormat(0, 4, tr(fmt.Sprintf("Garantía: %d días", data.WarrantyDays)), "", 1, "L", false, 0, "")
	}
	doc.Ln(2)
	doc.CellFormat(0, 4, tr("Conserve este comprobante para el retiro"), "", 1, "C", false, 0, "")

	return output(doc)
}

// SaleItemLine is one line on a POS sale receipt.
type SaleItemLine struct {
	Name      string
	Quantity  int32
	UnitPrice string
	Subtotal  string
}

// SaleReceiptData is the 80mm POS receipt.
type SaleReceiptData struct {
	Shop           ShopInfo
	SaleNumber     string
	CompletedAt    time.Time
	GeneratedAt    time.Time
	Items          []SaleItemLine
	NetAmount      string
	TaxAmount      string
	TotalAmount    string
	PaymentMethod  string
	AmountReceived string
	ChangeAmount   string
}

// BuildSaleReceipt renders the thermal POS receipt with the IVA breakdown.
func BuildSaleReceipt(data SaleReceiptData) ([]byte, error) {
	doc := newThermal(data.GeneratedAt, 200)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 11)
	doc.CellFormat(0, 5, tr(data.Shop.Name), "", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 7)
	doc.CellFormat(0, 4, tr(data.Shop.Address), "", 1, "C", false, 0, "")
	doc.CellFormat(0, 4, tr(data.Shop.Phone), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(0, 5, tr("Venta "+data.SaleNumber), "T", 1, "C", false, 0, "")
	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(0, 4, data.CompletedAt.Format("02/01/2006 15:04"), "", 1, "C", false, 0, "")
	doc.Ln(2)

	doc.SetFont("Helvetica", "", 8)
	for _, item := range data.Items {
		doc.CellFormat(0, 4, tr(item.Name), "", 1, "L", false, 0, "")
		qty := fmt.Sprintf("%d x $%s", item.Quantity, item.UnitPrice)
		doc.CellFormat(52, 4, qty, "", 0, "L", false, 0, "")
		doc.CellFormat(0, 4, "$"+item.Subtotal, "", 1, "R", false, 0, "")
	}
	doc.Ln(1)

	doc.CellFormat(52, 4, "Neto", "T", 0, "L", false, 0, "")
	doc.CellFormat(0, 4, "$"+data.NetAmount, "T", 1, "R", false, 0, "")
	doc.CellFormat(52, 4, "IVA 19%", "", 0, "L", false, 0, "")
	doc.CellFormat(0, 4, "$"+data.TaxAmount, "", 1, "R", false, 0, "")
	doc.SetFont("Helvetica", "B", 9)
	doc.CellFormat(52, 5, "TOTAL", "", 0, "L", false, 0, "")
	doc.CellFormat(0, 5, "$"+data.TotalAmount, "", 1, "R", false, 0, "")
	doc.Ln(1)

	doc.SetFont("Helvetica", "", 8)
	doc.CellFormat(52, 4, tr("Pago "+data.PaymentMethod), "", 0, "L", false, 0, "")
	doc.CellFormat(0, 4, "$"+data.AmountReceived, "", 1, "R", false, 0, "")
	if data.ChangeAmount != "" && data.ChangeAmount != "0.00" {
		doc.CellFormat(52, 4, "Vuelto", "", 0, "L", false, 0, "")
		doc.CellFormat(0, 4, "$"+data.ChangeAmount, "", 1, "R", false, 0, "")
	}
	doc.Ln(2)
	doc.CellFormat(0, 4, tr("Gracias por su compra"), "", 1, "C", false, 0, "")

	return output(doc)
}
