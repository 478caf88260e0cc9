package pdf

import (
	"time"
)

// LabelData is the small sticker attached to the device while in the shop.
type LabelData struct {
	OrderNumber    string
	CustomerName   string
	CustomerPhone  string
	Device         string
	GeneratedAt    time.Time
	CommitmentDate *time.Time
}

// BuildLabel renders an 80x50mm device label.
func BuildLabel(data LabelData) ([]byte, error) {
	doc := newThermal(data.GeneratedAt, 50)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 14)
	doc.CellFormat(0, 8, tr(data.OrderNumber), "", 1, "C", false, 0, "")

	doc.SetFont("Helvetica", "", 9)
	doc.CellFormat(0, 5, tr(data.CustomerName), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(data.CustomerPhone), "", 1, "L", false, 0, "")
	doc.CellFormat(0, 5, tr(data.Device), "", 1, "L", false, 0, "")
	if data.CommitmentDate != nil {
		doc.SetFont("Helvetica", "B", 9)
		doc.CellFormat(0, 5, tr("Entrega: "+data.CommitmentDate.Format("02/01/2006")), "", 1, "L", false, 0, "")
	}

	return output(doc)
}
