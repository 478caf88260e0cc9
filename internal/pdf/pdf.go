// Package pdf renders the shop's printable documents: the work order sheet
// the customer signs, thermal receipts for the POS, and device labels.
package pdf

import (
	"bytes"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// ShopInfo is the letterhead printed on every document.
type ShopInfo struct {
	Name    string
	Address string
	Phone   string
}

// DeviceInfo is one device on a work order, primary device first.
type DeviceInfo struct {
	Brand  string
	Model  string
	Serial string
}

// ChecklistAnswer is one answered intake checklist item.
type ChecklistAnswer struct {
	Item   string
	Answer string
}

// ServiceLine is one priced service on a work order.
type ServiceLine struct {
	DeviceIndex int32
	Name        string
	Price       string
}

// newA4 creates a portrait A4 document with the standard margins.
// generatedAt pins the PDF creation date so output is reproducible.
func newA4(generatedAt time.Time) *gofpdf.Fpdf {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCreationDate(generatedAt)
	doc.SetCatalogSort(true)
	doc.SetMargins(15, 15, 15)
	doc.SetAutoPageBreak(true, 15)
	return doc
}

// newThermal creates a document sized for an 80mm thermal roll.
func newThermal(generatedAt time.Time, height float64) *gofpdf.Fpdf {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "mm",
		Size:    gofpdf.SizeType{Wd: 80, Ht: height},
	})
	doc.SetCreationDate(generatedAt)
	doc.SetCatalogSort(true)
	doc.SetMargins(4, 4, 4)
	doc.SetAutoPageBreak(true, 4)
	return doc
}

// output renders the document to bytes.
func output(doc *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
