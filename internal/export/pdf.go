package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

func toPDF(rows []map[string]any, cols []Column) ([]byte, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("export: pdf requires at least one column")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	colW := (pageW - left - right) / float64(len(cols))

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(221, 221, 221)
		for _, c := range cols {
			pdf.CellFormat(colW, 7, c.Title, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 9)
	}
	writeHeader()

	_, pageH := pdf.GetPageSize()
	for _, row := range rows {
		if pdf.GetY() > pageH-25 {
			pdf.AddPage()
			writeHeader()
		}
		for _, c := range cols {
			pdf.CellFormat(colW, 6, cellString(row[c.Key]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
