package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/focusim/statement-go/pkg/statement/models"
	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// PDFOptions configures the PDF report.
type PDFOptions struct {
	// Logo is an optional PNG or JPEG printed in the top left corner.
	Logo string
}

const (
	pdfFont      = "Helvetica"
	pdfRowHeight = 7.0
	pdfLogoWidth = 30.0
)

// Column widths in mm, summing to the printable width of landscape A4.
var pdfWidths = []float64{60, 20, 20, 25, 20, 28, 20, 50, 34}

var pdfAligns = []string{"L", "R", "R", "R", "R", "R", "R", "L", "L"}

// WritePDF renders the statement as a landscape A4 PDF. Column headings are
// repeated on every page.
func WritePDF(w io.Writer, st *models.Statement, f Formatter, opts PDFOptions) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(false, 10)
	pdf.SetTitle(latin1(st.Header.Title), false)
	if !st.Header.Date.IsZero() {
		pdf.SetCreationDate(st.Header.Date)
	}
	pdf.AddPage()

	if opts.Logo != "" {
		pdf.ImageOptions(opts.Logo, 10, 8, pdfLogoWidth, 0, false, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	}
	pdf.SetFont(pdfFont, "B", 14)
	pdf.CellFormat(0, 10, latin1(st.Header.Title), "", 1, "C", false, 0, "")
	pdf.SetFont(pdfFont, "", 11)
	if opts.Logo != "" {
		pdf.SetY(22)
	}
	pdf.CellFormat(0, 7, latin1("Comitente: "+st.Header.Client), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, latin1("Fecha: "+f.Date(st.Header.Date)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, latin1("Tipo de cambio: "+f.Rate(st.Valuation.ExchangeRate)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdfHeadings(pdf)

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, r := range f.table(st) {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
			pdf.AddPage()
			pdfHeadings(pdf)
		}
		style := ""
		if r.Total {
			style = "B"
		}
		pdf.SetFont(pdfFont, style, 8)
		pdfRow(pdf, r.Cells, r.Total)
	}

	if pdf.GetY()+pdfRowHeight > pageHeight-bottom {
		pdf.AddPage()
		pdfHeadings(pdf)
	}
	pdf.SetFont(pdfFont, "B", 9)
	pdfRow(pdf, f.footer(st), true)

	if len(st.Missing) > 0 {
		pdf.Ln(4)
		pdf.SetFont(pdfFont, "I", 8)
		pdf.MultiCell(0, 5, latin1("No encontrados en el catálogo: "+strings.Join(st.Missing, ", ")), "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return pdf.Output(w)
}

func pdfHeadings(pdf *fpdf.Fpdf) {
	pdf.SetFont(pdfFont, "B", 8)
	pdf.SetFillColor(31, 56, 100)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range Columns {
		pdf.CellFormat(pdfWidths[i], pdfRowHeight+1, latin1(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetTextColor(0, 0, 0)
}

func pdfRow(pdf *fpdf.Fpdf, cells []string, shaded bool) {
	pdf.SetFillColor(242, 242, 242)
	for i, c := range cells {
		text := fitText(pdf, latin1(c), pdfWidths[i]-2)
		pdf.CellFormat(pdfWidths[i], pdfRowHeight, text, "1", 0, pdfAligns[i], shaded, 0, "")
	}
	pdf.Ln(-1)
}

// fitText truncates s until it fits in width at the current font.
func fitText(pdf *fpdf.Fpdf, s string, width float64) string {
	if pdf.GetStringWidth(s) <= width {
		return s
	}
	for len(s) > 0 && pdf.GetStringWidth(s+"...") > width {
		s = s[:len(s)-1]
	}
	return s + "..."
}

// latin1 encodes s for the PDF core fonts. Characters outside Latin-1 become '?'.
func latin1(s string) string {
	var b strings.Builder
	for _, r := range s {
		if c, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			b.WriteByte(c)
		} else {
			b.WriteByte('?')
		}
	}
	return b.String()
}
