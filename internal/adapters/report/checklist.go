// Package report generates the supporting-documents pack the applicant
// takes to court: a checklist of documents to gather and a section-by-
// section summary of everything captured in the wizard.
package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/thandol/j101-generator/internal/export"
)

// SupportingDocs lists the documents a maintenance applicant must bring
// alongside the completed form.
var SupportingDocs = []string{
	"Your South African ID (Original and a certified copy)",
	"Birth certificate for each child (Certified copies)",
	"Your last 3 months of bank statements",
	"Proof of your income (e.g., latest payslip)",
	"Proof of your current residential address",
	"A detailed list of your monthly expenses",
	"(If applicable) Your marriage certificate or divorce order",
	"(If applicable) Any previous maintenance orders",
}

// Generate writes the checklist-and-summary PDF to w.
func Generate(rows []export.Row, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.AliasNbPages("{nb}")

	pdf.AddPage()
	drawHeader(pdf, "MAINTENANCE APPLICATION  SUPPORTING DOCUMENTS")
	drawChecklist(pdf)
	drawSummary(pdf, rows)

	return pdf.Output(w)
}

func drawHeader(pdf *fpdf.Fpdf, title string) {
	pageW, _ := pdf.GetPageSize()
	marginL, marginT, marginR, _ := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW-4, 7, title, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Page "+fmt.Sprint(pdf.PageNo())+" of {nb}", "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.SetY(marginT + 14)
}

// drawChecklist renders the document checklist with an empty tick box
// per item.
func drawChecklist(pdf *fpdf.Fpdf) {
	marginL, _, marginR, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginR

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW, 6, "DOCUMENTS TO BRING TO COURT", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9.5)
	for _, item := range SupportingDocs {
		y := pdf.GetY()
		pdf.Rect(marginL+2, y+1.5, 4, 4, "D")
		pdf.SetXY(marginL+9, y)
		pdf.CellFormat(contentW-9, 7, item, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// drawSummary renders the captured answers grouped by section, in the
// same order as the CSV and XLSX exports.
func drawSummary(pdf *fpdf.Fpdf, rows []export.Row) {
	marginL, _, marginR, _ := pdf.GetMargins()
	pageW, _ := pdf.GetPageSize()
	contentW := pageW - marginL - marginR
	labelW := contentW * 0.38

	section := ""
	for _, r := range rows {
		if r.Section != section {
			section = r.Section
			pdf.Ln(2)
			pdf.SetFillColor(240, 240, 240)
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(contentW, 6, section, "1", 1, "L", true, 0, "")
		}
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(labelW, 5.5, r.Question, "LB", 0, "L", false, 0, "")
		pdf.MultiCell(contentW-labelW, 5.5, r.Answer, "RB", "L", false)
		pdf.SetX(marginL)
	}
}
