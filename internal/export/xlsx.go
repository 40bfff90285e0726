package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Application Summary"

// WriteXLSX renders the rows as a single-sheet spreadsheet with a bold
// header row and widened columns.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return err
	}

	for col, title := range Header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheetName, "A1", "C1", headerStyle); err != nil {
		return err
	}

	for i, r := range rows {
		n := i + 2
		if err := f.SetSheetRow(sheetName, fmt.Sprintf("A%d", n), &[]any{r.Section, r.Question, r.Answer}); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheetName, "A", "A", 24); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "B", "B", 32); err != nil {
		return err
	}
	if err := f.SetColWidth(sheetName, "C", "C", 60); err != nil {
		return err
	}

	return f.Write(w)
}
