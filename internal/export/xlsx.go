package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// maxSheetName is the Excel limit on sheet name length.
const maxSheetName = 31

var columnWidths = []float64{6, 12, 20, 12, 14, 12, 12, 24, 30}

// WriteXLSX writes the report as a styled single-sheet workbook with the
// balance summary two rows below the data, starting in column B.
func WriteXLSX(w io.Writer, r *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := truncateRunes(r.SheetName, maxSheetName)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	styles, err := newStyles(f)
	if err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &r.Headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(r.Headers), 1)
	if err := f.SetCellStyle(sheet, "A1", lastHeader, styles.header); err != nil {
		return err
	}

	for i, row := range r.Rows {
		excelRow := i + 2
		var amount any = ""
		if row.Amount != nil {
			amount = *row.Amount
		}
		values := []any{
			row.SerialNo, row.Date, row.Person, row.Status, row.Event,
			row.GiftType, amount, row.Description, row.Notes,
		}
		start, _ := excelize.CoordinatesToCellName(1, excelRow)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row.SerialNo, err)
		}

		style := styles.body
		if excelRow%2 == 0 {
			style = styles.bodyStriped
		}
		end, _ := excelize.CoordinatesToCellName(len(values), excelRow)
		if err := f.SetCellStyle(sheet, start, end, style); err != nil {
			return err
		}
		amountCell, _ := excelize.CoordinatesToCellName(7, excelRow)
		amountStyle := styles.amount
		if excelRow%2 == 0 {
			amountStyle = styles.amountStriped
		}
		if err := f.SetCellStyle(sheet, amountCell, amountCell, amountStyle); err != nil {
			return err
		}
	}

	for i, width := range columnWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}

	if err := writeSummary(f, sheet, r, len(r.Rows)+3, styles); err != nil {
		return err
	}

	if r.RightToLeft {
		rtl := true
		if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func writeSummary(f *excelize.File, sheet string, r *Report, startRow int, styles *sheetStyles) error {
	title := fmt.Sprintf("B%d", startRow)
	if err := f.SetCellValue(sheet, title, r.SummaryTitle); err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, title, title, styles.summaryTitle); err != nil {
		return err
	}

	values := r.SummaryValues()
	for i, label := range r.SummaryLabels {
		row := startRow + 1 + i
		labelCell := fmt.Sprintf("B%d", row)
		valueCell := fmt.Sprintf("C%d", row)
		if err := f.SetCellValue(sheet, labelCell, label); err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, valueCell, values[i]); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, labelCell, labelCell, styles.summaryLabel); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, valueCell, valueCell, styles.summaryValue); err != nil {
			return err
		}
	}
	return nil
}

type sheetStyles struct {
	header        int
	body          int
	bodyStriped   int
	amount        int
	amountStriped int
	summaryTitle  int
	summaryLabel  int
	summaryValue  int
}

func newStyles(f *excelize.File) (*sheetStyles, error) {
	var (
		s   sheetStyles
		err error
	)
	stripe := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F0F0F0"}}
	grey := excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}}
	wrap := &excelize.Alignment{WrapText: true, Vertical: "top"}
	centered := &excelize.Alignment{WrapText: true, Vertical: "top", Horizontal: "center"}

	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.header, &excelize.Style{
			Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4F4F4F"}},
		}},
		{&s.body, &excelize.Style{Alignment: wrap}},
		{&s.bodyStriped, &excelize.Style{Alignment: wrap, Fill: stripe}},
		{&s.amount, &excelize.Style{Alignment: centered}},
		{&s.amountStriped, &excelize.Style{Alignment: centered, Fill: stripe}},
		{&s.summaryTitle, &excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}}},
		{&s.summaryLabel, &excelize.Style{Font: &excelize.Font{Bold: true}, Fill: grey}},
		{&s.summaryValue, &excelize.Style{Fill: grey, NumFmt: 4}},
	}
	for _, d := range defs {
		if *d.dst, err = f.NewStyle(d.style); err != nil {
			return nil, fmt.Errorf("failed to create style: %w", err)
		}
	}
	return &s, nil
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
