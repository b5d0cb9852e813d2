package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// utf8BOM lets spreadsheet apps detect UTF-8, which Urdu labels need.
const utf8BOM = "\uFEFF"

// WriteCSV writes the report rows followed by a blank line and the balance summary.
func WriteCSV(w io.Writer, r *Report) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(r.Headers); err != nil {
		return err
	}

	for _, row := range r.Rows {
		amount := ""
		if row.Amount != nil {
			amount = formatNumber(*row.Amount)
		}
		record := []string{
			strconv.Itoa(row.SerialNo),
			row.Date,
			row.Person,
			row.Status,
			row.Event,
			row.GiftType,
			amount,
			row.Description,
			row.Notes,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{}); err != nil {
		return err
	}
	if err := writer.Write([]string{"", r.SummaryTitle}); err != nil {
		return err
	}
	values := r.SummaryValues()
	for i, label := range r.SummaryLabels {
		if err := writer.Write([]string{"", label, formatNumber(values[i])}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
