// Package export renders ledger entries and contacts as downloadable files.
package export

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/mmynk/neondara/internal/calculator"
	"github.com/mmynk/neondara/internal/i18n"
	"github.com/mmynk/neondara/internal/models"
)

// ErrNoData is returned when the selection has no entries.
var ErrNoData = errors.New("no data to export")

// Row is one exported entry with labels already translated.
type Row struct {
	SerialNo    int
	Date        string
	Person      string
	Status      string
	Event       string
	GiftType    string
	Amount      *float64 // set for Money and Sweets only
	Description string
	Notes       string
}

// Report is the translated content shared by every tabular format.
type Report struct {
	SheetName string
	Headers   []string
	Rows      []Row

	SummaryTitle  string
	SummaryLabels [3]string // given, received, net
	Balance       calculator.Balance
	RightToLeft   bool
}

// BuildReport translates entries into rows and computes the balance summary
// over exactly the exported rows. Rows keep the input order.
func BuildReport(entries []models.Entry, loc *i18n.Localizer) (*Report, error) {
	if len(entries) == 0 {
		return nil, ErrNoData
	}

	r := &Report{
		SheetName: loc.T(i18n.SheetName),
		Headers: []string{
			loc.T(i18n.ColumnSerialNo),
			loc.T(i18n.ColumnDate),
			loc.T(i18n.ColumnPerson),
			loc.T(i18n.ColumnStatus),
			loc.T(i18n.ColumnEvent),
			loc.T(i18n.ColumnGiftType),
			loc.T(i18n.ColumnAmount),
			loc.T(i18n.ColumnDescription),
			loc.T(i18n.ColumnNotes),
		},
		Rows:         make([]Row, 0, len(entries)),
		SummaryTitle: loc.T(i18n.BalanceSummary),
		SummaryLabels: [3]string{
			loc.T(i18n.TotalGiven),
			loc.T(i18n.TotalReceived),
			loc.T(i18n.NetBalance),
		},
		Balance:     calculator.ComputeBalance(entries),
		RightToLeft: loc.IsRTL(),
	}

	for i := range entries {
		e := &entries[i]
		row := Row{
			SerialNo:    i + 1,
			Date:        models.FormatDate(e.Date),
			Person:      e.PersonName,
			Status:      loc.Enum("Direction", string(e.Direction)),
			Event:       loc.Enum("Event", string(e.Event)),
			GiftType:    loc.Enum("GiftType", string(e.GiftType)),
			Description: e.Description,
			Notes:       e.Notes,
		}
		if (e.GiftType == models.GiftTypeMoney || e.GiftType == models.GiftTypeSweets) && e.HasAmount() {
			v := *e.Amount
			row.Amount = &v
		}
		if e.IsImage() {
			row.Description = loc.T(i18n.ImageEmbedded)
		}
		r.Rows = append(r.Rows, row)
	}

	return r, nil
}

// SummaryValues returns given, received and net in label order, rounded to
// two decimal places.
func (r *Report) SummaryValues() [3]float64 {
	return [3]float64{
		roundMoney(r.Balance.Given),
		roundMoney(r.Balance.Received),
		roundMoney(r.Balance.Net),
	}
}

func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Filename builds Neondara_History[_<person>]_<yyyy-mm-dd>.<ext>.
func Filename(personName string, now time.Time, ext string) string {
	var b strings.Builder
	b.WriteString("Neondara_History")
	if name := sanitize(personName); name != "" {
		b.WriteString("_")
		b.WriteString(name)
	}
	b.WriteString("_")
	b.WriteString(now.Format(models.DateLayout))
	b.WriteString(".")
	b.WriteString(ext)
	return b.String()
}

// sanitize keeps letters, digits, dashes and underscores; spaces become underscores.
func sanitize(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('_')
		}
	}
	return b.String()
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
