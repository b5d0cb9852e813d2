package service

import (
	"strings"

	"github.com/mmynk/neondara/internal/calculator"
	"github.com/mmynk/neondara/internal/i18n"
	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}

func toAPIPerson(p *models.Person) *api.Person {
	return &api.Person{
		ID:        p.ID,
		Name:      p.Name,
		Relation:  string(p.Relation),
		Notes:     p.Notes,
		CreatedAt: p.CreatedAt,
	}
}

// toAPIBalance attaches the status and its localized sentence.
func toAPIBalance(b calculator.Balance, loc *i18n.Localizer) *api.Balance {
	status := calculator.BalanceStatus(b.Net)

	var text string
	switch status {
	case calculator.StatusOwed:
		text = loc.TData(i18n.StatusOwed, map[string]any{"Amount": loc.Amount(b.Net)})
	case calculator.StatusOwing:
		text = loc.TData(i18n.StatusOwing, map[string]any{"Amount": loc.Amount(b.Net)})
	default:
		text = loc.T(i18n.StatusSquare)
	}

	return &api.Balance{
		Given:      b.Given,
		Received:   b.Received,
		Net:        b.Net,
		Status:     string(status),
		StatusText: text,
	}
}

func toAPIBreakdown(b calculator.Breakdown) *api.Breakdown {
	return &api.Breakdown{
		MoneyGiven:         b.MoneyGiven,
		MoneyReceived:      b.MoneyReceived,
		SweetsGivenKg:      b.SweetsGivenKg,
		SweetsReceivedKg:   b.SweetsReceivedKg,
		GiftsGivenCount:    b.GiftsGivenCount,
		GiftsReceivedCount: b.GiftsReceivedCount,
	}
}

func toAPIEntry(e *models.Entry) *api.Entry {
	var amount *float64
	if e.Amount != nil {
		v := *e.Amount
		amount = &v
	}
	return &api.Entry{
		ID:          e.ID,
		PersonID:    e.PersonID,
		PersonName:  e.PersonName,
		Direction:   string(e.Direction),
		Date:        models.FormatDate(e.Date),
		Event:       string(e.Event),
		GiftType:    string(e.GiftType),
		Amount:      amount,
		Description: e.Description,
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
	}
}

// entryFromInput builds an unsaved entry. Only the date is checked here;
// the rest is left to the validator.
func entryFromInput(in *api.EntryInput) (models.Entry, error) {
	if in == nil {
		return models.Entry{}, invalidArgument("entry is required")
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return models.Entry{}, invalidArgument("date: expected YYYY-MM-DD")
	}

	var amount *float64
	if in.Amount != nil {
		v := *in.Amount
		amount = &v
	}
	return models.Entry{
		PersonID:    strings.TrimSpace(in.PersonID),
		Direction:   models.Direction(in.Direction),
		Date:        date,
		Event:       models.Event(in.Event),
		GiftType:    models.GiftType(in.GiftType),
		Amount:      amount,
		Description: in.Description,
		Notes:       in.Notes,
	}, nil
}

// toAPIBill adds the derived settlement fields.
func toAPIBill(b *models.Bill) *api.Bill {
	participants := make([]*api.Participant, len(b.Participants))
	for i, p := range b.Participants {
		participants[i] = &api.Participant{
			PersonID:    p.PersonID,
			PersonName:  p.PersonName,
			ShareAmount: p.ShareAmount,
			IsPaid:      p.IsPaid,
		}
	}

	// Stored bills already passed the share check.
	unallocated, err := calculator.ValidateShares(*b)
	if err != nil {
		unallocated = 0
	}

	return &api.Bill{
		ID:           b.ID,
		Description:  b.Description,
		TotalAmount:  b.TotalAmount,
		Date:         models.FormatDate(b.Date),
		PayerID:      b.PayerID,
		Participants: participants,
		CreatedAt:    b.CreatedAt,
		IsSettled:    calculator.IsBillSettled(*b),
		Outstanding:  calculator.OutstandingAmount(*b),
		PaidByOwner:  b.PaidByOwner(),
		Unallocated:  unallocated,
	}
}

func billFromInput(in *api.BillInput) (models.Bill, error) {
	if in == nil {
		return models.Bill{}, invalidArgument("bill is required")
	}
	date, err := models.ParseDate(in.Date)
	if err != nil {
		return models.Bill{}, invalidArgument("date: expected YYYY-MM-DD")
	}

	participants := make([]models.Participant, 0, len(in.Participants))
	for _, p := range in.Participants {
		if p == nil {
			continue
		}
		participants = append(participants, models.Participant{
			PersonID:    strings.TrimSpace(p.PersonID),
			ShareAmount: p.ShareAmount,
			IsPaid:      p.IsPaid,
		})
	}

	return models.Bill{
		Description:  in.Description,
		TotalAmount:  in.TotalAmount,
		Date:         date,
		PayerID:      strings.TrimSpace(in.PayerID),
		Participants: participants,
	}, nil
}
