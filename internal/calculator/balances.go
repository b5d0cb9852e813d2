package calculator

import (
	"math"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/neondara/internal/models"
)

// squareTolerance is the absolute net below which a balance counts as settled.
const squareTolerance = 0.005

// Balance is the money summary of a set of ledger entries.
type Balance struct {
	Given    float64
	Received float64
	Net      float64 // Positive = the user is owed, negative = the user owes
}

// Breakdown buckets entries by direction and gift type.
type Breakdown struct {
	MoneyGiven         float64
	MoneyReceived      float64
	SweetsGivenKg      float64
	SweetsReceivedKg   float64
	GiftsGivenCount    int
	GiftsReceivedCount int
}

// PersonBalance is one contact's balance, as shown on the People page.
type PersonBalance struct {
	PersonID   string
	PersonName string
	Balance    Balance
	EntryCount int
}

// Status classifies a net balance.
type Status string

const (
	StatusOwed   Status = "owed"   // the user will receive
	StatusOwing  Status = "owing"  // the user will give
	StatusSquare Status = "square" // nothing outstanding
)

// ComputeBalance sums Money entries that carry an amount.
// Entries of other gift types, or without an amount, contribute nothing.
func ComputeBalance(entries []models.Entry) Balance {
	given, received := decimal.Zero, decimal.Zero
	for i := range entries {
		e := &entries[i]
		if e.GiftType != models.GiftTypeMoney || !e.HasAmount() {
			continue
		}
		amount := decimal.NewFromFloat(*e.Amount)
		if e.Direction == models.DirectionGiven {
			given = given.Add(amount)
		} else {
			received = received.Add(amount)
		}
	}

	return Balance{
		Given:    given.InexactFloat64(),
		Received: received.InexactFloat64(),
		Net:      given.Sub(received).InexactFloat64(),
	}
}

// ComputeCategoryBreakdown sums money and sweets and counts gifts per direction.
// Other entries are excluded.
func ComputeCategoryBreakdown(entries []models.Entry) Breakdown {
	var (
		moneyGiven, moneyReceived   = decimal.Zero, decimal.Zero
		sweetsGiven, sweetsReceived = decimal.Zero, decimal.Zero
		out                         Breakdown
	)

	for i := range entries {
		e := &entries[i]
		given := e.Direction == models.DirectionGiven

		switch e.GiftType {
		case models.GiftTypeMoney:
			if !e.HasAmount() {
				continue
			}
			if given {
				moneyGiven = moneyGiven.Add(decimal.NewFromFloat(*e.Amount))
			} else {
				moneyReceived = moneyReceived.Add(decimal.NewFromFloat(*e.Amount))
			}
		case models.GiftTypeSweets:
			if !e.HasAmount() {
				continue
			}
			if given {
				sweetsGiven = sweetsGiven.Add(decimal.NewFromFloat(*e.Amount))
			} else {
				sweetsReceived = sweetsReceived.Add(decimal.NewFromFloat(*e.Amount))
			}
		case models.GiftTypeGift:
			if given {
				out.GiftsGivenCount++
			} else {
				out.GiftsReceivedCount++
			}
		}
	}

	out.MoneyGiven = moneyGiven.InexactFloat64()
	out.MoneyReceived = moneyReceived.InexactFloat64()
	out.SweetsGivenKg = sweetsGiven.InexactFloat64()
	out.SweetsReceivedKg = sweetsReceived.InexactFloat64()
	return out
}

// ComputePersonBalances returns one balance per person, sorted by name.
// People without entries get a zero balance. Entries whose person is not
// in people are ignored.
func ComputePersonBalances(people []models.Person, entries []models.Entry) []PersonBalance {
	byPerson := make(map[string][]models.Entry, len(people))
	for _, e := range entries {
		byPerson[e.PersonID] = append(byPerson[e.PersonID], e)
	}

	out := make([]PersonBalance, 0, len(people))
	for _, p := range people {
		own := byPerson[p.ID]
		out = append(out, PersonBalance{
			PersonID:   p.ID,
			PersonName: p.Name,
			Balance:    ComputeBalance(own),
			EntryCount: len(own),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].PersonName) < strings.ToLower(out[j].PersonName)
	})
	return out
}

// BalanceStatus classifies net using the sign convention of Balance.
func BalanceStatus(net float64) Status {
	switch {
	case math.Abs(net) < squareTolerance:
		return StatusSquare
	case net > 0:
		return StatusOwed
	default:
		return StatusOwing
	}
}
