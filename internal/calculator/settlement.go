package calculator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mmynk/neondara/internal/models"
)

// shareTolerance is how far shares may exceed a bill total before being rejected.
const shareTolerance = 0.01

var (
	ErrNoParticipants       = errors.New("bill must have at least one participant")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrSharesExceedTotal    = errors.New("participant shares exceed bill total")
	ErrNegativeShare        = errors.New("participant share cannot be negative")
)

// SplitEqually divides total across count participants, rounded half away
// from zero to two decimals.
func SplitEqually(total float64, count int) (float64, error) {
	if count < 1 {
		return 0, ErrNoParticipants
	}
	share := decimal.NewFromFloat(total).
		Div(decimal.NewFromInt(int64(count))).
		Round(2)
	return share.InexactFloat64(), nil
}

// ApplyEqualSplit returns a copy of bill with every participant's share set
// to the equal split of its total. Paid flags are preserved.
func ApplyEqualSplit(bill models.Bill) (models.Bill, error) {
	share, err := SplitEqually(bill.TotalAmount, len(bill.Participants))
	if err != nil {
		return bill, err
	}
	out := bill.Clone()
	for i := range out.Participants {
		out.Participants[i].ShareAmount = share
	}
	return out, nil
}

// SetParticipantPaidStatus returns a copy of bill with personID's paid flag
// set to isPaid. An unknown person leaves the copy equal to the input.
func SetParticipantPaidStatus(bill models.Bill, personID string, isPaid bool) models.Bill {
	out := bill.Clone()
	for i := range out.Participants {
		if out.Participants[i].PersonID == personID {
			out.Participants[i].IsPaid = isPaid
		}
	}
	return out
}

// IsBillSettled reports whether every participant has paid.
// Stored bills always have participants, so the empty case is vacuously true.
func IsBillSettled(bill models.Bill) bool {
	for _, p := range bill.Participants {
		if !p.IsPaid {
			return false
		}
	}
	return true
}

// ValidateParticipants checks that the bill has at least one participant
// and that no person appears twice.
func ValidateParticipants(bill models.Bill) error {
	if len(bill.Participants) == 0 {
		return ErrNoParticipants
	}
	seen := make(map[string]struct{}, len(bill.Participants))
	for _, p := range bill.Participants {
		if _, dup := seen[p.PersonID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParticipant, p.PersonID)
		}
		seen[p.PersonID] = struct{}{}
	}
	return nil
}

// ValidateShares checks the share-sum rule and returns the part of the total
// not covered by participant shares, rounded to two decimals. That remainder
// is the owner's own share.
func ValidateShares(bill models.Bill) (float64, error) {
	sum := decimal.Zero
	for _, p := range bill.Participants {
		if p.ShareAmount < 0 {
			return 0, fmt.Errorf("%w: %s", ErrNegativeShare, p.PersonID)
		}
		sum = sum.Add(decimal.NewFromFloat(p.ShareAmount))
	}

	total := decimal.NewFromFloat(bill.TotalAmount)
	if sum.GreaterThan(total.Add(decimal.NewFromFloat(shareTolerance))) {
		return 0, fmt.Errorf("%w: shares %s, total %s", ErrSharesExceedTotal, sum.StringFixed(2), total.StringFixed(2))
	}

	unallocated := total.Sub(sum).Round(2)
	if unallocated.IsNegative() {
		unallocated = decimal.Zero
	}
	return unallocated.InexactFloat64(), nil
}

// OutstandingAmount is the sum of shares not yet paid.
func OutstandingAmount(bill models.Bill) float64 {
	sum := decimal.Zero
	for _, p := range bill.Participants {
		if !p.IsPaid {
			sum = sum.Add(decimal.NewFromFloat(p.ShareAmount))
		}
	}
	return sum.Round(2).InexactFloat64()
}
