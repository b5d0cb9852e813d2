package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/neondara/internal/models"
)

func testBill(participants ...models.Participant) models.Bill {
	return models.Bill{
		ID:           "bill-1",
		OwnerID:      "owner",
		Description:  "Dinner",
		TotalAmount:  300,
		PayerID:      "owner",
		Participants: participants,
	}
}

func TestSplitEqually(t *testing.T) {
	tests := []struct {
		name    string
		total   float64
		count   int
		want    float64
		wantErr error
	}{
		{name: "even split", total: 300, count: 3, want: 100},
		{name: "rounds to cents", total: 100, count: 3, want: 33.33},
		{name: "rounds half away from zero", total: 0.05, count: 2, want: 0.03},
		{name: "single participant", total: 42.5, count: 1, want: 42.5},
		{name: "zero participants", total: 100, count: 0, wantErr: ErrNoParticipants},
		{name: "negative count", total: 100, count: -1, wantErr: ErrNoParticipants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SplitEqually(tt.total, tt.count)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyEqualSplit(t *testing.T) {
	bill := testBill(
		models.Participant{PersonID: "a", ShareAmount: 10},
		models.Participant{PersonID: "b", IsPaid: true},
		models.Participant{PersonID: "c"},
	)

	got, err := ApplyEqualSplit(bill)
	require.NoError(t, err)

	for _, p := range got.Participants {
		assert.Equal(t, 100.0, p.ShareAmount)
	}
	assert.True(t, got.Participants[1].IsPaid)
	assert.Equal(t, 10.0, bill.Participants[0].ShareAmount, "input must not change")

	_, err = ApplyEqualSplit(testBill())
	assert.ErrorIs(t, err, ErrNoParticipants)
}

func TestSetParticipantPaidStatus(t *testing.T) {
	bill := testBill(
		models.Participant{PersonID: "a", ShareAmount: 150},
		models.Participant{PersonID: "b", ShareAmount: 150, IsPaid: true},
	)

	t.Run("marking the last unpaid participant settles the bill", func(t *testing.T) {
		assert.False(t, IsBillSettled(bill))

		got := SetParticipantPaidStatus(bill, "a", true)

		assert.True(t, got.Participants[0].IsPaid)
		assert.True(t, got.Participants[1].IsPaid)
		assert.True(t, IsBillSettled(got))
		assert.False(t, bill.Participants[0].IsPaid, "input must not change")
	})

	t.Run("settled bill can be reopened", func(t *testing.T) {
		settled := SetParticipantPaidStatus(bill, "a", true)
		reopened := SetParticipantPaidStatus(settled, "b", false)
		assert.False(t, IsBillSettled(reopened))
		assert.Equal(t, 150.0, reopened.Participants[1].ShareAmount)
	})

	t.Run("unknown participant is a no-op", func(t *testing.T) {
		got := SetParticipantPaidStatus(bill, "nonexistent", true)
		assert.Equal(t, bill, got)
	})
}

func TestIsBillSettled(t *testing.T) {
	assert.True(t, IsBillSettled(testBill(
		models.Participant{PersonID: "a", IsPaid: true},
	)))
	assert.False(t, IsBillSettled(testBill(
		models.Participant{PersonID: "a", IsPaid: true},
		models.Participant{PersonID: "b"},
	)))
}

func TestValidateParticipants(t *testing.T) {
	assert.ErrorIs(t, ValidateParticipants(testBill()), ErrNoParticipants)
	assert.ErrorIs(t, ValidateParticipants(testBill(
		models.Participant{PersonID: "a"},
		models.Participant{PersonID: "a"},
	)), ErrDuplicateParticipant)
	assert.NoError(t, ValidateParticipants(testBill(
		models.Participant{PersonID: "a"},
		models.Participant{PersonID: "b"},
	)))
}

func TestValidateShares(t *testing.T) {
	tests := []struct {
		name            string
		shares          []float64
		wantUnallocated float64
		wantErr         error
	}{
		{name: "exact total", shares: []float64{100, 100, 100}, wantUnallocated: 0},
		{name: "owner keeps remainder", shares: []float64{100, 100}, wantUnallocated: 100},
		{name: "rounding slack accepted", shares: []float64{100.005, 100, 100}, wantUnallocated: 0},
		{name: "over allocation rejected", shares: []float64{200, 200}, wantErr: ErrSharesExceedTotal},
		{name: "negative share rejected", shares: []float64{-1}, wantErr: ErrNegativeShare},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bill := testBill()
			for i, s := range tt.shares {
				bill.Participants = append(bill.Participants, models.Participant{
					PersonID:    string(rune('a' + i)),
					ShareAmount: s,
				})
			}

			got, err := ValidateShares(bill)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantUnallocated, got)
		})
	}
}

func TestOutstandingAmount(t *testing.T) {
	bill := testBill(
		models.Participant{PersonID: "a", ShareAmount: 100, IsPaid: true},
		models.Participant{PersonID: "b", ShareAmount: 75.5},
		models.Participant{PersonID: "c", ShareAmount: 24.5},
	)
	assert.Equal(t, 100.0, OutstandingAmount(bill))
}
