package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/neondara/internal/models"
	"github.com/mmynk/neondara/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createUser(t *testing.T, store *SQLiteStore, email string) *models.User {
	t.Helper()
	user := models.NewUser(email, "Test User", "hash")
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func createPerson(t *testing.T, store *SQLiteStore, ownerID, name string) *models.Person {
	t.Helper()
	p := &models.Person{OwnerID: ownerID, Name: name}
	require.NoError(t, store.CreatePerson(context.Background(), p))
	return p
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func moneyEntry(ownerID, personID string, dir models.Direction, amount float64, date time.Time) *models.Entry {
	return &models.Entry{
		OwnerID:     ownerID,
		PersonID:    personID,
		Direction:   dir,
		Date:        date,
		Event:       models.EventWedding,
		GiftType:    models.GiftTypeMoney,
		Amount:      &amount,
		Description: "PKR",
	}
}

func TestUsers(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	user := createUser(t, store, "a@example.com")

	t.Run("lookup by email ignores case", func(t *testing.T) {
		got, err := store.GetUserByEmail(ctx, "A@Example.com")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("missing user returns nil", func(t *testing.T) {
		got, err := store.GetUserByID(ctx, "nope")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		dup := models.NewUser("a@example.com", "Other", "hash")
		assert.ErrorIs(t, store.CreateUser(ctx, dup), storage.ErrConflict)
	})
}

func TestPeople(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createUser(t, store, "owner@example.com")
	other := createUser(t, store, "other@example.com")

	ahmed := createPerson(t, store, owner.ID, "Ahmed")
	createPerson(t, store, owner.ID, "bilal")

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		assert.NotEmpty(t, ahmed.ID)
		assert.NotZero(t, ahmed.CreatedAt)
	})

	t.Run("names are unique per owner ignoring case", func(t *testing.T) {
		err := store.CreatePerson(ctx, &models.Person{OwnerID: owner.ID, Name: "AHMED"})
		assert.ErrorIs(t, err, storage.ErrConflict)

		err = store.CreatePerson(ctx, &models.Person{OwnerID: other.ID, Name: "Ahmed"})
		assert.NoError(t, err)
	})

	t.Run("list is scoped and sorted", func(t *testing.T) {
		people, err := store.ListPeople(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, people, 2)
		assert.Equal(t, "Ahmed", people[0].Name)
		assert.Equal(t, "bilal", people[1].Name)
	})

	t.Run("other owner cannot read", func(t *testing.T) {
		_, err := store.GetPerson(ctx, other.ID, ahmed.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		updated := *ahmed
		updated.Relation = models.RelationUncle
		updated.Notes = "Lahore"
		require.NoError(t, store.UpdatePerson(ctx, &updated))

		got, err := store.GetPerson(ctx, owner.ID, ahmed.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RelationUncle, got.Relation)
		assert.Equal(t, "Lahore", got.Notes)
	})

	t.Run("rename onto existing name conflicts", func(t *testing.T) {
		updated := *ahmed
		updated.Name = "Bilal"
		assert.ErrorIs(t, store.UpdatePerson(ctx, &updated), storage.ErrConflict)
	})

	t.Run("update missing person", func(t *testing.T) {
		err := store.UpdatePerson(ctx, &models.Person{ID: "nope", OwnerID: owner.ID, Name: "X"})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestEntries(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createUser(t, store, "owner@example.com")
	ahmed := createPerson(t, store, owner.ID, "Ahmed")
	sara := createPerson(t, store, owner.ID, "Sara")

	older := moneyEntry(owner.ID, ahmed.ID, models.DirectionGiven, 500, day(2024, 1, 10))
	newer := moneyEntry(owner.ID, sara.ID, models.DirectionReceived, 200, day(2024, 5, 2))
	gift := &models.Entry{
		OwnerID:     owner.ID,
		PersonID:    sara.ID,
		Direction:   models.DirectionGiven,
		Date:        day(2024, 3, 1),
		Event:       models.EventBirth,
		GiftType:    models.GiftTypeGift,
		Description: "Silver bracelet",
		Notes:       "for the baby",
	}
	for _, e := range []*models.Entry{older, newer, gift} {
		require.NoError(t, store.CreateEntry(ctx, e))
	}

	t.Run("get round-trips fields", func(t *testing.T) {
		got, err := store.GetEntry(ctx, owner.ID, gift.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Amount)
		assert.Equal(t, day(2024, 3, 1), got.Date)
		assert.Equal(t, "Sara", got.PersonName)
		assert.Equal(t, models.GiftTypeGift, got.GiftType)

		got, err = store.GetEntry(ctx, owner.ID, older.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Amount)
		assert.Equal(t, 500.0, *got.Amount)
	})

	t.Run("list is newest first", func(t *testing.T) {
		entries, err := store.ListEntries(ctx, owner.ID, storage.EntryFilter{})
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, newer.ID, entries[0].ID)
		assert.Equal(t, gift.ID, entries[1].ID)
		assert.Equal(t, older.ID, entries[2].ID)
	})

	filters := []struct {
		name   string
		filter storage.EntryFilter
		want   []string
	}{
		{name: "by person", filter: storage.EntryFilter{PersonID: ahmed.ID}, want: []string{older.ID}},
		{name: "by event", filter: storage.EntryFilter{Event: models.EventBirth}, want: []string{gift.ID}},
		{name: "by direction", filter: storage.EntryFilter{Direction: models.DirectionReceived}, want: []string{newer.ID}},
		{name: "search notes", filter: storage.EntryFilter{Search: "BABY"}, want: []string{gift.ID}},
		{name: "search person name", filter: storage.EntryFilter{Search: "ahm"}, want: []string{older.ID}},
		{name: "search wildcard is literal", filter: storage.EntryFilter{Search: "%"}, want: nil},
	}
	for _, tt := range filters {
		t.Run(tt.name, func(t *testing.T) {
			entries, err := store.ListEntries(ctx, owner.ID, tt.filter)
			require.NoError(t, err)
			var ids []string
			for _, e := range entries {
				ids = append(ids, e.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	t.Run("update", func(t *testing.T) {
		updated := *older
		amount := 750.0
		updated.Amount = &amount
		updated.Notes = "revised"
		require.NoError(t, store.UpdateEntry(ctx, &updated))

		got, err := store.GetEntry(ctx, owner.ID, older.ID)
		require.NoError(t, err)
		assert.Equal(t, 750.0, *got.Amount)
		assert.Equal(t, "revised", got.Notes)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteEntry(ctx, owner.ID, newer.ID))
		_, err := store.GetEntry(ctx, owner.ID, newer.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteEntry(ctx, owner.ID, newer.ID), storage.ErrNotFound)
	})
}

func TestBills(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createUser(t, store, "owner@example.com")
	a := createPerson(t, store, owner.ID, "Zara")
	b := createPerson(t, store, owner.ID, "Ali")

	bill := &models.Bill{
		OwnerID:     owner.ID,
		Description: "Dinner",
		TotalAmount: 300,
		Date:        day(2024, 6, 1),
		PayerID:     owner.ID,
		Participants: []models.Participant{
			{PersonID: a.ID, ShareAmount: 100},
			{PersonID: b.ID, ShareAmount: 100, IsPaid: true},
		},
	}
	require.NoError(t, store.CreateBill(ctx, bill))
	assert.NotEmpty(t, bill.ID)

	t.Run("get keeps participant order", func(t *testing.T) {
		got, err := store.GetBill(ctx, owner.ID, bill.ID)
		require.NoError(t, err)
		require.Len(t, got.Participants, 2)
		assert.Equal(t, a.ID, got.Participants[0].PersonID)
		assert.Equal(t, "Zara", got.Participants[0].PersonName)
		assert.False(t, got.Participants[0].IsPaid)
		assert.True(t, got.Participants[1].IsPaid)
		assert.Equal(t, day(2024, 6, 1), got.Date)
	})

	t.Run("update replaces participants", func(t *testing.T) {
		updated := bill.Clone()
		updated.Participants = []models.Participant{{PersonID: b.ID, ShareAmount: 300, IsPaid: true}}
		updated.PayerID = a.ID
		require.NoError(t, store.UpdateBill(ctx, &updated))

		got, err := store.GetBill(ctx, owner.ID, bill.ID)
		require.NoError(t, err)
		require.Len(t, got.Participants, 1)
		assert.Equal(t, 300.0, got.Participants[0].ShareAmount)
		assert.Equal(t, a.ID, got.PayerID)
	})

	t.Run("list", func(t *testing.T) {
		second := &models.Bill{
			OwnerID:      owner.ID,
			Description:  "Taxi",
			TotalAmount:  50,
			Date:         day(2024, 7, 1),
			PayerID:      owner.ID,
			Participants: []models.Participant{{PersonID: a.ID, ShareAmount: 25}},
		}
		require.NoError(t, store.CreateBill(ctx, second))

		bills, err := store.ListBills(ctx, owner.ID)
		require.NoError(t, err)
		require.Len(t, bills, 2)
		assert.Equal(t, "Taxi", bills[0].Description)
		assert.Len(t, bills[0].Participants, 1)
		assert.Len(t, bills[1].Participants, 1)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.DeleteBill(ctx, owner.ID, bill.ID))
		_, err := store.GetBill(ctx, owner.ID, bill.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestDeletePersonCascade(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	owner := createUser(t, store, "owner@example.com")
	gone := createPerson(t, store, owner.ID, "Gone")
	stays := createPerson(t, store, owner.ID, "Stays")

	require.NoError(t, store.CreateEntry(ctx, moneyEntry(owner.ID, gone.ID, models.DirectionGiven, 100, day(2024, 1, 1))))
	require.NoError(t, store.CreateEntry(ctx, moneyEntry(owner.ID, gone.ID, models.DirectionReceived, 50, day(2024, 1, 2))))
	kept := moneyEntry(owner.ID, stays.ID, models.DirectionGiven, 10, day(2024, 1, 3))
	require.NoError(t, store.CreateEntry(ctx, kept))

	solo := &models.Bill{
		OwnerID: owner.ID, Description: "Solo", TotalAmount: 10, Date: day(2024, 2, 1), PayerID: owner.ID,
		Participants: []models.Participant{{PersonID: gone.ID, ShareAmount: 10}},
	}
	shared := &models.Bill{
		OwnerID: owner.ID, Description: "Shared", TotalAmount: 20, Date: day(2024, 2, 2), PayerID: gone.ID,
		Participants: []models.Participant{
			{PersonID: stays.ID, ShareAmount: 10},
			{PersonID: gone.ID, ShareAmount: 10},
		},
	}
	untouched := &models.Bill{
		OwnerID: owner.ID, Description: "Untouched", TotalAmount: 5, Date: day(2024, 2, 3), PayerID: owner.ID,
		Participants: []models.Participant{{PersonID: stays.ID, ShareAmount: 5}},
	}
	for _, b := range []*models.Bill{solo, shared, untouched} {
		require.NoError(t, store.CreateBill(ctx, b))
	}

	result, err := store.DeletePerson(ctx, owner.ID, gone.ID)
	require.NoError(t, err)
	assert.Equal(t, storage.CascadeResult{EntriesDeleted: 2, BillsUpdated: 1, BillsDeleted: 1}, result)

	_, err = store.GetPerson(ctx, owner.ID, gone.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	entries, err := store.ListEntries(ctx, owner.ID, storage.EntryFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, kept.ID, entries[0].ID)

	_, err = store.GetBill(ctx, owner.ID, solo.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	got, err := store.GetBill(ctx, owner.ID, shared.ID)
	require.NoError(t, err)
	require.Len(t, got.Participants, 1)
	assert.Equal(t, stays.ID, got.Participants[0].PersonID)
	assert.Equal(t, owner.ID, got.PayerID)

	got, err = store.GetBill(ctx, owner.ID, untouched.ID)
	require.NoError(t, err)
	assert.Len(t, got.Participants, 1)

	_, err = store.DeletePerson(ctx, owner.ID, gone.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
