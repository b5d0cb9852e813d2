package service

import (
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/neondara/pkg/api"
)

func TestCreateEntry(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()
	person := createPerson(t, c, "Rehana")

	image := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))

	tests := []struct {
		name       string
		input      *api.EntryInput
		wantAmount *float64
		wantDesc   string
	}{
		{
			name:       "money",
			input:      &api.EntryInput{Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Money", Amount: ptr(5000), Description: "PKR"},
			wantAmount: ptr(5000),
			wantDesc:   "PKR",
		},
		{
			name:       "sweets",
			input:      &api.EntryInput{Direction: "received", Date: "2024-05-02", Event: "Birth", GiftType: "Sweets", Amount: ptr(2.5), Description: "Barfi"},
			wantAmount: ptr(2.5),
			wantDesc:   "Barfi",
		},
		{
			name:     "gift drops amount",
			input:    &api.EntryInput{Direction: "given", Date: "2024-05-03", Event: "Housewarming", GiftType: "Gift", Amount: ptr(99), Description: " Lamp "},
			wantDesc: "Lamp",
		},
		{
			name:     "gift image",
			input:    &api.EntryInput{Direction: "received", Date: "2024-05-04", Event: "Other", GiftType: "Gift", Description: image},
			wantDesc: image,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.PersonID = person.ID
			resp, err := c.ledger.CreateEntry(ctx, connect.NewRequest(&api.CreateEntryRequest{Entry: tt.input}))
			require.NoError(t, err)

			entry := resp.Msg.Entry
			assert.NotEmpty(t, entry.ID)
			assert.Equal(t, "Rehana", entry.PersonName)
			assert.Equal(t, tt.input.Date, entry.Date)
			assert.Equal(t, tt.wantAmount, entry.Amount)
			assert.Equal(t, tt.wantDesc, entry.Description)
		})
	}
}

func TestCreateEntry_Invalid(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()
	person := createPerson(t, c, "Rehana")
	bobsPerson := createPerson(t, env.clientsFor(env.bob.ID), "Bob's friend")

	huge := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString([]byte(strings.Repeat("x", 600*1024)))

	tests := []struct {
		name  string
		input *api.EntryInput
		code  connect.Code
	}{
		{name: "missing entry", input: nil, code: connect.CodeInvalidArgument},
		{name: "bad date", input: &api.EntryInput{PersonID: person.ID, Direction: "given", Date: "01/05/2024", Event: "Wedding", GiftType: "Money", Amount: ptr(10), Description: "PKR"}, code: connect.CodeInvalidArgument},
		{name: "money without amount", input: &api.EntryInput{PersonID: person.ID, Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Money", Description: "PKR"}, code: connect.CodeInvalidArgument},
		{name: "negative money", input: &api.EntryInput{PersonID: person.ID, Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Money", Amount: ptr(-5), Description: "PKR"}, code: connect.CodeInvalidArgument},
		{name: "unknown direction", input: &api.EntryInput{PersonID: person.ID, Direction: "lent", Date: "2024-05-01", Event: "Wedding", GiftType: "Other", Description: "Book"}, code: connect.CodeInvalidArgument},
		{name: "short gift text", input: &api.EntryInput{PersonID: person.ID, Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Gift", Description: "x"}, code: connect.CodeInvalidArgument},
		{name: "oversized image", input: &api.EntryInput{PersonID: person.ID, Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Gift", Description: huge}, code: connect.CodeInvalidArgument},
		{name: "unknown person", input: &api.EntryInput{PersonID: "missing", Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Other", Description: "Book"}, code: connect.CodeNotFound},
		{name: "other owner's person", input: &api.EntryInput{PersonID: bobsPerson.ID, Direction: "given", Date: "2024-05-01", Event: "Wedding", GiftType: "Other", Description: "Book"}, code: connect.CodeNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ledger.CreateEntry(ctx, connect.NewRequest(&api.CreateEntryRequest{Entry: tt.input}))
			requireCode(t, err, tt.code)
		})
	}
}

func TestListEntries_Filters(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	tariq := createPerson(t, c, "Tariq")
	uzma := createPerson(t, c, "Uzma")

	first := createMoneyEntry(t, c, tariq.ID, "given", 100, "2024-01-01")
	second := createMoneyEntry(t, c, uzma.ID, "received", 200, "2024-02-01")
	_, err := c.ledger.CreateEntry(ctx, connect.NewRequest(&api.CreateEntryRequest{Entry: &api.EntryInput{
		PersonID: tariq.ID, Direction: "received", Date: "2024-03-01", Event: "Birth", GiftType: "Gift", Description: "Silver bangle", Notes: "from Dubai",
	}}))
	require.NoError(t, err)

	tests := []struct {
		name string
		req  *api.ListEntriesRequest
		want int
	}{
		{name: "all", req: &api.ListEntriesRequest{}, want: 3},
		{name: "by person", req: &api.ListEntriesRequest{PersonID: tariq.ID}, want: 2},
		{name: "by event", req: &api.ListEntriesRequest{Event: "Birth"}, want: 1},
		{name: "by direction", req: &api.ListEntriesRequest{Direction: "received"}, want: 2},
		{name: "search description", req: &api.ListEntriesRequest{Search: "bangle"}, want: 1},
		{name: "search notes", req: &api.ListEntriesRequest{Search: "DUBAI"}, want: 1},
		{name: "search person name", req: &api.ListEntriesRequest{Search: "uzm"}, want: 1},
		{name: "no match", req: &api.ListEntriesRequest{Search: "100%"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.ledger.ListEntries(ctx, connect.NewRequest(tt.req))
			require.NoError(t, err)
			assert.Len(t, resp.Msg.Entries, tt.want)
		})
	}

	resp, err := c.ledger.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{Direction: "given"}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Entries, 1)
	assert.Equal(t, first.ID, resp.Msg.Entries[0].ID)

	resp, err = c.ledger.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{}))
	require.NoError(t, err)
	assert.Equal(t, second.ID, resp.Msg.Entries[1].ID, "newest first")

	_, err = c.ledger.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{Event: "Funeral"}))
	requireCode(t, err, connect.CodeInvalidArgument)

	bob, err := env.clientsFor(env.bob.ID).ledger.ListEntries(ctx, connect.NewRequest(&api.ListEntriesRequest{}))
	require.NoError(t, err)
	assert.Empty(t, bob.Msg.Entries)
}

func TestUpdateEntry(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	person := createPerson(t, c, "Waqar")
	entry := createMoneyEntry(t, c, person.ID, "given", 100, "2024-01-01")

	resp, err := c.ledger.UpdateEntry(ctx, connect.NewRequest(&api.UpdateEntryRequest{
		ID: entry.ID,
		Entry: &api.EntryInput{
			PersonID:    person.ID,
			Direction:   "received",
			Date:        "2024-01-02",
			Event:       "Other",
			GiftType:    "Sweets",
			Amount:      ptr(1.5),
			Description: "Ladoo",
		},
	}))
	require.NoError(t, err)

	updated := resp.Msg.Entry
	assert.Equal(t, entry.ID, updated.ID)
	assert.Equal(t, entry.CreatedAt, updated.CreatedAt)
	assert.Equal(t, "received", updated.Direction)
	assert.Equal(t, "Sweets", updated.GiftType)
	assert.Equal(t, ptr(1.5), updated.Amount)

	_, err = env.clientsFor(env.bob.ID).ledger.UpdateEntry(ctx, connect.NewRequest(&api.UpdateEntryRequest{ID: entry.ID, Entry: &api.EntryInput{}}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestDeleteEntry(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	person := createPerson(t, c, "Yasmin")
	entry := createMoneyEntry(t, c, person.ID, "given", 100, "2024-01-01")

	_, err := env.clientsFor(env.bob.ID).ledger.DeleteEntry(ctx, connect.NewRequest(&api.DeleteEntryRequest{ID: entry.ID}))
	requireCode(t, err, connect.CodeNotFound)

	_, err = c.ledger.DeleteEntry(ctx, connect.NewRequest(&api.DeleteEntryRequest{ID: entry.ID}))
	require.NoError(t, err)

	_, err = c.ledger.GetEntry(ctx, connect.NewRequest(&api.GetEntryRequest{ID: entry.ID}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestGetBalance(t *testing.T) {
	env := setupTestServer(t)
	c := env.clientsFor(env.alice.ID)
	ctx := context.Background()

	asad := createPerson(t, c, "Asad")
	bina := createPerson(t, c, "Bina")

	createMoneyEntry(t, c, asad.ID, "given", 500, "2024-01-01")
	createMoneyEntry(t, c, asad.ID, "received", 200, "2024-01-02")
	createMoneyEntry(t, c, bina.ID, "received", 1000, "2024-01-03")
	_, err := c.ledger.CreateEntry(ctx, connect.NewRequest(&api.CreateEntryRequest{Entry: &api.EntryInput{
		PersonID: asad.ID, Direction: "given", Date: "2024-01-04", Event: "Wedding", GiftType: "Sweets", Amount: ptr(2.5), Description: "Mithai",
	}}))
	require.NoError(t, err)

	resp, err := c.ledger.GetBalance(ctx, connect.NewRequest(&api.GetBalanceRequest{}))
	require.NoError(t, err)
	assert.Equal(t, 500.0, resp.Msg.Balance.Given)
	assert.Equal(t, 1200.0, resp.Msg.Balance.Received)
	assert.Equal(t, -700.0, resp.Msg.Balance.Net)
	assert.Equal(t, "owing", resp.Msg.Balance.Status)
	assert.Equal(t, 2.5, resp.Msg.Breakdown.SweetsGivenKg)
	assert.Equal(t, 500.0, resp.Msg.Breakdown.MoneyGiven)

	resp, err = c.ledger.GetBalance(ctx, connect.NewRequest(&api.GetBalanceRequest{PersonID: asad.ID}))
	require.NoError(t, err)
	assert.Equal(t, 300.0, resp.Msg.Balance.Net)
	assert.Equal(t, "owed", resp.Msg.Balance.Status)

	req := connect.NewRequest(&api.GetBalanceRequest{PersonID: asad.ID})
	req.Header().Set("Accept-Language", "ur")
	resp, err = c.ledger.GetBalance(ctx, req)
	require.NoError(t, err)
	assert.NotEqual(t, "You will receive 300.00", resp.Msg.Balance.StatusText)
	assert.NotEmpty(t, resp.Msg.Balance.StatusText)

	_, err = c.ledger.GetBalance(ctx, connect.NewRequest(&api.GetBalanceRequest{PersonID: "missing"}))
	requireCode(t, err, connect.CodeNotFound)
}

func TestGetBalance_Empty(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.clientsFor(env.alice.ID).ledger.GetBalance(context.Background(), connect.NewRequest(&api.GetBalanceRequest{}))
	require.NoError(t, err)
	assert.Zero(t, resp.Msg.Balance.Given)
	assert.Zero(t, resp.Msg.Balance.Net)
	assert.Equal(t, "square", resp.Msg.Balance.Status)
	assert.Equal(t, "All square", resp.Msg.Balance.StatusText)
}
